package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/renohub/backend/internal/events"
	"github.com/renohub/backend/internal/models"
	"github.com/renohub/backend/internal/rbac"
	"github.com/renohub/backend/internal/repositories"
	"go.uber.org/zap"
)

// ContractService is the contract ledger: it creates contracts, lists them,
// and advances their status. Monetary terms are closed at creation and never
// amended; status is moved only by the payment engine or an administrator.
type ContractService struct {
	contractRepo *repositories.ContractRepo
	auditRepo    *repositories.AuditRepo
	admin        rbac.AdminChecker
	publisher    events.Publisher
	log          *zap.Logger
}

func NewContractService(
	contractRepo *repositories.ContractRepo,
	auditRepo *repositories.AuditRepo,
	admin rbac.AdminChecker,
	publisher events.Publisher,
	log *zap.Logger,
) *ContractService {
	return &ContractService{
		contractRepo: contractRepo,
		auditRepo:    auditRepo,
		admin:        admin,
		publisher:    publisher,
		log:          log,
	}
}

type CreateContractInput struct {
	Title           string
	ClientName      string
	ContractorName  string
	ContractorPhone string
	Location        string
	Description     *string
	StartDate       *time.Time
	EndDate         *time.Time
	TotalAmount     int64
	DepositAmount   int64
	MidAmount       int64
	FinalAmount     int64
}

func (s *ContractService) CreateContract(ctx context.Context, actorID uuid.UUID, input CreateContractInput) (*models.Contract, error) {
	contract := &models.Contract{
		OwnerUserID:     actorID,
		Title:           input.Title,
		ClientName:      input.ClientName,
		ContractorName:  input.ContractorName,
		ContractorPhone: input.ContractorPhone,
		Location:        input.Location,
		Description:     input.Description,
		StartDate:       input.StartDate,
		EndDate:         input.EndDate,
		TotalAmount:     input.TotalAmount,
		DepositAmount:   input.DepositAmount,
		MidAmount:       input.MidAmount,
		FinalAmount:     input.FinalAmount,
		Status:          models.ContractStatusPending,
	}

	if err := contract.ValidateNew(time.Now()); err != nil {
		return nil, err
	}

	if err := s.contractRepo.Create(ctx, contract); err != nil {
		return nil, err
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &actorID,
		ActorType:   "user",
		Action:      "contract_created",
		EntityType:  "contract",
		EntityID:    &contract.ID,
		Meta:        map[string]any{"total_amount": contract.TotalAmount},
	})

	return contract, nil
}

// ListContracts returns the caller's own contracts, or every contract when
// the caller is an administrator.
func (s *ContractService) ListContracts(ctx context.Context, actorID uuid.UUID, f repositories.ContractFilter) ([]models.Contract, error) {
	isAdmin, err := s.admin.IsAdmin(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		f.OwnerUserID = &actorID
	}
	return s.contractRepo.List(ctx, f)
}

func (s *ContractService) GetContract(ctx context.Context, actorID, id uuid.UUID) (*models.Contract, error) {
	contract, err := s.contractRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if contract.OwnerUserID != actorID {
		isAdmin, err := s.admin.IsAdmin(ctx, actorID)
		if err != nil {
			return nil, err
		}
		if !isAdmin {
			return nil, &models.AuthorizationError{Reason: "not a party to this contract"}
		}
	}
	return contract, nil
}

// CancelContract is the administrator's manual override. Cancellation is
// reachable from pending and in_progress only.
func (s *ContractService) CancelContract(ctx context.Context, actorID, id uuid.UUID) error {
	isAdmin, err := s.admin.IsAdmin(ctx, actorID)
	if err != nil {
		return err
	}
	if !isAdmin {
		return &models.AuthorizationError{Reason: "only an administrator can cancel a contract"}
	}

	contract, err := s.contractRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !models.IsValidContractTransition(contract.Status, models.ContractStatusCancelled) {
		return &models.InvalidTransitionError{From: contract.Status, To: models.ContractStatusCancelled}
	}

	ok, err := s.contractRepo.UpdateStatus(ctx, id, contract.Status, models.ContractStatusCancelled)
	if err != nil {
		return err
	}
	if !ok {
		return &models.InvalidTransitionError{From: contract.Status, To: models.ContractStatusCancelled}
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &actorID,
		ActorType:   "admin",
		Action:      "contract_cancelled",
		EntityType:  "contract",
		EntityID:    &id,
		Meta:        map[string]any{"old_status": contract.Status},
	})

	_ = s.publisher.Publish(ctx, events.Stream, events.Event{
		Type: events.EventContractStatusChanged,
		Payload: map[string]any{
			"contract_id": id.String(),
			"old_status":  contract.Status,
			"new_status":  models.ContractStatusCancelled,
		},
	})

	return nil
}

func (s *ContractService) GetContractEvents(ctx context.Context, contractID uuid.UUID) ([]models.AuditLog, error) {
	return s.auditRepo.GetByEntity(ctx, "contract", contractID, 100, 0)
}
