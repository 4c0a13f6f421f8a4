package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/renohub/backend/internal/events"
	"github.com/renohub/backend/internal/models"
	"github.com/renohub/backend/internal/rbac"
	"github.com/renohub/backend/internal/repositories"
	"go.uber.org/zap"
)

// EscrowService is the payment engine: it moves each tranche through
// held -> pending_approval -> released (or refunded) and tells the ledger to
// advance contract status when the deposit and final tranches are released.
//
// Every mutation runs in one transaction with the contract row locked, so
// the uniqueness check, ordering check, and write are a single atomic unit.
type EscrowService struct {
	pool         *pgxpool.Pool
	contractRepo *repositories.ContractRepo
	paymentRepo  *repositories.PaymentRepo
	auditRepo    *repositories.AuditRepo
	admin        rbac.AdminChecker
	publisher    events.Publisher
	log          *zap.Logger
}

func NewEscrowService(
	pool *pgxpool.Pool,
	contractRepo *repositories.ContractRepo,
	paymentRepo *repositories.PaymentRepo,
	auditRepo *repositories.AuditRepo,
	admin rbac.AdminChecker,
	publisher events.Publisher,
	log *zap.Logger,
) *EscrowService {
	return &EscrowService{
		pool:         pool,
		contractRepo: contractRepo,
		paymentRepo:  paymentRepo,
		auditRepo:    auditRepo,
		admin:        admin,
		publisher:    publisher,
		log:          log,
	}
}

// DepositPayment escrows one tranche of a contract. Only the contract's
// owning party may deposit, the amount must equal the declared tranche
// amount, each tranche may be deposited once, and tranches are deposited in
// construction-progress order.
func (s *EscrowService) DepositPayment(ctx context.Context, actorID, contractID uuid.UUID, trancheType string, amount int64) (*models.EscrowPayment, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	contract, err := s.contractRepo.GetByIDForUpdate(ctx, tx, contractID)
	if err != nil {
		return nil, err
	}
	if contract.OwnerUserID != actorID {
		return nil, &models.AuthorizationError{Reason: "only the contract's owning party can deposit"}
	}

	existing, err := s.paymentRepo.ListByContract(ctx, tx, contractID)
	if err != nil {
		return nil, err
	}
	if err := models.CanDeposit(contract, existing, trancheType, amount); err != nil {
		return nil, err
	}

	payment := &models.EscrowPayment{
		ContractID:  contractID,
		TrancheType: trancheType,
		Amount:      amount,
		Status:      models.PaymentStatusHeld,
	}
	if err := s.paymentRepo.Create(ctx, tx, payment); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &actorID,
		ActorType:   "user",
		Action:      "payment_deposited",
		EntityType:  "payment",
		EntityID:    &payment.ID,
		Meta:        map[string]any{"contract_id": contractID.String(), "tranche_type": trancheType, "amount": amount},
	})
	s.publishPayment(ctx, payment, "", models.PaymentStatusHeld)

	return payment, nil
}

// RequestApproval asks the administrator to release a held tranche,
// modeling "work verified, please pay the contractor".
func (s *EscrowService) RequestApproval(ctx context.Context, actorID, paymentID uuid.UUID) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	payment, err := s.paymentRepo.GetByIDForUpdate(ctx, tx, paymentID)
	if err != nil {
		return err
	}

	contract, err := s.contractRepo.GetByID(ctx, payment.ContractID)
	if err != nil {
		return err
	}
	if contract.OwnerUserID != actorID {
		return &models.AuthorizationError{Reason: "only the contract's owning party can request release"}
	}

	if payment.Status != models.PaymentStatusHeld {
		return &models.InvalidStateError{Current: payment.Status, Operation: "request approval"}
	}

	ok, err := s.paymentRepo.UpdateStatus(ctx, tx, paymentID, models.PaymentStatusHeld, models.PaymentStatusPendingApproval)
	if err != nil {
		return err
	}
	if !ok {
		return &models.InvalidStateError{Current: payment.Status, Operation: "request approval"}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &actorID,
		ActorType:   "user",
		Action:      "payment_approval_requested",
		EntityType:  "payment",
		EntityID:    &paymentID,
	})
	s.publishPayment(ctx, payment, models.PaymentStatusHeld, models.PaymentStatusPendingApproval)

	return nil
}

// ApprovePayment releases a pending-approval tranche. Administrator only.
// Releasing the deposit tranche moves the contract to in_progress; releasing
// the final tranche completes it, and is refused until every prior tranche
// is itself released. Release and contract advance are one atomic unit: when
// the advance is unreachable (the contract was cancelled in the meantime)
// the whole approval fails and the payment stays pending_approval, leaving
// refund as the admin's remaining move.
func (s *EscrowService) ApprovePayment(ctx context.Context, actorID, paymentID uuid.UUID) error {
	if err := s.requireAdmin(ctx, actorID, "approve a payment"); err != nil {
		return err
	}

	// Peek at the payment to learn its contract, then lock contract before
	// payment. Deposit locks in the same order, which rules out deadlock.
	peek, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	contract, err := s.contractRepo.GetByIDForUpdate(ctx, tx, peek.ContractID)
	if err != nil {
		return err
	}
	payment, err := s.paymentRepo.GetByIDForUpdate(ctx, tx, paymentID)
	if err != nil {
		return err
	}

	siblings, err := s.paymentRepo.ListByContract(ctx, tx, contract.ID)
	if err != nil {
		return err
	}
	if err := models.CanApprove(payment, siblings); err != nil {
		return err
	}
	if err := models.CanAdvanceOnRelease(contract.Status, payment.TrancheType); err != nil {
		return err
	}

	ok, err := s.paymentRepo.MarkReleased(ctx, tx, paymentID)
	if err != nil {
		return err
	}
	if !ok {
		return &models.InvalidStateError{Current: payment.Status, Operation: "approve"}
	}

	contractTo := models.ContractStatusAfterRelease(payment.TrancheType)
	if contractTo != "" {
		if _, err := s.contractRepo.UpdateStatusTx(ctx, tx, contract.ID, contract.Status, contractTo); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &actorID,
		ActorType:   "admin",
		Action:      "payment_released",
		EntityType:  "payment",
		EntityID:    &paymentID,
		Meta:        map[string]any{"tranche_type": payment.TrancheType},
	})
	s.publishPayment(ctx, payment, models.PaymentStatusPendingApproval, models.PaymentStatusReleased)
	if contractTo != "" {
		_ = s.publisher.Publish(ctx, events.Stream, events.Event{
			Type: events.EventContractStatusChanged,
			Payload: map[string]any{
				"contract_id": contract.ID.String(),
				"old_status":  contract.Status,
				"new_status":  contractTo,
			},
		})
	}

	return nil
}

// RejectApproval sends a pending-approval tranche back to held. The money
// stays escrowed; the owner may request release again after re-verification.
func (s *EscrowService) RejectApproval(ctx context.Context, actorID, paymentID uuid.UUID) error {
	if err := s.requireAdmin(ctx, actorID, "reject a release request"); err != nil {
		return err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	payment, err := s.paymentRepo.GetByIDForUpdate(ctx, tx, paymentID)
	if err != nil {
		return err
	}
	if payment.Status != models.PaymentStatusPendingApproval {
		return &models.InvalidStateError{Current: payment.Status, Operation: "reject"}
	}

	if _, err := s.paymentRepo.UpdateStatus(ctx, tx, paymentID, models.PaymentStatusPendingApproval, models.PaymentStatusHeld); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &actorID,
		ActorType:   "admin",
		Action:      "payment_approval_rejected",
		EntityType:  "payment",
		EntityID:    &paymentID,
	})
	s.publishPayment(ctx, payment, models.PaymentStatusPendingApproval, models.PaymentStatusHeld)

	return nil
}

// Refund terminally refunds a tranche still in escrow. Contract status is
// not advanced; cancelling the contract stays a separate admin action.
func (s *EscrowService) Refund(ctx context.Context, actorID, paymentID uuid.UUID) error {
	if err := s.requireAdmin(ctx, actorID, "refund a payment"); err != nil {
		return err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	payment, err := s.paymentRepo.GetByIDForUpdate(ctx, tx, paymentID)
	if err != nil {
		return err
	}
	if payment.Status != models.PaymentStatusHeld && payment.Status != models.PaymentStatusPendingApproval {
		return &models.InvalidStateError{Current: payment.Status, Operation: "refund"}
	}

	if _, err := s.paymentRepo.MarkRefunded(ctx, tx, paymentID); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &actorID,
		ActorType:   "admin",
		Action:      "payment_refunded",
		EntityType:  "payment",
		EntityID:    &paymentID,
	})
	s.publishPayment(ctx, payment, payment.Status, models.PaymentStatusRefunded)

	return nil
}

// ListPayments returns the tranche rows of a contract, visible to the
// owning party and administrators.
func (s *EscrowService) ListPayments(ctx context.Context, actorID, contractID uuid.UUID) ([]models.EscrowPayment, error) {
	contract, err := s.contractRepo.GetByID(ctx, contractID)
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
	return s.paymentRepo.ListByContract(ctx, s.pool, contractID)
}

func (s *EscrowService) requireAdmin(ctx context.Context, actorID uuid.UUID, action string) error {
	isAdmin, err := s.admin.IsAdmin(ctx, actorID)
	if err != nil {
		return err
	}
	if !isAdmin {
		return &models.AuthorizationError{Reason: "only an administrator can " + action}
	}
	return nil
}

func (s *EscrowService) publishPayment(ctx context.Context, p *models.EscrowPayment, oldStatus, newStatus string) {
	_ = s.publisher.Publish(ctx, events.Stream, events.Event{
		Type: events.EventPaymentStatusChanged,
		Payload: map[string]any{
			"payment_id":   p.ID.String(),
			"contract_id":  p.ContractID.String(),
			"tranche_type": p.TrancheType,
			"old_status":   oldStatus,
			"new_status":   newStatus,
		},
	})
}
