package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/renohub/backend/internal/events"
	"github.com/renohub/backend/internal/models"
	"github.com/renohub/backend/internal/repositories"
	"go.uber.org/zap"
)

// QuoteService handles renovation requests and contractor quotes, the
// browsing side of the marketplace that leads up to a contract.
type QuoteService struct {
	quoteRepo *repositories.QuoteRepo
	auditRepo *repositories.AuditRepo
	publisher events.Publisher
	log       *zap.Logger
}

func NewQuoteService(quoteRepo *repositories.QuoteRepo, auditRepo *repositories.AuditRepo, publisher events.Publisher, log *zap.Logger) *QuoteService {
	return &QuoteService{quoteRepo: quoteRepo, auditRepo: auditRepo, publisher: publisher, log: log}
}

type CreateRequestInput struct {
	Title       string
	Category    string
	Location    string
	Description *string
	BudgetMin   *int64
	BudgetMax   *int64
	DesiredFrom *time.Time
	DesiredTo   *time.Time
}

func (s *QuoteService) CreateRequest(ctx context.Context, actorID uuid.UUID, input CreateRequestInput) (*models.RenovationRequest, error) {
	if input.Title == "" {
		return nil, &models.ValidationError{Field: "title", Reason: "is required"}
	}
	if !models.IsValidCategory(input.Category) {
		return nil, &models.ValidationError{Field: "category", Reason: "unknown category"}
	}
	if input.BudgetMin != nil && input.BudgetMax != nil && *input.BudgetMax < *input.BudgetMin {
		return nil, &models.ValidationError{Field: "budget_max", Reason: "must not be below budget_min"}
	}

	req := &models.RenovationRequest{
		OwnerUserID: actorID,
		Title:       input.Title,
		Category:    input.Category,
		Location:    input.Location,
		Description: input.Description,
		BudgetMin:   input.BudgetMin,
		BudgetMax:   input.BudgetMax,
		DesiredFrom: input.DesiredFrom,
		DesiredTo:   input.DesiredTo,
		Status:      models.RequestStatusOpen,
	}
	if err := s.quoteRepo.CreateRequest(ctx, req); err != nil {
		return nil, err
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &actorID,
		ActorType:   "user",
		Action:      "request_created",
		EntityType:  "request",
		EntityID:    &req.ID,
		Meta:        map[string]any{"category": req.Category},
	})

	return req, nil
}

func (s *QuoteService) GetRequest(ctx context.Context, id uuid.UUID) (*models.RenovationRequest, error) {
	return s.quoteRepo.GetRequest(ctx, id)
}

func (s *QuoteService) ListRequests(ctx context.Context, f repositories.RequestFilter) ([]models.RenovationRequest, error) {
	return s.quoteRepo.ListRequests(ctx, f)
}

func (s *QuoteService) CloseRequest(ctx context.Context, actorID, id uuid.UUID) error {
	req, err := s.quoteRepo.GetRequest(ctx, id)
	if err != nil {
		return err
	}
	if req.OwnerUserID != actorID {
		return &models.AuthorizationError{Reason: "only the request owner can close it"}
	}
	if req.Status != models.RequestStatusOpen {
		return &models.InvalidStateError{Current: req.Status, Operation: "close"}
	}
	return s.quoteRepo.UpdateRequestStatus(ctx, id, models.RequestStatusClosed)
}

func (s *QuoteService) SubmitQuote(ctx context.Context, actorID, requestID uuid.UUID, amount int64, message *string) (*models.Quote, error) {
	if amount <= 0 {
		return nil, &models.ValidationError{Field: "amount", Reason: "must be positive"}
	}

	req, err := s.quoteRepo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != models.RequestStatusOpen {
		return nil, &models.InvalidStateError{Current: req.Status, Operation: "quote"}
	}
	if req.OwnerUserID == actorID {
		return nil, &models.AuthorizationError{Reason: "cannot quote your own request"}
	}

	quote := &models.Quote{
		RequestID:        requestID,
		ContractorUserID: actorID,
		Amount:           amount,
		Message:          message,
		Status:           models.QuoteStatusSubmitted,
	}
	if err := s.quoteRepo.CreateQuote(ctx, quote); err != nil {
		return nil, err
	}

	_ = s.publisher.Publish(ctx, events.Stream, events.Event{
		Type: events.EventQuoteReceived,
		Payload: map[string]any{
			"request_id": requestID.String(),
			"quote_id":   quote.ID.String(),
			"amount":     amount,
		},
	})

	return quote, nil
}

func (s *QuoteService) ListQuotes(ctx context.Context, actorID, requestID uuid.UUID) ([]models.Quote, error) {
	req, err := s.quoteRepo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.OwnerUserID != actorID {
		return nil, &models.AuthorizationError{Reason: "only the request owner can view quotes"}
	}
	return s.quoteRepo.ListQuotesByRequest(ctx, requestID)
}

// AcceptQuote marks one quote accepted and closes the request. The accepted
// quote is the basis of the contract the homeowner drafts next.
func (s *QuoteService) AcceptQuote(ctx context.Context, actorID, quoteID uuid.UUID) error {
	quote, err := s.quoteRepo.GetQuote(ctx, quoteID)
	if err != nil {
		return err
	}
	req, err := s.quoteRepo.GetRequest(ctx, quote.RequestID)
	if err != nil {
		return err
	}
	if req.OwnerUserID != actorID {
		return &models.AuthorizationError{Reason: "only the request owner can accept a quote"}
	}
	if quote.Status != models.QuoteStatusSubmitted {
		return &models.InvalidStateError{Current: quote.Status, Operation: "accept"}
	}

	if err := s.quoteRepo.UpdateQuoteStatus(ctx, quoteID, models.QuoteStatusAccepted); err != nil {
		return err
	}
	if err := s.quoteRepo.UpdateRequestStatus(ctx, quote.RequestID, models.RequestStatusClosed); err != nil {
		return err
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &actorID,
		ActorType:   "user",
		Action:      "quote_accepted",
		EntityType:  "request",
		EntityID:    &quote.RequestID,
		Meta:        map[string]any{"quote_id": quoteID.String()},
	})

	return nil
}

func (s *QuoteService) DeclineQuote(ctx context.Context, actorID, quoteID uuid.UUID) error {
	quote, err := s.quoteRepo.GetQuote(ctx, quoteID)
	if err != nil {
		return err
	}
	req, err := s.quoteRepo.GetRequest(ctx, quote.RequestID)
	if err != nil {
		return err
	}
	if req.OwnerUserID != actorID {
		return &models.AuthorizationError{Reason: "only the request owner can decline a quote"}
	}
	if quote.Status != models.QuoteStatusSubmitted {
		return &models.InvalidStateError{Current: quote.Status, Operation: "decline"}
	}
	return s.quoteRepo.UpdateQuoteStatus(ctx, quoteID, models.QuoteStatusDeclined)
}
