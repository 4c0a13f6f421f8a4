package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/renohub/backend/internal/models"
)

type QuoteRepo struct {
	pool *pgxpool.Pool
}

func NewQuoteRepo(pool *pgxpool.Pool) *QuoteRepo {
	return &QuoteRepo{pool: pool}
}

const requestColumns = `id, owner_user_id, title, category, location, description,
	       budget_min, budget_max, desired_from, desired_to, status, created_at, updated_at`

func scanRequest(row interface{ Scan(...any) error }, req *models.RenovationRequest) error {
	return row.Scan(&req.ID, &req.OwnerUserID, &req.Title, &req.Category, &req.Location, &req.Description,
		&req.BudgetMin, &req.BudgetMax, &req.DesiredFrom, &req.DesiredTo, &req.Status, &req.CreatedAt, &req.UpdatedAt)
}

func (r *QuoteRepo) CreateRequest(ctx context.Context, req *models.RenovationRequest) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO renovation_requests (owner_user_id, title, category, location, description,
		                                 budget_min, budget_max, desired_from, desired_to, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`, req.OwnerUserID, req.Title, req.Category, req.Location, req.Description,
		req.BudgetMin, req.BudgetMax, req.DesiredFrom, req.DesiredTo, req.Status,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
}

func (r *QuoteRepo) GetRequest(ctx context.Context, id uuid.UUID) (*models.RenovationRequest, error) {
	var req models.RenovationRequest
	err := scanRequest(r.pool.QueryRow(ctx,
		`SELECT `+requestColumns+` FROM renovation_requests WHERE id = $1`, id), &req)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

type RequestFilter struct {
	OwnerUserID *uuid.UUID
	Category    *string
	Status      *string
	Limit       int
	Offset      int
}

func (r *QuoteRepo) ListRequests(ctx context.Context, f RequestFilter) ([]models.RenovationRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM renovation_requests`
	args := []any{}
	argIdx := 1
	where := []string{}

	if f.OwnerUserID != nil {
		where = append(where, fmt.Sprintf("owner_user_id = $%d", argIdx))
		args = append(args, *f.OwnerUserID)
		argIdx++
	}
	if f.Category != nil {
		where = append(where, fmt.Sprintf("category = $%d", argIdx))
		args = append(args, *f.Category)
		argIdx++
	}
	if f.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *f.Status)
		argIdx++
	}

	if len(where) > 0 {
		query += " WHERE "
		for i, w := range where {
			if i > 0 {
				query += " AND "
			}
			query += w
		}
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, f.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []models.RenovationRequest
	for rows.Next() {
		var req models.RenovationRequest
		if err := scanRequest(rows, &req); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, nil
}

func (r *QuoteRepo) UpdateRequestStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE renovation_requests SET status = $1, updated_at = now() WHERE id = $2
	`, status, id)
	return err
}

// ---- Quotes ----

func (r *QuoteRepo) CreateQuote(ctx context.Context, q *models.Quote) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO quotes (request_id, contractor_user_id, amount, message, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, q.RequestID, q.ContractorUserID, q.Amount, q.Message, q.Status).Scan(&q.ID, &q.CreatedAt)
}

func (r *QuoteRepo) GetQuote(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	var q models.Quote
	err := r.pool.QueryRow(ctx, `
		SELECT id, request_id, contractor_user_id, amount, message, status, created_at
		FROM quotes WHERE id = $1
	`, id).Scan(&q.ID, &q.RequestID, &q.ContractorUserID, &q.Amount, &q.Message, &q.Status, &q.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuoteRepo) ListQuotesByRequest(ctx context.Context, requestID uuid.UUID) ([]models.Quote, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, request_id, contractor_user_id, amount, message, status, created_at
		FROM quotes WHERE request_id = $1
		ORDER BY created_at ASC
	`, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quotes []models.Quote
	for rows.Next() {
		var q models.Quote
		if err := rows.Scan(&q.ID, &q.RequestID, &q.ContractorUserID, &q.Amount, &q.Message, &q.Status, &q.CreatedAt); err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

func (r *QuoteRepo) UpdateQuoteStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := r.pool.Exec(ctx, `UPDATE quotes SET status = $1 WHERE id = $2`, status, id)
	return err
}
