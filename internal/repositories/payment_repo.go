package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/renohub/backend/internal/db"
	"github.com/renohub/backend/internal/models"
)

type PaymentRepo struct {
	pool *pgxpool.Pool
}

func NewPaymentRepo(pool *pgxpool.Pool) *PaymentRepo {
	return &PaymentRepo{pool: pool}
}

const paymentColumns = `id, contract_id, tranche_type, amount, status, created_at, released_at, refunded_at`

func scanPayment(row interface{ Scan(...any) error }, p *models.EscrowPayment) error {
	return row.Scan(&p.ID, &p.ContractID, &p.TrancheType, &p.Amount, &p.Status,
		&p.CreatedAt, &p.ReleasedAt, &p.RefundedAt)
}

// Create inserts a payment row. The unique index on (contract_id,
// tranche_type) backs up the service-level duplicate check; a violation is
// surfaced as models.ErrDuplicateTranche.
func (r *PaymentRepo) Create(ctx context.Context, q db.Querier, p *models.EscrowPayment) error {
	err := q.QueryRow(ctx, `
		INSERT INTO escrow_payments (contract_id, tranche_type, amount, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, p.ContractID, p.TrancheType, p.Amount, p.Status).Scan(&p.ID, &p.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return models.ErrDuplicateTranche
	}
	return err
}

func (r *PaymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.EscrowPayment, error) {
	var p models.EscrowPayment
	err := scanPayment(r.pool.QueryRow(ctx,
		`SELECT `+paymentColumns+` FROM escrow_payments WHERE id = $1`, id), &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByIDForUpdate locks the payment row inside q's transaction.
func (r *PaymentRepo) GetByIDForUpdate(ctx context.Context, q db.Querier, id uuid.UUID) (*models.EscrowPayment, error) {
	var p models.EscrowPayment
	err := scanPayment(q.QueryRow(ctx,
		`SELECT `+paymentColumns+` FROM escrow_payments WHERE id = $1 FOR UPDATE`, id), &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepo) ListByContract(ctx context.Context, q db.Querier, contractID uuid.UUID) ([]models.EscrowPayment, error) {
	rows, err := q.Query(ctx, `
		SELECT `+paymentColumns+` FROM escrow_payments
		WHERE contract_id = $1
		ORDER BY created_at ASC
	`, contractID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []models.EscrowPayment
	for rows.Next() {
		var p models.EscrowPayment
		if err := scanPayment(rows, &p); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, nil
}

// UpdateStatus is a compare-and-swap on payment status. Returns false when
// the payment was no longer at expected.
func (r *PaymentRepo) UpdateStatus(ctx context.Context, q db.Querier, id uuid.UUID, expected, status string) (bool, error) {
	tag, err := q.Exec(ctx, `
		UPDATE escrow_payments SET status = $1 WHERE id = $2 AND status = $3
	`, status, id, expected)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// MarkReleased releases a pending-approval payment and stamps released_at.
func (r *PaymentRepo) MarkReleased(ctx context.Context, q db.Querier, id uuid.UUID) (bool, error) {
	tag, err := q.Exec(ctx, `
		UPDATE escrow_payments SET status = $1, released_at = now()
		WHERE id = $2 AND status = $3
	`, models.PaymentStatusReleased, id, models.PaymentStatusPendingApproval)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// MarkRefunded refunds a payment still in escrow and stamps refunded_at.
func (r *PaymentRepo) MarkRefunded(ctx context.Context, q db.Querier, id uuid.UUID) (bool, error) {
	tag, err := q.Exec(ctx, `
		UPDATE escrow_payments SET status = $1, refunded_at = now()
		WHERE id = $2 AND status IN ($3, $4)
	`, models.PaymentStatusRefunded, id, models.PaymentStatusHeld, models.PaymentStatusPendingApproval)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
