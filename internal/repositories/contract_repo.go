package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/renohub/backend/internal/db"
	"github.com/renohub/backend/internal/models"
)

type ContractRepo struct {
	pool *pgxpool.Pool
}

func NewContractRepo(pool *pgxpool.Pool) *ContractRepo {
	return &ContractRepo{pool: pool}
}

const contractColumns = `id, owner_user_id, title, client_name, contractor_name, contractor_phone,
	       location, description, start_date, end_date,
	       total_amount, deposit_amount, mid_amount, final_amount, status, created_at, updated_at`

func scanContract(row interface{ Scan(...any) error }, c *models.Contract) error {
	return row.Scan(&c.ID, &c.OwnerUserID, &c.Title, &c.ClientName, &c.ContractorName, &c.ContractorPhone,
		&c.Location, &c.Description, &c.StartDate, &c.EndDate,
		&c.TotalAmount, &c.DepositAmount, &c.MidAmount, &c.FinalAmount, &c.Status, &c.CreatedAt, &c.UpdatedAt)
}

func (r *ContractRepo) Create(ctx context.Context, c *models.Contract) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO contracts (owner_user_id, title, client_name, contractor_name, contractor_phone,
		                       location, description, start_date, end_date,
		                       total_amount, deposit_amount, mid_amount, final_amount, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at
	`, c.OwnerUserID, c.Title, c.ClientName, c.ContractorName, c.ContractorPhone,
		c.Location, c.Description, c.StartDate, c.EndDate,
		c.TotalAmount, c.DepositAmount, c.MidAmount, c.FinalAmount, c.Status,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *ContractRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Contract, error) {
	var c models.Contract
	err := scanContract(r.pool.QueryRow(ctx,
		`SELECT `+contractColumns+` FROM contracts WHERE id = $1`, id), &c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByIDForUpdate locks the contract row for the duration of q's
// transaction. Deposit and approval flows take this lock so concurrent
// operations on the same contract's payment set serialize.
func (r *ContractRepo) GetByIDForUpdate(ctx context.Context, q db.Querier, id uuid.UUID) (*models.Contract, error) {
	var c models.Contract
	err := scanContract(q.QueryRow(ctx,
		`SELECT `+contractColumns+` FROM contracts WHERE id = $1 FOR UPDATE`, id), &c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

type ContractFilter struct {
	OwnerUserID *uuid.UUID
	Status      *string
	Limit       int
	Offset      int
}

// buildContractListQuery renders the filter into SQL. A listing without an
// explicit limit is unbounded: owners see every contract they hold.
func buildContractListQuery(f ContractFilter) (string, []any) {
	query := `SELECT ` + contractColumns + ` FROM contracts`
	args := []any{}
	argIdx := 1
	where := []string{}

	if f.OwnerUserID != nil {
		where = append(where, fmt.Sprintf("owner_user_id = $%d", argIdx))
		args = append(args, *f.OwnerUserID)
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

	query += " ORDER BY created_at DESC"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
		args = append(args, f.Limit, f.Offset)
	}
	return query, args
}

func (r *ContractRepo) List(ctx context.Context, f ContractFilter) ([]models.Contract, error) {
	query, args := buildContractListQuery(f)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contracts []models.Contract
	for rows.Next() {
		var c models.Contract
		if err := scanContract(rows, &c); err != nil {
			return nil, err
		}
		contracts = append(contracts, c)
	}
	return contracts, nil
}

// UpdateStatus moves the contract to status only if it is still at expected,
// a compare-and-swap so concurrent advances cannot double-apply. Returns
// false when no row matched.
func (r *ContractRepo) UpdateStatus(ctx context.Context, id uuid.UUID, expected, status string) (bool, error) {
	return r.UpdateStatusTx(ctx, r.pool, id, expected, status)
}

// UpdateStatusTx is UpdateStatus inside a caller-owned transaction.
func (r *ContractRepo) UpdateStatusTx(ctx context.Context, q db.Querier, id uuid.UUID, expected, status string) (bool, error) {
	tag, err := q.Exec(ctx, `
		UPDATE contracts SET status = $1, updated_at = now() WHERE id = $2 AND status = $3
	`, status, id, expected)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
