package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/lenderly/loanledger/internal/domain"
	"github.com/lenderly/loanledger/internal/usecase"
)

// YieldDepositRepository implements usecase.YieldDepositRepository.
// Deleted deposits stay in the table with deleted_at set; every query
// here filters them out.
type YieldDepositRepository struct {
	pool *pgxpool.Pool
}

// NewYieldDepositRepository creates a new YieldDepositRepository.
func NewYieldDepositRepository(pool *pgxpool.Pool) *YieldDepositRepository {
	return &YieldDepositRepository{pool: pool}
}

const yieldDepositColumns = `
	id, user_id, principal_amount, annual_yield_rate, start_date,
	status, last_payout_date, total_paid_out, deleted_at, created_at, updated_at
`

// Create creates a new yield deposit.
func (r *YieldDepositRepository) Create(ctx context.Context, tx usecase.Transaction, deposit *domain.YieldDeposit) error {
	query := `
		INSERT INTO yield_deposits (` + yieldDepositColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := txQuerier(tx).Exec(ctx, query,
		deposit.ID,
		deposit.UserID,
		decimalToNumeric(deposit.PrincipalAmount),
		decimalToNumeric(deposit.AnnualYieldRate),
		timeToPgTimestamptz(deposit.StartDate),
		string(deposit.Status),
		timePtrToPgTimestamptz(deposit.LastPayoutDate),
		decimalToNumeric(deposit.TotalPaidOut),
		timePtrToPgTimestamptz(deposit.DeletedAt),
		timeToPgTimestamptz(deposit.CreatedAt),
		timeToPgTimestamptz(deposit.UpdatedAt),
	)

	return err
}

// GetByID retrieves a deposit by ID.
func (r *YieldDepositRepository) GetByID(ctx context.Context, id string) (*domain.YieldDeposit, error) {
	query := `SELECT ` + yieldDepositColumns + ` FROM yield_deposits WHERE id = $1 AND deleted_at IS NULL`

	return scanYieldDeposit(r.pool.QueryRow(ctx, query, id))
}

// GetByIDForUpdate retrieves a deposit by ID with a FOR UPDATE lock.
func (r *YieldDepositRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.YieldDeposit, error) {
	query := `SELECT ` + yieldDepositColumns + ` FROM yield_deposits WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`

	return scanYieldDeposit(txQuerier(tx).QueryRow(ctx, query, id))
}

// ListActiveByUserForUpdate locks and returns the user's active
// deposits newest-first, the order the withdrawal allocator consumes
// them in.
func (r *YieldDepositRepository) ListActiveByUserForUpdate(ctx context.Context, tx usecase.Transaction, userID string) ([]*domain.YieldDeposit, error) {
	query := `
		SELECT ` + yieldDepositColumns + `
		FROM yield_deposits
		WHERE user_id = $1 AND status = $2 AND deleted_at IS NULL
		ORDER BY start_date DESC, id DESC
		FOR UPDATE
	`

	return queryYieldDeposits(ctx, txQuerier(tx), query, userID, string(domain.DepositStatusActive))
}

// ListByStatus lists deposits, optionally filtered by status.
func (r *YieldDepositRepository) ListByStatus(ctx context.Context, status domain.DepositStatus, limit, offset int) ([]*domain.YieldDeposit, error) {
	query := `
		SELECT ` + yieldDepositColumns + `
		FROM yield_deposits
		WHERE deleted_at IS NULL
	`
	args := []any{}

	if status != "" {
		args = append(args, string(status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}

	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY created_at, id LIMIT $%d", len(args))

	args = append(args, offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	return queryYieldDeposits(ctx, r.pool, query, args...)
}

// ListPayable returns deposits eligible for a payout on asOf: active,
// not deleted, started on or before asOf.
func (r *YieldDepositRepository) ListPayable(ctx context.Context, asOf time.Time) ([]*domain.YieldDeposit, error) {
	query := `
		SELECT ` + yieldDepositColumns + `
		FROM yield_deposits
		WHERE status = $1 AND deleted_at IS NULL AND start_date <= $2
		ORDER BY id
	`

	return queryYieldDeposits(ctx, r.pool, query, string(domain.DepositStatusActive), timeToPgTimestamptz(asOf))
}

// UpdatePrincipal writes a new principal and status, as produced by
// the withdrawal allocator.
func (r *YieldDepositRepository) UpdatePrincipal(ctx context.Context, tx usecase.Transaction, id string, principal decimal.Decimal, status domain.DepositStatus, updatedAt time.Time) error {
	query := `
		UPDATE yield_deposits
		SET principal_amount = $2, status = $3, updated_at = $4
		WHERE id = $1 AND deleted_at IS NULL
	`

	tag, err := txQuerier(tx).Exec(ctx, query,
		id,
		decimalToNumeric(principal),
		string(status),
		timeToPgTimestamptz(updatedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrDepositNotFound
	}

	return nil
}

// Update writes an administratively overridden deposit.
func (r *YieldDepositRepository) Update(ctx context.Context, tx usecase.Transaction, deposit *domain.YieldDeposit) error {
	query := `
		UPDATE yield_deposits
		SET principal_amount = $2, annual_yield_rate = $3, status = $4, updated_at = $5
		WHERE id = $1 AND deleted_at IS NULL
	`

	tag, err := txQuerier(tx).Exec(ctx, query,
		deposit.ID,
		decimalToNumeric(deposit.PrincipalAmount),
		decimalToNumeric(deposit.AnnualYieldRate),
		string(deposit.Status),
		timeToPgTimestamptz(deposit.UpdatedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrDepositNotFound
	}

	return nil
}

// SoftDelete marks a deposit deleted without touching its payout
// history.
func (r *YieldDepositRepository) SoftDelete(ctx context.Context, tx usecase.Transaction, id string, deletedAt time.Time) error {
	query := `
		UPDATE yield_deposits
		SET deleted_at = $2, updated_at = $2
		WHERE id = $1 AND deleted_at IS NULL
	`

	tag, err := txQuerier(tx).Exec(ctx, query, id, timeToPgTimestamptz(deletedAt))
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrDepositNotFound
	}

	return nil
}

// RecordPayout updates the deposit's payout aggregates.
func (r *YieldDepositRepository) RecordPayout(ctx context.Context, tx usecase.Transaction, id string, totalPaidOut decimal.Decimal, lastPayoutDate, updatedAt time.Time) error {
	query := `
		UPDATE yield_deposits
		SET total_paid_out = $2, last_payout_date = $3, updated_at = $4
		WHERE id = $1 AND deleted_at IS NULL
	`

	tag, err := txQuerier(tx).Exec(ctx, query,
		id,
		decimalToNumeric(totalPaidOut),
		timeToPgTimestamptz(lastPayoutDate),
		timeToPgTimestamptz(updatedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrDepositNotFound
	}

	return nil
}

func queryYieldDeposits(ctx context.Context, q querier, query string, args ...any) ([]*domain.YieldDeposit, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deposits []*domain.YieldDeposit
	for rows.Next() {
		deposit, err := scanYieldDeposit(rows)
		if err != nil {
			return nil, err
		}
		deposits = append(deposits, deposit)
	}

	return deposits, rows.Err()
}

func scanYieldDeposit(row pgx.Row) (*domain.YieldDeposit, error) {
	var (
		deposit        domain.YieldDeposit
		status         string
		principal      pgtype.Numeric
		rate           pgtype.Numeric
		totalPaidOut   pgtype.Numeric
		lastPayoutDate pgtype.Timestamptz
		deletedAt      pgtype.Timestamptz
	)

	err := row.Scan(
		&deposit.ID,
		&deposit.UserID,
		&principal,
		&rate,
		&deposit.StartDate,
		&status,
		&lastPayoutDate,
		&totalPaidOut,
		&deletedAt,
		&deposit.CreatedAt,
		&deposit.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDepositNotFound
		}

		return nil, err
	}

	deposit.Status = domain.DepositStatus(status)
	deposit.PrincipalAmount = numericToDecimal(principal)
	deposit.AnnualYieldRate = numericToDecimal(rate)
	deposit.TotalPaidOut = numericToDecimal(totalPaidOut)
	deposit.LastPayoutDate = pgTimestamptzToTimePtr(lastPayoutDate)
	deposit.DeletedAt = pgTimestamptzToTimePtr(deletedAt)

	return &deposit, nil
}
