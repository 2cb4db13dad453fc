package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/lenderly/loanledger/internal/domain"
	"github.com/lenderly/loanledger/internal/usecase"
)

// YieldPayoutRepository implements usecase.YieldPayoutRepository.
// The (deposit_id, payout_date, kind) unique constraint is the
// database-level idempotency guarantee behind batch re-runs.
type YieldPayoutRepository struct {
	pool *pgxpool.Pool
}

// NewYieldPayoutRepository creates a new YieldPayoutRepository.
func NewYieldPayoutRepository(pool *pgxpool.Pool) *YieldPayoutRepository {
	return &YieldPayoutRepository{pool: pool}
}

const yieldPayoutColumns = `id, deposit_id, amount, payout_date, kind, created_at`

// Create appends a payout row.
func (r *YieldPayoutRepository) Create(ctx context.Context, tx usecase.Transaction, payout *domain.YieldPayout) error {
	query := `
		INSERT INTO yield_payouts (` + yieldPayoutColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := txQuerier(tx).Exec(ctx, query,
		payout.ID,
		payout.DepositID,
		decimalToNumeric(payout.Amount),
		timeToPgTimestamptz(payout.PayoutDate),
		string(payout.Kind),
		timeToPgTimestamptz(payout.CreatedAt),
	)

	return err
}

// Exists reports whether a payout row already exists for the
// idempotency key.
func (r *YieldPayoutRepository) Exists(ctx context.Context, depositID string, payoutDate time.Time, kind domain.PayoutKind) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM yield_payouts
			WHERE deposit_id = $1 AND payout_date = $2 AND kind = $3
		)
	`

	var exists bool
	err := r.pool.QueryRow(ctx, query, depositID, timeToPgTimestamptz(payoutDate), string(kind)).Scan(&exists)

	return exists, err
}

// ListByDate lists all payouts of a kind for one date.
func (r *YieldPayoutRepository) ListByDate(ctx context.Context, payoutDate time.Time, kind domain.PayoutKind) ([]*domain.YieldPayout, error) {
	query := `
		SELECT ` + yieldPayoutColumns + `
		FROM yield_payouts
		WHERE payout_date = $1 AND kind = $2
		ORDER BY deposit_id
	`

	return r.queryPayouts(ctx, query, timeToPgTimestamptz(payoutDate), string(kind))
}

// ListByDeposit lists a deposit's payout history, newest first.
func (r *YieldPayoutRepository) ListByDeposit(ctx context.Context, depositID string, limit, offset int) ([]*domain.YieldPayout, error) {
	query := `
		SELECT ` + yieldPayoutColumns + `
		FROM yield_payouts
		WHERE deposit_id = $1
		ORDER BY payout_date DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	return r.queryPayouts(ctx, query, depositID, limit, offset)
}

// SumForDeposit sums payouts of a kind in the half-open window
// (from, to].
func (r *YieldPayoutRepository) SumForDeposit(ctx context.Context, depositID string, kind domain.PayoutKind, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM yield_payouts
		WHERE deposit_id = $1 AND kind = $2 AND payout_date > $3 AND payout_date <= $4
	`

	var sum pgtype.Numeric
	err := r.pool.QueryRow(ctx, query,
		depositID,
		string(kind),
		timeToPgTimestamptz(from),
		timeToPgTimestamptz(to),
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(sum), nil
}

func (r *YieldPayoutRepository) queryPayouts(ctx context.Context, query string, args ...any) ([]*domain.YieldPayout, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payouts []*domain.YieldPayout
	for rows.Next() {
		payout, err := scanYieldPayout(rows)
		if err != nil {
			return nil, err
		}
		payouts = append(payouts, payout)
	}

	return payouts, rows.Err()
}

func scanYieldPayout(row pgx.Row) (*domain.YieldPayout, error) {
	var (
		payout domain.YieldPayout
		amount pgtype.Numeric
		kind   string
	)

	err := row.Scan(
		&payout.ID,
		&payout.DepositID,
		&amount,
		&payout.PayoutDate,
		&kind,
		&payout.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	payout.Amount = numericToDecimal(amount)
	payout.Kind = domain.PayoutKind(kind)

	return &payout, nil
}
