package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lenderly/loanledger/internal/domain"
	"github.com/lenderly/loanledger/internal/usecase"
)

// MonthlyBalanceRepository implements usecase.MonthlyBalanceRepository.
type MonthlyBalanceRepository struct {
	pool *pgxpool.Pool
}

// NewMonthlyBalanceRepository creates a new MonthlyBalanceRepository.
func NewMonthlyBalanceRepository(pool *pgxpool.Pool) *MonthlyBalanceRepository {
	return &MonthlyBalanceRepository{pool: pool}
}

// ReplaceForAccount swaps the account's history rows inside the
// caller's transaction. Delete-then-insert keeps replay idempotent.
func (r *MonthlyBalanceRepository) ReplaceForAccount(ctx context.Context, tx usecase.Transaction, accountID string, rows []*domain.MonthlyBalance) error {
	q := txQuerier(tx)

	if _, err := q.Exec(ctx, `DELETE FROM monthly_balances WHERE loan_account_id = $1`, accountID); err != nil {
		return err
	}

	query := `
		INSERT INTO monthly_balances (
			id, loan_account_id, month, balance,
			monthly_payment, bonus_payment, withdrawal, net_growth
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	for _, row := range rows {
		_, err := q.Exec(ctx, query,
			row.ID,
			row.LoanAccountID,
			timeToPgTimestamptz(row.Month),
			decimalToNumeric(row.Balance),
			decimalToNumeric(row.MonthlyPayment),
			decimalToNumeric(row.BonusPayment),
			decimalToNumeric(row.Withdrawal),
			decimalToNumeric(row.NetGrowth),
		)
		if err != nil {
			return err
		}
	}

	return nil
}

// ListByAccount returns the account's history rows in month order.
func (r *MonthlyBalanceRepository) ListByAccount(ctx context.Context, accountID string) ([]*domain.MonthlyBalance, error) {
	query := `
		SELECT id, loan_account_id, month, balance,
		       monthly_payment, bonus_payment, withdrawal, net_growth
		FROM monthly_balances
		WHERE loan_account_id = $1
		ORDER BY month
	`

	rows, err := r.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balances []*domain.MonthlyBalance
	for rows.Next() {
		var (
			mb             domain.MonthlyBalance
			balance        pgtype.Numeric
			monthlyPayment pgtype.Numeric
			bonusPayment   pgtype.Numeric
			withdrawal     pgtype.Numeric
			netGrowth      pgtype.Numeric
		)

		err := rows.Scan(
			&mb.ID,
			&mb.LoanAccountID,
			&mb.Month,
			&balance,
			&monthlyPayment,
			&bonusPayment,
			&withdrawal,
			&netGrowth,
		)
		if err != nil {
			return nil, err
		}

		mb.Month = domain.MonthStart(mb.Month)
		mb.Balance = numericToDecimal(balance)
		mb.MonthlyPayment = numericToDecimal(monthlyPayment)
		mb.BonusPayment = numericToDecimal(bonusPayment)
		mb.Withdrawal = numericToDecimal(withdrawal)
		mb.NetGrowth = numericToDecimal(netGrowth)

		balances = append(balances, &mb)
	}

	return balances, rows.Err()
}
