package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/lenderly/loanledger/internal/domain"
	"github.com/lenderly/loanledger/internal/usecase"
)

// LoanAccountRepository implements usecase.LoanAccountRepository.
type LoanAccountRepository struct {
	pool *pgxpool.Pool
}

// NewLoanAccountRepository creates a new LoanAccountRepository.
func NewLoanAccountRepository(pool *pgxpool.Pool) *LoanAccountRepository {
	return &LoanAccountRepository{pool: pool}
}

const loanAccountColumns = `
	id, user_id, principal_amount, current_balance, monthly_rate,
	total_bonuses, total_withdrawals, version, created_at, updated_at
`

// Create creates a new loan account.
func (r *LoanAccountRepository) Create(ctx context.Context, tx usecase.Transaction, account *domain.LoanAccount) error {
	query := `
		INSERT INTO loan_accounts (` + loanAccountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := txQuerier(tx).Exec(ctx, query,
		account.ID,
		account.UserID,
		decimalToNumeric(account.PrincipalAmount),
		decimalToNumeric(account.CurrentBalance),
		decimalToNumeric(account.MonthlyRate),
		decimalToNumeric(account.TotalBonuses),
		decimalToNumeric(account.TotalWithdrawals),
		account.Version,
		timeToPgTimestamptz(account.CreatedAt),
		timeToPgTimestamptz(account.UpdatedAt),
	)

	return err
}

// GetByID retrieves a loan account by ID.
func (r *LoanAccountRepository) GetByID(ctx context.Context, id string) (*domain.LoanAccount, error) {
	query := `SELECT ` + loanAccountColumns + ` FROM loan_accounts WHERE id = $1`

	return scanLoanAccount(r.pool.QueryRow(ctx, query, id))
}

// GetByIDForUpdate retrieves a loan account by ID with a FOR UPDATE lock.
func (r *LoanAccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.LoanAccount, error) {
	query := `SELECT ` + loanAccountColumns + ` FROM loan_accounts WHERE id = $1 FOR UPDATE`

	return scanLoanAccount(txQuerier(tx).QueryRow(ctx, query, id))
}

// GetByUserID retrieves a user's loan account.
func (r *LoanAccountRepository) GetByUserID(ctx context.Context, userID string) (*domain.LoanAccount, error) {
	query := `SELECT ` + loanAccountColumns + ` FROM loan_accounts WHERE user_id = $1`

	return scanLoanAccount(r.pool.QueryRow(ctx, query, userID))
}

// GetByUserIDForUpdate retrieves a user's loan account with a FOR UPDATE lock.
func (r *LoanAccountRepository) GetByUserIDForUpdate(ctx context.Context, tx usecase.Transaction, userID string) (*domain.LoanAccount, error) {
	query := `SELECT ` + loanAccountColumns + ` FROM loan_accounts WHERE user_id = $1 FOR UPDATE`

	return scanLoanAccount(txQuerier(tx).QueryRow(ctx, query, userID))
}

// UpdateBalances writes the aggregate balance fields and bumps the
// version counter.
func (r *LoanAccountRepository) UpdateBalances(ctx context.Context, tx usecase.Transaction, id string, balance, totalBonuses, totalWithdrawals decimal.Decimal, updatedAt time.Time) error {
	query := `
		UPDATE loan_accounts
		SET current_balance = $2,
		    total_bonuses = $3,
		    total_withdrawals = $4,
		    version = version + 1,
		    updated_at = $5
		WHERE id = $1
	`

	tag, err := txQuerier(tx).Exec(ctx, query,
		id,
		decimalToNumeric(balance),
		decimalToNumeric(totalBonuses),
		decimalToNumeric(totalWithdrawals),
		timeToPgTimestamptz(updatedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

// List lists loan accounts with pagination.
func (r *LoanAccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.LoanAccount, error) {
	query := `
		SELECT ` + loanAccountColumns + `
		FROM loan_accounts
		ORDER BY created_at, id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.LoanAccount
	for rows.Next() {
		account, err := scanLoanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

func scanLoanAccount(row pgx.Row) (*domain.LoanAccount, error) {
	var (
		account          domain.LoanAccount
		principal        pgtype.Numeric
		balance          pgtype.Numeric
		rate             pgtype.Numeric
		totalBonuses     pgtype.Numeric
		totalWithdrawals pgtype.Numeric
	)

	err := row.Scan(
		&account.ID,
		&account.UserID,
		&principal,
		&balance,
		&rate,
		&totalBonuses,
		&totalWithdrawals,
		&account.Version,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	account.PrincipalAmount = numericToDecimal(principal)
	account.CurrentBalance = numericToDecimal(balance)
	account.MonthlyRate = numericToDecimal(rate)
	account.TotalBonuses = numericToDecimal(totalBonuses)
	account.TotalWithdrawals = numericToDecimal(totalWithdrawals)

	return &account, nil
}
