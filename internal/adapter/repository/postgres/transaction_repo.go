package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lenderly/loanledger/internal/domain"
	"github.com/lenderly/loanledger/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
// Ledger rows are append-only: there is no update or delete here.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const transactionColumns = `
	id, loan_account_id, type, amount, bonus_percentage,
	description, reference_id, transaction_date, created_at
`

// Create appends a ledger transaction.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	query := `
		INSERT INTO loan_transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	var bonusPct pgtype.Numeric
	if txn.BonusPercentage != nil {
		bonusPct = decimalToNumeric(*txn.BonusPercentage)
	}

	_, err := txQuerier(tx).Exec(ctx, query,
		txn.ID,
		txn.LoanAccountID,
		string(txn.Type),
		decimalToNumeric(txn.Amount),
		bonusPct,
		txn.Description,
		txn.ReferenceID,
		timeToPgTimestamptz(txn.TransactionDate),
		timeToPgTimestamptz(txn.CreatedAt),
	)

	return err
}

// ListByAccount lists an account's transactions, newest first.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM loan_transactions
		WHERE loan_account_id = $1
		ORDER BY transaction_date DESC, created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	return r.queryTransactions(ctx, query, accountID, limit, offset)
}

// ListForReplay returns every transaction of the account in replay
// order: transaction_date, created_at, id ascending.
func (r *TransactionRepository) ListForReplay(ctx context.Context, accountID string) ([]*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM loan_transactions
		WHERE loan_account_id = $1
		ORDER BY transaction_date, created_at, id
	`

	return r.queryTransactions(ctx, query, accountID)
}

func (r *TransactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []*domain.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}

	return txns, rows.Err()
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		txn      domain.Transaction
		typ      string
		amount   pgtype.Numeric
		bonusPct pgtype.Numeric
	)

	err := row.Scan(
		&txn.ID,
		&txn.LoanAccountID,
		&typ,
		&amount,
		&bonusPct,
		&txn.Description,
		&txn.ReferenceID,
		&txn.TransactionDate,
		&txn.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	txn.Type = domain.TransactionType(typ)
	txn.Amount = numericToDecimal(amount)
	if bonusPct.Valid {
		pct := numericToDecimal(bonusPct)
		txn.BonusPercentage = &pct
	}

	return &txn, nil
}
