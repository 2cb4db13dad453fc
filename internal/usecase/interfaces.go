package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lenderly/loanledger/internal/domain"
)

// LoanAccountRepository defines data access for loan accounts.
type LoanAccountRepository interface {
	Create(ctx context.Context, tx Transaction, account *domain.LoanAccount) error
	GetByID(ctx context.Context, id string) (*domain.LoanAccount, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.LoanAccount, error)
	GetByUserID(ctx context.Context, userID string) (*domain.LoanAccount, error)
	GetByUserIDForUpdate(ctx context.Context, tx Transaction, userID string) (*domain.LoanAccount, error)
	// UpdateBalances writes the engine-owned aggregate fields. Callers
	// must append the ledger rows that justify the change in the same
	// transaction.
	UpdateBalances(ctx context.Context, tx Transaction, id string, balance, totalBonuses, totalWithdrawals decimal.Decimal, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.LoanAccount, error)
}

// TransactionRepository defines data access for ledger transactions.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, txn *domain.Transaction) error
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error)
	// ListForReplay returns every transaction of the account ordered by
	// (transaction_date, created_at, id) ascending.
	ListForReplay(ctx context.Context, accountID string) ([]*domain.Transaction, error)
}

// MonthlyBalanceRepository defines data access for replayed history rows.
type MonthlyBalanceRepository interface {
	// ReplaceForAccount deletes the account's existing rows and inserts
	// the supplied ones, so re-running replay is idempotent rather than
	// additive.
	ReplaceForAccount(ctx context.Context, tx Transaction, accountID string, rows []*domain.MonthlyBalance) error
	ListByAccount(ctx context.Context, accountID string) ([]*domain.MonthlyBalance, error)
}

// YieldDepositRepository defines data access for yield deposits.
type YieldDepositRepository interface {
	Create(ctx context.Context, tx Transaction, deposit *domain.YieldDeposit) error
	GetByID(ctx context.Context, id string) (*domain.YieldDeposit, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.YieldDeposit, error)
	// ListActiveByUserForUpdate locks and returns the user's active
	// deposits ordered by start_date descending, id descending.
	ListActiveByUserForUpdate(ctx context.Context, tx Transaction, userID string) ([]*domain.YieldDeposit, error)
	ListByStatus(ctx context.Context, status domain.DepositStatus, limit, offset int) ([]*domain.YieldDeposit, error)
	ListPayable(ctx context.Context, asOf time.Time) ([]*domain.YieldDeposit, error)
	UpdatePrincipal(ctx context.Context, tx Transaction, id string, principal decimal.Decimal, status domain.DepositStatus, updatedAt time.Time) error
	Update(ctx context.Context, tx Transaction, deposit *domain.YieldDeposit) error
	SoftDelete(ctx context.Context, tx Transaction, id string, deletedAt time.Time) error
	RecordPayout(ctx context.Context, tx Transaction, id string, totalPaidOut decimal.Decimal, lastPayoutDate time.Time, updatedAt time.Time) error
}

// YieldPayoutRepository defines data access for payout audit rows.
type YieldPayoutRepository interface {
	Create(ctx context.Context, tx Transaction, payout *domain.YieldPayout) error
	Exists(ctx context.Context, depositID string, payoutDate time.Time, kind domain.PayoutKind) (bool, error)
	ListByDate(ctx context.Context, payoutDate time.Time, kind domain.PayoutKind) ([]*domain.YieldPayout, error)
	ListByDeposit(ctx context.Context, depositID string, limit, offset int) ([]*domain.YieldPayout, error)
	SumForDeposit(ctx context.Context, depositID string, kind domain.PayoutKind, from, to time.Time) (decimal.Decimal, error)
}

// AuditRepository defines data access for audit logs.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	CreateTx(ctx context.Context, tx Transaction, log *domain.AuditLog) error
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// ReplayLock serializes balance replay per account across processes.
// Acquire returns false when another replay holds the lock.
type ReplayLock interface {
	Acquire(ctx context.Context, accountID string) (bool, error)
	Release(ctx context.Context, accountID string) error
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
