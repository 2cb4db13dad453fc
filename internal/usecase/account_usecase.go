package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lenderly/loanledger/internal/domain"
)

// AccountUseCase handles loan account business logic.
type AccountUseCase struct {
	txManager   TransactionManager
	accountRepo LoanAccountRepository
	txnRepo     TransactionRepository
	auditRepo   AuditRepository
	idGen       IDGenerator
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(
	txManager TransactionManager,
	accountRepo LoanAccountRepository,
	txnRepo TransactionRepository,
	auditRepo AuditRepository,
	idGen IDGenerator,
) *AccountUseCase {
	return &AccountUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		auditRepo:   auditRepo,
		idGen:       idGen,
	}
}

// CreateAccountInput represents input for creating a loan account.
type CreateAccountInput struct {
	UserID          string
	PrincipalAmount decimal.Decimal
	MonthlyRate     decimal.Decimal
	Description     string
}

// CreateAccount creates a loan account together with its opening
// "loan" ledger row, so the balance is reproducible from the ledger
// from day one.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.LoanAccount, error) {
	if err := domain.ValidateAmount(input.PrincipalAmount); err != nil {
		return nil, err
	}

	if err := domain.ValidateMonthlyRate(input.MonthlyRate); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	account := &domain.LoanAccount{
		ID:               uc.idGen.Generate(),
		UserID:           input.UserID,
		PrincipalAmount:  input.PrincipalAmount,
		CurrentBalance:   input.PrincipalAmount,
		MonthlyRate:      input.MonthlyRate,
		TotalBonuses:     decimal.Zero,
		TotalWithdrawals: decimal.Zero,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	opening := &domain.Transaction{
		ID:              uc.idGen.Generate(),
		LoanAccountID:   account.ID,
		Type:            domain.TxnTypeLoan,
		Amount:          input.PrincipalAmount,
		Description:     input.Description,
		TransactionDate: now,
		CreatedAt:       now,
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.accountRepo.Create(ctx, tx, account); err != nil {
		return nil, err
	}

	if err := uc.txnRepo.Create(ctx, tx, opening); err != nil {
		return nil, err
	}

	if uc.auditRepo != nil {
		if err := uc.auditRepo.CreateTx(ctx, tx, &domain.AuditLog{
			ID:           uc.idGen.Generate(),
			ActorID:      input.UserID,
			Action:       string(domain.AuditActionAccountCreate),
			ResourceType: "loan_account",
			ResourceID:   account.ID,
			AfterState:   domain.MarshalState(account),
			Status:       string(domain.AuditStatusSuccess),
			CreatedAt:    now,
		}); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return account, nil
}

// GetAccount retrieves a loan account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.LoanAccount, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// GetAccountByUser retrieves a user's loan account.
func (uc *AccountUseCase) GetAccountByUser(ctx context.Context, userID string) (*domain.LoanAccount, error) {
	return uc.accountRepo.GetByUserID(ctx, userID)
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Limit  int
	Offset int
}

// ListAccounts lists loan accounts with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.LoanAccount, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.accountRepo.List(ctx, limit, offset)
}

// ListTransactionsInput represents input for listing ledger transactions.
type ListTransactionsInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// ListTransactions lists an account's ledger transactions.
func (uc *AccountUseCase) ListTransactions(ctx context.Context, input ListTransactionsInput) ([]*domain.Transaction, error) {
	if _, err := uc.accountRepo.GetByID(ctx, input.AccountID); err != nil {
		return nil, err
	}

	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.txnRepo.ListByAccount(ctx, input.AccountID, limit, offset)
}

// RecordTransactionInput represents an administrative ledger entry.
type RecordTransactionInput struct {
	AccountID       string
	Type            domain.TransactionType
	Amount          decimal.Decimal
	BonusPercentage *decimal.Decimal
	Description     string
	ReferenceID     *string
	TransactionDate time.Time
	ActorID         string
}

// RecordTransaction appends a bonus or adjustment to the ledger and
// moves the account balance in the same transaction. Withdrawals go
// through the allocator, deposits through the yield deposit lifecycle.
func (uc *AccountUseCase) RecordTransaction(ctx context.Context, input RecordTransactionInput) (*domain.Transaction, error) {
	if input.Type != domain.TxnTypeBonus && input.Type != domain.TxnTypeAdjustment {
		return nil, domain.ErrInvalidTransaction
	}

	now := time.Now().UTC()
	when := input.TransactionDate
	if when.IsZero() {
		when = now
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, input.AccountID)
	if err != nil {
		return nil, err
	}

	txn := &domain.Transaction{
		ID:              uc.idGen.Generate(),
		LoanAccountID:   account.ID,
		Type:            input.Type,
		Amount:          input.Amount,
		BonusPercentage: input.BonusPercentage,
		Description:     input.Description,
		ReferenceID:     input.ReferenceID,
		TransactionDate: when.UTC(),
		CreatedAt:       now,
	}

	if err := txn.Validate(account.CreatedAt); err != nil {
		return nil, err
	}

	if err := uc.txnRepo.Create(ctx, tx, txn); err != nil {
		return nil, err
	}

	balance := account.ApplyCredit(txn.Amount)
	totalBonuses := account.TotalBonuses
	if txn.Type == domain.TxnTypeBonus {
		totalBonuses = totalBonuses.Add(txn.Amount)
	}

	if err := uc.accountRepo.UpdateBalances(ctx, tx, account.ID, balance, totalBonuses, account.TotalWithdrawals, now); err != nil {
		return nil, err
	}

	if uc.auditRepo != nil {
		if err := uc.auditRepo.CreateTx(ctx, tx, &domain.AuditLog{
			ID:           uc.idGen.Generate(),
			ActorID:      input.ActorID,
			Action:       "transaction." + string(input.Type),
			ResourceType: "loan_account",
			ResourceID:   account.ID,
			AfterState:   domain.MarshalState(txn),
			Status:       string(domain.AuditStatusSuccess),
			CreatedAt:    now,
		}); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return txn, nil
}
