package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lenderly/loanledger/internal/domain"
)

// DepositUseCase handles the yield deposit lifecycle.
type DepositUseCase struct {
	txManager   TransactionManager
	accountRepo LoanAccountRepository
	txnRepo     TransactionRepository
	depositRepo YieldDepositRepository
	payoutRepo  YieldPayoutRepository
	auditRepo   AuditRepository
	idGen       IDGenerator
}

// NewDepositUseCase creates a new DepositUseCase.
func NewDepositUseCase(
	txManager TransactionManager,
	accountRepo LoanAccountRepository,
	txnRepo TransactionRepository,
	depositRepo YieldDepositRepository,
	payoutRepo YieldPayoutRepository,
	auditRepo AuditRepository,
	idGen IDGenerator,
) *DepositUseCase {
	return &DepositUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		depositRepo: depositRepo,
		payoutRepo:  payoutRepo,
		auditRepo:   auditRepo,
		idGen:       idGen,
	}
}

// CreateDepositInput represents input for creating a yield deposit.
type CreateDepositInput struct {
	UserID          string
	Amount          decimal.Decimal
	AnnualYieldRate decimal.Decimal
	StartDate       time.Time
	Description     string
	ActorID         string
}

// CreateDeposit creates a yield deposit and credits its principal to
// the user's loan ledger as a deposit transaction dated start_date,
// in one database transaction. A future start date is accepted as
// future-effective: the deposit exists but earns nothing and the
// stored balance is not credited until start_date passes.
func (uc *DepositUseCase) CreateDeposit(ctx context.Context, input CreateDepositInput) (*domain.YieldDeposit, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	if err := domain.ValidateAnnualRate(input.AnnualYieldRate); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	startDate := input.StartDate.UTC()
	if input.StartDate.IsZero() {
		startDate = now
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetByUserIDForUpdate(ctx, tx, input.UserID)
	if err != nil {
		return nil, err
	}

	deposit := &domain.YieldDeposit{
		ID:              uc.idGen.Generate(),
		UserID:          input.UserID,
		PrincipalAmount: input.Amount,
		AnnualYieldRate: input.AnnualYieldRate,
		StartDate:       startDate,
		Status:          domain.DepositStatusActive,
		TotalPaidOut:    decimal.Zero,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := deposit.Validate(); err != nil {
		return nil, err
	}

	txn := &domain.Transaction{
		ID:              uc.idGen.Generate(),
		LoanAccountID:   account.ID,
		Type:            domain.TxnTypeDeposit,
		Amount:          input.Amount,
		Description:     input.Description,
		ReferenceID:     &deposit.ID,
		TransactionDate: startDate,
		CreatedAt:       now,
	}

	if err := txn.Validate(account.CreatedAt); err != nil {
		return nil, err
	}

	if err := uc.depositRepo.Create(ctx, tx, deposit); err != nil {
		return nil, err
	}

	if err := uc.txnRepo.Create(ctx, tx, txn); err != nil {
		return nil, err
	}

	// A future-dated deposit leaves the stored balance untouched: the
	// ledger row is not effective until start_date, and replay would
	// strip a premature credit on the next run.
	if !startDate.After(now) {
		balance := account.ApplyCredit(input.Amount)
		if err := uc.accountRepo.UpdateBalances(ctx, tx, account.ID, balance, account.TotalBonuses, account.TotalWithdrawals, now); err != nil {
			return nil, err
		}
	}

	if uc.auditRepo != nil {
		if err := uc.auditRepo.CreateTx(ctx, tx, &domain.AuditLog{
			ID:           uc.idGen.Generate(),
			ActorID:      input.ActorID,
			Action:       string(domain.AuditActionDepositCreate),
			ResourceType: "yield_deposit",
			ResourceID:   deposit.ID,
			AfterState:   domain.MarshalState(deposit),
			Status:       string(domain.AuditStatusSuccess),
			CreatedAt:    now,
		}); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return deposit, nil
}

// UpdateDepositInput represents an administrative deposit override.
// Nil fields are left unchanged.
type UpdateDepositInput struct {
	DepositID       string
	PrincipalAmount *decimal.Decimal
	AnnualYieldRate *decimal.Decimal
	Status          *domain.DepositStatus
	ActorID         string
}

// UpdateDeposit applies an administrative override. Principal edits
// here bypass LIFO accounting, so the change is audited distinctly
// from withdrawal-driven reductions.
func (uc *DepositUseCase) UpdateDeposit(ctx context.Context, input UpdateDepositInput) (*domain.YieldDeposit, error) {
	now := time.Now().UTC()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	deposit, err := uc.depositRepo.GetByIDForUpdate(ctx, tx, input.DepositID)
	if err != nil {
		return nil, err
	}

	before := domain.MarshalState(deposit)

	if input.PrincipalAmount != nil {
		if input.PrincipalAmount.IsNegative() {
			return nil, domain.ErrInvalidPrincipal
		}
		deposit.PrincipalAmount = *input.PrincipalAmount
	}

	if input.AnnualYieldRate != nil {
		if err := domain.ValidateAnnualRate(*input.AnnualYieldRate); err != nil {
			return nil, err
		}
		deposit.AnnualYieldRate = *input.AnnualYieldRate
	}

	if input.Status != nil {
		if !domain.ValidDepositStatus(*input.Status) {
			return nil, domain.ErrInvalidStatus
		}
		deposit.Status = *input.Status
	}

	if deposit.PrincipalAmount.IsZero() {
		deposit.Status = domain.DepositStatusCompleted
	}

	deposit.UpdatedAt = now

	if err := uc.depositRepo.Update(ctx, tx, deposit); err != nil {
		return nil, err
	}

	if uc.auditRepo != nil {
		if err := uc.auditRepo.CreateTx(ctx, tx, &domain.AuditLog{
			ID:           uc.idGen.Generate(),
			ActorID:      input.ActorID,
			Action:       string(domain.AuditActionDepositOverride),
			ResourceType: "yield_deposit",
			ResourceID:   deposit.ID,
			BeforeState:  before,
			AfterState:   domain.MarshalState(deposit),
			Status:       string(domain.AuditStatusSuccess),
			CreatedAt:    now,
		}); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return deposit, nil
}

// DeleteDeposit marks a deposit deleted. Prior payouts stay in the
// yield_payouts audit trail untouched.
func (uc *DepositUseCase) DeleteDeposit(ctx context.Context, depositID, actorID string) error {
	now := time.Now().UTC()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	deposit, err := uc.depositRepo.GetByIDForUpdate(ctx, tx, depositID)
	if err != nil {
		return err
	}

	if err := uc.depositRepo.SoftDelete(ctx, tx, depositID, now); err != nil {
		return err
	}

	if uc.auditRepo != nil {
		if err := uc.auditRepo.CreateTx(ctx, tx, &domain.AuditLog{
			ID:           uc.idGen.Generate(),
			ActorID:      actorID,
			Action:       string(domain.AuditActionDepositDelete),
			ResourceType: "yield_deposit",
			ResourceID:   depositID,
			BeforeState:  domain.MarshalState(deposit),
			Status:       string(domain.AuditStatusSuccess),
			CreatedAt:    now,
		}); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// GetDeposit retrieves a deposit by ID.
func (uc *DepositUseCase) GetDeposit(ctx context.Context, id string) (*domain.YieldDeposit, error) {
	return uc.depositRepo.GetByID(ctx, id)
}

// ListDepositsInput represents input for listing deposits.
type ListDepositsInput struct {
	Status domain.DepositStatus
	Limit  int
	Offset int
}

// ListDeposits lists deposits, optionally filtered by status.
func (uc *DepositUseCase) ListDeposits(ctx context.Context, input ListDepositsInput) ([]*domain.YieldDeposit, error) {
	if input.Status != "" && !domain.ValidDepositStatus(input.Status) {
		return nil, domain.ErrInvalidStatus
	}

	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.depositRepo.ListByStatus(ctx, input.Status, limit, offset)
}

// ListPayouts lists a deposit's payout history.
func (uc *DepositUseCase) ListPayouts(ctx context.Context, depositID string, limit, offset int) ([]*domain.YieldPayout, error) {
	if _, err := uc.depositRepo.GetByID(ctx, depositID); err != nil {
		return nil, err
	}

	limit, offset = domain.ValidatePagination(limit, offset)

	return uc.payoutRepo.ListByDeposit(ctx, depositID, limit, offset)
}
