package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lenderly/loanledger/internal/domain"
)

// WithdrawalUseCase distributes approved withdrawals across a user's
// yield deposits.
type WithdrawalUseCase struct {
	txManager   TransactionManager
	accountRepo LoanAccountRepository
	txnRepo     TransactionRepository
	depositRepo YieldDepositRepository
	auditRepo   AuditRepository
	idGen       IDGenerator
}

// NewWithdrawalUseCase creates a new WithdrawalUseCase.
func NewWithdrawalUseCase(
	txManager TransactionManager,
	accountRepo LoanAccountRepository,
	txnRepo TransactionRepository,
	depositRepo YieldDepositRepository,
	auditRepo AuditRepository,
	idGen IDGenerator,
) *WithdrawalUseCase {
	return &WithdrawalUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		depositRepo: depositRepo,
		auditRepo:   auditRepo,
		idGen:       idGen,
	}
}

// WithdrawalResult reports how a withdrawal was allocated. Remainder
// is the unallocatable shortfall; the caller decides whether that is
// a hard failure or a partial success.
type WithdrawalResult struct {
	Steps     []domain.AllocationStep
	Allocated decimal.Decimal
	Remainder decimal.Decimal
}

// AllocateWithdrawal walks the user's active deposits newest-first,
// reducing principal until the amount is covered or deposits run out.
// All deposit reductions, the withdrawal ledger row and the account
// balance move commit in a single transaction, or none of them do.
func (uc *WithdrawalUseCase) AllocateWithdrawal(ctx context.Context, userID string, amount decimal.Decimal, referenceID *string) (*WithdrawalResult, error) {
	if err := domain.ValidateAmount(amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetByUserIDForUpdate(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	deposits, err := uc.depositRepo.ListActiveByUserForUpdate(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	plan, err := domain.PlanWithdrawal(deposits, amount)
	if err != nil {
		return nil, err
	}

	for _, step := range plan.Steps {
		status := domain.DepositStatusActive
		if step.Completed {
			status = domain.DepositStatusCompleted
		}

		if err := uc.depositRepo.UpdatePrincipal(ctx, tx, step.DepositID, step.NewPrincipal, status, now); err != nil {
			return nil, err
		}
	}

	if plan.Allocated.IsPositive() {
		txn := &domain.Transaction{
			ID:              uc.idGen.Generate(),
			LoanAccountID:   account.ID,
			Type:            domain.TxnTypeWithdrawal,
			Amount:          plan.Allocated,
			Description:     "yield deposit withdrawal",
			ReferenceID:     referenceID,
			TransactionDate: now,
			CreatedAt:       now,
		}

		if err := uc.txnRepo.Create(ctx, tx, txn); err != nil {
			return nil, err
		}

		balance := account.ApplyDebit(plan.Allocated)
		totalWithdrawals := account.TotalWithdrawals.Add(plan.Allocated)

		if err := uc.accountRepo.UpdateBalances(ctx, tx, account.ID, balance, account.TotalBonuses, totalWithdrawals, now); err != nil {
			return nil, err
		}
	}

	if uc.auditRepo != nil {
		if err := uc.auditRepo.CreateTx(ctx, tx, &domain.AuditLog{
			ID:           uc.idGen.Generate(),
			ActorID:      userID,
			Action:       string(domain.AuditActionWithdrawalAllocate),
			ResourceType: "withdrawal",
			ResourceID:   account.ID,
			AfterState: domain.JSON{
				"requested": amount.String(),
				"allocated": plan.Allocated.String(),
				"remainder": plan.Remainder.String(),
				"steps":     len(plan.Steps),
			},
			Status:    string(domain.AuditStatusSuccess),
			CreatedAt: now,
		}); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &WithdrawalResult{
		Steps:     plan.Steps,
		Allocated: plan.Allocated,
		Remainder: plan.Remainder,
	}, nil
}
