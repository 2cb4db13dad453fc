package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/lenderly/loanledger/internal/domain"
)

// ReplayUseCase recomputes and persists account balance history.
type ReplayUseCase struct {
	txManager   TransactionManager
	accountRepo LoanAccountRepository
	txnRepo     TransactionRepository
	monthlyRepo MonthlyBalanceRepository
	lock        ReplayLock
	cache       Cache
	idGen       IDGenerator
	logger      zerolog.Logger
}

// NewReplayUseCase creates a new ReplayUseCase.
func NewReplayUseCase(
	txManager TransactionManager,
	accountRepo LoanAccountRepository,
	txnRepo TransactionRepository,
	monthlyRepo MonthlyBalanceRepository,
	lock ReplayLock,
	cache Cache,
	idGen IDGenerator,
	logger zerolog.Logger,
) *ReplayUseCase {
	return &ReplayUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		monthlyRepo: monthlyRepo,
		lock:        lock,
		cache:       cache,
		idGen:       idGen,
		logger:      logger,
	}
}

// ReplayReport summarizes a persisted replay.
type ReplayReport struct {
	AccountID       string
	MonthsProcessed int
	ClosingBalance  decimal.Decimal
}

// ReplayAndPersist replays the account's full transaction history as
// of now and persists the result.
func (uc *ReplayUseCase) ReplayAndPersist(ctx context.Context, accountID string) (*ReplayReport, error) {
	return uc.ReplayAndPersistAt(ctx, accountID, time.Now().UTC())
}

// ReplayAndPersistAt replays as of an explicit point in time. Replay
// for one account is serialized: a second concurrent call observes
// ErrReplayInProgress instead of interleaving writes. The monthly
// rows and the aggregate balance fields are written in one database
// transaction, so readers never see them disagree.
func (uc *ReplayUseCase) ReplayAndPersistAt(ctx context.Context, accountID string, asOf time.Time) (*ReplayReport, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	acquired, err := uc.lock.Acquire(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, domain.ErrReplayInProgress
	}
	defer func() {
		if err := uc.lock.Release(ctx, accountID); err != nil {
			uc.logger.Warn().Err(err).Str("account_id", accountID).Msg("failed to release replay lock")
		}
	}()

	txns, err := uc.txnRepo.ListForReplay(ctx, accountID)
	if err != nil {
		return nil, err
	}

	result, err := domain.Replay(account.PrincipalAmount, account.MonthlyRate, account.CreatedAt, txns, asOf)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, accountID); err != nil {
		return nil, err
	}

	for _, row := range result.Months {
		row.ID = uc.idGen.Generate()
		row.LoanAccountID = accountID
	}

	if err := uc.monthlyRepo.ReplaceForAccount(ctx, tx, accountID, result.Months); err != nil {
		return nil, err
	}

	err = uc.accountRepo.UpdateBalances(ctx, tx, accountID,
		result.ClosingBalance, result.TotalBonuses, result.TotalWithdrawals, now)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	uc.invalidateAnalytics(ctx, accountID)

	uc.logger.Info().
		Str("account_id", accountID).
		Int("months_processed", result.MonthsProcessed).
		Str("closing_balance", result.ClosingBalance.String()).
		Msg("replay persisted")

	return &ReplayReport{
		AccountID:       accountID,
		MonthsProcessed: result.MonthsProcessed,
		ClosingBalance:  result.ClosingBalance,
	}, nil
}

func (uc *ReplayUseCase) invalidateAnalytics(ctx context.Context, accountID string) {
	if uc.cache == nil {
		return
	}

	for _, period := range []int{domain.PeriodHalfYear, domain.PeriodOneYear, domain.PeriodTwoYears} {
		if err := uc.cache.Delete(ctx, analyticsCacheKey(accountID, period)); err != nil {
			uc.logger.Warn().Err(err).Str("account_id", accountID).Msg("failed to invalidate analytics cache")
		}
	}
}
