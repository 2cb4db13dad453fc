package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lenderly/loanledger/internal/domain"
)

const analyticsCacheTTL = 5 * time.Minute

// AnalyticsUseCase serves balance-history views.
type AnalyticsUseCase struct {
	accountRepo LoanAccountRepository
	monthlyRepo MonthlyBalanceRepository
	cache       Cache
}

// NewAnalyticsUseCase creates a new AnalyticsUseCase.
func NewAnalyticsUseCase(
	accountRepo LoanAccountRepository,
	monthlyRepo MonthlyBalanceRepository,
	cache Cache,
) *AnalyticsUseCase {
	return &AnalyticsUseCase{
		accountRepo: accountRepo,
		monthlyRepo: monthlyRepo,
		cache:       cache,
	}
}

// GetAnalytics builds the analytics view for an account. Any
// unrecognized period falls back to 24 months; a cached view is
// served when present. Ownership checks belong to the caller.
func (uc *AnalyticsUseCase) GetAnalytics(ctx context.Context, accountID string, period int) (*domain.AnalyticsView, error) {
	period = domain.NormalizePeriod(period)

	if uc.cache != nil {
		if data, err := uc.cache.Get(ctx, analyticsCacheKey(accountID, period)); err == nil && data != nil {
			var view domain.AnalyticsView
			if err := json.Unmarshal(data, &view); err == nil {
				return &view, nil
			}
		}
	}

	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	history, err := uc.monthlyRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	view := domain.Project(account, history, period, time.Now().UTC())

	if uc.cache != nil {
		if data, err := json.Marshal(view); err == nil {
			_ = uc.cache.Set(ctx, analyticsCacheKey(accountID, period), data, analyticsCacheTTL)
		}
	}

	return view, nil
}

func analyticsCacheKey(accountID string, period int) string {
	return fmt.Sprintf("analytics:%s:%d", accountID, period)
}
