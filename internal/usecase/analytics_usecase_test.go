package usecase_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lenderly/loanledger/internal/domain"
	"github.com/lenderly/loanledger/internal/usecase"
	"github.com/lenderly/loanledger/internal/usecase/mocks"
)

func TestAnalyticsUseCase_DefaultsUnknownPeriod(t *testing.T) {
	accountRepo := mocks.NewMockLoanAccountRepository()
	accountRepo.Seed(&domain.LoanAccount{
		ID:              "acc-1",
		UserID:          "user-1",
		PrincipalAmount: dec("1000"),
		CurrentBalance:  dec("1000"),
		MonthlyRate:     dec("0.01"),
		CreatedAt:       time.Now().UTC().AddDate(0, -2, 0),
	})

	uc := usecase.NewAnalyticsUseCase(accountRepo, mocks.NewMockMonthlyBalanceRepository(), mocks.NewMockCache())

	for _, period := range []int{0, -1, 7, 13, 100} {
		view, err := uc.GetAnalytics(context.Background(), "acc-1", period)
		require.NoError(t, err)
		assert.Equal(t, 24, view.Period)
		assert.Len(t, view.Points, 24)
	}

	view, err := uc.GetAnalytics(context.Background(), "acc-1", 6)
	require.NoError(t, err)
	assert.Equal(t, 6, view.Period)
	assert.Len(t, view.Points, 6)
}

func TestAnalyticsUseCase_ServesCachedView(t *testing.T) {
	accountRepo := mocks.NewMockLoanAccountRepository()
	cache := mocks.NewMockCache()
	uc := usecase.NewAnalyticsUseCase(accountRepo, mocks.NewMockMonthlyBalanceRepository(), cache)

	cached := &domain.AnalyticsView{
		Period:         12,
		CurrentBalance: dec("4242.42"),
	}
	data, err := json.Marshal(cached)
	require.NoError(t, err)
	require.NoError(t, cache.Set(context.Background(), "analytics:acc-1:12", data, time.Minute))

	// The account repo is empty: a cache miss would fail with not found.
	view, err := uc.GetAnalytics(context.Background(), "acc-1", 12)
	require.NoError(t, err)
	assert.True(t, view.CurrentBalance.Equal(dec("4242.42")))
}

func TestAnalyticsUseCase_PopulatesCache(t *testing.T) {
	accountRepo := mocks.NewMockLoanAccountRepository()
	accountRepo.Seed(&domain.LoanAccount{
		ID:              "acc-1",
		UserID:          "user-1",
		PrincipalAmount: dec("1000"),
		CurrentBalance:  dec("1000"),
		MonthlyRate:     dec("0.01"),
		CreatedAt:       time.Now().UTC(),
	})
	cache := mocks.NewMockCache()
	uc := usecase.NewAnalyticsUseCase(accountRepo, mocks.NewMockMonthlyBalanceRepository(), cache)

	_, err := uc.GetAnalytics(context.Background(), "acc-1", 6)
	require.NoError(t, err)

	data, err := cache.Get(context.Background(), "analytics:acc-1:6")
	require.NoError(t, err)
	assert.NotNil(t, data)
}

func TestAnalyticsUseCase_AccountNotFound(t *testing.T) {
	uc := usecase.NewAnalyticsUseCase(
		mocks.NewMockLoanAccountRepository(),
		mocks.NewMockMonthlyBalanceRepository(),
		mocks.NewMockCache(),
	)

	_, err := uc.GetAnalytics(context.Background(), "missing", 12)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}
