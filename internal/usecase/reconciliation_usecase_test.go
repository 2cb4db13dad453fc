package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lenderly/loanledger/internal/domain"
	"github.com/lenderly/loanledger/internal/usecase"
	"github.com/lenderly/loanledger/internal/usecase/mocks"
)

func TestReconciliationUseCase_ReconcileAccount(t *testing.T) {
	accountRepo := mocks.NewMockLoanAccountRepository()
	txnRepo := mocks.NewMockTransactionRepository()
	uc := usecase.NewReconciliationUseCase(accountRepo, txnRepo)

	// A brand-new account has no elapsed months, so the replayed
	// balance is exactly the principal.
	accountRepo.Seed(&domain.LoanAccount{
		ID:              "acc-ok",
		UserID:          "user-1",
		PrincipalAmount: dec("1000"),
		CurrentBalance:  dec("1000"),
		MonthlyRate:     dec("0.01"),
		CreatedAt:       time.Now().UTC(),
	})

	result, err := uc.ReconcileAccount(context.Background(), "acc-ok")
	require.NoError(t, err)

	assert.True(t, result.IsReconciled)
	assert.True(t, result.Difference.IsZero())
	assert.True(t, result.CalculatedBalance.Equal(dec("1000")))
}

func TestReconciliationUseCase_DetectsDrift(t *testing.T) {
	accountRepo := mocks.NewMockLoanAccountRepository()
	txnRepo := mocks.NewMockTransactionRepository()
	uc := usecase.NewReconciliationUseCase(accountRepo, txnRepo)

	accountRepo.Seed(&domain.LoanAccount{
		ID:              "acc-drift",
		UserID:          "user-1",
		PrincipalAmount: dec("1000"),
		CurrentBalance:  dec("1005"),
		MonthlyRate:     dec("0.01"),
		CreatedAt:       time.Now().UTC(),
	})

	result, err := uc.ReconcileAccount(context.Background(), "acc-drift")
	require.NoError(t, err)

	assert.False(t, result.IsReconciled)
	assert.True(t, result.Difference.Equal(dec("5")))
}

func TestReconciliationUseCase_GenerateReport(t *testing.T) {
	accountRepo := mocks.NewMockLoanAccountRepository()
	txnRepo := mocks.NewMockTransactionRepository()
	uc := usecase.NewReconciliationUseCase(accountRepo, txnRepo)

	now := time.Now().UTC()
	accountRepo.Seed(&domain.LoanAccount{
		ID: "acc-1", UserID: "u1",
		PrincipalAmount: dec("1000"), CurrentBalance: dec("1000"),
		MonthlyRate: dec("0.01"), CreatedAt: now,
	})
	accountRepo.Seed(&domain.LoanAccount{
		ID: "acc-2", UserID: "u2",
		PrincipalAmount: dec("2000"), CurrentBalance: dec("2000"),
		MonthlyRate: dec("0.01"), CreatedAt: now,
	})
	accountRepo.Seed(&domain.LoanAccount{
		ID: "acc-3", UserID: "u3",
		PrincipalAmount: dec("3000"), CurrentBalance: dec("3100"),
		MonthlyRate: dec("0.01"), CreatedAt: now,
	})

	report, err := uc.GenerateReconciliationReport(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, report.TotalAccounts)
	assert.Equal(t, 2, report.ReconciledAccounts)
	require.Len(t, report.Discrepancies, 1)
	assert.Equal(t, "acc-3", report.Discrepancies[0].AccountID)
}

func TestReconciliationUseCase_GenerateReportPagesThroughAllAccounts(t *testing.T) {
	accountRepo := mocks.NewMockLoanAccountRepository()
	txnRepo := mocks.NewMockTransactionRepository()
	uc := usecase.NewReconciliationUseCase(accountRepo, txnRepo)

	now := time.Now().UTC()
	all := make([]*domain.LoanAccount, 0, 700)
	for i := 0; i < 700; i++ {
		account := &domain.LoanAccount{
			ID:              fmt.Sprintf("acc-%04d", i),
			UserID:          fmt.Sprintf("user-%04d", i),
			PrincipalAmount: dec("1000"),
			CurrentBalance:  dec("1000"),
			MonthlyRate:     dec("0.01"),
			CreatedAt:       now,
		}
		all = append(all, account)
		accountRepo.Seed(account)
	}

	var offsets []int
	accountRepo.ListFunc = func(ctx context.Context, limit, offset int) ([]*domain.LoanAccount, error) {
		offsets = append(offsets, offset)
		if offset >= len(all) {
			return nil, nil
		}
		end := offset + limit
		if end > len(all) {
			end = len(all)
		}
		return all[offset:end], nil
	}

	report, err := uc.GenerateReconciliationReport(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 700, report.TotalAccounts, "no page may be silently dropped")
	assert.Equal(t, 700, report.ReconciledAccounts)
	assert.Equal(t, []int{0, 500}, offsets)
}
