package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lenderly/loanledger/internal/domain"
	"github.com/lenderly/loanledger/internal/usecase"
	"github.com/lenderly/loanledger/internal/usecase/mocks"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type accountFixture struct {
	uc          *usecase.AccountUseCase
	accountRepo *mocks.MockLoanAccountRepository
	txnRepo     *mocks.MockTransactionRepository
	auditRepo   *mocks.MockAuditRepository
}

func newAccountFixture() *accountFixture {
	accountRepo := mocks.NewMockLoanAccountRepository()
	txnRepo := mocks.NewMockTransactionRepository()
	auditRepo := mocks.NewMockAuditRepository()

	return &accountFixture{
		uc: usecase.NewAccountUseCase(
			mocks.NewMockTransactionManager(),
			accountRepo,
			txnRepo,
			auditRepo,
			mocks.NewMockIDGenerator(),
		),
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		auditRepo:   auditRepo,
	}
}

func TestAccountUseCase_CreateAccount(t *testing.T) {
	f := newAccountFixture()

	account, err := f.uc.CreateAccount(context.Background(), usecase.CreateAccountInput{
		UserID:          "user-1",
		PrincipalAmount: dec("30000"),
		MonthlyRate:     dec("0.01"),
		Description:     "initial loan",
	})
	require.NoError(t, err)
	require.NotEmpty(t, account.ID)

	assert.True(t, account.CurrentBalance.Equal(dec("30000")))
	assert.True(t, account.TotalBonuses.IsZero())

	txns := f.txnRepo.All()
	require.Len(t, txns, 1)
	assert.Equal(t, domain.TxnTypeLoan, txns[0].Type)
	assert.True(t, txns[0].Amount.Equal(dec("30000")))
	assert.Equal(t, account.ID, txns[0].LoanAccountID)

	logs := f.auditRepo.Logs()
	require.Len(t, logs, 1)
	assert.Equal(t, string(domain.AuditActionAccountCreate), logs[0].Action)
	assert.Equal(t, account.ID, logs[0].ResourceID)
}

func TestAccountUseCase_CreateAccount_Invalid(t *testing.T) {
	f := newAccountFixture()

	tests := []struct {
		name      string
		principal decimal.Decimal
		rate      decimal.Decimal
		wantErr   error
	}{
		{"zero principal", decimal.Zero, dec("0.01"), domain.ErrInvalidAmount},
		{"negative principal", dec("-100"), dec("0.01"), domain.ErrInvalidAmount},
		{"rate above one", dec("1000"), dec("1.5"), domain.ErrInvalidRate},
		{"zero rate", dec("1000"), decimal.Zero, domain.ErrInvalidRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.CreateAccount(context.Background(), usecase.CreateAccountInput{
				UserID:          "user-1",
				PrincipalAmount: tt.principal,
				MonthlyRate:     tt.rate,
			})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Empty(t, f.txnRepo.All())
}

func TestAccountUseCase_RecordTransaction_Bonus(t *testing.T) {
	f := newAccountFixture()
	f.accountRepo.Seed(&domain.LoanAccount{
		ID:              "acc-1",
		UserID:          "user-1",
		PrincipalAmount: dec("1000"),
		CurrentBalance:  dec("1000"),
		MonthlyRate:     dec("0.01"),
		CreatedAt:       time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
	})

	txn, err := f.uc.RecordTransaction(context.Background(), usecase.RecordTransactionInput{
		AccountID: "acc-1",
		Type:      domain.TxnTypeBonus,
		Amount:    dec("50"),
		ActorID:   "admin-1",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TxnTypeBonus, txn.Type)

	account, err := f.accountRepo.GetByID(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.True(t, account.CurrentBalance.Equal(dec("1050")))
	assert.True(t, account.TotalBonuses.Equal(dec("50")))
}

func TestAccountUseCase_RecordTransaction_RejectsNonAdminTypes(t *testing.T) {
	f := newAccountFixture()
	f.accountRepo.Seed(&domain.LoanAccount{
		ID:             "acc-1",
		UserID:         "user-1",
		CurrentBalance: dec("1000"),
		CreatedAt:      time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
	})

	for _, typ := range []domain.TransactionType{
		domain.TxnTypeLoan,
		domain.TxnTypeDeposit,
		domain.TxnTypeWithdrawal,
		domain.TxnTypeMonthlyPayment,
	} {
		_, err := f.uc.RecordTransaction(context.Background(), usecase.RecordTransactionInput{
			AccountID: "acc-1",
			Type:      typ,
			Amount:    dec("10"),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidTransaction, string(typ))
	}

	assert.Empty(t, f.txnRepo.All())
}

func TestAccountUseCase_RecordTransaction_AccountNotFound(t *testing.T) {
	f := newAccountFixture()

	_, err := f.uc.RecordTransaction(context.Background(), usecase.RecordTransactionInput{
		AccountID: "missing",
		Type:      domain.TxnTypeBonus,
		Amount:    dec("10"),
	})
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestAccountUseCase_ListTransactions_ChecksAccount(t *testing.T) {
	f := newAccountFixture()

	_, err := f.uc.ListTransactions(context.Background(), usecase.ListTransactionsInput{AccountID: "missing"})
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}
