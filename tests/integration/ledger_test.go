package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/lenderly/loanledger/internal/adapter/repository/postgres"
	redisrepo "github.com/lenderly/loanledger/internal/adapter/repository/redis"
	infraredis "github.com/lenderly/loanledger/internal/infrastructure/redis"
	"github.com/lenderly/loanledger/internal/usecase"
	"github.com/lenderly/loanledger/tests/testutil"
)

func newRedisClient(t *testing.T, ctx context.Context) *redisrepo.Cache {
	t.Helper()

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}
	client, err := infraredis.NewClient(ctx, redisURL)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	return redisrepo.NewCache(client)
}

func TestDepositWithdrawalLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	pool := testDB.Pool
	txManager := postgres.NewTxManager(pool)
	accountRepo := postgres.NewLoanAccountRepository(pool)
	txnRepo := postgres.NewTransactionRepository(pool)
	depositRepo := postgres.NewYieldDepositRepository(pool)
	payoutRepo := postgres.NewYieldPayoutRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	idGen := postgres.NewULIDGenerator()

	account := testDB.CreateTestAccount(ctx, "user-1", decimal.RequireFromString("30000"), decimal.RequireFromString("0.01"))

	depositUC := usecase.NewDepositUseCase(txManager, accountRepo, txnRepo, depositRepo, payoutRepo, auditRepo, idGen)
	withdrawalUC := usecase.NewWithdrawalUseCase(txManager, accountRepo, txnRepo, depositRepo, auditRepo, idGen)

	// Create a deposit; the account balance must move with it.
	deposit, err := depositUC.CreateDeposit(ctx, usecase.CreateDepositInput{
		UserID:          "user-1",
		Amount:          decimal.RequireFromString("1000"),
		AnnualYieldRate: decimal.RequireFromString("0.05"),
		StartDate:       time.Now().UTC().AddDate(0, 0, -10),
		ActorID:         "admin-1",
	})
	if err != nil {
		t.Fatalf("CreateDeposit: %v", err)
	}

	updated, err := accountRepo.GetByID(ctx, account.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !updated.CurrentBalance.Equal(decimal.RequireFromString("31000")) {
		t.Fatalf("expected balance 31000 after deposit, got %s", updated.CurrentBalance)
	}

	// Withdraw part of it; the deposit principal shrinks, the
	// balance and totals move, all in one transaction.
	result, err := withdrawalUC.AllocateWithdrawal(ctx, "user-1", decimal.RequireFromString("400"), nil)
	if err != nil {
		t.Fatalf("AllocateWithdrawal: %v", err)
	}
	if !result.Allocated.Equal(decimal.RequireFromString("400")) || !result.Remainder.IsZero() {
		t.Fatalf("unexpected allocation: %+v", result)
	}

	got, err := depositRepo.GetByID(ctx, deposit.ID)
	if err != nil {
		t.Fatalf("GetByID deposit: %v", err)
	}
	if !got.PrincipalAmount.Equal(decimal.RequireFromString("600")) {
		t.Fatalf("expected principal 600 after withdrawal, got %s", got.PrincipalAmount)
	}

	updated, err = accountRepo.GetByID(ctx, account.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !updated.CurrentBalance.Equal(decimal.RequireFromString("30600")) {
		t.Fatalf("expected balance 30600 after withdrawal, got %s", updated.CurrentBalance)
	}
	if !updated.TotalWithdrawals.Equal(decimal.RequireFromString("400")) {
		t.Fatalf("expected total withdrawals 400, got %s", updated.TotalWithdrawals)
	}
}

func TestDailyBatchIsIdempotent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	pool := testDB.Pool
	txManager := postgres.NewTxManager(pool)
	depositRepo := postgres.NewYieldDepositRepository(pool)
	payoutRepo := postgres.NewYieldPayoutRepository(pool)
	idGen := postgres.NewULIDGenerator()

	testDB.CreateTestDeposit(ctx, "user-1", decimal.RequireFromString("3650"), decimal.RequireFromString("0.10"), time.Now().UTC().AddDate(0, -1, 0))

	payoutUC := usecase.NewPayoutUseCase(txManager, depositRepo, payoutRepo, idGen, zerolog.Nop())

	asOf := time.Now().UTC()

	first, err := payoutUC.RunDailyBatch(ctx, asOf)
	if err != nil {
		t.Fatalf("RunDailyBatch: %v", err)
	}
	if len(first.Applied) != 1 {
		t.Fatalf("expected 1 payout applied, got %d", len(first.Applied))
	}
	if !first.TotalAmount.Equal(decimal.RequireFromString("1.00")) {
		t.Fatalf("expected 1.00 paid, got %s", first.TotalAmount)
	}

	second, err := payoutUC.RunDailyBatch(ctx, asOf)
	if err != nil {
		t.Fatalf("RunDailyBatch rerun: %v", err)
	}
	if len(second.Applied) != 0 || second.AlreadyProcessed != 1 {
		t.Fatalf("expected rerun to skip processed deposits, got %+v", second)
	}
}

func TestReplayMatchesStoredBalance(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	pool := testDB.Pool
	txManager := postgres.NewTxManager(pool)
	accountRepo := postgres.NewLoanAccountRepository(pool)
	txnRepo := postgres.NewTransactionRepository(pool)
	monthlyRepo := postgres.NewMonthlyBalanceRepository(pool)
	idGen := postgres.NewULIDGenerator()

	cache := newRedisClient(t, ctx)
	lock := alwaysFreeLock{}

	account := testDB.CreateTestAccount(ctx, "user-1", decimal.RequireFromString("30000"), decimal.RequireFromString("0.01"))

	replayUC := usecase.NewReplayUseCase(txManager, accountRepo, txnRepo, monthlyRepo, lock, cache, idGen, zerolog.Nop())

	report, err := replayUC.ReplayAndPersist(ctx, account.ID)
	if err != nil {
		t.Fatalf("ReplayAndPersist: %v", err)
	}

	stored, err := accountRepo.GetByID(ctx, account.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !stored.CurrentBalance.Equal(report.ClosingBalance) {
		t.Fatalf("stored balance %s does not match replay %s", stored.CurrentBalance, report.ClosingBalance)
	}

	rows, err := monthlyRepo.ListByAccount(ctx, account.ID)
	if err != nil {
		t.Fatalf("ListByAccount: %v", err)
	}
	if len(rows) != report.MonthsProcessed {
		t.Fatalf("expected %d monthly rows, got %d", report.MonthsProcessed, len(rows))
	}
}

type alwaysFreeLock struct{}

func (alwaysFreeLock) Acquire(ctx context.Context, accountID string) (bool, error) { return true, nil }
func (alwaysFreeLock) Release(ctx context.Context, accountID string) error         { return nil }

var _ usecase.ReplayLock = alwaysFreeLock{}
