package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/lenderly/loanledger/internal/domain"
)

// PayoutUseCase runs the daily and annual yield payout batches.
type PayoutUseCase struct {
	txManager   TransactionManager
	depositRepo YieldDepositRepository
	payoutRepo  YieldPayoutRepository
	idGen       IDGenerator
	logger      zerolog.Logger
}

// NewPayoutUseCase creates a new PayoutUseCase.
func NewPayoutUseCase(
	txManager TransactionManager,
	depositRepo YieldDepositRepository,
	payoutRepo YieldPayoutRepository,
	idGen IDGenerator,
	logger zerolog.Logger,
) *PayoutUseCase {
	return &PayoutUseCase{
		txManager:   txManager,
		depositRepo: depositRepo,
		payoutRepo:  payoutRepo,
		idGen:       idGen,
		logger:      logger,
	}
}

// PayoutApplication is one successfully applied payout.
type PayoutApplication struct {
	DepositID string
	Amount    decimal.Decimal
}

// BatchFailure is one deposit the batch could not process.
type BatchFailure struct {
	DepositID string
	Error     string
}

// BatchReport summarizes a batch run. Failures are collected per
// deposit rather than aborting the run: one bad deposit never blocks
// the rest, and payouts already committed stay committed.
type BatchReport struct {
	Date             time.Time
	Kind             domain.PayoutKind
	Applied          []PayoutApplication
	TotalAmount      decimal.Decimal
	AlreadyProcessed int
	Failures         []BatchFailure
}

// RunDailyBatch pays each payable deposit its prorated daily yield
// for asOf. (deposit, date, daily) is the idempotency key: a re-run
// for the same date skips deposits already paid and counts them under
// AlreadyProcessed instead of paying twice. Daily payouts never touch
// principal.
func (uc *PayoutUseCase) RunDailyBatch(ctx context.Context, asOf time.Time) (*BatchReport, error) {
	asOf = dateOnly(asOf)

	deposits, err := uc.depositRepo.ListPayable(ctx, asOf)
	if err != nil {
		return nil, err
	}

	report := &BatchReport{
		Date:        asOf,
		Kind:        domain.PayoutKindDaily,
		TotalAmount: decimal.Zero,
	}

	for _, deposit := range deposits {
		uc.applyPayout(ctx, report, deposit.ID, asOf, domain.PayoutKindDaily, func(d *domain.YieldDeposit) decimal.Decimal {
			return d.DailyPayout()
		})
	}

	uc.logger.Info().
		Time("date", asOf).
		Int("applied", len(report.Applied)).
		Int("already_processed", report.AlreadyProcessed).
		Int("failures", len(report.Failures)).
		Str("total_amount", report.TotalAmount.String()).
		Msg("daily payout batch finished")

	return report, nil
}

// RunAnnualBatch pays anniversary top-ups for asOf: the full year's
// yield minus whatever the daily runs already paid in that
// deposit-year, under its own (deposit, date, annual) idempotency
// key. The subtraction keeps daily and annual payouts from ever
// double-counting the same period.
func (uc *PayoutUseCase) RunAnnualBatch(ctx context.Context, asOf time.Time) (*BatchReport, error) {
	asOf = dateOnly(asOf)

	deposits, err := uc.depositRepo.ListPayable(ctx, asOf)
	if err != nil {
		return nil, err
	}

	report := &BatchReport{
		Date:        asOf,
		Kind:        domain.PayoutKindAnnual,
		TotalAmount: decimal.Zero,
	}

	yearStart := asOf.AddDate(-1, 0, 0)

	for _, deposit := range deposits {
		if !deposit.AnniversaryOn(asOf) {
			continue
		}

		dailyPaid, err := uc.payoutRepo.SumForDeposit(ctx, deposit.ID, domain.PayoutKindDaily, yearStart, asOf)
		if err != nil {
			report.Failures = append(report.Failures, BatchFailure{DepositID: deposit.ID, Error: err.Error()})
			continue
		}

		uc.applyPayout(ctx, report, deposit.ID, asOf, domain.PayoutKindAnnual, func(d *domain.YieldDeposit) decimal.Decimal {
			return d.AnnualTopUp(dailyPaid)
		})
	}

	uc.logger.Info().
		Time("date", asOf).
		Int("applied", len(report.Applied)).
		Int("already_processed", report.AlreadyProcessed).
		Int("failures", len(report.Failures)).
		Str("total_amount", report.TotalAmount.String()).
		Msg("annual payout batch finished")

	return report, nil
}

// applyPayout processes one deposit in its own transaction so a
// failure there cannot roll back payouts already committed for other
// deposits. The amount is computed from the row re-read under lock.
func (uc *PayoutUseCase) applyPayout(
	ctx context.Context,
	report *BatchReport,
	depositID string,
	asOf time.Time,
	kind domain.PayoutKind,
	amountOf func(*domain.YieldDeposit) decimal.Decimal,
) {
	fail := func(err error) {
		report.Failures = append(report.Failures, BatchFailure{DepositID: depositID, Error: err.Error()})
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		fail(err)
		return
	}
	defer tx.Rollback(ctx)

	deposit, err := uc.depositRepo.GetByIDForUpdate(ctx, tx, depositID)
	if err != nil {
		fail(err)
		return
	}

	if !deposit.Payable(asOf) {
		return
	}

	exists, err := uc.payoutRepo.Exists(ctx, depositID, asOf, kind)
	if err != nil {
		fail(err)
		return
	}
	if exists {
		report.AlreadyProcessed++
		return
	}

	amount := amountOf(deposit)
	// A zero amount means the period is already fully covered, e.g. an
	// anniversary whose year the daily runs paid out in full. Recording
	// an empty payment row would advance last_payout_date for nothing.
	if !amount.IsPositive() {
		return
	}

	now := time.Now().UTC()

	payout := &domain.YieldPayout{
		ID:         uc.idGen.Generate(),
		DepositID:  depositID,
		Amount:     amount,
		PayoutDate: asOf,
		Kind:       kind,
		CreatedAt:  now,
	}

	if err := uc.payoutRepo.Create(ctx, tx, payout); err != nil {
		fail(err)
		return
	}

	totalPaidOut := deposit.TotalPaidOut.Add(amount)
	if err := uc.depositRepo.RecordPayout(ctx, tx, depositID, totalPaidOut, asOf, now); err != nil {
		fail(err)
		return
	}

	if err := tx.Commit(ctx); err != nil {
		fail(err)
		return
	}

	report.Applied = append(report.Applied, PayoutApplication{DepositID: depositID, Amount: amount})
	report.TotalAmount = report.TotalAmount.Add(amount)
}

// BatchStatus describes how far a day's batch has progressed.
type BatchStatus struct {
	Date            time.Time
	ProcessedCount  int
	ProcessedAmount decimal.Decimal
	PendingCount    int
	IsComplete      bool
}

// GetBatchStatus derives the state of a day's daily batch purely from
// persisted payout rows against the payable-deposit set; it never
// re-runs the batch.
func (uc *PayoutUseCase) GetBatchStatus(ctx context.Context, date time.Time) (*BatchStatus, error) {
	date = dateOnly(date)

	payouts, err := uc.payoutRepo.ListByDate(ctx, date, domain.PayoutKindDaily)
	if err != nil {
		return nil, err
	}

	deposits, err := uc.depositRepo.ListPayable(ctx, date)
	if err != nil {
		return nil, err
	}

	paid := make(map[string]bool, len(payouts))
	amount := decimal.Zero
	for _, p := range payouts {
		paid[p.DepositID] = true
		amount = amount.Add(p.Amount)
	}

	pending := 0
	for _, d := range deposits {
		if !paid[d.ID] {
			pending++
		}
	}

	return &BatchStatus{
		Date:            date,
		ProcessedCount:  len(payouts),
		ProcessedAmount: amount,
		PendingCount:    pending,
		IsComplete:      pending == 0,
	}, nil
}

// dateOnly truncates t to midnight UTC, the granularity payout
// idempotency keys are defined at.
func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
