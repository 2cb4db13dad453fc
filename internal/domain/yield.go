package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DepositStatus is the lifecycle state of a yield deposit.
type DepositStatus string

const (
	DepositStatusActive    DepositStatus = "active"
	DepositStatusInactive  DepositStatus = "inactive"
	DepositStatusCompleted DepositStatus = "completed"
)

// ValidDepositStatus reports whether s is a known lifecycle state.
func ValidDepositStatus(s DepositStatus) bool {
	switch s {
	case DepositStatusActive, DepositStatusInactive, DepositStatusCompleted:
		return true
	}
	return false
}

// YieldDeposit is an interest-bearing deposit. PrincipalAmount is the
// remaining principal: it only ever decreases, through LIFO withdrawal
// allocation or an audited administrative override. TotalPaidOut only
// ever increases. A deposit whose principal reaches zero is completed
// and never pays out again.
type YieldDeposit struct {
	ID              string
	UserID          string
	PrincipalAmount decimal.Decimal
	AnnualYieldRate decimal.Decimal
	StartDate       time.Time
	Status          DepositStatus
	LastPayoutDate  *time.Time
	TotalPaidOut    decimal.Decimal
	DeletedAt       *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Validate checks deposit parameters at creation time.
func (d *YieldDeposit) Validate() error {
	if d.PrincipalAmount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidPrincipal
	}

	if d.AnnualYieldRate.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidRate
	}

	return nil
}

// Payable reports whether the deposit earns yield on asOf. Inactive
// and completed deposits never pay; future-effective deposits start
// paying on their start date.
func (d *YieldDeposit) Payable(asOf time.Time) bool {
	if d.Status != DepositStatusActive || d.DeletedAt != nil {
		return false
	}
	return !d.StartDate.After(asOf)
}

// DailyPayout is one day's prorated share of the annual yield,
// rounded half-even at the currency minor unit.
func (d *YieldDeposit) DailyPayout() decimal.Decimal {
	return d.PrincipalAmount.
		Mul(d.AnnualYieldRate).
		Div(decimal.NewFromInt(365)).
		RoundBank(2)
}

// AnnualTopUp is the anniversary lump: the full year's yield minus
// what daily runs already paid for that deposit-year, floored at zero
// so daily and annual payouts never double-count a period.
func (d *YieldDeposit) AnnualTopUp(dailyPaid decimal.Decimal) decimal.Decimal {
	topUp := d.PrincipalAmount.Mul(d.AnnualYieldRate).RoundBank(2).Sub(dailyPaid)
	if topUp.IsNegative() {
		return decimal.Zero
	}
	return topUp
}

// AnniversaryOn reports whether asOf is a payout anniversary of the
// deposit's start date. A Feb 29 start falls on Mar 1 in common years.
func (d *YieldDeposit) AnniversaryOn(asOf time.Time) bool {
	years := asOf.Year() - d.StartDate.Year()
	if years < 1 {
		return false
	}

	anniversary := d.StartDate.AddDate(years, 0, 0)

	return anniversary.Year() == asOf.Year() &&
		anniversary.Month() == asOf.Month() &&
		anniversary.Day() == asOf.Day()
}

// PayoutKind distinguishes daily accrual payouts from annual lumps.
type PayoutKind string

const (
	PayoutKindDaily  PayoutKind = "daily"
	PayoutKindAnnual PayoutKind = "annual"
)

// YieldPayout is the append-only audit record of a single payout
// application. (DepositID, PayoutDate, Kind) is the idempotency key:
// at most one row may exist per deposit per date per kind.
type YieldPayout struct {
	ID         string
	DepositID  string
	Amount     decimal.Decimal
	PayoutDate time.Time
	Kind       PayoutKind
	CreatedAt  time.Time
}
