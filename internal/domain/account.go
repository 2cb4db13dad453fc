package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanAccount represents a user's loan account. CurrentBalance,
// TotalBonuses and TotalWithdrawals are owned by the replay engine:
// they are only ever written together with the ledger rows that
// justify them.
type LoanAccount struct {
	ID               string
	UserID           string
	PrincipalAmount  decimal.Decimal
	CurrentBalance   decimal.Decimal
	MonthlyRate      decimal.Decimal
	TotalBonuses     decimal.Decimal
	TotalWithdrawals decimal.Decimal
	Version          int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Validate checks account parameters at creation time.
func (a *LoanAccount) Validate() error {
	if a.PrincipalAmount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidPrincipal
	}

	if a.MonthlyRate.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidRate
	}

	return nil
}

// ApplyCredit returns the balance after crediting amount.
func (a *LoanAccount) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return a.CurrentBalance.Add(amount)
}

// ApplyDebit returns the balance after debiting amount.
func (a *LoanAccount) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return a.CurrentBalance.Sub(amount)
}
