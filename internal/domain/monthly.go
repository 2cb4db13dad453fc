package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyBalance is one month of replayed account history. Rows are
// produced only by Replay; re-running replay replaces prior rows for
// the account rather than appending to them.
type MonthlyBalance struct {
	ID             string
	LoanAccountID  string
	Month          time.Time // first day of the calendar month, UTC
	Balance        decimal.Decimal
	MonthlyPayment decimal.Decimal
	BonusPayment   decimal.Decimal
	Withdrawal     decimal.Decimal
	NetGrowth      decimal.Decimal
}

// MonthKey returns the calendar month key, e.g. "2024-03".
func (m *MonthlyBalance) MonthKey() string {
	return m.Month.Format("2006-01")
}

// MonthStart truncates t to the first instant of its calendar month in UTC.
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
