package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recognized analytics periods, in months.
const (
	PeriodHalfYear   = 6
	PeriodOneYear    = 12
	PeriodTwoYears   = 24
	defaultPeriodLen = PeriodTwoYears
)

// AnalyticsPoint is one month in an analytics view. Projected marks
// months synthesized by forward simulation rather than backed by a
// persisted MonthlyBalance row.
type AnalyticsPoint struct {
	Month          string          `json:"month"`
	Balance        decimal.Decimal `json:"balance"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	BonusPayment   decimal.Decimal `json:"bonus_payment"`
	Withdrawal     decimal.Decimal `json:"withdrawal"`
	NetGrowth      decimal.Decimal `json:"net_growth"`
	Projected      bool            `json:"projected"`
}

// AnalyticsView is a fixed-length balance history ending at "now".
type AnalyticsView struct {
	Points           []AnalyticsPoint `json:"points"`
	Period           int              `json:"period"`
	CurrentBalance   decimal.Decimal  `json:"current_balance"`
	TotalPrincipal   decimal.Decimal  `json:"total_principal"`
	TotalBonuses     decimal.Decimal  `json:"total_bonuses"`
	TotalWithdrawals decimal.Decimal  `json:"total_withdrawals"`
}

// NormalizePeriod maps any requested period onto a recognized one.
// Unrecognized values (zero, negative, arbitrary numbers) fall back
// to 24 months; this never fails.
func NormalizePeriod(period int) int {
	switch period {
	case PeriodHalfYear, PeriodOneYear, PeriodTwoYears:
		return period
	default:
		return defaultPeriodLen
	}
}

// Project builds an analytics view of exactly NormalizePeriod(period)
// monthly points ending at the calendar month of now. Months with
// replayed history use the persisted rows; months past the last real
// row are forward-simulated by applying the account's monthly rate to
// the last known balance with no bonuses or withdrawals. Months before
// the account existed are zero-valued, so the view always has the full
// number of entries even for a freshly created loan.
func Project(account *LoanAccount, history []*MonthlyBalance, period int, now time.Time) *AnalyticsView {
	period = NormalizePeriod(period)

	end := MonthStart(now)
	start := end.AddDate(0, -(period - 1), 0)
	originMonth := MonthStart(account.CreatedAt)

	byMonth := make(map[string]*MonthlyBalance, len(history))
	carried := account.PrincipalAmount

	for _, row := range history {
		byMonth[row.MonthKey()] = row
		if row.Month.Before(start) {
			// Latest row before the window seeds the simulation.
			carried = row.Balance
		}
	}

	view := &AnalyticsView{
		Points:           make([]AnalyticsPoint, 0, period),
		Period:           period,
		CurrentBalance:   account.CurrentBalance,
		TotalPrincipal:   account.PrincipalAmount,
		TotalBonuses:     account.TotalBonuses,
		TotalWithdrawals: account.TotalWithdrawals,
	}

	for month := start; !month.After(end); month = month.AddDate(0, 1, 0) {
		key := month.Format("2006-01")

		if row, ok := byMonth[key]; ok {
			view.Points = append(view.Points, AnalyticsPoint{
				Month:          key,
				Balance:        row.Balance,
				MonthlyPayment: row.MonthlyPayment,
				BonusPayment:   row.BonusPayment,
				Withdrawal:     row.Withdrawal,
				NetGrowth:      row.NetGrowth,
			})
			carried = row.Balance

			continue
		}

		if month.Before(originMonth) {
			view.Points = append(view.Points, AnalyticsPoint{
				Month:          key,
				Balance:        decimal.Zero,
				MonthlyPayment: decimal.Zero,
				BonusPayment:   decimal.Zero,
				Withdrawal:     decimal.Zero,
				NetGrowth:      decimal.Zero,
				Projected:      true,
			})

			continue
		}

		// The origin month itself carries the principal as-is;
		// later simulated months compound the monthly rate.
		interest := decimal.Zero
		if month.After(originMonth) {
			interest = carried.Mul(account.MonthlyRate).RoundBank(2)
			carried = carried.Add(interest)
		}

		view.Points = append(view.Points, AnalyticsPoint{
			Month:          key,
			Balance:        carried,
			MonthlyPayment: interest,
			BonusPayment:   decimal.Zero,
			Withdrawal:     decimal.Zero,
			NetGrowth:      interest,
			Projected:      true,
		})
	}

	return view
}
