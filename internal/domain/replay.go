package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReplayResult is the output of a deterministic balance replay.
type ReplayResult struct {
	ClosingBalance   decimal.Decimal
	Months           []*MonthlyBalance
	MonthsProcessed  int
	TotalBonuses     decimal.Decimal
	TotalWithdrawals decimal.Decimal
}

// Replay reconstructs an account's balance history from its opening
// principal and ordered transactions, up to asOf. It is a pure
// function: identical inputs always produce identical output.
//
// The interval [origin, asOf] is walked calendar month by calendar
// month. Interest accrues only for fully elapsed months, on the
// balance carried in from the previous month, before that month's
// transactions apply. A partial trailing month is emitted without
// interest, and only when it contains transactions. MonthsProcessed
// counts interest-bearing months only, so a brand-new account replays
// to an empty history without error.
//
// Two transaction types are ledger records of amounts the engine
// itself accounts for and are not re-applied: "loan" rows mirror the
// opening principal, and "monthly_payment" rows mirror interest that
// replay recomputes from scratch.
func Replay(opening, monthlyRate decimal.Decimal, origin time.Time, txns []*Transaction, asOf time.Time) (*ReplayResult, error) {
	origin = origin.UTC()
	asOf = asOf.UTC()

	for _, txn := range txns {
		if err := txn.Validate(origin); err != nil {
			return nil, err
		}
	}

	ordered := make([]*Transaction, len(txns))
	copy(ordered, txns)
	SortForReplay(ordered)

	// Bucket by calendar month, dropping events dated past asOf;
	// those belong to a future replay.
	byMonth := make(map[string][]*Transaction)
	for _, txn := range ordered {
		if txn.TransactionDate.After(asOf) {
			continue
		}
		key := MonthStart(txn.TransactionDate).Format("2006-01")
		byMonth[key] = append(byMonth[key], txn)
	}

	result := &ReplayResult{
		ClosingBalance:   opening,
		TotalBonuses:     decimal.Zero,
		TotalWithdrawals: decimal.Zero,
	}

	if asOf.Before(origin) {
		return result, nil
	}

	balance := opening
	last := MonthStart(asOf)

	for month := MonthStart(origin); !month.After(last); month = month.AddDate(0, 1, 0) {
		next := month.AddDate(0, 1, 0)
		elapsed := !next.After(asOf)
		monthTxns := byMonth[month.Format("2006-01")]

		if !elapsed && len(monthTxns) == 0 {
			continue
		}

		interest := decimal.Zero
		if elapsed {
			interest = balance.Mul(monthlyRate).RoundBank(2)
			balance = balance.Add(interest)
			result.MonthsProcessed++
		}

		bonus := decimal.Zero
		withdrawal := decimal.Zero

		for _, txn := range monthTxns {
			switch txn.Type {
			case TxnTypeDeposit:
				balance = balance.Add(txn.Amount)
			case TxnTypeBonus:
				balance = balance.Add(txn.Amount)
				bonus = bonus.Add(txn.Amount)
			case TxnTypeWithdrawal:
				balance = balance.Sub(txn.Amount)
				withdrawal = withdrawal.Add(txn.Amount)
			case TxnTypeAdjustment:
				balance = balance.Add(txn.Amount)
			case TxnTypeLoan, TxnTypeMonthlyPayment:
				// Accounted for by opening principal / recomputed interest.
			}
		}

		netGrowth := interest.Add(bonus)
		if netGrowth.IsNegative() {
			netGrowth = decimal.Zero
		}

		result.Months = append(result.Months, &MonthlyBalance{
			Month:          month,
			Balance:        balance,
			MonthlyPayment: interest,
			BonusPayment:   bonus,
			Withdrawal:     withdrawal,
			NetGrowth:      netGrowth,
		})

		result.TotalBonuses = result.TotalBonuses.Add(bonus)
		result.TotalWithdrawals = result.TotalWithdrawals.Add(withdrawal)
	}

	result.ClosingBalance = balance

	return result, nil
}
