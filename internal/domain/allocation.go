package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// AllocationStep is one deposit's share of a withdrawal.
type AllocationStep struct {
	DepositID    string
	Amount       decimal.Decimal
	NewPrincipal decimal.Decimal
	Completed    bool
}

// WithdrawalPlan is the outcome of allocating a withdrawal across a
// user's active deposits. Remainder is the shortfall when the active
// principal could not cover the requested amount; the caller decides
// whether that is a hard failure or a partial success.
type WithdrawalPlan struct {
	Steps     []AllocationStep
	Allocated decimal.Decimal
	Remainder decimal.Decimal
}

// PlanWithdrawal distributes amount across deposits LIFO: most recent
// start date first, ties broken by id descending. Each deposit gives
// up min(remaining, principal); a deposit drained to exactly zero is
// marked completed. Principal never goes negative: once deposits are
// exhausted the rest of the amount is reported as Remainder.
//
// The plan is a pure value; applying all steps atomically is the
// caller's job.
func PlanWithdrawal(deposits []*YieldDeposit, amount decimal.Decimal) (*WithdrawalPlan, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	ordered := make([]*YieldDeposit, 0, len(deposits))
	for _, d := range deposits {
		if d.Status == DepositStatusActive && d.DeletedAt == nil {
			ordered = append(ordered, d)
		}
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].StartDate.Equal(ordered[j].StartDate) {
			return ordered[i].StartDate.After(ordered[j].StartDate)
		}
		return ordered[i].ID > ordered[j].ID
	})

	plan := &WithdrawalPlan{
		Allocated: decimal.Zero,
		Remainder: amount,
	}

	for _, d := range ordered {
		if plan.Remainder.IsZero() {
			break
		}

		take := decimal.Min(plan.Remainder, d.PrincipalAmount)
		if take.LessThanOrEqual(decimal.Zero) {
			continue
		}

		newPrincipal := d.PrincipalAmount.Sub(take)

		plan.Steps = append(plan.Steps, AllocationStep{
			DepositID:    d.ID,
			Amount:       take,
			NewPrincipal: newPrincipal,
			Completed:    newPrincipal.IsZero(),
		})

		plan.Allocated = plan.Allocated.Add(take)
		plan.Remainder = plan.Remainder.Sub(take)
	}

	return plan, nil
}
