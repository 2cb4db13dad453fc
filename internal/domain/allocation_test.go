package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activeDeposit(id string, start time.Time, principal int64) *YieldDeposit {
	return &YieldDeposit{
		ID:              id,
		UserID:          "user-1",
		PrincipalAmount: decimal.NewFromInt(principal),
		AnnualYieldRate: decimal.NewFromFloat(0.12),
		StartDate:       start,
		Status:          DepositStatusActive,
		TotalPaidOut:    decimal.Zero,
	}
}

func TestPlanWithdrawal_LIFO(t *testing.T) {
	d1 := activeDeposit("d1", date(2023, time.January, 1), 1000)
	d2 := activeDeposit("d2", date(2023, time.June, 1), 500)
	deposits := []*YieldDeposit{d1, d2}

	// First withdrawal drains the newer deposit and dips into the older.
	plan, err := PlanWithdrawal(deposits, decimal.NewFromInt(700))
	require.NoError(t, err)
	require.Len(t, plan.Steps, 2)

	assert.Equal(t, "d2", plan.Steps[0].DepositID)
	assert.True(t, plan.Steps[0].Amount.Equal(decimal.NewFromInt(500)))
	assert.True(t, plan.Steps[0].NewPrincipal.IsZero())
	assert.True(t, plan.Steps[0].Completed)

	assert.Equal(t, "d1", plan.Steps[1].DepositID)
	assert.True(t, plan.Steps[1].Amount.Equal(decimal.NewFromInt(200)))
	assert.True(t, plan.Steps[1].NewPrincipal.Equal(decimal.NewFromInt(800)))
	assert.False(t, plan.Steps[1].Completed)

	assert.True(t, plan.Allocated.Equal(decimal.NewFromInt(700)))
	assert.True(t, plan.Remainder.IsZero())

	// Apply the plan, then withdraw more than remains.
	d2.PrincipalAmount = decimal.Zero
	d2.Status = DepositStatusCompleted
	d1.PrincipalAmount = decimal.NewFromInt(800)

	plan, err = PlanWithdrawal(deposits, decimal.NewFromInt(900))
	require.NoError(t, err)
	require.Len(t, plan.Steps, 1)

	assert.Equal(t, "d1", plan.Steps[0].DepositID)
	assert.True(t, plan.Steps[0].NewPrincipal.IsZero())
	assert.True(t, plan.Steps[0].Completed)
	assert.True(t, plan.Allocated.Equal(decimal.NewFromInt(800)))
	assert.True(t, plan.Remainder.Equal(decimal.NewFromInt(100)), "shortfall of 100 expected, got %s", plan.Remainder)
}

func TestPlanWithdrawal_TieBreakByIDDescending(t *testing.T) {
	start := date(2023, time.June, 1)
	deposits := []*YieldDeposit{
		activeDeposit("a", start, 100),
		activeDeposit("b", start, 100),
	}

	plan, err := PlanWithdrawal(deposits, decimal.NewFromInt(150))
	require.NoError(t, err)
	require.Len(t, plan.Steps, 2)

	assert.Equal(t, "b", plan.Steps[0].DepositID)
	assert.Equal(t, "a", plan.Steps[1].DepositID)
}

func TestPlanWithdrawal_SkipsNonActiveDeposits(t *testing.T) {
	inactive := activeDeposit("d1", date(2023, time.June, 1), 1000)
	inactive.Status = DepositStatusInactive

	deleted := activeDeposit("d2", date(2023, time.July, 1), 1000)
	now := time.Now().UTC()
	deleted.DeletedAt = &now

	active := activeDeposit("d3", date(2023, time.January, 1), 300)

	plan, err := PlanWithdrawal([]*YieldDeposit{inactive, deleted, active}, decimal.NewFromInt(500))
	require.NoError(t, err)
	require.Len(t, plan.Steps, 1)

	assert.Equal(t, "d3", plan.Steps[0].DepositID)
	assert.True(t, plan.Remainder.Equal(decimal.NewFromInt(200)))
}

func TestPlanWithdrawal_InvalidAmount(t *testing.T) {
	deposits := []*YieldDeposit{activeDeposit("d1", date(2023, time.January, 1), 1000)}

	_, err := PlanWithdrawal(deposits, decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = PlanWithdrawal(deposits, decimal.NewFromInt(-10))
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestPlanWithdrawal_NoActiveDeposits(t *testing.T) {
	plan, err := PlanWithdrawal(nil, decimal.NewFromInt(100))
	require.NoError(t, err)

	assert.Empty(t, plan.Steps)
	assert.True(t, plan.Allocated.IsZero())
	assert.True(t, plan.Remainder.Equal(decimal.NewFromInt(100)))
}
