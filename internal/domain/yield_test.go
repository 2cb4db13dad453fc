package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestYieldDeposit_DailyPayout(t *testing.T) {
	tests := []struct {
		name      string
		principal string
		rate      string
		want      string
	}{
		{"round number", "36500", "0.12", "12"},
		{"fractional cents", "1000", "0.12", "0.33"},    // 0.328767...
		{"small principal", "10", "0.12", "0"},          // 0.0032876... rounds to 0.00
		{"large principal", "1000000", "0.1", "273.97"}, // 273.9726...
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &YieldDeposit{
				PrincipalAmount: decimal.RequireFromString(tt.principal),
				AnnualYieldRate: decimal.RequireFromString(tt.rate),
			}

			assert.True(t, d.DailyPayout().Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", d.DailyPayout(), tt.want)
		})
	}
}

func TestYieldDeposit_AnnualTopUp(t *testing.T) {
	d := &YieldDeposit{
		PrincipalAmount: decimal.NewFromInt(10000),
		AnnualYieldRate: decimal.NewFromFloat(0.12),
	}

	// Full year of yield is 1200. Daily runs already paid 1199.45.
	topUp := d.AnnualTopUp(decimal.RequireFromString("1199.45"))
	assert.True(t, topUp.Equal(decimal.RequireFromString("0.55")), "got %s", topUp)

	// Daily runs overpaid (rounding drift): floor at zero, never claw back.
	topUp = d.AnnualTopUp(decimal.RequireFromString("1200.95"))
	assert.True(t, topUp.IsZero(), "got %s", topUp)

	// No daily payouts at all: the annual lump is the full year's yield.
	topUp = d.AnnualTopUp(decimal.Zero)
	assert.True(t, topUp.Equal(decimal.NewFromInt(1200)), "got %s", topUp)
}

func TestYieldDeposit_AnniversaryOn(t *testing.T) {
	d := &YieldDeposit{StartDate: date(2023, time.March, 15)}

	assert.True(t, d.AnniversaryOn(date(2024, time.March, 15)))
	assert.True(t, d.AnniversaryOn(date(2025, time.March, 15)))
	assert.False(t, d.AnniversaryOn(date(2024, time.March, 14)))
	assert.False(t, d.AnniversaryOn(date(2023, time.March, 15)), "start date itself is not an anniversary")

	leap := &YieldDeposit{StartDate: date(2024, time.February, 29)}
	assert.True(t, leap.AnniversaryOn(date(2025, time.March, 1)))
	assert.False(t, leap.AnniversaryOn(date(2025, time.February, 28)))
	assert.True(t, leap.AnniversaryOn(date(2028, time.February, 29)))
}

func TestYieldDeposit_Payable(t *testing.T) {
	asOf := date(2024, time.June, 1)
	now := time.Now().UTC()

	tests := []struct {
		name    string
		deposit *YieldDeposit
		want    bool
	}{
		{
			name:    "active and started",
			deposit: &YieldDeposit{Status: DepositStatusActive, StartDate: date(2024, time.January, 1)},
			want:    true,
		},
		{
			name:    "active starting today",
			deposit: &YieldDeposit{Status: DepositStatusActive, StartDate: asOf},
			want:    true,
		},
		{
			name:    "future effective",
			deposit: &YieldDeposit{Status: DepositStatusActive, StartDate: date(2024, time.July, 1)},
			want:    false,
		},
		{
			name:    "inactive",
			deposit: &YieldDeposit{Status: DepositStatusInactive, StartDate: date(2024, time.January, 1)},
			want:    false,
		},
		{
			name:    "completed",
			deposit: &YieldDeposit{Status: DepositStatusCompleted, StartDate: date(2024, time.January, 1)},
			want:    false,
		},
		{
			name:    "deleted",
			deposit: &YieldDeposit{Status: DepositStatusActive, StartDate: date(2024, time.January, 1), DeletedAt: &now},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.deposit.Payable(asOf))
		})
	}
}

func TestYieldDeposit_Validate(t *testing.T) {
	valid := &YieldDeposit{
		PrincipalAmount: decimal.NewFromInt(1000),
		AnnualYieldRate: decimal.NewFromFloat(0.12),
	}
	assert.NoError(t, valid.Validate())

	zeroPrincipal := &YieldDeposit{
		PrincipalAmount: decimal.Zero,
		AnnualYieldRate: decimal.NewFromFloat(0.12),
	}
	assert.ErrorIs(t, zeroPrincipal.Validate(), ErrInvalidPrincipal)

	zeroRate := &YieldDeposit{
		PrincipalAmount: decimal.NewFromInt(1000),
		AnnualYieldRate: decimal.Zero,
	}
	assert.ErrorIs(t, zeroRate.Validate(), ErrInvalidRate)
}
