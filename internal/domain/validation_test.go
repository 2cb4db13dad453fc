package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name        string
		amount      string
		expectError error
	}{
		{"valid", "100.50", nil},
		{"minimum", "0.01", nil},
		{"zero", "0", ErrInvalidAmount},
		{"negative", "-5", ErrInvalidAmount},
		{"below minimum", "0.001", ErrAmountTooSmall},
		{"above maximum", "1000000000001", ErrAmountTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAmount(decimal.RequireFromString(tt.amount))

			if tt.expectError == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.expectError != nil && !errors.Is(err, tt.expectError) {
				t.Errorf("expected %v, got %v", tt.expectError, err)
			}
		})
	}
}

func TestValidateRates(t *testing.T) {
	if err := ValidateMonthlyRate(decimal.NewFromFloat(0.01)); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if err := ValidateMonthlyRate(decimal.NewFromInt(2)); !errors.Is(err, ErrRateTooLarge) {
		t.Errorf("expected ErrRateTooLarge, got %v", err)
	}

	if err := ValidateMonthlyRate(decimal.Zero); !errors.Is(err, ErrInvalidRate) {
		t.Errorf("expected ErrInvalidRate, got %v", err)
	}

	if err := ValidateAnnualRate(decimal.NewFromFloat(0.12)); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if err := ValidateAnnualRate(decimal.NewFromInt(11)); !errors.Is(err, ErrRateTooLarge) {
		t.Errorf("expected ErrRateTooLarge, got %v", err)
	}
}

func TestValidatePagination(t *testing.T) {
	tests := []struct {
		limit, offset         int
		wantLimit, wantOffset int
	}{
		{0, 0, 50, 0},
		{-5, -10, 50, 0},
		{20, 40, 20, 40},
		{5000, 0, 1000, 0},
	}

	for _, tt := range tests {
		limit, offset := ValidatePagination(tt.limit, tt.offset)
		if limit != tt.wantLimit || offset != tt.wantOffset {
			t.Errorf("ValidatePagination(%d, %d) = (%d, %d), want (%d, %d)",
				tt.limit, tt.offset, limit, offset, tt.wantLimit, tt.wantOffset)
		}
	}
}
