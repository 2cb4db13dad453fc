package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrAmountTooLarge = errors.New("amount exceeds maximum allowed")
	ErrAmountTooSmall = errors.New("amount below minimum allowed")
	ErrRateTooLarge   = errors.New("rate exceeds maximum allowed")
)

// Validation constants
const (
	MaxAmount      = "1000000000000" // 1 trillion
	MinAmount      = "0.01"
	MaxMonthlyRate = "1"  // 100%/month
	MaxAnnualRate  = "10" // 1000%/year
)

// ValidateAmount validates a monetary amount for deposits and withdrawals.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	minAmount, _ := decimal.NewFromString(MinAmount)
	if amount.LessThan(minAmount) {
		return fmt.Errorf("%w: minimum amount is %s", ErrAmountTooSmall, MinAmount)
	}

	maxAmount, _ := decimal.NewFromString(MaxAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxAmount)
	}

	return nil
}

// ValidateMonthlyRate validates a loan account's monthly interest rate.
func ValidateMonthlyRate(rate decimal.Decimal) error {
	if rate.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidRate
	}

	maxRate, _ := decimal.NewFromString(MaxMonthlyRate)
	if rate.GreaterThan(maxRate) {
		return fmt.Errorf("%w: maximum monthly rate is %s", ErrRateTooLarge, MaxMonthlyRate)
	}

	return nil
}

// ValidateAnnualRate validates a yield deposit's annual rate.
func ValidateAnnualRate(rate decimal.Decimal) error {
	if rate.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidRate
	}

	maxRate, _ := decimal.NewFromString(MaxAnnualRate)
	if rate.GreaterThan(maxRate) {
		return fmt.Errorf("%w: maximum annual rate is %s", ErrRateTooLarge, MaxAnnualRate)
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
