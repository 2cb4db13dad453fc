package dto

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/lenderly/loanledger/internal/domain"
	"github.com/lenderly/loanledger/internal/usecase"
)

var validate = validator.New()

// CreateAccountRequest represents a request to open a loan account.
type CreateAccountRequest struct {
	UserID          string          `json:"user_id" validate:"required"`
	PrincipalAmount decimal.Decimal `json:"principal_amount" validate:"required"`
	MonthlyRate     decimal.Decimal `json:"monthly_rate" validate:"required"`
	Description     string          `json:"description"`
}

// Validate checks required fields.
func (r *CreateAccountRequest) Validate() error {
	return validate.Struct(r)
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		UserID:          r.UserID,
		PrincipalAmount: r.PrincipalAmount,
		MonthlyRate:     r.MonthlyRate,
		Description:     r.Description,
	}
}

// RecordTransactionRequest represents an administrative ledger entry.
type RecordTransactionRequest struct {
	Type            string           `json:"type" validate:"required,oneof=bonus adjustment"`
	Amount          decimal.Decimal  `json:"amount" validate:"required"`
	BonusPercentage *decimal.Decimal `json:"bonus_percentage,omitempty"`
	Description     string           `json:"description"`
	ReferenceID     *string          `json:"reference_id,omitempty"`
	TransactionDate *time.Time       `json:"transaction_date,omitempty"`
	ActorID         string           `json:"actor_id" validate:"required"`
}

// Validate checks required fields.
func (r *RecordTransactionRequest) Validate() error {
	return validate.Struct(r)
}

// ToUseCaseInput converts to use case input. The account ID comes from
// the URL, the transaction date defaults to now.
func (r *RecordTransactionRequest) ToUseCaseInput(accountID string) usecase.RecordTransactionInput {
	txnDate := time.Now().UTC()
	if r.TransactionDate != nil {
		txnDate = *r.TransactionDate
	}

	return usecase.RecordTransactionInput{
		AccountID:       accountID,
		Type:            domain.TransactionType(r.Type),
		Amount:          r.Amount,
		BonusPercentage: r.BonusPercentage,
		Description:     r.Description,
		ReferenceID:     r.ReferenceID,
		TransactionDate: txnDate,
		ActorID:         r.ActorID,
	}
}

// CreateDepositRequest represents a request to open a yield deposit.
type CreateDepositRequest struct {
	UserID          string          `json:"user_id" validate:"required"`
	Amount          decimal.Decimal `json:"amount" validate:"required"`
	AnnualYieldRate decimal.Decimal `json:"annual_yield_rate" validate:"required"`
	StartDate       *time.Time      `json:"start_date,omitempty"`
	Description     string          `json:"description"`
	ActorID         string          `json:"actor_id" validate:"required"`
}

// Validate checks required fields.
func (r *CreateDepositRequest) Validate() error {
	return validate.Struct(r)
}

// ToUseCaseInput converts to use case input. The start date defaults
// to now.
func (r *CreateDepositRequest) ToUseCaseInput() usecase.CreateDepositInput {
	startDate := time.Now().UTC()
	if r.StartDate != nil {
		startDate = *r.StartDate
	}

	return usecase.CreateDepositInput{
		UserID:          r.UserID,
		Amount:          r.Amount,
		AnnualYieldRate: r.AnnualYieldRate,
		StartDate:       startDate,
		Description:     r.Description,
		ActorID:         r.ActorID,
	}
}

// UpdateDepositRequest is an administrative deposit override. Only the
// fields present are changed.
type UpdateDepositRequest struct {
	PrincipalAmount *decimal.Decimal `json:"principal_amount,omitempty"`
	AnnualYieldRate *decimal.Decimal `json:"annual_yield_rate,omitempty"`
	Status          *string          `json:"status,omitempty" validate:"omitempty,oneof=active inactive completed"`
	ActorID         string           `json:"actor_id" validate:"required"`
}

// Validate checks required fields.
func (r *UpdateDepositRequest) Validate() error {
	return validate.Struct(r)
}

// ToUseCaseInput converts to use case input.
func (r *UpdateDepositRequest) ToUseCaseInput(depositID string) usecase.UpdateDepositInput {
	input := usecase.UpdateDepositInput{
		DepositID:       depositID,
		PrincipalAmount: r.PrincipalAmount,
		AnnualYieldRate: r.AnnualYieldRate,
		ActorID:         r.ActorID,
	}
	if r.Status != nil {
		status := domain.DepositStatus(*r.Status)
		input.Status = &status
	}

	return input
}

// WithdrawalRequest represents a request to withdraw funds from a
// user's deposits.
type WithdrawalRequest struct {
	UserID      string          `json:"user_id" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	ReferenceID *string         `json:"reference_id,omitempty"`
}

// Validate checks required fields.
func (r *WithdrawalRequest) Validate() error {
	return validate.Struct(r)
}

// RunBatchRequest triggers a payout batch run. The date defaults to
// today when omitted.
type RunBatchRequest struct {
	Date *string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// Validate checks the date format.
func (r *RunBatchRequest) Validate() error {
	return validate.Struct(r)
}

// AsOf resolves the requested batch date.
func (r *RunBatchRequest) AsOf() time.Time {
	if r.Date == nil {
		return time.Now().UTC()
	}

	// Validated against 2006-01-02 already.
	t, _ := time.Parse("2006-01-02", *r.Date)

	return t
}
