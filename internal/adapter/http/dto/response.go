package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lenderly/loanledger/internal/domain"
	"github.com/lenderly/loanledger/internal/usecase"
)

// AccountResponse represents a loan account in API responses.
type AccountResponse struct {
	ID               string          `json:"id"`
	UserID           string          `json:"user_id"`
	PrincipalAmount  decimal.Decimal `json:"principal_amount"`
	CurrentBalance   decimal.Decimal `json:"current_balance"`
	MonthlyRate      decimal.Decimal `json:"monthly_rate"`
	TotalBonuses     decimal.Decimal `json:"total_bonuses"`
	TotalWithdrawals decimal.Decimal `json:"total_withdrawals"`
	Version          int64           `json:"version"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.LoanAccount) *AccountResponse {
	return &AccountResponse{
		ID:               a.ID,
		UserID:           a.UserID,
		PrincipalAmount:  a.PrincipalAmount,
		CurrentBalance:   a.CurrentBalance,
		MonthlyRate:      a.MonthlyRate,
		TotalBonuses:     a.TotalBonuses,
		TotalWithdrawals: a.TotalWithdrawals,
		Version:          a.Version,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.LoanAccount) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse wraps a page of accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// TransactionResponse represents a ledger transaction in API responses.
type TransactionResponse struct {
	ID              string           `json:"id"`
	LoanAccountID   string           `json:"loan_account_id"`
	Type            string           `json:"type"`
	Amount          decimal.Decimal  `json:"amount"`
	BonusPercentage *decimal.Decimal `json:"bonus_percentage,omitempty"`
	Description     string           `json:"description,omitempty"`
	ReferenceID     *string          `json:"reference_id,omitempty"`
	TransactionDate time.Time        `json:"transaction_date"`
	CreatedAt       time.Time        `json:"created_at"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:              t.ID,
		LoanAccountID:   t.LoanAccountID,
		Type:            string(t.Type),
		Amount:          t.Amount,
		BonusPercentage: t.BonusPercentage,
		Description:     t.Description,
		ReferenceID:     t.ReferenceID,
		TransactionDate: t.TransactionDate,
		CreatedAt:       t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txns []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txns))
	for i, t := range txns {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// ListTransactionsResponse wraps a page of ledger transactions.
type ListTransactionsResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Total        int64                  `json:"total"`
}

// DepositResponse represents a yield deposit in API responses.
type DepositResponse struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	PrincipalAmount decimal.Decimal `json:"principal_amount"`
	AnnualYieldRate decimal.Decimal `json:"annual_yield_rate"`
	StartDate       time.Time       `json:"start_date"`
	Status          string          `json:"status"`
	LastPayoutDate  *time.Time      `json:"last_payout_date,omitempty"`
	TotalPaidOut    decimal.Decimal `json:"total_paid_out"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// DepositFromDomain converts a domain deposit to a response.
func DepositFromDomain(d *domain.YieldDeposit) *DepositResponse {
	return &DepositResponse{
		ID:              d.ID,
		UserID:          d.UserID,
		PrincipalAmount: d.PrincipalAmount,
		AnnualYieldRate: d.AnnualYieldRate,
		StartDate:       d.StartDate,
		Status:          string(d.Status),
		LastPayoutDate:  d.LastPayoutDate,
		TotalPaidOut:    d.TotalPaidOut,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

// DepositsFromDomain converts domain deposits to responses.
func DepositsFromDomain(deposits []*domain.YieldDeposit) []*DepositResponse {
	result := make([]*DepositResponse, len(deposits))
	for i, d := range deposits {
		result[i] = DepositFromDomain(d)
	}
	return result
}

// ListDepositsResponse wraps a page of deposits.
type ListDepositsResponse struct {
	Deposits []*DepositResponse `json:"deposits"`
	Total    int64              `json:"total"`
}

// PayoutResponse represents a yield payout in API responses.
type PayoutResponse struct {
	ID         string          `json:"id"`
	DepositID  string          `json:"deposit_id"`
	Amount     decimal.Decimal `json:"amount"`
	PayoutDate time.Time       `json:"payout_date"`
	Kind       string          `json:"kind"`
	CreatedAt  time.Time       `json:"created_at"`
}

// PayoutFromDomain converts a domain payout to a response.
func PayoutFromDomain(p *domain.YieldPayout) *PayoutResponse {
	return &PayoutResponse{
		ID:         p.ID,
		DepositID:  p.DepositID,
		Amount:     p.Amount,
		PayoutDate: p.PayoutDate,
		Kind:       string(p.Kind),
		CreatedAt:  p.CreatedAt,
	}
}

// PayoutsFromDomain converts domain payouts to responses.
func PayoutsFromDomain(payouts []*domain.YieldPayout) []*PayoutResponse {
	result := make([]*PayoutResponse, len(payouts))
	for i, p := range payouts {
		result[i] = PayoutFromDomain(p)
	}
	return result
}

// ListPayoutsResponse wraps a page of payouts.
type ListPayoutsResponse struct {
	Payouts []*PayoutResponse `json:"payouts"`
	Total   int64             `json:"total"`
}

// ReplayResponse summarizes a persisted ledger replay.
type ReplayResponse struct {
	AccountID       string          `json:"account_id"`
	MonthsProcessed int             `json:"months_processed"`
	ClosingBalance  decimal.Decimal `json:"closing_balance"`
}

// ReplayFromReport converts a replay report to a response.
func ReplayFromReport(r *usecase.ReplayReport) *ReplayResponse {
	return &ReplayResponse{
		AccountID:       r.AccountID,
		MonthsProcessed: r.MonthsProcessed,
		ClosingBalance:  r.ClosingBalance,
	}
}

// AllocationStepResponse is one deposit reduction within a withdrawal.
type AllocationStepResponse struct {
	DepositID    string          `json:"deposit_id"`
	Amount       decimal.Decimal `json:"amount"`
	NewPrincipal decimal.Decimal `json:"new_principal"`
	Completed    bool            `json:"completed"`
}

// WithdrawalResponse reports how a withdrawal was allocated across
// deposits. Remainder is non-zero when deposits could not cover the
// full amount.
type WithdrawalResponse struct {
	Steps     []AllocationStepResponse `json:"steps"`
	Allocated decimal.Decimal          `json:"allocated"`
	Remainder decimal.Decimal          `json:"remainder"`
}

// WithdrawalFromResult converts a withdrawal result to a response.
func WithdrawalFromResult(r *usecase.WithdrawalResult) *WithdrawalResponse {
	steps := make([]AllocationStepResponse, len(r.Steps))
	for i, s := range r.Steps {
		steps[i] = AllocationStepResponse{
			DepositID:    s.DepositID,
			Amount:       s.Amount,
			NewPrincipal: s.NewPrincipal,
			Completed:    s.Completed,
		}
	}

	return &WithdrawalResponse{
		Steps:     steps,
		Allocated: r.Allocated,
		Remainder: r.Remainder,
	}
}

// BatchFailureResponse is one deposit a batch run could not process.
type BatchFailureResponse struct {
	DepositID string `json:"deposit_id"`
	Error     string `json:"error"`
}

// BatchReportResponse summarizes a payout batch run.
type BatchReportResponse struct {
	Date             time.Time              `json:"date"`
	Kind             string                 `json:"kind"`
	AppliedCount     int                    `json:"applied_count"`
	TotalAmount      decimal.Decimal        `json:"total_amount"`
	AlreadyProcessed int                    `json:"already_processed"`
	Failures         []BatchFailureResponse `json:"failures,omitempty"`
	Applied          []PayoutItemResponse   `json:"applied,omitempty"`
}

// PayoutItemResponse is one applied payout within a batch report.
type PayoutItemResponse struct {
	DepositID string          `json:"deposit_id"`
	Amount    decimal.Decimal `json:"amount"`
}

// BatchReportFromUseCase converts a batch report to a response.
func BatchReportFromUseCase(r *usecase.BatchReport) *BatchReportResponse {
	applied := make([]PayoutItemResponse, len(r.Applied))
	for i, a := range r.Applied {
		applied[i] = PayoutItemResponse{DepositID: a.DepositID, Amount: a.Amount}
	}

	failures := make([]BatchFailureResponse, len(r.Failures))
	for i, f := range r.Failures {
		failures[i] = BatchFailureResponse{DepositID: f.DepositID, Error: f.Error}
	}

	return &BatchReportResponse{
		Date:             r.Date,
		Kind:             string(r.Kind),
		AppliedCount:     len(r.Applied),
		TotalAmount:      r.TotalAmount,
		AlreadyProcessed: r.AlreadyProcessed,
		Failures:         failures,
		Applied:          applied,
	}
}

// BatchStatusResponse reports the progress of a day's daily batch.
type BatchStatusResponse struct {
	Date            time.Time       `json:"date"`
	ProcessedCount  int             `json:"processed_count"`
	ProcessedAmount decimal.Decimal `json:"processed_amount"`
	PendingCount    int             `json:"pending_count"`
	IsComplete      bool            `json:"is_complete"`
}

// BatchStatusFromUseCase converts a batch status to a response.
func BatchStatusFromUseCase(s *usecase.BatchStatus) *BatchStatusResponse {
	return &BatchStatusResponse{
		Date:            s.Date,
		ProcessedCount:  s.ProcessedCount,
		ProcessedAmount: s.ProcessedAmount,
		PendingCount:    s.PendingCount,
		IsComplete:      s.IsComplete,
	}
}

// ReconciliationResultResponse reports one account's ledger check.
type ReconciliationResultResponse struct {
	AccountID         string          `json:"account_id"`
	RecordedBalance   decimal.Decimal `json:"recorded_balance"`
	CalculatedBalance decimal.Decimal `json:"calculated_balance"`
	Difference        decimal.Decimal `json:"difference"`
	IsReconciled      bool            `json:"is_reconciled"`
	LastChecked       time.Time       `json:"last_checked"`
}

// ReconciliationResultFromUseCase converts a reconciliation result.
func ReconciliationResultFromUseCase(r *usecase.ReconciliationResult) *ReconciliationResultResponse {
	return &ReconciliationResultResponse{
		AccountID:         r.AccountID,
		RecordedBalance:   r.RecordedBalance,
		CalculatedBalance: r.CalculatedBalance,
		Difference:        r.Difference,
		IsReconciled:      r.IsReconciled,
		LastChecked:       r.LastChecked,
	}
}

// ReconciliationReportResponse reports a full reconciliation sweep.
type ReconciliationReportResponse struct {
	TotalAccounts      int                             `json:"total_accounts"`
	ReconciledAccounts int                             `json:"reconciled_accounts"`
	Discrepancies      []*ReconciliationResultResponse `json:"discrepancies"`
	CheckedAt          time.Time                       `json:"checked_at"`
}

// ReconciliationReportFromUseCase converts a reconciliation report.
func ReconciliationReportFromUseCase(r *usecase.ReconciliationReport) *ReconciliationReportResponse {
	discrepancies := make([]*ReconciliationResultResponse, len(r.Discrepancies))
	for i, d := range r.Discrepancies {
		discrepancies[i] = ReconciliationResultFromUseCase(d)
	}

	return &ReconciliationReportResponse{
		TotalAccounts:      r.TotalAccounts,
		ReconciledAccounts: r.ReconciledAccounts,
		Discrepancies:      discrepancies,
		CheckedAt:          r.CheckedAt,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
