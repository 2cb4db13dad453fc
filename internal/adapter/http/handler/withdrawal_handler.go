package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/lenderly/loanledger/internal/adapter/http/dto"
	"github.com/lenderly/loanledger/internal/usecase"
)

// WithdrawalService defines the behavior needed by WithdrawalHandler.
type WithdrawalService interface {
	AllocateWithdrawal(ctx context.Context, userID string, amount decimal.Decimal, referenceID *string) (*usecase.WithdrawalResult, error)
}

// WithdrawalHandler handles withdrawal HTTP requests.
type WithdrawalHandler struct {
	withdrawalUC WithdrawalService
}

// NewWithdrawalHandler creates a new WithdrawalHandler.
func NewWithdrawalHandler(withdrawalUC WithdrawalService) *WithdrawalHandler {
	return &WithdrawalHandler{withdrawalUC: withdrawalUC}
}

// Create allocates a withdrawal across the user's deposits, newest
// first. A shortfall is reported in the response, not treated as an
// error.
func (h *WithdrawalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.WithdrawalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	result, err := h.withdrawalUC.AllocateWithdrawal(r.Context(), req.UserID, req.Amount, req.ReferenceID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to allocate withdrawal", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.WithdrawalFromResult(result))
}
