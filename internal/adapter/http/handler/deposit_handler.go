package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lenderly/loanledger/internal/adapter/http/dto"
	"github.com/lenderly/loanledger/internal/domain"
	"github.com/lenderly/loanledger/internal/usecase"
)

// DepositService defines the behavior needed by DepositHandler.
type DepositService interface {
	CreateDeposit(ctx context.Context, input usecase.CreateDepositInput) (*domain.YieldDeposit, error)
	GetDeposit(ctx context.Context, id string) (*domain.YieldDeposit, error)
	UpdateDeposit(ctx context.Context, input usecase.UpdateDepositInput) (*domain.YieldDeposit, error)
	DeleteDeposit(ctx context.Context, depositID, actorID string) error
	ListDeposits(ctx context.Context, input usecase.ListDepositsInput) ([]*domain.YieldDeposit, error)
	ListPayouts(ctx context.Context, depositID string, limit, offset int) ([]*domain.YieldPayout, error)
}

// DepositHandler handles yield deposit HTTP requests.
type DepositHandler struct {
	depositUC DepositService
}

// NewDepositHandler creates a new DepositHandler.
func NewDepositHandler(depositUC DepositService) *DepositHandler {
	return &DepositHandler{depositUC: depositUC}
}

// Create opens a new yield deposit and credits its principal to the
// user's loan ledger.
func (h *DepositHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	deposit, err := h.depositUC.CreateDeposit(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create deposit", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.DepositFromDomain(deposit))
}

// Get retrieves a deposit by ID.
func (h *DepositHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing deposit ID", "")
		return
	}

	deposit, err := h.depositUC.GetDeposit(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get deposit", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.DepositFromDomain(deposit))
}

// Update applies an administrative override to a deposit.
func (h *DepositHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing deposit ID", "")
		return
	}

	var req dto.UpdateDepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	deposit, err := h.depositUC.UpdateDeposit(r.Context(), req.ToUseCaseInput(id))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update deposit", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.DepositFromDomain(deposit))
}

// Delete soft-deletes a deposit. The actor comes from the X-Actor-ID
// header so deletes carry an audit trail like every other override.
func (h *DepositHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing deposit ID", "")
		return
	}

	actorID := r.Header.Get("X-Actor-ID")
	if actorID == "" {
		writeError(w, http.StatusBadRequest, "missing X-Actor-ID header", "")
		return
	}

	if err := h.depositUC.DeleteDeposit(r.Context(), id, actorID); err != nil {
		writeError(w, mapDomainError(err), "failed to delete deposit", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List lists deposits, optionally filtered by status.
func (h *DepositHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 50)
	offset := parseIntQuery(r, "offset", 0)
	status := r.URL.Query().Get("status")

	deposits, err := h.depositUC.ListDeposits(r.Context(), usecase.ListDepositsInput{
		Status: domain.DepositStatus(status),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list deposits", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListDepositsResponse{
		Deposits: dto.DepositsFromDomain(deposits),
		Total:    int64(len(deposits)),
	})
}

// ListPayouts lists a deposit's payout history.
func (h *DepositHandler) ListPayouts(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing deposit ID", "")
		return
	}

	limit := parseIntQuery(r, "limit", 50)
	offset := parseIntQuery(r, "offset", 0)

	payouts, err := h.depositUC.ListPayouts(r.Context(), id, limit, offset)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list payouts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListPayoutsResponse{
		Payouts: dto.PayoutsFromDomain(payouts),
		Total:   int64(len(payouts)),
	})
}
