package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lenderly/loanledger/internal/adapter/http/dto"
	"github.com/lenderly/loanledger/internal/domain"
	"github.com/lenderly/loanledger/internal/usecase"
)

// ReplayService defines the replay behavior needed by LedgerHandler.
type ReplayService interface {
	ReplayAndPersist(ctx context.Context, accountID string) (*usecase.ReplayReport, error)
}

// AnalyticsService defines the analytics behavior needed by LedgerHandler.
type AnalyticsService interface {
	GetAnalytics(ctx context.Context, accountID string, period int) (*domain.AnalyticsView, error)
}

// ReconciliationService defines the reconciliation behavior needed by
// LedgerHandler.
type ReconciliationService interface {
	ReconcileAccount(ctx context.Context, accountID string) (*usecase.ReconciliationResult, error)
	GenerateReconciliationReport(ctx context.Context) (*usecase.ReconciliationReport, error)
}

// LedgerHandler serves the derived views of the ledger: replay,
// analytics and reconciliation.
type LedgerHandler struct {
	replayUC    ReplayService
	analyticsUC AnalyticsService
	reconcileUC ReconciliationService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(replayUC ReplayService, analyticsUC AnalyticsService, reconcileUC ReconciliationService) *LedgerHandler {
	return &LedgerHandler{
		replayUC:    replayUC,
		analyticsUC: analyticsUC,
		reconcileUC: reconcileUC,
	}
}

// Replay recomputes an account's monthly history and balance from the
// full ledger and persists the result.
func (h *LedgerHandler) Replay(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	report, err := h.replayUC.ReplayAndPersist(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to replay account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReplayFromReport(report))
}

// Analytics returns an account's balance projection for the requested
// period in months. Unknown periods fall back to the default.
func (h *LedgerHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	period := parseIntQuery(r, "period", 0)

	view, err := h.analyticsUC.GetAnalytics(r.Context(), id, period)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get analytics", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// Reconcile checks one account's stored balance against an in-memory
// replay of its ledger.
func (h *LedgerHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	result, err := h.reconcileUC.ReconcileAccount(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to reconcile account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReconciliationResultFromUseCase(result))
}

// ReconciliationReport reconciles every account and reports the
// discrepancies.
func (h *LedgerHandler) ReconciliationReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.reconcileUC.GenerateReconciliationReport(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate report", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReconciliationReportFromUseCase(report))
}
