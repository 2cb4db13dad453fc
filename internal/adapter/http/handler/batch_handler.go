package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/lenderly/loanledger/internal/adapter/http/dto"
	"github.com/lenderly/loanledger/internal/usecase"
)

// BatchService defines the behavior needed by BatchHandler.
type BatchService interface {
	RunDailyBatch(ctx context.Context, asOf time.Time) (*usecase.BatchReport, error)
	RunAnnualBatch(ctx context.Context, asOf time.Time) (*usecase.BatchReport, error)
	GetBatchStatus(ctx context.Context, date time.Time) (*usecase.BatchStatus, error)
}

// BatchHandler handles payout batch HTTP requests. The scheduler runs
// the same batches on a timer; these endpoints exist for manual runs
// and backfills.
type BatchHandler struct {
	batchUC BatchService
}

// NewBatchHandler creates a new BatchHandler.
func NewBatchHandler(batchUC BatchService) *BatchHandler {
	return &BatchHandler{batchUC: batchUC}
}

// RunDaily triggers the daily payout batch for the requested date.
func (h *BatchHandler) RunDaily(w http.ResponseWriter, r *http.Request) {
	h.runBatch(w, r, h.batchUC.RunDailyBatch)
}

// RunAnnual triggers the annual top-up batch for the requested date.
func (h *BatchHandler) RunAnnual(w http.ResponseWriter, r *http.Request) {
	h.runBatch(w, r, h.batchUC.RunAnnualBatch)
}

func (h *BatchHandler) runBatch(w http.ResponseWriter, r *http.Request, run func(context.Context, time.Time) (*usecase.BatchReport, error)) {
	var req dto.RunBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	report, err := run(r.Context(), req.AsOf())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to run batch", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BatchReportFromUseCase(report))
}

// Status reports the progress of a day's daily batch. The date query
// parameter defaults to today.
func (h *BatchHandler) Status(w http.ResponseWriter, r *http.Request) {
	date := time.Now().UTC()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date", "expected YYYY-MM-DD")
			return
		}
		date = parsed
	}

	status, err := h.batchUC.GetBatchStatus(r.Context(), date)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get batch status", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BatchStatusFromUseCase(status))
}
