package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/lenderly/loanledger/internal/adapter/http/dto"
	"github.com/lenderly/loanledger/internal/domain"
	"github.com/lenderly/loanledger/internal/usecase"
)

type depositServiceStub struct {
	createFn      func(ctx context.Context, input usecase.CreateDepositInput) (*domain.YieldDeposit, error)
	getFn         func(ctx context.Context, id string) (*domain.YieldDeposit, error)
	updateFn      func(ctx context.Context, input usecase.UpdateDepositInput) (*domain.YieldDeposit, error)
	deleteFn      func(ctx context.Context, depositID, actorID string) error
	listFn        func(ctx context.Context, input usecase.ListDepositsInput) ([]*domain.YieldDeposit, error)
	listPayoutsFn func(ctx context.Context, depositID string, limit, offset int) ([]*domain.YieldPayout, error)
}

func (s *depositServiceStub) CreateDeposit(ctx context.Context, input usecase.CreateDepositInput) (*domain.YieldDeposit, error) {
	return s.createFn(ctx, input)
}

func (s *depositServiceStub) GetDeposit(ctx context.Context, id string) (*domain.YieldDeposit, error) {
	return s.getFn(ctx, id)
}

func (s *depositServiceStub) UpdateDeposit(ctx context.Context, input usecase.UpdateDepositInput) (*domain.YieldDeposit, error) {
	return s.updateFn(ctx, input)
}

func (s *depositServiceStub) DeleteDeposit(ctx context.Context, depositID, actorID string) error {
	return s.deleteFn(ctx, depositID, actorID)
}

func (s *depositServiceStub) ListDeposits(ctx context.Context, input usecase.ListDepositsInput) ([]*domain.YieldDeposit, error) {
	return s.listFn(ctx, input)
}

func (s *depositServiceStub) ListPayouts(ctx context.Context, depositID string, limit, offset int) ([]*domain.YieldPayout, error) {
	return s.listPayoutsFn(ctx, depositID, limit, offset)
}

func TestDepositHandler_Create_Success(t *testing.T) {
	var captured usecase.CreateDepositInput
	h := NewDepositHandler(&depositServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateDepositInput) (*domain.YieldDeposit, error) {
			captured = input
			return &domain.YieldDeposit{
				ID:              "dep-1",
				UserID:          input.UserID,
				PrincipalAmount: input.Amount,
				AnnualYieldRate: input.AnnualYieldRate,
				StartDate:       input.StartDate,
				Status:          domain.DepositStatusActive,
			}, nil
		},
	})

	body, _ := json.Marshal(dto.CreateDepositRequest{
		UserID:          "user-1",
		Amount:          decimal.RequireFromString("500"),
		AnnualYieldRate: decimal.RequireFromString("0.05"),
		ActorID:         "admin-1",
	})

	req := httptest.NewRequest(http.MethodPost, "/deposits", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.UserID != "user-1" || captured.StartDate.IsZero() {
		t.Fatalf("unexpected input: %+v", captured)
	}

	var resp dto.DepositResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "active" {
		t.Fatalf("expected active deposit, got %s", resp.Status)
	}
}

func TestDepositHandler_Create_MissingActor(t *testing.T) {
	h := NewDepositHandler(&depositServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateDepositInput) (*domain.YieldDeposit, error) {
			t.Fatal("CreateDeposit should not be called for invalid payload")
			return nil, nil
		},
	})

	body, _ := json.Marshal(dto.CreateDepositRequest{
		UserID:          "user-1",
		Amount:          decimal.RequireFromString("500"),
		AnnualYieldRate: decimal.RequireFromString("0.05"),
	})

	req := httptest.NewRequest(http.MethodPost, "/deposits", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestDepositHandler_Update_NotFound(t *testing.T) {
	h := NewDepositHandler(&depositServiceStub{
		updateFn: func(ctx context.Context, input usecase.UpdateDepositInput) (*domain.YieldDeposit, error) {
			return nil, domain.ErrDepositNotFound
		},
	})

	principal := decimal.RequireFromString("300")
	body, _ := json.Marshal(dto.UpdateDepositRequest{
		PrincipalAmount: &principal,
		ActorID:         "admin-1",
	})

	req := withURLParam(httptest.NewRequest(http.MethodPut, "/deposits/missing", bytes.NewReader(body)), "id", "missing")
	rec := httptest.NewRecorder()

	h.Update(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestDepositHandler_Update_RejectsUnknownStatus(t *testing.T) {
	h := NewDepositHandler(&depositServiceStub{
		updateFn: func(ctx context.Context, input usecase.UpdateDepositInput) (*domain.YieldDeposit, error) {
			t.Fatal("UpdateDeposit should not be called for invalid status")
			return nil, nil
		},
	})

	status := "frozen"
	body, _ := json.Marshal(dto.UpdateDepositRequest{
		Status:  &status,
		ActorID: "admin-1",
	})

	req := withURLParam(httptest.NewRequest(http.MethodPut, "/deposits/dep-1", bytes.NewReader(body)), "id", "dep-1")
	rec := httptest.NewRecorder()

	h.Update(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestDepositHandler_Delete_RequiresActorHeader(t *testing.T) {
	h := NewDepositHandler(&depositServiceStub{
		deleteFn: func(ctx context.Context, depositID, actorID string) error {
			t.Fatal("DeleteDeposit should not be called without an actor")
			return nil
		},
	})

	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/deposits/dep-1", nil), "id", "dep-1")
	rec := httptest.NewRecorder()

	h.Delete(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestDepositHandler_Delete_Success(t *testing.T) {
	var gotDeposit, gotActor string
	h := NewDepositHandler(&depositServiceStub{
		deleteFn: func(ctx context.Context, depositID, actorID string) error {
			gotDeposit, gotActor = depositID, actorID
			return nil
		},
	})

	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/deposits/dep-1", nil), "id", "dep-1")
	req.Header.Set("X-Actor-ID", "admin-1")
	rec := httptest.NewRecorder()

	h.Delete(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if gotDeposit != "dep-1" || gotActor != "admin-1" {
		t.Fatalf("unexpected delete args: %s %s", gotDeposit, gotActor)
	}
}

func TestDepositHandler_List_PassesStatusFilter(t *testing.T) {
	var captured usecase.ListDepositsInput
	h := NewDepositHandler(&depositServiceStub{
		listFn: func(ctx context.Context, input usecase.ListDepositsInput) ([]*domain.YieldDeposit, error) {
			captured = input
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/deposits?status=active&limit=10", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if captured.Status != domain.DepositStatusActive || captured.Limit != 10 {
		t.Fatalf("unexpected input: %+v", captured)
	}
}

func TestDepositHandler_ListPayouts_NotFound(t *testing.T) {
	h := NewDepositHandler(&depositServiceStub{
		listPayoutsFn: func(ctx context.Context, depositID string, limit, offset int) ([]*domain.YieldPayout, error) {
			return nil, domain.ErrDepositNotFound
		},
	})

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/deposits/missing/payouts", nil), "id", "missing")
	rec := httptest.NewRecorder()

	h.ListPayouts(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
