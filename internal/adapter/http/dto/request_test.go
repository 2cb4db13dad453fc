package dto

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lenderly/loanledger/internal/domain"
)

func TestCreateAccountRequest_Validate(t *testing.T) {
	req := CreateAccountRequest{
		UserID:          "user-1",
		PrincipalAmount: decimal.RequireFromString("30000"),
		MonthlyRate:     decimal.RequireFromString("0.01"),
	}
	if err := req.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}

	req.UserID = ""
	if err := req.Validate(); err == nil {
		t.Fatal("expected missing user_id to fail validation")
	}
}

func TestRecordTransactionRequest_TypeMustBeAdministrative(t *testing.T) {
	base := RecordTransactionRequest{
		Amount:  decimal.RequireFromString("50"),
		ActorID: "admin-1",
	}

	for _, typ := range []string{"bonus", "adjustment"} {
		req := base
		req.Type = typ
		if err := req.Validate(); err != nil {
			t.Fatalf("expected type %q to be valid, got %v", typ, err)
		}
	}

	for _, typ := range []string{"", "loan", "deposit", "withdrawal", "monthly_payment"} {
		req := base
		req.Type = typ
		if err := req.Validate(); err == nil {
			t.Fatalf("expected type %q to fail validation", typ)
		}
	}
}

func TestRecordTransactionRequest_ToUseCaseInput_DefaultsDate(t *testing.T) {
	req := RecordTransactionRequest{
		Type:    "bonus",
		Amount:  decimal.RequireFromString("50"),
		ActorID: "admin-1",
	}

	input := req.ToUseCaseInput("acc-1")
	if input.AccountID != "acc-1" {
		t.Fatalf("expected account ID from URL, got %s", input.AccountID)
	}
	if input.Type != domain.TxnTypeBonus {
		t.Fatalf("expected bonus type, got %s", input.Type)
	}
	if time.Since(input.TransactionDate) > time.Minute {
		t.Fatalf("expected transaction date to default to now, got %s", input.TransactionDate)
	}

	explicit := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	req.TransactionDate = &explicit
	if got := req.ToUseCaseInput("acc-1").TransactionDate; !got.Equal(explicit) {
		t.Fatalf("expected explicit date to win, got %s", got)
	}
}

func TestUpdateDepositRequest_Validate(t *testing.T) {
	active := "active"
	req := UpdateDepositRequest{Status: &active, ActorID: "admin-1"}
	if err := req.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}

	frozen := "frozen"
	req.Status = &frozen
	if err := req.Validate(); err == nil {
		t.Fatal("expected unknown status to fail validation")
	}

	req.Status = nil
	req.ActorID = ""
	if err := req.Validate(); err == nil {
		t.Fatal("expected missing actor_id to fail validation")
	}
}

func TestUpdateDepositRequest_ToUseCaseInput_ConvertsStatus(t *testing.T) {
	completed := "completed"
	req := UpdateDepositRequest{Status: &completed, ActorID: "admin-1"}

	input := req.ToUseCaseInput("dep-1")
	if input.DepositID != "dep-1" {
		t.Fatalf("expected deposit ID from URL, got %s", input.DepositID)
	}
	if input.Status == nil || *input.Status != domain.DepositStatusCompleted {
		t.Fatalf("expected completed status, got %+v", input.Status)
	}
}

func TestRunBatchRequest_AsOf(t *testing.T) {
	var req RunBatchRequest
	if err := req.Validate(); err != nil {
		t.Fatalf("expected empty request to be valid, got %v", err)
	}
	if time.Since(req.AsOf()) > time.Minute {
		t.Fatalf("expected default date to be now, got %s", req.AsOf())
	}

	date := "2026-03-15"
	req.Date = &date
	if err := req.Validate(); err != nil {
		t.Fatalf("expected valid date, got %v", err)
	}
	if got := req.AsOf(); got.Format("2006-01-02") != date {
		t.Fatalf("expected %s, got %s", date, got)
	}

	bad := "15/03/2026"
	req.Date = &bad
	if err := req.Validate(); err == nil {
		t.Fatal("expected malformed date to fail validation")
	}
}
