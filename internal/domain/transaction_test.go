package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestTransaction_Validate(t *testing.T) {
	origin := date(2023, time.January, 1)

	tests := []struct {
		name        string
		txn         *Transaction
		expectError error
	}{
		{
			name: "valid deposit",
			txn: &Transaction{
				Type:            TxnTypeDeposit,
				Amount:          decimal.NewFromInt(100),
				TransactionDate: date(2023, time.February, 1),
			},
			expectError: nil,
		},
		{
			name: "backdated within account life",
			txn: &Transaction{
				Type:            TxnTypeBonus,
				Amount:          decimal.NewFromInt(50),
				TransactionDate: origin,
			},
			expectError: nil,
		},
		{
			name: "negative adjustment",
			txn: &Transaction{
				Type:            TxnTypeAdjustment,
				Amount:          decimal.NewFromInt(-25),
				TransactionDate: date(2023, time.March, 1),
			},
			expectError: nil,
		},
		{
			name: "unknown type",
			txn: &Transaction{
				Type:            "chargeback",
				Amount:          decimal.NewFromInt(100),
				TransactionDate: date(2023, time.February, 1),
			},
			expectError: ErrInvalidTransaction,
		},
		{
			name: "zero amount",
			txn: &Transaction{
				Type:            TxnTypeWithdrawal,
				Amount:          decimal.Zero,
				TransactionDate: date(2023, time.February, 1),
			},
			expectError: ErrInvalidTransaction,
		},
		{
			name: "negative withdrawal",
			txn: &Transaction{
				Type:            TxnTypeWithdrawal,
				Amount:          decimal.NewFromInt(-10),
				TransactionDate: date(2023, time.February, 1),
			},
			expectError: ErrInvalidTransaction,
		},
		{
			name: "before origin",
			txn: &Transaction{
				Type:            TxnTypeDeposit,
				Amount:          decimal.NewFromInt(100),
				TransactionDate: date(2022, time.December, 31),
			},
			expectError: ErrInvalidTransaction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.txn.Validate(origin)

			if tt.expectError == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.expectError != nil && !errors.Is(err, tt.expectError) {
				t.Errorf("expected %v, got %v", tt.expectError, err)
			}
		})
	}
}

func TestSortForReplay(t *testing.T) {
	d1 := date(2023, time.March, 1)
	d2 := date(2023, time.March, 5)
	c1 := date(2023, time.April, 1)
	c2 := date(2023, time.April, 2)

	txns := []*Transaction{
		{ID: "c", TransactionDate: d2, CreatedAt: c1},
		{ID: "b", TransactionDate: d1, CreatedAt: c2},
		{ID: "a", TransactionDate: d1, CreatedAt: c1},
		{ID: "d", TransactionDate: d1, CreatedAt: c1},
	}

	SortForReplay(txns)

	// Date first, then created_at, then id.
	want := []string{"a", "d", "b", "c"}
	for i, id := range want {
		if txns[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, txns[i].ID)
		}
	}
}
