package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger event.
type TransactionType string

const (
	TxnTypeLoan           TransactionType = "loan"
	TxnTypeDeposit        TransactionType = "deposit"
	TxnTypeWithdrawal     TransactionType = "withdrawal"
	TxnTypeBonus          TransactionType = "bonus"
	TxnTypeMonthlyPayment TransactionType = "monthly_payment"
	TxnTypeAdjustment     TransactionType = "adjustment"
)

// Transaction is a single dated monetary event on a loan account.
// TransactionDate is event time and may be backdated or future-dated
// relative to CreatedAt (record time).
type Transaction struct {
	ID              string
	LoanAccountID   string
	Type            TransactionType
	Amount          decimal.Decimal
	BonusPercentage *decimal.Decimal
	Description     string
	ReferenceID     *string
	TransactionDate time.Time
	CreatedAt       time.Time
}

// knownTxnTypes is the set of types the replay engine understands.
var knownTxnTypes = map[TransactionType]bool{
	TxnTypeLoan:           true,
	TxnTypeDeposit:        true,
	TxnTypeWithdrawal:     true,
	TxnTypeBonus:          true,
	TxnTypeMonthlyPayment: true,
	TxnTypeAdjustment:     true,
}

// Validate checks the transaction against an account origin date.
// Adjustments may carry a negative amount; every other type must be
// strictly positive.
func (t *Transaction) Validate(origin time.Time) error {
	if !knownTxnTypes[t.Type] {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidTransaction, t.Type)
	}

	if t.Amount.IsZero() {
		return fmt.Errorf("%w: zero amount", ErrInvalidTransaction)
	}

	if t.Type != TxnTypeAdjustment && t.Amount.IsNegative() {
		return fmt.Errorf("%w: negative amount for type %q", ErrInvalidTransaction, t.Type)
	}

	if t.TransactionDate.Before(origin) {
		return fmt.Errorf("%w: transaction dated %s before account origin %s",
			ErrInvalidTransaction,
			t.TransactionDate.Format("2006-01-02"),
			origin.Format("2006-01-02"))
	}

	return nil
}

// SortForReplay orders transactions for deterministic replay:
// transaction_date ascending, then created_at, then id. The sort is
// stable so equal keys keep insertion order.
func SortForReplay(txns []*Transaction) {
	sort.SliceStable(txns, func(i, j int) bool {
		if !txns[i].TransactionDate.Equal(txns[j].TransactionDate) {
			return txns[i].TransactionDate.Before(txns[j].TransactionDate)
		}
		if !txns[i].CreatedAt.Equal(txns[j].CreatedAt) {
			return txns[i].CreatedAt.Before(txns[j].CreatedAt)
		}
		return txns[i].ID < txns[j].ID
	})
}
