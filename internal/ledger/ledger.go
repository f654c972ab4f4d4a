package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind says which side of the ledger an entry sits on. The stored amount is
// always non-negative; the sign lives here.
type Kind string

const (
	KindCredit Kind = "credit"
	KindDebit  Kind = "debit"
)

// Entry is one immutable ledger record. Entries are only ever appended;
// corrections are modeled as new offsetting entries, never updates.
type Entry struct {
	ID                     int64
	AccountID              int64
	Kind                   Kind
	Amount                 decimal.Decimal
	ReferenceTransactionID *uuid.UUID
	Description            string
	CreatedAt              time.Time
}

// Validate checks the append invariants before an entry reaches storage.
func (e *Entry) Validate() error {
	if e.Kind != KindCredit && e.Kind != KindDebit {
		return ErrInvalidKind
	}

	if e.Amount.IsNegative() {
		return ErrInvalidAmount
	}

	return nil
}

// Signed returns the entry's contribution to a balance: positive for credits,
// negative for debits.
func (e *Entry) Signed() decimal.Decimal {
	if e.Kind == KindDebit {
		return e.Amount.Neg()
	}

	return e.Amount
}

// DaySummary is one calendar day's credit and debit totals. Stores return a
// dense series: one DaySummary per day in the requested range, zero-valued
// when the day had no activity.
type DaySummary struct {
	Day     time.Time
	Credits decimal.Decimal
	Debits  decimal.Decimal
}
