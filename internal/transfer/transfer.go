package transfer

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is the terminal state of an accepted operation.
type Status string

const (
	// StatusAccepted marks a freshly committed operation.
	StatusAccepted Status = "accepted"
	// StatusDuplicate marks a replay resolved from a stored snapshot.
	StatusDuplicate Status = "duplicate"
)

// Receipt is the canonical result of a send or deposit. The snapshot stored
// under an idempotency key is the marshaled receipt of the first commit;
// replays return the same payload with Status flipped to duplicate.
type Receipt struct {
	Status                 Status          `json:"status"`
	ReferenceTransactionID uuid.UUID       `json:"reference_transaction_id"`
	EntryIDs               []int64         `json:"entry_ids"`
	NewBalance             decimal.Decimal `json:"new_balance"`
}

// KeyRecord is a stored idempotency claim. Snapshot is nil only while the
// claiming transaction is still open; a committed claim always carries the
// receipt, because both are written in the same transaction.
type KeyRecord struct {
	Key       string
	Snapshot  []byte
	CreatedAt time.Time
}

// Receipt decodes the stored snapshot as a duplicate-status receipt.
func (r *KeyRecord) Receipt() (*Receipt, error) {
	if len(r.Snapshot) == 0 {
		return nil, ErrOperationInProgress
	}

	var rec Receipt
	if err := json.Unmarshal(r.Snapshot, &rec); err != nil {
		return nil, fmt.Errorf("decoding idempotency snapshot: %w", err)
	}

	rec.Status = StatusDuplicate

	return &rec, nil
}
