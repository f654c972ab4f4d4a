package ledger

import "errors"

var (
	// ErrInvalidAmount indicates a non-positive or otherwise out-of-range amount.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInvalidKind indicates an entry kind outside {credit, debit}.
	ErrInvalidKind = errors.New("invalid entry kind")
	// ErrAccountNotFound indicates the referenced account does not exist.
	ErrAccountNotFound = errors.New("account not found")
	// ErrDuplicateKey indicates an idempotency key that was already claimed.
	ErrDuplicateKey = errors.New("idempotency key already claimed")
)
