package transfer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rbarros/pixwallet/internal/ledger"
)

var (
	// ErrInvalidAmount indicates a non-positive amount.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrSelfTransfer indicates source and destination are the same account.
	ErrSelfTransfer = errors.New("cannot send to the source account")
	// ErrInsufficientFunds indicates the source balance does not cover the amount.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrOperationInProgress indicates the idempotency key is claimed by an
	// operation that has not committed yet.
	ErrOperationInProgress = errors.New("operation with this key in progress")
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transfer
type Repository interface {
	LookupKey(ctx context.Context, key string) (*KeyRecord, error)
	BeginSend(ctx context.Context, sourceAccountID int64) (SendTx, error)
}

// SendTx is one atomic unit of work holding the source account's lock. The
// idempotency claim, the funds check, the entry writes, and the snapshot all
// commit together or not at all.
type SendTx interface {
	LookupKey(ctx context.Context, key string) (*KeyRecord, error)
	ClaimKey(ctx context.Context, key string) error
	SumByAccount(ctx context.Context, accountID int64) (decimal.Decimal, error)
	AppendEntries(ctx context.Context, entries []*ledger.Entry) error
	StoreSnapshot(ctx context.Context, key string, snapshot []byte) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// SendParams describes a money movement out of a source account. A nil
// DestinationAccountID is an external send (PIX out): only the debit leg is
// recorded. Amounts are rounded half-up to 2 decimal places on entry.
type SendParams struct {
	SourceAccountID      int64
	DestinationAccountID *int64
	Amount               decimal.Decimal
	Description          string
	IdempotencyKey       string
}

func (p SendParams) validate() error {
	if !p.Amount.IsPositive() {
		return ErrInvalidAmount
	}

	if p.DestinationAccountID != nil && *p.DestinationAccountID == p.SourceAccountID {
		return ErrSelfTransfer
	}

	return nil
}

// DepositParams describes a credit entering the wallet.
type DepositParams struct {
	AccountID      int64
	Amount         decimal.Decimal
	Description    string
	IdempotencyKey string
}

// Send debits the source account and, for internal transfers, credits the
// destination, both legs sharing one reference transaction id.
func (s *Service) Send(ctx context.Context, p SendParams) (*Receipt, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	amount := p.Amount.Round(2)

	return s.execute(ctx, p.IdempotencyKey, p.SourceAccountID, func(ctx context.Context, tx SendTx, refID uuid.UUID) ([]*ledger.Entry, decimal.Decimal, error) {
		balance, err := tx.SumByAccount(ctx, p.SourceAccountID)
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("reading balance: %w", err)
		}

		if balance.LessThan(amount) {
			return nil, decimal.Zero, ErrInsufficientFunds
		}

		debit := &ledger.Entry{
			AccountID:              p.SourceAccountID,
			Kind:                   ledger.KindDebit,
			Amount:                 amount,
			ReferenceTransactionID: &refID,
			Description:            p.Description,
		}

		entries := []*ledger.Entry{debit}

		if p.DestinationAccountID != nil {
			entries = append(entries, &ledger.Entry{
				AccountID:              *p.DestinationAccountID,
				Kind:                   ledger.KindCredit,
				Amount:                 amount,
				ReferenceTransactionID: &refID,
				Description:            p.Description,
			})
		}

		return entries, balance.Add(debit.Signed()), nil
	})
}

// Deposit credits the account. There is no funds check; the serialization on
// the account still applies so deposits and sends never interleave.
func (s *Service) Deposit(ctx context.Context, p DepositParams) (*Receipt, error) {
	if !p.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	amount := p.Amount.Round(2)

	return s.execute(ctx, p.IdempotencyKey, p.AccountID, func(ctx context.Context, tx SendTx, refID uuid.UUID) ([]*ledger.Entry, decimal.Decimal, error) {
		balance, err := tx.SumByAccount(ctx, p.AccountID)
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("reading balance: %w", err)
		}

		credit := &ledger.Entry{
			AccountID:              p.AccountID,
			Kind:                   ledger.KindCredit,
			Amount:                 amount,
			ReferenceTransactionID: &refID,
			Description:            p.Description,
		}

		return []*ledger.Entry{credit}, balance.Add(credit.Signed()), nil
	})
}

// prepareFunc builds the entries of an operation and its resulting balance,
// reading state only through the open transaction.
type prepareFunc func(ctx context.Context, tx SendTx, refID uuid.UUID) ([]*ledger.Entry, decimal.Decimal, error)

func (s *Service) execute(ctx context.Context, key string, lockAccountID int64, prepare prepareFunc) (*Receipt, error) {
	if key != "" {
		rec, err := s.repo.LookupKey(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("checking idempotency key: %w", err)
		}

		if rec != nil {
			return rec.Receipt()
		}
	}

	tx, err := s.repo.BeginSend(ctx, lockAccountID)
	if err != nil {
		return nil, fmt.Errorf("beginning send: %w", err)
	}
	defer tx.Rollback()

	if key != "" {
		// Re-check under the account lock: a competing send committed its
		// claim while we waited.
		rec, err := tx.LookupKey(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("checking idempotency key: %w", err)
		}

		if rec != nil {
			return rec.Receipt()
		}

		if err := tx.ClaimKey(ctx, key); err != nil {
			if errors.Is(err, ledger.ErrDuplicateKey) {
				// The conflicting row was committed under a different account
				// lock. The failed insert aborted our transaction, so resolve
				// the replay outside it.
				return s.replay(ctx, key)
			}

			return nil, fmt.Errorf("claiming idempotency key: %w", err)
		}
	}

	refID := uuid.New()

	entries, newBalance, err := prepare(ctx, tx, refID)
	if err != nil {
		return nil, err
	}

	if err := tx.AppendEntries(ctx, entries); err != nil {
		return nil, fmt.Errorf("writing entries: %w", err)
	}

	receipt := &Receipt{
		Status:                 StatusAccepted,
		ReferenceTransactionID: refID,
		EntryIDs:               entryIDs(entries),
		NewBalance:             newBalance.Round(2),
	}

	if key != "" {
		snapshot, err := json.Marshal(receipt)
		if err != nil {
			return nil, fmt.Errorf("encoding snapshot: %w", err)
		}

		if err := tx.StoreSnapshot(ctx, key, snapshot); err != nil {
			return nil, fmt.Errorf("storing snapshot: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing send: %w", err)
	}

	return receipt, nil
}

func (s *Service) replay(ctx context.Context, key string) (*Receipt, error) {
	rec, err := s.repo.LookupKey(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("resolving replay: %w", err)
	}

	if rec == nil {
		// Claimed when we collided, gone now: the claimant rolled back.
		// The caller retries with the same key.
		return nil, ErrOperationInProgress
	}

	return rec.Receipt()
}

func entryIDs(entries []*ledger.Entry) []int64 {
	ids := make([]int64, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}

	return ids
}
