package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/rbarros/pixwallet/internal/ledger"
	"github.com/rbarros/pixwallet/internal/transfer"
)

// Schema is the DDL for the ledger tables. The seeder applies it on startup;
// deployments run it through whatever migration process they already have.
//
//go:embed schema.sql
var Schema string

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanEntry reads a ledger entry row.
// Expected column order: id, account_id, kind, amount, reference_transaction_id, description, created_at
func scanEntry(s scanner) (*ledger.Entry, error) {
	var e ledger.Entry

	var kind string

	var desc sql.NullString

	if err := s.Scan(
		&e.ID, &e.AccountID, &kind, &e.Amount,
		&e.ReferenceTransactionID, &desc, &e.CreatedAt,
	); err != nil {
		return nil, err
	}

	e.Kind = ledger.Kind(kind)
	// Legacy rows may carry NULL descriptions; callers always see "".
	e.Description = desc.String

	return &e, nil
}

const selectEntryColumns = `
	id, account_id, kind, amount, reference_transaction_id, description, created_at
`

// Append inserts one entry and fills its ID and CreatedAt. Entries are never
// updated or deleted after this point.
func (s *Store) Append(ctx context.Context, e *ledger.Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO ledger_entries (account_id, kind, amount, reference_transaction_id, description, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		e.AccountID,
		e.Kind,
		e.Amount,
		e.ReferenceTransactionID,
		e.Description,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ledger.ErrAccountNotFound
		}

		return fmt.Errorf("appending entry: %w", err)
	}

	return nil
}

// SumByAccount returns credits minus debits for the account. An account with
// no entries sums to zero, never null.
func (s *Store) SumByAccount(ctx context.Context, accountID int64) (decimal.Decimal, error) {
	return sumByAccount(ctx, s.db, accountID)
}

// ListByAccount returns entries newest first, timestamp ties broken by id so
// repeated reads see the same order.
func (s *Store) ListByAccount(ctx context.Context, accountID int64, limit, offset int) ([]*ledger.Entry, error) {
	query := `SELECT ` + selectEntryColumns + `
		FROM ledger_entries
		WHERE account_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`

	rows, err := s.db.QueryContext(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	defer rows.Close()

	var entries []*ledger.Entry

	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entry rows: %w", err)
	}

	return entries, nil
}

// AggregateByDay returns one summary per UTC calendar day in [start, end),
// zero-valued for days with no entries. Callers depend on the series being
// dense.
func (s *Store) AggregateByDay(ctx context.Context, accountID int64, start, end time.Time) ([]ledger.DaySummary, error) {
	// The window bounds and the bucketing both normalize to UTC days;
	// the session TimeZone never shifts the series.
	query := `
		SELECT d.day::date,
		       COALESCE(SUM(e.amount) FILTER (WHERE e.kind = 'credit'), 0),
		       COALESCE(SUM(e.amount) FILTER (WHERE e.kind = 'debit'), 0)
		FROM generate_series(($2 AT TIME ZONE 'UTC')::date, ($3 AT TIME ZONE 'UTC')::date - INTERVAL '1 day', INTERVAL '1 day') AS d(day)
		LEFT JOIN ledger_entries e
		       ON e.account_id = $1
		      AND (e.created_at AT TIME ZONE 'UTC')::date = d.day::date
		GROUP BY d.day
		ORDER BY d.day ASC
	`

	rows, err := s.db.QueryContext(ctx, query, accountID, start.UTC(), end.UTC())
	if err != nil {
		return nil, fmt.Errorf("aggregating by day: %w", err)
	}
	defer rows.Close()

	var days []ledger.DaySummary

	for rows.Next() {
		var d ledger.DaySummary
		if err := rows.Scan(&d.Day, &d.Credits, &d.Debits); err != nil {
			return nil, fmt.Errorf("scanning day summary: %w", err)
		}

		days = append(days, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating day rows: %w", err)
	}

	return days, nil
}

// LookupKey returns the idempotency record for key, or nil when the key has
// never been claimed.
func (s *Store) LookupKey(ctx context.Context, key string) (*transfer.KeyRecord, error) {
	return lookupKey(ctx, s.db, key)
}

// sendLockKey derives the advisory-lock key serializing sends from one account.
func sendLockKey(accountID int64) int64 {
	h := fnv.New64a()
	h.Write([]byte("send"))
	h.Write([]byte{0})
	fmt.Fprintf(h, "%d", accountID)

	return int64(h.Sum64())
}

type sendTx struct {
	tx *sql.Tx
}

// BeginSend opens a transaction holding an advisory lock on the source
// account. Two sends draining the same account serialize here, so the funds
// check and the entry writes cannot interleave.
func (s *Store) BeginSend(ctx context.Context, sourceAccountID int64) (transfer.SendTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning send tx: %w", err)
	}

	lockKey := sendLockKey(sourceAccountID)
	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", lockKey); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring account lock: %w", err)
	}

	return &sendTx{tx: dbTx}, nil
}

func (t *sendTx) Commit() error   { return t.tx.Commit() }
func (t *sendTx) Rollback() error { return t.tx.Rollback() }

func (t *sendTx) LookupKey(ctx context.Context, key string) (*transfer.KeyRecord, error) {
	return lookupKey(ctx, t.tx, key)
}

// ClaimKey reserves an idempotency key. A key already claimed by a committed
// operation returns ledger.ErrDuplicateKey; the claim itself only becomes
// durable when the surrounding transaction commits, so a failed send releases
// its key.
func (t *sendTx) ClaimKey(ctx context.Context, key string) error {
	_, err := t.tx.ExecContext(ctx,
		"INSERT INTO idempotency_keys (key, created_at) VALUES ($1, NOW())",
		key,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ledger.ErrDuplicateKey
		}

		return fmt.Errorf("claiming idempotency key: %w", err)
	}

	return nil
}

func (t *sendTx) SumByAccount(ctx context.Context, accountID int64) (decimal.Decimal, error) {
	return sumByAccount(ctx, t.tx, accountID)
}

func (t *sendTx) AppendEntries(ctx context.Context, entries []*ledger.Entry) error {
	query := `
		INSERT INTO ledger_entries (account_id, kind, amount, reference_transaction_id, description, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return err
		}

		err := t.tx.QueryRowContext(ctx, query,
			e.AccountID,
			e.Kind,
			e.Amount,
			e.ReferenceTransactionID,
			e.Description,
		).Scan(&e.ID, &e.CreatedAt)
		if err != nil {
			if isForeignKeyViolation(err) {
				return ledger.ErrAccountNotFound
			}

			return fmt.Errorf("appending entry: %w", err)
		}
	}

	return nil
}

func (t *sendTx) StoreSnapshot(ctx context.Context, key string, snapshot []byte) error {
	_, err := t.tx.ExecContext(ctx,
		"UPDATE idempotency_keys SET response_snapshot = $1 WHERE key = $2",
		snapshot, key,
	)
	if err != nil {
		return fmt.Errorf("storing snapshot: %w", err)
	}

	return nil
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func sumByAccount(ctx context.Context, q querier, accountID int64) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN kind = 'credit' THEN amount ELSE -amount END), 0)
		FROM ledger_entries
		WHERE account_id = $1
	`

	var sum decimal.Decimal
	if err := q.QueryRowContext(ctx, query, accountID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("summing entries: %w", err)
	}

	return sum, nil
}

func lookupKey(ctx context.Context, q querier, key string) (*transfer.KeyRecord, error) {
	query := `SELECT key, response_snapshot, created_at FROM idempotency_keys WHERE key = $1`

	var rec transfer.KeyRecord
	err := q.QueryRowContext(ctx, query, key).Scan(&rec.Key, &rec.Snapshot, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("looking up idempotency key: %w", err)
	}

	return &rec, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}
