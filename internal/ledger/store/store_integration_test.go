package store_test

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/rbarros/pixwallet/internal/account"
	accountStore "github.com/rbarros/pixwallet/internal/account/store"
	"github.com/rbarros/pixwallet/internal/balance"
	"github.com/rbarros/pixwallet/internal/database"
	"github.com/rbarros/pixwallet/internal/ledger"
	"github.com/rbarros/pixwallet/internal/ledger/store"
	"github.com/rbarros/pixwallet/internal/transfer"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}

	return d
}

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping container-backed store tests in short mode")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:alpine",
		postgres.WithDatabase("pixwallet_test"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := database.New(connStr, database.Pool{})
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	_, err = db.ExecContext(ctx, store.Schema)
	require.NoError(t, err)

	return db
}

func createAccount(t *testing.T, db *sql.DB, name string) int64 {
	t.Helper()

	acc, err := account.NewService(accountStore.New(db)).Create(context.Background(), name)
	require.NoError(t, err)

	return acc.ID
}

func TestLedgerStore_AppendAndSum(t *testing.T) {
	db := setupTestDB(t)
	s := store.New(db)
	ctx := context.Background()

	accID := createAccount(t, db, "ana")

	sum, err := s.SumByAccount(ctx, accID)
	require.NoError(t, err)
	assert.True(t, sum.IsZero(), "empty account must sum to zero")

	entries := []*ledger.Entry{
		{AccountID: accID, Kind: ledger.KindCredit, Amount: dec("100.00"), Description: "salary"},
		{AccountID: accID, Kind: ledger.KindDebit, Amount: dec("40.00"), Description: "groceries"},
		{AccountID: accID, Kind: ledger.KindCredit, Amount: dec("0.99")},
	}
	for _, e := range entries {
		require.NoError(t, s.Append(ctx, e))
		assert.NotZero(t, e.ID)
		assert.False(t, e.CreatedAt.IsZero())
	}

	sum, err = s.SumByAccount(ctx, accID)
	require.NoError(t, err)
	assert.True(t, dec("60.99").Equal(sum), "got %s", sum)
}

func TestLedgerStore_AppendRejectsInvalid(t *testing.T) {
	db := setupTestDB(t)
	s := store.New(db)
	ctx := context.Background()

	accID := createAccount(t, db, "bruno")

	err := s.Append(ctx, &ledger.Entry{AccountID: accID, Kind: "transfer", Amount: dec("1.00")})
	assert.ErrorIs(t, err, ledger.ErrInvalidKind)

	err = s.Append(ctx, &ledger.Entry{AccountID: 999999, Kind: ledger.KindCredit, Amount: dec("1.00")})
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)
}

func TestLedgerStore_ListByAccountOrdering(t *testing.T) {
	db := setupTestDB(t)
	s := store.New(db)
	ctx := context.Background()

	accID := createAccount(t, db, "carla")

	var ids []int64
	for i := 0; i < 5; i++ {
		e := &ledger.Entry{AccountID: accID, Kind: ledger.KindCredit, Amount: dec("1.00")}
		require.NoError(t, s.Append(ctx, e))
		ids = append(ids, e.ID)
	}

	listed, err := s.ListByAccount(ctx, accID, 10, 0)
	require.NoError(t, err)
	require.Len(t, listed, 5)

	// Newest first; timestamp ties resolve by id, so the order is exactly
	// reverse insertion and stable across reads.
	for i, e := range listed {
		assert.Equal(t, ids[len(ids)-1-i], e.ID)
	}

	page, err := s.ListByAccount(ctx, accID, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, ids[2], page[0].ID)
}

func TestLedgerStore_AggregateByDayIsDense(t *testing.T) {
	db := setupTestDB(t)
	s := store.New(db)
	ctx := context.Background()

	accID := createAccount(t, db, "diego")

	require.NoError(t, s.Append(ctx, &ledger.Entry{
		AccountID: accID, Kind: ledger.KindCredit, Amount: dec("50.00"),
	}))

	now := time.Now().UTC()
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	start := end.AddDate(0, 0, -7)

	days, err := s.AggregateByDay(ctx, accID, start, end)
	require.NoError(t, err)
	require.Len(t, days, 7, "series must be dense regardless of activity")

	var totalCredits decimal.Decimal
	for _, d := range days {
		totalCredits = totalCredits.Add(d.Credits)
		assert.True(t, d.Debits.IsZero())
	}

	assert.True(t, dec("50.00").Equal(totalCredits))
}

func TestLedgerStore_AggregateByDayIgnoresSessionTimeZone(t *testing.T) {
	db := setupTestDB(t)
	s := store.New(db)
	ctx := context.Background()

	accID := createAccount(t, db, "joana")

	require.NoError(t, s.Append(ctx, &ledger.Entry{
		AccountID: accID, Kind: ledger.KindCredit, Amount: dec("50.00"),
	}))

	// A server west of UTC. If the window bounds were cast through the
	// session zone they would slide back a day and today's entry would
	// fall outside the joined series.
	_, err := db.ExecContext(ctx, "ALTER DATABASE pixwallet_test SET TIME ZONE 'America/Sao_Paulo'")
	require.NoError(t, err)

	// Per-database settings apply at session start; drop the cached
	// sessions so every query below runs under the new zone.
	db.SetMaxIdleConns(0)

	var tz string
	require.NoError(t, db.QueryRowContext(ctx, "SHOW TIME ZONE").Scan(&tz))
	require.Equal(t, "America/Sao_Paulo", tz)

	now := time.Now().UTC()
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	start := end.AddDate(0, 0, -7)

	days, err := s.AggregateByDay(ctx, accID, start, end)
	require.NoError(t, err)
	require.Len(t, days, 7)

	last := days[len(days)-1]
	assert.True(t, last.Day.Equal(end.AddDate(0, 0, -1)), "series must still end on the UTC day, got %s", last.Day)

	var totalCredits decimal.Decimal
	for _, d := range days {
		totalCredits = totalCredits.Add(d.Credits)
	}

	assert.True(t, dec("50.00").Equal(totalCredits), "entry must stay inside the window, got %s", totalCredits)
}

func TestTransfer_EndToEnd(t *testing.T) {
	db := setupTestDB(t)
	ledgers := store.New(db)
	ctx := context.Background()

	transfers := transfer.NewService(ledgers)
	balances := balance.NewService(ledgers)

	src := createAccount(t, db, "edu")
	dst := createAccount(t, db, "fer")

	_, err := transfers.Deposit(ctx, transfer.DepositParams{
		AccountID: src, Amount: dec("100.00"), Description: "top-up",
	})
	require.NoError(t, err)

	receipt, err := transfers.Send(ctx, transfer.SendParams{
		SourceAccountID:      src,
		DestinationAccountID: &dst,
		Amount:               dec("40.00"),
		Description:          "rent share",
	})
	require.NoError(t, err)
	assert.Equal(t, transfer.StatusAccepted, receipt.Status)
	assert.True(t, dec("60.00").Equal(receipt.NewBalance))

	srcBal, err := balances.CurrentBalance(ctx, src)
	require.NoError(t, err)
	assert.True(t, dec("60.00").Equal(srcBal))

	dstBal, err := balances.CurrentBalance(ctx, dst)
	require.NoError(t, err)
	assert.True(t, dec("40.00").Equal(dstBal))

	history, err := balances.Entries(ctx, src, 10, 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, ledger.KindDebit, history[0].Kind)
	assert.Equal(t, ledger.KindCredit, history[1].Kind)

	month, err := balances.MonthSummary(ctx, src, time.Now())
	require.NoError(t, err)
	assert.True(t, dec("100.00").Equal(month.Entradas))
	assert.True(t, dec("40.00").Equal(month.Saidas))
}

func TestTransfer_InsufficientFundsWritesNothing(t *testing.T) {
	db := setupTestDB(t)
	ledgers := store.New(db)
	ctx := context.Background()

	transfers := transfer.NewService(ledgers)

	src := createAccount(t, db, "gil")

	_, err := transfers.Deposit(ctx, transfer.DepositParams{AccountID: src, Amount: dec("30.00")})
	require.NoError(t, err)

	_, err = transfers.Send(ctx, transfer.SendParams{SourceAccountID: src, Amount: dec("50.00")})
	assert.ErrorIs(t, err, transfer.ErrInsufficientFunds)

	entries, err := ledgers.ListByAccount(ctx, src, 10, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "only the deposit may exist")
}

func TestTransfer_ConcurrentDrain(t *testing.T) {
	db := setupTestDB(t)
	ledgers := store.New(db)
	ctx := context.Background()

	transfers := transfer.NewService(ledgers)

	src := createAccount(t, db, "hugo")

	_, err := transfers.Deposit(ctx, transfer.DepositParams{AccountID: src, Amount: dec("100.00")})
	require.NoError(t, err)

	// Two sends that fit individually but not jointly.
	var wg sync.WaitGroup

	results := make([]error, 2)
	for i := range results {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			_, results[i] = transfers.Send(ctx, transfer.SendParams{
				SourceAccountID: src,
				Amount:          dec("60.00"),
			})
		}(i)
	}

	wg.Wait()

	var failures int
	for _, err := range results {
		if err != nil {
			assert.ErrorIs(t, err, transfer.ErrInsufficientFunds)
			failures++
		}
	}

	assert.Equal(t, 1, failures, "exactly one send must lose the race")

	sum, err := ledgers.SumByAccount(ctx, src)
	require.NoError(t, err)
	assert.True(t, dec("40.00").Equal(sum))
	assert.False(t, sum.IsNegative())
}

func TestTransfer_ConcurrentSameKey(t *testing.T) {
	db := setupTestDB(t)
	ledgers := store.New(db)
	ctx := context.Background()

	transfers := transfer.NewService(ledgers)

	src := createAccount(t, db, "iris")

	_, err := transfers.Deposit(ctx, transfer.DepositParams{AccountID: src, Amount: dec("100.00")})
	require.NoError(t, err)

	var wg sync.WaitGroup

	receipts := make([]*transfer.Receipt, 2)
	errs := make([]error, 2)

	for i := range receipts {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			receipts[i], errs[i] = transfers.Send(ctx, transfer.SendParams{
				SourceAccountID: src,
				Amount:          dec("10.00"),
				IdempotencyKey:  "k-concurrent",
			})
		}(i)
	}

	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	statuses := map[transfer.Status]int{}
	for _, r := range receipts {
		statuses[r.Status]++
	}

	assert.Equal(t, 1, statuses[transfer.StatusAccepted])
	assert.Equal(t, 1, statuses[transfer.StatusDuplicate])
	assert.True(t, receipts[0].NewBalance.Equal(receipts[1].NewBalance))

	// Exactly one set of entries under the key.
	entries, err := ledgers.ListByAccount(ctx, src, 10, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "the deposit plus one debit")

	sum, err := ledgers.SumByAccount(ctx, src)
	require.NoError(t, err)
	assert.True(t, dec("90.00").Equal(sum))
}
