package balance

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rbarros/pixwallet/internal/ledger"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=balance
type Repository interface {
	SumByAccount(ctx context.Context, accountID int64) (decimal.Decimal, error)
	ListByAccount(ctx context.Context, accountID int64, limit, offset int) ([]*ledger.Entry, error)
	AggregateByDay(ctx context.Context, accountID int64, start, end time.Time) ([]ledger.DaySummary, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

const (
	defaultListLimit = 50
	maxListLimit     = 200

	defaultSeriesDays = 7
	maxSeriesDays     = 366
)

// Summary holds a period's credit and debit totals. Net is entradas minus
// saidas, rounded only once the period is fully summed.
type Summary struct {
	Entradas decimal.Decimal
	Saidas   decimal.Decimal
	Net      decimal.Decimal
}

// DayPoint is one day of a dense series. RunningBalance is window-relative:
// it accumulates from zero at the first day of the window, not from the
// account's all-time balance. That is the reporting contract, not a bug.
type DayPoint struct {
	Day            time.Time
	Entradas       decimal.Decimal
	Saidas         decimal.Decimal
	RunningBalance decimal.Decimal
}

// CurrentBalance is the account's derived balance: the sum over its ledger
// entries. Balances are never stored, so there is nothing to drift from.
func (s *Service) CurrentBalance(ctx context.Context, accountID int64) (decimal.Decimal, error) {
	sum, err := s.repo.SumByAccount(ctx, accountID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing account: %w", err)
	}

	return sum.Round(2), nil
}

// PeriodSummary totals credits and debits over [start, end).
func (s *Service) PeriodSummary(ctx context.Context, accountID int64, start, end time.Time) (Summary, error) {
	days, err := s.repo.AggregateByDay(ctx, accountID, start, end)
	if err != nil {
		return Summary{}, fmt.Errorf("aggregating period: %w", err)
	}

	var entradas, saidas decimal.Decimal
	for _, d := range days {
		entradas = entradas.Add(d.Credits)
		saidas = saidas.Add(d.Debits)
	}

	return Summary{
		Entradas: entradas.Round(2),
		Saidas:   saidas.Round(2),
		Net:      entradas.Sub(saidas).Round(2),
	}, nil
}

// MonthSummary is PeriodSummary over the calendar month containing now (UTC).
func (s *Service) MonthSummary(ctx context.Context, accountID int64, now time.Time) (Summary, error) {
	start, end := monthBounds(now)
	return s.PeriodSummary(ctx, accountID, start, end)
}

// DailySeries returns exactly daysBack points ending on now's UTC calendar
// day, zero-filled for inactive days. now is the caller's clock. daysBack is
// client input and is clamped so it cannot size an unbounded aggregation.
func (s *Service) DailySeries(ctx context.Context, accountID int64, daysBack int, now time.Time) ([]DayPoint, error) {
	if daysBack <= 0 {
		daysBack = defaultSeriesDays
	}

	if daysBack > maxSeriesDays {
		daysBack = maxSeriesDays
	}

	end := startOfDay(now).AddDate(0, 0, 1)
	start := end.AddDate(0, 0, -daysBack)

	days, err := s.repo.AggregateByDay(ctx, accountID, start, end)
	if err != nil {
		return nil, fmt.Errorf("aggregating series: %w", err)
	}

	points := make([]DayPoint, len(days))

	var running decimal.Decimal
	for i, d := range days {
		running = running.Add(d.Credits).Sub(d.Debits)
		points[i] = DayPoint{
			Day:            d.Day,
			Entradas:       d.Credits.Round(2),
			Saidas:         d.Debits.Round(2),
			RunningBalance: running.Round(2),
		}
	}

	return points, nil
}

// Entries pages through an account's history, newest first.
func (s *Service) Entries(ctx context.Context, accountID int64, limit, offset int) ([]*ledger.Entry, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	if limit > maxListLimit {
		limit = maxListLimit
	}

	if offset < 0 {
		offset = 0
	}

	entries, err := s.repo.ListByAccount(ctx, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}

	return entries, nil
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func monthBounds(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)

	return start, start.AddDate(0, 1, 0)
}
