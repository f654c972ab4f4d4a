package balance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Risk classifies a period's financial health. Every surface that talks about
// risk (API responses, the chat summary) goes through ClassifyRisk; the
// thresholds live nowhere else.
type Risk string

const (
	RiskOK      Risk = "ok"
	RiskAtencao Risk = "atencao"
	RiskCritico Risk = "critico"
)

// marginWarningRatio flags months projected to end with less than 10% of the
// month's credits left over.
var marginWarningRatio = decimal.NewFromFloat(0.1)

// ClassifyRisk grades a month-to-date summary against now's position in the
// month. Credits received so far count as the month's income; debits are
// extrapolated linearly to month end. Critico means the month is already in
// the red. Atencao means the pace of spending projects the end-of-month
// margin below marginWarningRatio of the month's credits. Otherwise ok.
func ClassifyRisk(s Summary, now time.Time) Risk {
	if s.Net.IsNegative() {
		return RiskCritico
	}

	now = now.UTC()
	elapsed := decimal.NewFromInt(int64(now.Day()))
	total := decimal.NewFromInt(int64(daysInMonth(now)))

	projectedSaidas := s.Saidas.Mul(total).Div(elapsed)
	projectedNet := s.Entradas.Sub(projectedSaidas)

	if projectedNet.LessThan(s.Entradas.Mul(marginWarningRatio)) {
		return RiskAtencao
	}

	return RiskOK
}

func daysInMonth(t time.Time) int {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, 1, -1).Day()
}
