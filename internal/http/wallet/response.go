package wallet

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rbarros/pixwallet/internal/balance"
	"github.com/rbarros/pixwallet/internal/ledger"
	"github.com/rbarros/pixwallet/internal/transfer"
)

type balanceResponse struct {
	Balance     decimal.Decimal `json:"balance"`
	EntradasMes decimal.Decimal `json:"entradas_mes"`
	SaidasMes   decimal.Decimal `json:"saidas_mes"`
}

type summaryResponse struct {
	Entradas decimal.Decimal `json:"entradas"`
	Saidas   decimal.Decimal `json:"saidas"`
	Net      decimal.Decimal `json:"net"`
	Risco    balance.Risk    `json:"risco"`
}

type entryResponse struct {
	ID                     int64           `json:"id"`
	Kind                   ledger.Kind     `json:"kind"`
	Amount                 decimal.Decimal `json:"amount"`
	ReferenceTransactionID *uuid.UUID      `json:"reference_transaction_id,omitempty"`
	Description            string          `json:"description"`
	CreatedAt              time.Time       `json:"created_at"`
}

type dayResponse struct {
	Dia      string          `json:"dia"`
	Entradas decimal.Decimal `json:"entradas"`
	Saidas   decimal.Decimal `json:"saidas"`
}

type dailyPointResponse struct {
	Dia      string          `json:"dia"`
	Entradas decimal.Decimal `json:"entradas"`
	Saidas   decimal.Decimal `json:"saidas"`
	SaldoDia decimal.Decimal `json:"saldo_dia"`
}

type historyResponse struct {
	Items []entryResponse `json:"items"`
	Dias  []dayResponse   `json:"dias"`
}

type dailyResponse struct {
	Ultimos7d []dailyPointResponse `json:"ultimos_7d"`
}

type receiptResponse struct {
	Status                 transfer.Status `json:"status"`
	ReferenceTransactionID uuid.UUID       `json:"reference_transaction_id"`
	EntryIDs               []int64         `json:"entry_ids"`
	NewBalance             decimal.Decimal `json:"new_balance"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toEntryResponses(entries []*ledger.Entry) []entryResponse {
	resp := make([]entryResponse, len(entries))
	for i, e := range entries {
		resp[i] = entryResponse{
			ID:                     e.ID,
			Kind:                   e.Kind,
			Amount:                 e.Amount,
			ReferenceTransactionID: e.ReferenceTransactionID,
			Description:            e.Description,
			CreatedAt:              e.CreatedAt,
		}
	}

	return resp
}

func toDayResponses(points []balance.DayPoint) []dayResponse {
	resp := make([]dayResponse, len(points))
	for i, p := range points {
		resp[i] = dayResponse{
			Dia:      p.Day.Format(time.DateOnly),
			Entradas: p.Entradas,
			Saidas:   p.Saidas,
		}
	}

	return resp
}

func toDailyPointResponses(points []balance.DayPoint) []dailyPointResponse {
	resp := make([]dailyPointResponse, len(points))
	for i, p := range points {
		resp[i] = dailyPointResponse{
			Dia:      p.Day.Format(time.DateOnly),
			Entradas: p.Entradas,
			Saidas:   p.Saidas,
			SaldoDia: p.RunningBalance,
		}
	}

	return resp
}

func toReceiptResponse(r *transfer.Receipt) receiptResponse {
	return receiptResponse{
		Status:                 r.Status,
		ReferenceTransactionID: r.ReferenceTransactionID,
		EntryIDs:               r.EntryIDs,
		NewBalance:             r.NewBalance,
	}
}
