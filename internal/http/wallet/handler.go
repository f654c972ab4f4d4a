package wallet

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/rbarros/pixwallet/internal/balance"
	"github.com/rbarros/pixwallet/internal/http/middleware"
	"github.com/rbarros/pixwallet/internal/ledger"
	"github.com/rbarros/pixwallet/internal/transfer"
)

// Machine-readable reason codes. Clients never see internal error text.
const (
	reasonInvalidAmount       = "invalid_amount"
	reasonInsufficientFunds   = "insufficient_funds"
	reasonAccountNotFound     = "account_not_found"
	reasonOperationInProgress = "operation_in_progress"
	reasonStorageError        = "storage_error"
)

type Handler struct {
	balances  *balance.Service
	transfers *transfer.Service
}

func NewHandler(balances *balance.Service, transfers *transfer.Service) *Handler {
	return &Handler{balances: balances, transfers: transfers}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/balance", h.getBalance)
	r.Get("/summary", h.getSummary)
	r.Get("/history", h.getHistory)
	r.Get("/daily", h.getDaily)
	r.Post("/send", h.send)
	r.Post("/deposit", h.deposit)
}

func (h *Handler) getBalance(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountID(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	bal, err := h.balances.CurrentBalance(r.Context(), accountID)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, reasonStorageError, err)
		return
	}

	month, err := h.balances.MonthSummary(r.Context(), accountID, time.Now())
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, reasonStorageError, err)
		return
	}

	respondJSON(w, http.StatusOK, balanceResponse{
		Balance:     bal,
		EntradasMes: month.Entradas,
		SaidasMes:   month.Saidas,
	})
}

func (h *Handler) getSummary(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountID(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	now := time.Now()

	month, err := h.balances.MonthSummary(r.Context(), accountID, now)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, reasonStorageError, err)
		return
	}

	respondJSON(w, http.StatusOK, summaryResponse{
		Entradas: month.Entradas,
		Saidas:   month.Saidas,
		Net:      month.Net,
		Risco:    balance.ClassifyRisk(month, now),
	})
}

func (h *Handler) getHistory(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountID(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	entries, err := h.balances.Entries(r.Context(), accountID, limit, offset)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, reasonStorageError, err)
		return
	}

	days, err := h.balances.DailySeries(r.Context(), accountID, 7, time.Now())
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, reasonStorageError, err)
		return
	}

	respondJSON(w, http.StatusOK, historyResponse{
		Items: toEntryResponses(entries),
		Dias:  toDayResponses(days),
	})
}

func (h *Handler) getDaily(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountID(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	days := 7
	if s := r.URL.Query().Get("days"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			days = n
		}
	}

	points, err := h.balances.DailySeries(r.Context(), accountID, days, time.Now())
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, reasonStorageError, err)
		return
	}

	respondJSON(w, http.StatusOK, dailyResponse{Ultimos7d: toDailyPointResponses(points)})
}

type sendRequest struct {
	DestinationAccountID *int64          `json:"destination_account_id,omitempty"`
	Amount               decimal.Decimal `json:"amount"`
	Description          string          `json:"description"`
}

func (h *Handler) send(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountID(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: reasonInvalidAmount})
		return
	}

	receipt, err := h.transfers.Send(r.Context(), transfer.SendParams{
		SourceAccountID:      accountID,
		DestinationAccountID: req.DestinationAccountID,
		Amount:               req.Amount,
		Description:          req.Description,
		IdempotencyKey:       r.Header.Get("Idempotency-Key"),
	})
	if err != nil {
		h.respondOperationError(w, err)
		return
	}

	respondJSON(w, receiptStatusCode(receipt), toReceiptResponse(receipt))
}

type depositRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

func (h *Handler) deposit(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountID(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req depositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: reasonInvalidAmount})
		return
	}

	receipt, err := h.transfers.Deposit(r.Context(), transfer.DepositParams{
		AccountID:      accountID,
		Amount:         req.Amount,
		Description:    req.Description,
		IdempotencyKey: r.Header.Get("Idempotency-Key"),
	})
	if err != nil {
		h.respondOperationError(w, err)
		return
	}

	respondJSON(w, receiptStatusCode(receipt), toReceiptResponse(receipt))
}

// receiptStatusCode distinguishes a fresh commit from an idempotent replay.
func receiptStatusCode(r *transfer.Receipt) int {
	if r.Status == transfer.StatusDuplicate {
		return http.StatusOK
	}

	return http.StatusCreated
}

func (h *Handler) respondOperationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, transfer.ErrInvalidAmount), errors.Is(err, transfer.ErrSelfTransfer):
		respondJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: reasonInvalidAmount})
	case errors.Is(err, transfer.ErrInsufficientFunds):
		respondJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: reasonInsufficientFunds})
	case errors.Is(err, ledger.ErrAccountNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: reasonAccountNotFound})
	case errors.Is(err, transfer.ErrOperationInProgress):
		respondJSON(w, http.StatusConflict, errorResponse{Error: reasonOperationInProgress})
	default:
		h.respondError(w, http.StatusInternalServerError, reasonStorageError, err)
	}
}

func (h *Handler) respondError(w http.ResponseWriter, code int, reason string, err error) {
	slog.Error("wallet request failed", "reason", reason, "error", err)
	respondJSON(w, code, errorResponse{Error: reason})
}

func respondJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
