// Package handler exposes the ledger engine over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"ledger/internal/ledger/models"
	dErrors "ledger/pkg/domain-errors"
	"ledger/pkg/platform/httputil"
)

// maxBatchItems caps one batch submission. Larger imports should be split by
// the caller.
const maxBatchItems = 500

// LedgerService is the engine surface the handler drives.
type LedgerService interface {
	AddTransaction(ctx context.Context, req models.TransactionRequest) (*models.TransactionOutcome, error)
	AddTransactionBatch(ctx context.Context, requests []models.TransactionRequest, agencyID, performedBy int64) (*models.BatchResult, error)
	GetTransactionStats(ctx context.Context, filter models.StatsFilter) (*models.TransactionStats, error)
	Balance(ctx context.Context, contractID int64) (decimal.Decimal, error)
}

// Handler serves the ledger routes.
type Handler struct {
	service LedgerService
	logger  *slog.Logger
}

func New(service LedgerService, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the ledger routes on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/ledger", func(r chi.Router) {
		r.Post("/transactions", h.addTransaction)
		r.Post("/transactions/batch", h.addTransactionBatch)
		r.Get("/stats", h.stats)
		r.Get("/contracts/{contractID}/balance", h.balance)
	})
}

// addTransaction records one transaction. Expected business rejections are
// 200 responses with success=false: they are outcomes, not transport errors.
func (h *Handler) addTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "malformed request body"))
		return
	}

	outcome, err := h.service.AddTransaction(r.Context(), req.toModel())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toTransactionResponse(outcome))
}

func (h *Handler) addTransactionBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "malformed request body"))
		return
	}
	if len(req.Items) == 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "batch requires at least one item"))
		return
	}
	if len(req.Items) > maxBatchItems {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "batch exceeds the maximum item count"))
		return
	}

	items := make([]models.TransactionRequest, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, item.toModel())
	}

	result, err := h.service.AddTransactionBatch(r.Context(), items, req.AgencyID, req.PerformedBy)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toBatchResponse(result))
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	var filter models.StatsFilter

	if raw := r.URL.Query().Get("agency_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "agency_id must be an integer"))
			return
		}
		filter.AgencyID = &id
	}
	if raw := r.URL.Query().Get("start_date"); raw != "" {
		t, err := parseDateParam(raw, false)
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "start_date must be a date or RFC 3339 timestamp"))
			return
		}
		filter.StartDate = &t
	}
	if raw := r.URL.Query().Get("end_date"); raw != "" {
		t, err := parseDateParam(raw, true)
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "end_date must be a date or RFC 3339 timestamp"))
			return
		}
		filter.EndDate = &t
	}

	stats, err := h.service.GetTransactionStats(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toStatsResponse(stats))
}

func (h *Handler) balance(w http.ResponseWriter, r *http.Request) {
	contractID, err := strconv.ParseInt(chi.URLParam(r, "contractID"), 10, 64)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "contract id must be an integer"))
		return
	}

	balance, err := h.service.Balance(r.Context(), contractID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"contract_id": contractID,
		"balance":     balance,
	})
}
