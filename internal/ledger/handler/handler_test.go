package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"ledger/internal/ledger/models"
	"ledger/internal/ledger/service"
	agencyStore "ledger/internal/ledger/store/agency"
	contractStore "ledger/internal/ledger/store/contract"
	transactionStore "ledger/internal/ledger/store/transaction"
	userStore "ledger/internal/ledger/store/user"
	"ledger/pkg/requestcontext"
)

func newLedgerRouter(t *testing.T) http.Handler {
	t.Helper()
	ctx := context.Background()

	agencies := agencyStore.NewInMemory()
	users := userStore.NewInMemory()
	contracts := contractStore.NewInMemory()
	transactions := transactionStore.NewInMemory()

	if err := agencies.Put(ctx, models.Agency{ID: 1, Code: "AG001", Name: "Central", Active: true}); err != nil {
		t.Fatal(err)
	}
	transactions.RegisterAgencyName(1, "Central")
	if err := users.Put(ctx, models.User{ID: 10, Username: "teller", Role: models.RoleAgencyStaff, Active: true}); err != nil {
		t.Fatal(err)
	}
	if err := contracts.Put(ctx, models.Contract{ID: 100, ContractNumber: "CT-100", ClientID: 1, AgencyID: 1, Status: models.ContractActive}); err != nil {
		t.Fatal(err)
	}

	svc, err := service.New(agencies, users, contracts, transactions)
	if err != nil {
		t.Fatal(err)
	}
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	h := New(svc, logger)
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func postJSON(t *testing.T, router http.Handler, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAddTransactionViaHandler(t *testing.T) {
	router := newLedgerRouter(t)

	rec := postJSON(t, router, "/ledger/transactions", map[string]any{
		"contract_id":  100,
		"type":         "DEPOSIT",
		"amount":       "2500",
		"agency_id":    1,
		"performed_by": 10,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 recording deposit, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success       bool   `json:"success"`
		TransactionID int64  `json:"transaction_id"`
		Reference     string `json:"reference"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Success || resp.TransactionID == 0 || resp.Reference == "" {
		t.Fatalf("expected successful outcome, got %+v", resp)
	}
}

func TestRejectionIsAnOutcomeNotAnError(t *testing.T) {
	router := newLedgerRouter(t)

	rec := postJSON(t, router, "/ledger/transactions", map[string]any{
		"contract_id":  999,
		"type":         "DEPOSIT",
		"amount":       "100",
		"agency_id":    1,
		"performed_by": 10,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with success=false for business rejection, got %d", rec.Code)
	}

	var resp struct {
		Success       bool   `json:"success"`
		TransactionID int64  `json:"transaction_id"`
		Code          string `json:"code"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Success || resp.TransactionID != 0 {
		t.Fatalf("expected rejected outcome with zero id, got %+v", resp)
	}
	if resp.Code != "not_found" {
		t.Fatalf("expected not_found rejection code, got %q", resp.Code)
	}
}

func TestMalformedBodyIsBadRequest(t *testing.T) {
	router := newLedgerRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/ledger/transactions", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", rec.Code)
	}
}

func TestBatchViaHandler(t *testing.T) {
	router := newLedgerRouter(t)

	rec := postJSON(t, router, "/ledger/transactions/batch", map[string]any{
		"agency_id":    1,
		"performed_by": 10,
		"items": []map[string]any{
			{"contract_id": 100, "type": "DEPOSIT", "amount": "100"},
			{"contract_id": 999, "type": "DEPOSIT", "amount": "100"},
			{"contract_id": 100, "type": "DEPOSIT", "amount": "200"},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for batch, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Total        int `json:"total"`
		SuccessCount int `json:"success_count"`
		FailedCount  int `json:"failed_count"`
		Results      []struct {
			Outcome string `json:"outcome"`
		} `json:"results"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Total != 3 || resp.SuccessCount != 2 || resp.FailedCount != 1 {
		t.Fatalf("unexpected batch summary: %+v", resp)
	}
	if resp.Results[1].Outcome != "FAILED" {
		t.Fatalf("expected second item FAILED, got %q", resp.Results[1].Outcome)
	}
}

func TestEmptyBatchIsBadRequest(t *testing.T) {
	router := newLedgerRouter(t)

	rec := postJSON(t, router, "/ledger/transactions/batch", map[string]any{
		"agency_id":    1,
		"performed_by": 10,
		"items":        []map[string]any{},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty batch, got %d", rec.Code)
	}
}

func TestStatsViaHandler(t *testing.T) {
	router := newLedgerRouter(t)

	for _, amount := range []string{"1000", "3000"} {
		rec := postJSON(t, router, "/ledger/transactions", map[string]any{
			"contract_id":  100,
			"type":         "DEPOSIT",
			"amount":       amount,
			"agency_id":    1,
			"performed_by": 10,
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("seed deposit failed: %d", rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/ledger/stats?agency_id=1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for stats, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		TotalTransactions int64  `json:"total_transactions"`
		TotalAmount       string `json:"total_amount"`
		ByType            map[string]struct {
			Count int64 `json:"count"`
		} `json:"by_type"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.TotalTransactions != 2 {
		t.Fatalf("expected 2 transactions, got %d", resp.TotalTransactions)
	}
	if resp.TotalAmount != "4000" {
		t.Fatalf("expected total 4000, got %s", resp.TotalAmount)
	}
	if resp.ByType["DEPOSIT"].Count != 2 {
		t.Fatalf("expected DEPOSIT count 2, got %d", resp.ByType["DEPOSIT"].Count)
	}
}

func TestStatsDateOnlyEndDateCoversWholeDay(t *testing.T) {
	router := newLedgerRouter(t)

	// Pin the recording time mid-day so a date-only end bound has to reach
	// past midnight to include it.
	at := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	pinned := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		router.ServeHTTP(w, r.WithContext(requestcontext.WithTime(r.Context(), at)))
	})

	rec := postJSON(t, pinned, "/ledger/transactions", map[string]any{
		"contract_id":  100,
		"type":         "DEPOSIT",
		"amount":       "2500",
		"agency_id":    1,
		"performed_by": 10,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("seed deposit failed: %d", rec.Code)
	}

	statsTotal := func(query string) int64 {
		t.Helper()
		req := httptest.NewRequest(http.MethodGet, "/ledger/stats?"+query, nil)
		getRec := httptest.NewRecorder()
		pinned.ServeHTTP(getRec, req)
		if getRec.Code != http.StatusOK {
			t.Fatalf("expected 200 for stats, got %d: %s", getRec.Code, getRec.Body.String())
		}
		var resp struct {
			TotalTransactions int64 `json:"total_transactions"`
		}
		if err := json.NewDecoder(getRec.Body).Decode(&resp); err != nil {
			t.Fatal(err)
		}
		return resp.TotalTransactions
	}

	if got := statsTotal("end_date=2025-01-15"); got != 1 {
		t.Fatalf("end_date on the transaction's day must include it, got %d transactions", got)
	}
	if got := statsTotal("start_date=2025-01-15&end_date=2025-01-15"); got != 1 {
		t.Fatalf("single-day window must include its own day, got %d transactions", got)
	}
	if got := statsTotal("end_date=2025-01-14"); got != 0 {
		t.Fatalf("end_date before the transaction's day must exclude it, got %d transactions", got)
	}
}

func TestStatsRejectsBadDates(t *testing.T) {
	router := newLedgerRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/ledger/stats?start_date=yesterday", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad start_date, got %d", rec.Code)
	}
}

func TestBalanceViaHandler(t *testing.T) {
	router := newLedgerRouter(t)

	rec := postJSON(t, router, "/ledger/transactions", map[string]any{
		"contract_id":  100,
		"type":         "DEPOSIT",
		"amount":       "1234.50",
		"agency_id":    1,
		"performed_by": 10,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("seed deposit failed: %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/ledger/contracts/100/balance", nil)
	getRec := httptest.NewRecorder()
	router.ServeHTTP(getRec, req)
	if getRec.Code != http.StatusOK {
		t.Fatalf("expected 200 for balance, got %d", getRec.Code)
	}

	var resp struct {
		ContractID int64  `json:"contract_id"`
		Balance    string `json:"balance"`
	}
	if err := json.NewDecoder(getRec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.ContractID != 100 || resp.Balance != "1234.5" {
		t.Fatalf("unexpected balance response: %+v", resp)
	}
}
