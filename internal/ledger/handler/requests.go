package handler

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"ledger/internal/ledger/models"
)

// transactionRequest is the wire form of one recording request.
type transactionRequest struct {
	ContractID  int64           `json:"contract_id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	AgencyID    int64           `json:"agency_id"`
	PerformedBy int64           `json:"performed_by"`
	VerifiedBy  *int64          `json:"verified_by,omitempty"`
	Currency    string          `json:"currency,omitempty"`
	Description string          `json:"description,omitempty"`
}

func (r transactionRequest) toModel() models.TransactionRequest {
	return models.TransactionRequest{
		ContractID:  r.ContractID,
		Type:        models.TransactionType(r.Type),
		Amount:      r.Amount,
		AgencyID:    r.AgencyID,
		PerformedBy: r.PerformedBy,
		VerifiedBy:  r.VerifiedBy,
		Currency:    models.Currency(r.Currency),
		Description: r.Description,
	}
}

// batchRequest carries the shared batch header plus the per-item rows.
type batchRequest struct {
	AgencyID    int64                `json:"agency_id"`
	PerformedBy int64                `json:"performed_by"`
	Items       []transactionRequest `json:"items"`
}

type transactionResponse struct {
	Success       bool   `json:"success"`
	TransactionID int64  `json:"transaction_id"`
	Reference     string `json:"reference,omitempty"`
	Message       string `json:"message"`
	Code          string `json:"code,omitempty"`
}

func toTransactionResponse(o *models.TransactionOutcome) transactionResponse {
	return transactionResponse{
		Success:       o.Success,
		TransactionID: o.TransactionID,
		Reference:     o.Reference,
		Message:       o.Message,
		Code:          string(o.Code),
	}
}

type batchItemResponse struct {
	ContractID    int64  `json:"contract_id"`
	TransactionID int64  `json:"transaction_id"`
	Reference     string `json:"reference,omitempty"`
	Outcome       string `json:"outcome"`
	Message       string `json:"message"`
}

type batchResponse struct {
	Total        int                 `json:"total"`
	SuccessCount int                 `json:"success_count"`
	FailedCount  int                 `json:"failed_count"`
	Results      []batchItemResponse `json:"results"`
}

func toBatchResponse(r *models.BatchResult) batchResponse {
	out := batchResponse{
		Total:        r.Total,
		SuccessCount: r.SuccessCount,
		FailedCount:  r.FailedCount,
		Results:      make([]batchItemResponse, 0, len(r.Results)),
	}
	for _, item := range r.Results {
		out.Results = append(out.Results, batchItemResponse{
			ContractID:    item.ContractID,
			TransactionID: item.TransactionID,
			Reference:     item.Reference,
			Outcome:       string(item.Outcome),
			Message:       item.Message,
		})
	}
	return out
}

type breakdownResponse struct {
	Count int64           `json:"count"`
	Total decimal.Decimal `json:"total"`
}

type statsResponse struct {
	TotalTransactions int64                        `json:"total_transactions"`
	TotalAmount       decimal.Decimal              `json:"total_amount"`
	AverageAmount     decimal.Decimal              `json:"average_amount"`
	MinAmount         decimal.Decimal              `json:"min_amount"`
	MaxAmount         decimal.Decimal              `json:"max_amount"`
	CompletedCount    int64                        `json:"completed_count"`
	FailedCount       int64                        `json:"failed_count"`
	PendingCount      int64                        `json:"pending_count"`
	CompletedAverage  decimal.Decimal              `json:"completed_average"`
	ByType            map[string]breakdownResponse `json:"by_type"`
	ByAgency          map[string]breakdownResponse `json:"by_agency"`
}

func toStatsResponse(s *models.TransactionStats) statsResponse {
	out := statsResponse{
		TotalTransactions: s.TotalTransactions,
		TotalAmount:       s.TotalAmount,
		AverageAmount:     s.AverageAmount,
		MinAmount:         s.MinAmount,
		MaxAmount:         s.MaxAmount,
		CompletedCount:    s.CompletedCount,
		FailedCount:       s.FailedCount,
		PendingCount:      s.PendingCount,
		CompletedAverage:  s.CompletedAverage,
		ByType:            make(map[string]breakdownResponse, len(s.ByType)),
		ByAgency:          make(map[string]breakdownResponse, len(s.ByAgency)),
	}
	for typ, b := range s.ByType {
		out.ByType[string(typ)] = breakdownResponse{Count: b.Count, Total: b.Total}
	}
	for name, b := range s.ByAgency {
		out.ByAgency[name] = breakdownResponse{Count: b.Count, Total: b.Total}
	}
	return out
}

// parseDateParam accepts a date (2006-01-02) or full RFC 3339 timestamp.
// Date-only end bounds shift to the last instant of that day: the filter is
// inclusive, so an end_date of 2025-01-15 must cover the whole 15th.
func parseDateParam(value string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized date %q", value)
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return t, nil
}
