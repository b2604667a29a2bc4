package models

import (
	"time"

	"github.com/shopspring/decimal"

	dErrors "ledger/pkg/domain-errors"
)

// TransactionRequest is the caller-facing input for recording one
// transaction. Type and Currency arrive pre-parsed; handlers call the Parse
// helpers at the trust boundary.
type TransactionRequest struct {
	ContractID  int64
	Type        TransactionType
	Amount      decimal.Decimal
	AgencyID    int64
	PerformedBy int64
	VerifiedBy  *int64
	Currency    Currency
	Description string
}

// TransactionOutcome is the recorder's single result structure. Expected
// rejections set Success=false with a zero TransactionID and a descriptive
// message; they are reported, never raised.
type TransactionOutcome struct {
	Success       bool
	TransactionID int64
	Reference     string
	Message       string
	// Code classifies a rejection for transport mapping; empty on success.
	Code dErrors.Code
}

// Rejected builds a failure outcome from a coded error.
func Rejected(err *dErrors.Error) *TransactionOutcome {
	return &TransactionOutcome{
		Success: false,
		Message: err.Message,
		Code:    err.Code,
	}
}

// BatchOutcome labels one batch item result.
type BatchOutcome string

const (
	BatchSuccess BatchOutcome = "SUCCESS"
	BatchFailed  BatchOutcome = "FAILED"
)

// BatchItemResult is the per-item record accumulated by the batch processor,
// in input order.
type BatchItemResult struct {
	ContractID    int64
	TransactionID int64
	Reference     string
	Outcome       BatchOutcome
	Message       string
}

// BatchResult summarizes a processed batch. SuccessCount+FailedCount always
// equals Total.
type BatchResult struct {
	Total        int
	SuccessCount int
	FailedCount  int
	Results      []BatchItemResult
}

// StatsFilter restricts the statistics aggregation. Nil fields mean no
// restriction; date bounds are inclusive.
type StatsFilter struct {
	AgencyID  *int64
	StartDate *time.Time
	EndDate   *time.Time
}

// Breakdown is a count+sum pair for one grouping key.
type Breakdown struct {
	Count int64
	Total decimal.Decimal
}

// TransactionStats is the aggregate record returned by the statistics
// aggregator. All fields are well-defined zero values when the filtered set
// is empty.
type TransactionStats struct {
	TotalTransactions int64
	TotalAmount       decimal.Decimal
	AverageAmount     decimal.Decimal
	MinAmount         decimal.Decimal
	MaxAmount         decimal.Decimal
	CompletedCount    int64
	FailedCount       int64
	PendingCount      int64
	CompletedAverage  decimal.Decimal
	ByType            map[TransactionType]Breakdown
	ByAgency          map[string]Breakdown
}
