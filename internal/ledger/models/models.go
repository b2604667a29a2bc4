// Package models defines the ledger's entities and enumerations.
//
// Amounts are shopspring decimals throughout; float arithmetic never touches
// money. Contract balance is not a field anywhere in this package: it is
// always derived from completed transactions.
package models

import (
	"time"

	"github.com/shopspring/decimal"

	dErrors "ledger/pkg/domain-errors"
)

// TransactionType identifies a monetary movement kind.
// Invariant: the value must be one of the eight recognized types.
//
// Construct via ParseTransactionType at trust boundaries; direct casting
// bypasses validation.
type TransactionType string

const (
	TypePayment    TransactionType = "PAYMENT"
	TypeDeposit    TransactionType = "DEPOSIT"
	TypeWithdrawal TransactionType = "WITHDRAWAL"
	TypeFee        TransactionType = "FEE"
	TypeInterest   TransactionType = "INTEREST"
	TypeRefund     TransactionType = "REFUND"
	TypeAdjustment TransactionType = "ADJUSTMENT"
	TypePenalty    TransactionType = "PENALTY"
)

// validTransactionTypes is the single source of truth for recognized types.
var validTransactionTypes = map[TransactionType]bool{
	TypePayment:    true,
	TypeDeposit:    true,
	TypeWithdrawal: true,
	TypeFee:        true,
	TypeInterest:   true,
	TypeRefund:     true,
	TypeAdjustment: true,
	TypePenalty:    true,
}

// ParseTransactionType constructs a TransactionType from external input.
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(s)
	if !validTransactionTypes[t] {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unrecognized transaction type: "+s)
	}
	return t, nil
}

// Sign returns the contribution direction of the type toward a contract
// balance: +1 for credits (DEPOSIT, PAYMENT), -1 for debits (WITHDRAWAL, FEE),
// 0 for types that do not move the balance.
func (t TransactionType) Sign() int {
	switch t {
	case TypeDeposit, TypePayment:
		return 1
	case TypeWithdrawal, TypeFee:
		return -1
	default:
		return 0
	}
}

// SignedAmount applies the type's sign to a positive amount.
func (t TransactionType) SignedAmount(amount decimal.Decimal) decimal.Decimal {
	switch t.Sign() {
	case 1:
		return amount
	case -1:
		return amount.Neg()
	default:
		return decimal.Zero
	}
}

// TransactionStatus is the lifecycle status of a recorded transaction.
// The recorder only ever inserts COMPLETED rows; PENDING and FAILED are
// modeled for the reporting side and for a future verification workflow.
type TransactionStatus string

const (
	StatusCompleted TransactionStatus = "COMPLETED"
	StatusFailed    TransactionStatus = "FAILED"
	StatusPending   TransactionStatus = "PENDING"
)

// Currency tags transaction amounts. XAF is the home currency.
type Currency string

const (
	CurrencyXAF Currency = "XAF"
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
)

var validCurrencies = map[Currency]bool{
	CurrencyXAF: true,
	CurrencyEUR: true,
	CurrencyUSD: true,
}

// ParseCurrency constructs a Currency from external input. Empty input
// defaults to the home currency.
func ParseCurrency(s string) (Currency, error) {
	if s == "" {
		return CurrencyXAF, nil
	}
	c := Currency(s)
	if !validCurrencies[c] {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unrecognized currency: "+s)
	}
	return c, nil
}

// ContractStatus is the lifecycle status of a contract.
type ContractStatus string

const (
	ContractDraft     ContractStatus = "DRAFT"
	ContractActive    ContractStatus = "ACTIVE"
	ContractClosed    ContractStatus = "CLOSED"
	ContractCancelled ContractStatus = "CANCELLED"
)

// AcceptsTransactions reports whether new transactions may be recorded
// against a contract in this status.
func (s ContractStatus) AcceptsTransactions() bool {
	return s == ContractDraft || s == ContractActive
}

// Role tags a user with their function in the organization.
type Role string

const (
	RoleCEO           Role = "CEO"
	RoleAgencyManager Role = "AGENCY_MANAGER"
	RoleAgencyStaff   Role = "AGENCY_STAFF"
	RoleAudit         Role = "AUDIT"
	RoleReport        Role = "REPORT"
)

// Agency is a branch that owns clients, contracts and transactions.
// Immutable once referenced by a contract.
type Agency struct {
	ID     int64
	Code   string
	Name   string
	City   string
	Active bool
}

// User is an operator account. AgencyID is nil for roles that are not bound
// to a single agency (CEO, audit, report).
type User struct {
	ID       int64
	Username string
	Email    string
	Role     Role
	AgencyID *int64
	Active   bool
}

// Contract is a financial agreement between a client and an agency. The
// DRAFT -> ACTIVE transition happens as a side effect of the first completed
// PAYMENT; all other transitions are out of the engine's hands.
type Contract struct {
	ID             int64
	ContractNumber string
	ClientID       int64
	AgencyID       int64
	ContractType   string
	FaceAmount     decimal.Decimal
	StartDate      time.Time
	EndDate        time.Time
	Status         ContractStatus
}

// Transaction is one signed monetary movement against a contract.
// Rows are append-only: the engine never updates or deletes them.
type Transaction struct {
	ID          int64
	Reference   string
	ContractID  int64
	AgencyID    int64
	Type        TransactionType
	Amount      decimal.Decimal
	Currency    Currency
	Status      TransactionStatus
	PerformedBy int64
	VerifiedBy  *int64
	Description string
	CreatedAt   time.Time
}
