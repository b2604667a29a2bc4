// Package audit defines the ledger's append-only audit events.
//
// Events are emitted from domain logic and fanned out by publishers. Keep the
// model transport-agnostic so sinks (Kafka, logs, test buffers) interchange
// freely.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Action identifies what happened.
type Action string

const (
	ActionTransactionRecorded Action = "transaction_recorded"
	ActionContractActivated   Action = "contract_activated"
	ActionClientCreated       Action = "client_created"
)

// Event captures one auditable ledger fact.
type Event struct {
	ID            uuid.UUID `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	Action        Action    `json:"action"`
	AgencyID      int64     `json:"agency_id,omitempty"`
	ContractID    int64     `json:"contract_id,omitempty"`
	TransactionID int64     `json:"transaction_id,omitempty"`
	ClientID      int64     `json:"client_id,omitempty"`
	Reference     string    `json:"reference,omitempty"`
	// Amount is the decimal string form; never a float.
	Amount    string `json:"amount,omitempty"`
	ActorID   int64  `json:"actor_id,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// Publisher fans events out to a sink. Implementations are fail-open for the
// write path: the ledger's business operation must not fail because the
// audit sink is down; sinks log and drop instead.
type Publisher interface {
	Emit(ctx context.Context, event Event) error
	Close() error
}
