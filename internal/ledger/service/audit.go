package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"ledger/internal/ledger/models"
	"ledger/pkg/platform/audit"
	"ledger/pkg/requestcontext"
)

// auditEmitter wraps the configured publisher with fail-open semantics: a
// committed transaction is never unwound because the audit sink is down, so
// emit failures are logged and dropped.
type auditEmitter struct {
	logger    *slog.Logger
	publisher audit.Publisher
}

func newAuditEmitter(logger *slog.Logger, publisher audit.Publisher) *auditEmitter {
	return &auditEmitter{logger: logger, publisher: publisher}
}

func (e *auditEmitter) emitTransactionRecorded(ctx context.Context, req models.TransactionRequest, outcome *models.TransactionOutcome) {
	e.emit(ctx, audit.Event{
		ID:            uuid.New(),
		Timestamp:     requestcontext.Now(ctx),
		Action:        audit.ActionTransactionRecorded,
		AgencyID:      req.AgencyID,
		ContractID:    req.ContractID,
		TransactionID: outcome.TransactionID,
		Reference:     outcome.Reference,
		Amount:        req.Amount.String(),
		ActorID:       req.PerformedBy,
		RequestID:     requestcontext.RequestID(ctx),
	})
}

func (e *auditEmitter) emitContractActivated(ctx context.Context, contractID, agencyID int64) {
	e.emit(ctx, audit.Event{
		ID:         uuid.New(),
		Timestamp:  requestcontext.Now(ctx),
		Action:     audit.ActionContractActivated,
		AgencyID:   agencyID,
		ContractID: contractID,
		ActorID:    requestcontext.ActorID(ctx),
		RequestID:  requestcontext.RequestID(ctx),
	})
}

func (e *auditEmitter) emit(ctx context.Context, event audit.Event) {
	if e.publisher == nil {
		return
	}
	if err := e.publisher.Emit(ctx, event); err != nil {
		e.logger.WarnContext(ctx, "audit emit failed",
			"action", event.Action,
			"contract_id", event.ContractID,
			"error", err,
		)
	}
}
