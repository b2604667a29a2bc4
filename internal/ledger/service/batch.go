package service

import (
	"context"

	"ledger/internal/ledger/models"
	"ledger/pkg/requestcontext"
)

// AddTransactionBatch processes the requests in order, each as its own
// atomic unit. One item's failure, whether expected rejection or internal
// fault, never aborts siblings and never rolls back previously recorded
// items; callers inspect per-item outcomes.
//
// All items share the stated agency and performing user; per-item values on
// the requests are overwritten.
func (s *Service) AddTransactionBatch(ctx context.Context, requests []models.TransactionRequest, agencyID, performedBy int64) (*models.BatchResult, error) {
	ctx, span := s.tracer.Start(ctx, "ledger.AddTransactionBatch")
	defer span.End()

	s.metrics.ObserveBatchSize(len(requests))

	result := &models.BatchResult{
		Total:   len(requests),
		Results: make([]models.BatchItemResult, 0, len(requests)),
	}

	for _, req := range requests {
		// The whole batch stops only when the caller is gone.
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req.AgencyID = agencyID
		req.PerformedBy = performedBy

		outcome, err := s.AddTransaction(ctx, req)
		if err != nil {
			s.logger.WarnContext(ctx, "batch item failed with internal fault",
				"contract_id", req.ContractID,
				"request_id", requestcontext.RequestID(ctx),
				"error", err,
			)
			result.FailedCount++
			result.Results = append(result.Results, models.BatchItemResult{
				ContractID: req.ContractID,
				Outcome:    models.BatchFailed,
				Message:    "internal error while recording transaction",
			})
			continue
		}

		item := models.BatchItemResult{
			ContractID: req.ContractID,
			Message:    outcome.Message,
		}
		if outcome.Success {
			result.SuccessCount++
			item.Outcome = models.BatchSuccess
			item.TransactionID = outcome.TransactionID
			item.Reference = outcome.Reference
		} else {
			result.FailedCount++
			item.Outcome = models.BatchFailed
		}
		result.Results = append(result.Results, item)
	}

	return result, nil
}
