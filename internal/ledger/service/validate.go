package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ledger/internal/ledger/models"
	dErrors "ledger/pkg/domain-errors"
	"ledger/pkg/platform/sentinel"
	"ledger/pkg/requestcontext"
)

// referenceRetries bounds how many times AddTransaction reruns the whole
// recording unit after an insert loses a reference collision. The sequence
// makes collisions effectively impossible; the rerun is the backstop for the
// unique constraint.
const referenceRetries = 3

// requireFields is the only check that runs outside the store transaction:
// it touches no entity state.
func requireFields(req models.TransactionRequest) *dErrors.Error {
	switch {
	case req.ContractID == 0:
		return dErrors.New(dErrors.CodeValidation, "contract id is required")
	case req.Type == "":
		return dErrors.New(dErrors.CodeValidation, "transaction type is required")
	case req.AgencyID == 0:
		return dErrors.New(dErrors.CodeValidation, "agency id is required")
	case req.PerformedBy == 0:
		return dErrors.New(dErrors.CodeValidation, "performing user is required")
	case !req.Amount.IsPositive():
		return dErrors.New(dErrors.CodeValidation, "amount must be a positive value")
	}
	return nil
}

// record runs the ordered validation pipeline and, when it passes, generates
// the reference, inserts the row and applies post effects. It must be called
// inside the transaction runner: every read here shares the isolation scope
// of the eventual write.
//
// Check order is observable through the reported error and must not change:
// contract existence, contract state, agency match, agency active, performer
// active, verifier active, type enum, currency enum, then balance.
func (s *Service) record(ctx context.Context, req models.TransactionRequest) (*models.TransactionOutcome, bool, error) {
	contract, err := s.contracts.Lock(ctx, req.ContractID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, false, dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("contract %d not found", req.ContractID))
		}
		return nil, false, err
	}
	if !contract.Status.AcceptsTransactions() {
		return nil, false, dErrors.New(dErrors.CodeConflict,
			fmt.Sprintf("contract %d is %s and no longer accepts transactions", contract.ID, contract.Status))
	}
	if contract.AgencyID != req.AgencyID {
		return nil, false, dErrors.New(dErrors.CodeConflict,
			fmt.Sprintf("contract %d belongs to agency %d, not agency %d", contract.ID, contract.AgencyID, req.AgencyID))
	}

	agency, err := s.agencies.FindByID(ctx, req.AgencyID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, false, dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("agency %d not found", req.AgencyID))
		}
		return nil, false, err
	}
	if !agency.Active {
		return nil, false, dErrors.New(dErrors.CodeConflict, fmt.Sprintf("agency %d is inactive", agency.ID))
	}

	if err := s.requireActiveUser(ctx, req.PerformedBy, "performing"); err != nil {
		return nil, false, err
	}
	if req.VerifiedBy != nil {
		if err := s.requireActiveUser(ctx, *req.VerifiedBy, "verifying"); err != nil {
			return nil, false, err
		}
	}

	if _, err := models.ParseTransactionType(string(req.Type)); err != nil {
		return nil, false, dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unrecognized transaction type: %s", req.Type))
	}
	currency := req.Currency
	if currency == "" {
		currency = models.CurrencyXAF
	} else if _, err := models.ParseCurrency(string(currency)); err != nil {
		return nil, false, dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unrecognized currency: %s", currency))
	}

	if req.Type == models.TypeWithdrawal {
		balance, err := s.transactions.Balance(ctx, contract.ID)
		if err != nil {
			return nil, false, err
		}
		if req.Amount.GreaterThan(balance) {
			return nil, false, dErrors.New(dErrors.CodeInsufficientBalance,
				fmt.Sprintf("withdrawal of %s exceeds contract balance of %s", req.Amount, balance))
		}
	}

	now := requestcontext.Now(ctx)
	row := &models.Transaction{
		ContractID:  contract.ID,
		AgencyID:    req.AgencyID,
		Type:        req.Type,
		Amount:      req.Amount,
		Currency:    currency,
		Status:      models.StatusCompleted,
		PerformedBy: req.PerformedBy,
		VerifiedBy:  req.VerifiedBy,
		Description: req.Description,
		CreatedAt:   now,
	}

	seq, err := s.transactions.NextReferenceSeq(ctx)
	if err != nil {
		return nil, false, err
	}
	reference := formatReference(now, seq)
	row.Reference = reference

	// A lost reference collision must propagate: postgres aborts the
	// transaction on the unique violation, so the redraw has to happen in a
	// fresh unit. AddTransaction owns that retry.
	id, err := s.transactions.Insert(ctx, row)
	if err != nil {
		return nil, false, err
	}

	activated := false
	if req.Type == models.TypePayment && contract.Status == models.ContractDraft {
		if err := s.contracts.ActivateIfDraft(ctx, contract.ID); err != nil {
			return nil, false, err
		}
		activated = true
	}

	return &models.TransactionOutcome{
		Success:       true,
		TransactionID: id,
		Reference:     reference,
		Message:       fmt.Sprintf("transaction %s recorded", reference),
	}, activated, nil
}

func (s *Service) requireActiveUser(ctx context.Context, id int64, roleInRequest string) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("%s user %d not found", roleInRequest, id))
		}
		return err
	}
	if !user.Active {
		return dErrors.New(dErrors.CodeConflict, fmt.Sprintf("%s user %d is inactive", roleInRequest, id))
	}
	return nil
}

// formatReference renders the human-readable receipt identifier.
func formatReference(date time.Time, seq int64) string {
	return fmt.Sprintf("TXN-%s-%06d", date.Format("20060102"), seq)
}
