package contract

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ledger/internal/ledger/models"
	"ledger/pkg/platform/sentinel"
	"ledger/pkg/platform/tx"
)

// PostgresStore persists contracts in PostgreSQL. Joins an ambient
// transaction when one is carried in the context.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const contractColumns = `id, contract_number, client_id, agency_id, contract_type, face_amount, start_date, end_date, status`

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (*models.Contract, error) {
	return s.find(ctx, id, false)
}

// Lock reads the contract FOR UPDATE so the balance check, the transaction
// insert and the status flip all happen against a row no concurrent writer
// can move underneath us. Must run inside a transaction.
func (s *PostgresStore) Lock(ctx context.Context, id int64) (*models.Contract, error) {
	return s.find(ctx, id, true)
}

func (s *PostgresStore) find(ctx context.Context, id int64, forUpdate bool) (*models.Contract, error) {
	q := tx.Resolve(ctx, s.db)
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var c models.Contract
	err := q.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.ContractNumber, &c.ClientID, &c.AgencyID, &c.ContractType,
		&c.FaceAmount, &c.StartDate, &c.EndDate, &c.Status,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find contract: %w", err)
	}
	return &c, nil
}

// ActivateIfDraft flips a DRAFT contract to ACTIVE. The WHERE clause makes
// the transition idempotent; zero rows affected on an ACTIVE contract is not
// an error.
func (s *PostgresStore) ActivateIfDraft(ctx context.Context, id int64) error {
	q := tx.Resolve(ctx, s.db)
	_, err := q.ExecContext(ctx,
		`UPDATE contracts SET status = $1 WHERE id = $2 AND status = $3`,
		models.ContractActive, id, models.ContractDraft,
	)
	if err != nil {
		return fmt.Errorf("activate contract: %w", err)
	}
	return nil
}
