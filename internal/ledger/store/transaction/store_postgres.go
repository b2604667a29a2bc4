package transaction

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"ledger/internal/ledger/models"
	"ledger/pkg/platform/sentinel"
	"ledger/pkg/platform/tx"
)

// pqUniqueViolation is the postgres error code for unique constraint
// violations.
const pqUniqueViolation = "23505"

// PostgresStore persists transactions in PostgreSQL. All methods join an
// ambient transaction when one is carried in the context, so the engine's
// balance check, reference draw and insert share one isolation scope.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// NextReferenceSeq draws the next value from the dedicated reference
// sequence. Sequences are non-transactional in postgres: a drawn value is
// consumed even if the surrounding transaction rolls back, which is exactly
// the never-reused property the reference needs.
func (s *PostgresStore) NextReferenceSeq(ctx context.Context) (int64, error) {
	q := tx.Resolve(ctx, s.db)
	var seq int64
	if err := q.QueryRowContext(ctx, `SELECT nextval('transaction_reference_seq')`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next reference seq: %w", err)
	}
	return seq, nil
}

// Insert appends a transaction row and returns its id. A duplicate reference
// surfaces as sentinel.ErrConflict so the recorder can redraw and retry.
func (s *PostgresStore) Insert(ctx context.Context, t *models.Transaction) (int64, error) {
	q := tx.Resolve(ctx, s.db)
	var id int64
	err := q.QueryRowContext(ctx, `
		INSERT INTO transactions
			(reference, contract_id, agency_id, type, amount, currency, status, performed_by, verified_by, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`,
		t.Reference, t.ContractID, t.AgencyID, t.Type, t.Amount, t.Currency,
		t.Status, t.PerformedBy, nullInt64(t.VerifiedBy), t.Description, t.CreatedAt,
	).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return 0, sentinel.ErrConflict
		}
		return 0, fmt.Errorf("insert transaction: %w", err)
	}
	return id, nil
}

// Balance replays the contract's COMPLETED transactions inside the current
// isolation scope. With the contract row locked by the caller, two
// concurrent withdrawals cannot both read the same stale balance.
func (s *PostgresStore) Balance(ctx context.Context, contractID int64) (decimal.Decimal, error) {
	q := tx.Resolve(ctx, s.db)
	var balance decimal.Decimal
	err := q.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(
			CASE
				WHEN type IN ('DEPOSIT', 'PAYMENT') THEN amount
				WHEN type IN ('WITHDRAWAL', 'FEE') THEN -amount
				ELSE 0
			END), 0)
		FROM transactions
		WHERE contract_id = $1 AND status = $2`,
		contractID, models.StatusCompleted,
	).Scan(&balance)
	if err != nil {
		return decimal.Zero, fmt.Errorf("compute balance: %w", err)
	}
	return balance, nil
}

// ListByContract returns the contract's transactions in id order.
func (s *PostgresStore) ListByContract(ctx context.Context, contractID int64) ([]models.Transaction, error) {
	q := tx.Resolve(ctx, s.db)
	rows, err := q.QueryContext(ctx, `
		SELECT id, reference, contract_id, agency_id, type, amount, currency, status, performed_by, verified_by, description, created_at
		FROM transactions WHERE contract_id = $1 ORDER BY id`,
		contractID,
	)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []models.Transaction
	for rows.Next() {
		var (
			t          models.Transaction
			verifiedBy sql.NullInt64
		)
		if err := rows.Scan(
			&t.ID, &t.Reference, &t.ContractID, &t.AgencyID, &t.Type, &t.Amount,
			&t.Currency, &t.Status, &t.PerformedBy, &verifiedBy, &t.Description, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		if verifiedBy.Valid {
			t.VerifiedBy = &verifiedBy.Int64
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// statsWhere builds the parameterized filter clause shared by the aggregate
// queries. Only typed values are bound; no caller strings reach the SQL.
func statsWhere(f models.StatsFilter) (string, []any) {
	clause := ` WHERE 1=1`
	var args []any
	if f.AgencyID != nil {
		args = append(args, *f.AgencyID)
		clause += fmt.Sprintf(" AND t.agency_id = $%d", len(args))
	}
	if f.StartDate != nil {
		args = append(args, *f.StartDate)
		clause += fmt.Sprintf(" AND t.created_at >= $%d", len(args))
	}
	if f.EndDate != nil {
		args = append(args, *f.EndDate)
		clause += fmt.Sprintf(" AND t.created_at <= $%d", len(args))
	}
	return clause, args
}

// StatsTotals computes the scalar aggregates for the filtered set. Empty
// sets come back as well-defined zeroes.
func (s *PostgresStore) StatsTotals(ctx context.Context, f models.StatsFilter) (*models.TransactionStats, error) {
	q := tx.Resolve(ctx, s.db)
	where, args := statsWhere(f)
	stats := &models.TransactionStats{}
	err := q.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(t.amount), 0),
			COALESCE(AVG(t.amount), 0),
			COALESCE(MIN(t.amount), 0),
			COALESCE(MAX(t.amount), 0),
			COUNT(*) FILTER (WHERE t.status = 'COMPLETED'),
			COUNT(*) FILTER (WHERE t.status = 'FAILED'),
			COUNT(*) FILTER (WHERE t.status = 'PENDING'),
			COALESCE(AVG(t.amount) FILTER (WHERE t.status = 'COMPLETED'), 0)
		FROM transactions t`+where,
		args...,
	).Scan(
		&stats.TotalTransactions, &stats.TotalAmount, &stats.AverageAmount,
		&stats.MinAmount, &stats.MaxAmount,
		&stats.CompletedCount, &stats.FailedCount, &stats.PendingCount,
		&stats.CompletedAverage,
	)
	if err != nil {
		return nil, fmt.Errorf("stats totals: %w", err)
	}
	return stats, nil
}

// StatsByType computes the per-type count+sum breakdown for the filtered set.
func (s *PostgresStore) StatsByType(ctx context.Context, f models.StatsFilter) (map[models.TransactionType]models.Breakdown, error) {
	q := tx.Resolve(ctx, s.db)
	where, args := statsWhere(f)
	rows, err := q.QueryContext(ctx, `
		SELECT t.type, COUNT(*), COALESCE(SUM(t.amount), 0)
		FROM transactions t`+where+`
		GROUP BY t.type`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("stats by type: %w", err)
	}
	defer rows.Close()

	out := make(map[models.TransactionType]models.Breakdown)
	for rows.Next() {
		var (
			typ models.TransactionType
			b   models.Breakdown
		)
		if err := rows.Scan(&typ, &b.Count, &b.Total); err != nil {
			return nil, fmt.Errorf("scan type breakdown: %w", err)
		}
		out[typ] = b
	}
	return out, rows.Err()
}

// StatsByAgency computes the per-agency-name count+sum breakdown for the
// filtered set.
func (s *PostgresStore) StatsByAgency(ctx context.Context, f models.StatsFilter) (map[string]models.Breakdown, error) {
	q := tx.Resolve(ctx, s.db)
	where, args := statsWhere(f)
	rows, err := q.QueryContext(ctx, `
		SELECT a.name, COUNT(*), COALESCE(SUM(t.amount), 0)
		FROM transactions t
		JOIN agencies a ON a.id = t.agency_id`+where+`
		GROUP BY a.name`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("stats by agency: %w", err)
	}
	defer rows.Close()

	out := make(map[string]models.Breakdown)
	for rows.Next() {
		var (
			name string
			b    models.Breakdown
		)
		if err := rows.Scan(&name, &b.Count, &b.Total); err != nil {
			return nil, fmt.Errorf("scan agency breakdown: %w", err)
		}
		out[name] = b
	}
	return out, rows.Err()
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}
