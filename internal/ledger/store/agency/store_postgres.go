package agency

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ledger/internal/ledger/models"
	"ledger/pkg/platform/sentinel"
	"ledger/pkg/platform/tx"
)

// PostgresStore reads agencies from PostgreSQL. Joins an ambient transaction
// when one is carried in the context.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (*models.Agency, error) {
	q := tx.Resolve(ctx, s.db)
	var a models.Agency
	err := q.QueryRowContext(ctx,
		`SELECT id, code, name, city, active FROM agencies WHERE id = $1`, id,
	).Scan(&a.ID, &a.Code, &a.Name, &a.City, &a.Active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find agency: %w", err)
	}
	return &a, nil
}
