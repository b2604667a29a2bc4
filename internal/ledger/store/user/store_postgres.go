package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ledger/internal/ledger/models"
	"ledger/pkg/platform/sentinel"
	"ledger/pkg/platform/tx"
)

// PostgresStore reads users from PostgreSQL. Joins an ambient transaction
// when one is carried in the context.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (*models.User, error) {
	q := tx.Resolve(ctx, s.db)
	var (
		u        models.User
		agencyID sql.NullInt64
	)
	err := q.QueryRowContext(ctx,
		`SELECT id, username, email, role, agency_id, active FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Username, &u.Email, &u.Role, &agencyID, &u.Active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if agencyID.Valid {
		u.AgencyID = &agencyID.Int64
	}
	return &u, nil
}
