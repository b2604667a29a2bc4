package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"ledger/internal/clients/models"
	"ledger/pkg/platform/sentinel"
	"ledger/pkg/platform/tx"
)

// pqUniqueViolation is the postgres error code for unique constraint
// violations.
const pqUniqueViolation = "23505"

// PostgresStore persists clients in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Insert adds a client row and returns its id. Duplicate national ids or
// emails surface as sentinel.ErrConflict via the unique constraints, which
// backstops the service's pre-checks under concurrency.
func (s *PostgresStore) Insert(ctx context.Context, c *models.Client) (int64, error) {
	q := tx.Resolve(ctx, s.db)
	var id int64
	err := q.QueryRowContext(ctx, `
		INSERT INTO clients
			(national_id, full_name, email, phone, address, date_of_birth, agency_id, status, registered_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		c.NationalID, c.FullName, nullString(c.Email), c.Phone, c.Address,
		c.DateOfBirth, c.AgencyID, c.Status, c.RegisteredAt, c.CreatedBy,
	).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return 0, sentinel.ErrConflict
		}
		return 0, fmt.Errorf("insert client: %w", err)
	}
	return id, nil
}

// ExistsByNationalID reports whether a client with the national id exists.
func (s *PostgresStore) ExistsByNationalID(ctx context.Context, nationalID string) (bool, error) {
	q := tx.Resolve(ctx, s.db)
	var exists bool
	err := q.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM clients WHERE national_id = $1)`, nationalID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("client by national id: %w", err)
	}
	return exists, nil
}

// ExistsByEmail reports whether a client with the email exists.
func (s *PostgresStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	q := tx.Resolve(ctx, s.db)
	var exists bool
	err := q.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM clients WHERE email = $1)`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("client by email: %w", err)
	}
	return exists, nil
}

// FindByID returns a client by id.
func (s *PostgresStore) FindByID(ctx context.Context, id int64) (*models.Client, error) {
	q := tx.Resolve(ctx, s.db)
	row := q.QueryRowContext(ctx, `
		SELECT id, national_id, full_name, email, phone, address, date_of_birth, agency_id, status, registered_at, created_by
		FROM clients WHERE id = $1`, id,
	)
	c, err := scanClient(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find client: %w", err)
	}
	return c, nil
}

// likeEscaper neutralizes the LIKE wildcards so a search term matches
// literally. A national id like "L00_1" must not match every "L00x1" row.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}

// sortColumns maps the closed sort enumeration onto column expressions. The
// map is the only path from caller input into ORDER BY.
var sortColumns = map[models.SortField]string{
	models.SortByName:       "full_name",
	models.SortByNationalID: "national_id",
	models.SortByEmail:      "email",
	models.SortByRegistered: "registered_at",
}

// ListByAgency returns one page of the agency's clients plus the unwindowed
// total for the same filter.
func (s *PostgresStore) ListByAgency(ctx context.Context, agencyID int64, f models.ListFilter) (*models.Page, error) {
	q := tx.Resolve(ctx, s.db)

	where := ` WHERE agency_id = $1`
	args := []any{agencyID}
	if f.Status != nil {
		args = append(args, *f.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if f.Search != "" {
		args = append(args, "%"+escapeLike(f.Search)+"%")
		n := len(args)
		where += fmt.Sprintf(
			" AND (national_id ILIKE $%d OR full_name ILIKE $%d OR email ILIKE $%d OR phone ILIKE $%d)",
			n, n, n, n,
		)
	}

	page := &models.Page{}
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients`+where, args...).Scan(&page.Total); err != nil {
		return nil, fmt.Errorf("count clients: %w", err)
	}

	column, ok := sortColumns[f.SortBy]
	if !ok {
		column = "full_name"
	}
	direction := "ASC"
	if f.Order == models.SortDesc {
		direction = "DESC"
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit, f.Offset)
	query := fmt.Sprintf(`
		SELECT id, national_id, full_name, email, phone, address, date_of_birth, agency_id, status, registered_at, created_by
		FROM clients`+where+`
		ORDER BY %s %s, id ASC
		LIMIT $%d OFFSET $%d`, column, direction, len(args)-1, len(args))

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		c, err := scanClient(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		page.Clients = append(page.Clients, *c)
	}
	return page, rows.Err()
}

func scanClient(scan func(dest ...any) error) (*models.Client, error) {
	var (
		c                    models.Client
		email, phone, street sql.NullString
		dob                  sql.NullTime
		createdBy            sql.NullInt64
	)
	err := scan(
		&c.ID, &c.NationalID, &c.FullName, &email, &phone, &street,
		&dob, &c.AgencyID, &c.Status, &c.RegisteredAt, &createdBy,
	)
	if err != nil {
		return nil, err
	}
	c.Email = email.String
	c.Phone = phone.String
	c.Address = street.String
	if dob.Valid {
		c.DateOfBirth = &dob.Time
	}
	if createdBy.Valid {
		c.CreatedBy = &createdBy.Int64
	}
	return &c, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
