//go:build integration

package client_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"ledger/internal/clients/models"
	"ledger/internal/clients/store/client"
	"ledger/pkg/platform/sentinel"
	"ledger/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *client.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = client.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	ctx := context.Background()
	s.Require().NoError(s.postgres.TruncateTables(ctx))

	_, err := s.postgres.DB.ExecContext(ctx, `
		INSERT INTO agencies (id, code, name, active) VALUES
			(1, 'AG001', 'Central', TRUE),
			(2, 'AG002', 'North', TRUE)`)
	s.Require().NoError(err)
	_, err = s.postgres.DB.ExecContext(ctx, `
		INSERT INTO users (id, username, email, role, agency_id) VALUES
			(10, 'teller', 'teller@example.test', 'AGENCY_STAFF', 1)`)
	s.Require().NoError(err)
}

func makeClient(nationalID, fullName string) *models.Client {
	return &models.Client{
		NationalID:   nationalID,
		FullName:     fullName,
		AgencyID:     1,
		Status:       models.StatusActive,
		RegisteredAt: time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
	}
}

// =============================================================================
// Insert and read back
// =============================================================================

func (s *PostgresStoreSuite) TestInsertAndFindRoundTrip() {
	ctx := context.Background()

	dob := time.Date(1990, 6, 20, 0, 0, 0, 0, time.UTC)
	createdBy := int64(10)
	c := makeClient("CM1990XK7731", "Awa Mbarga")
	c.Email = "awa.mbarga@example.test"
	c.Phone = "+237699001122"
	c.Address = "12 Rue des Manguiers, Yaounde"
	c.DateOfBirth = &dob
	c.CreatedBy = &createdBy

	id, err := s.store.Insert(ctx, c)
	s.Require().NoError(err)
	s.Positive(id)

	got, err := s.store.FindByID(ctx, id)
	s.Require().NoError(err)
	s.Equal("CM1990XK7731", got.NationalID)
	s.Equal("Awa Mbarga", got.FullName)
	s.Equal("awa.mbarga@example.test", got.Email)
	s.Equal("+237699001122", got.Phone)
	s.Equal("12 Rue des Manguiers, Yaounde", got.Address)
	s.Require().NotNil(got.DateOfBirth)
	s.True(got.DateOfBirth.Equal(dob))
	s.Equal(models.StatusActive, got.Status)
	s.Require().NotNil(got.CreatedBy)
	s.Equal(int64(10), *got.CreatedBy)
}

func (s *PostgresStoreSuite) TestOptionalFieldsSurviveAsEmpty() {
	ctx := context.Background()

	id, err := s.store.Insert(ctx, makeClient("CM0001", "Jean Essomba"))
	s.Require().NoError(err)

	got, err := s.store.FindByID(ctx, id)
	s.Require().NoError(err)
	s.Empty(got.Email)
	s.Empty(got.Phone)
	s.Nil(got.DateOfBirth)
	s.Nil(got.CreatedBy)
}

func (s *PostgresStoreSuite) TestFindMissingClientIsNotFound() {
	_, err := s.store.FindByID(context.Background(), 424242)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

// =============================================================================
// Uniqueness backstops
// =============================================================================

func (s *PostgresStoreSuite) TestDuplicateNationalIDIsConflict() {
	ctx := context.Background()

	_, err := s.store.Insert(ctx, makeClient("CM0002", "First Holder"))
	s.Require().NoError(err)

	_, err = s.store.Insert(ctx, makeClient("CM0002", "Second Holder"))
	s.Require().ErrorIs(err, sentinel.ErrConflict)
}

func (s *PostgresStoreSuite) TestDuplicateEmailIsConflict() {
	ctx := context.Background()

	first := makeClient("CM0003", "First Holder")
	first.Email = "shared@example.test"
	_, err := s.store.Insert(ctx, first)
	s.Require().NoError(err)

	second := makeClient("CM0004", "Second Holder")
	second.Email = "shared@example.test"
	_, err = s.store.Insert(ctx, second)
	s.Require().ErrorIs(err, sentinel.ErrConflict)
}

func (s *PostgresStoreSuite) TestMissingEmailsNeverCollide() {
	ctx := context.Background()

	_, err := s.store.Insert(ctx, makeClient("CM0005", "No Email One"))
	s.Require().NoError(err)
	_, err = s.store.Insert(ctx, makeClient("CM0006", "No Email Two"))
	s.Require().NoError(err)

	ok, err := s.store.ExistsByNationalID(ctx, "CM0005")
	s.Require().NoError(err)
	s.True(ok)
}

// =============================================================================
// Listing
// =============================================================================

func (s *PostgresStoreSuite) seedRoster() {
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)

	for i, row := range []struct {
		nationalID string
		fullName   string
		email      string
		phone      string
		status     models.ClientStatus
	}{
		{"L003", "Clara Fouda", "clara@example.test", "+237655000003", models.StatusActive},
		{"L001", "Awa Mbarga", "awa@example.test", "+237655000001", models.StatusActive},
		{"L002", "Bernard Biya", "bernard@example.test", "+237699000002", models.StatusInactive},
	} {
		c := makeClient(row.nationalID, row.fullName)
		c.Email = row.email
		c.Phone = row.phone
		c.Status = row.status
		c.RegisteredAt = base.Add(time.Duration(i) * time.Hour)
		_, err := s.store.Insert(ctx, c)
		s.Require().NoError(err)
	}

	// A client in another agency must never leak into agency 1 listings.
	other := makeClient("X001", "Outside Agency")
	other.AgencyID = 2
	_, err := s.store.Insert(ctx, other)
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) TestListByAgencySortsAndScopes() {
	ctx := context.Background()
	s.seedRoster()

	page, err := s.store.ListByAgency(ctx, 1, models.ListFilter{SortBy: models.SortByName})
	s.Require().NoError(err)
	s.Equal(int64(3), page.Total)
	s.Require().Len(page.Clients, 3)
	s.Equal("Awa Mbarga", page.Clients[0].FullName)
	s.Equal("Bernard Biya", page.Clients[1].FullName)
	s.Equal("Clara Fouda", page.Clients[2].FullName)
}

func (s *PostgresStoreSuite) TestListByAgencyStatusFilter() {
	ctx := context.Background()
	s.seedRoster()

	inactive := models.StatusInactive
	page, err := s.store.ListByAgency(ctx, 1, models.ListFilter{Status: &inactive})
	s.Require().NoError(err)
	s.Equal(int64(1), page.Total)
	s.Require().Len(page.Clients, 1)
	s.Equal("Bernard Biya", page.Clients[0].FullName)
}

func (s *PostgresStoreSuite) TestListByAgencySearchIsCaseInsensitive() {
	ctx := context.Background()
	s.seedRoster()

	page, err := s.store.ListByAgency(ctx, 1, models.ListFilter{Search: "clara"})
	s.Require().NoError(err)
	s.Equal(int64(1), page.Total)
	s.Require().Len(page.Clients, 1)
	s.Equal("Clara Fouda", page.Clients[0].FullName)

	// Phone prefix search.
	page, err = s.store.ListByAgency(ctx, 1, models.ListFilter{Search: "+237655"})
	s.Require().NoError(err)
	s.Equal(int64(2), page.Total)
}

func (s *PostgresStoreSuite) TestListByAgencySearchMatchesWildcardsLiterally() {
	ctx := context.Background()
	s.seedRoster()

	// "_" matches any character in LIKE; unescaped it would hit every L00x id.
	page, err := s.store.ListByAgency(ctx, 1, models.ListFilter{Search: "L00_"})
	s.Require().NoError(err)
	s.Zero(page.Total)
	s.Empty(page.Clients)

	page, err = s.store.ListByAgency(ctx, 1, models.ListFilter{Search: "100%"})
	s.Require().NoError(err)
	s.Zero(page.Total)

	// A literal underscore in the data is still findable.
	c := makeClient("L9_7", "Underscore Holder")
	_, err = s.store.Insert(ctx, c)
	s.Require().NoError(err)

	page, err = s.store.ListByAgency(ctx, 1, models.ListFilter{Search: "9_7"})
	s.Require().NoError(err)
	s.Equal(int64(1), page.Total)
	s.Require().Len(page.Clients, 1)
	s.Equal("L9_7", page.Clients[0].NationalID)
}

func (s *PostgresStoreSuite) TestListByAgencyPagination() {
	ctx := context.Background()
	s.seedRoster()

	page, err := s.store.ListByAgency(ctx, 1, models.ListFilter{
		SortBy: models.SortByNationalID,
		Limit:  1,
		Offset: 1,
	})
	s.Require().NoError(err)
	s.Equal(int64(3), page.Total, "total reflects the filter, not the window")
	s.Require().Len(page.Clients, 1)
	s.Equal("L002", page.Clients[0].NationalID)
}

func (s *PostgresStoreSuite) TestListByAgencyDescOrder() {
	ctx := context.Background()
	s.seedRoster()

	page, err := s.store.ListByAgency(ctx, 1, models.ListFilter{
		SortBy: models.SortByRegistered,
		Order:  models.SortDesc,
	})
	s.Require().NoError(err)
	s.Require().Len(page.Clients, 3)
	s.Equal("L002", page.Clients[0].NationalID, "latest registration first")
}

func (s *PostgresStoreSuite) TestListConcurrentInsertsKeepTotalsConsistent() {
	ctx := context.Background()

	const writers = 20
	done := make(chan error, writers)
	for i := 0; i < writers; i++ {
		go func(n int) {
			_, err := s.store.Insert(ctx, makeClient(fmt.Sprintf("CC%03d", n), fmt.Sprintf("Client %03d", n)))
			done <- err
		}(i)
	}
	for i := 0; i < writers; i++ {
		s.Require().NoError(<-done)
	}

	page, err := s.store.ListByAgency(ctx, 1, models.ListFilter{Limit: 5})
	s.Require().NoError(err)
	s.Equal(int64(writers), page.Total)
	s.Len(page.Clients, 5)
}
