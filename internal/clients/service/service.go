// Package service implements client onboarding and the agency listing read
// side.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	clientmetrics "ledger/internal/clients/metrics"
	"ledger/internal/clients/models"
	ledgermodels "ledger/internal/ledger/models"
	dErrors "ledger/pkg/domain-errors"
	"ledger/pkg/email"
	"ledger/pkg/platform/audit"
	"ledger/pkg/platform/sentinel"
	"ledger/pkg/requestcontext"
)

// ClientStore persists clients and serves the listing read side.
type ClientStore interface {
	Insert(ctx context.Context, c *models.Client) (int64, error)
	ExistsByNationalID(ctx context.Context, nationalID string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindByID(ctx context.Context, id int64) (*models.Client, error)
	ListByAgency(ctx context.Context, agencyID int64, f models.ListFilter) (*models.Page, error)
}

// AgencyStore reads agencies for the existence and active checks.
type AgencyStore interface {
	FindByID(ctx context.Context, id int64) (*ledgermodels.Agency, error)
}

// UserStore reads operator accounts for the creator check.
type UserStore interface {
	FindByID(ctx context.Context, id int64) (*ledgermodels.User, error)
}

// AddClientResult reports the outcome of one onboarding call.
type AddClientResult struct {
	ClientID int64
	Message  string
}

// Service handles client onboarding and listing.
type Service struct {
	clients  ClientStore
	agencies AgencyStore
	users    UserStore

	metrics   *clientmetrics.Metrics
	logger    *slog.Logger
	publisher audit.Publisher
	tracer    trace.Tracer
	titler    cases.Caser
}

type serviceConfig struct {
	metrics   *clientmetrics.Metrics
	logger    *slog.Logger
	publisher audit.Publisher
}

// Option configures the Service.
type Option func(*serviceConfig)

// WithMetrics attaches Prometheus metrics.
func WithMetrics(m *clientmetrics.Metrics) Option {
	return func(cfg *serviceConfig) { cfg.metrics = m }
}

// WithLogger attaches a logger for internal fault reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *serviceConfig) { cfg.logger = logger }
}

// WithAuditPublisher enables audit event emission.
func WithAuditPublisher(p audit.Publisher) Option {
	return func(cfg *serviceConfig) { cfg.publisher = p }
}

// New constructs the service. All three stores are required.
func New(clients ClientStore, agencies AgencyStore, users UserStore, opts ...Option) (*Service, error) {
	if clients == nil {
		return nil, errors.New("client store is required")
	}
	if agencies == nil {
		return nil, errors.New("agency store is required")
	}
	if users == nil {
		return nil, errors.New("user store is required")
	}

	cfg := &serviceConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		clients:   clients,
		agencies:  agencies,
		users:     users,
		metrics:   cfg.metrics,
		logger:    logger,
		publisher: cfg.publisher,
		tracer:    otel.Tracer("clients/service"),
		titler:    cases.Title(language.Und),
	}, nil
}

// AddClient validates and inserts one client with normalized identity fields:
// national id uppercased and trimmed, name title-cased and trimmed, email
// lowercased and trimmed.
func (s *Service) AddClient(ctx context.Context, req models.AddClientRequest) (*AddClientResult, error) {
	ctx, span := s.tracer.Start(ctx, "clients.AddClient")
	defer span.End()

	nationalID := strings.ToUpper(strings.TrimSpace(req.NationalID))
	fullName := s.titler.String(strings.Join(strings.Fields(strings.ToLower(req.FullName)), " "))
	mail := email.Normalize(req.Email)

	if nationalID == "" {
		return nil, s.reject(dErrors.New(dErrors.CodeValidation, "national id is required"))
	}
	if fullName == "" {
		return nil, s.reject(dErrors.New(dErrors.CodeValidation, "full name is required"))
	}
	if req.AgencyID == 0 {
		return nil, s.reject(dErrors.New(dErrors.CodeValidation, "agency id is required"))
	}
	if mail != "" && !email.Valid(mail) {
		return nil, s.reject(dErrors.New(dErrors.CodeValidation, fmt.Sprintf("malformed email address: %s", mail)))
	}

	agency, err := s.agencies.FindByID(ctx, req.AgencyID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, s.reject(dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("agency %d not found", req.AgencyID)))
		}
		return nil, s.fault(ctx, err, "agency lookup failed")
	}
	if !agency.Active {
		return nil, s.reject(dErrors.New(dErrors.CodeConflict, fmt.Sprintf("agency %d is inactive", agency.ID)))
	}

	if req.CreatedBy != nil {
		creator, err := s.users.FindByID(ctx, *req.CreatedBy)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return nil, s.reject(dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("creating user %d not found", *req.CreatedBy)))
			}
			return nil, s.fault(ctx, err, "creator lookup failed")
		}
		if !creator.Active {
			return nil, s.reject(dErrors.New(dErrors.CodeConflict, fmt.Sprintf("creating user %d is inactive", creator.ID)))
		}
	}

	// Pre-checks give precise messages; the store's unique constraints
	// backstop them under concurrency.
	exists, err := s.clients.ExistsByNationalID(ctx, nationalID)
	if err != nil {
		return nil, s.fault(ctx, err, "national id lookup failed")
	}
	if exists {
		return nil, s.reject(dErrors.New(dErrors.CodeConflict, fmt.Sprintf("a client with national id %s already exists", nationalID)))
	}
	if mail != "" {
		exists, err := s.clients.ExistsByEmail(ctx, mail)
		if err != nil {
			return nil, s.fault(ctx, err, "email lookup failed")
		}
		if exists {
			return nil, s.reject(dErrors.New(dErrors.CodeConflict, fmt.Sprintf("a client with email %s already exists", mail)))
		}
	}

	row := &models.Client{
		NationalID:   nationalID,
		FullName:     fullName,
		Email:        mail,
		Phone:        strings.TrimSpace(req.Phone),
		Address:      strings.TrimSpace(req.Address),
		DateOfBirth:  req.DateOfBirth,
		AgencyID:     req.AgencyID,
		Status:       models.StatusActive,
		RegisteredAt: requestcontext.Now(ctx),
		CreatedBy:    req.CreatedBy,
	}
	id, err := s.clients.Insert(ctx, row)
	if err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, s.reject(dErrors.New(dErrors.CodeConflict, fmt.Sprintf("a client with national id %s or email %s already exists", nationalID, mail)))
		}
		return nil, s.fault(ctx, err, "client insert failed")
	}

	s.metrics.IncCreated()
	s.emitClientCreated(ctx, id, req.AgencyID, req.CreatedBy)
	return &AddClientResult{
		ClientID: id,
		Message:  fmt.Sprintf("client %s registered", fullName),
	}, nil
}

// ListClientsByAgency returns one page of the agency's clients. The agency
// must exist and be active.
func (s *Service) ListClientsByAgency(ctx context.Context, agencyID int64, f models.ListFilter) (*models.Page, error) {
	ctx, span := s.tracer.Start(ctx, "clients.ListClientsByAgency")
	defer span.End()

	agency, err := s.agencies.FindByID(ctx, agencyID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("agency %d not found", agencyID))
		}
		return nil, s.fault(ctx, err, "agency lookup failed")
	}
	if !agency.Active {
		return nil, dErrors.New(dErrors.CodeConflict, fmt.Sprintf("agency %d is inactive", agency.ID))
	}

	page, err := s.clients.ListByAgency(ctx, agencyID, f)
	if err != nil {
		return nil, s.fault(ctx, err, "client listing failed")
	}
	s.metrics.ObserveListResults(len(page.Clients))
	return page, nil
}

func (s *Service) reject(err *dErrors.Error) error {
	s.metrics.IncRejected(string(err.Code))
	return err
}

func (s *Service) fault(ctx context.Context, err error, msg string) error {
	s.logger.ErrorContext(ctx, msg, "request_id", requestcontext.RequestID(ctx), "error", err)
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}

func (s *Service) emitClientCreated(ctx context.Context, clientID, agencyID int64, createdBy *int64) {
	if s.publisher == nil {
		return
	}
	event := audit.Event{
		ID:        uuid.New(),
		Timestamp: requestcontext.Now(ctx),
		Action:    audit.ActionClientCreated,
		AgencyID:  agencyID,
		ClientID:  clientID,
		RequestID: requestcontext.RequestID(ctx),
	}
	if createdBy != nil {
		event.ActorID = *createdBy
	}
	if err := s.publisher.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "action", event.Action, "client_id", clientID, "error", err)
	}
}
