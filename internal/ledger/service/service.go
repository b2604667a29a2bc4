// Package service implements the ledger transaction engine: validation,
// reference generation, balance checking, recording, batch processing and
// statistics aggregation.
package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	ledgermetrics "ledger/internal/ledger/metrics"
	"ledger/internal/ledger/models"
	dErrors "ledger/pkg/domain-errors"
	"ledger/pkg/platform/audit"
	"ledger/pkg/platform/sentinel"
	"ledger/pkg/requestcontext"
)

// AgencyStore reads agencies. Agencies are provisioned out-of-band; the
// engine only ever checks existence and the active flag.
type AgencyStore interface {
	FindByID(ctx context.Context, id int64) (*models.Agency, error)
}

// UserStore reads operator accounts.
type UserStore interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

// ContractStore reads contracts and applies the engine's one mutation, the
// DRAFT -> ACTIVE flip.
type ContractStore interface {
	FindByID(ctx context.Context, id int64) (*models.Contract, error)
	// Lock reads the contract for update within the current transaction
	// scope, serializing the balance-check/insert/activate unit per contract.
	Lock(ctx context.Context, id int64) (*models.Contract, error)
	ActivateIfDraft(ctx context.Context, id int64) error
}

// TransactionStore appends transactions and serves the derived reads.
type TransactionStore interface {
	NextReferenceSeq(ctx context.Context) (int64, error)
	Insert(ctx context.Context, t *models.Transaction) (int64, error)
	Balance(ctx context.Context, contractID int64) (decimal.Decimal, error)
	StatsTotals(ctx context.Context, f models.StatsFilter) (*models.TransactionStats, error)
	StatsByType(ctx context.Context, f models.StatsFilter) (map[models.TransactionType]models.Breakdown, error)
	StatsByAgency(ctx context.Context, f models.StatsFilter) (map[string]models.Breakdown, error)
}

// StatsCache fronts the statistics aggregate. Optional and read-side only.
type StatsCache interface {
	Get(ctx context.Context, f models.StatsFilter) (*models.TransactionStats, bool)
	Set(ctx context.Context, f models.StatsFilter, stats *models.TransactionStats)
}

// Service orchestrates the ledger engine over the entity stores.
type Service struct {
	agencies     AgencyStore
	users        UserStore
	contracts    ContractStore
	transactions TransactionStore

	tx           StoreTx
	statsCache   StatsCache
	metrics      *ledgermetrics.Metrics
	logger       *slog.Logger
	auditEmitter *auditEmitter
	tracer       trace.Tracer
}

type serviceConfig struct {
	tx             StoreTx
	statsCache     StatsCache
	metrics        *ledgermetrics.Metrics
	logger         *slog.Logger
	auditPublisher audit.Publisher
}

// Option configures the Service.
type Option func(*serviceConfig)

// WithTx sets the transaction runner. Defaults to the in-memory sharded
// runner, which is only correct when paired with the in-memory stores.
func WithTx(tx StoreTx) Option {
	return func(cfg *serviceConfig) { cfg.tx = tx }
}

// WithStatsCache enables the read-side statistics cache.
func WithStatsCache(cache StatsCache) Option {
	return func(cfg *serviceConfig) { cfg.statsCache = cache }
}

// WithMetrics attaches Prometheus metrics.
func WithMetrics(m *ledgermetrics.Metrics) Option {
	return func(cfg *serviceConfig) { cfg.metrics = m }
}

// WithLogger attaches a logger for internal fault reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *serviceConfig) { cfg.logger = logger }
}

// WithAuditPublisher enables audit event emission.
func WithAuditPublisher(p audit.Publisher) Option {
	return func(cfg *serviceConfig) { cfg.auditPublisher = p }
}

// New constructs the engine. All four stores are required.
func New(agencies AgencyStore, users UserStore, contracts ContractStore, transactions TransactionStore, opts ...Option) (*Service, error) {
	if agencies == nil {
		return nil, errors.New("agency store is required")
	}
	if users == nil {
		return nil, errors.New("user store is required")
	}
	if contracts == nil {
		return nil, errors.New("contract store is required")
	}
	if transactions == nil {
		return nil, errors.New("transaction store is required")
	}

	cfg := &serviceConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	tx := cfg.tx
	if tx == nil {
		tx = NewInMemoryTx()
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		agencies:     agencies,
		users:        users,
		contracts:    contracts,
		transactions: transactions,
		tx:           tx,
		statsCache:   cfg.statsCache,
		metrics:      cfg.metrics,
		logger:       logger,
		auditEmitter: newAuditEmitter(logger, cfg.auditPublisher),
		tracer:       otel.Tracer("ledger/service"),
	}, nil
}

// AddTransaction validates and records one transaction. Expected business
// rejections come back as an outcome with Success=false and a zero
// transaction id; only internal faults and caller-cancelled contexts return
// an error, and those leave the store unchanged.
func (s *Service) AddTransaction(ctx context.Context, req models.TransactionRequest) (*models.TransactionOutcome, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "ledger.AddTransaction")
	defer span.End()
	defer func() {
		s.metrics.ObserveRecordLatency(time.Since(start))
	}()

	if err := requireFields(req); err != nil {
		s.metrics.IncRejected(string(err.Code))
		return models.Rejected(err), nil
	}

	var (
		outcome   *models.TransactionOutcome
		activated bool
	)
	runOnce := func() error {
		return s.tx.RunInTx(withLockContract(ctx, req.ContractID), func(txCtx context.Context) error {
			var err error
			outcome, activated, err = s.record(txCtx, req)
			return err
		})
	}

	// A reference collision aborts the store transaction, so each redraw
	// reruns the whole unit in a fresh one.
	err := runOnce()
	for attempt := 0; errors.Is(err, sentinel.ErrConflict) && attempt < referenceRetries; attempt++ {
		err = runOnce()
	}
	if err != nil {
		if rejection, ok := asRejection(err); ok {
			s.metrics.IncRejected(string(rejection.Code))
			return rejection, nil
		}
		if dErrors.HasCode(err, dErrors.CodeTimeout) {
			return nil, err
		}
		s.logger.ErrorContext(ctx, "transaction recording failed",
			"contract_id", req.ContractID,
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record transaction")
	}

	s.metrics.IncRecorded(string(req.Type))
	s.auditEmitter.emitTransactionRecorded(ctx, req, outcome)
	if activated {
		s.auditEmitter.emitContractActivated(ctx, req.ContractID, req.AgencyID)
	}
	return outcome, nil
}

// asRejection unwraps a coded error into a reported rejection. Internal and
// timeout codes are real faults and stay errors.
func asRejection(err error) (*models.TransactionOutcome, bool) {
	var de *dErrors.Error
	if !errors.As(err, &de) {
		return nil, false
	}
	switch de.Code {
	case dErrors.CodeInternal, dErrors.CodeTimeout:
		return nil, false
	}
	return models.Rejected(de), true
}

// Balance exposes the derived contract balance. Recomputed on every call;
// the result is advisory outside a transaction scope.
func (s *Service) Balance(ctx context.Context, contractID int64) (decimal.Decimal, error) {
	start := time.Now()
	defer func() {
		s.metrics.ObserveBalanceLatency(time.Since(start))
	}()
	balance, err := s.transactions.Balance(ctx, contractID)
	if err != nil {
		return decimal.Zero, dErrors.Wrap(err, dErrors.CodeInternal, "failed to compute balance")
	}
	return balance, nil
}
