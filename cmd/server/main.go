// Command server wires the ledger engine, client onboarding and their HTTP
// surface. Business logic lives in the internal service packages; main only
// assembles dependencies and owns the process lifecycle.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	clienthandler "ledger/internal/clients/handler"
	clientmetrics "ledger/internal/clients/metrics"
	clientservice "ledger/internal/clients/service"
	clientstore "ledger/internal/clients/store/client"
	"ledger/internal/jwt"
	ledgerhandler "ledger/internal/ledger/handler"
	ledgermetrics "ledger/internal/ledger/metrics"
	ledgerservice "ledger/internal/ledger/service"
	agencystore "ledger/internal/ledger/store/agency"
	contractstore "ledger/internal/ledger/store/contract"
	"ledger/internal/ledger/store/statscache"
	transactionstore "ledger/internal/ledger/store/transaction"
	userstore "ledger/internal/ledger/store/user"
	"ledger/internal/platform/config"
	"ledger/internal/platform/httpserver"
	"ledger/internal/platform/logger"
	"ledger/internal/platform/metrics"
	"ledger/internal/platform/middleware"
	"ledger/internal/platform/postgres"
	platformredis "ledger/internal/platform/redis"
	"ledger/pkg/platform/audit"
	auditpublisher "ledger/pkg/platform/audit/publisher"
)

const version = "dev"

func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)
	ctx := context.Background()

	metrics.RegisterBuildInfo(version)

	var (
		agencies     ledgerservice.AgencyStore
		users        ledgerservice.UserStore
		contracts    ledgerservice.ContractStore
		transactions ledgerservice.TransactionStore
		clients      clientservice.ClientStore
		ledgerOpts   []ledgerservice.Option
	)

	if cfg.Postgres.URL != "" {
		db, err := postgres.Open(ctx, cfg.Postgres)
		if err != nil {
			log.Error("postgres connection failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		agencies = agencystore.NewPostgres(db)
		users = userstore.NewPostgres(db)
		contracts = contractstore.NewPostgres(db)
		transactions = transactionstore.NewPostgres(db)
		clients = clientstore.NewPostgres(db)
		ledgerOpts = append(ledgerOpts, ledgerservice.WithTx(newLedgerPostgresTx(db)))
	} else {
		// In-memory stores for local development. The default in-memory
		// transaction runner pairs with them.
		log.Warn("DATABASE_URL not set, using in-memory stores")
		agencies = agencystore.NewInMemory()
		users = userstore.NewInMemory()
		contracts = contractstore.NewInMemory()
		transactions = transactionstore.NewInMemory()
		clients = clientstore.NewInMemory()
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		cache := statscache.NewRedis(redisClient.Client, cfg.Redis.StatsTTL)
		ledgerOpts = append(ledgerOpts, ledgerservice.WithStatsCache(cache))
	}

	var auditPublisher audit.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		auditPublisher, err = auditpublisher.NewKafka(cfg.Kafka.Brokers, cfg.Kafka.Topic,
			auditpublisher.WithLogger(log),
		)
		if err != nil {
			log.Error("kafka connection failed", "error", err)
			os.Exit(1)
		}
		defer auditPublisher.Close()
	}

	ledgerOpts = append(ledgerOpts,
		ledgerservice.WithMetrics(ledgermetrics.New()),
		ledgerservice.WithLogger(log),
	)
	clientOpts := []clientservice.Option{
		clientservice.WithMetrics(clientmetrics.New()),
		clientservice.WithLogger(log),
	}
	if auditPublisher != nil {
		ledgerOpts = append(ledgerOpts, ledgerservice.WithAuditPublisher(auditPublisher))
		clientOpts = append(clientOpts, clientservice.WithAuditPublisher(auditPublisher))
	}

	engine, err := ledgerservice.New(agencies, users, contracts, transactions, ledgerOpts...)
	if err != nil {
		log.Error("ledger service init failed", "error", err)
		os.Exit(1)
	}
	onboarding, err := clientservice.New(clients, agencies, users, clientOpts...)
	if err != nil {
		log.Error("client service init failed", "error", err)
		os.Exit(1)
	}

	tokens := jwt.NewService(cfg.Server.JWTSigningKey, "ledger", "ledger-api")

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RequestTime)
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestLogger(log))
	router.Use(chimiddleware.Timeout(30 * time.Second))
	router.Use(chimiddleware.AllowContentType("application/json"))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Method(http.MethodGet, "/metrics", metrics.Handler())

	router.Group(func(r chi.Router) {
		if cfg.Server.AuthRequired {
			r.Use(middleware.RequireAuth(tokens, log))
		}
		ledgerhandler.New(engine, log).Register(r)
		clienthandler.New(onboarding, log).Register(r)
	})

	srv := httpserver.New(cfg.Server.Addr, router)

	go func() {
		log.Info("starting ledger server", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
