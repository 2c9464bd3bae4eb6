package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"ledgerguard/internal/authorization"
	authzhandler "ledgerguard/internal/authorization/handler"
	authzmetrics "ledgerguard/internal/authorization/metrics"
	hierarchyhandler "ledgerguard/internal/hierarchy/handler"
	hierarchymetrics "ledgerguard/internal/hierarchy/metrics"
	hierarchyservice "ledgerguard/internal/hierarchy/service"
	jwttoken "ledgerguard/internal/jwt_token"
	piimetrics "ledgerguard/internal/pii/metrics"
	piiservice "ledgerguard/internal/pii/service"
	"ledgerguard/internal/pii/sweeper"
	"ledgerguard/internal/platform/config"
	"ledgerguard/internal/platform/httpserver"
	"ledgerguard/internal/platform/kafka"
	"ledgerguard/internal/platform/logger"
	httptransport "ledgerguard/internal/transport/http"
	verificationhandler "ledgerguard/internal/verification/handler"
	verificationmetrics "ledgerguard/internal/verification/metrics"
	verificationservice "ledgerguard/internal/verification/service"
	dErrors "ledgerguard/pkg/domain-errors"
	"ledgerguard/pkg/platform/audit/publishers/compliance"
	"ledgerguard/pkg/platform/audit/worker"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	infra, err := openInfra(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer infra.Close()

	descCache, closeCache, err := descendantCache(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeCache()

	piiCipher, err := newCipher(cfg.PII, cfg.IsProduction())
	if err != nil {
		return err
	}

	publisher := compliance.New(infra.audit,
		compliance.WithLogger(log),
		compliance.WithMetrics(compliance.NewMetrics()),
	)

	hierarchyOpts := []hierarchyservice.Option{
		hierarchyservice.WithLogger(log),
		hierarchyservice.WithMetrics(hierarchymetrics.New()),
		hierarchyservice.WithAuditPublisher(publisher),
		hierarchyservice.WithTx(infra.tx),
		hierarchyservice.WithMaxDepth(cfg.Hierarchy.MaxDepth),
	}
	if descCache != nil {
		hierarchyOpts = append(hierarchyOpts, hierarchyservice.WithCache(descCache))
	}
	hierarchySvc, err := hierarchyservice.New(infra.hierarchy, hierarchyOpts...)
	if err != nil {
		return err
	}

	authzSvc, err := authorization.New(hierarchySvc,
		authorization.WithLogger(log),
		authorization.WithMetrics(authzmetrics.New()),
		authorization.WithAuditPublisher(publisher),
	)
	if err != nil {
		return err
	}

	vault, err := piiservice.New(infra.pii, piiCipher,
		piiservice.WithLogger(log),
		piiservice.WithMetrics(piimetrics.New()),
		piiservice.WithAuditPublisher(publisher),
		piiservice.WithTx(infra.tx),
		piiservice.WithDefaultTTL(cfg.PII.DefaultTTL),
	)
	if err != nil {
		return err
	}

	verificationSvc, err := verificationservice.New(infra.records, authzSvc, infra.hierarchy, vault,
		verificationservice.WithLogger(log),
		verificationservice.WithMetrics(verificationmetrics.New()),
		verificationservice.WithAuditPublisher(publisher),
		verificationservice.WithTx(infra.tx),
	)
	if err != nil {
		return err
	}

	if err := bootstrapRoot(ctx, hierarchySvc, cfg.Hierarchy.BootstrapRootLogin, log); err != nil {
		return err
	}

	purge, err := sweeper.New(vault, cfg.PII.PurgeSchedule, sweeper.WithLogger(log))
	if err != nil {
		return err
	}

	tokens := jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.JWTIssuer, cfg.Auth.JWTAudience)
	router := httptransport.NewRouter(httptransport.RouterConfig{
		Tokens: tokens,
		Logger: log,
		Handlers: []httptransport.Registrar{
			authzhandler.New(authzSvc, log),
			hierarchyhandler.New(hierarchySvc, authzSvc, log),
			verificationhandler.New(verificationSvc, hierarchySvc, log),
		},
	})
	srv := httpserver.New(cfg.Server, router)

	relay, closeRelay, err := outboxRelay(ctx, cfg, infra, log)
	if err != nil {
		return err
	}
	defer closeRelay()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.InfoContext(gctx, "starting ledgerguard", "addr", cfg.Server.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		return purge.Run(gctx)
	})

	if relay != nil {
		g.Go(func() error {
			if err := relay.Run(gctx); !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	return g.Wait()
}

// outboxRelay returns nil when either Postgres or Kafka is not configured;
// audit events then stay in the store they were appended to.
func outboxRelay(ctx context.Context, cfg config.Config, infra *infra, log *slog.Logger) (*worker.Worker, func(), error) {
	if infra.outbox == nil || len(cfg.Kafka.Brokers) == 0 {
		log.InfoContext(ctx, "audit relay disabled")
		return nil, func() {}, nil
	}
	producer, err := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.AuditTopic)
	if err != nil {
		return nil, nil, err
	}
	if err := producer.EnsureTopic(ctx, cfg.Kafka.Partitions, 1); err != nil {
		producer.Close()
		return nil, nil, err
	}
	relay := worker.NewWorker(infra.outbox, producer, infra.tx,
		worker.WithLogger(log),
		worker.WithInterval(cfg.Kafka.RelayInterval),
		worker.WithBatchSize(cfg.Kafka.RelayBatch),
	)
	log.InfoContext(ctx, "audit relay enabled", "topic", cfg.Kafka.AuditTopic)
	return relay, producer.Close, nil
}

// bootstrapRoot creates the configured root once. Later starts find it by login.
func bootstrapRoot(ctx context.Context, svc *hierarchyservice.Service, login string, log *slog.Logger) error {
	if login == "" {
		return nil
	}
	actor, err := svc.ResolveActorByLogin(ctx, login)
	switch {
	case err == nil:
		log.InfoContext(ctx, "bootstrap root present", "node_id", actor.Node().ID)
		return nil
	case !dErrors.HasCode(err, dErrors.CodeNodeNotFound):
		return err
	}
	root, err := svc.RegisterRoot(ctx, login)
	if err != nil {
		return err
	}
	log.InfoContext(ctx, "bootstrap root created", "node_id", root.ID, "tenant_id", root.TenantID)
	return nil
}
