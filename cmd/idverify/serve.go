package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"idverify/internal/evidence/cache"
	"idverify/internal/evidence/providers"
	"idverify/internal/evidence/providers/kora"
	"idverify/internal/evidence/providers/persona"
	"idverify/internal/identity"
	jwttoken "idverify/internal/jwt_token"
	"idverify/internal/platform/config"
	"idverify/internal/platform/httpserver"
	"idverify/internal/platform/metrics"
	"idverify/internal/platform/middleware"
	"idverify/internal/platform/postgres"
	platformredis "idverify/internal/platform/redis"
	"idverify/internal/verification/adapters"
	"idverify/internal/verification/handler"
	vmetrics "idverify/internal/verification/metrics"
	"idverify/internal/verification/ports"
	"idverify/internal/verification/service"
	"idverify/internal/verification/store/memory"
	pgstore "idverify/internal/verification/store/postgres"
	"idverify/pkg/platform/audit"
	"idverify/pkg/platform/audit/publisher"
	auditmemory "idverify/pkg/platform/audit/store/memory"
	auditpg "idverify/pkg/platform/audit/store/postgres"
	"idverify/pkg/platform/circuit"
	"idverify/pkg/platform/httputil"
	adminmw "idverify/pkg/platform/middleware/admin"
	authmw "idverify/pkg/platform/middleware/auth"
	"idverify/pkg/platform/middleware/metadata"
	"idverify/pkg/platform/middleware/request"
	"idverify/pkg/platform/middleware/requesttime"
)

const auditBufferSize = 256

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the verification API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := buildApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()

	addr := serveAddr
	if addr == "" {
		addr = cfg.Server.Addr
	}
	srv := httpserver.New(addr, app.router)

	errCh := make(chan error, 1)
	go func() {
		log.InfoContext(ctx, "starting idverify", "addr", addr, "provider", cfg.Provider.Active)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return eris.Wrap(err, "server listen")
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return eris.Wrap(err, "graceful shutdown")
	}
	return nil
}

// app holds the wired router and the resources it owns.
type app struct {
	router  http.Handler
	closers []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// healthCheck reports whether a backing resource is reachable.
type healthCheck func(ctx context.Context) error

func buildApp(ctx context.Context, cfg *config.Config, log *slog.Logger) (*app, error) {
	a := &app{}
	checks := map[string]healthCheck{}

	registry := providers.NewProviderRegistry()
	if err := registry.Register(persona.New(persona.Config{
		BaseURL: cfg.Persona.BaseURL,
		APIKey:  cfg.Persona.APIKey,
		Version: cfg.Persona.Version,
		Timeout: cfg.Persona.Timeout,
	})); err != nil {
		return nil, err
	}
	if err := registry.Register(kora.New(kora.Config{
		BaseURL:   cfg.Kora.BaseURL,
		SecretKey: cfg.Kora.SecretKey,
		Timeout:   cfg.Kora.Timeout,
	})); err != nil {
		return nil, err
	}
	active, err := registry.Get(cfg.Provider.Active)
	if err != nil {
		return nil, eris.Wrapf(err, "select provider %q", cfg.Provider.Active)
	}

	lookupCache, err := buildCache(ctx, cfg.Redis, a, checks)
	if err != nil {
		a.Close()
		return nil, err
	}
	guarded := providers.NewGuardedProvider(active, circuit.New(active.ID()), log)
	provider := cache.NewCachingProvider(guarded, lookupCache, cfg.Redis.CacheTTL, log, cache.NewMetrics())

	store, auditStore, err := buildStores(ctx, cfg.Database, log, a, checks)
	if err != nil {
		a.Close()
		return nil, err
	}

	auditor := publisher.NewPublisher(auditStore,
		publisher.WithAsyncBuffer(auditBufferSize),
		publisher.WithLogger(log),
		publisher.WithMetrics(publisher.NewMetrics()),
	)
	a.closers = append(a.closers, auditor.Close)

	scorer := identity.NewScorer(cfg.Thresholds.Scorer())

	svc, err := service.New(store, provider, scorer,
		service.WithLogger(log),
		service.WithNotifier(adapters.NewLogNotifier(log)),
		service.WithAuditor(auditor),
		service.WithMetrics(vmetrics.New()),
		service.WithLookupTimeout(cfg.Provider.Timeout),
		service.WithCompanyThresholds(service.CompanyThresholds{
			AutoVerify:   cfg.Thresholds.CompanyAutoVerify,
			ManualReview: cfg.Thresholds.CompanyManualReview,
		}),
	)
	if err != nil {
		a.Close()
		return nil, eris.Wrap(err, "build verification service")
	}

	jwt := jwttoken.NewJWTService(cfg.Server.JWTSigningKey, cfg.Server.JWTIssuer, cfg.Server.JWTAudience)
	a.router = newRouter(handler.New(svc, scorer, log), jwttoken.NewJWTServiceAdapter(jwt), log, checks)
	return a, nil
}

func buildCache(ctx context.Context, cfg config.RedisConfig, a *app, checks map[string]healthCheck) (cache.Cache, error) {
	client, err := platformredis.New(ctx, cfg)
	if err != nil {
		return nil, eris.Wrap(err, "connect redis")
	}
	if client == nil {
		return cache.NewInMemoryCache(time.Now), nil
	}
	a.closers = append(a.closers, func() { _ = client.Close() })
	checks["redis"] = client.Health
	return cache.NewRedisCache(client), nil
}

func buildStores(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger, a *app, checks map[string]healthCheck) (ports.Store, audit.Store, error) {
	if cfg.URL == "" {
		log.Warn("database.url not set; profiles and audit events are kept in memory")
		return memory.New(), auditmemory.NewInMemoryStore(), nil
	}
	pool, err := postgres.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	a.closers = append(a.closers, pool.Close)
	checks["postgres"] = pool.Ping
	if err := postgres.Migrate(ctx, pool, log); err != nil {
		return nil, nil, err
	}
	return pgstore.New(pool), auditpg.New(pool), nil
}

func newRouter(h *handler.Handler, validator authmw.JWTValidator, log *slog.Logger, checks map[string]healthCheck) http.Handler {
	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(middleware.Recover(log))
	r.Use(middleware.Logger(log, metrics.New()))

	r.Get("/healthz", healthHandler(checks))
	r.Handle("/metrics", metrics.Handler())

	r.Group(func(r chi.Router) {
		r.Use(authmw.RequireAuth(validator, log))
		h.Register(r)
		r.Group(func(r chi.Router) {
			r.Use(adminmw.RequireRole(adminmw.RoleAdmin, log))
			h.RegisterAdmin(r)
		})
	})
	return r
}

func healthHandler(checks map[string]healthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		results := map[string]string{}
		for name, check := range checks {
			if err := check(ctx); err != nil {
				status = http.StatusServiceUnavailable
				results[name] = "unavailable"
				continue
			}
			results[name] = "ok"
		}
		overall := "ok"
		if status != http.StatusOK {
			overall = "degraded"
		}
		httputil.WriteJSON(w, status, map[string]any{"status": overall, "checks": results})
	}
}
