package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	authconfig "keygate/internal/authflow/config"
	"keygate/internal/authflow/controller"
	"keygate/internal/authflow/metrics"
	"keygate/internal/authflow/ports"
	"keygate/internal/authflow/store/lockout"
	"keygate/internal/gesture"
	"keygate/internal/platform/config"
	"keygate/internal/platform/logger"
	"keygate/internal/session"
	httptransport "keygate/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. The attempt machine lives in internal/authflow.
func main() {
	configPath := flag.String("config", "keygate.toml", "path to the TOML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.New().Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	log := logger.New()
	if cfg.Debug {
		log = logger.NewDebug()
	}

	log.Info("initializing keygate",
		"addr", cfg.Server.Addr,
		"store_backend", cfg.Store.Backend,
		"failure_threshold", cfg.Lockout.FailureThreshold,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := buildStore(ctx, cfg)
	if err != nil {
		log.Error("store init failed", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	verifier, err := buildVerifier(cfg, log)
	if err != nil {
		log.Error("verifier init failed", "error", err)
		os.Exit(1)
	}

	flowCfg := authconfig.DefaultConfig()
	flowCfg.FailureThreshold = cfg.Lockout.FailureThreshold
	if cfg.Lockout.TickInterval.Duration > 0 {
		flowCfg.TickInterval = cfg.Lockout.TickInterval.Duration
	}
	if cfg.Lockout.WrongClearDelay.Duration > 0 {
		flowCfg.WrongClearDelay = cfg.Lockout.WrongClearDelay.Duration
	}
	if cfg.Lockout.WakeInterval.Duration > 0 {
		flowCfg.WakeInterval = cfg.Lockout.WakeInterval.Duration
	}

	ctrl, err := controller.New(verifier, store,
		controller.WithConfig(flowCfg),
		controller.WithLogger(log),
		controller.WithMetrics(metrics.New()),
		controller.WithSessionCallback(&logSessionCallback{log: log}),
		controller.WithMessageSink(&logMessageSink{log: log}),
		controller.WithPowerManager(&logPowerManager{log: log}),
	)
	if err != nil {
		log.Error("controller init failed", "error", err)
		os.Exit(1)
	}

	// Resume: a lockout persisted before the last shutdown re-arms here.
	ctrl.Resume(ctx)

	tokens := session.NewIssuer(signingKey(cfg, log), "keygate", cfg.Server.SessionTokenTTL.Duration)
	handler := httptransport.New(ctrl, tokens, log)
	router := httptransport.NewRouter(handler, log)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server gracefully")

		ctrl.Pause()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// buildStore selects the lockout persistence backend.
func buildStore(ctx context.Context, cfg config.Config) (ports.LockoutStore, func(), error) {
	switch cfg.Store.Backend {
	case "sqlite":
		db, err := lockout.Open(cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		store, err := lockout.NewSQLite(ctx, db)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return store, func() { db.Close() }, nil
	default:
		return lockout.NewMemory(), func() {}, nil
	}
}

// buildVerifier constructs the bcrypt verifier from the configured credential.
// Without an enrolled credential the daemon hashes a well-known development
// pattern so the flow is exercisable out of the box.
func buildVerifier(cfg config.Config, log *slog.Logger) (*gesture.Verifier, error) {
	hash := cfg.Credential.GestureHash
	if hash == "" {
		devPattern := gesture.Pattern{0, 4, 8, 5}
		h, err := gesture.Hash(devPattern)
		if err != nil {
			return nil, err
		}
		hash = h
		log.Warn("no gesture credential configured, using development pattern",
			"pattern", devPattern.String(),
		)
	}
	return gesture.NewVerifier(hash)
}

// signingKey returns the configured JWT key, or a random per-process key with
// a loud warning. Tokens signed with a random key die with the process.
func signingKey(cfg config.Config, log *slog.Logger) string {
	if cfg.Server.JWTSigningKey != "" {
		return cfg.Server.JWTSigningKey
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		log.Error("random signing key generation failed", "error", err)
		os.Exit(1)
	}
	log.Warn("no jwt_signing_key configured, using ephemeral random key")
	return hex.EncodeToString(buf)
}
