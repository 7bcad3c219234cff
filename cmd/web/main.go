package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"finitefield.org/stays-web/internal/catalog"
	"finitefield.org/stays-web/internal/config"
	"finitefield.org/stays-web/internal/handlers"
	"finitefield.org/stays-web/internal/kvstore"
	mw "finitefield.org/stays-web/internal/middleware"
	"finitefield.org/stays-web/internal/observability"
	"finitefield.org/stays-web/internal/storefront"
)

func main() {
	var envFile string
	flag.StringVar(&envFile, "env", ".env", "dotenv file layered under the process environment")
	flag.Parse()

	cfg, err := config.Load(config.WithEnvFile(envFile))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := observability.NewLogger(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Session.Ephemeral {
		logger.Warn("session keys not configured; using ephemeral keys")
	}

	cat, err := loadCatalog(cfg.Web.CatalogFile)
	if err != nil {
		return err
	}

	resolve, closeStore, err := openStore(ctx, cfg.Store, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	sessions, err := mw.NewSessions(mw.SessionConfig{
		HashKey:  cfg.Session.HashKey,
		BlockKey: cfg.Session.BlockKey,
		Secure:   cfg.Session.Secure,
	})
	if err != nil {
		return fmt.Errorf("sessions: %w", err)
	}

	a, err := newApp(appConfig{
		TemplatesDir: cfg.Web.TemplatesDir,
		PublicDir:    cfg.Web.PublicDir,
		Dev:          cfg.Web.Dev,
		Analytics:    handlers.AnalyticsFromConfig(cfg.Analytics),
	}, storefront.New(cat, storefront.Options{
		Brand:         cfg.Web.Brand,
		LoadMoreDelay: cfg.Web.LoadMoreDelay,
	}, logger), sessions, resolve, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           a.routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("web listening",
			zap.String("addr", cfg.Server.Addr),
			zap.Bool("dev", cfg.Web.Dev),
			zap.String("store", cfg.Store.Backend),
			zap.Int("properties", cat.Len()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.LoadFile(path)
}

// openStore selects the backend holding visitor favorites and preferences.
func openStore(ctx context.Context, cfg config.StoreConfig, logger *zap.Logger) (mw.StoreResolver, func(), error) {
	switch cfg.Backend {
	case config.StoreMemory:
		return mw.SharedStore(kvstore.NewMemory(), cfg.Prefix), func() {}, nil
	case config.StoreRedis:
		client := kvstore.NewRedisClient(kvstore.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		store := kvstore.NewRedis(client, cfg.TTL)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := store.Ping(pingCtx); err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("redis %s: %w", cfg.Redis.Addr, err)
		}
		logger.Info("redis store connected", zap.String("addr", cfg.Redis.Addr))
		return mw.SharedStore(store, cfg.Prefix), func() { _ = store.Close() }, nil
	default:
		return mw.CookieStore(), func() {}, nil
	}
}
