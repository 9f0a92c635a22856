package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/angelmondragon/storefront/api/routes"
	"github.com/angelmondragon/storefront/internal/checkout"
	"github.com/angelmondragon/storefront/internal/listings"
	"github.com/angelmondragon/storefront/internal/promo"
	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/db"
	"github.com/angelmondragon/storefront/pkg/instance"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
	"github.com/angelmondragon/storefront/pkg/migrate"
	"github.com/angelmondragon/storefront/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	storefrontMetrics := metrics.NewStorefrontMetrics(registry)

	var dbClient *db.Client
	if cfg.Catalog.Source == config.CatalogSourceDB {
		dbClient, err = db.New(ctx, cfg.DB, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap database", err)
			os.Exit(1)
		}
		defer func() {
			if err := dbClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing database", err)
			}
		}()

		if err := migrate.MaybeRun(ctx, cfg, logg, dbClient); err != nil {
			logg.Error(ctx, "failed to run migrations", err)
			os.Exit(1)
		}
	}

	var redisClient *redis.Client
	if cfg.Session.Store == config.SessionStoreRedis || cfg.Redis.URL != "" || cfg.Redis.Address != "" {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	}

	source, err := catalogSource(cfg, dbClient)
	if err != nil {
		logg.Error(ctx, "failed to build catalog source", err)
		os.Exit(1)
	}

	promoTable, err := promoRules(cfg)
	if err != nil {
		logg.Error(ctx, "failed to load promo rules", err)
		os.Exit(1)
	}

	deliveryFee, err := cfg.Cart.DeliveryFeeAmount()
	if err != nil {
		logg.Error(ctx, "invalid delivery fee", err)
		os.Exit(1)
	}

	sessionStore, err := sessionStore(cfg, redisClient)
	if err != nil {
		logg.Error(ctx, "failed to build session store", err)
		os.Exit(1)
	}

	engine := listings.NewEngine(cfg.Catalog.PageSize)
	listingService, err := listings.NewService(source, engine, storefrontMetrics, logg)
	if err != nil {
		logg.Error(ctx, "failed to create listings service", err)
		os.Exit(1)
	}

	checkoutService, err := checkout.NewService(sessionStore, checkout.Factory{
		DeliveryFee: deliveryFee,
		PromoTable:  promoTable,
		Engine:      engine,
	}, listingService, storefrontMetrics, logg)
	if err != nil {
		logg.Error(ctx, "failed to create checkout service", err)
		os.Exit(1)
	}

	deps := routes.Deps{
		Config:      cfg,
		Logger:      logg,
		Listings:    listingService,
		Checkout:    checkoutService,
		HTTPMetrics: metrics.NewHTTPMetrics(registry),
		Gatherer:    registry,
	}
	if dbClient != nil {
		deps.DB = dbClient
	}
	if redisClient != nil {
		deps.Redis = redisClient
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	logCtx := logg.WithFields(ctx, map[string]any{
		"env":            cfg.App.Env,
		"addr":           addr,
		"instance":       instance.GetID(),
		"catalog_source": cfg.Catalog.Source,
		"session_store":  cfg.Session.Store,
		"promo_rules":    promoTable.Len(),
	})
	logg.Info(logCtx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logg.Error(logCtx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(logCtx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(logCtx, "graceful shutdown failed", err)
	}
	logg.Info(logCtx, "api server stopped")
}

func catalogSource(cfg *config.Config, dbClient *db.Client) (listings.Source, error) {
	if cfg.Catalog.Source == config.CatalogSourceDB {
		return listings.NewRepository(dbClient.DB()), nil
	}
	return listings.NewStaticSource(listings.ReferenceCatalog())
}

func promoRules(cfg *config.Config) (*promo.Table, error) {
	if cfg.Promo.RulesFile != "" {
		return promo.LoadTable(cfg.Promo.RulesFile)
	}
	return promo.ReferenceTable(), nil
}

func sessionStore(cfg *config.Config, redisClient *redis.Client) (checkout.SessionStore, error) {
	if cfg.Session.Store == config.SessionStoreRedis {
		return checkout.NewRedisSessionStore(redisClient, cfg.Session.TTL)
	}
	return checkout.NewMemorySessionStore(), nil
}
