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

	"github.com/vitrineshop/vitrine-backend/api/controllers"
	"github.com/vitrineshop/vitrine-backend/api/routes"
	authsvc "github.com/vitrineshop/vitrine-backend/internal/auth"
	"github.com/vitrineshop/vitrine-backend/internal/catalog"
	"github.com/vitrineshop/vitrine-backend/internal/categories"
	"github.com/vitrineshop/vitrine-backend/internal/clients"
	"github.com/vitrineshop/vitrine-backend/internal/paymentmethods"
	"github.com/vitrineshop/vitrine-backend/internal/products"
	"github.com/vitrineshop/vitrine-backend/internal/quotes"
	"github.com/vitrineshop/vitrine-backend/internal/settings"
	"github.com/vitrineshop/vitrine-backend/internal/users"
	"github.com/vitrineshop/vitrine-backend/pkg/config"
	"github.com/vitrineshop/vitrine-backend/pkg/db"
	"github.com/vitrineshop/vitrine-backend/pkg/logger"
	"github.com/vitrineshop/vitrine-backend/pkg/metrics"
	"github.com/vitrineshop/vitrine-backend/pkg/migrate"
	"github.com/vitrineshop/vitrine-backend/pkg/redis"
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
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	services, err := buildServices(cfg, logg, dbClient, redisClient)
	if err != nil {
		logg.Error(context.Background(), "failed to build services", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	handler := routes.NewRouter(routes.Params{
		Config:   cfg,
		Logger:   logg,
		Services: services,
		Readiness: map[string]controllers.Pinger{
			"database": dbClient,
			"redis":    redisClient,
		},
		MetricsReg:  registry,
		HTTPMetrics: httpMetrics,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stop:
		logg.Info(ctx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
		logg.Info(ctx, "api server stopped")
	}
}

func buildServices(cfg *config.Config, logg *logger.Logger, dbClient *db.Client, redisClient *redis.Client) (routes.Services, error) {
	gormDB := dbClient.DB()

	catalogService, err := catalog.NewService(catalog.NewRepository(gormDB), cfg.Catalog.PageSize)
	if err != nil {
		return routes.Services{}, err
	}

	clientsRepo := clients.NewRepository(gormDB)
	clientsService, err := clients.NewService(clientsRepo)
	if err != nil {
		return routes.Services{}, err
	}

	quotesService, err := quotes.NewService(quotes.NewRepository(gormDB), dbClient, clientsRepo)
	if err != nil {
		return routes.Services{}, err
	}

	productsService, err := products.NewService(products.NewRepository(gormDB), dbClient)
	if err != nil {
		return routes.Services{}, err
	}

	categoriesService, err := categories.NewService(categories.NewRepository(gormDB))
	if err != nil {
		return routes.Services{}, err
	}

	paymentMethodsService, err := paymentmethods.NewService(paymentmethods.NewRepository(gormDB))
	if err != nil {
		return routes.Services{}, err
	}

	settingsService, err := settings.NewService(settings.ServiceParams{
		Repo:     settings.NewRepository(gormDB),
		DBClient: dbClient,
		Cache:    redisClient,
		CacheTTL: cfg.Settings.CacheTTL,
		Logger:   logg,
	})
	if err != nil {
		return routes.Services{}, err
	}

	usersRepo := users.NewRepository(gormDB)
	usersService, err := users.NewService(usersRepo, cfg.Password)
	if err != nil {
		return routes.Services{}, err
	}

	authService, err := authsvc.NewService(authsvc.ServiceParams{
		UserRepo:  usersRepo,
		JWTConfig: cfg.JWT,
	})
	if err != nil {
		return routes.Services{}, err
	}

	return routes.Services{
		Catalog:        catalogService,
		Quotes:         quotesService,
		Settings:       settingsService,
		PaymentMethods: paymentMethodsService,
		Auth:           authService,
		Products:       productsService,
		Categories:     categoriesService,
		Clients:        clientsService,
		Users:          usersService,
	}, nil
}
