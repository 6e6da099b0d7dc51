package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/TalhaZaheer1/SmartBridge-Backend/api/routes"
	authsvc "github.com/TalhaZaheer1/SmartBridge-Backend/internal/auth"
	exportsvc "github.com/TalhaZaheer1/SmartBridge-Backend/internal/export"
	ordersvc "github.com/TalhaZaheer1/SmartBridge-Backend/internal/orders"
	paymentsvc "github.com/TalhaZaheer1/SmartBridge-Backend/internal/payments"
	productsvc "github.com/TalhaZaheer1/SmartBridge-Backend/internal/products"
	rechargesvc "github.com/TalhaZaheer1/SmartBridge-Backend/internal/recharges"
	usersvc "github.com/TalhaZaheer1/SmartBridge-Backend/internal/users"
	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/config"
	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/db"
	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/logger"
	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/metrics"
	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/migrate"
	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/notify"
	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/redis"
	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/storage/local"
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

	var redisClient *redis.Client
	if cfg.Redis.URL != "" || cfg.Redis.Address != "" {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "redis not configured, auth rate limiting disabled")
	}

	uploads, err := local.NewClient(cfg.Uploads)
	if err != nil {
		logg.Error(context.Background(), "failed to prepare upload storage", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	workflow := metrics.NewWorkflowMetrics(registry)

	var sender notify.Sender
	if cfg.Mail.SMTPHost != "" {
		smtpSender, err := notify.NewSMTPSender(cfg.Mail)
		if err != nil {
			logg.Error(context.Background(), "failed to configure mail sender", err)
			os.Exit(1)
		}
		sender = smtpSender
	} else {
		logg.Warn(context.Background(), "smtp not configured, notifications are logged only")
		sender = notify.NewLogSender(logg)
	}

	usersRepo := usersvc.NewRepository(dbClient.DB())
	productsRepo := productsvc.NewRepository(dbClient.DB())
	ordersRepo := ordersvc.NewRepository(dbClient.DB())
	rechargesRepo := rechargesvc.NewRepository(dbClient.DB())
	paymentsRepo := paymentsvc.NewRepository(dbClient.DB())
	authRepo := authsvc.NewRepository(dbClient.DB())

	usersService, err := usersvc.NewService(usersRepo, dbClient, rechargesRepo, uploads, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create user service", err)
		os.Exit(1)
	}

	productsService, err := productsvc.NewService(productsRepo, uploads, workflow)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	ordersService, err := ordersvc.NewService(ordersRepo, usersService, productsService, workflow)
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	rechargesService, err := rechargesvc.NewService(rechargesRepo, dbClient, usersService, workflow)
	if err != nil {
		logg.Error(context.Background(), "failed to create recharge service", err)
		os.Exit(1)
	}

	paymentsService, err := paymentsvc.NewService(paymentsRepo, uploads)
	if err != nil {
		logg.Error(context.Background(), "failed to create payment service", err)
		os.Exit(1)
	}

	authService, err := authsvc.NewService(authRepo, usersRepo, sender, cfg.JWT, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	dashboardService, err := usersvc.NewDashboardService(usersRepo, ordersRepo, productsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create dashboard service", err)
		os.Exit(1)
	}

	exportService, err := exportsvc.NewService(ordersService)
	if err != nil {
		logg.Error(context.Background(), "failed to create export service", err)
		os.Exit(1)
	}

	router := routes.NewRouter(routes.Deps{
		Config:     cfg,
		Logger:     logg,
		Database:   dbClient,
		Redis:      redisClient,
		Uploads:    uploads,
		Registry:   registry,
		UserLoader: usersRepo,
		Auth:       authService,
		Users:      usersService,
		Dashboard:  dashboardService,
		Products:   productsService,
		Orders:     ordersService,
		Recharges:  rechargesService,
		Payments:   paymentsService,
		Export:     exportService,
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
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}
