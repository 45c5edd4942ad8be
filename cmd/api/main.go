package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/angelmondragon/spicy-pepper-shop/api/routes"
	"github.com/angelmondragon/spicy-pepper-shop/internal/accounts"
	"github.com/angelmondragon/spicy-pepper-shop/internal/admin"
	"github.com/angelmondragon/spicy-pepper-shop/internal/orders"
	"github.com/angelmondragon/spicy-pepper-shop/internal/products"
	"github.com/angelmondragon/spicy-pepper-shop/internal/store"
	"github.com/angelmondragon/spicy-pepper-shop/pkg/config"
	"github.com/angelmondragon/spicy-pepper-shop/pkg/instance"
	"github.com/angelmondragon/spicy-pepper-shop/pkg/logger"
	"github.com/angelmondragon/spicy-pepper-shop/pkg/metrics"
)

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

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	shopMetrics := metrics.NewShopMetrics(reg)

	st := store.New()
	orderService, err := orders.NewService(orders.ServiceParams{
		Store:    st,
		Logger:   logg,
		Recorder: shopMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}
	adminService := admin.NewService(admin.ServiceParams{
		Store:    st,
		Admin:    admin.Credentials{Name: cfg.Admin.Name, Password: cfg.Admin.Password},
		Logger:   logg,
		Recorder: shopMetrics,
	})

	addr := cfg.App.Addr()
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": instance.GetID(),
	})

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			metrics.NewHTTPMetrics(reg),
			reg,
			accounts.NewService(st, logg),
			products.NewService(st, logg),
			orderService,
			adminService,
		),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logg.Info(ctx, "starting api server")
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
		return
	case <-runCtx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	var shutdownErr error
	shutdownErr = multierr.Append(shutdownErr, server.Shutdown(shutdownCtx))
	if err := <-serveErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		shutdownErr = multierr.Append(shutdownErr, err)
	}
	if shutdownErr != nil {
		logg.Error(ctx, "api server shutdown failed", shutdownErr)
		os.Exit(1)
	}
	logg.Info(ctx, "api server shutting down gracefully")
}
