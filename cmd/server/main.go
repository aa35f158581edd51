package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/brunotome93/white-flywire-exercise/internal/adapters/employeeapi"
	"github.com/brunotome93/white-flywire-exercise/internal/adapters/pdf"
	"github.com/brunotome93/white-flywire-exercise/internal/adapters/xlsx"
	"github.com/brunotome93/white-flywire-exercise/internal/config"
	"github.com/brunotome93/white-flywire-exercise/internal/handlers"
	"github.com/brunotome93/white-flywire-exercise/internal/logger"
	"github.com/brunotome93/white-flywire-exercise/internal/middleware"
	"github.com/brunotome93/white-flywire-exercise/internal/ports"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "employee-web:", err)
		os.Exit(1)
	}
}

func run() error {
	envErr := godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	if envErr != nil {
		log.Warnw("error loading .env file", "error", envErr)
	}

	svc := employeeapi.New(cfg.APIBaseURL, &http.Client{Timeout: cfg.APITimeout}, log.Named("employeeapi"))
	h := handlers.New(svc,
		[]ports.RosterExporter{pdf.New(), xlsx.New()},
		log.Named("handlers"),
		handlers.Options{
			RedirectDelay:      cfg.RedirectDelay,
			RateLimitPerMinute: cfg.RateLimitPerMinute,
		},
	)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(log.Named("http")))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.SecureHeaders(cfg.IsProduction(), log))
	r.Mount("/", h.Routes())

	srv := &http.Server{
		Addr:              cfg.AppAddr,
		Handler:           r,
		ReadTimeout:       cfg.AppReadTimeout,
		ReadHeaderTimeout: cfg.AppReadTimeout,
		WriteTimeout:      cfg.AppWriteTimeout,
		IdleTimeout:       cfg.AppIdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Infow("employee records web client listening",
			"addr", cfg.AppAddr,
			"api", cfg.APIBaseURL,
			"env", cfg.AppEnv,
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("graceful shutdown failed", "error", err)
		return err
	}
	return nil
}
