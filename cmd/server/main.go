// Package main runs the postline HTTP server.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	app "github.com/chirper-labs/postline/internal/app"
	"github.com/chirper-labs/postline/internal/app/httpapi"
	"github.com/chirper-labs/postline/internal/app/storage/postgres"
	"github.com/chirper-labs/postline/internal/config"
	"github.com/chirper-labs/postline/internal/logging"
	"github.com/chirper-labs/postline/internal/metrics"
	"github.com/chirper-labs/postline/internal/middleware"
	"github.com/chirper-labs/postline/internal/platform/migrations"
)

func main() {
	configPath := flag.String("config", "", "Path to an optional YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.NewDefault("server").Fatalf("load config: %v", err)
	}

	log := logging.New("server", cfg.LogLevel)

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("ping database: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migrations.Apply(ctx, db); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	store := postgres.New(db)
	application, err := app.New(app.Stores{Accounts: store, Messages: store}, log)
	if err != nil {
		log.Fatalf("build application: %v", err)
	}

	m := metrics.New(cfg.MetricsNamespace)
	router := httpapi.NewHandler(application)
	router.Handle("/metrics", m.Handler()).Methods(http.MethodGet)
	router.Use(
		middleware.LoggingMiddleware(log.Named("http")),
		middleware.MetricsMiddleware("postline", m),
		middleware.CORSMiddleware(cfg.AllowedOrigins),
	)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("listening on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	}()

	<-ctx.Done()
	log.Infof("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("shutdown: %v", err)
	}
}
