package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"

	"diamondband.live/site/cmd/web/auth"
	"diamondband.live/site/cmd/web/internal/carouselhub"
	"diamondband.live/site/cmd/web/internal/web"
	"diamondband.live/site/internal/application"
	"diamondband.live/site/internal/catalog"
	"diamondband.live/site/internal/config"
	"diamondband.live/site/internal/db"
	"diamondband.live/site/internal/inbox"
	"diamondband.live/site/internal/tracing"
	"diamondband.live/site/pkg/carousel"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err == nil {
		slog.Info("Loaded .env")
	}

	slog.Info("Starting web service")

	conf, err := config.LoadConfig(ctx)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	shutdownTracing, err := tracing.Setup(ctx, conf.Tracing)
	if err != nil {
		slog.Error("failed to set up tracing", "error", err)
		os.Exit(1)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			slog.Warn("failed to flush traces", "error", err)
		}
	}()

	pool, err := application.OpenDBPoolWithRetry(ctx, *conf)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	dbc, err := db.NewDatabaseConnection(ctx, pool)
	if err != nil {
		slog.Error("failed to create database connection", "error", err)
		os.Exit(1)
	}
	defer dbc.Close()

	sealer, err := application.InitSealer(*conf)
	if err != nil {
		slog.Error("failed to initialize sealer", "error", err)
		os.Exit(1)
	}

	queries := dbc.Queries(ctx)

	settings, err := db.NewSiteSettingsCache(ctx, queries)
	if err != nil {
		slog.Error("failed to load site settings", "error", err)
		os.Exit(1)
	}
	listenConf, err := pgx.ParseConfig(conf.DatabaseDSN)
	if err != nil {
		slog.Error("failed to parse database dsn", "error", err)
		os.Exit(1)
	}
	go settings.Listen(ctx, listenConf)

	e, err := web.NewWebserver(ctx, web.Deps{
		Sessions:   auth.NewSessionManager(conf.SessionSecret),
		Settings:   settings,
		Catalog:    catalog.New(queries),
		Inbox:      inbox.New(queries, sealer),
		Admin:      inbox.NewAdmin(queries, sealer),
		AdminUsers: queries,
		Carousels:  carouselhub.NewHub(carousel.WithInterval(conf.CarouselInterval)),
		MediaDir:   conf.MediaDir,
	})
	if err != nil {
		slog.Error("failed to create webserver", "error", err)
		os.Exit(1)
	}

	addr := ":" + strconv.Itoa(conf.WebServerPort)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)
	}()

	slog.Info("Listening", "addr", addr)
	if err := e.Start(addr); err != nil {
		if errors.Is(err, http.ErrServerClosed) || ctx.Err() != nil {
			return
		}
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
