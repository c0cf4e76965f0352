// Package main is the entry point for the attendance-reporting MCP server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tolga/terp/internal/config"
	"github.com/tolga/terp/internal/jsonrpc"
	"github.com/tolga/terp/internal/mcpservice"
	"github.com/tolga/terp/internal/mcptransport"
	"github.com/tolga/terp/internal/repository"
)

const (
	serviceName    = "terp-mcp-reportes"
	serviceVersion = "1.0.0"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	cfg := config.Load()

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	zerolog.SetGlobalLevel(resolveLogLevel(cfg))

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Warn().Err(err).Str("timezone", cfg.Timezone).Msg("unknown timezone, falling back to UTC")
		loc = time.UTC
	}

	db, dbErr := connectDB(cfg)

	var (
		employees *repository.EmployeeRepository
		punches   *repository.PunchEventRepository
		cfgRepo   *repository.ConfigRepository
	)
	if db != nil {
		employees = repository.NewEmployeeRepository(db)
		punches = repository.NewPunchEventRepository(db)
		cfgRepo = repository.NewConfigRepository(db)
	}

	svc := mcpservice.New(employees, punches, cfgRepo, loc)
	svc.Unavailable = dbErr

	registry := mcpservice.Register(svc)
	dispatcher := jsonrpc.NewDispatcher(registry, jsonrpc.ServerInfo{Name: serviceName, Version: serviceVersion})

	if cfg.HTTPMode() {
		runHTTP(cfg, dispatcher, db)
		return
	}
	runStdio(dispatcher, db)
}

// resolveLogLevel parses cfg.LogLevel, falling back to info on a bad
// value. In production an unrecognized or overly verbose LOG_LEVEL is
// floored at info, so a misconfigured debug/trace level can't flood
// production logs.
func resolveLogLevel(cfg *config.Config) zerolog.Level {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("log_level", cfg.LogLevel).Msg("unrecognized log level, defaulting to info")
		return zerolog.InfoLevel
	}
	if cfg.IsProduction() && level < zerolog.InfoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// connectDB tries DATABASE_URL_ASYNC and falls back to
// DATABASE_URL_FALLBACK. In HTTP mode it never fails the process: per
// spec.md §4.9, the server starts anyway and surfaces DB_UNAVAILABLE
// per request. In stdio mode a missing DB is still non-fatal, since a
// single misconfigured client shouldn't crash the process.
func connectDB(cfg *config.Config) (*repository.DB, error) {
	db, err := repository.NewDB(cfg.DatabaseURLAsync)
	if err == nil {
		return db, nil
	}
	log.Warn().Err(err).Msg("primary database connection failed")

	if cfg.DatabaseURLFallback == "" {
		return nil, err
	}

	db, fallbackErr := repository.NewDB(cfg.DatabaseURLFallback)
	if fallbackErr == nil {
		return db, nil
	}
	log.Warn().Err(fallbackErr).Msg("fallback database connection failed")
	return nil, fallbackErr
}

func runHTTP(cfg *config.Config, dispatcher *jsonrpc.Dispatcher, db *repository.DB) {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	var health mcptransport.HealthChecker
	if db != nil {
		health = db.Health
	}

	sse := mcptransport.NewSSE(dispatcher)
	mcp := mcptransport.NewMCP(dispatcher, serviceName, serviceVersion, health)
	mcptransport.Mount(r, sse, mcp)

	srv := mcptransport.NewServer(":"+cfg.Port, r)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting MCP HTTP server")
		if err := srv.ListenAndServe(); err != nil {
			log.Error().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	closeDB(db)
	log.Info().Msg("server exited properly")
}

func runStdio(dispatcher *jsonrpc.Dispatcher, db *repository.DB) {
	ctx, cancel := context.WithCancel(context.Background())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		cancel()
	}()

	if err := mcptransport.ServeStdio(ctx, dispatcher, os.Stdin, os.Stdout); err != nil {
		log.Error().Err(err).Msg("stdio transport stopped")
	}
	closeDB(db)
}

func closeDB(db *repository.DB) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close database")
	}
}
