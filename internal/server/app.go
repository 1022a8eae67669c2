// Package server initializes and runs the credential service.
// It opens the database, applies migrations, wires the session service
// and starts the HTTP API with graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/yunusemrekaplan/SmartFA-Dev/internal/logging"
	"github.com/yunusemrekaplan/SmartFA-Dev/internal/server/auth"
	"github.com/yunusemrekaplan/SmartFA-Dev/internal/server/config"
	"github.com/yunusemrekaplan/SmartFA-Dev/internal/server/httpapi"
	"github.com/yunusemrekaplan/SmartFA-Dev/internal/server/repositories/repomanager"
	"github.com/yunusemrekaplan/SmartFA-Dev/internal/server/services"
	"github.com/yunusemrekaplan/SmartFA-Dev/internal/timex"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	httpSrv *httpapi.Server
}

func NewApp(cfg *config.Config) (*App, error) {

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	clock := timex.SystemClock{}

	signer, err := auth.NewTokenSigner(cfg, clock)
	if err != nil {
		return nil, fmt.Errorf("signer init error: %w", err)
	}

	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	refresh := auth.NewRefreshTokenGenerator(cfg.RefreshTokenTTL, clock)

	sessions := services.NewSessionService(db, rm, hasher, signer, refresh, clock, logger, cfg)

	httpSrv := httpapi.NewServer(cfg.EndpointAddr, logger, sessions, signer)

	return &App{config: cfg, logger: logger, db: db, httpSrv: httpSrv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.httpSrv.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "addr", app.config.EndpointAddr)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
