// Package server initializes and runs the authentication server. It opens
// the database, applies migrations, wires the services, and starts the HTTP
// endpoint with graceful shutdown.
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

	"github.com/gamecatalog/authservice/internal/logging"
	"github.com/gamecatalog/authservice/internal/server/auth"
	"github.com/gamecatalog/authservice/internal/server/config"
	"github.com/gamecatalog/authservice/internal/server/hash"
	"github.com/gamecatalog/authservice/internal/server/httpserver"
	"github.com/gamecatalog/authservice/internal/server/repositories/repomanager"
	"github.com/gamecatalog/authservice/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	authService *services.AuthService
	signer      *auth.Signer
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	hasher := hash.NewBcryptHasher(cfg.BcryptCost)
	signer := auth.NewSigner([]byte(cfg.SecretKey), cfg.AccessTokenValidityDuration)
	refresh := services.NewRefreshTokenService(db, rm, cfg)
	as := services.NewAuthService(db, rm, hasher, signer, refresh)

	return &App{config: cfg, logger: logger, db: db, authService: as, signer: signer}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpserver.NewHTTPServer(app.config.EndpointAddr, app.logger, app.authService, app.signer, app.db)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "Error closing database", "error", err)
	}
}
