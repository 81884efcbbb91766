// Package httpserver exposes the authentication flows over HTTP/JSON and
// owns the server lifecycle.
package httpserver

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gamecatalog/authservice/internal/logging"
	"github.com/gamecatalog/authservice/internal/server/auth"
	"github.com/gamecatalog/authservice/internal/server/models"
	"github.com/gamecatalog/authservice/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

// authSvc is the slice of AuthService the transport needs; tests substitute
// a fake.
type authSvc interface {
	Register(ctx context.Context, firstName, lastName, email, password string) (*services.TokenPair, error)
	Authenticate(ctx context.Context, email, password string) (*services.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	GetUser(ctx context.Context, email string) (*models.User, error)
}

type HTTPServer struct {
	address string
	auth    authSvc
	signer  *auth.Signer
	db      *sql.DB
	logger  logging.Logger
}

func NewHTTPServer(a string, l logging.Logger, as authSvc, signer *auth.Signer, db *sql.DB) *HTTPServer {
	return &HTTPServer{
		address: a,
		logger:  l.With("module", "http_server"),
		auth:    as,
		signer:  signer,
		db:      db,
	}
}

func (s *HTTPServer) Run(ctx context.Context) error {

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	s.registerRoutes(e)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "Shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := e.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
