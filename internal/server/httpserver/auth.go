package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gamecatalog/authservice/internal/common"
)

func (s *HTTPServer) register(c echo.Context) error {
	ctx := c.Request().Context()

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := req.validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	s.logger.Info(ctx, "Registration request", "email", req.Email)

	pair, err := s.auth.Register(ctx, req.FirstName, req.LastName, req.Email, req.Password)
	if err != nil {
		return s.mapError(c, err)
	}

	s.logger.Info(ctx, "Registered", "email", req.Email)
	return c.JSON(http.StatusOK, AuthResponse{Token: pair.AccessToken, RefreshToken: pair.RefreshToken})
}

func (s *HTTPServer) authenticate(c echo.Context) error {
	ctx := c.Request().Context()

	var req AuthenticateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := req.validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	pair, err := s.auth.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return s.mapError(c, err)
	}

	s.logger.Info(ctx, "Authenticated", "email", req.Email)
	return c.JSON(http.StatusOK, AuthResponse{Token: pair.AccessToken, RefreshToken: pair.RefreshToken})
}

func (s *HTTPServer) refreshToken(c echo.Context) error {
	ctx := c.Request().Context()

	var req RefreshTokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := req.validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	pair, err := s.auth.Refresh(ctx, req.Token)
	if err != nil {
		return s.mapError(c, err)
	}

	return c.JSON(http.StatusOK, AuthResponse{Token: pair.AccessToken, RefreshToken: pair.RefreshToken})
}

func (s *HTTPServer) me(c echo.Context) error {
	ctx := c.Request().Context()

	email, _ := c.Get(emailContextKey).(string)
	user, err := s.auth.GetUser(ctx, email)
	if err != nil {
		return s.mapError(c, err)
	}

	return c.JSON(http.StatusOK, UserResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Role:      user.Role.String(),
	})
}

// errorHandler renders every failed request as {"error": message}.
func (s *HTTPServer) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := "internal error"

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		}
	}

	if err := c.JSON(code, echo.Map{"error": msg}); err != nil {
		s.logger.Error(c.Request().Context(), "Error response failed", "error", err)
	}
}

// mapError translates service errors into HTTP statuses. Anything not
// recognized is a 500 with a generic body so internals never leak.
func (s *HTTPServer) mapError(c echo.Context, err error) error {
	ctx := c.Request().Context()

	switch {
	case errors.Is(err, common.ErrEmailAlreadyInUse),
		errors.Is(err, common.ErrRefreshTokenInvalid),
		errors.Is(err, common.ErrRefreshTokenExpired):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, common.ErrUserNotFound):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		s.logger.Error(ctx, "Request failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
