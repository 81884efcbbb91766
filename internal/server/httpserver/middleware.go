package httpserver

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const emailContextKey = "email"

// requireAccessToken guards private routes. The subject of a valid bearer
// token is stored on the echo context under emailContextKey.
func (s *HTTPServer) requireAccessToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
		}

		email, err := s.signer.ExtractSubject(token)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}

		c.Set(emailContextKey, email)
		return next(c)
	}
}
