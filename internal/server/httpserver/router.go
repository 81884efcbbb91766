package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func (s *HTTPServer) registerRoutes(e *echo.Echo) {
	e.HTTPErrorHandler = s.errorHandler
	e.Use(s.requestLogger())

	e.GET("/health/live", s.healthLive)
	e.GET("/health/ready", s.healthReady)

	e.POST("/auth/register", s.register)
	e.POST("/auth/authenticate", s.authenticate)
	e.POST("/auth/refreshToken", s.refreshToken)

	private := e.Group("/auth")
	private.Use(s.requireAccessToken)
	private.GET("/me", s.me)
}

// requestLogger emits one structured log line per request, including error
// responses.
func (s *HTTPServer) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.Info(c.Request().Context(), "Request",
				"method", v.Method, "uri", v.URI, "status", v.Status)
			return nil
		},
	})
}

func (s *HTTPServer) healthLive(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func (s *HTTPServer) healthReady(c echo.Context) error {
	if err := s.db.PingContext(c.Request().Context()); err != nil {
		return c.NoContent(http.StatusServiceUnavailable)
	}
	return c.NoContent(http.StatusOK)
}
