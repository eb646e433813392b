// Package http provides the HTTP server for the interview backend.
package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mensetsu-app/backend/internal/service"
)

// NewServer creates and configures the echo server: API routes, static
// serving of synthesized audio, and the metrics endpoint.
func NewServer(svc *service.Service, audioDir string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Handlers
	h := NewHandler(svc)
	h.RegisterRoutes(e)

	// Synthesized replies are fetched from here by the client.
	e.Static("/static/audio", audioDir)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}
