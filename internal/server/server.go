package server

import (
    "context"
    "log/slog"
    "time"

    "github.com/gofiber/fiber/v2"

    "github.com/carelink/carelink/internal/config"
    "github.com/carelink/carelink/internal/infra"
    "github.com/carelink/carelink/internal/routes"
)

// Server wraps the Fiber application and shared dependencies.
type Server struct {
    app *fiber.App
    cfg config.Config
}

// New instantiates the HTTP server and delegates route wiring to routes.Setup.
func New(cfg config.Config, backends infra.Backends, logger *slog.Logger) (*Server, error) {
    app := fiber.New(fiber.Config{
        AppName:               cfg.AppName,
        ReadTimeout:           30 * time.Second,
        WriteTimeout:          30 * time.Second,
        DisableStartupMessage: !cfg.IsDev(),
    })

    if err := routes.Setup(app, routes.Deps{Cfg: cfg, DB: backends.DB, Cache: backends.Cache, Logger: logger}); err != nil {
        return nil, err
    }

    return &Server{app: app, cfg: cfg}, nil
}

// Listen starts the HTTP server.
func (s *Server) Listen() error {
    return s.app.Listen(s.cfg.Address())
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
    return s.app.ShutdownWithContext(ctx)
}
