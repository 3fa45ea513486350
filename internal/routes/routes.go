package routes

import (
    "fmt"
    "log/slog"
    "net/http"
    "time"

    "github.com/gofiber/fiber/v2"
    "github.com/gofiber/fiber/v2/middleware/logger"
    "github.com/gofiber/fiber/v2/middleware/recover"
    "github.com/jackc/pgx/v5/pgxpool"
    "github.com/redis/go-redis/v9"

    "github.com/carelink/carelink/internal/auth"
    "github.com/carelink/carelink/internal/config"
    "github.com/carelink/carelink/internal/identity"
    "github.com/carelink/carelink/internal/middleware"
    "github.com/carelink/carelink/internal/notification"
    "github.com/carelink/carelink/internal/onboarding"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
    Cfg    config.Config
    DB     *pgxpool.Pool
    Cache  *redis.Client
    Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
    // Enforce DB/Redis presence outside of dev, even though config also checks.
    if !d.Cfg.IsDev() {
        if d.DB == nil {
            return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.Env)
        }
        if d.Cache == nil {
            return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.Env)
        }
    }
    if d.Logger == nil {
        d.Logger = slog.Default()
    }

    // Middlewares
    app.Use(recover.New())
    app.Use(middleware.RequestID())
    if d.Cfg.IsDev() {
        // Plain text access log in desired format: [HH:MM:SS] 200 -  145ms METHOD /path
        app.Use(logger.New(logger.Config{
            Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
            TimeFormat: "15:04:05",
            TimeZone:   "Local",
        }))
    } else {
        app.Use(middleware.Audit(d.Logger))
    }

    // Health
    RegisterHealthRoutes(app, d)

    // Services and handlers
    var identityRepo identity.Repository
    if d.DB != nil {
        identityRepo = identity.NewPostgresRepository(d.DB)
    } else {
        identityRepo = identity.NewMemoryRepository()
    }
    var sessions onboarding.Store
    if d.Cache != nil {
        sessions = onboarding.NewRedisStore(d.Cache, d.Cfg.SessionTTL)
    } else {
        sessions = onboarding.NewMemoryStore(d.Cfg.SessionTTL)
    }

    identitySvc := identity.NewService(identityRepo)
    authSvc := auth.NewService(d.Cfg, identityRepo)
    notifier := notification.NewLoggerNotifier(d.Logger)
    onboardingSvc := onboarding.NewService(sessions, identitySvc, authSvc, notifier, d.Logger)

    onboardingHandler := onboarding.NewHandler(onboardingSvc)
    authHandler := auth.NewHandler(authSvc)

    var idempotency fiber.Handler
    if d.Cache != nil {
        idempotency = middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger)
    }
    signInLimiter := middleware.SignInRateLimit(d.Cache, d.Cfg.SignInMaxPerMin)
    jwtmw := middleware.JWTAuth(authSvc)

    // API routes
    api := app.Group("/api/v1")
    api.Get("/ping", func(c *fiber.Ctx) error {
        return c.Status(http.StatusOK).JSON(fiber.Map{
            "status":     "ok",
            "request_id": middleware.RequestIDFrom(c),
            "timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
        })
    })

    // Public routes
    RegisterOnboardingRoutes(api, onboardingHandler, idempotency, signInLimiter)
    RegisterAuthRoutes(api, authHandler, jwtmw)

    // Protected routes
    protected := api.Group("", jwtmw)
    RegisterProfileRoute(protected, identitySvc)

    return nil
}
