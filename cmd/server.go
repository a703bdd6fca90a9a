// server.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Abraxas-365/hrms/pkg/config"
	"github.com/Abraxas-365/hrms/pkg/errx"
	"github.com/Abraxas-365/hrms/pkg/httpx"
	"github.com/Abraxas-365/hrms/pkg/logx"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		logx.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Logger level
	logx.SetLevel(logx.ParseLevel(cfg.Server.LogLevel))

	logx.Info("🚀 Starting HRMS API Server...")
	logx.Infof("Environment: %s", cfg.Environment)

	// 3. Initialize Dependency Container
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	container := NewContainer(ctx, cfg)
	defer container.Cleanup()

	// 4. Start background services
	container.StartBackgroundServices(ctx)

	// 5. Create Fiber App with Config
	app := fiber.New(fiber.Config{
		AppName:               "HRMS API",
		DisableStartupMessage: true,
		ErrorHandler:          globalErrorHandler(cfg),
		BodyLimit:             cfg.Server.BodyLimitMB * 1024 * 1024,
		IdleTimeout:           120 * time.Second,
	})

	// 6. Global Middleware
	setupMiddleware(app, cfg)

	// 7. Health Check & Info Endpoints
	app.Get("/health", healthCheckHandler(container))
	app.Get("/", infoHandler(cfg))

	// 8. Register Routes
	registerRoutes(app, container)

	// 9. 404 Handler
	app.Use(notFoundHandler)

	// 10. Start Server with Graceful Shutdown
	startServer(app, cfg, cancel)
}

// ============================================================================
// Setup Functions
// ============================================================================

func setupMiddleware(app *fiber.App, cfg *config.Config) {
	app.Use(recover.New(recover.Config{
		EnableStackTrace: cfg.IsDevelopment(),
	}))

	app.Use(requestid.New(requestid.Config{
		Header:    "X-Request-ID",
		Generator: uuid.NewString,
	}))

	corsOrigins := "*"
	if len(cfg.Server.CORSOrigins) > 0 {
		corsOrigins = strings.Join(cfg.Server.CORSOrigins, ",")
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods:     "GET, POST, PUT, DELETE, PATCH, HEAD, OPTIONS",
		AllowCredentials: corsOrigins != "*",
		ExposeHeaders:    "X-Request-ID",
	}))

	logFormat := "${time} | ${status} | ${latency} | ${method} ${path}"
	if cfg.IsDevelopment() {
		logFormat += " | ${ip} | ${locals:requestid}\n"
	} else {
		logFormat += "\n"
	}
	app.Use(logger.New(logger.Config{
		Format:     logFormat,
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Local",
	}))
}

func registerRoutes(app *fiber.App, container *Container) {
	logx.Info("📝 Registering routes...")
	mw := container.AuthMiddleware

	// /auth/login, /auth/logout, /auth/me
	container.AuthHandlers.RegisterRoutes(app, mw)

	api := app.Group("/api/v1")

	container.UserHandlers.RegisterRoutes(api, mw)
	container.JobHandlers.RegisterRoutes(api, mw)
	container.ApplicationHandlers.RegisterRoutes(api, mw)
	container.InterviewHandlers.RegisterRoutes(api, mw)
	container.OnboardingHandlers.RegisterRoutes(api, mw)
	container.LetterHandlers.RegisterRoutes(api, mw)
	container.NotificationHandlers.RegisterRoutes(api, mw)

	logx.Info("✅ All routes registered")
}

// ============================================================================
// Handler Functions
// ============================================================================

func healthCheckHandler(container *Container) fiber.Handler {
	return func(c *fiber.Ctx) error {
		health := fiber.Map{
			"status":      "healthy",
			"service":     "hrms-api",
			"driver":      container.Config.Database.Driver,
			"environment": container.Config.Environment,
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
		}

		for name, err := range container.Ping(c.Context()) {
			if err != nil {
				health[name] = "unhealthy"
				health[name+"_error"] = err.Error()
				health["status"] = "degraded"
				continue
			}
			health[name] = "healthy"
		}

		if c.QueryBool("check_storage", false) {
			if _, err := container.FileSystem.Exists(c.Context(), ".health-check"); err != nil {
				health["storage"] = "unhealthy"
				health["storage_error"] = err.Error()
			} else {
				health["storage"] = "healthy"
			}
		}

		status := fiber.StatusOK
		if health["status"] == "degraded" {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(health)
	}
}

func infoHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return httpx.OK(c, fiber.Map{
			"service":     "HRMS API",
			"version":     "1.0.0",
			"description": "Recruitment and interview scheduling",
			"environment": cfg.Environment,
			"endpoints": fiber.Map{
				"health":            "/health",
				"auth":              "/auth/login",
				"interviewSessions": "/api/v1/interviewSessions",
				"interviewRounds":   "/api/v1/interviewRounds",
				"applications":      "/api/v1/applications",
				"jobs":              "/api/v1/jobs",
				"users":             "/api/v1/users",
				"onboarding":        "/api/v1/onboarding",
				"letters":           "/api/v1/letters",
			},
		})
	}
}

func notFoundHandler(c *fiber.Ctx) error {
	return httpx.Fail(c, errx.New("Route not found", errx.TypeNotFound).
		WithDetail("path", c.Path()).
		WithDetail("method", c.Method()))
}

// ============================================================================
// Error Handler
// ============================================================================

// globalErrorHandler logs the failure and writes the error envelope.
func globalErrorHandler(cfg *config.Config) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		requestID, _ := c.Locals("requestid").(string)
		fields := logx.Fields{
			"path":       c.Path(),
			"method":     c.Method(),
			"request_id": requestID,
		}

		if e, ok := errx.As(err); ok {
			fields["code"] = e.Code
			if cfg.IsDevelopment() && e.Err != nil {
				fields["cause"] = e.Err.Error()
			}
			if e.HTTPStatus >= fiber.StatusInternalServerError {
				logx.WithFields(fields).Errorf("Request error: %v", err)
			} else {
				logx.WithFields(fields).Debugf("Request rejected: %v", err)
			}
		} else {
			logx.WithFields(fields).Errorf("Request error: %v", err)
		}

		return httpx.Fail(c, err)
	}
}

// ============================================================================
// Server lifecycle
// ============================================================================

func startServer(app *fiber.App, cfg *config.Config, cancel context.CancelFunc) {
	addr := fmt.Sprintf(":%d", cfg.Server.Port)

	go func() {
		logx.Infof("🚀 Server listening on %s", addr)
		logx.Infof("💚 Health Check: http://localhost%s/health", addr)
		if err := app.Listen(addr); err != nil {
			logx.Fatalf("Server error: %v", err)
		}
	}()

	gracefulShutdown(app, cfg, cancel)
}

func gracefulShutdown(app *fiber.App, cfg *config.Config, cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	sig := <-sigChan
	logx.Infof("🛑 Received signal: %v", sig)
	logx.Info("Shutting down gracefully...")

	cancel()

	if err := app.ShutdownWithTimeout(cfg.Server.ShutdownTimeout); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}

	logx.Info("✅ Server exited successfully")
}
