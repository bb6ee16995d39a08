package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"superadmin/config"
	"superadmin/handlers/admin"
	"superadmin/middleware"
	"superadmin/services"
	"superadmin/utils"
)

const version = "1.0.0"

func main() {
	// Local development reads secrets from .env
	if os.Getenv("APP_ENV") != "production" {
		if err := config.LoadEnvFile(); err != nil {
			logrus.Warn(".env file not found, using system environment variables")
		}
	}

	cfg, err := config.FromEnv()
	if err != nil {
		logrus.WithError(err).Error("invalid configuration")
		os.Exit(1)
	}

	logger := newLogger(cfg)
	checkServiceRole(cfg, logger)

	provider := services.NewSupabaseClient(cfg)
	app := newApp(cfg, logger, services.NewAdminService(provider))

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit

		logger.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.WithError(err).Error("server shutdown error")
		}
	}()

	logger.WithFields(logrus.Fields{
		"port":         cfg.Port,
		"env":          cfg.AppEnv,
		"supabase_url": cfg.SupabaseURL,
	}).Info("super admin API starting")

	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.WithError(err).Fatal("failed to start HTTP server")
	}
}

func newApp(cfg *config.Config, logger *logrus.Logger, service *services.AdminService) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler:          utils.ErrorHandler(cfg.IsProduction()),
		BodyLimit:             1 * 1024 * 1024,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger(logger))

	// Any origin may call the admin API
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"version":   version,
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	admin.NewHandler(service, logger).Register(app)

	return app
}

func newLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if cfg.IsProduction() {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.WithField("log_level", cfg.LogLevel).Warn("unknown LOG_LEVEL, using info")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// checkServiceRole warns when the key cannot perform admin calls.
func checkServiceRole(cfg *config.Config, logger *logrus.Logger) {
	role, err := cfg.ServiceRole()
	if err != nil {
		logger.WithError(err).Warn("SERVICE_ROLE_KEY is not a JWT, provider may reject admin calls")
		return
	}
	if role != config.ServiceRoleName {
		logger.WithField("role", role).Warn("SERVICE_ROLE_KEY is not a service_role key, provider will reject admin calls")
	}
}
