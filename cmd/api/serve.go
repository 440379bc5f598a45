package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"

	"alumni-network/internal/config"
	"alumni-network/internal/handler"
	"alumni-network/internal/middleware"
	"alumni-network/internal/pkg/i18n"
	"alumni-network/internal/pkg/logger"
	"alumni-network/internal/repository"
	"alumni-network/internal/service"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts)
		},
	}
}

func runServe(opts *rootOptions) error {
	cfg := opts.cfg
	log := logger.Log

	db, err := config.NewDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		return err
	}
	if redis != nil {
		defer redis.Close()
	} else {
		log.Info("REDIS_URL not set, Idempotency-Key support disabled")
	}

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		log.WithError(err).Warn("Failed to connect to MinIO, avatars will use public URLs")
		minioClient = nil
	}

	catalog, err := i18n.NewCatalog(cfg.Locale, cfg.LocalePath)
	if err != nil {
		return err
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, minioClient, catalog, cfg, log)
	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.NewErrorHandler(log),
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
		Output: log.Writer(),
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, Idempotency-Key",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	handler.SetupRoutes(app, handlers, services.Auth, middleware.Idempotency(redis, cfg.IdempotencyTTL, log))

	log.WithField("port", cfg.Port).Info("Server starting")
	return app.Listen(":" + cfg.Port)
}
