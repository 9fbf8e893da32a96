package server

import (
	"mvcs-loader/core/host"
	"mvcs-loader/core/loader"
	"mvcs-loader/core/logger"
	"mvcs-loader/core/middleware/auth"
	"mvcs-loader/core/middleware/rayid"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// StateSource exposes the host state served by the status API.
type StateSource interface {
	Snapshot() host.Snapshot
	Names(c loader.Category) []string
}

// New builds the status API for a host and the bundles loaded into it.
func New(cfg Config, state StateSource, bundles []string, logg *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	// RayID must be first to trace everything
	app.Use(rayid.New())
	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		l.Debug("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/bundles", auth.New(auth.Config{ApiKey: cfg.ApiKey}))

	api.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"bundles": bundles,
			"host":    state.Snapshot(),
		})
	})

	api.Get("/:category", func(c *fiber.Ctx) error {
		cat := loader.Category(c.Params("category"))
		if !cat.IsValid() {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown category"})
		}
		return c.JSON(fiber.Map{
			"category": cat,
			"names":    state.Names(cat),
		})
	})

	return app
}
