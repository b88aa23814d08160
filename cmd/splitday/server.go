package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/splitday/internal/api"
	"github.com/terraincognita07/splitday/internal/config"
	"github.com/terraincognita07/splitday/internal/metrics"
)

func newServerApp(cfg config.Config, handler *api.Handler, manager *metrics.Manager, gatherer prometheus.Gatherer) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               cfg.Server.AppName,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Output: logrus.StandardLogger().Writer(),
	}))
	app.Use(compress.New())
	app.Use(metrics.RequestMetrics(manager))

	app.Get("/metrics", metrics.Handler(gatherer))
	api.RegisterRoutes(app, handler)
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})
	return app
}
