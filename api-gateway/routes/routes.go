package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tair/foodgram/api-gateway/config"
	"github.com/tair/foodgram/api-gateway/health"
	"github.com/tair/foodgram/api-gateway/middleware"
	"github.com/tair/foodgram/api-gateway/proxy"
)

// Route maps a path prefix to an upstream service.
type Route struct {
	Prefix    string
	Upstream  string
	AdminOnly bool
}

var routeTable = []Route{
	{Prefix: "/auth", Upstream: "user"},
	{Prefix: "/api/users", Upstream: "user"},
	{Prefix: "/admin", Upstream: "user", AdminOnly: true},
	{Prefix: "/api/recipes", Upstream: "recipe"},
	{Prefix: "/api/tags", Upstream: "recipe"},
	{Prefix: "/api/ingredients", Upstream: "recipe"},
}

// Setup registers health endpoints and the proxied upstream routes.
func Setup(app *fiber.App, cfg *config.Config) {
	forwarder := proxy.NewForwarder(cfg)
	monitor := health.NewMonitor(cfg)

	app.Get("/health", func(c *fiber.Ctx) error {
		report := monitor.Check(c.UserContext())
		status := fiber.StatusOK
		if report.Status == "unhealthy" {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(report)
	})
	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "alive",
			"uptime": monitor.Uptime().Round(time.Second).String(),
		})
	})
	app.Get("/health/ready", func(c *fiber.Ctx) error {
		if !monitor.Ready(c.UserContext()) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "not ready"})
		}
		return c.JSON(fiber.Map{"status": "ready"})
	})

	optional := middleware.OptionalAuth()
	for _, route := range routeTable {
		handlers := []fiber.Handler{optional}
		if route.AdminOnly {
			handlers = []fiber.Handler{middleware.RequireAuth(), middleware.RequireAdmin()}
		}

		upstream := route.Upstream
		forward := func(c *fiber.Ctx) error {
			return forwarder.Forward(c, upstream)
		}

		group := app.Group(route.Prefix, handlers...)
		group.All("/", forward)
		group.All("/*", forward)
	}

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "route not found",
			"path":  c.Path(),
		})
	})
}
