package controller

import (
	"github.com/gofiber/fiber/v2"
)

// HealthController reports process liveness only. It deliberately makes
// no call to the configured model backend, so health stays green while
// a provider is down.
type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Health(ctx *fiber.Ctx) error
	Root(ctx *fiber.Ctx) error
}

type healthController struct {
	appName string
	version string
}

func NewHealthController(appName, version string) IHealthController {
	return &healthController{appName: appName, version: version}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Health)
	r.Get("/", c.Root)
}

func (c *healthController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"status": "healthy"})
}

func (c *healthController) Root(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{
		"message": c.appName + " backend is running",
		"version": c.version,
	})
}
