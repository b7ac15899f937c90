package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/campus-kit/society-events/internal/persistence"
)

// HealthHandler answers the liveness and readiness endpoints.
type HealthHandler struct {
	serviceName string
	version     string
	postgres    *persistence.Postgres
	redis       *persistence.Redis
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version string, postgres *persistence.Postgres, redis *persistence.Redis) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, postgres: postgres, redis: redis}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports service readiness. Postgres holds every account,
// society and ticket row, so losing it unreadies the service; redis
// only backs the best-effort catalog cache, so a redis outage is
// reported as degraded while traffic keeps being served.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	depStatus := fiber.Map{}
	status := "ready"

	if err := h.redis.Ping(ctx); err != nil {
		depStatus["redis"] = err.Error()
		status = "degraded"
	} else {
		depStatus["redis"] = "ok"
	}

	if err := h.postgres.Ping(ctx); err != nil {
		depStatus["postgres"] = err.Error()
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "DEPENDENCY_UNAVAILABLE",
				"message": "one or more dependencies unavailable",
				"details": depStatus,
			},
		})
	}
	depStatus["postgres"] = "ok"

	return c.JSON(fiber.Map{
		"status":       status,
		"dependencies": depStatus,
	})
}
