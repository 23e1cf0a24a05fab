package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CachingMiddleware sets Cache-Control headers on GET responses based on endpoint.
// Adds sensible defaults if not already set by the handler.
func CachingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		// Only set on GET requests
		if c.Method() != "GET" {
			return err
		}

		// Don't override if already set
		if existing := c.Get("Cache-Control"); existing != "" {
			return err
		}

		path := c.Path()
		var ttl string

		// Default cache times by endpoint pattern
		switch {
		case path == "/v1/health" || path == "/v1/ready":
			ttl = "public, max-age=10" // Very short for system checks

		case path == "/metrics":
			ttl = "no-cache" // Metrics are real-time

		case strings.HasPrefix(path, "/v1/places/autocomplete"):
			ttl = "public, max-age=300" // Suggestions go stale as the user types

		case strings.HasPrefix(path, "/v1/places"):
			ttl = "public, max-age=3600" // Resolved place details rarely change

		case strings.HasPrefix(path, "/v1/runs"):
			ttl = "private, max-age=0" // Run history changes on every assign

		case strings.HasPrefix(path, "/v1/drivers"),
			strings.HasPrefix(path, "/v1/passengers"),
			strings.HasPrefix(path, "/v1/destinations"):
			ttl = "private, max-age=60" // Roster data, short-lived

		case strings.HasPrefix(path, "/v1/"):
			ttl = "private, max-age=0"
		}

		if ttl != "" {
			c.Set("Cache-Control", ttl)
		}

		return err
	}
}
