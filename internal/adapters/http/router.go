package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"
	"github.com/2270330995/VRP-Carpool/internal/pkg/metrics"
)

// SetupRoutes registers all REST routes.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	// Prometheus metrics
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	// Response compression (gzip)
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed, // Balance speed vs compression ratio
	}))

	// Request ID
	app.Use(requestid.New())

	// Propagate request ID into slog context
	app.Use(RequestIDLogMiddleware())

	// Access logs (structured HTTP request logging)
	app.Use(AccessLogMiddleware())

	// Rate limiting: 120 requests per minute per IP
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(429).JSON(fiber.Map{
				"error":   "rate limit exceeded",
				"message": "too many requests, please try again later",
			})
		},
		SkipFailedRequests: false,
	}))

	// Security headers + API version
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("X-API-Version", "1.0.0")
		return c.Next()
	})

	// ETag for conditional caching
	app.Use(ETagMiddleware())

	// Default Cache-Control headers
	app.Use(CachingMiddleware())

	// Health & readiness skip the timeout wrapper, the checks are fast
	app.Get("/v1/health", HealthHandler(deps))
	app.Get("/v1/ready", ReadyHandler(deps))

	v1 := app.Group("/v1")

	// Route optimization. Solver calls can be slow, so these run under a
	// longer timeout than the roster endpoints.
	v1.Post("/optimize", timeout.NewWithContext(OptimizeHandler(deps), 90*time.Second))
	v1.Post("/optimize/sample", timeout.NewWithContext(SampleOptimizeHandler(deps), 90*time.Second))

	// Driver roster
	v1.Get("/drivers", timeout.NewWithContext(ListDriversHandler(deps), 15*time.Second))
	v1.Post("/drivers", timeout.NewWithContext(CreateDriverHandler(deps), 15*time.Second))
	v1.Put("/drivers/:id", timeout.NewWithContext(UpdateDriverHandler(deps), 15*time.Second))
	v1.Delete("/drivers/:id", timeout.NewWithContext(DeactivateDriverHandler(deps), 15*time.Second))
	v1.Patch("/drivers/:id/restore", timeout.NewWithContext(RestoreDriverHandler(deps), 15*time.Second))

	// Passenger roster
	v1.Get("/passengers", timeout.NewWithContext(ListPassengersHandler(deps), 15*time.Second))
	v1.Post("/passengers", timeout.NewWithContext(CreatePassengerHandler(deps), 15*time.Second))
	v1.Put("/passengers/:id", timeout.NewWithContext(UpdatePassengerHandler(deps), 15*time.Second))
	v1.Delete("/passengers/:id", timeout.NewWithContext(DeactivatePassengerHandler(deps), 15*time.Second))
	v1.Patch("/passengers/:id/restore", timeout.NewWithContext(RestorePassengerHandler(deps), 15*time.Second))

	// Saved destinations
	v1.Get("/destinations", timeout.NewWithContext(ListDestinationsHandler(deps), 15*time.Second))
	v1.Post("/destinations", timeout.NewWithContext(CreateDestinationHandler(deps), 15*time.Second))
	v1.Put("/destinations/:id", timeout.NewWithContext(UpdateDestinationHandler(deps), 15*time.Second))
	v1.Delete("/destinations/:id", timeout.NewWithContext(DeactivateDestinationHandler(deps), 15*time.Second))
	v1.Patch("/destinations/:id/restore", timeout.NewWithContext(RestoreDestinationHandler(deps), 15*time.Second))

	// Assignment runs
	v1.Post("/assign", timeout.NewWithContext(CreateRunHandler(deps), 15*time.Second))
	v1.Get("/runs", timeout.NewWithContext(ListRunsHandler(deps), 15*time.Second))
	v1.Get("/runs/latest", timeout.NewWithContext(LatestRunHandler(deps), 15*time.Second))
	v1.Get("/runs/:id", timeout.NewWithContext(GetRunHandler(deps), 15*time.Second))
	v1.Delete("/runs/:id", timeout.NewWithContext(DeleteRunHandler(deps), 15*time.Second))

	// Places lookup
	v1.Get("/places/autocomplete", timeout.NewWithContext(PlaceAutocompleteHandler(deps), 15*time.Second))
	v1.Get("/places/:id", timeout.NewWithContext(PlaceDetailsHandler(deps), 15*time.Second))
}
