package observability

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsHandler serves the scrape endpoint carrying the admin and catalog
// collectors. Registration is idempotent, so the handler can be mounted
// before or after any service touches a collector.
func MetricsHandler() fiber.Handler {
	RegisterMetrics()
	opts := promhttp.HandlerOpts{ErrorHandling: promhttp.ContinueOnError}
	return adaptor.HTTPHandler(promhttp.HandlerFor(prometheus.DefaultGatherer, opts))
}
