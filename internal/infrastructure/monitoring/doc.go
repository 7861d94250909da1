/*
Package monitoring provides Prometheus metrics for the selector healing
service.

# Metrics

- HTTP requests: count, latency, request and response size per route
- Analyses: count, latency and candidate count per selector kind
- Mapping store calls: count, latency, errors and circuit breaker state
- Uptime, Go runtime and process collectors

# Usage

	metrics := monitoring.NewMetrics()

	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	analyzer := selector.NewAnalyzer(logger, selector.WithObserver(metrics))

	timer := monitoring.NewTimer(metrics, "mappings", "list")
	// ... perform operation ...
	timer.Stop("success")

Tests should use NewMetricsWith and a private registry so collectors are
never registered twice.
*/
package monitoring
