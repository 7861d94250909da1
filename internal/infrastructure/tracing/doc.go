/*
Package tracing correlates the log lines of a single request.

Each HTTP request gets a span. The trace ID is taken from the X-Trace-ID
request header when present and well formed, otherwise a new one is
generated; the incoming X-Span-ID becomes the parent span. Both identifiers
are returned as response headers, stored on the request context, and
available to handlers through Fields.

Finished spans are written to the log by a background collector: successful
spans at debug level, failed spans at error level.

# Usage

	tracer := tracing.New("selector-healer", logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	logger.Info("analysis complete", tracing.Fields(c.Request.Context())...)
*/
package tracing
