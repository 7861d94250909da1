// Package config provides 12-factor configuration for the selector healing
// service.
//
// Configuration is loaded once from environment variables with defaults.
// CLI flags override environment variables.
//
// Configuration Sections:
//   - Server: bind address and graceful shutdown bound
//   - Analysis: maximum accepted markup size
//   - Database: mapping store DSN, seed file and circuit breaker tuning
//   - Logging: log level and output format
//   - RateLimit: per-IP rate limiting
//
// Example Usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("listening on %s:%s\n", cfg.Server.Host, cfg.Server.Port)
//
// Environment Variables:
//   - PORT, HOST, SHUTDOWN_TIMEOUT
//   - MAX_HTML_BYTES
//   - DATABASE_URL, MAPPINGS_SEED_FILE, DATABASE_QUERY_TIMEOUT,
//     DATABASE_BREAKER_FAILURES, DATABASE_BREAKER_TIMEOUT
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
package config
