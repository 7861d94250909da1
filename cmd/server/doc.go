// Package main is the entry point for the selector healer server.
//
// The server answers with ranked replacement CSS selectors for a selector
// that no longer matches a page, and optionally serves known replacements
// recorded per application version in PostgreSQL.
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//
// Usage:
//
//	# Production mode
//	./server -port 6060
//
//	# Development mode (console logs, debug level)
//	./server -dev -log-level debug
//
//	# With the mapping store and a seed glob
//	DATABASE_URL=postgres://localhost/healer MAPPINGS_SEED_FILE='seeds/**/*.yaml' ./server
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
