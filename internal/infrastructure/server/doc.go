// Package server provides HTTP server setup and initialization.
//
// This package orchestrates all components:
//   - HTTP routing with Gin framework
//   - Middleware stack (recovery, tracing, access log, metrics, CORS, rate limiting)
//   - gzip response compression
//   - Optional PostgreSQL mapping store with startup seeding
//   - Graceful shutdown
package server
