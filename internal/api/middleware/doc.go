// Package middleware provides the Gin middleware in front of the API:
// CORS and per-IP token bucket rate limiting.
package middleware
