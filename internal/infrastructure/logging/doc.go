// Package logging provides structured logging using uber/zap.
//
// Two output modes:
//   - Production: JSON output for machine parsing
//   - Development: colored console output for human readability
//
// Levels are "error", "warn", "info" and "debug". An unrecognised level
// selects info, so a typo in LOG_LEVEL never prevents startup. The level
// is fixed when the logger is built.
//
// AccessLog replaces gin's default request logger with one zap line per
// request.
//
// Example Usage:
//
//	logger, err := logging.New(logging.ConfigFor(cfg.Logging.Level, cfg.Logging.Development))
//	if err != nil {
//		log.Fatal(err)
//	}
//	logger.Info("server starting", zap.String("port", "6060"))
package logging
