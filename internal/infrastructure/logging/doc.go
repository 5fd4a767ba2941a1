// Package logging provides structured logging using uber/zap.
//
// This package offers two modes:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// All output goes to stderr so that log lines never interleave with the
// operator console on stdout.
//
// Example Usage:
//
//	logger, err := logging.New(logging.Config{Level: "info"})
//	logger.Info("App launched", zap.String("app", "snake.py"), zap.Int("pid", 4242))
//	logger.Error("Failed to close app", zap.Error(err))
package logging
