// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments (development vs production)
// and helpers that tag log entries with correlation ids.
//
// # Correlation
//
// Every loader run is tagged with a run id (WithRunID), so the lines produced by
// concurrently loading categories of one bundle can be grouped. Requests served by
// the status API carry a RayID (WithRayID) extracted from the Fiber context.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Encoding: json (production) or console (development)
//
// The loader logs "verbose" progress at debug level, so per-category lines are only
// visible with Level set to debug.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Server started")
//
//	l := logger.WithRunID(log, runID)
//	l.Error("Bundle load failed", zap.Error(err))
package logger
