// Package logging provides structured logging utilities for the monitor.
//
// # Overview
//
// This package wraps the standard library slog package with defaults and
// conventions for consistent logging across all components. It supports
// environment-based log level configuration, module/version context
// injection, and source location tracking for debug logs.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: check classification details, with source location
//   - INFO: start, completion and output path (default)
//   - WARN/WARNING: degraded metrics and indeterminate checks
//   - ERROR: publish failures
//
// # Usage
//
//	func main() {
//	    logging.SetDefaultStructuredLoggerWithLevel("cortana-monitor", version, "info")
//	    slog.Info("collecting stats")
//	}
//
// # Environment Configuration
//
// The LOG_LEVEL environment variable controls verbosity when no explicit
// level is passed:
//
//	LOG_LEVEL=debug cortana-monitor collect
//
// # Output Format
//
// All logs are written to stderr in JSON format so cron mail or the journal
// keeps them machine readable:
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "INFO",
//	    "msg": "stats written",
//	    "module": "cortana-monitor",
//	    "version": "v1.0.0",
//	    "path": "/var/www/cortana/stats.json"
//	}
package logging
