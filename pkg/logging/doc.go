// Package logging provides structured logging utilities for modelaudit.
//
// # Overview
//
// This package wraps the standard library slog package with defaults and
// conventions for consistent logging across the audit pipeline. It supports
// environment-based log level configuration, module/version context injection,
// automatic source location tracking for debug logs, and credential redaction.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages (default)
//   - WARN/WARNING: Warning messages for potentially problematic situations
//   - ERROR: Error messages for failures requiring attention
//
// # Usage
//
//	logging.SetDefaultStructuredLoggerWithLevel("modelaudit", version, "debug")
//	slog.Info("audit started", "deployments", len(deps))
//
// # Output Format
//
// All logs are written to stderr in JSON format so they never mix with the
// report when it is written to stdout:
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "INFO",
//	    "msg": "deployment audited",
//	    "module": "modelaudit",
//	    "version": "v1.0.0",
//	    "endpoint": "https://a.example.com/v1/graphql"
//	}
//
// # Credentials
//
// Admin secrets must never reach a log line. Use Redact for URLs and
// SanitizeError for errors that may echo request data:
//
//	slog.Warn("request failed", "error", logging.SanitizeError(err, dep.Secret))
//
// RedactError does the same but keeps the error chain for errors.Is.
package logging
