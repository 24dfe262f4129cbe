// Package logger provides structured logging for gorest using zerolog.
//
// It supports JSON and console output, per-logger levels, and
// component-scoped loggers looked up by name.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("rest")
//	log.Debug("REST =>", logger.Fields("url", u, "method", "GET"))
package logger
