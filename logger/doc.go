// Package logger provides structured logging for simplemovies using zerolog.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.GetGlobalLogger().WithComponent("movies")
//	log.Info("search finished", logger.Fields("title", q, "results", n))
package logger
