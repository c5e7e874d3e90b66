// Package logger provides structured logging for radscribe built on zerolog.
//
// A single global logger is initialized from config at startup; components
// derive tagged child loggers via WithComponent. Fields are passed as
// map[string]interface{} so call sites stay uniform across the codebase.
//
//	logger.Init(cfg.Logging)
//	log := logger.WithComponent("registry")
//	log.Info("model loaded", map[string]interface{}{"tag": "base"})
package logger
