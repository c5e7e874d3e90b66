// Package config loads radscribe configuration from config.yml and .env
// files with environment variable overrides, then applies defaults and
// validates the result.
//
//	var cfg config.Config
//	if err := config.Load("radscribe", &cfg); err != nil { ... }
//	cfg.ApplyDefaults()
//	if err := cfg.Validate(); err != nil { ... }
package config
