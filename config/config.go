package config

import (
	"fmt"

	"github.com/skillsenselab/radscribe/api"
	"github.com/skillsenselab/radscribe/logger"
	"github.com/skillsenselab/radscribe/observability"
	"github.com/skillsenselab/radscribe/server"
	"github.com/skillsenselab/radscribe/transcribe/whisper"
)

// Config is the full radscribe service configuration.
type Config struct {
	Name          string               `yaml:"name" mapstructure:"name"`
	Environment   string               `yaml:"environment" mapstructure:"environment" validate:"omitempty,oneof=development staging production"`
	Version       string               `yaml:"version" mapstructure:"version"`
	Debug         bool                 `yaml:"debug" mapstructure:"debug"`
	Logging       logger.Config        `yaml:"logging" mapstructure:"logging"`
	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Whisper       whisper.Config       `yaml:"whisper" mapstructure:"whisper"`
	Transcribe    TranscribeConfig     `yaml:"transcribe" mapstructure:"transcribe"`
	API           api.Config           `yaml:"api" mapstructure:"api"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// TranscribeConfig tunes the comparison orchestrator.
type TranscribeConfig struct {
	// Sequential forces per-model runs to execute one at a time instead of
	// concurrently.
	Sequential bool `yaml:"sequential" mapstructure:"sequential"`
}

// ApplyDefaults applies default values throughout the configuration tree.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "radscribe"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	if c.Logging.ServiceName == "" {
		c.Logging.ServiceName = c.Name
	}
	c.Logging.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Whisper.ApplyDefaults()
	c.Observability.ApplyDefaults()
}

// Validate validates the configuration tree: struct tags first, then each
// section's own rules.
func (c *Config) Validate() error {
	if err := ValidateStruct(c); err != nil {
		return err
	}
	if c.Name == "" {
		return fmt.Errorf("config.name is required")
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("config.server: %w", err)
	}
	return nil
}
