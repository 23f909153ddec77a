// Package config loads runtime settings for the intake client.
package config

import "time"

// Config holds runtime settings for the intake CLI.
//
// Fields:
//   - ServerURL: base URL of the storage service.
//   - SpoolDir: directory watched for dropped camera frames.
//   - Facing: camera orientation preference ("environment" or "user").
//   - ScanInterval: decode tick cadence.
//   - MaxResults: size of the diagnostic scan-result buffer.
type Config struct {
	ServerURL    string
	SpoolDir     string
	Facing       string
	ScanInterval time.Duration
	MaxResults   int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.SpoolDir = "frames"
	c.Facing = "environment"
	c.ScanInterval = 100 * time.Millisecond
	c.MaxResults = 5
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
