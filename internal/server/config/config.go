// Package config handles configuration for the server component,
// including defaults, JSON overlay, and command-line flags.
package config

import (
	"time"

	"github.com/cjmtools/caseintake/internal/server/auth"
)

// Config holds runtime settings for the case storage server.
//
// Fields:
//   - EndpointAddr: bind address for the public HTTP endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty means in-memory storage.
//   - PasscodeHash: bcrypt hash of the shared access passcode.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - AccessTokenValidityDuration: token lifetime.
type Config struct {
	EndpointAddr                string
	DatabaseDSN                 string
	PasscodeHash                string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
// The default passcode is "letmein".
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8080"
	c.DatabaseDSN = ""
	hash, err := auth.HashPasscode("letmein")
	if err != nil {
		panic(err)
	}
	c.PasscodeHash = hash
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 12 * time.Hour
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
