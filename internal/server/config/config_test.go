package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	require.Equal(t, ":8080", cfg.EndpointAddr)
	require.Empty(t, cfg.DatabaseDSN)
	require.NotEmpty(t, cfg.PasscodeHash)
	require.Equal(t, 12*time.Hour, cfg.AccessTokenValidityDuration)
}

func TestParseJSON_Overlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"endpoint_addr": ":9090",
		"database_dsn": "postgres://localhost/cases",
		"access_token_validity_duration": "1h"
	}`), 0o644))

	oldArgs := os.Args
	os.Args = []string{"server", "-c", path}
	defer func() { os.Args = oldArgs }()

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)

	require.Equal(t, ":9090", cfg.EndpointAddr)
	require.Equal(t, "postgres://localhost/cases", cfg.DatabaseDSN)
	require.Equal(t, time.Hour, cfg.AccessTokenValidityDuration)
	require.Equal(t, "secretKey", cfg.SecretKey)
}

func TestParseFlags_Overlay(t *testing.T) {
	oldArgs := os.Args
	os.Args = []string{"server", "-a", ":7070", "-k", "supersecret"}
	defer func() { os.Args = oldArgs }()

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	require.Equal(t, ":7070", cfg.EndpointAddr)
	require.Equal(t, "supersecret", cfg.SecretKey)
}
