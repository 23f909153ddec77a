package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/cjmtools/caseintake/internal/flagx"
	"github.com/cjmtools/caseintake/internal/timex"
)

// JSONConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like
// "100ms" or as integer nanoseconds.
type JSONConfig struct {
	ServerURL    string         `json:"server_url"`
	SpoolDir     string         `json:"spool_dir"`
	Facing       string         `json:"facing"`
	ScanInterval timex.Duration `json:"scan_interval"`
	MaxResults   int            `json:"max_results"`
}

// parseJSON overlays Config with values loaded from a JSON file resolved via
// the -c/-config flags. Missing file path means no JSON is loaded. Only
// fields present in the file override the current values. Panics on read or
// unmarshal errors (caller should recover if desired).
func parseJSON(cfg *Config) {
	jsonConfigFile := flagx.JSONConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JSONConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.SpoolDir != "" {
		cfg.SpoolDir = jc.SpoolDir
	}
	if jc.Facing != "" {
		cfg.Facing = jc.Facing
	}
	if jc.ScanInterval.Duration != 0 {
		cfg.ScanInterval = time.Duration(jc.ScanInterval.Duration)
	}
	if jc.MaxResults != 0 {
		cfg.MaxResults = jc.MaxResults
	}
}
