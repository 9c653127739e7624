package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/flagx"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. Durations
// are given in seconds so the file stays editable by hand.
type jsonConfig struct {
	ServerBaseURL       string `json:"server_base_url"`
	RequestTimeoutSec   int    `json:"request_timeout_sec"`
	OnlineCheckInterval int    `json:"online_check_interval_sec"`
	LogLevel            string `json:"log_level"`
}

// parseJSON overlays cfg with values from the JSON file named by -c/-config.
// When no file is given, cfg is left untouched. Zero values in the file do
// not override defaults. Panics on a file that exists but cannot be parsed;
// a broken config should stop startup, not be silently ignored.
func parseJSON(cfg *Config) {
	path := flagx.JSONConfigFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.RequestTimeoutSec > 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeoutSec) * time.Second
	}
	if jc.OnlineCheckInterval > 0 {
		cfg.OnlineCheckInterval = time.Duration(jc.OnlineCheckInterval) * time.Second
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
