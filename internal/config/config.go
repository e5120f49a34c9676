package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Config holds the server settings read from YAML.
type Config struct {
	Addr                   string   `yaml:"addr"`
	AllowOrigins           []string `yaml:"allow_origins"`
	MatchmakingTickSeconds int      `yaml:"matchmaking_tick_seconds"`
}

func Default() *Config {
	return &Config{
		Addr:                   ":3000",
		AllowOrigins:           []string{"http://localhost:5173"},
		MatchmakingTickSeconds: 1,
	}
}

// Load reads the config file at path, falling back to defaults when the
// file does not exist. Fields absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Addr == "" {
		cfg.Addr = Default().Addr
	}
	if cfg.MatchmakingTickSeconds <= 0 {
		cfg.MatchmakingTickSeconds = Default().MatchmakingTickSeconds
	}
	return cfg, nil
}

func (c *Config) MatchmakingTick() time.Duration {
	return time.Duration(c.MatchmakingTickSeconds) * time.Second
}
