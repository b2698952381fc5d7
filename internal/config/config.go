package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/TudorHulban/taskscheduler/internal/metrics"
	"github.com/TudorHulban/taskscheduler/internal/solver"
)

// EnvPrefix marks environment overrides, SCHED_SOLVER__HORIZON sets solver.horizon.
const EnvPrefix = "SCHED_"

type Config struct {
	Solver  solver.Config  `json:"solver"`
	Logging LoggingConfig  `json:"logging"`
	Metrics metrics.Config `json:"metrics"`
}

// Default is the configuration used without any file.
func Default() *Config {
	var cfg Config

	cfg.SetDefaults()

	return &cfg
}

func (c *Config) SetDefaults() {
	c.Solver.SetDefaults()
	c.Logging.SetDefaults()
	c.Metrics.SetDefaults()
}

func (c Config) Validate() error {
	if err := c.Solver.Validate(); err != nil {
		return err
	}

	if err := c.Logging.Validate(); err != nil {
		return err
	}

	return c.Metrics.Validate()
}

// Load reads the file at path, then applies environment overrides.
// An empty path loads the environment only.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		var parser koanf.Parser

		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil,
				fmt.Errorf("unsupported config format: %s", filepath.Ext(path))
		}

		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil,
				fmt.Errorf("load config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))

		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil,
			err
	}

	var cfg Config

	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil,
			fmt.Errorf("decode config: %w", err)
	}

	cfg.SetDefaults()

	if err := cfg.Validate(); err != nil {
		return nil,
			err
	}

	return &cfg,
		nil
}
