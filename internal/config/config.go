// Package config holds the static source list and output settings for an
// export run.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Source is one city feed: where to fetch it and the city label stamped
// onto every exported feature.
type Source struct {
	City string `json:"city"`
	URL  string `json:"url"`
}

type Config struct {
	Sources []Source `json:"sources"`
	OutDir  string   `json:"out_dir"`
	Mode    string   `json:"mode"`
}

// Default returns the built-in configuration: the Madrid ZBE publication,
// grouped extraction, output under ./geojson.
func Default() Config {
	return Config{
		Sources: []Source{
			{
				City: "madrid",
				URL:  "https://infocar.dgt.es/datex2/v3/dgt/zbe/ControledZonePublication/Madrid.xml",
			},
		},
		OutDir: "geojson",
		Mode:   "grouped",
	}
}

// Load reads a JSON configuration file and fills unset fields from the
// defaults. Source order in the file is preserved; it determines both
// processing order and feature order in the aggregate collection.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed parsing config file %s: %w", path, err)
	}

	return cfg.withDefaults(), nil
}

// FromEnv applies ZBE_OUT_DIR and ZBE_MODE overrides on top of cfg.
func FromEnv(cfg Config) Config {
	if v := os.Getenv("ZBE_OUT_DIR"); v != "" {
		cfg.OutDir = v
	}
	if v := os.Getenv("ZBE_MODE"); v != "" {
		cfg.Mode = v
	}

	return cfg
}

func (c Config) withDefaults() Config {
	def := Default()
	if len(c.Sources) == 0 {
		c.Sources = def.Sources
	}
	if c.OutDir == "" {
		c.OutDir = def.OutDir
	}
	if c.Mode == "" {
		c.Mode = def.Mode
	}

	return c
}
