// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	UI        UIConfig    `toml:"ui"`
	Audience  PagerConfig `toml:"audience"`
	Library   PagerConfig `toml:"library"`
	Downloads PagerConfig `toml:"downloads"`
	Data      DataConfig  `toml:"data"`
	Log       LogConfig   `toml:"log"`
}

// UIConfig maps interface settings.
type UIConfig struct {
	PageSize    *int `toml:"page-size"`
	LoadDelayMs *int `toml:"load-delay-ms"`
}

// PagerConfig maps the pager settings of one screen group.
type PagerConfig struct {
	PageSize *int    `toml:"page-size"`
	Scope    *string `toml:"selection-scope"`
}

// DataConfig maps mock dataset settings.
type DataConfig struct {
	Seed        *int64 `toml:"seed"`
	Members     *int   `toml:"members"`
	Sales       *int   `toml:"sales"`
	Posts       *int   `toml:"posts"`
	Collections *int   `toml:"collections"`
	Downloads   *int   `toml:"downloads"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
	File  *string `toml:"file"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
