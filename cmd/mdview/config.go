package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// fileConfig holds defaults read from the config file. Flags given on the
// command line win over these.
type fileConfig struct {
	Theme    string `yaml:"theme"`
	Width    int    `yaml:"width"`
	Boring   *bool  `yaml:"boring"`
	LogLevel string `yaml:"log_level"`
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "mdview", "config.yaml")
}

// loadConfig reads path, or the default location when path is empty. A
// missing file is only an error when it was asked for explicitly.
func loadConfig(path string, explicit bool) (fileConfig, error) {
	var cfg fileConfig
	if path == "" {
		path = defaultConfigPath()
		if path == "" {
			return cfg, nil
		}
	}
	data, err := os.ReadFile(expandHome(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func (c fileConfig) apply(opts *options, flags *pflag.FlagSet) {
	if c.Theme != "" && !flags.Changed("theme") {
		opts.themeName = c.Theme
	}
	if c.Width > 0 && !flags.Changed("width") {
		opts.width = c.Width
	}
	if c.Boring != nil && !flags.Changed("boring") {
		opts.boring = *c.Boring
	}
	if c.LogLevel != "" && !flags.Changed("log-level") {
		opts.logLevel = c.LogLevel
	}
}
