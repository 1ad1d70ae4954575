package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
)

const defaultConfigPath = "rowskema.toml"

// cliConfig is the effective CLI configuration after overlaying the file.
type cliConfig struct {
	LogLevel zerolog.Level
	Format   string
	Lang     string
	Color    bool
}

func defaultConfig() cliConfig {
	return cliConfig{LogLevel: zerolog.ErrorLevel, Format: "yaml", Lang: "en", Color: true}
}

// rowskema.toml key mapping.
type fileConfig struct {
	LogLevel string `toml:"log_level"`
	Format   string `toml:"format"`
	Lang     string `toml:"lang"`
	Color    bool   `toml:"color"`
}

// loadConfig overlays path onto the defaults. A missing file is only an
// error when the path was given explicitly.
func loadConfig(path string, explicit bool) (cliConfig, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return cliConfig{}, fmt.Errorf("load rowskema config: %w", err)
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return cliConfig{}, fmt.Errorf("load rowskema config: %w", err)
	}
	if meta.IsDefined("log_level") {
		lvl, err := zerolog.ParseLevel(strings.TrimSpace(raw.LogLevel))
		if err != nil {
			return cliConfig{}, fmt.Errorf("load rowskema config: log_level: %w", err)
		}
		cfg.LogLevel = lvl
	}
	if meta.IsDefined("format") {
		cfg.Format = strings.TrimSpace(raw.Format)
	}
	if meta.IsDefined("lang") {
		cfg.Lang = strings.TrimSpace(raw.Lang)
	}
	if meta.IsDefined("color") {
		cfg.Color = raw.Color
	}
	if err := validFormat(cfg.Format); err != nil {
		return cliConfig{}, fmt.Errorf("load rowskema config: %w", err)
	}
	return cfg, nil
}

func validFormat(f string) error {
	switch f {
	case "yaml", "json", "jsonschema":
		return nil
	}
	return fmt.Errorf("unsupported format %q (expected yaml, json or jsonschema)", f)
}
