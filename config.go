package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	"formedit/form"
)

type Config struct {
	SaveDirectory string  `toml:"save_directory"`
	StartMenu     bool    `toml:"start_menu"`
	Confirmations bool    `toml:"confirmations"`
	GridUnit      float64 `toml:"grid_unit"`
	CellWidth     float64 `toml:"cell_width"`
	CellHeight    float64 `toml:"cell_height"`
	OutputName    string  `toml:"output_name"`
	ScaleStep     float64 `toml:"scale_step"`
}

func defaultConfig() *Config {
	return &Config{
		StartMenu:     true,
		Confirmations: true,
		GridUnit:      form.DefaultGridUnit,
		CellWidth:     8,
		CellHeight:    16,
		OutputName:    form.DefaultOutputName,
		ScaleStep:     0.1,
	}
}

func defaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".formeditrc")
}

// loadConfig reads the TOML config at path. A missing file yields the
// defaults; a broken one yields the defaults and the error.
func loadConfig(path string) (*Config, error) {
	config := defaultConfig()
	if path == "" {
		return config, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return config, errors.Wrap(err, "read config")
	}
	if err := toml.Unmarshal(data, config); err != nil {
		return defaultConfig(), errors.Wrapf(err, "parse config %s", path)
	}
	config.fixup()
	return config, nil
}

func (c *Config) fixup() {
	def := defaultConfig()
	if c.GridUnit < 0 {
		c.GridUnit = def.GridUnit
	}
	if c.CellWidth <= 0 {
		c.CellWidth = def.CellWidth
	}
	if c.CellHeight <= 0 {
		c.CellHeight = def.CellHeight
	}
	if c.ScaleStep <= 0 {
		c.ScaleStep = def.ScaleStep
	}
	if strings.TrimSpace(c.OutputName) == "" {
		c.OutputName = def.OutputName
	}
	if value := c.SaveDirectory; value != "" {
		if strings.HasPrefix(value, "~") {
			if homeDir, err := os.UserHomeDir(); err == nil {
				value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
			}
		}
		if !filepath.IsAbs(value) {
			if absPath, err := filepath.Abs(value); err == nil {
				value = absPath
			}
		}
		c.SaveDirectory = value
	}
}

func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return filepath.Join(c.SaveDirectory, filename)
}
