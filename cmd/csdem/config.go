package main

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// config holds the defaults ~/.csdemrc can override, read once at
// startup and layered under whatever flags the user passes explicitly
// (cobra flag values win, since they're read after config is applied).
type config struct {
	LogLevel string `yaml:"log_level"`
	Color    bool   `yaml:"color"`
}

func defaultConfig() config {
	return config{LogLevel: "info", Color: true}
}

// loadConfig reads ~/.csdemrc if present. A missing file is not an
// error; a malformed one is.
func loadConfig() (config, error) {
	cfg := defaultConfig()

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, nil
	}
	path := filepath.Join(home, ".csdemrc")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
