package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	SaveDirectory   string
	Confirmations   bool
	ComposerOnStart bool
	LogFile         string
}

func defaultConfig() *Config {
	return &Config{
		SaveDirectory:   "",
		Confirmations:   true,
		ComposerOnStart: true,
	}
}

// loadConfig reads ~/.travellogrc, then lets ~/.config/travellog/config.yaml override
// it. A broken YAML file is ignored.
func loadConfig() *Config {
	home := homeDir()
	if home == "" {
		return defaultConfig()
	}

	config := defaultConfig()
	if file, err := os.Open(filepath.Join(home, ".travellogrc")); err == nil {
		config = parseConfig(file, home)
		file.Close()
	}

	yamlPath := filepath.Join(home, ".config", "travellog", "config.yaml")
	if file, err := os.Open(yamlPath); err == nil {
		defer file.Close()
		merged := *config
		if err := parseYAMLConfig(file, &merged, home); err == nil {
			config = &merged
		}
	}
	return config
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}

func parseConfig(r io.Reader, homeDir string) *Config {
	config := defaultConfig()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch strings.ToLower(key) {
		case "savedirectory", "save_directory", "savedir":
			config.SaveDirectory = expandPath(value, homeDir)
		case "confirmations", "confirm":
			config.Confirmations = strings.ToLower(value) == "true"
		case "composeronstart", "composer_on_start":
			config.ComposerOnStart = strings.ToLower(value) == "true"
		case "logfile", "log_file":
			config.LogFile = expandPath(value, homeDir)
		}
	}

	return config
}

type yamlConfig struct {
	SaveDirectory   string `yaml:"save_directory"`
	Confirmations   *bool  `yaml:"confirmations"`
	ComposerOnStart *bool  `yaml:"composer_on_start"`
	LogFile         string `yaml:"log_file"`
}

// parseYAMLConfig overlays the keys present in r onto config.
func parseYAMLConfig(r io.Reader, config *Config, homeDir string) error {
	var fc yamlConfig
	if err := yaml.NewDecoder(r).Decode(&fc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("failed to parse config: %w", err)
	}

	if fc.SaveDirectory != "" {
		config.SaveDirectory = expandPath(fc.SaveDirectory, homeDir)
	}
	if fc.Confirmations != nil {
		config.Confirmations = *fc.Confirmations
	}
	if fc.ComposerOnStart != nil {
		config.ComposerOnStart = *fc.ComposerOnStart
	}
	if fc.LogFile != "" {
		config.LogFile = expandPath(fc.LogFile, homeDir)
	}
	return nil
}

func expandPath(value, homeDir string) string {
	if value == "" {
		return value
	}
	if strings.HasPrefix(value, "~") {
		value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}

func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" {
		return filename
	}
	return filepath.Join(c.SaveDirectory, filename)
}
