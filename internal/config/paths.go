package config

import (
	"os"
	"path/filepath"
)

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/bempot/config.yml
// - macOS: ~/Library/Application Support/bempot/config.yml
// - Windows: %APPDATA%\bempot\config.yml
//
// If XDG_CONFIG_HOME is set, it will be respected on Linux.
func UserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "bempot", "config.yml"), nil
}

// UserConfigDir returns the path to the user-level config directory.
func UserConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "bempot"), nil
}

// ProjectConfigPath returns the path to the project-level config file.
// This is always .bempot/config.yml relative to the current directory.
func ProjectConfigPath() string {
	return filepath.Join(".bempot", "config.yml")
}

// ProjectConfigDir returns the path to the project-level config directory.
func ProjectConfigDir() string {
	return ".bempot"
}

// LegacyUserConfigPath returns the path to the legacy user-level JSON config
// file: ~/.bempot/config.json
func LegacyUserConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".bempot", "config.json"), nil
}

// LegacyProjectConfigPath returns the path to the legacy project-level JSON
// config file: .bempot/config.json
func LegacyProjectConfigPath() string {
	return filepath.Join(".bempot", "config.json")
}
