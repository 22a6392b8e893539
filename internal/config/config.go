// Package config provides hierarchical configuration management for bempot
// using koanf. Configuration is loaded with priority: environment variables >
// project config (.bempot/config.yml) > user config (~/.config/bempot/config.yml)
// > defaults. Legacy JSON configs are still read, with a migration warning.
//
// Loading produces a parameter list; the evaluation-options core extracts the
// recognized keys from it and preserves everything else for downstream
// consumers.
package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gridwave/bempot/internal/options"
	"github.com/gridwave/bempot/internal/params"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envPrefix is the prefix for environment variable overrides.
const envPrefix = "BEMPOT_"

// LoadOptions configures how configuration is loaded.
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .bempot/config.yml)
	ProjectConfigPath string
	// WarningWriter receives deprecation warnings (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses deprecation warnings
	SkipWarnings bool
}

// Load loads the evaluation parameter list from user, project, and
// environment sources.
// Priority: Environment variables > Project config > User config > Defaults
func Load(projectConfigPath string) (*params.List, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads the parameter list with custom options.
func LoadWithOptions(opts LoadOptions) (*params.List, error) {
	k := koanf.New(params.Delim)
	warningWriter := getWarningWriter(opts.WarningWriter)

	loadDefaults(k)

	if err := loadUserConfig(k, warningWriter, opts.SkipWarnings); err != nil {
		return nil, err
	}

	if err := loadProjectConfig(k, opts.ProjectConfigPath, warningWriter, opts.SkipWarnings); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return params.FromKoanf(k), nil
}

// LoadEvaluationOptions loads the parameter list and constructs validated
// evaluation options from it.
func LoadEvaluationOptions(projectConfigPath string) (*options.EvaluationOptions, error) {
	list, err := Load(projectConfigPath)
	if err != nil {
		return nil, err
	}
	return options.FromParameterList(list)
}

// getWarningWriter returns the warning writer or defaults to stderr.
func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// loadDefaults applies default configuration values.
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads user-level config (YAML preferred, legacy JSON supported).
// Priority: YAML (~/.config/bempot/config.yml) > JSON (~/.bempot/config.json).
func loadUserConfig(k *koanf.Koanf, warningWriter io.Writer, skipWarnings bool) error {
	userYAMLPath, _ := UserConfigPath()
	legacyUserPath, _ := LegacyUserConfigPath()

	switch {
	case fileExists(userYAMLPath):
		if err := loadYAMLConfig(k, userYAMLPath, "user"); err != nil {
			return fmt.Errorf("loading user YAML config: %w", err)
		}
	case fileExists(legacyUserPath):
		if err := loadLegacyJSONConfig(k, legacyUserPath, "user", warningWriter, skipWarnings); err != nil {
			return fmt.Errorf("loading legacy user JSON config: %w", err)
		}
	}
	return nil
}

// loadProjectConfig loads project-level config (YAML preferred, legacy JSON
// supported). Supports custom path override (for testing).
func loadProjectConfig(k *koanf.Koanf, customPath string, warningWriter io.Writer, skipWarnings bool) error {
	projectYAMLPath := ProjectConfigPath()
	if customPath != "" {
		projectYAMLPath = customPath
	}
	legacyProjectPath := LegacyProjectConfigPath()

	switch {
	case fileExists(projectYAMLPath):
		if err := loadYAMLConfig(k, projectYAMLPath, "project"); err != nil {
			return fmt.Errorf("loading project YAML config: %w", err)
		}
	case fileExists(legacyProjectPath):
		if err := loadLegacyJSONConfig(k, legacyProjectPath, "project", warningWriter, skipWarnings); err != nil {
			return fmt.Errorf("loading legacy project JSON config: %w", err)
		}
	}
	return nil
}

// loadYAMLConfig validates and loads a YAML config file.
func loadYAMLConfig(k *koanf.Koanf, path, configType string) error {
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadLegacyJSONConfig loads legacy JSON and warns about migration.
func loadLegacyJSONConfig(k *koanf.Koanf, path, configType string, warningWriter io.Writer, skipWarnings bool) error {
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return fmt.Errorf("failed to load legacy %s config %s: %w", configType, path, err)
	}
	if !skipWarnings {
		fmt.Fprintf(warningWriter, "Warning: Using deprecated JSON config at %s\n", path)
		fmt.Fprintf(warningWriter, "  Rewrite it as %s config.yml in YAML format.\n\n", configType)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides.
func loadEnvironmentConfig(k *koanf.Koanf) error {
	provider := env.ProviderWithValue(envPrefix, params.Delim, func(key, value string) (string, interface{}) {
		return envTransform(key), parseEnvValue(value)
	})
	if err := k.Load(provider, nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// parseEnvValue coerces an environment variable value into the closed
// parameter kind set. Environment values arrive as strings; numeric and
// boolean literals are converted so typed lookups see the right kind.
func parseEnvValue(value string) interface{} {
	trimmed := strings.TrimSpace(value)
	if n, err := strconv.Atoi(trimmed); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(trimmed); err == nil {
		return b
	}
	return value
}

// envTransform converts environment variable names to parameter keys.
// Examples:
//
//	BEMPOT_MAX_THREAD_COUNT -> maxThreadCount
//	BEMPOT_HMAT_LEAF_SIZE   -> hmat.leafSize
func envTransform(s string) string {
	tokens := strings.Split(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_")
	if len(tokens) > 1 && tokens[0] == "hmat" {
		return "hmat" + params.Delim + camelJoin(tokens[1:])
	}
	return camelJoin(tokens)
}

// camelJoin joins lowercase tokens into a camelCase key.
func camelJoin(tokens []string) string {
	var sb strings.Builder
	for i, tok := range tokens {
		if tok == "" {
			continue
		}
		if i == 0 {
			sb.WriteString(tok)
			continue
		}
		sb.WriteString(strings.ToUpper(tok[:1]))
		sb.WriteString(tok[1:])
	}
	return sb.String()
}

// fileExists returns true if the file exists and is readable.
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
