package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/fatih/color"
	"github.com/gridwave/bempot/internal/config"
	"github.com/spf13/cobra"
)

var (
	cGreen = color.New(color.FgGreen).SprintFunc()
	cCyan  = color.New(color.FgCyan).SprintFunc()
	cDim   = color.New(color.Faint).SprintFunc()
	cBold  = color.New(color.Bold).SprintFunc()
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage bempot configuration",
	Long: `Manage bempot configuration settings.

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (BEMPOT_*)
  2. Project config (.bempot/config.yml)
  3. User config (~/.config/bempot/config.yml)
  4. Built-in defaults`,
	Example: `  # Show the effective configuration
  bempot config show

  # Set a configuration value
  bempot config set maxThreadCount 8
  bempot config set hmat.tolerance 1e-5

  # List all known keys with their defaults
  bempot config keys`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Show the effective configuration after merging all layers.

Unknown keys present in config files are shown too; they are carried
through to the evaluation parameter list untouched.`,
	RunE: runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the project config file.

The key must be one of the known configuration keys (see 'bempot config keys').
The value is validated against the key's type before anything is written.
Use --user to write the user-level config instead of the project config.`,
	Example: `  bempot config set evaluationMode hmat
  bempot config set maxThreadCount -1
  bempot config set hmat.leafSize 64
  bempot config set verbosityLevel high --user`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List known configuration keys",
	RunE:  runConfigKeys,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file locations",
	RunE:  runConfigPath,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default configuration file",
	Long: `Create a configuration file populated with the default settings.

By default the user-level config (~/.config/bempot/config.yml) is created.
Use --project to create a project-level config instead. An existing file is
left unchanged unless --force is given.`,
	RunE: runConfigInit,
}

func init() {
	configSetCmd.Flags().Bool("user", false, "Write to the user config instead of the project config")
	configInitCmd.Flags().BoolP("project", "p", false, "Create project-level config (.bempot/config.yml)")
	configInitCmd.Flags().BoolP("force", "f", false, "Overwrite existing config with defaults")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configKeysCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	out := cmd.OutOrStdout()

	list, err := config.Load(projectConfigPath)
	if err != nil {
		printFailure(err)
		return err
	}

	keys := list.Keys()
	sort.Strings(keys)
	for _, key := range keys {
		val := list.Get(key)
		if _, known := config.KnownKeys[key]; known {
			fmt.Fprintf(out, "%s: %v\n", cCyan(key), val)
		} else {
			fmt.Fprintf(out, "%s: %v %s\n", cCyan(key), val, cDim("(unrecognized, passed through)"))
		}
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	out := cmd.OutOrStdout()
	key, value := args[0], args[1]

	user, _ := cmd.Flags().GetBool("user")
	configPath, err := targetConfigPath(user)
	if err != nil {
		return err
	}

	if err := config.SetConfigValue(configPath, key, value); err != nil {
		return err
	}

	fmt.Fprintf(out, "%s %s: %s %s\n", cGreen("✓"), cBold(key), value, cDim("("+configPath+")"))
	return nil
}

func runConfigKeys(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	paths := make([]string, 0, len(config.KnownKeys))
	for path := range config.KnownKeys {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		schema := config.KnownKeys[path]
		fmt.Fprintf(out, "%s %s\n", cBold(path), cDim("("+schema.Type.String()+")"))
		fmt.Fprintf(out, "  %s\n", schema.Description)
		fmt.Fprintf(out, "  default: %v\n", schema.Default)
	}
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	projectPath := projectConfigPath
	if projectPath == "" {
		projectPath = config.ProjectConfigPath()
	}
	fmt.Fprintf(out, "project: %s%s\n", projectPath, existsMarker(projectPath))

	userPath, err := config.UserConfigPath()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "user:    %s%s\n", userPath, existsMarker(userPath))
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	out := cmd.OutOrStdout()

	project, _ := cmd.Flags().GetBool("project")
	force, _ := cmd.Flags().GetBool("force")

	configPath, err := targetConfigPath(!project)
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); err == nil && !force {
		fmt.Fprintf(out, "%s %s: exists at %s\n", cGreen("✓"), cBold("Config"), cDim(configPath))
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	template := config.GetDefaultConfigTemplate()
	if err := os.WriteFile(configPath, []byte(template), 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintf(out, "%s %s: created at %s\n", cGreen("✓"), cBold("Config"), cDim(configPath))
	return nil
}

// targetConfigPath resolves where config writes should go.
func targetConfigPath(user bool) (string, error) {
	if user {
		path, err := config.UserConfigPath()
		if err != nil {
			return "", fmt.Errorf("resolving user config path: %w", err)
		}
		return path, nil
	}
	if projectConfigPath != "" {
		return projectConfigPath, nil
	}
	return config.ProjectConfigPath(), nil
}

func existsMarker(path string) string {
	if _, err := os.Stat(path); err == nil {
		return " " + cGreen("(exists)")
	}
	return " " + cDim("(missing)")
}
