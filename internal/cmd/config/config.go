// Package config provides CLI commands for managing mathmaster configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	appconfig "github.com/Iron-Ham/mathmaster/internal/config"
	"github.com/Iron-Ham/mathmaster/internal/errors"
	"github.com/Iron-Ham/mathmaster/internal/logging"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify mathmaster configuration",
	Long: `View or modify mathmaster configuration.

Without arguments, displays the current configuration.
Use subcommands to modify settings or create a config file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  mathmaster config set game.initial_time_seconds 90
  mathmaster config set tui.theme dracula

Valid keys:
  game.initial_time_seconds - Pro mode countdown length in seconds
  game.feedback_delay_ms    - How long a verdict stays on screen
  game.default_table        - Table preselected in the menu (1-12)
  tui.theme                 - default, monokai, dracula, nord, or a .yaml file
  tui.show_numpad           - Show the on-screen numpad (true/false)
  tui.alt_screen            - Use the alternate screen buffer (true/false)
  tui.mouse                 - Click the numpad and menu buttons (true/false)
  logging.enabled           - Write a log file (true/false)
  logging.level             - debug, info, warn, error
  logging.max_size_mb       - Rotate the log file at this size
  logging.max_backups       - Rotated log files to keep
  logging.dir               - Log directory (default: <config dir>/logs)`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/mathmaster/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

// validKeys maps each settable key to its value type.
var validKeys = map[string]string{
	"game.initial_time_seconds": "int",
	"game.feedback_delay_ms":    "int",
	"game.default_table":        "int",
	"tui.theme":                 "theme",
	"tui.show_numpad":           "bool",
	"tui.alt_screen":            "bool",
	"tui.mouse":                 "bool",
	"logging.enabled":           "bool",
	"logging.level":             "level",
	"logging.max_size_mb":       "int",
	"logging.max_backups":       "int",
	"logging.dir":               "string",
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(themeCmd)
}

// Register adds all config-related commands to the given parent command.
func Register(parent *cobra.Command) {
	parent.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := appconfig.Get()
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out)

	// Show where config is being read from
	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Config file: (none - using defaults)\n")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "game:")
	fmt.Fprintf(out, "  initial_time_seconds: %d\n", cfg.Game.InitialTimeSeconds)
	fmt.Fprintf(out, "  feedback_delay_ms: %d\n", cfg.Game.FeedbackDelayMs)
	fmt.Fprintf(out, "  default_table: %d\n", cfg.Game.DefaultTable)

	fmt.Fprintln(out, "tui:")
	fmt.Fprintf(out, "  theme: %s\n", cfg.TUI.Theme)
	fmt.Fprintf(out, "  show_numpad: %v\n", cfg.TUI.ShowNumpad)
	fmt.Fprintf(out, "  alt_screen: %v\n", cfg.TUI.AltScreen)
	fmt.Fprintf(out, "  mouse: %v\n", cfg.TUI.Mouse)

	fmt.Fprintln(out, "logging:")
	fmt.Fprintf(out, "  enabled: %v\n", cfg.Logging.Enabled)
	fmt.Fprintf(out, "  level: %s\n", cfg.Logging.Level)
	fmt.Fprintf(out, "  max_size_mb: %d\n", cfg.Logging.MaxSizeMB)
	fmt.Fprintf(out, "  max_backups: %d\n", cfg.Logging.MaxBackups)
	if dir := cfg.Logging.ResolveDir(); dir != "" {
		fmt.Fprintf(out, "  dir: %s\n", dir)
	}

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	typedValue, err := parseValue(key, value)
	if err != nil {
		return err
	}

	// Reject values the game would refuse to start with.
	previous := viper.Get(key)
	viper.Set(key, typedValue)
	cfg, err := appconfig.Load()
	if err != nil {
		viper.Set(key, previous)
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}

	// Ensure config directory exists
	configDir := appconfig.ConfigDir()
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Write to config file
	configFile := appconfig.ConfigFile()
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Set %s = %v\n", key, valueOf(cfg, key))
	fmt.Fprintf(out, "Config saved to %s\n", configFile)

	return nil
}

// parseValue converts a command-line value to the type stored for key.
func parseValue(key, value string) (any, error) {
	keyType, ok := validKeys[key]
	if !ok {
		return nil, errors.NewUsageError("unknown configuration key: %s\nRun 'mathmaster config set --help' to see valid keys", key)
	}

	switch keyType {
	case "bool":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, errors.NewUsageError("invalid value for %s: expected true or false", key)
		}
		return b, nil
	case "int":
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, errors.NewUsageError("invalid value for %s: expected integer", key)
		}
		return n, nil
	case "level":
		level := strings.ToLower(value)
		if !slices.Contains(appconfig.ValidLogLevels(), level) {
			return nil, errors.NewUsageError("invalid value for %s: %s\nValid options: %s",
				key, value, strings.Join(appconfig.ValidLogLevels(), ", "))
		}
		return level, nil
	case "theme":
		if !slices.Contains(appconfig.BuiltinThemes(), value) && !appconfig.IsThemeFile(value) {
			return nil, errors.NewUsageError("invalid value for %s: %s\nValid options: %s, or a .yaml theme file",
				key, value, strings.Join(appconfig.BuiltinThemes(), ", "))
		}
		return value, nil
	default:
		return value, nil
	}
}

// valueOf reads key back from a loaded config for display.
func valueOf(cfg *appconfig.Config, key string) any {
	switch key {
	case "game.initial_time_seconds":
		return cfg.Game.InitialTimeSeconds
	case "game.feedback_delay_ms":
		return cfg.Game.FeedbackDelayMs
	case "game.default_table":
		return cfg.Game.DefaultTable
	case "tui.theme":
		return cfg.TUI.Theme
	case "tui.show_numpad":
		return cfg.TUI.ShowNumpad
	case "tui.alt_screen":
		return cfg.TUI.AltScreen
	case "tui.mouse":
		return cfg.TUI.Mouse
	case "logging.enabled":
		return cfg.Logging.Enabled
	case "logging.level":
		return cfg.Logging.Level
	case "logging.max_size_mb":
		return cfg.Logging.MaxSizeMB
	case "logging.max_backups":
		return cfg.Logging.MaxBackups
	case "logging.dir":
		return cfg.Logging.Dir
	default:
		return nil
	}
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := appconfig.ConfigDir()
	configFile := appconfig.ConfigFile()

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil {
		return errors.NewUsageError("config file already exists at %s\nUse 'mathmaster config set' to modify values", configFile)
	}

	// Create config directory
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configFile, []byte(defaultConfigFile()), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created config file at %s\n", configFile)
	fmt.Fprintln(out, "Edit this file to customize mathmaster.")

	return nil
}

// defaultConfigFile renders a commented config file holding the defaults.
func defaultConfigFile() string {
	d := appconfig.Default()
	return fmt.Sprintf(`# mathmaster configuration

# Game settings
game:
  # Pro mode countdown length in seconds
  initial_time_seconds: %d
  # How long a correct or wrong answer stays on screen, in milliseconds
  feedback_delay_ms: %d
  # Table preselected in the menu (1-12)
  default_table: %d

# TUI (terminal user interface) settings
tui:
  # default, monokai, dracula, nord, or a path to a .yaml theme file
  theme: %s
  # Show the on-screen numpad under the answer
  show_numpad: %v
  # Run in the terminal's alternate screen buffer
  alt_screen: %v
  # Click the numpad and menu buttons
  mouse: %v

# Log file settings
logging:
  enabled: %v
  # debug, info, warn, error
  level: %s
  # Rotate the log file at this size
  max_size_mb: %d
  max_backups: %d
`,
		d.Game.InitialTimeSeconds, d.Game.FeedbackDelayMs, d.Game.DefaultTable,
		d.TUI.Theme, d.TUI.ShowNumpad, d.TUI.AltScreen, d.TUI.Mouse,
		d.Logging.Enabled, d.Logging.Level, d.Logging.MaxSizeMB, d.Logging.MaxBackups,
	)
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	configFile := appconfig.ConfigFile()
	out := cmd.OutOrStdout()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", configFile)
	}

	// Also show config search paths
	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. %s\n", filepath.Join(appconfig.ConfigDir(), "config.yaml"))
	fmt.Fprintf(out, "  2. $HOME/.config/mathmaster/config.yaml\n")
	fmt.Fprintf(out, "  3. ./config.yaml (current directory)\n")
	fmt.Fprintln(out, "\nEnvironment variables: MATHMASTER_* (e.g., MATHMASTER_GAME_INITIAL_TIME_SECONDS)")

	if dir := appconfig.Get().Logging.ResolveDir(); dir != "" {
		fmt.Fprintf(out, "\nLog file: %s\n", filepath.Join(dir, logging.FileName))
	}

	return nil
}
