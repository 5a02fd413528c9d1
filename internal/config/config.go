package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// AppName names the config directory and the environment variable prefix.
const AppName = "mathmaster"

// Config represents the complete mathmaster configuration
type Config struct {
	Game    GameConfig    `mapstructure:"game"`
	TUI     TUIConfig     `mapstructure:"tui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// GameConfig controls drill sessions
type GameConfig struct {
	// InitialTimeSeconds is the pro-mode countdown length (default: 60)
	InitialTimeSeconds int `mapstructure:"initial_time_seconds"`
	// FeedbackDelayMs is how long a committed answer stays on screen before
	// the next problem (or the retry) is shown (default: 800)
	FeedbackDelayMs int `mapstructure:"feedback_delay_ms"`
	// DefaultTable is the table preselected in the menu (default: 1)
	DefaultTable int `mapstructure:"default_table"`
}

// TUIConfig controls the terminal UI behavior
type TUIConfig struct {
	// Theme is a built-in theme name or a path to a YAML theme file.
	// Options: "default", "monokai", "dracula", "nord", or "path/to/theme.yaml"
	Theme string `mapstructure:"theme"`
	// ShowNumpad renders the on-screen numpad under the input line
	ShowNumpad bool `mapstructure:"show_numpad"`
	// AltScreen runs the UI in the terminal's alternate screen buffer
	AltScreen bool `mapstructure:"alt_screen"`
	// Mouse makes the numpad and menu buttons clickable
	Mouse bool `mapstructure:"mouse"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the minimum log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// MaxSizeMB is the maximum size of the log file before rotation (default: 10)
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of rotated files to keep (default: 3)
	MaxBackups int `mapstructure:"max_backups"`
	// Dir overrides the log directory. Empty means <config dir>/logs.
	Dir string `mapstructure:"dir"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Game: GameConfig{
			InitialTimeSeconds: 60,
			FeedbackDelayMs:    800,
			DefaultTable:       1,
		},
		TUI: TUIConfig{
			Theme:      "default",
			ShowNumpad: true,
			AltScreen:  true,
			Mouse:      true,
		},
		Logging: LoggingConfig{
			Enabled:    true,
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			Dir:        "",
		},
	}
}

// InitialTime returns the pro-mode countdown length as a time.Duration
func (c *GameConfig) InitialTime() time.Duration {
	return time.Duration(c.InitialTimeSeconds) * time.Second
}

// FeedbackDelay returns the feedback display window as a time.Duration
func (c *GameConfig) FeedbackDelay() time.Duration {
	return time.Duration(c.FeedbackDelayMs) * time.Millisecond
}

// ResolveDir returns the directory log files are written to.
// An empty string means logging is disabled.
func (c *LoggingConfig) ResolveDir() string {
	if !c.Enabled {
		return ""
	}
	if c.Dir != "" {
		return c.Dir
	}
	return filepath.Join(ConfigDir(), "logs")
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Game defaults
	viper.SetDefault("game.initial_time_seconds", defaults.Game.InitialTimeSeconds)
	viper.SetDefault("game.feedback_delay_ms", defaults.Game.FeedbackDelayMs)
	viper.SetDefault("game.default_table", defaults.Game.DefaultTable)

	// TUI defaults
	viper.SetDefault("tui.theme", defaults.TUI.Theme)
	viper.SetDefault("tui.show_numpad", defaults.TUI.ShowNumpad)
	viper.SetDefault("tui.alt_screen", defaults.TUI.AltScreen)
	viper.SetDefault("tui.mouse", defaults.TUI.Mouse)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	// Fall back to ~/.config/mathmaster
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
