package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	apperrors "github.com/Iron-Ham/mathmaster/internal/errors"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "game.default_table")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// IsUserFacing reports that validation messages are written for the user.
func (e ValidationErrors) IsUserFacing() bool { return true }

// Severity reports validation failures as warnings.
func (e ValidationErrors) Severity() apperrors.Severity { return apperrors.SeverityWarning }

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// BuiltinThemes returns the theme names accepted without a file.
// Must match the palettes registered in tui/styles (kept separate to avoid
// an import cycle).
func BuiltinThemes() []string {
	return []string{"default", "monokai", "dracula", "nord"}
}

// IsThemeFile reports whether a theme value names a YAML file rather than a
// built-in theme.
func IsThemeFile(theme string) bool {
	ext := strings.ToLower(filepath.Ext(theme))
	return ext == ".yaml" || ext == ".yml"
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateGame()...)
	errors = append(errors, c.validateTUI()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

// validateGame validates the GameConfig
func (c *Config) validateGame() []ValidationError {
	var errors []ValidationError

	if c.Game.InitialTimeSeconds <= 0 {
		errors = append(errors, ValidationError{
			Field:   "game.initial_time_seconds",
			Value:   c.Game.InitialTimeSeconds,
			Message: "must be positive",
		})
	}

	const maxInitialTime = 3600
	if c.Game.InitialTimeSeconds > maxInitialTime {
		errors = append(errors, ValidationError{
			Field:   "game.initial_time_seconds",
			Value:   c.Game.InitialTimeSeconds,
			Message: fmt.Sprintf("exceeds maximum of %d seconds", maxInitialTime),
		})
	}

	if c.Game.FeedbackDelayMs <= 0 {
		errors = append(errors, ValidationError{
			Field:   "game.feedback_delay_ms",
			Value:   c.Game.FeedbackDelayMs,
			Message: "must be positive",
		})
	}

	const maxFeedbackDelay = 10000
	if c.Game.FeedbackDelayMs > maxFeedbackDelay {
		errors = append(errors, ValidationError{
			Field:   "game.feedback_delay_ms",
			Value:   c.Game.FeedbackDelayMs,
			Message: fmt.Sprintf("exceeds maximum of %dms", maxFeedbackDelay),
		})
	}

	// These bounds must match problem.MinTable and problem.MaxTable.
	if c.Game.DefaultTable < 1 || c.Game.DefaultTable > 12 {
		errors = append(errors, ValidationError{
			Field:   "game.default_table",
			Value:   c.Game.DefaultTable,
			Message: "must be between 1 and 12",
		})
	}

	return errors
}

// validateTUI validates the TUIConfig
func (c *Config) validateTUI() []ValidationError {
	var errors []ValidationError

	if c.TUI.Theme != "" && !IsThemeFile(c.TUI.Theme) && !slices.Contains(BuiltinThemes(), c.TUI.Theme) {
		errors = append(errors, ValidationError{
			Field:   "tui.theme",
			Value:   c.TUI.Theme,
			Message: fmt.Sprintf("must be one of: %s, or a .yaml theme file", strings.Join(BuiltinThemes(), ", ")),
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	// Validate log level
	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	// Max size must be positive
	if c.Logging.MaxSizeMB <= 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must be positive",
		})
	}

	// Reasonable upper bound for log file size
	const maxLogSizeMB = 1000 // 1GB
	if c.Logging.MaxSizeMB > maxLogSizeMB {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: fmt.Sprintf("exceeds maximum of %dMB", maxLogSizeMB),
		})
	}

	// Max backups must be non-negative
	if c.Logging.MaxBackups < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must be non-negative",
		})
	}

	return errors
}
