package styles

import (
	"fmt"
	"os"
	"regexp"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/mathmaster/internal/config"
	"github.com/Iron-Ham/mathmaster/internal/errors"
)

// ThemeFile represents a custom theme definition loaded from YAML.
type ThemeFile struct {
	// Name is the theme's display name (e.g., "Solarized Dark")
	Name string `yaml:"name"`
	// Author is the theme creator's name (optional)
	Author string `yaml:"author,omitempty"`
	// Description provides details about the theme (optional)
	Description string `yaml:"description,omitempty"`
	// Version is the theme file format version (currently "1")
	Version string `yaml:"version"`
	// Colors defines the color palette
	Colors ThemeColors `yaml:"colors"`
}

// ThemeColors contains all color definitions for a theme.
// All colors should be hex format (#RRGGBB or #RGB).
type ThemeColors struct {
	Primary   string `yaml:"primary"`
	Secondary string `yaml:"secondary"`
	Warning   string `yaml:"warning"`
	Error     string `yaml:"error"`
	Muted     string `yaml:"muted"`
	Surface   string `yaml:"surface"`
	Text      string `yaml:"text"`
	Border    string `yaml:"border"`

	// Accent colors (optional - default to base colors if not specified)
	Accents ThemeAccentColors `yaml:"accents,omitempty"`
}

// ThemeAccentColors defines additional accent colors.
type ThemeAccentColors struct {
	Blue   string `yaml:"blue,omitempty"`
	Yellow string `yaml:"yellow,omitempty"`
}

// hexColorRegex validates hex color format.
var hexColorRegex = regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

// LoadThemeFile loads a theme from a YAML file.
func LoadThemeFile(path string) (*ThemeFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("theme", path).WithCause(errors.ErrThemeNotFound)
		}
		return nil, fmt.Errorf("reading theme file: %w", err)
	}

	var theme ThemeFile
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return nil, fmt.Errorf("parsing theme file: %w", err)
	}

	if err := theme.Validate(); err != nil {
		return nil, fmt.Errorf("invalid theme: %w", err)
	}

	return &theme, nil
}

// Validate checks that the theme file is well-formed.
func (t *ThemeFile) Validate() error {
	if t.Name == "" {
		return errors.NewValidationError("theme name is required").WithField("name")
	}
	if t.Version != "1" {
		return errors.NewValidationError("unsupported theme version (supported: 1)").
			WithField("version").WithValue(t.Version)
	}

	required := []struct{ name, color string }{
		{"primary", t.Colors.Primary},
		{"secondary", t.Colors.Secondary},
		{"warning", t.Colors.Warning},
		{"error", t.Colors.Error},
		{"muted", t.Colors.Muted},
		{"surface", t.Colors.Surface},
		{"text", t.Colors.Text},
		{"border", t.Colors.Border},
	}
	for _, c := range required {
		if c.color == "" {
			return errors.NewValidationError("color is required").WithField("colors." + c.name)
		}
		if !isValidHexColor(c.color) {
			return errors.NewValidationError("expected #RGB or #RRGGBB").
				WithField("colors." + c.name).WithValue(c.color)
		}
	}

	optional := []struct{ name, color string }{
		{"accents.blue", t.Colors.Accents.Blue},
		{"accents.yellow", t.Colors.Accents.Yellow},
	}
	for _, c := range optional {
		if c.color != "" && !isValidHexColor(c.color) {
			return errors.NewValidationError("expected #RGB or #RRGGBB").
				WithField("colors." + c.name).WithValue(c.color)
		}
	}

	return nil
}

func isValidHexColor(color string) bool {
	return hexColorRegex.MatchString(color)
}

// ToPalette converts the theme file to a ColorPalette.
func (t *ThemeFile) ToPalette() *ColorPalette {
	return &ColorPalette{
		Primary:   lipgloss.Color(t.Colors.Primary),
		Secondary: lipgloss.Color(t.Colors.Secondary),
		Warning:   lipgloss.Color(t.Colors.Warning),
		Error:     lipgloss.Color(t.Colors.Error),
		Muted:     lipgloss.Color(t.Colors.Muted),
		Surface:   lipgloss.Color(t.Colors.Surface),
		Text:      lipgloss.Color(t.Colors.Text),
		Border:    lipgloss.Color(t.Colors.Border),
		Blue:      colorOrDefault(t.Colors.Accents.Blue, t.Colors.Primary),
		Yellow:    colorOrDefault(t.Colors.Accents.Yellow, t.Colors.Warning),
	}
}

// colorOrDefault returns the color if non-empty, otherwise returns the default.
func colorOrDefault(color, defaultColor string) lipgloss.Color {
	if color != "" {
		return lipgloss.Color(color)
	}
	return lipgloss.Color(defaultColor)
}

// ResolvePalette maps a tui.theme setting to a palette: empty means the
// default theme, a .yaml/.yml value is loaded from disk, anything else must
// be a built-in name.
func ResolvePalette(theme string) (*ColorPalette, error) {
	switch {
	case theme == "":
		return DefaultPalette(), nil
	case config.IsThemeFile(theme):
		file, err := LoadThemeFile(theme)
		if err != nil {
			return nil, err
		}
		return file.ToPalette(), nil
	case IsBuiltinTheme(theme):
		return GetPalette(ThemeName(theme)), nil
	default:
		return nil, errors.NewNotFoundError("theme", theme).WithCause(errors.ErrThemeNotFound)
	}
}

// NewThemeFile describes a palette as a theme file.
func NewThemeFile(name string, p *ColorPalette) *ThemeFile {
	return &ThemeFile{
		Name:    name,
		Version: "1",
		Colors: ThemeColors{
			Primary:   string(p.Primary),
			Secondary: string(p.Secondary),
			Warning:   string(p.Warning),
			Error:     string(p.Error),
			Muted:     string(p.Muted),
			Surface:   string(p.Surface),
			Text:      string(p.Text),
			Border:    string(p.Border),
			Accents: ThemeAccentColors{
				Blue:   string(p.Blue),
				Yellow: string(p.Yellow),
			},
		},
	}
}

// ExportTheme renders a built-in theme as YAML, ready to be edited and
// loaded back with LoadThemeFile.
func ExportTheme(name ThemeName) ([]byte, error) {
	if !IsBuiltinTheme(string(name)) {
		return nil, errors.NewNotFoundError("theme", string(name)).WithCause(errors.ErrThemeNotFound)
	}
	data, err := yaml.Marshal(NewThemeFile(string(name), GetPalette(name)))
	if err != nil {
		return nil, fmt.Errorf("encoding theme: %w", err)
	}
	return data, nil
}
