package styles

import (
	"slices"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/mathmaster/internal/config"
)

func TestBuiltinThemes(t *testing.T) {
	themes := BuiltinThemes()
	if len(themes) != 4 {
		t.Fatalf("BuiltinThemes() returned %d themes, want 4", len(themes))
	}
	for _, name := range themes {
		if !IsBuiltinTheme(name) {
			t.Errorf("IsBuiltinTheme(%q) = false", name)
		}
	}
	if IsBuiltinTheme("solarized") {
		t.Error("IsBuiltinTheme(solarized) = true, want false")
	}
}

func TestGetPalette(t *testing.T) {
	tests := []struct {
		name    ThemeName
		primary lipgloss.Color
	}{
		{ThemeDefault, "#A78BFA"},
		{ThemeMonokai, "#F92672"},
		{ThemeDracula, "#BD93F9"},
		{ThemeNord, "#88C0D0"},
		{"unknown", "#A78BFA"},
	}

	for _, tt := range tests {
		t.Run(string(tt.name), func(t *testing.T) {
			p := GetPalette(tt.name)
			if p.Primary != tt.primary {
				t.Errorf("Primary = %q, want %q", p.Primary, tt.primary)
			}
		})
	}
}

func TestPalettesAreComplete(t *testing.T) {
	for _, name := range BuiltinThemes() {
		t.Run(name, func(t *testing.T) {
			p := GetPalette(ThemeName(name))
			colors := map[string]lipgloss.Color{
				"primary":   p.Primary,
				"secondary": p.Secondary,
				"warning":   p.Warning,
				"error":     p.Error,
				"muted":     p.Muted,
				"surface":   p.Surface,
				"text":      p.Text,
				"border":    p.Border,
				"blue":      p.Blue,
				"yellow":    p.Yellow,
			}
			for field, c := range colors {
				if !isValidHexColor(string(c)) {
					t.Errorf("%s = %q is not a hex color", field, c)
				}
			}
		})
	}
}

func TestBuiltinThemesMatchConfig(t *testing.T) {
	if !slices.Equal(BuiltinThemes(), config.BuiltinThemes()) {
		t.Errorf("styles.BuiltinThemes() = %v, config.BuiltinThemes() = %v", BuiltinThemes(), config.BuiltinThemes())
	}
}
