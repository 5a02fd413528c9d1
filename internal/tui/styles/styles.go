// Package styles defines the colors and lipgloss styles used by the TUI.
//
// Styles are built from a ColorPalette, so switching themes is a matter of
// calling New with another palette. Palettes come from the built-in themes or
// from a YAML theme file (see LoadThemeFile).
package styles

import "github.com/charmbracelet/lipgloss"

// Styles holds every lipgloss style the screens render with.
type Styles struct {
	Palette *ColorPalette

	// Menu
	Title          lipgloss.Style
	SectionTitle   lipgloss.Style
	Description    lipgloss.Style
	TableButton    lipgloss.Style
	TableSelected  lipgloss.Style
	ProButton      lipgloss.Style
	ProSelected    lipgloss.Style
	MenuCard       lipgloss.Style
	MenuCardActive lipgloss.Style

	// Game
	Score         lipgloss.Style
	Time          lipgloss.Style
	TimeLow       lipgloss.Style
	ModeLabel     lipgloss.Style
	Problem       lipgloss.Style
	Input         lipgloss.Style
	Cursor        lipgloss.Style
	GameNeutral   lipgloss.Style
	GameCorrect   lipgloss.Style
	GameIncorrect lipgloss.Style

	// Numpad
	Key       lipgloss.Style
	KeyActive lipgloss.Style
	KeyClear  lipgloss.Style
	KeyDelete lipgloss.Style

	// Game over
	GameOverTitle lipgloss.Style
	FinalLabel    lipgloss.Style
	FinalScore    lipgloss.Style
	PlayAgain     lipgloss.Style

	// Chrome
	Help      lipgloss.Style
	ErrorText lipgloss.Style
}

// New builds the style set for a palette. A nil palette uses DefaultPalette.
func New(p *ColorPalette) *Styles {
	if p == nil {
		p = DefaultPalette()
	}

	button := lipgloss.NewStyle().
		Foreground(p.Text).
		Background(p.Surface).
		Width(6).
		Align(lipgloss.Center).
		Padding(0, 1).
		Margin(0, 1, 1, 0)

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(1, 2).
		Width(44)

	gameBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(1, 4).
		Width(36).
		Align(lipgloss.Center)

	key := lipgloss.NewStyle().
		Foreground(p.Text).
		Background(p.Surface).
		Width(7).
		Align(lipgloss.Center).
		Margin(0, 1, 0, 0)

	return &Styles{
		Palette: p,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary).
			MarginBottom(1),
		SectionTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Text),
		Description: lipgloss.NewStyle().
			Foreground(p.Muted),
		TableButton:    button,
		TableSelected:  button.Bold(true).Foreground(p.Surface).Background(p.Blue),
		ProButton:      button.Width(18),
		ProSelected:    button.Width(18).Bold(true).Foreground(p.Surface).Background(p.Primary),
		MenuCard:       card,
		MenuCardActive: card.BorderForeground(p.Primary),

		Score: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Yellow),
		Time: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Warning),
		TimeLow: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Error),
		ModeLabel: lipgloss.NewStyle().
			Foreground(p.Blue),
		Problem: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Text).
			MarginTop(1).
			MarginBottom(1),
		Input: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Text),
		Cursor: lipgloss.NewStyle().
			Foreground(p.Muted).
			Blink(true),
		GameNeutral:   gameBox.BorderForeground(p.Border),
		GameCorrect:   gameBox.BorderForeground(p.Secondary),
		GameIncorrect: gameBox.BorderForeground(p.Error),

		Key:       key,
		KeyActive: key.Bold(true).Foreground(p.Surface).Background(p.Primary),
		KeyClear:  key.Foreground(p.Error),
		KeyDelete: key.Foreground(p.Warning),

		GameOverTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Error).
			MarginBottom(1),
		FinalLabel: lipgloss.NewStyle().
			Foreground(p.Muted),
		FinalScore: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Yellow).
			MarginTop(1).
			MarginBottom(1),
		PlayAgain: button.Width(14).Bold(true).Foreground(p.Surface).Background(p.Secondary),

		Help: lipgloss.NewStyle().
			Foreground(p.Muted).
			MarginTop(1),
		ErrorText: lipgloss.NewStyle().
			Foreground(p.Error),
	}
}

// Resolve returns the style set for a tui.theme setting.
func Resolve(theme string) (*Styles, error) {
	p, err := ResolvePalette(theme)
	if err != nil {
		return nil, err
	}
	return New(p), nil
}
