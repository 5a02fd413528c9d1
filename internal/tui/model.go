package tui

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/mathmaster/internal/flow"
	"github.com/Iron-Ham/mathmaster/internal/logging"
	"github.com/Iron-Ham/mathmaster/internal/problem"
	"github.com/Iron-Ham/mathmaster/internal/tui/keymap"
	"github.com/Iron-Ham/mathmaster/internal/tui/styles"
)

// Menu layout: twelve table buttons in rows of menuColumns, then the pro button.
const (
	menuColumns   = 4
	menuProButton = problem.MaxTable
)

// Model is the bubbletea model. Game state lives in the flow controller;
// the model only keeps presentation state.
type Model struct {
	ctrl   *flow.Controller
	keys   *keymap.Keymap
	help   help.Model
	styles *styles.Styles
	logger *logging.Logger

	showNumpad bool

	// cursor is the focused menu button: 0-11 for tables 1-12, then pro.
	cursor int

	// pressed is the numpad label currently highlighted.
	pressed  string
	flashSeq int

	width  int
	height int

	// err is the last setup error, shown under the screen until the next key.
	err error

	quitting bool
}

// ModelOptions configures NewModel.
type ModelOptions struct {
	Styles     *styles.Styles
	Keymap     *keymap.Keymap
	Logger     *logging.Logger
	ShowNumpad bool
}

// NewModel creates a model rendering ctrl.
func NewModel(ctrl *flow.Controller, opts ModelOptions) Model {
	st := opts.Styles
	if st == nil {
		st = styles.New(nil)
	}
	km := opts.Keymap
	if km == nil {
		km = keymap.DefaultKeymap()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}

	m := Model{
		ctrl:       ctrl,
		keys:       km,
		help:       help.New(),
		logger:     logger.WithComponent("tui"),
		showNumpad: opts.ShowNumpad,
	}
	m.applyStyles(st)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) applyStyles(st *styles.Styles) {
	m.styles = st
	p := st.Palette
	m.help.Styles.ShortKey = lipgloss.NewStyle().Foreground(p.Primary)
	m.help.Styles.ShortDesc = lipgloss.NewStyle().Foreground(p.Muted)
	m.help.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(p.Border)
}

// mode maps the visible screen to its key bindings.
func (m Model) mode() keymap.Mode {
	switch m.ctrl.Screen() {
	case flow.ScreenPractice, flow.ScreenPro:
		return keymap.ModeGame
	case flow.ScreenGameOver:
		return keymap.ModeGameOver
	default:
		return keymap.ModeMenu
	}
}
