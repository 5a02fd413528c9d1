package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/mathmaster/internal/flow"
	"github.com/Iron-Ham/mathmaster/internal/problem"
	"github.com/Iron-Ham/mathmaster/internal/tui/keymap"
)

// Numpad labels for the non-digit keys.
const (
	labelClear  = "Clear"
	labelDelete = "⌫"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case runTaskMsg:
		msg.run()
		return m, nil

	case flashExpiredMsg:
		if msg.seq == m.flashSeq {
			m.pressed = ""
		}
		return m, nil

	case configReloadedMsg:
		return m.handleConfigReload(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m Model) handleConfigReload(msg configReloadedMsg) Model {
	if msg.err != nil {
		m.logger.Warn("config reload rejected", "error", msg.err.Error())
		m.err = msg.err
		return m
	}
	if msg.styles != nil {
		m.applyStyles(msg.styles)
	}
	m.showNumpad = msg.showNumpad
	m.ctrl.SetSettings(msg.settings)
	m.logger.Info("config reloaded",
		"initial_time", msg.settings.InitialTime.String(),
		"feedback_delay", msg.settings.FeedbackDelay.String(),
	)
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd, ok := m.keys.GetBinding(msg, m.mode())
	if !ok {
		return m, nil
	}
	if cmd == keymap.CmdQuit {
		m.quitting = true
		return m, tea.Quit
	}
	m.err = nil

	switch m.mode() {
	case keymap.ModeGame:
		return m.handleGameCommand(cmd, msg)
	case keymap.ModeGameOver:
		if cmd == keymap.CmdPlayAgain {
			m = m.playAgain()
		}
		return m, nil
	default:
		return m.handleMenuCommand(cmd, msg), nil
	}
}

func (m Model) handleMenuCommand(cmd keymap.Command, msg tea.KeyMsg) Model {
	switch cmd {
	case keymap.CmdMoveLeft:
		if m.cursor > 0 {
			m.cursor--
		}
	case keymap.CmdMoveRight:
		if m.cursor < menuProButton {
			m.cursor++
		}
	case keymap.CmdMoveUp:
		switch {
		case m.cursor == menuProButton:
			m.cursor = menuProButton - menuColumns
		case m.cursor >= menuColumns:
			m.cursor -= menuColumns
		}
	case keymap.CmdMoveDown:
		switch {
		case m.cursor == menuProButton:
		case m.cursor+menuColumns >= menuProButton:
			m.cursor = menuProButton
		default:
			m.cursor += menuColumns
		}
	case keymap.CmdSelect:
		if m.cursor == menuProButton {
			return m.startPro()
		}
		return m.startPractice(m.cursor + 1)
	case keymap.CmdStartPro:
		m.cursor = menuProButton
		return m.startPro()
	case keymap.CmdJumpToTable:
		table := int(msg.Runes[0] - '0')
		if table == 0 {
			table = 10
		}
		m.cursor = table - 1
		return m.startPractice(table)
	}
	return m
}

func (m Model) startPractice(table int) Model {
	if err := m.ctrl.StartPractice(table); err != nil {
		m.logger.Error("failed to start practice", "table", table, "error", err.Error())
		m.err = err
	}
	return m
}

func (m Model) startPro() Model {
	if err := m.ctrl.StartPro(); err != nil {
		m.logger.Error("failed to start pro mode", "error", err.Error())
		m.err = err
	}
	return m
}

func (m Model) handleGameCommand(cmd keymap.Command, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch cmd {
	case keymap.CmdDigit:
		d := msg.Runes[0]
		m.ctrl.SubmitDigit(d)
		return m.flash(string(d))
	case keymap.CmdDeleteDigit:
		m.ctrl.DeleteLastDigit()
		return m.flash(labelDelete)
	case keymap.CmdClearInput:
		m.ctrl.ClearInput()
		return m.flash(labelClear)
	case keymap.CmdBackToMenu:
		m.ctrl.Abandon()
		m.pressed = ""
		m = m.restoreCursor()
	}
	return m, nil
}

func (m Model) playAgain() Model {
	m.ctrl.PlayAgain()
	return m.restoreCursor()
}

// restoreCursor puts the menu cursor back on the button that started the
// last session.
func (m Model) restoreCursor() Model {
	switch {
	case m.ctrl.LastMode() == problem.ModePro:
		m.cursor = menuProButton
	case problem.ValidTable(m.ctrl.Table()):
		m.cursor = m.ctrl.Table() - 1
	}
	return m
}

// handleMouse treats a left click on a button like its key.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	_, zones := scanZones(m.render())
	id, ok := zoneAt(zones, msg.X, msg.Y)
	if !ok {
		return m, nil
	}
	m.err = nil

	switch m.ctrl.Screen() {
	case flow.ScreenPractice, flow.ScreenPro:
		switch {
		case id == zoneClear:
			m.ctrl.ClearInput()
			return m.flash(labelClear)
		case id == zoneDelete:
			m.ctrl.DeleteLastDigit()
			return m.flash(labelDelete)
		case id >= zoneDigit && id <= zoneDigit+9:
			d := rune('0' + int(id-zoneDigit))
			m.ctrl.SubmitDigit(d)
			return m.flash(string(d))
		}
	case flow.ScreenGameOver:
		if id == zonePlayAgain {
			return m.playAgain(), nil
		}
	default:
		switch {
		case id == zonePro:
			m.cursor = menuProButton
			return m.startPro(), nil
		case problem.ValidTable(int(id)):
			m.cursor = int(id) - 1
			return m.startPractice(int(id)), nil
		}
	}
	return m, nil
}

// flash highlights a numpad key until keyFlashDuration passes.
func (m Model) flash(label string) (tea.Model, tea.Cmd) {
	if !m.showNumpad || !m.ctrl.Screen().InGame() {
		return m, nil
	}
	m.flashSeq++
	m.pressed = label
	return m, flashExpired(m.flashSeq)
}
