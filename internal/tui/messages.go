package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/mathmaster/internal/flow"
	"github.com/Iron-Ham/mathmaster/internal/tui/styles"
)

// keyFlashDuration is how long a numpad key stays highlighted after a press.
const keyFlashDuration = 150 * time.Millisecond

// runTaskMsg carries a due countdown or feedback callback onto the event loop.
type runTaskMsg struct {
	run func()
}

// flashExpiredMsg clears the numpad highlight if no newer press replaced it.
type flashExpiredMsg struct {
	seq int
}

// configReloadedMsg is sent when the config file changes on disk.
type configReloadedMsg struct {
	styles     *styles.Styles
	settings   flow.Settings
	showNumpad bool
	err        error
}

func flashExpired(seq int) tea.Cmd {
	return tea.Tick(keyFlashDuration, func(time.Time) tea.Msg {
		return flashExpiredMsg{seq: seq}
	})
}
