// Package keymap provides key binding definitions and lookup for the TUI.
// Each screen has its own declarative set of bindings, so the Update loop
// asks the keymap for a Command instead of switching on raw key strings.
package keymap

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Mode represents the screen whose bindings are active.
type Mode string

const (
	ModeMenu     Mode = "menu"     // Table grid and pro button
	ModeGame     Mode = "game"     // Practice or pro drill
	ModeGameOver Mode = "gameover" // Final score
)

// Command represents a named action that can be triggered by a key binding.
type Command string

// Menu commands
const (
	CmdMoveUp      Command = "move_up"
	CmdMoveDown    Command = "move_down"
	CmdMoveLeft    Command = "move_left"
	CmdMoveRight   Command = "move_right"
	CmdSelect      Command = "select"
	CmdStartPro    Command = "start_pro"
	CmdJumpToTable Command = "jump_to_table" // 0-9 keys
)

// Game commands
const (
	CmdDigit       Command = "digit" // 0-9 keys
	CmdDeleteDigit Command = "delete_digit"
	CmdClearInput  Command = "clear_input"
	CmdBackToMenu  Command = "back_to_menu"
)

// Game over commands
const (
	CmdPlayAgain Command = "play_again"
)

// Global commands
const (
	CmdQuit Command = "quit"
)

// KeyBinding represents a single key binding configuration.
type KeyBinding struct {
	// KeyType is the key for this binding. For rune keys use tea.KeyRunes
	// and set Rune.
	KeyType tea.KeyType

	// Rune is the character for rune-based keys (when KeyType is tea.KeyRunes).
	Rune rune

	// Command is the action to execute when this binding is triggered.
	Command Command

	// Description is a human-readable description for help display.
	// Bindings with an empty description are left out of the help line.
	Description string
}

// Matches checks if a tea.KeyMsg matches this binding.
func (kb KeyBinding) Matches(msg tea.KeyMsg) bool {
	if msg.Alt {
		return false
	}

	if kb.KeyType != tea.KeyRunes {
		return msg.Type == kb.KeyType
	}

	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return false
	}
	return msg.Runes[0] == kb.Rune
}

// String returns a human-readable representation of the key binding.
func (kb KeyBinding) String() string {
	if kb.KeyType != tea.KeyRunes {
		return kb.KeyType.String()
	}
	if kb.Rune == ' ' {
		return "space"
	}
	return string(kb.Rune)
}

// ModeBindings holds all key bindings for a specific mode.
type ModeBindings struct {
	Mode     Mode
	Bindings []KeyBinding
}

// GetBinding looks up a command for a key in this mode.
func (mb *ModeBindings) GetBinding(msg tea.KeyMsg) (Command, bool) {
	for _, binding := range mb.Bindings {
		if binding.Matches(msg) {
			return binding.Command, true
		}
	}
	return "", false
}

// Keymap contains all key bindings organized by mode.
type Keymap struct {
	// Name identifies this keymap.
	Name string

	// Modes maps each mode to its bindings.
	Modes map[Mode]*ModeBindings
}

// GetBinding looks up a command for a key in a specific mode.
// Returns the command and true if found, or empty command and false if not.
func (km *Keymap) GetBinding(msg tea.KeyMsg, mode Mode) (Command, bool) {
	mb, ok := km.Modes[mode]
	if !ok {
		return "", false
	}
	return mb.GetBinding(msg)
}

// GetBindingsForCommand returns all bindings that trigger a specific command.
func (km *Keymap) GetBindingsForCommand(cmd Command, mode Mode) []KeyBinding {
	mb, ok := km.Modes[mode]
	if !ok {
		return nil
	}

	var result []KeyBinding
	for _, binding := range mb.Bindings {
		if binding.Command == cmd {
			result = append(result, binding)
		}
	}
	return result
}

// HelpBindings folds a mode's described bindings into one key.Binding per
// command, in declaration order, for rendering with bubbles/help.
func (km *Keymap) HelpBindings(mode Mode) []key.Binding {
	mb, ok := km.Modes[mode]
	if !ok {
		return nil
	}

	type entry struct {
		keys []string
		desc string
	}
	var order []Command
	entries := make(map[Command]*entry)
	for _, binding := range mb.Bindings {
		if binding.Description == "" {
			continue
		}
		e, ok := entries[binding.Command]
		if !ok {
			e = &entry{desc: binding.Description}
			entries[binding.Command] = e
			order = append(order, binding.Command)
		}
		e.keys = append(e.keys, binding.String())
	}

	result := make([]key.Binding, 0, len(order))
	for _, cmd := range order {
		e := entries[cmd]
		result = append(result, key.NewBinding(
			key.WithKeys(e.keys...),
			key.WithHelp(strings.Join(e.keys, "/"), e.desc),
		))
	}
	return result
}
