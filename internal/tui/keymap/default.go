package keymap

import tea "github.com/charmbracelet/bubbletea"

// DefaultKeymap returns the default key bindings.
func DefaultKeymap() *Keymap {
	return &Keymap{
		Name: "default",
		Modes: map[Mode]*ModeBindings{
			ModeMenu:     defaultMenuBindings(),
			ModeGame:     defaultGameBindings(),
			ModeGameOver: defaultGameOverBindings(),
		},
	}
}

func defaultMenuBindings() *ModeBindings {
	bindings := []KeyBinding{
		// Grid navigation
		{KeyType: tea.KeyUp, Command: CmdMoveUp},
		{KeyType: tea.KeyRunes, Rune: 'k', Command: CmdMoveUp},
		{KeyType: tea.KeyDown, Command: CmdMoveDown},
		{KeyType: tea.KeyRunes, Rune: 'j', Command: CmdMoveDown},
		{KeyType: tea.KeyLeft, Command: CmdMoveLeft},
		{KeyType: tea.KeyRunes, Rune: 'h', Command: CmdMoveLeft},
		{KeyType: tea.KeyRight, Command: CmdMoveRight},
		{KeyType: tea.KeyRunes, Rune: 'l', Command: CmdMoveRight},
		{KeyType: tea.KeyTab, Command: CmdMoveRight},
		{KeyType: tea.KeyShiftTab, Command: CmdMoveLeft},

		{KeyType: tea.KeyEnter, Command: CmdSelect, Description: "start"},
		{KeyType: tea.KeySpace, Command: CmdSelect},
		{KeyType: tea.KeyRunes, Rune: 'p', Command: CmdStartPro, Description: "pro mode"},
	}
	bindings = append(bindings, digitBindings(CmdJumpToTable)...)
	bindings = append(bindings,
		KeyBinding{KeyType: tea.KeyRunes, Rune: 'q', Command: CmdQuit, Description: "quit"},
		KeyBinding{KeyType: tea.KeyCtrlC, Command: CmdQuit},
	)
	return &ModeBindings{Mode: ModeMenu, Bindings: bindings}
}

func defaultGameBindings() *ModeBindings {
	bindings := digitBindings(CmdDigit)
	bindings = append(bindings,
		KeyBinding{KeyType: tea.KeyBackspace, Command: CmdDeleteDigit, Description: "delete"},
		KeyBinding{KeyType: tea.KeyEsc, Command: CmdClearInput, Description: "clear"},
		KeyBinding{KeyType: tea.KeyDelete, Command: CmdClearInput},
		KeyBinding{KeyType: tea.KeyTab, Command: CmdBackToMenu, Description: "menu"},
		KeyBinding{KeyType: tea.KeyRunes, Rune: 'q', Command: CmdQuit, Description: "quit"},
		KeyBinding{KeyType: tea.KeyCtrlC, Command: CmdQuit},
	)
	return &ModeBindings{Mode: ModeGame, Bindings: bindings}
}

func defaultGameOverBindings() *ModeBindings {
	return &ModeBindings{
		Mode: ModeGameOver,
		Bindings: []KeyBinding{
			{KeyType: tea.KeyEnter, Command: CmdPlayAgain, Description: "play again"},
			{KeyType: tea.KeySpace, Command: CmdPlayAgain},
			{KeyType: tea.KeyRunes, Rune: 'r', Command: CmdPlayAgain},
			{KeyType: tea.KeyRunes, Rune: 'q', Command: CmdQuit, Description: "quit"},
			{KeyType: tea.KeyCtrlC, Command: CmdQuit},
		},
	}
}

// digitBindings binds 0-9 to cmd. They carry no description; the screens
// prompt for digits themselves.
func digitBindings(cmd Command) []KeyBinding {
	bindings := make([]KeyBinding, 0, 10)
	for r := '0'; r <= '9'; r++ {
		bindings = append(bindings, KeyBinding{KeyType: tea.KeyRunes, Rune: r, Command: cmd})
	}
	return bindings
}
