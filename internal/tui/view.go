package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/Iron-Ham/mathmaster/internal/countdown"
	"github.com/Iron-Ham/mathmaster/internal/errors"
	"github.com/Iron-Ham/mathmaster/internal/flow"
	"github.com/Iron-Ham/mathmaster/internal/problem"
	"github.com/Iron-Ham/mathmaster/internal/session"
)

// AppTitle is shown at the top of the menu.
const AppTitle = "Multiplication Master"

// lowTimeThreshold switches the countdown to the error color.
const lowTimeThreshold = 10

var numpadRows = [][]string{
	{"7", "8", "9"},
	{"4", "5", "6"},
	{"1", "2", "3"},
	{labelClear, "0", labelDelete},
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	frame, _ := scanZones(m.render())
	return frame
}

// render draws the frame with zone markers still in place.
func (m Model) render() string {
	var body string
	switch m.ctrl.Screen() {
	case flow.ScreenPractice, flow.ScreenPro:
		body = m.gameView()
	case flow.ScreenGameOver:
		body = m.gameOverView()
	default:
		body = m.menuView()
	}

	parts := []string{body}
	if m.err != nil {
		msg := "Error: " + errorMessage(m.err)
		if m.width > 0 {
			msg = ansi.Truncate(msg, m.width, "...")
		}
		parts = append(parts, m.styles.ErrorText.Render(msg))
	}
	parts = append(parts, m.styles.Help.Render(m.help.ShortHelpView(m.keys.HelpBindings(m.mode()))))
	content := lipgloss.JoinVertical(lipgloss.Center, parts...)

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

func (m Model) menuView() string {
	st := m.styles

	var rows []string
	for start := 0; start < problem.MaxTable; start += menuColumns {
		var buttons []string
		for i := start; i < start+menuColumns && i < problem.MaxTable; i++ {
			style := st.TableButton
			if i == m.cursor {
				style = st.TableSelected
			}
			buttons = append(buttons, markZone(zoneID(i+1), style.Render(strconv.Itoa(i+1))))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, buttons...))
	}

	practiceCard := st.MenuCard
	if m.cursor < menuProButton {
		practiceCard = st.MenuCardActive
	}
	practice := practiceCard.Render(lipgloss.JoinVertical(lipgloss.Left,
		st.SectionTitle.Render("Practice Mode"),
		st.Description.Render("Choose a number to practice its multiplication table. No time limit!"),
		"",
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	))

	proCard := st.MenuCard
	proButton := st.ProButton
	if m.cursor == menuProButton {
		proCard = st.MenuCardActive
		proButton = st.ProSelected
	}
	pro := proCard.Render(lipgloss.JoinVertical(lipgloss.Left,
		st.SectionTitle.Render("Pro Mode"),
		st.Description.Render(fmt.Sprintf(
			"Random questions up to %dx%d. How many can you get in %d seconds?",
			problem.MaxOperand, problem.MaxOperand, m.proSeconds())),
		"",
		markZone(zonePro, proButton.Render("Start Pro Mode")),
	))

	return lipgloss.JoinVertical(lipgloss.Center,
		st.Title.Render(AppTitle),
		practice,
		pro,
	)
}

func (m Model) proSeconds() int {
	d := m.ctrl.Settings().InitialTime
	if d == 0 {
		d = countdown.DefaultDuration
	}
	return int(d / time.Second)
}

func (m Model) gameView() string {
	snap, ok := m.ctrl.Snapshot()
	if !ok {
		return ""
	}
	st := m.styles

	label := "Pro Mode"
	if snap.Mode == problem.ModePractice {
		label = fmt.Sprintf("Practice: %d times table", snap.Table)
	}

	board := []string{st.Score.Render(fmt.Sprintf("Score: %d", snap.Score))}
	if snap.Timed {
		timeStyle := st.Time
		if snap.TimeRemaining <= lowTimeThreshold {
			timeStyle = st.TimeLow
		}
		board = append(board, "   ", timeStyle.Render(fmt.Sprintf("Time: %ds", snap.TimeRemaining)))
	}

	input := st.Cursor.Render("|")
	if snap.Input != "" {
		input = st.Input.Render(snap.Input)
	}

	box := st.GameNeutral
	switch snap.Feedback {
	case session.Correct:
		box = st.GameCorrect
	case session.Incorrect:
		box = st.GameIncorrect
	}

	game := box.Render(lipgloss.JoinVertical(lipgloss.Center,
		st.ModeLabel.Render(label),
		lipgloss.JoinHorizontal(lipgloss.Top, board...),
		st.Problem.Render(fmt.Sprintf("%s = ?", snap.Problem)),
		input,
	))

	if !m.showNumpad {
		return game
	}
	return lipgloss.JoinVertical(lipgloss.Center, game, "", m.numpadView())
}

func (m Model) numpadView() string {
	st := m.styles
	rows := make([]string, 0, len(numpadRows))
	for _, row := range numpadRows {
		keys := make([]string, 0, len(row))
		for _, label := range row {
			style := st.Key
			switch label {
			case labelClear:
				style = st.KeyClear
			case labelDelete:
				style = st.KeyDelete
			}
			if label == m.pressed {
				style = st.KeyActive
			}
			keys = append(keys, markZone(numpadZone(label), style.Render(label)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, keys...))
	}
	return strings.Join(rows, "\n")
}

func (m Model) gameOverView() string {
	st := m.styles
	return lipgloss.JoinVertical(lipgloss.Center,
		st.GameOverTitle.Render("Time Up!"),
		st.FinalLabel.Render("Your final score is:"),
		st.FinalScore.Render(strconv.Itoa(m.ctrl.FinalScore())),
		markZone(zonePlayAgain, st.PlayAgain.Render("Play Again")),
	)
}

func numpadZone(label string) zoneID {
	switch label {
	case labelClear:
		return zoneClear
	case labelDelete:
		return zoneDelete
	default:
		return zoneDigit + zoneID(label[0]-'0')
	}
}

// errorMessage hides the details of unexpected errors, which are logged.
func errorMessage(err error) string {
	if errors.IsUserFacing(err) {
		return err.Error()
	}
	return "something went wrong, see the log file for details"
}
