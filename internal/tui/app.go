// Package tui renders the drill in the terminal with bubbletea.
//
// Everything that touches game state runs on the bubbletea event loop. The
// wall-clock scheduler never calls into a session directly: it posts a
// runTaskMsg, and Update runs the callback.
package tui

import (
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/mathmaster/internal/config"
	"github.com/Iron-Ham/mathmaster/internal/errors"
	"github.com/Iron-Ham/mathmaster/internal/flow"
	"github.com/Iron-Ham/mathmaster/internal/logging"
	"github.com/Iron-Ham/mathmaster/internal/problem"
	"github.com/Iron-Ham/mathmaster/internal/schedule"
	"github.com/Iron-Ham/mathmaster/internal/tui/keymap"
	"github.com/Iron-Ham/mathmaster/internal/tui/styles"
)

// Options configures an App.
type Options struct {
	// Config supplies the game, theme and numpad settings. Nil means defaults.
	Config *config.Config
	Logger *logging.Logger

	// Mode skips the menu and starts a session right away. Empty shows the menu.
	Mode problem.Mode
	// Table is the practice table when Mode is practice.
	Table int

	// WatchConfig reloads theme and game settings when the config file changes.
	WatchConfig bool

	// ProgramOptions are appended to the bubbletea options.
	ProgramOptions []tea.ProgramOption
}

// App owns the bubbletea program and the game it renders.
type App struct {
	program *tea.Program
	loop    *schedule.Loop
	ctrl    *flow.Controller
	logger  *logging.Logger
	opts    Options
}

// New wires the scheduler, flow controller and model. Nothing runs until Run.
func New(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}

	st, err := styles.Resolve(cfg.TUI.Theme)
	if err != nil {
		return nil, errors.Wrap(err, "loading theme")
	}

	a := &App{logger: logger, opts: opts}
	a.loop = schedule.NewLoop(a.dispatch)

	ctrl, err := flow.New(flow.Options{
		Scheduler: a.loop,
		Logger:    logger,
		Settings:  settingsFrom(cfg),
	})
	if err != nil {
		return nil, err
	}
	flow.LogEvents(ctrl.Bus(), logger)
	a.ctrl = ctrl

	model := NewModel(ctrl, ModelOptions{
		Styles:     st,
		Keymap:     keymap.DefaultKeymap(),
		Logger:     logger,
		ShowNumpad: cfg.TUI.ShowNumpad,
	})
	if problem.ValidTable(cfg.Game.DefaultTable) {
		model.cursor = cfg.Game.DefaultTable - 1
	}

	programOpts := []tea.ProgramOption{}
	if cfg.TUI.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	if cfg.TUI.Mouse {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}
	programOpts = append(programOpts, opts.ProgramOptions...)
	a.program = tea.NewProgram(model, programOpts...)

	return a, nil
}

// dispatch runs on scheduler goroutines. Send blocks until the event loop
// takes the message and returns immediately once the program has exited.
func (a *App) dispatch(run func()) {
	a.program.Send(runTaskMsg{run: run})
}

// Run starts the requested session, if any, and blocks until the user quits.
func (a *App) Run() error {
	defer a.loop.Close()
	defer a.ctrl.Shutdown()

	switch a.opts.Mode {
	case problem.ModePractice:
		if err := a.ctrl.StartPractice(a.opts.Table); err != nil {
			return err
		}
	case problem.ModePro:
		if err := a.ctrl.StartPro(); err != nil {
			return err
		}
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	go func() {
		if _, ok := <-sigChan; ok {
			a.program.Send(tea.Quit())
		}
	}()

	if a.opts.WatchConfig && viper.ConfigFileUsed() != "" {
		viper.OnConfigChange(func(e fsnotify.Event) {
			a.program.Send(a.reloadConfig(e))
		})
		viper.WatchConfig()
	}

	a.logger.Info("tui started", "mode", a.opts.Mode.String())
	_, err := a.program.Run()

	signal.Stop(sigChan)
	close(sigChan)

	a.logger.Info("tui stopped")
	return err
}

// reloadConfig runs on the fsnotify goroutine, so it only builds a message.
func (a *App) reloadConfig(e fsnotify.Event) configReloadedMsg {
	a.logger.Debug("config file changed", "path", e.Name, "op", e.Op.String())

	cfg, err := config.Load()
	if err != nil {
		return configReloadedMsg{err: errors.Wrap(err, "reloading config")}
	}
	st, err := styles.Resolve(cfg.TUI.Theme)
	if err != nil {
		return configReloadedMsg{err: errors.Wrap(err, "reloading theme")}
	}
	return configReloadedMsg{
		styles:     st,
		settings:   settingsFrom(cfg),
		showNumpad: cfg.TUI.ShowNumpad,
	}
}

func settingsFrom(cfg *config.Config) flow.Settings {
	return flow.Settings{
		InitialTime:   cfg.Game.InitialTime(),
		FeedbackDelay: cfg.Game.FeedbackDelay(),
	}
}
