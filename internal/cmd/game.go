package cmd

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Iron-Ham/mathmaster/internal/config"
	"github.com/Iron-Ham/mathmaster/internal/errors"
	"github.com/Iron-Ham/mathmaster/internal/logging"
	"github.com/Iron-Ham/mathmaster/internal/problem"
	"github.com/Iron-Ham/mathmaster/internal/tui"
)

var practiceCmd = &cobra.Command{
	Use:   "practice <table>",
	Short: "Drill a single multiplication table",
	Long: `Drill one multiplication table with no time limit.

The table is a number from 1 to 12. Every question multiplies it by a
random number from 0 to 12.`,
	Example: "  mathmaster practice 7",
	Args:    cobra.ExactArgs(1),
	RunE:    runPractice,
}

var proCmd = &cobra.Command{
	Use:   "pro",
	Short: "Answer as many random questions as you can before time runs out",
	Long: `Answer random questions up to 12x12 against the clock.

The countdown defaults to game.initial_time_seconds (60 unless configured).`,
	Example: "  mathmaster pro\n  mathmaster pro --time 30",
	Args:    cobra.NoArgs,
	RunE:    runPro,
}

func init() {
	proCmd.Flags().Int("time", 0, "countdown length in seconds (overrides game.initial_time_seconds)")
}

// isTerminal reports whether stdin and stdout are attached to a terminal.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// gameRequest selects the first screen. The zero value opens the menu.
type gameRequest struct {
	mode        problem.Mode
	table       int
	timeSeconds int
}

func runPractice(cmd *cobra.Command, args []string) error {
	table, err := parseTable(args[0])
	if err != nil {
		return err
	}
	return runGame(gameRequest{mode: problem.ModePractice, table: table})
}

func runPro(cmd *cobra.Command, args []string) error {
	seconds, err := cmd.Flags().GetInt("time")
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("time") && seconds <= 0 {
		return errors.NewValidationError("time must be a positive number of seconds").
			WithField("time").WithValue(seconds).WithCause(errors.ErrInvalidTime)
	}
	return runGame(gameRequest{mode: problem.ModePro, timeSeconds: seconds})
}

func parseTable(arg string) (int, error) {
	table, err := strconv.Atoi(arg)
	if err != nil || !problem.ValidTable(table) {
		return 0, errors.NewValidationError("table must be a number between 1 and 12").
			WithField("table").WithValue(arg).WithCause(errors.ErrInvalidTable)
	}
	return table, nil
}

func runGame(req gameRequest) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	if req.timeSeconds > 0 {
		cfg.Game.InitialTimeSeconds = req.timeSeconds
	}

	if !isTerminal() {
		return errors.Wrap(errors.ErrNotTerminal, "mathmaster needs an interactive terminal")
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()

	app, err := tui.New(tui.Options{
		Config:      cfg,
		Logger:      logger,
		Mode:        req.mode,
		Table:       req.table,
		WatchConfig: true,
	})
	if err != nil {
		return err
	}

	if err := app.Run(); err != nil {
		logError(logger, "tui exited with error", err)
		return errors.Wrap(err, "TUI error")
	}
	return nil
}

// logError logs err at the level its severity calls for.
func logError(logger *logging.Logger, msg string, err error) {
	severity := errors.GetSeverity(err)
	args := []any{"error", err.Error(), "severity", severity.String()}
	switch severity {
	case errors.SeverityDebug:
		logger.Debug(msg, args...)
	case errors.SeverityInfo:
		logger.Info(msg, args...)
	case errors.SeverityWarning:
		logger.Warn(msg, args...)
	default:
		logger.Error(msg, args...)
	}
}

func newLogger(cfg *config.Config) (*logging.Logger, error) {
	logger, err := logging.NewLoggerWithRotation(
		cfg.Logging.ResolveDir(),
		cfg.Logging.Level,
		logging.RotationConfig{
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
		},
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to set up logging")
	}
	return logger, nil
}
