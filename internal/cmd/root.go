// Package cmd implements the mathmaster command line.
package cmd

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	cmdconfig "github.com/Iron-Ham/mathmaster/internal/cmd/config"
	"github.com/Iron-Ham/mathmaster/internal/config"
	"github.com/Iron-Ham/mathmaster/internal/errors"
	"github.com/Iron-Ham/mathmaster/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "mathmaster",
	Short: "Multiplication table drills in your terminal",
	Long: `Multiplication Master drills the 1-12 multiplication tables.

Practice mode works through one table with no time limit.
Pro mode asks random questions up to 12x12 against the clock.

Run without a subcommand to open the menu.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runMenu,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// FormatError renders an error returned by Execute for the terminal.
// User-facing errors are shown as they are. Anything else is flagged as
// unexpected, with a pointer to the log file when there is one.
func FormatError(err error) string {
	if errors.IsUserFacing(err) {
		return "Error: " + err.Error()
	}
	msg := "Unexpected error: " + err.Error()
	if dir := config.Get().Logging.ResolveDir(); dir != "" {
		msg += "\nSee " + filepath.Join(dir, logging.FileName) + " for details."
	}
	return msg
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/mathmaster/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	rootCmd.PersistentFlags().String("theme", "", "color theme: default, monokai, dracula, nord, or a .yaml file")
	_ = viper.BindPFlag("tui.theme", rootCmd.PersistentFlags().Lookup("theme"))

	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(proCmd)
	cmdconfig.Register(rootCmd)

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.NewUsageError("%s", err.Error()).WithCause(err)
	})
	markUsageErrors(rootCmd)
}

// markUsageErrors wraps the argument validators of c and its subcommands so
// that their failures are reported as usage errors.
func markUsageErrors(c *cobra.Command) {
	if validate := c.Args; validate != nil {
		c.Args = func(cmd *cobra.Command, args []string) error {
			if err := validate(cmd, args); err != nil {
				return errors.NewUsageError("%s", err.Error()).WithCause(err)
			}
			return nil
		}
	}
	for _, sub := range c.Commands() {
		markUsageErrors(sub)
	}
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/mathmaster")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("MATHMASTER")
	// Replace dots with underscores for nested keys in env vars
	// e.g., MATHMASTER_GAME_INITIAL_TIME_SECONDS for game.initial_time_seconds
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

func runMenu(cmd *cobra.Command, args []string) error {
	return runGame(gameRequest{})
}
