package config

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	appconfig "github.com/Iron-Ham/mathmaster/internal/config"
	"github.com/Iron-Ham/mathmaster/internal/tui/styles"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Inspect and export color themes",
	Long: `Inspect and export color themes for the mathmaster TUI.

Besides the built-in themes, tui.theme accepts a path to a YAML theme file.
Use 'theme export' to create a starting point for a custom theme.`,
}

var themeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the built-in themes",
	Args:  cobra.NoArgs,
	RunE:  runThemeList,
}

var themeInfoCmd = &cobra.Command{
	Use:   "info <theme>",
	Short: "Show the colors of a built-in theme or theme file",
	Args:  cobra.ExactArgs(1),
	RunE:  runThemeInfo,
}

var themeExportCmd = &cobra.Command{
	Use:   "export <theme-name> [output-file]",
	Short: "Export a built-in theme to YAML",
	Long: `Export a built-in theme to YAML format for customization or sharing.

If no output file is specified, the YAML is printed to stdout.

Examples:
  mathmaster config theme export default              # Print default theme to stdout
  mathmaster config theme export dracula my-theme.yaml  # Save dracula theme to file`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runThemeExport,
}

func init() {
	themeCmd.AddCommand(themeListCmd)
	themeCmd.AddCommand(themeInfoCmd)
	themeCmd.AddCommand(themeExportCmd)
}

func runThemeList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	current := appconfig.Get().TUI.Theme

	fmt.Fprintln(out, "Built-in themes:")
	for _, name := range styles.BuiltinThemes() {
		marker := " "
		if name == current {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %s\n", marker, name)
	}
	if appconfig.IsThemeFile(current) {
		fmt.Fprintf(out, "\nActive theme file: %s\n", current)
	}
	return nil
}

func runThemeInfo(cmd *cobra.Command, args []string) error {
	name := args[0]
	out := cmd.OutOrStdout()

	palette, err := styles.ResolvePalette(name)
	if err != nil {
		return fmt.Errorf("%w\n\nRun 'mathmaster config theme list' to see available themes", err)
	}

	fmt.Fprintf(out, "Theme: %s\n", name)
	if styles.IsBuiltinTheme(name) {
		fmt.Fprintln(out, "Type: Built-in")
	} else {
		fmt.Fprintln(out, "Type: Custom")
		if file, err := styles.LoadThemeFile(name); err == nil {
			if file.Author != "" {
				fmt.Fprintf(out, "Author: %s\n", file.Author)
			}
			if file.Description != "" {
				fmt.Fprintf(out, "Description: %s\n", file.Description)
			}
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Base Colors:")
	fmt.Fprintf(out, "  Primary:   %s\n", palette.Primary)
	fmt.Fprintf(out, "  Secondary: %s\n", palette.Secondary)
	fmt.Fprintf(out, "  Warning:   %s\n", palette.Warning)
	fmt.Fprintf(out, "  Error:     %s\n", palette.Error)
	fmt.Fprintf(out, "  Muted:     %s\n", palette.Muted)
	fmt.Fprintf(out, "  Surface:   %s\n", palette.Surface)
	fmt.Fprintf(out, "  Text:      %s\n", palette.Text)
	fmt.Fprintf(out, "  Border:    %s\n", palette.Border)
	fmt.Fprintln(out, "Accents:")
	fmt.Fprintf(out, "  Blue:      %s\n", palette.Blue)
	fmt.Fprintf(out, "  Yellow:    %s\n", palette.Yellow)

	return nil
}

func runThemeExport(cmd *cobra.Command, args []string) error {
	name := args[0]

	data, err := styles.ExportTheme(styles.ThemeName(name))
	if err != nil {
		return fmt.Errorf("exporting theme: %w", err)
	}

	// If output file specified, write to file
	out := cmd.OutOrStdout()
	if len(args) > 1 {
		outputPath := args[1]
		if err := os.WriteFile(outputPath, data, 0o644); err != nil {
			return fmt.Errorf("writing to %s: %w", outputPath, err)
		}
		fmt.Fprintf(out, "Theme exported to: %s\n", outputPath)
		fmt.Fprintf(out, "To use it, run:\n  mathmaster config set tui.theme %s\n", outputPath)
		return nil
	}

	// Otherwise print to stdout
	fmt.Fprint(out, string(data))
	return nil
}
