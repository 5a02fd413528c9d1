// Command mathmaster runs multiplication table drills in the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/Iron-Ham/mathmaster/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cmd.FormatError(err))
		os.Exit(1)
	}
}
