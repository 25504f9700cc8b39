// Command calc evaluates arithmetic expressions.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/zephyrtronium/calc/cmd/calc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		var ee *cmd.ExitError
		if !errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, "calc:", err)
		}
		os.Exit(cmd.ExitCode(err))
	}
}
