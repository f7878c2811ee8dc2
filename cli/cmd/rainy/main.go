package main

import (
	"fmt"
	"os"

	"github.com/enosislabs/rainy-go/cli/commands"
)

// exitCoder is implemented by errors that carry a process exit code.
type exitCoder interface {
	ExitCode() int
}

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		if coder, ok := err.(exitCoder); ok {
			os.Exit(coder.ExitCode())
		}
		os.Exit(1)
	}
}
