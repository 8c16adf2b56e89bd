// cmd/servr/main.go
package main

import (
	"fmt"
	"os"

	"github.com/servr-dev/servr/cmd/servr/commands"
	"github.com/servr-dev/servr/pkg/server"
)

func main() {
	cmd := commands.NewCommand()
	cmd.SilenceErrors = true

	if err := cmd.Execute(); err != nil {
		if !commands.IsSilent(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(server.ExitCode(err))
	}
}
