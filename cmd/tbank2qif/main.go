package main

import (
	"os"

	"github.com/pterm/pterm"

	"github.com/qif-tools/tbank2qif/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}
