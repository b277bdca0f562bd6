package main

import (
	"os"

	"github.com/jask/novara/cmd/novara/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
