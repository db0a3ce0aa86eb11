package main

import (
	"os"

	"beamlink/cmd/beamlink/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
