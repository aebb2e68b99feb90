package main

import (
	"os"

	"diamondband.live/site/cmd/bandctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
