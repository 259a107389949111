package main

import (
	"os"

	"github.com/Gui-ZeN/AgiliDash-sub000/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
