package main

import (
	"os"

	"github.com/warp/asset-engine/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
