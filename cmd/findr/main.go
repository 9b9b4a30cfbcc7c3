package main

import (
	"os"

	"github.com/mlioz/findr/internal/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
