package main

import (
	"os"

	"github.com/jask/taxsheet/cmd/taxsheet/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
