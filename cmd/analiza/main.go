package main

import (
	"os"

	"github.com/msto63/analiza/cmd/analiza/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
