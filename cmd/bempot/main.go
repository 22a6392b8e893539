package main

import (
	"os"

	"github.com/gridwave/bempot/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
