package main

import (
	"os"

	"github.com/hollowoak/wander/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
