package main

import (
	"os"

	"github.com/climatiq-tools/carbon-adviser/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
