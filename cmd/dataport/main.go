// Package main provides the dataport CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/dataport/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
