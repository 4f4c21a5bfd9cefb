// Package main provides the ebnfgen command.
package main

import (
	"os"

	"github.com/leapstack-labs/ebnfgen/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
