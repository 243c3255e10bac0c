// Package main is the entry point for the loosecss CLI.
package main

import (
	"os"

	"github.com/jmylchreest/loosecss/cmd/loosecss/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
