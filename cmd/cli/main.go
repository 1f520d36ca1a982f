// Package main is the entry point for the mandashop CLI.
package main

import (
	"os"

	"mandashop/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
