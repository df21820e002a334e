// Package main is the entry point for the braille CLI.
package main

import (
	"os"

	"github.com/f3rmion/braille/cmd/braille/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
