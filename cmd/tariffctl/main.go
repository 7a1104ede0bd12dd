// Package main is the entry point for the tariffctl CLI.
package main

import (
	"os"

	"github.com/Simplici0/tokenwatt/cmd/tariffctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
