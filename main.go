// Package main is the entry point for the pitwall telemetry decoder.
package main

import (
	"fmt"
	"os"

	"blackflag.dev/pitwall/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
