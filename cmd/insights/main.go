// Package main is the entry point for the insights CLI.
package main

import (
	"github.com/Dan9191/delinquency-assistant/internal/cmd"
)

func main() {
	cmd.Execute()
}
