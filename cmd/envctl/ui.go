package main

import (
	"os"

	"golang.org/x/term"
)

const (
	colorBold  = "\033[1m"
	colorDim   = "\033[2m"
	colorCyan  = "\033[36m"
	colorReset = "\033[0m"
)

// colorsEnabled is set once at startup; colors are suppressed when stdout is
// not a terminal so piped output stays clean.
var colorsEnabled = term.IsTerminal(int(os.Stdout.Fd()))

// colorize wraps s in the given ANSI color when colors are enabled.
func colorize(color, s string) string {
	if !colorsEnabled {
		return s
	}
	return color + s + colorReset
}

// formatEntry renders one KEY=VALUE line for the list command. The value is
// shown in its escaped (file) form so the output is valid envfile syntax.
func formatEntry(key, escapedValue string) string {
	return colorize(colorCyan, key) + "=" + escapedValue
}
