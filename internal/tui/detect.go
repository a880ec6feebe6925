package tui

import (
	"os"

	"golang.org/x/term"
)

// Mode says whether tabload may draw interactive prompts.
type Mode int

const (
	// ModeNonInteractive suits pipelines, scripts, and piped input.
	ModeNonInteractive Mode = iota
	// ModeInteractive means a human is at the terminal.
	ModeInteractive
)

// DetectMode picks the interaction mode. Non-interactive wins whenever
// TABLOAD_NON_INTERACTIVE=1, CI, or NO_COLOR is set, or when either stdin
// or stdout is not a terminal (stdout matters because the TUI renders
// there).
func DetectMode() Mode {
	if os.Getenv("TABLOAD_NON_INTERACTIVE") == "1" ||
		os.Getenv("CI") != "" ||
		os.Getenv("NO_COLOR") != "" {
		return ModeNonInteractive
	}

	for _, f := range []*os.File{os.Stdin, os.Stdout} {
		if !term.IsTerminal(int(f.Fd())) {
			return ModeNonInteractive
		}
	}

	return ModeInteractive
}

// IsInteractive reports whether tabload is running interactively.
func IsInteractive() bool {
	return DetectMode() == ModeInteractive
}
