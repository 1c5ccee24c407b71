package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrUnsupportedField is returned when a form carries a field the
	// terminal session cannot prompt for (embedded node widgets).
	ErrUnsupportedField = errors.New("tui: unsupported field")
)
