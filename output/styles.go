// Package output provides styling helpers for terminal output.
package output

import (
	"io"

	"github.com/muesli/termenv"
)

// Styles provides styled output helpers for the CLI. Colors degrade
// gracefully when the writer is not a terminal.
type Styles struct {
	output *termenv.Output
}

// NewStyles creates a new Styles instance for the given writer.
func NewStyles(w io.Writer) *Styles {
	return &Styles{output: termenv.NewOutput(w)}
}

func (s *Styles) colored(text, color string, bold bool) string {
	st := s.output.String(text).Foreground(s.output.Color(color))
	if bold {
		st = st.Bold()
	}
	return st.String()
}

// Success returns a styled success string (green + bold).
func (s *Styles) Success(text string) string { return s.colored(text, "2", true) }

// Error returns a styled error string (red + bold).
func (s *Styles) Error(text string) string { return s.colored(text, "1", true) }

// Warning returns a styled warning (yellow + bold).
func (s *Styles) Warning(text string) string { return s.colored(text, "3", true) }

// FilePath returns a styled file path (cyan).
func (s *Styles) FilePath(text string) string { return s.colored(text, "6", false) }

// Account returns a styled account name (yellow).
func (s *Styles) Account(text string) string { return s.colored(text, "3", false) }

// Amount returns a styled amount (magenta).
func (s *Styles) Amount(text string) string { return s.colored(text, "5", false) }

// Keyword returns a styled keyword (bold).
func (s *Styles) Keyword(text string) string {
	return s.output.String(text).Bold().String()
}

// Dim returns dimmed text, for secondary information.
func (s *Styles) Dim(text string) string {
	return s.output.String(text).Faint().String()
}

// Output returns the underlying termenv Output for advanced usage.
func (s *Styles) Output() *termenv.Output {
	return s.output
}
