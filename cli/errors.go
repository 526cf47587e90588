package cli

import (
	"errors"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mkuiper/qif/parser"
)

var (
	errCaretStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	errContextStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#808080", Dark: "#808080"})
)

// ErrorRenderer renders errors with terminal styling and source context.
type ErrorRenderer struct {
	source []byte
}

// NewErrorRenderer creates a renderer with source content for context.
func NewErrorRenderer(source []byte) *ErrorRenderer {
	return &ErrorRenderer{source: source}
}

// Render formats a single error with styling and, for parse errors with a
// known position, the surrounding input lines.
func (r *ErrorRenderer) Render(err error) string {
	var pe *parser.ParseError
	if errors.As(err, &pe) && r.source != nil && pe.Line > 0 {
		return r.renderWithSourceContext(pe)
	}
	return err.Error()
}

func (r *ErrorRenderer) renderWithSourceContext(pe *parser.ParseError) string {
	var buf strings.Builder

	buf.WriteString(errorStyle.Render(pe.Error()))
	buf.WriteString("\n\n")

	sourceLines := strings.Split(string(r.source), "\n")

	startLine := pe.Line - 3
	endLine := pe.Line
	if startLine < 0 {
		startLine = 0
	}
	if endLine >= len(sourceLines) {
		endLine = len(sourceLines) - 1
	}

	for i := startLine; i <= endLine; i++ {
		buf.WriteString("   ")
		buf.WriteString(errContextStyle.Render(sourceLines[i]))
		buf.WriteByte('\n')

		if i == pe.Line-1 {
			buf.WriteString("   ")
			buf.WriteString(errCaretStyle.Render("^"))
			buf.WriteByte('\n')
		}
	}

	return buf.String()
}
