package parser

import "fmt"

// ParseError is a fatal syntax error in the input, carrying the position
// of the offending line.
type ParseError struct {
	Filename   string
	Line       int
	Message    string
	Underlying error
}

func (e *ParseError) Error() string {
	location := fmt.Sprintf("%s:%d", e.Filename, e.Line)
	if e.Filename == "" {
		location = fmt.Sprintf("line %d", e.Line)
	}
	return fmt.Sprintf("%s: %s", location, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Underlying
}

func (p *Parser) errorf(err error, format string, args ...any) *ParseError {
	return &ParseError{
		Filename:   p.filename,
		Line:       p.line,
		Message:    fmt.Sprintf(format, args...),
		Underlying: err,
	}
}
