// Package loader reads and writes QIF files on disk. The wire encoding is
// ISO-8859-1; the loader transcodes to and from UTF-8 around the parser
// and the writer so the in-memory model always holds UTF-8 strings.
//
// The path "-" selects standard input or output.
package loader

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/charmap"

	"github.com/mkuiper/qif"
	"github.com/mkuiper/qif/parser"
	"github.com/mkuiper/qif/writer"
)

// Stdin is the path that selects the standard streams.
const Stdin = "-"

// Loader reads and writes QIF files.
type Loader struct {
	stdin  io.Reader
	stdout io.Writer
}

// Option configures a Loader.
type Option func(*Loader)

// WithStdin overrides the reader used for the "-" path, mainly for tests.
func WithStdin(r io.Reader) Option {
	return func(l *Loader) { l.stdin = r }
}

// WithStdout overrides the writer used for the "-" path, mainly for tests.
func WithStdout(w io.Writer) Option {
	return func(l *Loader) { l.stdout = w }
}

// New returns a Loader.
func New(opts ...Option) *Loader {
	l := &Loader{stdin: os.Stdin, stdout: os.Stdout}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Decode wraps a reader of wire bytes, transcoding ISO-8859-1 to UTF-8.
func Decode(r io.Reader) io.Reader {
	return charmap.ISO8859_1.NewDecoder().Reader(r)
}

// Encode wraps a writer of wire bytes, transcoding UTF-8 to ISO-8859-1.
func Encode(w io.Writer) io.Writer {
	return charmap.ISO8859_1.NewEncoder().Writer(w)
}

// Load reads and parses the file at path using the given dialect.
func (l *Loader) Load(d *qif.Dialect, path string) (*qif.File, error) {
	if path == Stdin {
		return parser.Parse(d, Decode(l.stdin), parser.WithFilename("stdin"))
	}

	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("qif: opening %s: %w", path, err)
	}
	defer fh.Close()

	return parser.Parse(d, Decode(fh), parser.WithFilename(path))
}

// Save serializes the registry to the file at path.
func (l *Loader) Save(ctx context.Context, f *qif.File, path string) error {
	w := writer.New()

	if path == Stdin {
		return w.Write(ctx, f, Encode(l.stdout))
	}

	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("qif: creating %s: %w", path, err)
	}

	if err := w.Write(ctx, f, Encode(fh)); err != nil {
		fh.Close()
		return err
	}
	if err := fh.Close(); err != nil {
		return fmt.Errorf("qif: closing %s: %w", path, err)
	}
	return nil
}

// Exists reports whether a regular file exists at path.
func Exists(path string) bool {
	if path == Stdin {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
