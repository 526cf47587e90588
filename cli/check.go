package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-runewidth"

	"github.com/mkuiper/qif"
	"github.com/mkuiper/qif/loader"
	"github.com/mkuiper/qif/output"
	"github.com/mkuiper/qif/parser"
)

type CheckCmd struct {
	File    string      `help:"QIF input filename (use '-' for stdin)." arg:"" default:"-"`
	Dialect DialectFlag `help:"Dialect to parse with." default:"Quicken2004"`
}

func (cmd *CheckCmd) Run(ctx *kong.Context, globals *Globals) error {
	source, err := readSource(cmd.File)
	if err != nil {
		return err
	}

	filename := cmd.File
	if filename == loader.Stdin {
		filename = "stdin"
	}

	f, err := parser.Parse(cmd.Dialect.Dialect, bytes.NewReader(source), parser.WithFilename(filename))
	if err != nil {
		renderer := NewErrorRenderer(source)
		_, _ = fmt.Fprintln(ctx.Stderr, renderer.Render(err))
		printError(ctx.Stderr, "parse error")
		return NewCommandError(1)
	}

	printSummary(ctx.Stdout, f)
	printSuccess(ctx.Stdout, fmt.Sprintf("Check passed (%s)", f.Dialect().Name))

	return nil
}

// printSummary writes the entity counts as an aligned two-column table.
func printSummary(w io.Writer, f *qif.File) {
	styles := output.NewStyles(w)
	events := 0
	for _, a := range f.Accounts() {
		events += len(a.Events())
	}
	prices := 0
	for _, s := range f.Securities() {
		prices += len(s.Prices())
	}

	rows := []struct {
		label string
		count int
	}{
		{"Accounts", len(f.Accounts())},
		{"Payees", len(f.Payees())},
		{"Categories", len(f.Categories())},
		{"Classes", len(f.Classes())},
		{"Securities", len(f.Securities())},
		{"Prices", prices},
		{"Transactions", events},
	}

	width := 0
	for _, r := range rows {
		if lw := runewidth.StringWidth(r.label); lw > width {
			width = lw
		}
	}

	for _, r := range rows {
		pad := strings.Repeat(" ", width-runewidth.StringWidth(r.label))
		_, _ = fmt.Fprintf(w, "  %s%s  %s\n",
			styles.Dim(r.label), pad, styles.Keyword(fmt.Sprintf("%d", r.count)))
	}
}

// readSource reads the full input, transcoded to UTF-8, for parsing and
// error context.
func readSource(path string) ([]byte, error) {
	if path == loader.Stdin {
		data, err := io.ReadAll(loader.Decode(os.Stdin))
		if err != nil {
			return nil, fmt.Errorf("failed to read from stdin: %w", err)
		}
		return data, nil
	}

	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	data, err := io.ReadAll(loader.Decode(fh))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
