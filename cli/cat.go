package cli

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/mkuiper/qif/loader"
)

type CatCmd struct {
	File    string      `help:"QIF input filename (use '-' for stdin)." arg:"" default:"-"`
	Dialect DialectFlag `help:"Dialect to parse and write with." default:"Quicken2004"`
}

// Run parses the input and writes the canonical serialization to stdout.
// Parsing then rewriting normalizes field order, entity order and number
// formatting.
func (cmd *CatCmd) Run(ctx *kong.Context, globals *Globals) error {
	ldr := loader.New()

	f, err := ldr.Load(cmd.Dialect.Dialect, cmd.File)
	if err != nil {
		renderer := NewErrorRenderer(nil)
		_, _ = fmt.Fprintln(ctx.Stderr, renderer.Render(err))
		printError(ctx.Stderr, "parse error")
		return NewCommandError(1)
	}

	return ldr.Save(context.Background(), f, loader.Stdin)
}
