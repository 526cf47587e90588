package cli

import (
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"

	"github.com/mkuiper/qif"
	"github.com/mkuiper/qif/loader"
)

type DumpCmd struct {
	File    string      `help:"QIF input filename (use '-' for stdin)." arg:"" default:"-"`
	Dialect DialectFlag `help:"Dialect to parse with." default:"Quicken2004"`
}

// RegistryDump is the debug view of a parsed registry.
type RegistryDump struct {
	Dialect    string
	Accounts   []AccountDump
	Payees     []string
	Categories []CategoryDump
	Classes    []string
	Securities []SecurityDump
}

type AccountDump struct {
	Name   string
	Type   string
	Desc   string
	Events int
}

type CategoryDump struct {
	Name   string
	Income bool
}

type SecurityDump struct {
	Name   string
	Symbol string
	Type   string
	Prices int
}

func (cmd *DumpCmd) Run(ctx *kong.Context, globals *Globals) error {
	ldr := loader.New()

	f, err := ldr.Load(cmd.Dialect.Dialect, cmd.File)
	if err != nil {
		renderer := NewErrorRenderer(nil)
		_, _ = fmt.Fprintln(ctx.Stderr, renderer.Render(err))
		printError(ctx.Stderr, "parse error")
		return NewCommandError(1)
	}

	repr.New(ctx.Stdout, repr.Indent("  ")).Println(dumpRegistry(f))
	return nil
}

func dumpRegistry(f *qif.File) RegistryDump {
	d := RegistryDump{Dialect: f.Dialect().Name}

	for _, a := range f.Accounts() {
		d.Accounts = append(d.Accounts, AccountDump{
			Name:   a.Name(),
			Type:   a.Type(),
			Desc:   a.Desc(),
			Events: len(a.Events()),
		})
	}
	for _, p := range f.Payees() {
		d.Payees = append(d.Payees, p.Name())
	}
	for _, c := range f.Categories() {
		d.Categories = append(d.Categories, CategoryDump{Name: c.Name(), Income: c.IsIncome()})
	}
	for _, c := range f.Classes() {
		d.Classes = append(d.Classes, c.Name())
	}
	for _, s := range f.Securities() {
		d.Securities = append(d.Securities, SecurityDump{
			Name:   s.Name(),
			Symbol: s.Symbol(),
			Type:   s.Type(),
			Prices: len(s.Prices()),
		})
	}
	return d
}
