// Package writer serializes a QIF entity registry to the line-oriented
// wire format. The write runs as six sequential stages (classes,
// categories, accounts, securities, account events, prices); each stage
// emits its type header, formats the registry's already-sorted collection
// and reports one progress step per item.
//
// The registry must have been sorted with File.SortAll before writing;
// the writer itself never mutates it.
package writer

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mkuiper/qif"
	"github.com/mkuiper/qif/progress"
)

// Section headers of the wire format.
const (
	HeaderClass    = "!Type:Class"
	HeaderCategory = "!Type:Cat"
	HeaderAccount  = "!Account"
	HeaderSecurity = "!Type:Security"
	HeaderPrices   = "!Type:Prices"
	HeaderType     = "!Type:"
)

const numStages = 6

// Writer serializes files. The zero value is usable; New applies options.
type Writer struct{}

// Option configures a Writer.
type Option func(*Writer)

// New returns a Writer.
func New(opts ...Option) *Writer {
	w := &Writer{}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write serializes the file to out. Cancellation is honoured between
// stages; I/O failures are returned wrapped and no partial-output cleanup
// is attempted.
func (w *Writer) Write(ctx context.Context, f *qif.File, out io.Writer) error {
	rep := progress.FromContext(ctx)
	rep.SetNumStages(numStages)

	bw := bufio.NewWriter(out)
	d := f.Dialect()

	stages := []func(*qif.File, *qif.Dialect, *bufio.Writer, progress.Reporter) error{
		w.writeClasses,
		w.writeCategories,
		w.writeAccounts,
		w.writeSecurities,
		w.writeEvents,
		w.writePrices,
	}

	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := stage(f, d, bw, rep); err != nil {
			return err
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("qif: flushing output: %w", err)
	}
	return nil
}

func writeLine(bw *bufio.Writer, text string) error {
	if _, err := bw.WriteString(text); err != nil {
		return fmt.Errorf("qif: writing output: %w", err)
	}
	if err := bw.WriteByte('\n'); err != nil {
		return fmt.Errorf("qif: writing output: %w", err)
	}
	return nil
}

func writeRecord(bw *bufio.Writer, format func(*strings.Builder)) error {
	var b strings.Builder
	format(&b)
	if _, err := bw.WriteString(b.String()); err != nil {
		return fmt.Errorf("qif: writing output: %w", err)
	}
	return nil
}

// writeClasses emits the class section. The stage is skipped entirely
// when no classes are registered.
func (w *Writer) writeClasses(f *qif.File, d *qif.Dialect, bw *bufio.Writer, rep progress.Reporter) error {
	classes := f.Classes()
	rep.NewStage("Classes")
	rep.SetNumSteps(len(classes))

	if len(classes) == 0 {
		return nil
	}

	if err := writeLine(bw, HeaderClass); err != nil {
		return err
	}
	for _, c := range classes {
		if err := writeRecord(bw, func(b *strings.Builder) { c.FormatRecord(d, b) }); err != nil {
			return err
		}
		rep.NextStep()
	}
	return nil
}

// writeCategories emits the category section. The header is written even
// when the collection is empty; importers expect the section to exist.
func (w *Writer) writeCategories(f *qif.File, d *qif.Dialect, bw *bufio.Writer, rep progress.Reporter) error {
	parents := f.Parents()
	rep.NewStage("Categories")
	rep.SetNumSteps(len(parents))

	if err := writeLine(bw, HeaderCategory); err != nil {
		return err
	}
	for _, p := range parents {
		err := writeRecord(bw, func(b *strings.Builder) {
			p.Parent().FormatRecord(d, b)
			for _, child := range p.Children() {
				child.FormatRecord(d, b)
			}
		})
		if err != nil {
			return err
		}
		rep.NextStep()
	}
	return nil
}

// writeAccounts emits the account-definition section. As with categories
// the header is always written.
func (w *Writer) writeAccounts(f *qif.File, d *qif.Dialect, bw *bufio.Writer, rep progress.Reporter) error {
	accounts := f.Accounts()
	rep.NewStage("Accounts")
	rep.SetNumSteps(len(accounts))

	if err := writeLine(bw, HeaderAccount); err != nil {
		return err
	}
	for _, a := range accounts {
		if err := writeRecord(bw, func(b *strings.Builder) { a.FormatRecord(d, b) }); err != nil {
			return err
		}
		rep.NextStep()
	}
	return nil
}

// writeSecurities emits one security section per security.
func (w *Writer) writeSecurities(f *qif.File, d *qif.Dialect, bw *bufio.Writer, rep progress.Reporter) error {
	securities := f.Securities()
	rep.NewStage("Securities")
	rep.SetNumSteps(len(securities))

	for _, s := range securities {
		if err := writeLine(bw, HeaderSecurity); err != nil {
			return err
		}
		if err := writeRecord(bw, func(b *strings.Builder) { s.FormatRecord(d, b) }); err != nil {
			return err
		}
		rep.NextStep()
	}
	return nil
}

// writeEvents emits each account's event ledger: an !Account header and
// the account record naming the active account, the account's type
// header, then the events. Accounts without events are skipped.
func (w *Writer) writeEvents(f *qif.File, d *qif.Dialect, bw *bufio.Writer, rep progress.Reporter) error {
	accounts := f.Accounts()

	total := 0
	for _, a := range accounts {
		total += len(a.Events())
	}
	rep.NewStage("Events")
	rep.SetNumSteps(total)

	for _, a := range accounts {
		events := a.Events()
		if len(events) == 0 {
			continue
		}

		if err := writeLine(bw, HeaderAccount); err != nil {
			return err
		}
		if err := writeRecord(bw, func(b *strings.Builder) { a.FormatRecord(d, b) }); err != nil {
			return err
		}
		if err := writeLine(bw, HeaderType+a.Type()); err != nil {
			return err
		}

		for _, e := range events {
			if err := writeRecord(bw, func(b *strings.Builder) { e.FormatRecord(d, b) }); err != nil {
				return err
			}
			rep.NextStep()
		}
	}
	return nil
}

// writePrices emits one price section per security price point.
func (w *Writer) writePrices(f *qif.File, d *qif.Dialect, bw *bufio.Writer, rep progress.Reporter) error {
	securities := f.Securities()

	total := 0
	for _, s := range securities {
		total += len(s.Prices())
	}
	rep.NewStage("Prices")
	rep.SetNumSteps(total)

	for _, s := range securities {
		if len(s.Prices()) == 0 {
			continue
		}
		if err := writeLine(bw, HeaderPrices); err != nil {
			return err
		}
		for _, p := range s.Prices() {
			if err := writeRecord(bw, func(b *strings.Builder) { p.FormatRecord(d, b) }); err != nil {
				return err
			}
			rep.NextStep()
		}
	}
	return nil
}
