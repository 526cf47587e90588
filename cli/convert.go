package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fsnotify/fsnotify"

	"github.com/mkuiper/qif/loader"
	"github.com/mkuiper/qif/progress"
)

type ConvertCmd struct {
	In  string `help:"QIF input filename (use '-' for stdin)." arg:""`
	Out string `help:"QIF output filename (use '-' for stdout)." arg:""`

	From  DialectFlag `help:"Dialect to parse the input with." default:"Quicken2004"`
	To    DialectFlag `help:"Dialect to write the output with." default:"Quicken2004"`
	Force bool        `help:"Overwrite the output file without asking."`
	Watch bool        `help:"Keep running and re-convert whenever the input file changes."`
}

func (cmd *ConvertCmd) Run(ctx *kong.Context, globals *Globals) error {
	if cmd.Out != loader.Stdin && !cmd.Force && loader.Exists(cmd.Out) {
		overwrite, err := promptYesNo(fmt.Sprintf("Overwrite %s?", cmd.Out))
		if err != nil {
			return err
		}
		if !overwrite {
			printInfof(ctx.Stderr, "not overwriting %s", cmd.Out)
			return nil
		}
	}

	if err := cmd.convert(ctx, globals); err != nil {
		return err
	}

	if !cmd.Watch {
		return nil
	}
	if cmd.In == loader.Stdin {
		return fmt.Errorf("cannot watch stdin")
	}
	return cmd.watch(ctx, globals)
}

func (cmd *ConvertCmd) convert(ctx *kong.Context, globals *Globals) error {
	ldr := loader.New()

	f, err := ldr.Load(cmd.From.Dialect, cmd.In)
	if err != nil {
		renderer := NewErrorRenderer(nil)
		_, _ = fmt.Fprintln(ctx.Stderr, renderer.Render(err))
		printError(ctx.Stderr, "parse error")
		return NewCommandError(1)
	}
	f.SetDialect(cmd.To.Dialect)

	runCtx := context.Background()
	var counter *progress.Counter
	if globals.Progress {
		counter = &progress.Counter{}
		runCtx = progress.WithReporter(runCtx, counter)
	}

	if err := ldr.Save(runCtx, f, cmd.Out); err != nil {
		return err
	}

	if counter != nil {
		printInfof(ctx.Stderr, "wrote %d items in %d stages", counter.Done, len(counter.Stages))
	}
	if cmd.Out != loader.Stdin {
		printSuccess(ctx.Stderr, fmt.Sprintf("Converted %s (%s) to %s (%s)",
			cmd.In, cmd.From.Dialect.Name, cmd.Out, cmd.To.Dialect.Name))
	}
	return nil
}

// watch re-converts whenever the input file changes. Editors often write
// files in multiple steps, so events are debounced; remove and rename
// events are handled too since atomic saves produce them.
func (cmd *ConvertCmd) watch(ctx *kong.Context, globals *Globals) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(cmd.In); err != nil {
		return fmt.Errorf("failed to watch %s: %w", cmd.In, err)
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	printInfof(ctx.Stderr, "watching %s", cmd.In)

	const debounceDelay = 100 * time.Millisecond
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-runCtx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceDelay, func() {
				// Atomic saves replace the file; re-add the watch.
				_ = watcher.Add(cmd.In)
				if err := cmd.convert(ctx, globals); err != nil {
					printError(ctx.Stderr, err.Error())
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			printError(ctx.Stderr, fmt.Sprintf("file watcher error: %v", err))
		}
	}
}
