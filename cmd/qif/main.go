package main

import (
	"errors"
	"os"

	"github.com/alecthomas/kong"

	"github.com/mkuiper/qif/cli"
)

func main() {
	version := cli.Version
	if version == "" {
		version = "dev"
	}
	if cli.CommitSHA != "" {
		version += " (" + cli.CommitSHA + ")"
	}

	cmds := &cli.Commands{}
	ctx := kong.Parse(cmds,
		kong.Name("qif"),
		kong.Description("Convert and inspect Quicken Interchange Format files."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	err := ctx.Run(&cmds.Globals)

	var cmdErr *cli.CommandError
	if errors.As(err, &cmdErr) {
		os.Exit(cmdErr.ExitCode())
	}
	ctx.FatalIfErrorf(err)
}
