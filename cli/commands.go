package cli

import "github.com/alecthomas/kong"

var (
	Version   = ""
	CommitSHA = ""
)

// Globals defines global flags available to all commands.
type Globals struct {
	Progress bool             `help:"Report write progress per stage."`
	Version  kong.VersionFlag `help:"Print version information and quit."`
}

type Commands struct {
	Globals

	Check   CheckCmd   `cmd:"" help:"Parse a QIF file and report its contents."`
	Convert ConvertCmd `cmd:"" help:"Convert a QIF file from one dialect to another."`
	Cat     CatCmd     `cmd:"" help:"Parse a QIF file and write its canonical form to stdout."`
	Dump    DumpCmd    `cmd:"" help:"Parse a QIF file and dump the registry for debugging."`
}
