package types

// Mode selects the workflow run by the CLI.
type Mode int

const (
	ModeInteractiveCreate Mode = iota
	ModeList
	ModeBatchCreate
	ModeBatchTag
)

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	Mode        Mode
	File        string
	Region      string
	Profile     string
	Dir         string
	ReportName  string
	ReportTypes []string
	Verbose     bool
}
