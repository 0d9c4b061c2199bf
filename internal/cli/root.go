package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
// This is typically called by the main package during initialization with
// values injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the seqline CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands (parse,
// layout, fmt), configures logging based on the --verbose flag, and
// executes the command tree.
//
// Logging:
//   - Default: warn level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext. ctx cancellation (e.g. SIGINT via signal.NotifyContext)
// propagates to every command.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "seqline",
		Short:        "Seqline parses and lays out sequence diagrams",
		Long:         `Seqline is a CLI tool for working with text-based sequence diagrams: it parses diagram source into a structural document, computes deterministic geometry for rendering, and reformats source files canonically.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.WarnLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("seqline %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newParseCmd())
	root.AddCommand(newLayoutCmd())
	root.AddCommand(newFmtCmd())

	return root.ExecuteContext(ctx)
}
