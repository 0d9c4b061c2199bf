package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/seqline/pkg/parser"
	"github.com/matzehuels/seqline/pkg/writer"
)

// fmtOpts holds the command-line flags for the fmt command.
type fmtOpts struct {
	write bool // rewrite the file in place instead of printing
}

// newFmtCmd creates the fmt command. It parses a diagram source file and
// prints it back in canonical formatting: normalized spacing, indented
// fragment bodies, and fragments closed with end. Lines the grammar cannot
// interpret pass through unchanged.
func newFmtCmd() *cobra.Command {
	var opts fmtOpts

	cmd := &cobra.Command{
		Use:   "fmt <file>",
		Short: "Rewrite diagram source in canonical formatting",
		Long: `Reformat a sequence diagram source file canonically.

The formatter round-trips through the parser, so it normalizes spacing and
indentation without changing the diagram's structure. Unparseable lines are
preserved byte for byte.

Examples:
  seqline fmt diagram.seq     # formatted source to stdout
  seqline fmt -w diagram.seq  # rewrite the file in place`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runFmt(c.Context(), &opts, args[0])
		},
	}

	cmd.Flags().BoolVarP(&opts.write, "write", "w", false, "rewrite the file instead of printing")

	return cmd
}

func runFmt(ctx context.Context, opts *fmtOpts, path string) error {
	logger := loggerFromContext(ctx)

	src, err := readSource(path)
	if err != nil {
		return err
	}

	doc := parser.Parse(src)
	if errs := doc.Errors(); len(errs) > 0 {
		logger.Warnf("%d line(s) could not be parsed and pass through unformatted", len(errs))
	}

	formatted := writer.Marshal(doc)
	if formatted != "" && !strings.HasSuffix(formatted, "\n") {
		formatted += "\n"
	}

	if !opts.write {
		fmt.Print(formatted)
		return nil
	}
	if formatted == src {
		logger.Debugf("%s already canonical", path)
		return nil
	}
	if err := os.WriteFile(path, []byte(formatted), 0o644); err != nil {
		return fmt.Errorf("rewrite %s: %w", path, err)
	}
	printSuccess("Formatted %s", path)
	return nil
}
