package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/seqline/pkg/diagram"
	"github.com/matzehuels/seqline/pkg/parser"
)

// parseOpts holds the command-line flags for the parse command.
type parseOpts struct {
	output string // output file path (stdout if empty)
	quiet  bool   // suppress per-line diagnostics
}

// newParseCmd creates the parse command. It reads a diagram source file,
// parses it into the structural document, and writes the document as JSON.
// Unparseable lines never abort the command: they surface as error nodes in
// the document and as styled diagnostics on the terminal.
func newParseCmd() *cobra.Command {
	var opts parseOpts

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse diagram source into the structural JSON document",
		Long: `Parse a sequence diagram source file into its structural JSON document.

Parsing is total: every input line yields a node, and lines the grammar
cannot interpret become error nodes carrying the raw source text, so a
single typo never loses the rest of the diagram.

Examples:
  seqline parse diagram.seq                 # JSON to stdout
  seqline parse diagram.seq -o diagram.json # JSON to a file`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runParse(c.Context(), &opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress per-line diagnostics")

	return cmd
}

func runParse(ctx context.Context, opts *parseOpts, path string) error {
	logger := loggerFromContext(ctx)

	src, err := readSource(path)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	doc := parser.Parse(src)
	prog.done(fmt.Sprintf("Parsed %d nodes", doc.Len()))

	errs := doc.Errors()
	if !opts.quiet {
		for _, e := range errs {
			start, _ := e.Lines()
			printDiagnostic(start, e.Message, e.Raw)
		}
	}
	if len(errs) > 0 {
		logger.Warnf("%d line(s) could not be parsed", len(errs))
	}

	return writeDocument(doc, opts.output, logger)
}

// writeDocument serializes d as JSON to the specified path (or stdout if
// empty). The logger is notified on success with the output path.
func writeDocument(d diagram.Document, path string, logger interface{ Infof(string, ...any) }) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := diagram.WriteDocument(d, out); err != nil {
		return err
	}
	if path != "" {
		logger.Infof("Wrote document to %s", path)
	}
	return nil
}
