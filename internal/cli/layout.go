package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/seqline/pkg/layout"
	"github.com/matzehuels/seqline/pkg/parser"
)

// layoutOpts holds the command-line flags for the layout command.
type layoutOpts struct {
	config string // TOML spacing overrides (defaults if empty)
	output string // output file path (stdout if empty)
}

// newLayoutCmd creates the layout command. It parses a diagram source file,
// runs the geometry pass over it, and writes the resulting coordinates as
// JSON for a renderer to consume.
func newLayoutCmd() *cobra.Command {
	var opts layoutOpts

	cmd := &cobra.Command{
		Use:   "layout <file>",
		Short: "Compute diagram geometry and emit it as JSON",
		Long: `Compute the geometry of a sequence diagram: lifeline placement, one box
per laid-out node, and the total diagram extent.

Layout is deterministic: the same source and configuration always produce
identical coordinates. Spacing constants can be overridden with a TOML
configuration file.

Examples:
  seqline layout diagram.seq                     # geometry to stdout
  seqline layout diagram.seq --config wide.toml  # custom spacing
  seqline layout diagram.seq -o geometry.json    # geometry to a file`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runLayout(c.Context(), &opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.config, "config", "", "TOML file with spacing overrides")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

func runLayout(ctx context.Context, opts *layoutOpts, path string) error {
	logger := loggerFromContext(ctx)

	cfg := layout.DefaultConfig()
	if opts.config != "" {
		var err error
		if cfg, err = layout.LoadConfigFile(opts.config); err != nil {
			return err
		}
		logger.Debugf("Loaded spacing overrides from %s", opts.config)
	}

	src, err := readSource(path)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	doc := parser.Parse(src)
	result := layout.Compute(doc, cfg)
	prog.done(fmt.Sprintf("Laid out %d participants over %.0fx%.0f", len(result.Participants), result.Width, result.Height))

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encode geometry: %w", err)
	}
	if opts.output != "" {
		logger.Infof("Wrote geometry to %s", opts.output)
	}
	return nil
}
