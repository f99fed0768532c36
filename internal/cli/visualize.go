package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hyperbench/pkg/errors"
	"github.com/matzehuels/hyperbench/pkg/hypergraph/hgr"
	"github.com/matzehuels/hyperbench/pkg/render"
)

// visualizeOpts holds the command-line flags for the visualize command.
type visualizeOpts struct {
	hgrPath       string
	partitionPath string
	output        string
	format        string
	detailed      bool
	maxNodes      uint32
}

// visualizeCommand creates the visualize command: draw a hypergraph (and
// optionally its partition) as an incidence diagram.
func (c *CLI) visualizeCommand() *cobra.Command {
	opts := visualizeOpts{format: "svg"}

	cmd := &cobra.Command{
		Use:   "visualize",
		Short: "Draw a hypergraph as an incidence diagram",
		Long: `Draw a hypergraph as a bipartite incidence diagram: square connector
vertices for hyperedges, ellipses for nodes. With --partition, nodes are
colored by their part.

Examples:
  hyperbench visualize --hgr instance.hgr -o instance.svg
  hyperbench visualize --hgr instance.hgr --partition instance.partition -o colored.svg
  hyperbench visualize --hgr instance.hgr --format dot`,
		RunE: func(cmd *cobra.Command, args []string) error {
			hg, err := hgr.Read(opts.hgrPath)
			if err != nil {
				return err
			}

			var partition []uint32
			if opts.partitionPath != "" {
				partition, err = hgr.ReadPartition(opts.partitionPath)
				if err != nil {
					return err
				}
			}

			dot, err := render.ToDOT(hg, partition, render.Options{
				Detailed: opts.detailed,
				MaxNodes: opts.maxNodes,
			})
			if err != nil {
				return err
			}

			var out []byte
			switch strings.ToLower(opts.format) {
			case "dot":
				out = []byte(dot)
			case "svg":
				spinner := newSpinnerWithContext(cmd.Context(), "Rendering with Graphviz…")
				spinner.Start()
				out, err = render.RenderSVG(dot)
				spinner.Stop()
				if err != nil {
					return err
				}
			default:
				return errors.New(errors.ErrCodeUnsupported, "unknown format %q (svg, dot)", opts.format)
			}

			if opts.output == "" {
				fmt.Print(string(out))
				return nil
			}
			if err := os.WriteFile(opts.output, out, 0o644); err != nil {
				return err
			}
			printSuccess("Rendered %s", opts.hgrPath)
			printFile(opts.output)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.hgrPath, "hgr", "", "input .hgr file (required)")
	cmd.Flags().StringVar(&opts.partitionPath, "partition", "", "color nodes by this partition")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&opts.format, "format", opts.format, "output format (svg, dot)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include pin counts and part ids in labels")
	cmd.Flags().Uint32Var(&opts.maxNodes, "max-nodes", 0, "node cap for drawings (0 = default)")
	_ = cmd.MarkFlagRequired("hgr")

	return cmd
}
