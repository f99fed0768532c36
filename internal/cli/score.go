package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hyperbench/pkg/hypergraph/hgr"
	"github.com/matzehuels/hyperbench/pkg/pipeline"
	"github.com/matzehuels/hyperbench/pkg/quality"
)

// scoreOpts holds the command-line flags for the score command.
type scoreOpts struct {
	hgrPath       string
	partitionPath string
	numParts      uint32
	epsilon       float64
	strict        bool
}

// scoreCommand creates the score command: evaluate an existing partition file
// against a hypergraph without solving.
func (c *CLI) scoreCommand() *cobra.Command {
	opts := scoreOpts{
		numParts: pipeline.DefaultNumParts,
		epsilon:  pipeline.DefaultEpsilon,
	}

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score an existing partition against a hypergraph",
		Long: `Score a partition file (one part id per line) against a .hgr hypergraph.

By default out-of-range ids are ignored, matching solver output handling.
With --strict the partition must cover every node exactly once with ids in
[0, k).

Examples:
  hyperbench score --hgr instance.hgr --partition instance.partition
  hyperbench score --hgr instance.hgr --partition instance.partition -k 32 --strict`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			hg, err := hgr.Read(opts.hgrPath)
			if err != nil {
				return err
			}
			partition, err := hgr.ReadPartition(opts.partitionPath)
			if err != nil {
				return err
			}
			logger.Debug("loaded inputs",
				"nodes", hg.NumNodes,
				"hyperedges", hg.NumHyperedges,
				"partition entries", len(partition))

			if opts.strict {
				if err := quality.Validate(partition, hg.NumNodes, opts.numParts); err != nil {
					return err
				}
			}

			maxPartSize := quality.MaxPartSize(hg.NumNodes, opts.numParts, opts.epsilon)
			score := pipeline.ScorePartition(hg, partition, opts.numParts, maxPartSize)

			printSuccess("Scored %s", opts.partitionPath)
			printNewline()
			printKeyValue("connectivity", StyleNumber.Render(fmt.Sprintf("%d", score.Connectivity)))
			printKeyValue("max part", fmt.Sprintf("%d (bound %d)", score.MaxSize, maxPartSize))
			printKeyValue("min part", fmt.Sprintf("%d", score.MinSize))
			if score.Feasible {
				printKeyValue("feasible", StyleSuccess.Render("yes"))
			} else {
				printKeyValue("feasible", StyleWarning.Render("no"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.hgrPath, "hgr", "", "input .hgr file (required)")
	cmd.Flags().StringVar(&opts.partitionPath, "partition", "", "partition file (required)")
	cmd.Flags().Uint32VarP(&opts.numParts, "parts", "k", opts.numParts, "number of parts")
	cmd.Flags().Float64VarP(&opts.epsilon, "epsilon", "e", opts.epsilon, "balance tolerance")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "require full coverage with ids in [0, k)")
	_ = cmd.MarkFlagRequired("hgr")
	_ = cmd.MarkFlagRequired("partition")

	return cmd
}
