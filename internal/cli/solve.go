package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hyperbench/pkg/hypergraph/hgr"
	"github.com/matzehuels/hyperbench/pkg/pipeline"
)

// solveOpts holds the command-line flags for the solve command.
type solveOpts struct {
	hgrPath    string // input hyperedge-list file
	output     string // partition output path (omitted if empty)
	timing     string // timing output path (omitted if empty)
	numParts   uint32
	epsilon    float64
	effort     uint32
	refinement uint32 // only applied when the flag is set
	noCache    bool
	refresh    bool
}

// solveCommand creates the solve command: partition one .hgr file and report
// connectivity and feasibility.
func (c *CLI) solveCommand() *cobra.Command {
	opts := solveOpts{
		numParts: pipeline.DefaultNumParts,
		epsilon:  pipeline.DefaultEpsilon,
		effort:   pipeline.DefaultEffort,
	}

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Partition a hypergraph and score the result",
		Long: `Partition a hypergraph from a .hgr file into k balanced parts and score
the partition by connectivity (KM1).

The solver engine is selected by hyperedge count (track_10k through
track_200k). Partitions are cached by input content and solve parameters;
use --refresh to force a re-solve or --no-cache to disable caching.

Examples:
  hyperbench solve --hgr instance.hgr
  hyperbench solve --hgr instance.hgr -k 32 -e 0.05 -o instance.partition
  hyperbench solve --hgr instance.hgr --effort 4 --timing instance.time`,
		RunE: func(cmd *cobra.Command, args []string) error {
			popts := pipeline.Options{
				HgrPath:  opts.hgrPath,
				NumParts: opts.numParts,
				Epsilon:  &opts.epsilon,
				Effort:   &opts.effort,
				Refresh:  opts.refresh,
				Logger:   c.Logger,
			}
			if cmd.Flags().Changed("refinement") {
				popts.Refinement = &opts.refinement
			}

			runner, err := c.newRunner(opts.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			result, err := runner.Execute(cmd.Context(), popts)
			if err != nil {
				return err
			}

			printSuccess("Partitioned %s", opts.hgrPath)
			printStats(result.Hypergraph.NumNodes, result.Hypergraph.NumHyperedges,
				result.Hypergraph.PinCount(), result.CacheInfo.SolveHit)
			printNewline()
			printKeyValue("connectivity", StyleNumber.Render(fmt.Sprintf("%d", result.Score.Connectivity)))
			printKeyValue("max part", fmt.Sprintf("%d (bound %d)", result.Score.MaxSize, result.MaxPartSize))
			printKeyValue("min part", fmt.Sprintf("%d", result.Score.MinSize))
			if result.Score.Feasible {
				printKeyValue("feasible", StyleSuccess.Render("yes"))
			} else {
				printKeyValue("feasible", StyleWarning.Render("no"))
			}

			if opts.output != "" {
				if err := hgr.WritePartition(opts.output, result.Partition); err != nil {
					return err
				}
				printFile(opts.output)
			}
			if opts.timing != "" {
				if err := hgr.WriteTiming(opts.timing, result.Stats.SolveTime.Seconds()); err != nil {
					return err
				}
				printFile(opts.timing)
			}
			if opts.output != "" {
				printNewline()
				printNextStep("Score it again later", fmt.Sprintf("hyperbench score --hgr %s --partition %s", opts.hgrPath, opts.output))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.hgrPath, "hgr", "", "input .hgr file (required)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the partition to this file")
	cmd.Flags().StringVar(&opts.timing, "timing", "", "write the solve time (seconds) to this file")
	cmd.Flags().Uint32VarP(&opts.numParts, "parts", "k", opts.numParts, "number of parts")
	cmd.Flags().Float64VarP(&opts.epsilon, "epsilon", "e", opts.epsilon, "balance tolerance")
	cmd.Flags().Uint32Var(&opts.effort, "effort", opts.effort, "solver effort level (0-5)")
	cmd.Flags().Uint32Var(&opts.refinement, "refinement", 0, "override the number of refinement rounds")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the partition cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the partition cache")
	_ = cmd.MarkFlagRequired("hgr")

	return cmd
}
