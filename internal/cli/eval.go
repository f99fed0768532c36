package cli

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hyperbench/pkg/bench"
	"github.com/matzehuels/hyperbench/pkg/errors"
	"github.com/matzehuels/hyperbench/pkg/hypergraph/hgr"
	"github.com/matzehuels/hyperbench/pkg/pipeline"
	"github.com/matzehuels/hyperbench/pkg/quality"
)

// evalOpts holds the command-line flags for the eval command.
type evalOpts struct {
	numParts uint32
	epsilon  float64
	details  bool
	plain    bool
}

// evalCommand creates the eval command: batch-score a directory of partitions
// against their hypergraphs.
func (c *CLI) evalCommand() *cobra.Command {
	opts := evalOpts{
		numParts: pipeline.DefaultNumParts,
		epsilon:  pipeline.DefaultEpsilon,
	}

	cmd := &cobra.Command{
		Use:   "eval <hgr-dir> <partition-dir>",
		Short: "Batch-score partitions for a directory of instances",
		Long: `Score every instance in hgr-dir against its partition in partition-dir.

For each <name>.hgr the command expects <name>.partition in partition-dir; a
matching <name>.time file contributes the solve time to the summary when
present. Instances without a partition are skipped with a warning.

Examples:
  hyperbench eval results results
  hyperbench eval instances partitions -k 32 --details`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			hgrDir, partDir := args[0], args[1]

			stems, err := instanceStems(hgrDir)
			if err != nil {
				return err
			}

			names := make([]string, 0, len(stems))
			for _, stem := range stems {
				if _, err := os.Stat(partitionPath(partDir, stem)); err != nil {
					printWarning("%s: no partition, skipping", stem)
					continue
				}
				names = append(names, stem)
			}
			if len(names) == 0 {
				return errors.New(errors.ErrCodeNotFound, "no scoreable instances in %s", hgrDir)
			}

			work := func(ctx context.Context, i int) (bench.InstanceResult, error) {
				return scoreInstance(hgrDir, partDir, names[i], opts.numParts, opts.epsilon)
			}

			results, errs, err := runBatch(cmd.Context(), "Scoring partitions", names, work, opts.plain)
			if err != nil {
				return err
			}

			ok := make([]bench.InstanceResult, 0, len(results))
			failures := 0
			for i := range results {
				if errs[i] != nil {
					failures++
					if opts.plain {
						continue // already printed by runBatch
					}
					printError("%s: %v", names[i], errs[i])
					continue
				}
				ok = append(ok, results[i])
			}

			if opts.details {
				printNewline()
				for _, r := range ok {
					feasibility := StyleSuccess.Render("feasible")
					if !r.Feasible {
						feasibility = StyleWarning.Render("infeasible")
					}
					printDetail("%-28s km1=%-8d %.3fs  %s", r.Name, r.Connectivity, r.ElapsedSecs, feasibility)
				}
			}

			printNewline()
			printSummary(bench.Summarize(ok))
			if failures > 0 {
				printWarning("%d instances failed", failures)
			}
			return nil
		},
	}

	cmd.Flags().Uint32VarP(&opts.numParts, "parts", "k", opts.numParts, "number of parts")
	cmd.Flags().Float64VarP(&opts.epsilon, "epsilon", "e", opts.epsilon, "balance tolerance")
	cmd.Flags().BoolVar(&opts.details, "details", false, "print per-instance scores")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "log progress lines instead of the live view")

	return cmd
}

// instanceStems lists the sorted file stems of all .hgr files in dir.
func instanceStems(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "read %s", dir)
	}

	var stems []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".hgr") {
			continue
		}
		stems = append(stems, strings.TrimSuffix(e.Name(), ".hgr"))
	}
	sort.Strings(stems)
	return stems, nil
}

func partitionPath(dir, stem string) string {
	return filepath.Join(dir, stem+".partition")
}

// scoreInstance loads one (hypergraph, partition) pair and scores it. The
// elapsed time comes from the instance's .time file when one exists.
func scoreInstance(hgrDir, partDir, stem string, numParts uint32, epsilon float64) (bench.InstanceResult, error) {
	hg, err := hgr.Read(filepath.Join(hgrDir, stem+".hgr"))
	if err != nil {
		return bench.InstanceResult{}, err
	}
	partition, err := hgr.ReadPartition(partitionPath(partDir, stem))
	if err != nil {
		return bench.InstanceResult{}, err
	}

	maxPartSize := quality.MaxPartSize(hg.NumNodes, numParts, epsilon)
	score := pipeline.ScorePartition(hg, partition, numParts, maxPartSize)

	elapsed := 0.0
	if secs, err := hgr.ReadTiming(filepath.Join(partDir, stem+".time")); err == nil {
		elapsed = secs
	}

	return bench.InstanceResult{
		Name:         stem,
		Connectivity: score.Connectivity,
		Feasible:     score.Feasible,
		ElapsedSecs:  elapsed,
	}, nil
}
