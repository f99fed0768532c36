package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hyperbench/pkg/errors"
	"github.com/matzehuels/hyperbench/pkg/hypergraph/hgr"
	"github.com/matzehuels/hyperbench/pkg/pipeline"
	"github.com/matzehuels/hyperbench/pkg/quality"
)

// compareOpts holds the command-line flags for the compare command.
type compareOpts struct {
	numParts uint32
	epsilon  float64
}

// comparison is the per-instance outcome of comparing two result sets.
type comparison struct {
	name       string
	km1A, km1B uint32
	secsA      float64
	secsB      float64
	hasTimes   bool
}

// compareCommand creates the compare command: side-by-side KM1 and timing
// comparison of two result directories over the same instances.
func (c *CLI) compareCommand() *cobra.Command {
	opts := compareOpts{
		numParts: pipeline.DefaultNumParts,
		epsilon:  pipeline.DefaultEpsilon,
	}

	cmd := &cobra.Command{
		Use:   "compare <hgr-dir> <dir-a> <dir-b>",
		Short: "Compare two partition result sets instance by instance",
		Long: `Compare the partitions in dir-a and dir-b for the instances in hgr-dir.

For each instance present in both result directories the command scores both
partitions and prints connectivity side by side with the relative change.
Solve times are included when .time files are present.

Examples:
  hyperbench compare instances results_baseline results_tuned
  hyperbench compare results results_old results_new -k 32`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			hgrDir, dirA, dirB := args[0], args[1], args[2]

			stems, err := instanceStems(hgrDir)
			if err != nil {
				return err
			}

			var rows []comparison
			for _, stem := range stems {
				row, ok, err := compareInstance(hgrDir, dirA, dirB, stem, opts)
				if err != nil {
					return err
				}
				if !ok {
					continue
				}
				rows = append(rows, row)
			}
			if len(rows) == 0 {
				return errors.New(errors.ErrCodeNotFound, "no instances present in both %s and %s", dirA, dirB)
			}

			printCompareTable(filepath.Base(dirA), filepath.Base(dirB), rows)
			return nil
		},
	}

	cmd.Flags().Uint32VarP(&opts.numParts, "parts", "k", opts.numParts, "number of parts")
	cmd.Flags().Float64VarP(&opts.epsilon, "epsilon", "e", opts.epsilon, "balance tolerance")

	return cmd
}

// compareInstance scores the two partitions for one instance. ok is false when
// either directory lacks a partition for the stem.
func compareInstance(hgrDir, dirA, dirB, stem string, opts compareOpts) (comparison, bool, error) {
	pathA := partitionPath(dirA, stem)
	pathB := partitionPath(dirB, stem)
	if _, err := os.Stat(pathA); err != nil {
		return comparison{}, false, nil
	}
	if _, err := os.Stat(pathB); err != nil {
		return comparison{}, false, nil
	}

	hg, err := hgr.Read(filepath.Join(hgrDir, stem+".hgr"))
	if err != nil {
		return comparison{}, false, err
	}
	partA, err := hgr.ReadPartition(pathA)
	if err != nil {
		return comparison{}, false, err
	}
	partB, err := hgr.ReadPartition(pathB)
	if err != nil {
		return comparison{}, false, err
	}

	maxPartSize := quality.MaxPartSize(hg.NumNodes, opts.numParts, opts.epsilon)
	row := comparison{
		name: stem,
		km1A: pipeline.ScorePartition(hg, partA, opts.numParts, maxPartSize).Connectivity,
		km1B: pipeline.ScorePartition(hg, partB, opts.numParts, maxPartSize).Connectivity,
	}

	if secsA, err := hgr.ReadTiming(filepath.Join(dirA, stem+".time")); err == nil {
		if secsB, err := hgr.ReadTiming(filepath.Join(dirB, stem+".time")); err == nil {
			row.secsA, row.secsB = secsA, secsB
			row.hasTimes = true
		}
	}

	return row, true, nil
}

// printCompareTable renders the comparison as a bordered table with a totals
// row.
func printCompareTable(labelA, labelB string, rows []comparison) {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	var totalA, totalB uint64
	var secsA, secsB float64
	data := make([][]string, 0, len(rows)+1)
	for _, r := range rows {
		totalA += uint64(r.km1A)
		totalB += uint64(r.km1B)
		secsA += r.secsA
		secsB += r.secsB

		times := "—"
		if r.hasTimes {
			times = fmt.Sprintf("%.3fs / %.3fs", r.secsA, r.secsB)
		}
		data = append(data, []string{
			r.name,
			fmt.Sprintf("%d", r.km1A),
			fmt.Sprintf("%d", r.km1B),
			formatDelta(r.km1A, r.km1B),
			times,
		})
	}
	data = append(data, []string{
		"total",
		fmt.Sprintf("%d", totalA),
		fmt.Sprintf("%d", totalB),
		formatDeltaTotals(totalA, totalB),
		fmt.Sprintf("%.3fs / %.3fs", secsA, secsB),
	})

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Instance", "km1 "+labelA, "km1 "+labelB, "Δ", "time a/b").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row == len(data)-1 {
				return lipgloss.NewStyle().Bold(true)
			}
			if col == 0 {
				return StyleValue
			}
			return lipgloss.NewStyle()
		})

	fmt.Println(t.Render())
}

// formatDelta renders the relative KM1 change from a to b; negative is an
// improvement.
func formatDelta(a, b uint32) string {
	return formatDeltaTotals(uint64(a), uint64(b))
}

func formatDeltaTotals(a, b uint64) string {
	if a == 0 {
		return "—"
	}
	pct := (float64(b) - float64(a)) / float64(a) * 100
	s := fmt.Sprintf("%+.1f%%", pct)
	switch {
	case pct < 0:
		return StyleSuccess.Render(s)
	case pct > 0:
		return StyleWarning.Render(s)
	default:
		return StyleDim.Render(s)
	}
}
