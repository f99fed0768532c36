package cli

import (
	"fmt"

	"github.com/matzehuels/hyperbench/pkg/bench"
)

// printSummary prints suite statistics as labeled values.
func printSummary(s bench.Summary) {
	if s.Count == 0 {
		printWarning("No instances scored")
		return
	}

	printKeyValue("instances", fmt.Sprintf("%d (%d feasible)", s.Count, s.Feasible))
	printKeyValue("total km1", StyleNumber.Render(fmt.Sprintf("%d", s.TotalKM1)))
	printKeyValue("mean km1", fmt.Sprintf("%.1f ± %.1f", s.MeanKM1, s.StdDevKM1))
	printKeyValue("min / max", fmt.Sprintf("%d / %d", s.MinKM1, s.MaxKM1))
	if s.TotalSecs > 0 {
		printKeyValue("total time", fmt.Sprintf("%.3fs", s.TotalSecs))
		printKeyValue("mean time", fmt.Sprintf("%.3fs", s.MeanSecs))
	}
}
