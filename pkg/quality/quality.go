// Package quality scores a partition against a hypergraph.
//
// It implements the connectivity (KM1) objective that hypergraph partitioners
// minimize, plus the balance/feasibility predicate and the max-part-size
// derivation shared by every caller.
//
// Both metrics are deliberately lenient toward out-of-range ids: node ids
// beyond the partition length contribute nothing to connectivity, and part
// ids >= k are not tallied by the feasibility check. Callers that want loud
// failure on malformed partitions can run Validate first.
package quality

import (
	"math"

	"github.com/matzehuels/hyperbench/pkg/errors"
	"github.com/matzehuels/hyperbench/pkg/hypergraph"
)

// Connectivity computes the KM1 metric: the sum over all hyperedges of
// (number of distinct parts touched - 1). A hyperedge fully inside one part,
// or with no in-range nodes, contributes zero.
//
// Merging two parts that a hyperedge touches never increases its
// contribution, so the metric is monotone under part merges.
func Connectivity(hg *hypergraph.Hypergraph, partition []uint32) uint32 {
	var connectivity uint32

	parts := make(map[uint32]struct{}, 8)
	for h := uint32(0); h < hg.NumHyperedges; h++ {
		clear(parts)
		for _, node := range hg.Edge(h) {
			if int(node) >= 0 && int(node) < len(partition) {
				parts[partition[node]] = struct{}{}
			}
		}
		if len(parts) > 1 {
			connectivity += uint32(len(parts) - 1)
		}
	}

	return connectivity
}

// CheckFeasibility tallies part sizes into k buckets and reports whether the
// partition is feasible: every part non-empty and the largest part within
// maxPartSize. Part ids >= k are ignored, not flagged.
//
// Returns the feasibility verdict together with the largest and smallest
// bucket sizes. With k == 0 both sizes are zero and the partition is
// infeasible.
func CheckFeasibility(partition []uint32, k, maxPartSize uint32) (isFeasible bool, maxSize, minSize uint32) {
	if k == 0 {
		return false, 0, 0
	}

	partSizes := make([]uint32, k)
	for _, p := range partition {
		if p < k {
			partSizes[p]++
		}
	}

	maxSize, minSize = partSizes[0], partSizes[0]
	for _, size := range partSizes[1:] {
		if size > maxSize {
			maxSize = size
		}
		if size < minSize {
			minSize = size
		}
	}

	isFeasible = minSize >= 1 && maxSize <= maxPartSize
	return isFeasible, maxSize, minSize
}

// MaxPartSize derives the balance bound from the node count, part count and
// balance epsilon: ceil((n/k) * (1+epsilon)). The rounding direction matters -
// reference scores only reproduce bit-for-bit with this exact formula.
func MaxPartSize(numNodes, k uint32, epsilon float64) uint32 {
	return uint32(math.Ceil(float64(numNodes) / float64(k) * (1.0 + epsilon)))
}

// Validate is the strict counterpart to the lenient metrics: it fails if the
// partition length does not match the node count or if any part id falls
// outside [0, k). The evaluation functions never require this - it exists for
// callers that prefer loud failure over silent dropping.
func Validate(partition []uint32, numNodes, k uint32) error {
	if uint32(len(partition)) != numNodes {
		return errors.New(errors.ErrCodeInvalidPartition,
			"length mismatch: expected %d entries, got %d", numNodes, len(partition))
	}
	for i, p := range partition {
		if p >= k {
			return errors.New(errors.ErrCodeInvalidPartition,
				"invalid part id at node %d: %d (must be below %d)", i, p, k)
		}
	}
	return nil
}
