// Package hypergraph provides the in-memory hypergraph representation used
// throughout Hyperbench.
//
// A hypergraph is stored as a dual compressed-sparse-row (CSR) structure:
// the forward direction maps each hyperedge to its node list, and the
// transpose maps each node to the list of hyperedges containing it. The
// transpose is never authored independently - it is derived from the forward
// arrays during construction with a two-pass counting sort.
//
// Once built, a Hypergraph is read-only. Multiple goroutines may evaluate or
// dispatch against the same instance concurrently without synchronization.
package hypergraph

// Hypergraph is a dual-CSR hypergraph. The forward arrays
// (HyperedgeOffsets, HyperedgeNodes) map hyperedges to node lists; the
// transpose arrays (NodeOffsets, NodeHyperedges) map nodes to hyperedge lists.
//
// CSR invariants for the forward direction:
//   - len(HyperedgeOffsets) == NumHyperedges+1
//   - HyperedgeOffsets[0] == 0, monotonically non-decreasing
//   - HyperedgeOffsets[NumHyperedges] == len(HyperedgeNodes)
//
// The transpose satisfies the same shape over NumNodes. A node repeated
// twice within one hyperedge appears twice in the forward slice and yields
// two entries in its transpose slice - occurrences are preserved, never
// deduplicated.
//
// The zero value is not usable - use Build.
type Hypergraph struct {
	NumNodes      uint32
	NumHyperedges uint32

	HyperedgeOffsets []int32 // len NumHyperedges+1
	HyperedgeNodes   []int32 // 0-based node ids, flat

	NodeOffsets    []int32 // len NumNodes+1, derived
	NodeHyperedges []int32 // 0-based hyperedge ids, flat, derived
}

// Build constructs a Hypergraph from validated forward CSR arrays and derives
// the transpose adjacency.
//
// The transpose is built with a counting sort in two linear passes over the
// incidences: the first pass counts per-node degrees and prefix-sums them into
// NodeOffsets, the second scatters hyperedge ids into NodeHyperedges using a
// per-node write cursor. Forward order is preserved, so the transpose slice of
// a node lists hyperedges in ascending id order with one entry per occurrence.
//
// Node ids outside [0, numNodes) are silently excluded from the transpose.
// This leniency is part of the file-format contract: such ids also do not
// participate in connectivity scoring.
func Build(numNodes, numHyperedges uint32, hyperedgeOffsets, hyperedgeNodes []int32) *Hypergraph {
	nodeOffsets, nodeHyperedges := transpose(int(numNodes), hyperedgeOffsets, hyperedgeNodes)

	return &Hypergraph{
		NumNodes:         numNodes,
		NumHyperedges:    numHyperedges,
		HyperedgeOffsets: hyperedgeOffsets,
		HyperedgeNodes:   hyperedgeNodes,
		NodeOffsets:      nodeOffsets,
		NodeHyperedges:   nodeHyperedges,
	}
}

// transpose derives the node->hyperedge CSR arrays from the forward
// hyperedge->node arrays.
func transpose(numNodes int, hyperedgeOffsets, hyperedgeNodes []int32) ([]int32, []int32) {
	degrees := make([]int32, numNodes)

	numHyperedges := len(hyperedgeOffsets) - 1
	for h := 0; h < numHyperedges; h++ {
		start, end := hyperedgeOffsets[h], hyperedgeOffsets[h+1]
		for _, node := range hyperedgeNodes[start:end] {
			if int(node) >= 0 && int(node) < numNodes {
				degrees[node]++
			}
		}
	}

	nodeOffsets := make([]int32, numNodes+1)
	for i := 0; i < numNodes; i++ {
		nodeOffsets[i+1] = nodeOffsets[i] + degrees[i]
	}

	nodeHyperedges := make([]int32, nodeOffsets[numNodes])
	cursors := make([]int32, numNodes)

	for h := 0; h < numHyperedges; h++ {
		start, end := hyperedgeOffsets[h], hyperedgeOffsets[h+1]
		for _, node := range hyperedgeNodes[start:end] {
			if int(node) >= 0 && int(node) < numNodes {
				nodeHyperedges[nodeOffsets[node]+cursors[node]] = int32(h)
				cursors[node]++
			}
		}
	}

	return nodeOffsets, nodeHyperedges
}

// Edge returns the node slice of hyperedge h. The returned slice aliases the
// underlying storage and must not be modified.
func (hg *Hypergraph) Edge(h uint32) []int32 {
	return hg.HyperedgeNodes[hg.HyperedgeOffsets[h]:hg.HyperedgeOffsets[h+1]]
}

// Pins returns the hyperedge slice of node v - every hyperedge containing v,
// one entry per occurrence. The returned slice aliases the underlying storage
// and must not be modified.
func (hg *Hypergraph) Pins(v uint32) []int32 {
	return hg.NodeHyperedges[hg.NodeOffsets[v]:hg.NodeOffsets[v+1]]
}

// PinCount returns the total number of node-hyperedge incidences in the
// forward direction.
func (hg *Hypergraph) PinCount() int {
	return len(hg.HyperedgeNodes)
}

// EdgeSizes returns a freshly allocated array of per-hyperedge sizes,
// EdgeSizes()[h] == HyperedgeOffsets[h+1]-HyperedgeOffsets[h]. The external
// solver input requires this alongside the raw CSR arrays.
func (hg *Hypergraph) EdgeSizes() []int32 {
	sizes := make([]int32, hg.NumHyperedges)
	for h := range sizes {
		sizes[h] = hg.HyperedgeOffsets[h+1] - hg.HyperedgeOffsets[h]
	}
	return sizes
}

// NodeDegrees returns a freshly allocated array of per-node degrees,
// NodeDegrees()[v] == NodeOffsets[v+1]-NodeOffsets[v]. Degrees count only
// in-range incidences, matching the transpose.
func (hg *Hypergraph) NodeDegrees() []int32 {
	degrees := make([]int32, hg.NumNodes)
	for v := range degrees {
		degrees[v] = hg.NodeOffsets[v+1] - hg.NodeOffsets[v]
	}
	return degrees
}
