package solver

import (
	"context"
)

// effortRounds maps an effort level (0-5) to the number of greedy refinement
// sweeps, unless the input carries an explicit refinement override.
var effortRounds = [6]uint32{1, 2, 4, 8, 12, 16}

// GreedyEngine is a host-side baseline engine. It seeds a balanced partition
// round-robin by node id and then runs bounded greedy sweeps that move nodes
// toward the part most represented among their hyperedge neighbors, never
// overfilling a part past MaxPartSize and never emptying one.
//
// It exists so the CLI and the pipeline work without GPU hardware, and as the
// quality floor the GPU variants are benchmarked against. It handles every
// variant; register it with UniformRegistry.
type GreedyEngine struct{}

// NewGreedyEngine returns a baseline engine.
func NewGreedyEngine() *GreedyEngine { return &GreedyEngine{} }

// Solve implements Engine. The result is deterministic for a given input.
func (e *GreedyEngine) Solve(ctx context.Context, in *Input, sink ResultSink) error {
	k := in.NumParts
	partition := make([]uint32, in.NumNodes)
	partSizes := make([]uint32, k)
	for v := range partition {
		partition[v] = uint32(v) % k
		partSizes[partition[v]]++
	}

	rounds := effortRounds[min(int(in.Effort), len(effortRounds)-1)]
	if in.RefinementRounds != nil {
		rounds = *in.RefinementRounds
	}

	presence := make([]int32, k) // per-part count of incident edges containing the part
	edgeParts := make([]bool, k) // scratch: distinct parts seen in current edge
	var touched []uint32

	for round := uint32(0); round < rounds; round++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		moved := false
		for v := uint32(0); v < in.NumNodes; v++ {
			cur := partition[v]
			if partSizes[cur] <= 1 {
				continue // moving would empty the part
			}

			touched = touched[:0]
			prev := int32(-1)
			for _, h := range in.NodeHyperedges[in.NodeOffsets[v]:in.NodeOffsets[v+1]] {
				if h == prev {
					continue // duplicate occurrence of v in the same edge
				}
				prev = h

				// Collect the distinct parts of the edge's other nodes.
				start, end := in.HyperedgeOffsets[h], in.HyperedgeOffsets[h+1]
				skipped := false
				for _, node := range in.HyperedgeNodes[start:end] {
					if uint32(node) == v && !skipped {
						skipped = true
						continue
					}
					if node < 0 || uint32(node) >= in.NumNodes {
						continue
					}
					p := partition[node]
					if !edgeParts[p] {
						edgeParts[p] = true
						if presence[p] == 0 {
							touched = append(touched, p)
						}
						presence[p]++
					}
				}
				for _, node := range in.HyperedgeNodes[start:end] {
					if node >= 0 && uint32(node) < in.NumNodes {
						edgeParts[partition[node]] = false
					}
				}
			}

			// Moving v to part p changes KM1 by presence[cur]-presence[p];
			// pick the strict best target that still fits.
			best := cur
			bestScore := presence[cur]
			for _, p := range touched {
				if p == cur || partSizes[p] >= in.MaxPartSize {
					continue
				}
				if presence[p] > bestScore || (presence[p] == bestScore && p < best && best != cur) {
					best = p
					bestScore = presence[p]
				}
			}

			for _, p := range touched {
				presence[p] = 0
			}

			if best != cur {
				partSizes[cur]--
				partSizes[best]++
				partition[v] = best
				moved = true
			}
		}

		if !moved {
			break
		}
	}

	return sink.Accept(partition)
}

var _ Engine = (*GreedyEngine)(nil)
