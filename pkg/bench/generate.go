package bench

import (
	"math/rand/v2"

	"github.com/matzehuels/hyperbench/pkg/errors"
	"github.com/matzehuels/hyperbench/pkg/hypergraph"
	"github.com/matzehuels/hyperbench/pkg/quality"
)

// Instance is a generated benchmark instance: the hypergraph plus the solve
// parameters every tool scoring it must use.
type Instance struct {
	Hypergraph  *hypergraph.Hypergraph
	Seed        [32]byte
	Track       uint32
	K           uint32
	MaxPartSize uint32
}

// Generation shape parameters. Hyperedge sizes are drawn uniformly from
// [minEdgeSize, maxEdgeSize] and the node count is half the hyperedge count,
// which keeps average node degree in the same regime across tracks.
const (
	minEdgeSize = 2
	maxEdgeSize = 8

	// defaultK is the part count benchmark instances are solved with.
	defaultK = 64

	// defaultEpsilon is the balance tolerance used to derive max part size.
	defaultEpsilon = 0.03
)

// Generate builds the benchmark instance for a seed deterministically: the
// 32-byte seed keys a ChaCha8 stream, so equal seeds always produce equal
// instances. track is the hyperedge count; the node count, edge sizes and
// memberships follow from the stream.
func Generate(seed [32]byte, track uint32) (*Instance, error) {
	if err := errors.ValidateTrack(track); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewChaCha8(seed))

	numNodes := track / 2
	if numNodes < defaultK*2 {
		numNodes = defaultK * 2
	}

	offsets := make([]int32, 1, track+1)
	nodes := make([]int32, 0, int(track)*(minEdgeSize+maxEdgeSize)/2)

	for h := uint32(0); h < track; h++ {
		size := minEdgeSize + rng.IntN(maxEdgeSize-minEdgeSize+1)
		for i := 0; i < size; i++ {
			nodes = append(nodes, int32(rng.Uint32N(numNodes)))
		}
		offsets = append(offsets, int32(len(nodes)))
	}

	return &Instance{
		Hypergraph:  hypergraph.Build(numNodes, track, offsets, nodes),
		Seed:        seed,
		Track:       track,
		K:           defaultK,
		MaxPartSize: quality.MaxPartSize(numNodes, defaultK, defaultEpsilon),
	}, nil
}
