// Package solver dispatches partitioning work to solver engines.
//
// The actual partitioning algorithm lives behind the Engine interface - in
// production that is a GPU-resident solver owned by an external component.
// This package owns everything around that boundary: adapting a Hypergraph
// into the solver's input record (CSR arrays plus derived per-hyperedge-size
// and per-node-degree arrays), selecting a solver variant by hyperedge-count
// bucket, and capturing the engine's single result callback.
//
// Engines report their result by calling ResultSink.Accept exactly once
// before Solve returns (or not at all on internal failure). The dispatcher
// owns a single-slot sink, reads it unconditionally after a successful call,
// and surfaces a missing result as a NO_SOLUTION error.
package solver

import (
	"context"

	"github.com/matzehuels/hyperbench/pkg/errors"
	"github.com/matzehuels/hyperbench/pkg/hypergraph"
)

// Options carries the solve parameters shared by every engine variant.
type Options struct {
	NumParts    uint32 // k
	MaxPartSize uint32 // balance bound, derived by the caller
	Effort      uint32 // 0-5, higher = better quality, slower

	// RefinementRounds overrides the effort-based refinement default when
	// non-nil.
	RefinementRounds *uint32
}

// Input is the record handed to a solver engine: the dual CSR arrays of the
// hypergraph, the size-derived auxiliary arrays the solver requires, and the
// solve parameters.
type Input struct {
	NumNodes      uint32
	NumHyperedges uint32
	NumParts      uint32
	MaxPartSize   uint32
	TotalPins     uint32

	HyperedgeSizes   []int32 // sizes[h] = offsets[h+1]-offsets[h]
	HyperedgeOffsets []int32
	HyperedgeNodes   []int32
	NodeDegrees      []int32 // degrees[v] = nodeOffsets[v+1]-nodeOffsets[v]
	NodeOffsets      []int32
	NodeHyperedges   []int32

	Effort           uint32
	RefinementRounds *uint32
}

// NewInput adapts a hypergraph and solve options into an engine input record.
// The CSR arrays are shared with the hypergraph, not copied; engines treat
// them as read-only.
func NewInput(hg *hypergraph.Hypergraph, opts Options) *Input {
	return &Input{
		NumNodes:      hg.NumNodes,
		NumHyperedges: hg.NumHyperedges,
		NumParts:      opts.NumParts,
		MaxPartSize:   opts.MaxPartSize,
		TotalPins:     uint32(hg.PinCount()),

		HyperedgeSizes:   hg.EdgeSizes(),
		HyperedgeOffsets: hg.HyperedgeOffsets,
		HyperedgeNodes:   hg.HyperedgeNodes,
		NodeDegrees:      hg.NodeDegrees(),
		NodeOffsets:      hg.NodeOffsets,
		NodeHyperedges:   hg.NodeHyperedges,

		Effort:           opts.Effort,
		RefinementRounds: opts.RefinementRounds,
	}
}

// ResultSink receives a solver's node->part assignment. Engines must call
// Accept at most once per Solve invocation, before Solve returns.
type ResultSink interface {
	Accept(partition []uint32) error
}

// Engine is the boundary to an external solver variant. Solve blocks until
// the solve completes, reporting the final assignment through sink.
type Engine interface {
	Solve(ctx context.Context, in *Input, sink ResultSink) error
}

// capture is the dispatcher's single-slot result holder. The engine contract
// guarantees at most one Accept before Solve returns; a repeated call keeps
// the last write, matching the capture cell of the reference pipeline.
type capture struct {
	partition []uint32
	written   bool
}

// Accept stores a copy of the partition.
func (c *capture) Accept(partition []uint32) error {
	c.partition = make([]uint32, len(partition))
	copy(c.partition, partition)
	c.written = true
	return nil
}

// Dispatch runs a full solve: it validates options, adapts hg into the
// engine input, selects the variant for hg's hyperedge count, invokes the
// registered engine and returns the captured assignment.
//
// Engine failures propagate opaquely with the SOLVER_FAILED code; there is no
// retry and no partial-result salvage. An engine that returns success without
// reporting a result yields NO_SOLUTION.
func Dispatch(ctx context.Context, hg *hypergraph.Hypergraph, opts Options, registry Registry) ([]uint32, error) {
	if err := errors.ValidateSolveParams(opts.NumParts, 0, opts.Effort); err != nil {
		return nil, err
	}

	variant := VariantFor(hg.NumHyperedges)
	engine, ok := registry[variant]
	if !ok || engine == nil {
		return nil, errors.New(errors.ErrCodeNoEngine, "no engine registered for variant %s", variant)
	}

	sink := &capture{}
	if err := engine.Solve(ctx, NewInput(hg, opts), sink); err != nil {
		return nil, errors.Wrap(errors.ErrCodeSolverFailed, err, "variant %s", variant)
	}
	if !sink.written {
		return nil, errors.New(errors.ErrCodeNoSolution, "variant %s returned without a result", variant)
	}

	return sink.partition, nil
}
