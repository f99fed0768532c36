// Package pipeline provides the core load → solve → score pipeline.
//
// Every entry point (the solve, gen and score commands) runs the same three
// stages through a Runner, so caching and logging behave identically
// everywhere:
//
//  1. Load: parse a .hgr file into the dual-CSR hypergraph
//  2. Solve: dispatch to a solver engine, with partition caching
//  3. Score: compute connectivity (KM1) and the balance/feasibility verdict
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    HgrPath:  "instance.hgr",
//	    Registry: solver.UniformRegistry(solver.NewGreedyEngine()),
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Connectivity)
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hyperbench/pkg/errors"
	"github.com/matzehuels/hyperbench/pkg/hypergraph"
	"github.com/matzehuels/hyperbench/pkg/solver"
)

// Default solve parameters - single source of truth for all commands.
const (
	// DefaultNumParts is the part count benchmark partitions use.
	DefaultNumParts = uint32(64)

	// DefaultEpsilon is the balance tolerance used to derive max part size.
	DefaultEpsilon = 0.03

	// DefaultEffort is the effort level (0-5) engines are asked for.
	DefaultEffort = uint32(2)

	// DefaultEngineName tags the built-in host-side engine in cache keys.
	DefaultEngineName = "greedy"
)

// Options contains all configuration for the solve pipeline.
type Options struct {
	// HgrPath is the input hyperedge-list file. Required by Execute; the
	// stage-level entry points take a hypergraph directly.
	HgrPath string

	NumParts uint32

	// Epsilon and Effort default when nil. Pointers keep explicit zeros
	// distinct from "unset": ε = 0 means a hard n/k balance bound and
	// effort 0 is the fastest level.
	Epsilon *float64
	Effort  *uint32

	Refinement *uint32

	// Refresh bypasses the partition cache for both reads and writes.
	Refresh bool

	// EngineName distinguishes cached partitions produced by different
	// engines (e.g. the host baseline vs. a GPU build).
	EngineName string

	// Registry maps solver variants to engines. Defaults to the host-side
	// greedy engine for every variant.
	Registry solver.Registry

	Logger *log.Logger
}

// ValidateAndSetDefaults fills unset options with defaults and validates the
// result.
func (o *Options) ValidateAndSetDefaults() error {
	if o.NumParts == 0 {
		o.NumParts = DefaultNumParts
	}
	if o.Epsilon == nil {
		epsilon := DefaultEpsilon
		o.Epsilon = &epsilon
	}
	if o.Effort == nil {
		effort := DefaultEffort
		o.Effort = &effort
	}
	if o.EngineName == "" {
		o.EngineName = DefaultEngineName
	}
	if o.Registry == nil {
		o.Registry = solver.UniformRegistry(solver.NewGreedyEngine())
	}
	return errors.ValidateSolveParams(o.NumParts, *o.Epsilon, *o.Effort)
}

// solverOptions converts pipeline options into the dispatcher's option record
// for a concrete hypergraph.
func (o *Options) solverOptions(maxPartSize uint32) solver.Options {
	return solver.Options{
		NumParts:         o.NumParts,
		MaxPartSize:      maxPartSize,
		Effort:           *o.Effort,
		RefinementRounds: o.Refinement,
	}
}

// Stats tracks per-stage durations.
type Stats struct {
	LoadTime  time.Duration
	SolveTime time.Duration
	ScoreTime time.Duration
}

// CacheInfo reports which stages were served from cache.
type CacheInfo struct {
	SolveHit bool
}

// Score is the quality verdict for one (hypergraph, partition) pair.
type Score struct {
	Connectivity uint32
	Feasible     bool
	MaxSize      uint32
	MinSize      uint32
}

// Result is the outcome of a full pipeline execution.
type Result struct {
	// RunID uniquely identifies this execution for logs and result files.
	RunID string

	Hypergraph  *hypergraph.Hypergraph
	Partition   []uint32
	MaxPartSize uint32

	Score     Score
	Stats     Stats
	CacheInfo CacheInfo
}
