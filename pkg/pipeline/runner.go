package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/hyperbench/pkg/cache"
	"github.com/matzehuels/hyperbench/pkg/hypergraph"
	"github.com/matzehuels/hyperbench/pkg/hypergraph/hgr"
	"github.com/matzehuels/hyperbench/pkg/quality"
	"github.com/matzehuels/hyperbench/pkg/solver"
)

// Runner encapsulates pipeline execution with partition caching.
//
// The Runner is stateless except for the cache and logger - it doesn't store
// pipeline results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → solve → score pipeline for a .hgr file.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	logger := r.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	}

	result := &Result{RunID: uuid.NewString()}

	// Stage 1: Load
	loadStart := time.Now()
	hg, contentHash, err := r.Load(opts.HgrPath)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Hypergraph = hg
	result.Stats.LoadTime = time.Since(loadStart)

	logger.Info("loaded hypergraph",
		"path", opts.HgrPath,
		"nodes", hg.NumNodes,
		"hyperedges", hg.NumHyperedges,
		"duration", result.Stats.LoadTime)

	// Stage 2: Solve
	solveStart := time.Now()
	partition, solveHit, err := r.SolveWithCacheInfo(ctx, hg, contentHash, opts)
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}
	result.Partition = partition
	result.MaxPartSize = quality.MaxPartSize(hg.NumNodes, opts.NumParts, *opts.Epsilon)
	result.Stats.SolveTime = time.Since(solveStart)
	result.CacheInfo.SolveHit = solveHit

	logger.Info("solved",
		"variant", solver.VariantFor(hg.NumHyperedges),
		"cached", solveHit,
		"duration", result.Stats.SolveTime)

	// Stage 3: Score
	scoreStart := time.Now()
	result.Score = ScorePartition(hg, partition, opts.NumParts, result.MaxPartSize)
	result.Stats.ScoreTime = time.Since(scoreStart)

	logger.Info("scored",
		"connectivity", result.Score.Connectivity,
		"feasible", result.Score.Feasible,
		"duration", result.Stats.ScoreTime)

	return result, nil
}

// Load parses a .hgr file and returns the hypergraph together with the
// content hash used for partition cache keys.
func (r *Runner) Load(path string) (*hypergraph.Hypergraph, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	hg, err := hgr.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, "", err
	}
	return hg, cache.Hash(data), nil
}

// SolveWithCacheInfo dispatches a solve with caching and reports whether the
// partition came from cache. contentHash identifies the hypergraph; callers
// that did not load from a file can use HypergraphHash.
func (r *Runner) SolveWithCacheInfo(ctx context.Context, hg *hypergraph.Hypergraph, contentHash string, opts Options) ([]uint32, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	maxPartSize := quality.MaxPartSize(hg.NumNodes, opts.NumParts, *opts.Epsilon)
	cacheKey := r.Keyer.PartitionKey(contentHash, cache.PartitionKeyOpts{
		NumParts:    opts.NumParts,
		MaxPartSize: maxPartSize,
		Effort:      *opts.Effort,
		Refinement:  opts.Refinement,
		Engine:      opts.EngineName,
	})

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var partition []uint32
			if err := json.Unmarshal(data, &partition); err == nil {
				return partition, true, nil // Cache hit
			}
		}
	}

	partition, err := solver.Dispatch(ctx, hg, opts.solverOptions(maxPartSize), opts.Registry)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	if !opts.Refresh {
		if data, err := json.Marshal(partition); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLPartition)
		}
	}

	return partition, false, nil // Cache miss
}

// Solve is a convenience wrapper that discards the cache hit info.
func (r *Runner) Solve(ctx context.Context, hg *hypergraph.Hypergraph, contentHash string, opts Options) ([]uint32, error) {
	partition, _, err := r.SolveWithCacheInfo(ctx, hg, contentHash, opts)
	return partition, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// ScorePartition computes the quality verdict for a (hypergraph, partition)
// pair against the given part count and balance bound.
func ScorePartition(hg *hypergraph.Hypergraph, partition []uint32, numParts, maxPartSize uint32) Score {
	feasible, maxSize, minSize := quality.CheckFeasibility(partition, numParts, maxPartSize)
	return Score{
		Connectivity: quality.Connectivity(hg, partition),
		Feasible:     feasible,
		MaxSize:      maxSize,
		MinSize:      minSize,
	}
}

// HypergraphHash computes the content hash of an in-memory hypergraph by
// serializing it to the canonical .hgr form, matching the hash Load computes
// for the equivalent file.
func HypergraphHash(hg *hypergraph.Hypergraph) (string, error) {
	var buf bytes.Buffer
	if err := hgr.Serialize(&buf, hg); err != nil {
		return "", err
	}
	return cache.Hash(buf.Bytes()), nil
}
