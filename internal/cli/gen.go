package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hyperbench/pkg/bench"
	"github.com/matzehuels/hyperbench/pkg/hypergraph/hgr"
	"github.com/matzehuels/hyperbench/pkg/pipeline"
	"github.com/matzehuels/hyperbench/pkg/quality"
)

// genOpts holds the command-line flags for the gen command.
type genOpts struct {
	track      uint32
	nonces     uint32
	seedStart  uint64
	configPath string
	out        string
	numParts   uint32
	epsilon    float64
	effort     uint32
	refinement uint32
	noCache    bool
	refresh    bool
	plain      bool
}

// genInstance is one (track, nonce) pair of the flattened suite.
type genInstance struct {
	track uint32
	nonce uint64
	stem  string
}

// genCommand creates the gen command: generate benchmark instances from
// deterministic seeds, solve them, and export .hgr + partition + timing files.
func (c *CLI) genCommand() *cobra.Command {
	defaults := bench.DefaultConfig()
	opts := genOpts{
		track:  10000,
		nonces: 10,
		out:    defaults.Out,
	}

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate, solve, and export benchmark instances",
		Long: `Generate benchmark instances from deterministic seeds, solve each one, and
export the hypergraph, partition, and solve time per instance.

Seeds are derived from the track size and a nonce, so the same (track, nonce)
pair always yields the same instance. A multi-track suite can be described in
a TOML file passed with --config; flags describe a single-track suite.

Examples:
  hyperbench gen --track 10000 --nonces 5 --out results
  hyperbench gen --config suite.toml
  hyperbench gen --track 50000 --seed-start 100 --effort 4`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.suiteConfig(cmd)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(cfg.Out, 0o755); err != nil {
				return err
			}

			runner, err := c.newRunner(opts.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			instances := flattenSuite(cfg)
			names := make([]string, len(instances))
			for i, inst := range instances {
				names[i] = inst.stem
			}

			work := func(ctx context.Context, i int) (bench.InstanceResult, error) {
				return c.genOne(ctx, runner, cfg, opts, instances[i])
			}

			prog := newProgress(c.Logger)
			results, errs, err := runBatch(cmd.Context(), "Generating benchmark suite", names, work, opts.plain)
			if err != nil {
				return err
			}

			ok := make([]bench.InstanceResult, 0, len(results))
			failures := 0
			for i := range results {
				if errs[i] != nil {
					failures++
					continue
				}
				ok = append(ok, results[i])
			}
			prog.done(fmt.Sprintf("Solved %d instances", len(ok)))

			printNewline()
			printSummary(bench.Summarize(ok))
			printFile(cfg.Out)
			if failures > 0 {
				printWarning("%d instances failed", failures)
			}
			printNewline()
			printNextStep("Re-score the suite", fmt.Sprintf("hyperbench eval %s %s -k %d", cfg.Out, cfg.Out, cfg.K))
			return nil
		},
	}

	cmd.Flags().Uint32Var(&opts.track, "track", opts.track, "track size (hyperedge count)")
	cmd.Flags().Uint32Var(&opts.nonces, "nonces", opts.nonces, "instances per track")
	cmd.Flags().Uint64Var(&opts.seedStart, "seed-start", 0, "first nonce value")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "TOML suite file (overrides track flags)")
	cmd.Flags().StringVar(&opts.out, "out", opts.out, "output directory")
	cmd.Flags().Uint32VarP(&opts.numParts, "parts", "k", defaults.K, "number of parts")
	cmd.Flags().Float64VarP(&opts.epsilon, "epsilon", "e", defaults.Epsilon, "balance tolerance")
	cmd.Flags().Uint32Var(&opts.effort, "effort", defaults.Effort, "solver effort level (0-5)")
	cmd.Flags().Uint32Var(&opts.refinement, "refinement", 0, "override the number of refinement rounds")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the partition cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the partition cache")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "log progress lines instead of the live view")

	return cmd
}

// suiteConfig builds the suite configuration from --config or from flags.
func (o *genOpts) suiteConfig(cmd *cobra.Command) (bench.Config, error) {
	if o.configPath != "" {
		return bench.LoadConfig(o.configPath)
	}

	cfg := bench.Config{
		K:       o.numParts,
		Epsilon: o.epsilon,
		Effort:  o.effort,
		Out:     o.out,
		Tracks: []bench.TrackConfig{
			{Size: o.track, Nonces: o.nonces, SeedStart: o.seedStart},
		},
	}
	if cmd.Flags().Changed("refinement") {
		cfg.Refinement = &o.refinement
	}
	return cfg, cfg.Validate()
}

// flattenSuite expands a suite config into the ordered instance list.
func flattenSuite(cfg bench.Config) []genInstance {
	var instances []genInstance
	for _, track := range cfg.Tracks {
		for n := uint32(0); n < track.Nonces; n++ {
			nonce := track.SeedStart + uint64(n)
			instances = append(instances, genInstance{
				track: track.Size,
				nonce: nonce,
				stem:  fmt.Sprintf("track_%d_%04d", track.Size, nonce),
			})
		}
	}
	return instances
}

// genOne generates, solves, and exports a single instance.
func (c *CLI) genOne(ctx context.Context, runner *pipeline.Runner, cfg bench.Config, opts genOpts, gi genInstance) (bench.InstanceResult, error) {
	seed := bench.Seed(gi.track, gi.nonce)
	inst, err := bench.Generate(seed, gi.track)
	if err != nil {
		return bench.InstanceResult{}, err
	}

	hgrPath := filepath.Join(cfg.Out, gi.stem+".hgr")
	if err := hgr.Write(hgrPath, inst.Hypergraph); err != nil {
		return bench.InstanceResult{}, err
	}

	contentHash, err := pipeline.HypergraphHash(inst.Hypergraph)
	if err != nil {
		return bench.InstanceResult{}, err
	}

	popts := pipeline.Options{
		NumParts:   cfg.K,
		Epsilon:    &cfg.Epsilon,
		Effort:     &cfg.Effort,
		Refinement: cfg.Refinement,
		Refresh:    opts.refresh,
	}

	start := time.Now()
	partition, _, err := runner.SolveWithCacheInfo(ctx, inst.Hypergraph, contentHash, popts)
	if err != nil {
		return bench.InstanceResult{}, err
	}
	elapsed := time.Since(start).Seconds()

	if err := hgr.WritePartition(filepath.Join(cfg.Out, gi.stem+".partition"), partition); err != nil {
		return bench.InstanceResult{}, err
	}
	if err := hgr.WriteTiming(filepath.Join(cfg.Out, gi.stem+".time"), elapsed); err != nil {
		return bench.InstanceResult{}, err
	}

	maxPartSize := quality.MaxPartSize(inst.Hypergraph.NumNodes, cfg.K, cfg.Epsilon)
	score := pipeline.ScorePartition(inst.Hypergraph, partition, cfg.K, maxPartSize)

	return bench.InstanceResult{
		Name:         gi.stem,
		Connectivity: score.Connectivity,
		Feasible:     score.Feasible,
		ElapsedSecs:  elapsed,
	}, nil
}
