package bench

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/hyperbench/pkg/errors"
)

func TestTrackID(t *testing.T) {
	tests := []struct {
		track uint32
		want  string
	}{
		{10000, "track_10k"},
		{15000, "track_10k"},
		{20000, "track_20k"},
		{50000, "track_50k"},
		{100000, "track_100k"},
		{200000, "track_200k"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TrackID(tt.track), "track=%d", tt.track)
	}
}

func TestSeedDeterministic(t *testing.T) {
	a := Seed(10000, 0)
	b := Seed(10000, 0)
	assert.Equal(t, a, b)

	assert.NotEqual(t, a, Seed(10000, 1), "nonce must change the seed")
	assert.NotEqual(t, a, Seed(50000, 0), "track must change the seed")

	// Tracks in the same bucket share a track id and therefore seeds.
	assert.Equal(t, Seed(10000, 3), Seed(12000, 3))

	assert.Len(t, SeedHex(a), 8)
}

func TestGenerateDeterministic(t *testing.T) {
	seed := Seed(10000, 0)

	a, err := Generate(seed, 1000)
	require.NoError(t, err)
	b, err := Generate(seed, 1000)
	require.NoError(t, err)

	assert.Equal(t, a.Hypergraph.HyperedgeOffsets, b.Hypergraph.HyperedgeOffsets)
	assert.Equal(t, a.Hypergraph.HyperedgeNodes, b.Hypergraph.HyperedgeNodes)
}

func TestGenerateShape(t *testing.T) {
	inst, err := Generate(Seed(10000, 7), 1000)
	require.NoError(t, err)

	hg := inst.Hypergraph
	assert.Equal(t, uint32(1000), hg.NumHyperedges)
	assert.Equal(t, uint32(500), hg.NumNodes)
	assert.Len(t, hg.HyperedgeOffsets, 1001)

	for h := uint32(0); h < hg.NumHyperedges; h++ {
		size := len(hg.Edge(h))
		assert.GreaterOrEqual(t, size, minEdgeSize)
		assert.LessOrEqual(t, size, maxEdgeSize)
		for _, node := range hg.Edge(h) {
			assert.GreaterOrEqual(t, node, int32(0))
			assert.Less(t, node, int32(hg.NumNodes))
		}
	}

	assert.Equal(t, uint32(defaultK), inst.K)
	// ceil((500/64) * 1.03) = ceil(8.046) = 9
	assert.Equal(t, uint32(9), inst.MaxPartSize)
}

func TestGenerateSmallTrackKeepsNodeFloor(t *testing.T) {
	inst, err := Generate(Seed(10000, 0), 100)
	require.NoError(t, err)
	assert.Equal(t, uint32(defaultK*2), inst.Hypergraph.NumNodes)
}

func TestGenerateRejectsZeroTrack(t *testing.T) {
	_, err := Generate(Seed(10000, 0), 0)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidParams))
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suite.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
k = 32
epsilon = 0.05
effort = 3
out = "bench-out"

[[track]]
size = 10000
nonces = 4

[[track]]
size = 50000
nonces = 2
seed_start = 100
`), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, uint32(32), cfg.K)
	assert.Equal(t, 0.05, cfg.Epsilon)
	assert.Equal(t, uint32(3), cfg.Effort)
	assert.Nil(t, cfg.Refinement)
	assert.Equal(t, "bench-out", cfg.Out)
	require.Len(t, cfg.Tracks, 2)
	assert.Equal(t, uint64(100), cfg.Tracks[1].SeedStart)
}

func TestLoadConfigDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suite.toml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigInvalid(t *testing.T) {
	dir := t.TempDir()

	badToml := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(badToml, []byte("k = [broken"), 0644))
	_, err := LoadConfig(badToml)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))

	badParams := filepath.Join(dir, "params.toml")
	require.NoError(t, os.WriteFile(badParams, []byte("k = 1"), 0644))
	_, err = LoadConfig(badParams)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidParams))

	_, err = LoadConfig(filepath.Join(dir, "missing.toml"))
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))
}

func TestSummarize(t *testing.T) {
	results := []InstanceResult{
		{Name: "a", Connectivity: 10, Feasible: true, ElapsedSecs: 1.0},
		{Name: "b", Connectivity: 20, Feasible: true, ElapsedSecs: 3.0},
		{Name: "c", Connectivity: 30, Feasible: false, ElapsedSecs: 2.0},
	}

	s := Summarize(results)
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, 2, s.Feasible)
	assert.Equal(t, uint64(60), s.TotalKM1)
	assert.Equal(t, 20.0, s.MeanKM1)
	assert.Equal(t, uint32(10), s.MinKM1)
	assert.Equal(t, uint32(30), s.MaxKM1)
	assert.InDelta(t, 10.0, s.StdDevKM1, 1e-9)
	assert.Equal(t, 6.0, s.TotalSecs)
	assert.Equal(t, 2.0, s.MeanSecs)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.Count)
	assert.Equal(t, 0.0, s.MeanKM1)
}
