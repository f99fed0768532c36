package cli

import (
	"testing"

	"github.com/matzehuels/hyperbench/pkg/bench"
)

func TestFlattenSuite(t *testing.T) {
	cfg := bench.Config{
		Tracks: []bench.TrackConfig{
			{Size: 10000, Nonces: 2},
			{Size: 50000, Nonces: 1, SeedStart: 7},
		},
	}

	instances := flattenSuite(cfg)
	if len(instances) != 3 {
		t.Fatalf("len(instances) = %d, want 3", len(instances))
	}

	want := []genInstance{
		{track: 10000, nonce: 0, stem: "track_10000_0000"},
		{track: 10000, nonce: 1, stem: "track_10000_0001"},
		{track: 50000, nonce: 7, stem: "track_50000_0007"},
	}
	for i, w := range want {
		if instances[i] != w {
			t.Errorf("instances[%d] = %+v, want %+v", i, instances[i], w)
		}
	}
}

func TestFlattenSuiteEmpty(t *testing.T) {
	if got := flattenSuite(bench.Config{}); len(got) != 0 {
		t.Errorf("flattenSuite(empty) = %v, want none", got)
	}
}
