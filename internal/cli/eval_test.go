package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/hyperbench/pkg/hypergraph/hgr"
)

func writeInstance(t *testing.T, dir, stem, hgrData string, partition []uint32) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, stem+".hgr"), []byte(hgrData), 0o644); err != nil {
		t.Fatalf("write hgr: %v", err)
	}
	if partition != nil {
		if err := hgr.WritePartition(partitionPath(dir, stem), partition); err != nil {
			t.Fatalf("write partition: %v", err)
		}
	}
}

func TestInstanceStems(t *testing.T) {
	dir := t.TempDir()
	writeInstance(t, dir, "b_instance", "1 2\n1 2\n", nil)
	writeInstance(t, dir, "a_instance", "1 2\n1 2\n", nil)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	stems, err := instanceStems(dir)
	if err != nil {
		t.Fatalf("instanceStems: %v", err)
	}
	if len(stems) != 2 || stems[0] != "a_instance" || stems[1] != "b_instance" {
		t.Errorf("stems = %v, want sorted [a_instance b_instance]", stems)
	}
}

func TestInstanceStemsMissingDir(t *testing.T) {
	if _, err := instanceStems(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestScoreInstance(t *testing.T) {
	dir := t.TempDir()
	// Two hyperedges over three nodes; partition splits the shared node away
	// from nothing, so edge {2,3} is cut.
	writeInstance(t, dir, "tiny", "2 3\n1 2\n2 3\n", []uint32{0, 0, 1})
	if err := hgr.WriteTiming(filepath.Join(dir, "tiny.time"), 1.5); err != nil {
		t.Fatal(err)
	}

	result, err := scoreInstance(dir, dir, "tiny", 2, 0.5)
	if err != nil {
		t.Fatalf("scoreInstance: %v", err)
	}

	if result.Name != "tiny" {
		t.Errorf("Name = %q, want tiny", result.Name)
	}
	if result.Connectivity != 1 {
		t.Errorf("Connectivity = %d, want 1", result.Connectivity)
	}
	if !result.Feasible {
		t.Error("partition should be feasible")
	}
	if result.ElapsedSecs != 1.5 {
		t.Errorf("ElapsedSecs = %v, want 1.5", result.ElapsedSecs)
	}
}

func TestScoreInstanceNoTiming(t *testing.T) {
	dir := t.TempDir()
	writeInstance(t, dir, "tiny", "1 2\n1 2\n", []uint32{0, 1})

	result, err := scoreInstance(dir, dir, "tiny", 2, 0.5)
	if err != nil {
		t.Fatalf("scoreInstance: %v", err)
	}
	if result.ElapsedSecs != 0 {
		t.Errorf("ElapsedSecs = %v, want 0 without a .time file", result.ElapsedSecs)
	}
}
