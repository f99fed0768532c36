package hgr

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/hyperbench/pkg/errors"
	"github.com/matzehuels/hyperbench/pkg/hypergraph"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string

		wantNodes      uint32
		wantHyperedges uint32
		wantOffsets    []int32
		wantEdgeNodes  []int32
	}{
		{
			name:           "WorkedExample",
			input:          "2 3\n1 2\n2 3\n",
			wantNodes:      3,
			wantHyperedges: 2,
			wantOffsets:    []int32{0, 2, 4},
			wantEdgeNodes:  []int32{0, 1, 1, 2},
		},
		{
			name:           "BlankLinesSkipped",
			input:          "2 3\n\n1 2\n\n\n2 3\n\n",
			wantNodes:      3,
			wantHyperedges: 2,
			wantOffsets:    []int32{0, 2, 4},
			wantEdgeNodes:  []int32{0, 1, 1, 2},
		},
		{
			name:           "ExtraWhitespace",
			input:          "  1   4  \n  1 2\t3 4 \n",
			wantNodes:      4,
			wantHyperedges: 1,
			wantOffsets:    []int32{0, 4},
			wantEdgeNodes:  []int32{0, 1, 2, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hg, err := Parse(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}

			if hg.NumNodes != tt.wantNodes {
				t.Errorf("NumNodes = %d, want %d", hg.NumNodes, tt.wantNodes)
			}
			if hg.NumHyperedges != tt.wantHyperedges {
				t.Errorf("NumHyperedges = %d, want %d", hg.NumHyperedges, tt.wantHyperedges)
			}
			if !reflect.DeepEqual(hg.HyperedgeOffsets, tt.wantOffsets) {
				t.Errorf("HyperedgeOffsets = %v, want %v", hg.HyperedgeOffsets, tt.wantOffsets)
			}
			if !reflect.DeepEqual(hg.HyperedgeNodes, tt.wantEdgeNodes) {
				t.Errorf("HyperedgeNodes = %v, want %v", hg.HyperedgeNodes, tt.wantEdgeNodes)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"EmptyFile", ""},
		{"OnlyBlankLines", "\n\n\n"},
		{"ShortHeader", "3\n1 2\n"},
		{"NonIntegerHeader", "x y\n"},
		{"NonIntegerNode", "1 3\n1 two\n"},
		{"TooFewHyperedges", "3 4\n1 2\n2 3\n"},
		{"TooManyHyperedges", "1 4\n1 2\n2 3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("Parse should fail")
			}
			if !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidFormat)
			}
		})
	}
}

// TestRoundTrip verifies parse(serialize(H)) reproduces the forward CSR
// arrays exactly.
func TestRoundTrip(t *testing.T) {
	original := hypergraph.Build(5, 3,
		[]int32{0, 3, 5, 8},
		[]int32{0, 1, 4, 2, 3, 1, 1, 4}, // duplicate node in edge 2 survives
	)

	var buf bytes.Buffer
	if err := Serialize(&buf, original); err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	parsed, err := Parse(&buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if parsed.NumNodes != original.NumNodes || parsed.NumHyperedges != original.NumHyperedges {
		t.Errorf("counts = (%d, %d), want (%d, %d)",
			parsed.NumNodes, parsed.NumHyperedges, original.NumNodes, original.NumHyperedges)
	}
	if !reflect.DeepEqual(parsed.HyperedgeOffsets, original.HyperedgeOffsets) {
		t.Errorf("HyperedgeOffsets = %v, want %v", parsed.HyperedgeOffsets, original.HyperedgeOffsets)
	}
	if !reflect.DeepEqual(parsed.HyperedgeNodes, original.HyperedgeNodes) {
		t.Errorf("HyperedgeNodes = %v, want %v", parsed.HyperedgeNodes, original.HyperedgeNodes)
	}
}

func TestSerializeFormat(t *testing.T) {
	hg := hypergraph.Build(3, 2, []int32{0, 2, 4}, []int32{0, 1, 1, 2})

	var buf bytes.Buffer
	if err := Serialize(&buf, hg); err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	if got, want := buf.String(), "2 3\n1 2\n2 3\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestPartitionRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.partition")

	partition := []uint32{0, 0, 1, 2, 1}
	if err := WritePartition(path, partition); err != nil {
		t.Fatalf("WritePartition: %v", err)
	}

	got, err := ReadPartition(path)
	if err != nil {
		t.Fatalf("ReadPartition: %v", err)
	}
	if !reflect.DeepEqual(got, partition) {
		t.Errorf("partition = %v, want %v", got, partition)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), "0\n0\n1\n2\n1\n"; got != want {
		t.Errorf("file = %q, want %q", got, want)
	}
}

func TestParsePartitionErrors(t *testing.T) {
	if _, err := ParsePartition(strings.NewReader("0\nabc\n1\n")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want INVALID_FORMAT", err)
	}
	if _, err := ParsePartition(strings.NewReader("0\n-1\n")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("negative part id error = %v, want INVALID_FORMAT", err)
	}
}

func TestTimingRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.time")

	if err := WriteTiming(path, 1.23456); err != nil {
		t.Fatalf("WriteTiming: %v", err)
	}
	secs, err := ReadTiming(path)
	if err != nil {
		t.Fatalf("ReadTiming: %v", err)
	}
	if secs != 1.235 {
		t.Errorf("secs = %v, want 1.235", secs)
	}
}

func TestReadWriteFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tiny.hgr")

	hg := hypergraph.Build(3, 2, []int32{0, 2, 4}, []int32{0, 1, 1, 2})
	if err := Write(path, hg); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !reflect.DeepEqual(got.HyperedgeNodes, hg.HyperedgeNodes) {
		t.Errorf("HyperedgeNodes = %v, want %v", got.HyperedgeNodes, hg.HyperedgeNodes)
	}
}
