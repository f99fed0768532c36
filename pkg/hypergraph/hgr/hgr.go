// Package hgr reads and writes the plain-text hyperedge-list format (.hgr)
// and the companion partition-assignment format.
//
// # Hyperedge-list format
//
//	<num_hyperedges> <num_nodes>
//	<node> <node> ... <node>     (one line per hyperedge, 1-based ids)
//	...
//
// Node ids are 1-based on disk and converted to 0-based in memory. Blank
// lines between hyperedge lines are skipped and do not count as hyperedges.
// The declared hyperedge count is checked strictly after the whole file has
// been consumed - short and long files both fail at that late check.
//
// # Partition format
//
// One non-negative integer per line, node order implicit by line number,
// 0-based part ids, no header.
//
// All parse failures carry the errors.ErrCodeInvalidFormat code.
package hgr

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/hyperbench/pkg/errors"
	"github.com/matzehuels/hyperbench/pkg/hypergraph"
)

// Read parses the .hgr file at path into a Hypergraph.
func Read(path string) (*hypergraph.Hypergraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a hyperedge-list stream into a Hypergraph.
func Parse(r io.Reader) (*hypergraph.Hypergraph, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	header, ok := nextLine(scanner)
	if !ok {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
		return nil, errors.New(errors.ErrCodeInvalidFormat, "empty .hgr file")
	}

	fields := strings.Fields(header)
	if len(fields) < 2 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid .hgr header: %q", header)
	}

	numHyperedges, err := parseUint32(fields[0])
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "hyperedge count")
	}
	numNodes, err := parseUint32(fields[1])
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "node count")
	}

	offsets := make([]int32, 1, numHyperedges+1)
	var nodes []int32

	for {
		line, ok := nextLine(scanner)
		if !ok {
			break
		}
		for _, field := range strings.Fields(line) {
			node, err := strconv.ParseInt(field, 10, 32)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "node id %q", field)
			}
			nodes = append(nodes, int32(node)-1) // 1-based on disk
		}
		offsets = append(offsets, int32(len(nodes)))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read hyperedges: %w", err)
	}

	if got := uint32(len(offsets) - 1); got != numHyperedges {
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"expected %d hyperedges, found %d", numHyperedges, got)
	}

	return hypergraph.Build(numNodes, numHyperedges, offsets, nodes), nil
}

// Write serializes hg to the .hgr file at path, creating or truncating it.
func Write(path string, hg *hypergraph.Hypergraph) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Serialize(f, hg)
}

// Serialize writes hg in hyperedge-list format: header first, then one line
// per hyperedge in ascending hyperedge-id order with 1-based node ids.
func Serialize(w io.Writer, hg *hypergraph.Hypergraph) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%d %d\n", hg.NumHyperedges, hg.NumNodes)

	var sb strings.Builder
	for h := uint32(0); h < hg.NumHyperedges; h++ {
		sb.Reset()
		for i, node := range hg.Edge(h) {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.FormatInt(int64(node)+1, 10))
		}
		sb.WriteByte('\n')
		if _, err := bw.WriteString(sb.String()); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// ReadPartition parses the partition file at path: one part id per line,
// blank lines skipped.
func ReadPartition(path string) ([]uint32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ParsePartition(f)
}

// ParsePartition decodes a partition-assignment stream.
func ParsePartition(r io.Reader) ([]uint32, error) {
	scanner := bufio.NewScanner(r)

	var partition []uint32
	for {
		line, ok := nextLine(scanner)
		if !ok {
			break
		}
		part, err := parseUint32(line)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "part id %q", line)
		}
		partition = append(partition, part)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read partition: %w", err)
	}

	return partition, nil
}

// WritePartition writes one part id per line to path, in node-id order.
func WritePartition(path string, partition []uint32) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	for _, part := range partition {
		fmt.Fprintf(bw, "%d\n", part)
	}
	return bw.Flush()
}

// WriteTiming writes an elapsed-seconds side file next to a partition, in the
// "%.3f" format the comparison tooling expects.
func WriteTiming(path string, elapsedSecs float64) error {
	return os.WriteFile(path, []byte(fmt.Sprintf("%.3f\n", elapsedSecs)), 0644)
}

// ReadTiming reads an elapsed-seconds side file written by WriteTiming.
func ReadTiming(path string) (float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	line := strings.TrimSpace(strings.SplitN(string(data), "\n", 2)[0])
	secs, err := strconv.ParseFloat(line, 64)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidFormat, err, "timing value %q", line)
	}
	return secs, nil
}

// nextLine returns the next non-blank, trimmed line.
func nextLine(scanner *bufio.Scanner) (string, bool) {
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			return line, true
		}
	}
	return "", false
}

func parseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}
