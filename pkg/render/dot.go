// Package render converts hypergraphs into Graphviz drawings.
//
// A hypergraph is drawn as its bipartite incidence graph: nodes become
// ellipses, hyperedges become small square connector vertices, and each pin
// becomes an undirected edge between the two. When a partition is supplied,
// nodes are filled with a per-part color so balance and cut structure are
// visible at a glance.
package render

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/hyperbench/pkg/hypergraph"
)

// Options configures DOT generation.
type Options struct {
	// Detailed includes pin counts in hyperedge labels and part ids in node
	// labels. When false, only bare ids are shown.
	Detailed bool

	// MaxNodes caps the drawing size; hypergraphs with more nodes are
	// rejected rather than producing an unreadable diagram. Zero means
	// DefaultMaxNodes.
	MaxNodes uint32
}

// DefaultMaxNodes is the largest hypergraph ToDOT draws by default.
const DefaultMaxNodes = 2000

// partPalette cycles through Graphviz color names for partition fills.
var partPalette = []string{
	"lightblue", "lightpink", "palegreen", "khaki", "plum",
	"lightsalmon", "paleturquoise", "wheat", "thistle", "darkseagreen",
}

// ToDOT converts a hypergraph to Graphviz DOT format. partition may be nil,
// in which case all nodes are drawn unfilled. The resulting DOT string can be
// rendered with [RenderSVG].
func ToDOT(hg *hypergraph.Hypergraph, partition []uint32, opts Options) (string, error) {
	maxNodes := opts.MaxNodes
	if maxNodes == 0 {
		maxNodes = DefaultMaxNodes
	}
	if hg.NumNodes > maxNodes {
		return "", fmt.Errorf("hypergraph has %d nodes, rendering caps at %d", hg.NumNodes, maxNodes)
	}

	var buf bytes.Buffer
	buf.WriteString("graph H {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontsize=12];\n")
	buf.WriteString("\n")

	for v := uint32(0); v < hg.NumNodes; v++ {
		label := fmt.Sprintf("v%d", v+1)
		attrs := fmt.Sprintf("label=%q, shape=ellipse", label)
		if partition != nil && int(v) < len(partition) {
			part := partition[v]
			if opts.Detailed {
				attrs = fmt.Sprintf("label=%q, shape=ellipse", fmt.Sprintf("%s\np%d", label, part))
			}
			fill := partPalette[int(part)%len(partPalette)]
			attrs += fmt.Sprintf(", style=filled, fillcolor=%s", fill)
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeID(v), attrs)
	}

	buf.WriteString("\n")
	for h := uint32(0); h < hg.NumHyperedges; h++ {
		label := fmt.Sprintf("e%d", h+1)
		if opts.Detailed {
			label = fmt.Sprintf("%s (%d)", label, len(hg.Edge(h)))
		}
		fmt.Fprintf(&buf, "  %q [label=%q, shape=square, style=filled, fillcolor=lightgrey, fontcolor=black];\n",
			edgeID(h), label)
	}

	buf.WriteString("\n")
	for h := uint32(0); h < hg.NumHyperedges; h++ {
		for _, v := range hg.Edge(h) {
			fmt.Fprintf(&buf, "  %q -- %q;\n", edgeID(h), nodeID(uint32(v)))
		}
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

func nodeID(v uint32) string { return fmt.Sprintf("v%d", v) }
func edgeID(h uint32) string { return fmt.Sprintf("e%d", h) }
