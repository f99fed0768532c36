package solver

import "math"

// Variant identifies a solver variant, tuned for a hyperedge-count range.
// The tags double as the track ids used in benchmark seed derivation.
type Variant string

// Solver variants, smallest track first.
const (
	Variant10k  Variant = "track_10k"
	Variant20k  Variant = "track_20k"
	Variant50k  Variant = "track_50k"
	Variant100k Variant = "track_100k"
	Variant200k Variant = "track_200k"
)

// Variants lists all variants in ascending bucket order.
var Variants = []Variant{Variant10k, Variant20k, Variant50k, Variant100k, Variant200k}

// bucket maps an inclusive upper hyperedge-count bound to a variant.
type bucket struct {
	upper   uint32
	variant Variant
}

// variantBuckets is the dispatch table, sorted by upper bound. The bounds are
// part of the adaptation contract with the external solver component and must
// not change.
var variantBuckets = []bucket{
	{15000, Variant10k},
	{30000, Variant20k},
	{75000, Variant50k},
	{150000, Variant100k},
	{math.MaxUint32, Variant200k},
}

// VariantFor selects the solver variant for a hyperedge count. Buckets are
// inclusive at the upper bound: 15000 hyperedges still dispatch to the 10k
// variant, 15001 to the 20k variant.
func VariantFor(numHyperedges uint32) Variant {
	for _, b := range variantBuckets {
		if numHyperedges <= b.upper {
			return b.variant
		}
	}
	return Variant200k // unreachable, table ends at MaxUint32
}

// Registry maps each variant to the engine that serves it. Variants without
// an entry cause Dispatch to fail with NO_ENGINE.
type Registry map[Variant]Engine

// UniformRegistry registers the same engine for every variant. Useful for
// host-side engines that handle all sizes, and for tests.
func UniformRegistry(e Engine) Registry {
	r := make(Registry, len(Variants))
	for _, v := range Variants {
		r[v] = e
	}
	return r
}
