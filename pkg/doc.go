// Package pkg provides the core libraries for hyperbench hypergraph
// partitioning benchmarks.
//
// # Overview
//
// Hyperbench generates hypergraph partitioning instances, solves them into
// k-way partitions, and scores the results. The pkg directory is organized
// into five main areas:
//
//  1. [hypergraph] - The dual-CSR hypergraph store and the .hgr codec
//  2. [quality] - Connectivity (KM1) and balance feasibility scoring
//  3. [solver] - Engine dispatch by track and the greedy baseline engine
//  4. [bench] - Deterministic seeds, instance generation, suite statistics
//  5. [pipeline] - Orchestration (load → solve → score) with caching
//
// # Architecture
//
// The typical data flow through hyperbench:
//
//	.hgr file or (track, nonce) seed
//	         ↓
//	hypergraph.Hypergraph (dual CSR)
//	         ↓
//	solver.Dispatch (variant by hyperedge count)
//	         ↓
//	partition []uint32
//	         ↓
//	quality.Connectivity + quality.CheckFeasibility
//
// The pipeline package drives these stages behind a single Runner so the CLI
// commands share caching, logging, and validation behavior.
package pkg
