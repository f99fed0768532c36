package solver

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hberrors "github.com/matzehuels/hyperbench/pkg/errors"
	"github.com/matzehuels/hyperbench/pkg/hypergraph"
)

func TestVariantFor(t *testing.T) {
	tests := []struct {
		numHyperedges uint32
		want          Variant
	}{
		{0, Variant10k},
		{10000, Variant10k},
		{15000, Variant10k},
		{15001, Variant20k},
		{30000, Variant20k},
		{30001, Variant50k},
		{75000, Variant50k},
		{75001, Variant100k},
		{150000, Variant100k},
		{150001, Variant200k},
		{2000000, Variant200k},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, VariantFor(tt.numHyperedges), "numHyperedges=%d", tt.numHyperedges)
	}
}

// fakeEngine records the input it receives and drives the sink as configured.
type fakeEngine struct {
	gotInput *Input
	accepts  [][]uint32
	err      error
}

func (f *fakeEngine) Solve(ctx context.Context, in *Input, sink ResultSink) error {
	f.gotInput = in
	for _, p := range f.accepts {
		if err := sink.Accept(p); err != nil {
			return err
		}
	}
	return f.err
}

func testHypergraph(t *testing.T) *hypergraph.Hypergraph {
	t.Helper()
	// edge0={0,1,2}, edge1={1,3}, edge2={2,3}
	return hypergraph.Build(4, 3, []int32{0, 3, 5, 7}, []int32{0, 1, 2, 1, 3, 2, 3})
}

func TestDispatch(t *testing.T) {
	hg := testHypergraph(t)
	engine := &fakeEngine{accepts: [][]uint32{{0, 0, 1, 1}}}

	got, err := Dispatch(context.Background(), hg, Options{NumParts: 2, MaxPartSize: 2, Effort: 2},
		UniformRegistry(engine))
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 0, 1, 1}, got)

	// The input record must carry the CSR arrays plus derived size/degree arrays.
	in := engine.gotInput
	require.NotNil(t, in)
	assert.Equal(t, uint32(4), in.NumNodes)
	assert.Equal(t, uint32(3), in.NumHyperedges)
	assert.Equal(t, uint32(7), in.TotalPins)
	assert.Equal(t, []int32{3, 2, 2}, in.HyperedgeSizes)
	assert.Equal(t, []int32{1, 2, 2, 2}, in.NodeDegrees)
	assert.Equal(t, hg.HyperedgeOffsets, in.HyperedgeOffsets)
	assert.Equal(t, hg.NodeOffsets, in.NodeOffsets)
	assert.Equal(t, uint32(2), in.NumParts)
	assert.Equal(t, uint32(2), in.MaxPartSize)
}

func TestDispatchCapturesLastResult(t *testing.T) {
	hg := testHypergraph(t)
	engine := &fakeEngine{accepts: [][]uint32{{0, 0, 0, 0}, {0, 1, 0, 1}}}

	got, err := Dispatch(context.Background(), hg, Options{NumParts: 2, MaxPartSize: 4},
		UniformRegistry(engine))
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1, 0, 1}, got, "last callback wins")
}

func TestDispatchEngineFailure(t *testing.T) {
	hg := testHypergraph(t)
	engine := &fakeEngine{err: errors.New("device lost")}

	_, err := Dispatch(context.Background(), hg, Options{NumParts: 2, MaxPartSize: 4},
		UniformRegistry(engine))
	require.Error(t, err)
	assert.True(t, hberrors.Is(err, hberrors.ErrCodeSolverFailed))
	assert.ErrorContains(t, err, "device lost")
}

func TestDispatchNoResult(t *testing.T) {
	hg := testHypergraph(t)
	engine := &fakeEngine{} // succeeds without calling the sink

	_, err := Dispatch(context.Background(), hg, Options{NumParts: 2, MaxPartSize: 4},
		UniformRegistry(engine))
	assert.True(t, hberrors.Is(err, hberrors.ErrCodeNoSolution))
}

func TestDispatchNoEngine(t *testing.T) {
	hg := testHypergraph(t)

	_, err := Dispatch(context.Background(), hg, Options{NumParts: 2, MaxPartSize: 4}, Registry{})
	assert.True(t, hberrors.Is(err, hberrors.ErrCodeNoEngine))
}

func TestDispatchValidatesOptions(t *testing.T) {
	hg := testHypergraph(t)
	engine := &fakeEngine{accepts: [][]uint32{{0, 0, 1, 1}}}

	_, err := Dispatch(context.Background(), hg, Options{NumParts: 1, MaxPartSize: 4},
		UniformRegistry(engine))
	assert.True(t, hberrors.Is(err, hberrors.ErrCodeInvalidParams))
	assert.Nil(t, engine.gotInput, "engine must not be invoked with invalid options")
}

func TestCaptureCopies(t *testing.T) {
	c := &capture{}
	src := []uint32{1, 2, 3}
	require.NoError(t, c.Accept(src))

	src[0] = 99
	assert.Equal(t, []uint32{1, 2, 3}, c.partition, "sink must copy, not alias")
	assert.True(t, c.written)
}
