package alphapers

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestComputeBatch(t *testing.T) {
	defer goleak.VerifyNone(t)

	clouds := [][]Atom{
		randomAtoms(8, 0.5, 1.5, 1),
		{{X: 0}, {X: 2}},
		randomAtoms(10, 0, 1, 2),
		nil,
	}
	cfg := DefaultConfig()
	cfg.Workers = 2

	results, err := ComputeBatch(context.Background(), clouds, cfg)
	require.NoError(t, err)
	require.Len(t, results, len(clouds))

	for i, atoms := range clouds {
		want, err := Compute(atoms, DefaultConfig())
		require.NoError(t, err)
		assert.Equal(t, want.Pairs, results[i].Pairs, "cloud %d", i)
		assert.Equal(t, want.Diagrams, results[i].Diagrams, "cloud %d", i)
	}
}

func TestComputeBatchError(t *testing.T) {
	defer goleak.VerifyNone(t)

	clouds := [][]Atom{
		{{X: 0}, {X: 1}},
		{{X: math.NaN()}},
		{{X: 0}, {X: 3}},
	}
	results, err := ComputeBatch(context.Background(), clouds, DefaultConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cloud 1")
	assert.Nil(t, results)
}

func TestComputeBatchCanceled(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := ComputeBatch(ctx, [][]Atom{{{X: 0}, {X: 1}}}, DefaultConfig())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, results)
}

func TestComputeBatchCanceledInFlight(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Cancel as soon as a cloud starts triangulating, after ComputeBatch
	// has already handed it to a worker.
	core, logs := observer.New(zap.DebugLevel)
	cfg := DefaultConfig()
	cfg.Workers = 4
	cfg.Logger = zap.New(core, zap.Hooks(func(e zapcore.Entry) error {
		if e.Message == "triangulating" {
			cancel()
		}
		return nil
	}))

	clouds := [][]Atom{randomAtoms(200, 0.5, 1.5, 1), randomAtoms(200, 0.5, 1.5, 2)}
	results, err := ComputeBatch(ctx, clouds, cfg)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, results)
	assert.Positive(t, logs.FilterMessage("triangulating").Len())
	assert.Zero(t, logs.FilterMessage("regular triangulation").Len())
}

func TestComputeContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := ComputeContext(ctx, randomAtoms(10, 0.5, 1.5, 4), DefaultConfig())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, res)
}

func TestShareWorkers(t *testing.T) {
	tests := []struct {
		workers, clouds, want int
	}{
		{8, 1, 8},
		{8, 2, 4},
		{8, 3, 2},
		{8, 8, 1},
		{8, 20, 1},
		{1, 1, 1},
		{4, 0, 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, shareWorkers(tt.workers, tt.clouds), "workers=%d clouds=%d", tt.workers, tt.clouds)
	}
}

func TestComputeBatchSingleCloudUsesWorkers(t *testing.T) {
	atoms := randomAtoms(40, 0.5, 1.5, 6)
	cfg := DefaultConfig()
	cfg.Workers = 4

	results, err := ComputeBatch(context.Background(), [][]Atom{atoms}, cfg)
	require.NoError(t, err)

	cfg.Workers = 1
	want, err := Compute(atoms, cfg)
	require.NoError(t, err)
	assert.Equal(t, want.Filtration, results[0].Filtration)
	assert.Equal(t, want.Pairs, results[0].Pairs)
}

func TestComputeBatchInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workers = -2
	_, err := ComputeBatch(context.Background(), [][]Atom{{{X: 0}}}, cfg)
	assert.Error(t, err)
}

func TestComputeBatchEmpty(t *testing.T) {
	results, err := ComputeBatch(context.Background(), nil, DefaultConfig())
	require.NoError(t, err)
	assert.Empty(t, results)
}
