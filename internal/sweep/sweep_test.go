package sweep

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rdcore/internal/core"
	"rdcore/internal/sims/grayscott"
)

func TestParseAxis(t *testing.T) {
	a, err := ParseAxis("F=0.02:0.06:5")
	require.NoError(t, err)
	assert.Equal(t, "F", a.Param)
	require.Len(t, a.Values, 5)
	assert.InDelta(t, 0.02, a.Values[0], 1e-12)
	assert.InDelta(t, 0.03, a.Values[1], 1e-12)
	assert.InDelta(t, 0.06, a.Values[4], 1e-12)

	a, err = ParseAxis("k=0.06, 0.062")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.06, 0.062}, a.Values)

	for _, bad := range []string{"F", "=1", "F=", "F=a,b", "F=0:1:0", "F=0:x:2"} {
		_, err := ParseAxis(bad)
		assert.ErrorIs(t, err, core.ErrInvalidFormat, bad)
	}
}

func TestGrid(t *testing.T) {
	sets := Grid([]Axis{
		{Param: "F", Values: []float64{1, 2}},
		{Param: "k", Values: []float64{3, 4, 5}},
	})
	require.Len(t, sets, 6)
	assert.Equal(t, []core.Parameter{{Name: "F", Value: 1}, {Name: "k", Value: 3}}, sets[0])
	assert.Equal(t, []core.Parameter{{Name: "F", Value: 2}, {Name: "k", Value: 5}}, sets[5])
	assert.Nil(t, Grid(nil))
}

func smallEngine() (core.Engine, error) {
	return grayscott.New(grayscott.Config{Width: 16, Height: 16, Seed: 1}, nil), nil
}

func TestRun(t *testing.T) {
	sets := Grid([]Axis{
		{Param: "F", Values: []float64{0.03, 0.04}},
		{Param: "k", Values: []float64{0.06}},
	})
	sets = append(sets, []core.Parameter{{Name: "nope", Value: 1}})

	results, err := Run(context.Background(), smallEngine, sets, Options{Steps: 5, Workers: 2, Chemical: 1})
	require.NoError(t, err)
	require.Len(t, results, 3)
	for i, r := range results {
		assert.Equal(t, i, r.Index)
	}
	assert.NoError(t, results[0].Err)
	assert.Greater(t, results[0].StdDev, 0.0, "the seeded square should still show")
	assert.ErrorIs(t, results[2].Err, core.ErrNotFound)

	ranked := Rank(results)
	assert.Error(t, ranked[2].Err)
	assert.GreaterOrEqual(t, ranked[0].StdDev, ranked[1].StdDev)
	assert.Equal(t, "F=0.03 k=0.06", results[0].String())
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sets := Grid([]Axis{{Param: "F", Values: []float64{0.03, 0.04, 0.05}}})
	results, err := Run(ctx, smallEngine, sets, Options{Steps: 1, Workers: 1})
	assert.ErrorIs(t, err, context.Canceled)
	assert.LessOrEqual(t, len(results), len(sets))
}

func TestMeanStdDev(t *testing.T) {
	m, s := meanStdDev([]float64{1, 1, 3, 3})
	assert.Equal(t, 2.0, m)
	assert.Equal(t, 1.0, s)
	m, s = meanStdDev(nil)
	assert.Zero(t, m)
	assert.Zero(t, s)
}
