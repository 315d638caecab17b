package tsp_test

import (
	"testing"

	"github.com/katalvlaran/gatsp/matrix"
	"github.com/katalvlaran/gatsp/tsp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// triangle is the 3-city instance d(0,1)=1, d(1,2)=2, d(0,2)=3.
func triangle(t *testing.T) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFromRows([][]float64{
		{0, 1, 3},
		{1, 0, 2},
		{3, 2, 0},
	})
	require.NoError(t, err)

	return m
}

func TestTourCost_ClosesTheCycle(t *testing.T) {
	t.Parallel()

	got, err := tsp.TourCost(triangle(t), tsp.Tour{0, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, 6.0, got) // 1 + 2 + closing 3
}

func TestTourCost_Errors(t *testing.T) {
	t.Parallel()

	_, err := tsp.TourCost(nil, tsp.Tour{0})
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	_, err = tsp.TourCost(triangle(t), tsp.Tour{0, 1})
	require.ErrorIs(t, err, tsp.ErrDimensionMismatch)

	_, err = tsp.TourCost(triangle(t), tsp.Tour{0, 1, 1})
	require.ErrorIs(t, err, tsp.ErrNotPermutation)
}

func TestCostTable_MatchesTourCost(t *testing.T) {
	t.Parallel()

	// Asymmetric on purpose: direction matters for the closing edge.
	m, err := matrix.NewDenseFromRows([][]float64{
		{0, 2, 9, 10},
		{1, 0, 6, 4},
		{15, 7, 0, 8},
		{6, 3, 12, 0},
	})
	require.NoError(t, err)

	table, err := tsp.NewCostTable(m)
	require.NoError(t, err)
	require.Equal(t, 4, table.N())
	assert.Equal(t, 8.0, table.At(2, 3))
	assert.Equal(t, 12.0, table.At(3, 2))

	for _, tour := range []tsp.Tour{{0, 1, 2, 3}, {3, 2, 1, 0}, {1, 3, 0, 2}} {
		want, err := tsp.TourCost(m, tour)
		require.NoError(t, err)
		assert.Equal(t, want, table.Cost(tour), "tour=%v", tour)
	}

	// The table is a snapshot.
	require.NoError(t, m.Set(0, 1, 100))
	assert.Equal(t, 2.0, table.At(0, 1))
}

func TestCostTable_SingleCity(t *testing.T) {
	t.Parallel()

	m, err := matrix.NewDenseFromRows([][]float64{{0}})
	require.NoError(t, err)
	table, err := tsp.NewCostTable(m)
	require.NoError(t, err)
	assert.Equal(t, 0.0, table.Cost(tsp.Tour{0}))
	assert.Equal(t, 0.0, table.Cost(tsp.Tour{}))
}

func TestNewCostTable_RejectsBadMatrix(t *testing.T) {
	t.Parallel()

	m, err := matrix.NewDenseFromRows([][]float64{{0, -1}, {1, 0}})
	require.NoError(t, err)
	_, err = tsp.NewCostTable(m)
	require.ErrorIs(t, err, matrix.ErrNegativeValue)
}
