package genetic_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gatsp/matrix"
	"github.com/katalvlaran/gatsp/tsp"
)

// scriptedSource replays fixed Int63 values, then zeros. It lets a test force
// specific draws out of math/rand:
//   - Float64() == float64(v)/2^63, so v=0 gives 0.0;
//   - Intn(k) for a power of two k returns (v>>32) & (k-1);
//   - Intn(k) otherwise returns (v>>32) % k for small v.
type scriptedSource struct {
	vals []int64
	pos  int
}

func (s *scriptedSource) Int63() int64 {
	if s.pos >= len(s.vals) {
		return 0
	}
	v := s.vals[s.pos]
	s.pos++
	return v
}

func (s *scriptedSource) Seed(int64) {}

// intDraw encodes a small Intn result as a raw Int63 value.
func intDraw(v int64) int64 { return v << 32 }

// circle returns the Euclidean distance matrix of n points evenly spaced on a
// circle of radius r. The optimal tour is the perimeter order, of length
// 2·n·r·sin(π/n).
func circle(t *testing.T, n int, r float64) *matrix.Dense {
	t.Helper()
	rows := make([][]float64, n)
	for i := 0; i < n; i++ {
		rows[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			ai := 2 * math.Pi * float64(i) / float64(n)
			aj := 2 * math.Pi * float64(j) / float64(n)
			rows[i][j] = math.Hypot(r*math.Cos(ai)-r*math.Cos(aj), r*math.Sin(ai)-r*math.Sin(aj))
		}
	}
	m, err := matrix.NewDenseFromRows(rows)
	require.NoError(t, err)

	return m
}

// triangle is d(0,1)=1, d(1,2)=2, d(0,2)=3.
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

// clonePopulation deep-copies an observer's view.
func clonePopulation(pop []tsp.Tour) []tsp.Tour {
	out := make([]tsp.Tour, len(pop))
	for i, t := range pop {
		out[i] = t.Clone()
	}

	return out
}
