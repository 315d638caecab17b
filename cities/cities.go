// Package cities produces tour-search instances: random planar coordinates
// and the Euclidean distance matrix between them.
//
// Generation is seeded and deterministic (seed 0 maps to tsp.DefaultSeed),
// so an instance can be rebuilt from (count, seed, width, height) alone.
package cities

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/gatsp/matrix"
	"github.com/katalvlaran/gatsp/tsp"
)

// Default generation area.
const (
	DefaultWidth  = 100.0
	DefaultHeight = 100.0
)

var (
	// ErrTooFewCities is returned when fewer than one city is requested.
	ErrTooFewCities = errors.New("cities: count must be ≥ 1")

	// ErrInvalidArea is returned when width or height is not a positive finite number.
	ErrInvalidArea = errors.New("cities: area must be positive and finite")
)

// Point is a city location in the plane.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Generate draws count points uniformly from [0,width) × [0,height).
// Points are drawn in index order, X before Y.
//
// Complexity: O(count).
func Generate(count int, seed int64, width, height float64) ([]Point, error) {
	if count < 1 {
		return nil, fmt.Errorf("Generate(%d): %w", count, ErrTooFewCities)
	}
	if !(width > 0) || !(height > 0) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return nil, fmt.Errorf("Generate(%gx%g): %w", width, height, ErrInvalidArea)
	}

	var (
		rng = tsp.NewRand(seed)
		pts = make([]Point, count)
	)
	for i := range pts {
		pts[i].X = rng.Float64() * width
		pts[i].Y = rng.Float64() * height
	}

	return pts, nil
}

// DistanceMatrix returns the symmetric Euclidean distance matrix of pts with
// a zero diagonal.
//
// Complexity: O(n²).
func DistanceMatrix(pts []Point) (*matrix.Dense, error) {
	if len(pts) < 1 {
		return nil, fmt.Errorf("DistanceMatrix: %w", ErrTooFewCities)
	}

	var n = len(pts)
	m, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, err
	}

	var (
		i, j int
		d    float64
	)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ { // upper triangle, mirrored
			d = pts[i].Distance(pts[j])
			if err = m.Set(i, j, d); err != nil {
				return nil, err
			}
			if err = m.Set(j, i, d); err != nil {
				return nil, err
			}
		}
	}

	return m, nil
}
