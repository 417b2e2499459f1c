package render

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
)

// GridSamples is the number of grid samples along each horizontal axis.
const GridSamples = 30

// Grid is a regular mesh over the x/y data range. Z[i][j] is the height at
// (X[j], Y[i]).
type Grid struct {
	X []float64
	Y []float64
	Z [][]float64
}

// BuildGrid spans [min(xs), max(xs)] x [min(ys), max(ys)] with n samples per
// axis. Heights come from a piecewise-linear fit of zs against xs only, so
// every row of Z is the same profile.
func BuildGrid(xs, ys, zs []float64, n int) (*Grid, error) {
	if len(xs) != len(ys) || len(xs) != len(zs) {
		return nil, fmt.Errorf("column lengths differ: x=%d y=%d z=%d", len(xs), len(ys), len(zs))
	}
	if len(xs) == 0 {
		return nil, errors.New("no rows to plot")
	}
	if n < 2 {
		return nil, fmt.Errorf("grid needs at least 2 samples per axis, got %d", n)
	}
	if err := checkFinite(xs, ys, zs); err != nil {
		return nil, err
	}

	xlo, xhi := floats.Min(xs), floats.Max(xs)
	ylo, yhi := floats.Min(ys), floats.Max(ys)
	if math.IsInf(xhi-xlo, 0) || math.IsInf(yhi-ylo, 0) {
		return nil, errors.New("data range too large to grid")
	}

	g := &Grid{
		X: span(xlo, xhi, n),
		Y: span(ylo, yhi, n),
		Z: make([][]float64, n),
	}

	predict, err := fitX(xs, zs)
	if err != nil {
		return nil, err
	}
	profile := make([]float64, n)
	for j, x := range g.X {
		profile[j] = predict(x)
	}
	for i := range g.Z {
		g.Z[i] = append([]float64(nil), profile...)
	}
	return g, nil
}

// ZRange returns the smallest and largest grid heights.
func (g *Grid) ZRange() (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, row := range g.Z {
		lo = math.Min(lo, floats.Min(row))
		hi = math.Max(hi, floats.Max(row))
	}
	return lo, hi
}

// fitX returns z(x) by linear interpolation over points sorted by x. Equal
// x values are averaged; outside the data range the end values hold.
func fitX(xs, zs []float64) (func(float64) float64, error) {
	idx := make([]int, len(xs))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return xs[idx[a]] < xs[idx[b]] })

	var ux, uz []float64
	for start := 0; start < len(idx); {
		end := start
		sum := 0.0
		for end < len(idx) && xs[idx[end]] == xs[idx[start]] {
			sum += zs[idx[end]]
			end++
		}
		ux = append(ux, xs[idx[start]])
		uz = append(uz, sum/float64(end-start))
		start = end
	}

	if len(ux) == 1 {
		z := uz[0]
		return func(float64) float64 { return z }, nil
	}

	var pl interp.PiecewiseLinear
	if err := pl.Fit(ux, uz); err != nil {
		return nil, fmt.Errorf("interpolate z over x: %w", err)
	}
	return pl.Predict, nil
}

// span returns n evenly spaced samples whose ends are exactly lo and hi.
func span(lo, hi float64, n int) []float64 {
	s := floats.Span(make([]float64, n), lo, hi)
	s[0], s[n-1] = lo, hi
	return s
}

func checkFinite(cols ...[]float64) error {
	for _, col := range cols {
		for _, v := range col {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("non-finite value %v", v)
			}
		}
	}
	return nil
}
