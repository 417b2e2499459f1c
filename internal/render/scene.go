package render

import (
	"image/color"
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	markerColor = color.RGBA{B: 255, A: 255}
	meshColor   = color.RGBA{B: 255, A: 255}
	boxColor    = color.Gray{Y: 170}
)

// viewport turns data points into canvas points for one draw call.
type viewport struct {
	bounds Bounds
	proj   projector
	center vg.Point
	scale  vg.Length
}

func newViewport(c draw.Canvas, bounds Bounds, cam Camera) viewport {
	w := c.Max.X - c.Min.X
	h := c.Max.Y - c.Min.Y
	side := w
	if h < side {
		side = h
	}
	return viewport{
		bounds: bounds,
		proj:   cam.projector(),
		center: vg.Point{X: c.Min.X + w/2, Y: c.Min.Y + h/2},
		// Half the cube diagonal is sqrt(3); leave room for labels.
		scale: side / vg.Length(2*math.Sqrt(3)) * 0.9,
	}
}

// point returns the canvas position and view depth of a data point.
// Larger depth is further from the viewer.
func (v viewport) point(p r3.Vec) (vg.Point, float64) {
	return v.unitPoint(v.bounds.normalise(p))
}

func (v viewport) unitPoint(n r3.Vec) (vg.Point, float64) {
	q := v.proj.project(n)
	return vg.Point{
		X: v.center.X + vg.Length(q.X)*v.scale,
		Y: v.center.Y + vg.Length(q.Z)*v.scale,
	}, q.Y
}

// axesBox draws the bounding cube with axis names and min/max values.
type axesBox struct {
	bounds Bounds
	camera Camera
	labels [3]string
}

func (a *axesBox) Plot(c draw.Canvas, p *plot.Plot) {
	vp := newViewport(c, a.bounds, a.camera)

	edge := draw.LineStyle{Color: boxColor, Width: vg.Points(0.5)}
	corners := [8]r3.Vec{}
	for i := range corners {
		corners[i] = r3.Vec{X: sign(i&1 != 0), Y: sign(i&2 != 0), Z: sign(i&4 != 0)}
	}
	for i := range corners {
		for _, bit := range []int{1, 2, 4} {
			j := i | bit
			if j == i {
				continue
			}
			from, _ := vp.unitPoint(corners[i])
			to, _ := vp.unitPoint(corners[j])
			c.StrokeLine2(edge, from.X, from.Y, to.X, to.Y)
		}
	}

	name := p.X.Label.TextStyle
	name.XAlign = draw.XCenter
	name.YAlign = draw.YCenter
	tick := p.X.Tick.Label
	tick.XAlign = draw.XCenter
	tick.YAlign = draw.YCenter

	type axisEdge struct {
		from, to r3.Vec
		lo, hi   float64
	}
	edges := [3]axisEdge{
		{r3.Vec{X: -1, Y: -1, Z: -1}, r3.Vec{X: 1, Y: -1, Z: -1}, a.bounds.Min.X, a.bounds.Max.X},
		{r3.Vec{X: 1, Y: -1, Z: -1}, r3.Vec{X: 1, Y: 1, Z: -1}, a.bounds.Min.Y, a.bounds.Max.Y},
		{r3.Vec{X: -1, Y: -1, Z: -1}, r3.Vec{X: -1, Y: -1, Z: 1}, a.bounds.Min.Z, a.bounds.Max.Z},
	}
	for i, e := range edges {
		from, _ := vp.unitPoint(e.from)
		to, _ := vp.unitPoint(e.to)
		mid := vg.Point{X: (from.X + to.X) / 2, Y: (from.Y + to.Y) / 2}

		c.FillText(tick, vp.outward(from, 10), formatTick(e.lo))
		c.FillText(tick, vp.outward(to, 10), formatTick(e.hi))
		if a.labels[i] != "" {
			c.FillText(name, vp.outward(mid, 24), a.labels[i])
		}
	}
}

// outward moves pt away from the viewport centre by d points.
func (v viewport) outward(pt vg.Point, d float64) vg.Point {
	dx := float64(pt.X - v.center.X)
	dy := float64(pt.Y - v.center.Y)
	n := math.Hypot(dx, dy)
	if n == 0 {
		return pt
	}
	off := vg.Points(d)
	return vg.Point{
		X: pt.X + vg.Length(dx/n)*off,
		Y: pt.Y + vg.Length(dy/n)*off,
	}
}

// scatterMarks draws one glyph per data point, far points first.
type scatterMarks struct {
	bounds Bounds
	camera Camera
	points []r3.Vec
}

func (s *scatterMarks) Plot(c draw.Canvas, _ *plot.Plot) {
	vp := newViewport(c, s.bounds, s.camera)

	type mark struct {
		pt    vg.Point
		depth float64
	}
	marks := make([]mark, len(s.points))
	for i, p := range s.points {
		pt, depth := vp.point(p)
		marks[i] = mark{pt, depth}
	}
	sort.SliceStable(marks, func(i, j int) bool { return marks[i].depth > marks[j].depth })

	glyph := draw.GlyphStyle{Color: markerColor, Radius: vg.Points(3), Shape: draw.CircleGlyph{}}
	for _, m := range marks {
		c.DrawGlyph(glyph, m.pt)
	}
}

// wireMesh strokes every grid row and column.
type wireMesh struct {
	bounds Bounds
	camera Camera
	grid   *Grid
}

func (w *wireMesh) Plot(c draw.Canvas, _ *plot.Plot) {
	vp := newViewport(c, w.bounds, w.camera)
	g := w.grid
	style := draw.LineStyle{Color: meshColor, Width: vg.Points(0.8)}

	for i, y := range g.Y {
		line := make([]vg.Point, len(g.X))
		for j, x := range g.X {
			line[j], _ = vp.point(r3.Vec{X: x, Y: y, Z: g.Z[i][j]})
		}
		c.StrokeLines(style, line)
	}
	for j, x := range g.X {
		line := make([]vg.Point, len(g.Y))
		for i, y := range g.Y {
			line[i], _ = vp.point(r3.Vec{X: x, Y: y, Z: g.Z[i][j]})
		}
		c.StrokeLines(style, line)
	}
}

// filledSurface paints grid cells back to front, coloured by mean height.
type filledSurface struct {
	bounds Bounds
	camera Camera
	grid   *Grid
	cmap   palette.ColorMap
}

func newFilledSurface(bounds Bounds, cam Camera, g *Grid) *filledSurface {
	cmap := moreland.Kindlmann()
	lo, hi := g.ZRange()
	if hi <= lo {
		hi = lo + 1
	}
	cmap.SetMin(lo)
	cmap.SetMax(hi)
	return &filledSurface{bounds: bounds, camera: cam, grid: g, cmap: cmap}
}

func (s *filledSurface) Plot(c draw.Canvas, _ *plot.Plot) {
	vp := newViewport(c, s.bounds, s.camera)
	g := s.grid

	type cell struct {
		poly  []vg.Point
		depth float64
		z     float64
	}
	cells := make([]cell, 0, (len(g.Y)-1)*(len(g.X)-1))
	for i := 0; i+1 < len(g.Y); i++ {
		for j := 0; j+1 < len(g.X); j++ {
			corners := [4][2]int{{i, j}, {i, j + 1}, {i + 1, j + 1}, {i + 1, j}}
			poly := make([]vg.Point, 4)
			var depth, z float64
			for k, ij := range corners {
				h := g.Z[ij[0]][ij[1]]
				pt, d := vp.point(r3.Vec{X: g.X[ij[1]], Y: g.Y[ij[0]], Z: h})
				poly[k] = pt
				depth += d / 4
				z += h / 4
			}
			cells = append(cells, cell{poly, depth, z})
		}
	}
	sort.SliceStable(cells, func(a, b int) bool { return cells[a].depth > cells[b].depth })

	for _, cl := range cells {
		c.FillPolygon(s.colorAt(cl.z), cl.poly)
	}
}

func (s *filledSurface) colorAt(z float64) color.Color {
	z = math.Max(s.cmap.Min(), math.Min(s.cmap.Max(), z))
	col, err := s.cmap.At(z)
	if err != nil {
		return meshColor
	}
	return col
}

func sign(positive bool) float64 {
	if positive {
		return 1
	}
	return -1
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}
