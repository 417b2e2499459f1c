package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"triaxis/internal/models"
)

// Size is an output size in pixels at a resolution.
type Size struct {
	Width  int
	Height int
	DPI    int
}

func (s Size) lengths() (vg.Length, vg.Length) {
	dpi := s.DPI
	if dpi <= 0 {
		dpi = vgimg.DefaultDPI
	}
	inch := vg.Inch / vg.Length(dpi)
	return vg.Length(s.Width) * inch, vg.Length(s.Height) * inch
}

func (s Size) valid() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("invalid figure size %dx%d", s.Width, s.Height)
	}
	return nil
}

// Labels are the axis captions, normally the selected column names.
type Labels struct {
	X, Y, Z string
}

func (l Labels) array() [3]string {
	return [3]string{l.X, l.Y, l.Z}
}

// Figure is the drawing target. Each Scatter, Wireframe or Surface call
// replaces what was drawn before.
type Figure struct {
	camera Camera
	plot   *plot.Plot
	kind   models.PlotType
	points []r3.Vec
	grid   *Grid
	labels Labels
}

// NewFigure returns an empty figure viewed through cam.
func NewFigure(cam Camera) *Figure {
	f := &Figure{camera: cam}
	f.Clear()
	return f
}

// Clear drops all drawn content.
func (f *Figure) Clear() {
	p := plot.New()
	p.HideAxes()
	p.BackgroundColor = color.White
	f.plot = p
	f.kind = models.PlotNone
	f.points = nil
	f.grid = nil
	f.labels = Labels{}
}

// Empty reports whether nothing has been drawn since the last Clear.
func (f *Figure) Empty() bool {
	return f.kind == models.PlotNone
}

// Kind returns the plot type currently drawn.
func (f *Figure) Kind() models.PlotType {
	return f.kind
}

// Labels returns the current axis captions.
func (f *Figure) Labels() Labels {
	return f.labels
}

// Points returns the plotted scatter points.
func (f *Figure) Points() []r3.Vec {
	return append([]r3.Vec(nil), f.points...)
}

// Grid returns the mesh behind a wireframe or surface plot, or nil.
func (f *Figure) Grid() *Grid {
	return f.grid
}

// Scatter draws one marker per (x, y, z) triple.
func (f *Figure) Scatter(points []r3.Vec, labels Labels) error {
	f.Clear()
	if len(points) == 0 {
		return errors.New("no rows to plot")
	}
	for _, p := range points {
		if err := checkFinite([]float64{p.X, p.Y, p.Z}); err != nil {
			return err
		}
	}
	bounds := boundsOf(points)

	f.plot.Add(
		&axesBox{bounds: bounds, camera: f.camera, labels: labels.array()},
		&scatterMarks{bounds: bounds, camera: f.camera, points: points},
	)
	f.kind = models.PlotScatter
	f.points = append([]r3.Vec(nil), points...)
	f.labels = labels
	return nil
}

// Wireframe draws g as a line mesh.
func (f *Figure) Wireframe(g *Grid, labels Labels) error {
	f.Clear()
	bounds, err := gridBounds(g)
	if err != nil {
		return err
	}
	f.plot.Add(
		&axesBox{bounds: bounds, camera: f.camera, labels: labels.array()},
		&wireMesh{bounds: bounds, camera: f.camera, grid: g},
	)
	f.kind = models.PlotWireframe
	f.grid = g
	f.labels = labels
	return nil
}

// Surface draws g as filled, colour-mapped cells.
func (f *Figure) Surface(g *Grid, labels Labels) error {
	f.Clear()
	bounds, err := gridBounds(g)
	if err != nil {
		return err
	}
	f.plot.Add(
		&axesBox{bounds: bounds, camera: f.camera, labels: labels.array()},
		newFilledSurface(bounds, f.camera, g),
	)
	f.kind = models.PlotSurface
	f.grid = g
	f.labels = labels
	return nil
}

// Image rasterises the figure.
func (f *Figure) Image(size Size) (image.Image, error) {
	c, err := f.raster(size)
	if err != nil {
		return nil, err
	}
	return c.Image(), nil
}

// WriteTo encodes the figure in format: png, jpg, jpeg, tif, tiff, svg,
// pdf or eps.
func (f *Figure) WriteTo(w io.Writer, size Size, format string) error {
	format = strings.ToLower(strings.TrimPrefix(format, "."))

	var wt io.WriterTo
	switch format {
	case "png", "jpg", "jpeg", "tif", "tiff":
		c, err := f.raster(size)
		if err != nil {
			return err
		}
		switch format {
		case "png":
			wt = vgimg.PngCanvas{Canvas: c}
		case "jpg", "jpeg":
			wt = vgimg.JpegCanvas{Canvas: c}
		default:
			wt = vgimg.TiffCanvas{Canvas: c}
		}
	case "svg", "pdf", "eps":
		if err := size.valid(); err != nil {
			return err
		}
		width, height := size.lengths()
		var err error
		wt, err = f.plot.WriterTo(width, height, format)
		if err != nil {
			return err
		}
	default:
		return &models.UnsupportedFormatError{Ext: "." + format}
	}

	_, err := wt.WriteTo(w)
	return err
}

func (f *Figure) raster(size Size) (*vgimg.Canvas, error) {
	if err := size.valid(); err != nil {
		return nil, err
	}
	width, height := size.lengths()
	dpi := size.DPI
	if dpi <= 0 {
		dpi = vgimg.DefaultDPI
	}
	c := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(dpi))
	f.plot.Draw(draw.New(c))
	return c, nil
}

func gridBounds(g *Grid) (Bounds, error) {
	if g == nil || len(g.X) < 2 || len(g.Y) < 2 || len(g.Z) != len(g.Y) {
		return Bounds{}, errors.New("grid is incomplete")
	}
	for _, row := range g.Z {
		if len(row) != len(g.X) {
			return Bounds{}, errors.New("grid is incomplete")
		}
	}
	lo, hi := g.ZRange()
	return Bounds{
		Min: r3.Vec{X: g.X[0], Y: g.Y[0], Z: lo},
		Max: r3.Vec{X: g.X[len(g.X)-1], Y: g.Y[len(g.Y)-1], Z: hi},
	}, nil
}
