package render

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Camera is an orthographic view set by azimuth and elevation in degrees.
// Azimuth -90 looks along +y with x to the right.
type Camera struct {
	Azimuth   float64
	Elevation float64
}

// DefaultCamera matches the usual 3D axes view.
func DefaultCamera() Camera {
	return Camera{Azimuth: -60, Elevation: 30}
}

// projector maps normalised scene points to view space: X right, Z up,
// Y away from the viewer.
type projector struct {
	spin r3.Rotation
	tilt r3.Rotation
}

func (c Camera) projector() projector {
	return projector{
		spin: r3.NewRotation(-(c.Azimuth+90)*math.Pi/180, r3.Vec{Z: 1}),
		tilt: r3.NewRotation(c.Elevation*math.Pi/180, r3.Vec{X: 1}),
	}
}

func (p projector) project(v r3.Vec) r3.Vec {
	return p.tilt.Rotate(p.spin.Rotate(v))
}

// Bounds is the data box that gets normalised to [-1, 1] on each axis.
type Bounds struct {
	Min r3.Vec
	Max r3.Vec
}

func boundsOf(points []r3.Vec) Bounds {
	b := Bounds{
		Min: r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)},
		Max: r3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)},
	}
	for _, p := range points {
		b.Min.X, b.Max.X = math.Min(b.Min.X, p.X), math.Max(b.Max.X, p.X)
		b.Min.Y, b.Max.Y = math.Min(b.Min.Y, p.Y), math.Max(b.Max.Y, p.Y)
		b.Min.Z, b.Max.Z = math.Min(b.Min.Z, p.Z), math.Max(b.Max.Z, p.Z)
	}
	return b
}

func (b Bounds) normalise(p r3.Vec) r3.Vec {
	return r3.Vec{
		X: unit(p.X, b.Min.X, b.Max.X),
		Y: unit(p.Y, b.Min.Y, b.Max.Y),
		Z: unit(p.Z, b.Min.Z, b.Max.Z),
	}
}

// unit maps [lo, hi] to [-1, 1]. A flat range maps to 0.
func unit(v, lo, hi float64) float64 {
	if hi <= lo {
		return 0
	}
	return 2*(v-lo)/(hi-lo) - 1
}
