package models

import "strings"

// PlotType selects how the three columns are drawn.
type PlotType int

const (
	PlotNone PlotType = iota
	PlotScatter
	PlotWireframe
	PlotSurface
)

// PlotTypes lists the selectable types in display order.
func PlotTypes() []PlotType {
	return []PlotType{PlotScatter, PlotWireframe, PlotSurface}
}

// PlotTypeNames returns the display names of PlotTypes.
func PlotTypeNames() []string {
	types := PlotTypes()
	names := make([]string, len(types))
	for i, pt := range types {
		names[i] = pt.String()
	}
	return names
}

func (p PlotType) String() string {
	switch p {
	case PlotScatter:
		return "Scatter"
	case PlotWireframe:
		return "Wireframe"
	case PlotSurface:
		return "Surface"
	default:
		return ""
	}
}

// ParsePlotType maps a display name to its PlotType. Unknown or empty
// names give PlotNone.
func ParsePlotType(name string) PlotType {
	for _, pt := range PlotTypes() {
		if strings.EqualFold(pt.String(), strings.TrimSpace(name)) {
			return pt
		}
	}
	return PlotNone
}

// Gridded reports whether the type is drawn from an interpolated grid.
func (p PlotType) Gridded() bool {
	return p == PlotWireframe || p == PlotSurface
}

// AxisSelection names the columns mapped to each axis. The same column may
// appear on more than one axis.
type AxisSelection struct {
	X string
	Y string
	Z string
}

// Missing lists the unselected axes by label.
func (s AxisSelection) Missing() []string {
	var missing []string
	if s.X == "" {
		missing = append(missing, "X")
	}
	if s.Y == "" {
		missing = append(missing, "Y")
	}
	if s.Z == "" {
		missing = append(missing, "Z")
	}
	return missing
}

// Columns returns X, Y, Z in order.
func (s AxisSelection) Columns() [3]string {
	return [3]string{s.X, s.Y, s.Z}
}

// DefaultSelection picks the first three columns, cycling when there are
// fewer than three.
func DefaultSelection(columns []string) AxisSelection {
	if len(columns) == 0 {
		return AxisSelection{}
	}
	pick := func(i int) string { return columns[i%len(columns)] }
	return AxisSelection{X: pick(0), Y: pick(1), Z: pick(2)}
}
