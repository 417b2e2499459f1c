package services

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"triaxis/internal/logger"
	"triaxis/internal/models"
	"triaxis/internal/render"
)

// PlotService validates plot requests and draws them onto a figure.
type PlotService struct {
	logger logger.Logger
}

// NewPlotService creates a plot service.
func NewPlotService(log logger.Logger) *PlotService {
	return &PlotService{logger: log}
}

// Plot clears fig and draws the selected columns of table as plotType.
// Precondition failures leave fig untouched. Failures after that leave
// fig cleared.
func (ps *PlotService) Plot(fig *render.Figure, table *models.Table, sel models.AxisSelection, plotType models.PlotType) (summary models.RenderSummary, err error) {
	if table == nil {
		return summary, models.ErrNoData
	}
	missing := sel.Missing()
	if plotType == models.PlotNone {
		missing = append(missing, "plot type")
	}
	if len(missing) > 0 {
		return summary, &models.IncompleteSelectionError{Missing: missing}
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = &models.PlotRenderError{Err: fmt.Errorf("%v", r)}
		}
		if err != nil {
			ps.logger.Error("PlotService", err, map[string]interface{}{
				"plot_type": plotType.String(),
			})
		}
	}()

	fig.Clear()

	xs, ys, zs, err := columns(table, sel)
	if err != nil {
		return summary, &models.PlotRenderError{Err: err}
	}
	labels := render.Labels{X: sel.X, Y: sel.Y, Z: sel.Z}

	switch {
	case plotType == models.PlotScatter:
		points := make([]r3.Vec, len(xs))
		for i := range xs {
			points[i] = r3.Vec{X: xs[i], Y: ys[i], Z: zs[i]}
		}
		err = fig.Scatter(points, labels)
	case plotType.Gridded():
		var grid *render.Grid
		grid, err = render.BuildGrid(xs, ys, zs, render.GridSamples)
		if err != nil {
			break
		}
		if plotType == models.PlotWireframe {
			err = fig.Wireframe(grid, labels)
		} else {
			err = fig.Surface(grid, labels)
		}
	default:
		err = fmt.Errorf("unknown plot type %d", plotType)
	}
	if err != nil {
		return summary, &models.PlotRenderError{Err: err}
	}

	summary = models.RenderSummary{
		Selection:  sel,
		PlotType:   plotType,
		Points:     len(xs),
		RenderedAt: time.Now(),
	}
	ps.logger.Info("PlotService", "figure drawn", map[string]interface{}{
		"plot_type": plotType.String(),
		"x":         sel.X,
		"y":         sel.Y,
		"z":         sel.Z,
		"points":    len(xs),
		"duration":  time.Since(start).String(),
	})
	return summary, nil
}

func columns(table *models.Table, sel models.AxisSelection) (xs, ys, zs []float64, err error) {
	if xs, err = table.Float64s(sel.X); err != nil {
		return
	}
	if ys, err = table.Float64s(sel.Y); err != nil {
		return
	}
	zs, err = table.Float64s(sel.Z)
	return
}
