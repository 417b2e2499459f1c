package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"triaxis/internal/logger"
	"triaxis/internal/models"
	"triaxis/internal/render"
)

func table(t *testing.T, header []string, rows ...[]string) *models.Table {
	t.Helper()
	tbl, err := models.NewTable("test.csv", header, rows)
	require.NoError(t, err)
	return tbl
}

var xyz = models.AxisSelection{X: "x", Y: "y", Z: "z"}

func TestPlotNoData(t *testing.T) {
	fig := render.NewFigure(render.DefaultCamera())
	_, err := NewPlotService(logger.NewNop()).Plot(fig, nil, xyz, models.PlotScatter)
	assert.ErrorIs(t, err, models.ErrNoData)
}

func TestPlotIncompleteSelection(t *testing.T) {
	svc := NewPlotService(logger.NewNop())
	tbl := table(t, []string{"x", "y", "z"}, []string{"1", "1", "1"})
	fig := render.NewFigure(render.DefaultCamera())
	require.NoError(t, fig.Scatter([]r3.Vec{{X: 9, Y: 9, Z: 9}}, render.Labels{}))

	cases := []struct {
		sel      models.AxisSelection
		pt       models.PlotType
		expected []string
	}{
		{models.AxisSelection{Y: "y", Z: "z"}, models.PlotScatter, []string{"X"}},
		{models.AxisSelection{X: "x", Z: "z"}, models.PlotSurface, []string{"Y"}},
		{models.AxisSelection{X: "x", Y: "y"}, models.PlotWireframe, []string{"Z"}},
		{xyz, models.PlotNone, []string{"plot type"}},
		{models.AxisSelection{}, models.PlotNone, []string{"X", "Y", "Z", "plot type"}},
	}
	for _, tc := range cases {
		_, err := svc.Plot(fig, tbl, tc.sel, tc.pt)
		var incomplete *models.IncompleteSelectionError
		require.ErrorAs(t, err, &incomplete)
		assert.Equal(t, tc.expected, incomplete.Missing)
	}

	// Rejected requests leave the previous drawing in place.
	assert.Equal(t, models.PlotScatter, fig.Kind())
	assert.Equal(t, []r3.Vec{{X: 9, Y: 9, Z: 9}}, fig.Points())
}

func TestPlotScatterRoundTrip(t *testing.T) {
	tbl := table(t, []string{"x", "y", "z"}, []string{"1", "1", "1"}, []string{"2", "2", "4"})
	fig := render.NewFigure(render.DefaultCamera())

	summary, err := NewPlotService(logger.NewNop()).Plot(fig, tbl, xyz, models.PlotScatter)
	require.NoError(t, err)
	assert.ElementsMatch(t, []r3.Vec{{X: 2, Y: 2, Z: 4}, {X: 1, Y: 1, Z: 1}}, fig.Points())
	assert.Equal(t, 2, summary.Points)
	assert.Equal(t, models.PlotScatter, summary.PlotType)
	assert.Equal(t, render.Labels{X: "x", Y: "y", Z: "z"}, fig.Labels())
}

func TestPlotRepeatedColumn(t *testing.T) {
	tbl := table(t, []string{"x", "y", "z"}, []string{"1", "5", "1"}, []string{"2", "6", "4"})
	fig := render.NewFigure(render.DefaultCamera())
	sel := models.AxisSelection{X: "x", Y: "x", Z: "x"}

	_, err := NewPlotService(logger.NewNop()).Plot(fig, tbl, sel, models.PlotScatter)
	require.NoError(t, err)
	assert.ElementsMatch(t, []r3.Vec{{X: 1, Y: 1, Z: 1}, {X: 2, Y: 2, Z: 2}}, fig.Points())
}

func TestPlotGridIdenticalForWireframeAndSurface(t *testing.T) {
	tbl := table(t, []string{"x", "y", "z"},
		[]string{"3", "0", "9"},
		[]string{"1", "2", "1"},
		[]string{"2", "-1", "4"},
	)
	svc := NewPlotService(logger.NewNop())

	wire := render.NewFigure(render.DefaultCamera())
	_, err := svc.Plot(wire, tbl, xyz, models.PlotWireframe)
	require.NoError(t, err)
	surf := render.NewFigure(render.DefaultCamera())
	_, err = svc.Plot(surf, tbl, xyz, models.PlotSurface)
	require.NoError(t, err)

	g := wire.Grid()
	require.NotNil(t, g)
	assert.Equal(t, g, surf.Grid())
	require.Len(t, g.X, render.GridSamples)
	require.Len(t, g.Y, render.GridSamples)
	assert.Equal(t, 1.0, g.X[0])
	assert.Equal(t, 3.0, g.X[render.GridSamples-1])
	assert.Equal(t, -1.0, g.Y[0])
	assert.Equal(t, 2.0, g.Y[render.GridSamples-1])
}

func TestPlotRenderErrors(t *testing.T) {
	svc := NewPlotService(logger.NewNop())

	cases := map[string]*models.Table{
		"non-numeric": table(t, []string{"x", "y", "z"}, []string{"1", "a", "1"}),
		"no rows":     table(t, []string{"x", "y", "z"}),
	}
	for name, tbl := range cases {
		t.Run(name, func(t *testing.T) {
			for _, pt := range models.PlotTypes() {
				fig := render.NewFigure(render.DefaultCamera())
				require.NoError(t, fig.Scatter([]r3.Vec{{X: 1, Y: 2, Z: 3}}, render.Labels{}))

				_, err := svc.Plot(fig, tbl, xyz, pt)
				var renderErr *models.PlotRenderError
				require.ErrorAs(t, err, &renderErr, pt.String())
				// The figure was cleared before the failure and stays that way.
				assert.True(t, fig.Empty())
			}
		})
	}

	t.Run("unknown column", func(t *testing.T) {
		fig := render.NewFigure(render.DefaultCamera())
		tbl := table(t, []string{"x", "y", "z"}, []string{"1", "2", "3"})
		_, err := svc.Plot(fig, tbl, models.AxisSelection{X: "x", Y: "y", Z: "w"}, models.PlotScatter)
		var renderErr *models.PlotRenderError
		assert.ErrorAs(t, err, &renderErr)
	})
}
