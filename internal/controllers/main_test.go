package controllers

import (
	"bytes"
	"errors"
	"image"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"triaxis/internal/logger"
	"triaxis/internal/models"
	"triaxis/internal/pipeline"
	"triaxis/internal/render"
	"triaxis/internal/services"
	"triaxis/internal/views"
)

type fakeView struct {
	path      string
	columns   []string
	selection models.AxisSelection
	plotType  models.PlotType
	figure    image.Image
	figureSet int
	status    string
	tableInfo string
	errors    []error
	infos     []string
	actions   views.Actions

	openPath string
	savePath string
}

func (v *fakeView) Path() string        { return v.path }
func (v *fakeView) SetPath(path string) { v.path = path }

func (v *fakeView) SetColumns(columns []string, sel models.AxisSelection) {
	v.columns = append([]string(nil), columns...)
	v.selection = sel
}

func (v *fakeView) Selection() (models.AxisSelection, models.PlotType) {
	return v.selection, v.plotType
}

func (v *fakeView) SetFigure(img image.Image) {
	v.figure = img
	v.figureSet++
}

func (v *fakeView) FigureSize() render.Size {
	return render.Size{Width: 160, Height: 120, DPI: 96}
}

func (v *fakeView) UpdateStatus(status string) { v.status = status }

func (v *fakeView) SetTableInfo(source string, rows, columns int) {
	v.tableInfo = filepath.Base(source)
}

func (v *fakeView) ShowError(title string, err error) { v.errors = append(v.errors, err) }
func (v *fakeView) ShowInfo(title, message string)    { v.infos = append(v.infos, message) }

func (v *fakeView) ShowOpenDialog(exts []string, onChosen func(path string)) {
	if v.openPath != "" {
		onChosen(v.openPath)
	}
}

func (v *fakeView) ShowSaveDialog(exts []string, onChosen func(w io.WriteCloser, path string)) {
	if v.savePath == "" {
		return
	}
	f, err := os.Create(v.savePath)
	if err != nil {
		panic(err)
	}
	onChosen(f, v.savePath)
}

func (v *fakeView) SetActions(actions views.Actions) { v.actions = actions }

type memClipboard struct {
	data []byte
}

func (m *memClipboard) WriteImage(png []byte) error {
	m.data = append([]byte(nil), png...)
	return nil
}

func newController(t *testing.T) (*MainController, *fakeView, *memClipboard) {
	t.Helper()
	log := logger.NewNop()
	cb := &memClipboard{}
	mc := NewMainController(
		services.NewDataService(pipeline.NewLoader(log), log),
		services.NewPlotService(log),
		services.NewExportService(pipeline.NewSaver(log), cb, log),
		models.NewState(),
		render.NewFigure(render.DefaultCamera()),
		render.Size{Width: 200, Height: 150, DPI: 96},
		log,
	)
	view := &fakeView{plotType: models.PlotScatter}
	mc.SetMainView(view)
	return mc, view, cb
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadPopulatesColumns(t *testing.T) {
	mc, view, _ := newController(t)
	view.path = writeFile(t, "abc.csv", "a,b,c\n1,2,3\n4,5,6\n")

	view.actions.LoadData()

	require.Empty(t, view.errors)
	assert.Equal(t, []string{"a", "b", "c"}, view.columns)
	assert.Equal(t, models.AxisSelection{X: "a", Y: "b", Z: "c"}, view.selection)
	assert.Equal(t, "abc.csv", view.tableInfo)
	require.NotNil(t, mc.State().Table())
	assert.Equal(t, 2, mc.State().Table().NumRows())
}

func TestReloadReplacesColumns(t *testing.T) {
	mc, view, _ := newController(t)
	require.NoError(t, mc.Load(writeFile(t, "first.csv", "a,b,c\n1,2,3\n")))
	require.NoError(t, mc.Load(writeFile(t, "second.dat", "u v w t\n1 2 3 4\n")))

	assert.Equal(t, []string{"u", "v", "w", "t"}, view.columns)
	assert.Equal(t, []string{"u", "v", "w", "t"}, mc.State().Table().Columns)
}

func TestLoadInsufficientColumnsKeepsTable(t *testing.T) {
	mc, view, _ := newController(t)
	require.NoError(t, mc.Load(writeFile(t, "good.csv", "a,b,c\n1,2,3\n")))
	before := mc.State().Table()

	view.path = writeFile(t, "narrow.csv", "a,b\n1,2\n")
	view.actions.LoadData()

	require.Len(t, view.errors, 1)
	var colErr *models.InsufficientColumnsError
	require.ErrorAs(t, view.errors[0], &colErr)
	assert.Equal(t, 2, colErr.Got)
	assert.Same(t, before, mc.State().Table())
	assert.Equal(t, []string{"a", "b", "c"}, view.columns)
}

func TestLoadMissingPath(t *testing.T) {
	mc, view, _ := newController(t)
	view.path = "   "
	view.actions.LoadData()

	require.Len(t, view.errors, 1)
	assert.ErrorIs(t, view.errors[0], models.ErrMissingPath)
	assert.Nil(t, mc.State().Table())
}

func TestLoadUnsupportedFormat(t *testing.T) {
	mc, _, _ := newController(t)
	err := mc.Load(writeFile(t, "notes.txt", "a,b,c\n"))

	var formatErr *models.UnsupportedFormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Nil(t, mc.State().Table())
}

func TestPlotBeforeLoad(t *testing.T) {
	_, view, _ := newController(t)
	view.actions.Plot()

	require.Len(t, view.errors, 1)
	assert.ErrorIs(t, view.errors[0], models.ErrNoData)
	assert.Zero(t, view.figureSet)
}

func TestPlotIncompleteSelectionLeavesDisplay(t *testing.T) {
	mc, view, _ := newController(t)
	require.NoError(t, mc.Load(writeFile(t, "abc.csv", "a,b,c\n1,2,3\n4,5,6\n")))
	require.NoError(t, mc.Render(view.selection, models.PlotScatter))
	require.Equal(t, 1, view.figureSet)

	err := mc.Render(models.AxisSelection{X: "a", Y: "b"}, models.PlotScatter)
	var selErr *models.IncompleteSelectionError
	require.ErrorAs(t, err, &selErr)
	assert.Equal(t, []string{"Z"}, selErr.Missing)

	err = mc.Render(view.selection, models.PlotNone)
	require.ErrorAs(t, err, &selErr)
	assert.Equal(t, []string{"plot type"}, selErr.Missing)

	assert.Equal(t, 1, view.figureSet)
	assert.Equal(t, models.PlotScatter, mc.State().LastRender().PlotType)
}

func TestPlotEachType(t *testing.T) {
	for _, pt := range models.PlotTypes() {
		t.Run(pt.String(), func(t *testing.T) {
			mc, view, _ := newController(t)
			require.NoError(t, mc.Load(writeFile(t, "grid.csv", "x,y,z\n0,0,1\n1,1,2\n2,0,3\n3,1,1\n")))
			view.plotType = pt

			view.actions.Plot()

			require.Empty(t, view.errors)
			require.NotNil(t, view.figure)
			assert.Equal(t, 160, view.figure.Bounds().Dx())
			assert.Equal(t, pt, mc.State().LastRender().PlotType)
			assert.Equal(t, 4, mc.State().LastRender().Points)
		})
	}
}

func TestPlotRenderErrorClearsDisplay(t *testing.T) {
	mc, view, _ := newController(t)
	require.NoError(t, mc.Load(writeFile(t, "mixed.csv", "a,b,c\n1,2,3\n4,x,6\n")))

	err := mc.Render(models.AxisSelection{X: "a", Y: "b", Z: "c"}, models.PlotSurface)

	var renderErr *models.PlotRenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, 1, view.figureSet)
	assert.Nil(t, mc.State().LastRender())
}

func TestSavePNGAfterPlot(t *testing.T) {
	mc, view, _ := newController(t)
	require.NoError(t, mc.Load(writeFile(t, "abc.csv", "a,b,c\n1,2,3\n4,5,6\n")))
	require.NoError(t, mc.Render(view.selection, models.PlotScatter))

	view.savePath = filepath.Join(t.TempDir(), "out.png")
	view.actions.SaveToFile()

	require.Empty(t, view.errors)
	require.Len(t, view.infos, 1)
	data, err := os.ReadFile(view.savePath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")))
}

func TestSaveWithoutExtensionWritesPNG(t *testing.T) {
	mc, _, _ := newController(t)
	path := filepath.Join(t.TempDir(), "plot")
	require.NoError(t, mc.Export(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
}

func TestSaveUnsupportedFormat(t *testing.T) {
	_, view, _ := newController(t)
	view.savePath = filepath.Join(t.TempDir(), "out.txt")
	view.actions.SaveToFile()

	require.Len(t, view.errors, 1)
	var formatErr *models.UnsupportedFormatError
	require.ErrorAs(t, view.errors[0], &formatErr)
	_, err := os.Stat(view.savePath)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestSaveCancelled(t *testing.T) {
	_, view, _ := newController(t)
	view.actions.SaveToFile()
	assert.Empty(t, view.errors)
	assert.Empty(t, view.infos)
}

func TestCopyToClipboard(t *testing.T) {
	mc, view, cb := newController(t)
	require.NoError(t, mc.Load(writeFile(t, "abc.csv", "a,b,c\n1,2,3\n4,5,6\n")))
	require.NoError(t, mc.Render(view.selection, models.PlotWireframe))

	view.actions.CopyToClipboard()

	require.Empty(t, view.errors)
	assert.Equal(t, []string{"Plot copied to clipboard"}, view.infos)
	assert.True(t, bytes.HasPrefix(cb.data, []byte("\x89PNG")))
}

func TestSelectFile(t *testing.T) {
	mc, view, _ := newController(t)
	view.path = "old.csv"

	view.actions.SelectFile()
	assert.Equal(t, "old.csv", view.path)

	view.openPath = "/data/new.xlsx"
	view.actions.SelectFile()
	assert.Equal(t, "/data/new.xlsx", view.path)
	assert.Nil(t, mc.State().Table())
}

func TestQuitAndInitialPath(t *testing.T) {
	mc, view, _ := newController(t)
	quit := false
	mc.SetQuitHandler(func() { quit = true })
	mc.SetInitialPath("points.csv")

	view.actions.Quit()
	assert.True(t, quit)
	assert.Equal(t, "points.csv", view.path)
	assert.Equal(t, "points.csv", mc.State().Path())
	mc.Shutdown()
}
