package services

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"triaxis/internal/logger"
	"triaxis/internal/models"
	"triaxis/internal/pipeline"
	"triaxis/internal/render"
)

type memClipboard struct {
	data []byte
	err  error
}

func (m *memClipboard) WriteImage(png []byte) error {
	if m.err != nil {
		return m.err
	}
	m.data = append([]byte(nil), png...)
	return nil
}

var exportSize = render.Size{Width: 240, Height: 180, DPI: 96}

func newExportService(cb Clipboard) *ExportService {
	log := logger.NewNop()
	return NewExportService(pipeline.NewSaver(log), cb, log)
}

func drawnFigure(t *testing.T) *render.Figure {
	t.Helper()
	fig := render.NewFigure(render.DefaultCamera())
	require.NoError(t, fig.Scatter([]r3.Vec{{X: 1, Y: 1, Z: 1}, {X: 2, Y: 2, Z: 4}}, render.Labels{X: "a", Y: "b", Z: "c"}))
	return fig
}

func TestSaveFilePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plot.png")
	require.NoError(t, newExportService(&memClipboard{}).SaveFile(path, drawnFigure(t), exportSize))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 240, img.Bounds().Dx())
}

func TestSaveFileUnsupportedCreatesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plot.gif")
	err := newExportService(&memClipboard{}).SaveFile(path, drawnFigure(t), exportSize)

	var unsupported *models.UnsupportedFormatError
	require.ErrorAs(t, err, &unsupported)
	_, statErr := os.Stat(path)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestSaveEmptyFigure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.jpg")
	fig := render.NewFigure(render.DefaultCamera())
	require.NoError(t, newExportService(&memClipboard{}).SaveFile(path, fig, exportSize))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte{0xff, 0xd8}))
}

func TestCopyToClipboard(t *testing.T) {
	cb := &memClipboard{}
	require.NoError(t, newExportService(cb).CopyToClipboard(drawnFigure(t), exportSize))

	img, err := png.Decode(bytes.NewReader(cb.data))
	require.NoError(t, err)
	assert.Equal(t, 180, img.Bounds().Dy())
}

func TestCopyToClipboardError(t *testing.T) {
	boom := errors.New("no display")
	err := newExportService(&memClipboard{err: boom}).CopyToClipboard(drawnFigure(t), exportSize)
	assert.ErrorIs(t, err, boom)
}
