package pipeline

import (
	"image"
	"io"

	"triaxis/internal/models"
	"triaxis/internal/render"
)

// ReadFunc parses one input format. source names the input in messages.
type ReadFunc func(r io.Reader, source string) (*models.Table, error)

// EncodeFunc writes a figure in one output format.
type EncodeFunc func(w io.Writer, fig *render.Figure, size render.Size) error

// RasterEncodeFunc writes an already rasterised image.
type RasterEncodeFunc func(w io.Writer, img image.Image) error

// TableLoader turns a file path into a table.
type TableLoader interface {
	Load(path string) (*models.Table, error)
	Extensions() []string
}

// FigureSaver writes a figure in the format named by an extension.
type FigureSaver interface {
	Save(w io.Writer, ext string, fig *render.Figure, size render.Size) error
	Extensions() []string
}

// Raster adapts a raster encoder to an EncodeFunc by drawing the figure
// at size first.
func Raster(enc RasterEncodeFunc) EncodeFunc {
	return func(w io.Writer, fig *render.Figure, size render.Size) error {
		img, err := fig.Image(size)
		if err != nil {
			return err
		}
		return enc(w, img)
	}
}
