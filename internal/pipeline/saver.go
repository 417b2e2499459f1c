package pipeline

import (
	"io"
	"sort"

	"triaxis/internal/models"
	"triaxis/internal/render"
)

// DefaultExt is used when the chosen file has no extension.
const DefaultExt = ".png"

// Saver dispatches on file extension to a registered encoder.
type Saver struct {
	encoders map[string]EncodeFunc
	logger   Logger
}

// NewSaver returns a saver with every format the plot backend writes.
func NewSaver(logger Logger) *Saver {
	s := &Saver{
		encoders: make(map[string]EncodeFunc),
		logger:   logger,
	}
	for _, ext := range []string{".png", ".jpg", ".jpeg", ".svg", ".pdf", ".eps", ".tif", ".tiff"} {
		format := ext
		s.Register(ext, func(w io.Writer, fig *render.Figure, size render.Size) error {
			return fig.WriteTo(w, size, format)
		})
	}
	return s
}

// Register adds or replaces the encoder for ext.
func (s *Saver) Register(ext string, fn EncodeFunc) {
	s.encoders[normaliseExt(ext)] = fn
}

// Extensions lists registered extensions, sorted.
func (s *Saver) Extensions() []string {
	exts := make([]string, 0, len(s.encoders))
	for ext := range s.encoders {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Save encodes fig by ext. An empty ext means DefaultExt.
func (s *Saver) Save(w io.Writer, ext string, fig *render.Figure, size render.Size) error {
	ext = normaliseExt(ext)
	if ext == "" {
		ext = DefaultExt
	}

	enc, ok := s.encoders[ext]
	if !ok {
		return &models.UnsupportedFormatError{Ext: ext}
	}

	s.logger.Debug("Saver", "encoding figure", map[string]interface{}{
		"format": ext,
		"width":  size.Width,
		"height": size.Height,
		"empty":  fig.Empty(),
	})

	if err := enc(w, fig, size); err != nil {
		s.logger.Error("Saver", err, map[string]interface{}{
			"format": ext,
		})
		return err
	}
	return nil
}
