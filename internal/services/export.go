package services

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"triaxis/internal/logger"
	"triaxis/internal/pipeline"
	"triaxis/internal/render"
)

// ExportService writes figures to files and the clipboard.
type ExportService struct {
	saver     pipeline.FigureSaver
	clipboard Clipboard
	logger    logger.Logger
}

// NewExportService creates an export service.
func NewExportService(saver pipeline.FigureSaver, cb Clipboard, log logger.Logger) *ExportService {
	return &ExportService{saver: saver, clipboard: cb, logger: log}
}

// SaveFile writes fig to path, choosing the format from its extension. A
// partially written file is removed on failure.
func (es *ExportService) SaveFile(path string, fig *render.Figure, size render.Size) (err error) {
	// Encode first so an unsupported extension never creates a file.
	var buf bytes.Buffer
	if err := es.saver.Save(&buf, filepath.Ext(path), fig, size); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	n := buf.Len()
	if _, err = buf.WriteTo(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	es.logger.Info("ExportService", "figure saved", map[string]interface{}{
		"path":  path,
		"bytes": n,
	})
	return nil
}

// CopyToClipboard puts a PNG snapshot of fig at size on the clipboard.
func (es *ExportService) CopyToClipboard(fig *render.Figure, size render.Size) error {
	var buf bytes.Buffer
	if err := fig.WriteTo(&buf, size, "png"); err != nil {
		return err
	}
	if err := es.clipboard.WriteImage(buf.Bytes()); err != nil {
		return err
	}
	es.logger.Info("ExportService", "figure copied to clipboard", map[string]interface{}{
		"bytes": buf.Len(),
	})
	return nil
}

// Extensions lists the image formats that can be saved.
func (es *ExportService) Extensions() []string {
	return es.saver.Extensions()
}
