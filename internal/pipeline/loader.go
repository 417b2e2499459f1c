package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"triaxis/internal/models"
)

// Loader dispatches on file extension to a registered reader.
type Loader struct {
	readers map[string]ReadFunc
	logger  Logger
}

// NewLoader returns a loader with the built-in formats registered.
func NewLoader(logger Logger) *Loader {
	l := &Loader{
		readers: make(map[string]ReadFunc),
		logger:  logger,
	}
	l.Register(".dat", ReadWhitespace)
	l.Register(".csv", ReadCSV)
	l.Register(".tsv", ReadTSV)
	l.Register(".xlsx", ReadXLSX)
	return l
}

// Register adds or replaces the reader for ext.
func (l *Loader) Register(ext string, fn ReadFunc) {
	l.readers[normaliseExt(ext)] = fn
}

// Extensions lists registered extensions, sorted.
func (l *Loader) Extensions() []string {
	exts := make([]string, 0, len(l.readers))
	for ext := range l.readers {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Lookup returns the reader for path's extension.
func (l *Loader) Lookup(path string) (ReadFunc, error) {
	ext := normaliseExt(filepath.Ext(path))
	fn, ok := l.readers[ext]
	if !ok {
		return nil, &models.UnsupportedFormatError{Ext: ext}
	}
	return fn, nil
}

// Load opens and parses path. Unsupported extensions fail before the file
// is opened.
func (l *Loader) Load(path string) (*models.Table, error) {
	read, err := l.Lookup(path)
	if err != nil {
		return nil, err
	}

	l.logger.Debug("Loader", "reading table", map[string]interface{}{
		"path":      path,
		"extension": normaliseExt(filepath.Ext(path)),
	})

	f, err := os.Open(path)
	if err != nil {
		return nil, &models.DataParseError{Path: path, Err: err}
	}
	defer f.Close()

	table, err := read(f, path)
	if err != nil {
		return nil, &models.DataParseError{Path: path, Err: err}
	}

	l.logger.Info("Loader", "table parsed", map[string]interface{}{
		"path":    path,
		"columns": table.NumColumns(),
		"rows":    table.NumRows(),
	})
	return table, nil
}

func normaliseExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

func errNoColumns(source string) error {
	return fmt.Errorf("no columns to parse from %s", filepath.Base(source))
}
