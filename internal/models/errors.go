package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingPath is returned when a load is requested with no path.
	ErrMissingPath = errors.New("please specify a file path")

	// ErrNoData is returned when a plot is requested before any load.
	ErrNoData = errors.New("please load data first")
)

// UnsupportedFormatError reports a file extension with no registered
// reader or encoder.
type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Ext == "" {
		return "unsupported file type: no extension"
	}
	return fmt.Sprintf("unsupported file type %q", e.Ext)
}

// DataParseError wraps a failure to open or parse an input file.
type DataParseError struct {
	Path string
	Err  error
}

func (e *DataParseError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Err)
}

func (e *DataParseError) Unwrap() error { return e.Err }

// InsufficientColumnsError is returned when a parsed table has fewer than
// MinColumns columns.
type InsufficientColumnsError struct {
	Got int
}

func (e *InsufficientColumnsError) Error() string {
	return fmt.Sprintf("dataset must have at least %d columns, found %d", MinColumns, e.Got)
}

// IncompleteSelectionError lists the axis or plot type choices that are
// still empty.
type IncompleteSelectionError struct {
	Missing []string
}

func (e *IncompleteSelectionError) Error() string {
	return fmt.Sprintf("please select all required options (missing: %s)", strings.Join(e.Missing, ", "))
}

// PlotRenderError wraps any failure while building or drawing a figure.
type PlotRenderError struct {
	Err error
}

func (e *PlotRenderError) Error() string {
	return fmt.Sprintf("failed to plot data: %v", e.Err)
}

func (e *PlotRenderError) Unwrap() error { return e.Err }
