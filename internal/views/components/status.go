package components

import (
	"fmt"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	readyText  = "Ready"
	noDataText = "No data loaded"
)

// StatusBar shows the last action's outcome and a summary of the loaded
// table.
type StatusBar struct {
	container *fyne.Container
	message   *widget.Label
	table     *widget.Label
}

// NewStatusBar creates a status bar in its initial state.
func NewStatusBar() *StatusBar {
	sb := &StatusBar{
		message: widget.NewLabel(readyText),
		table:   widget.NewLabel(noDataText),
	}
	sb.message.Truncation = fyne.TextTruncateEllipsis
	sb.container = container.NewBorder(nil, nil, nil, sb.table, sb.message)
	return sb
}

// SetStatus replaces the message.
func (sb *StatusBar) SetStatus(status string) {
	sb.message.SetText(status)
}

// GetStatus returns the message.
func (sb *StatusBar) GetStatus() string {
	return sb.message.Text
}

// SetTableInfo shows the file name and shape of the loaded table.
func (sb *StatusBar) SetTableInfo(source string, rows, columns int) {
	sb.table.SetText(fmt.Sprintf("%s: %d rows, %d columns", filepath.Base(source), rows, columns))
}

// GetTableInfo returns the table summary.
func (sb *StatusBar) GetTableInfo() string {
	return sb.table.Text
}

func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}
