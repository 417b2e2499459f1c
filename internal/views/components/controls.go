package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"triaxis/internal/models"
)

// ControlPanel holds the file, column and plot-type inputs and the action
// buttons.
type ControlPanel struct {
	container *fyne.Container

	PathEntry    *widget.Entry
	SelectButton *widget.Button
	LoadButton   *widget.Button
	XSelect      *widget.Select
	YSelect      *widget.Select
	ZSelect      *widget.Select
	TypeSelect   *widget.Select
	PlotButton   *widget.Button
	SaveButton   *widget.Button
	CopyButton   *widget.Button

	selectHandler func()
	loadHandler   func()
	plotHandler   func()
	saveHandler   func()
	copyHandler   func()
}

// NewControlPanel creates the control panel with empty column lists.
func NewControlPanel() *ControlPanel {
	cp := &ControlPanel{}
	cp.createComponents()
	cp.buildLayout()
	return cp
}

func (cp *ControlPanel) createComponents() {
	cp.PathEntry = widget.NewEntry()
	cp.PathEntry.SetPlaceHolder("Select or enter file path")

	cp.SelectButton = widget.NewButton("Select File", func() { call(cp.selectHandler) })
	cp.LoadButton = widget.NewButton("Load Data", func() { call(cp.loadHandler) })
	cp.LoadButton.Importance = widget.HighImportance

	cp.XSelect = widget.NewSelect(nil, nil)
	cp.YSelect = widget.NewSelect(nil, nil)
	cp.ZSelect = widget.NewSelect(nil, nil)
	cp.TypeSelect = widget.NewSelect(models.PlotTypeNames(), nil)
	cp.TypeSelect.SetSelected(models.PlotScatter.String())

	cp.PlotButton = widget.NewButton("Plot", func() { call(cp.plotHandler) })
	cp.PlotButton.Importance = widget.HighImportance
	cp.SaveButton = widget.NewButton("Save to File", func() { call(cp.saveHandler) })
	cp.CopyButton = widget.NewButton("Copy to Clipboard", func() { call(cp.copyHandler) })
}

func (cp *ControlPanel) buildLayout() {
	cp.container = container.NewVBox(
		widget.NewLabel("Load and plot 3D data"),
		container.NewBorder(nil, nil, nil, cp.SelectButton, cp.PathEntry),
		cp.LoadButton,
		widget.NewSeparator(),
		widget.NewLabel("Select X-axis:"),
		cp.XSelect,
		widget.NewLabel("Select Y-axis:"),
		cp.YSelect,
		widget.NewLabel("Select Z-axis:"),
		cp.ZSelect,
		widget.NewLabel("Select Plot Type:"),
		cp.TypeSelect,
		widget.NewSeparator(),
		cp.PlotButton,
		cp.SaveButton,
		cp.CopyButton,
	)
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}

// SetSelectFileHandler sets the handler for the file picker button
func (cp *ControlPanel) SetSelectFileHandler(handler func()) { cp.selectHandler = handler }

// SetLoadHandler sets the handler for the load button
func (cp *ControlPanel) SetLoadHandler(handler func()) { cp.loadHandler = handler }

// SetPlotHandler sets the handler for the plot button
func (cp *ControlPanel) SetPlotHandler(handler func()) { cp.plotHandler = handler }

// SetSaveHandler sets the handler for the save button
func (cp *ControlPanel) SetSaveHandler(handler func()) { cp.saveHandler = handler }

// SetCopyHandler sets the handler for the clipboard button
func (cp *ControlPanel) SetCopyHandler(handler func()) { cp.copyHandler = handler }

// Path returns the file path text.
func (cp *ControlPanel) Path() string {
	return cp.PathEntry.Text
}

// SetPath replaces the file path text.
func (cp *ControlPanel) SetPath(path string) {
	cp.PathEntry.SetText(path)
}

// SetColumns replaces the options of all three axis lists and selects sel.
func (cp *ControlPanel) SetColumns(columns []string, sel models.AxisSelection) {
	for i, s := range []*widget.Select{cp.XSelect, cp.YSelect, cp.ZSelect} {
		s.ClearSelected()
		s.SetOptions(append([]string(nil), columns...))
		if name := sel.Columns()[i]; name != "" {
			s.SetSelected(name)
		}
	}
}

// Columns returns the options offered by the X list. All three lists
// always hold the same options.
func (cp *ControlPanel) Columns() []string {
	return append([]string(nil), cp.XSelect.Options...)
}

// Selection returns the chosen axis columns and plot type.
func (cp *ControlPanel) Selection() (models.AxisSelection, models.PlotType) {
	sel := models.AxisSelection{
		X: cp.XSelect.Selected,
		Y: cp.YSelect.Selected,
		Z: cp.ZSelect.Selected,
	}
	return sel, models.ParsePlotType(cp.TypeSelect.Selected)
}

// GetContainer returns the panel container
func (cp *ControlPanel) GetContainer() *fyne.Container {
	return cp.container
}
