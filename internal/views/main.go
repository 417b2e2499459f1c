package views

import (
	"fmt"
	"image"
	"io"

	"triaxis/internal/models"
	"triaxis/internal/render"
	"triaxis/internal/views/components"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
)

// DefaultSaveName pre-fills the save dialog.
const DefaultSaveName = "plot.png"

// Actions are the user-triggered operations wired to buttons and menu items.
type Actions struct {
	SelectFile      func()
	LoadData        func()
	Plot            func()
	SaveToFile      func()
	CopyToClipboard func()
	Quit            func()
}

// MainView represents the main application view using MVC pattern
type MainView struct {
	window        fyne.Window
	mainContainer *fyne.Container
	controls      *components.ControlPanel
	plotDisplay   *components.PlotDisplay
	statusBar     *components.StatusBar

	dpi     int
	actions Actions
}

// NewMainView creates the main view and sets it as the window content.
// dpi is the resolution figures are rasterised at for display.
func NewMainView(window fyne.Window, dpi int) *MainView {
	view := &MainView{
		window: window,
		dpi:    dpi,
	}

	view.initializeComponents()
	view.buildLayout()
	view.setupEventHandlers()
	view.buildMenu()

	return view
}

// initializeComponents creates all UI components
func (mv *MainView) initializeComponents() {
	mv.controls = components.NewControlPanel()
	mv.plotDisplay = components.NewPlotDisplay()
	mv.statusBar = components.NewStatusBar()
}

// buildLayout constructs the main layout
func (mv *MainView) buildLayout() {
	split := container.NewHSplit(
		container.NewVScroll(mv.controls.GetContainer()),
		mv.plotDisplay.GetContainer(),
	)
	split.SetOffset(0.28)

	mv.mainContainer = container.NewBorder(nil, mv.statusBar.GetContainer(), nil, nil, split)
	mv.window.SetContent(mv.mainContainer)
}

// setupEventHandlers connects button events to the current actions
func (mv *MainView) setupEventHandlers() {
	mv.controls.SetSelectFileHandler(func() { call(mv.actions.SelectFile) })
	mv.controls.SetLoadHandler(func() { call(mv.actions.LoadData) })
	mv.controls.SetPlotHandler(func() { call(mv.actions.Plot) })
	mv.controls.SetSaveHandler(func() { call(mv.actions.SaveToFile) })
	mv.controls.SetCopyHandler(func() { call(mv.actions.CopyToClipboard) })
}

func (mv *MainView) buildMenu() {
	quit := fyne.NewMenuItem("Quit", func() { call(mv.actions.Quit) })
	quit.IsQuit = true

	file := fyne.NewMenu("File",
		fyne.NewMenuItem("Open...", func() { call(mv.actions.SelectFile) }),
		fyne.NewMenuItem("Load Data", func() { call(mv.actions.LoadData) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Plot", func() { call(mv.actions.Plot) }),
		fyne.NewMenuItem("Save Image...", func() { call(mv.actions.SaveToFile) }),
		fyne.NewMenuItem("Copy to Clipboard", func() { call(mv.actions.CopyToClipboard) }),
		fyne.NewMenuItemSeparator(),
		quit,
	)
	mv.window.SetMainMenu(fyne.NewMainMenu(file))
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}

// SetActions replaces the handlers behind buttons and menu items.
func (mv *MainView) SetActions(actions Actions) {
	mv.actions = actions
}

// Path returns the file path text.
func (mv *MainView) Path() string {
	return mv.controls.Path()
}

// SetPath replaces the file path text.
func (mv *MainView) SetPath(path string) {
	mv.controls.SetPath(path)
}

// SetColumns replaces the options of the axis lists.
func (mv *MainView) SetColumns(columns []string, sel models.AxisSelection) {
	mv.controls.SetColumns(columns, sel)
}

// Columns returns the options offered by the axis lists.
func (mv *MainView) Columns() []string {
	return mv.controls.Columns()
}

// Selection returns the chosen columns and plot type.
func (mv *MainView) Selection() (models.AxisSelection, models.PlotType) {
	return mv.controls.Selection()
}

// SetFigure shows a rasterised figure.
func (mv *MainView) SetFigure(img image.Image) {
	mv.plotDisplay.SetImage(img)
}

// FigureSize returns the size figures are rasterised at for display.
func (mv *MainView) FigureSize() render.Size {
	w, h := mv.plotDisplay.PixelSize()
	return render.Size{Width: w, Height: h, DPI: mv.dpi}
}

// UpdateStatus updates the status bar message
func (mv *MainView) UpdateStatus(status string) {
	mv.statusBar.SetStatus(status)
}

// SetTableInfo describes the loaded table in the status bar.
func (mv *MainView) SetTableInfo(source string, rows, columns int) {
	mv.statusBar.SetTableInfo(source, rows, columns)
}

// ShowError displays an error dialog
func (mv *MainView) ShowError(title string, err error) {
	dialog.ShowError(titled(title, err), mv.window)
}

// titled prefixes err with the action that failed.
func titled(title string, err error) error {
	if title == "" {
		return err
	}
	return fmt.Errorf("%s: %w", title, err)
}

// ShowInfo displays an information dialog
func (mv *MainView) ShowInfo(title, message string) {
	dialog.ShowInformation(title, message, mv.window)
}

// ShowOpenDialog lets the user pick a file with one of exts. onChosen is
// not called when the dialog is cancelled.
func (mv *MainView) ShowOpenDialog(exts []string, onChosen func(path string)) {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			mv.ShowError("Open failed", err)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		onChosen(path)
	}, mv.window)
	d.SetFilter(storage.NewExtensionFileFilter(exts))
	d.Show()
}

// ShowSaveDialog lets the user choose a destination file. onChosen owns
// the writer and must close it.
func (mv *MainView) ShowSaveDialog(exts []string, onChosen func(w io.WriteCloser, path string)) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			mv.ShowError("Save failed", err)
			return
		}
		if writer == nil {
			return
		}
		onChosen(writer, writer.URI().Path())
	}, mv.window)
	d.SetFilter(storage.NewExtensionFileFilter(exts))
	d.SetFileName(DefaultSaveName)
	d.Show()
}

// Show displays the view
func (mv *MainView) Show() {
	mv.window.Show()
}

// GetControls returns the control panel component
func (mv *MainView) GetControls() *components.ControlPanel {
	return mv.controls
}

// GetStatusBar returns the status bar component
func (mv *MainView) GetStatusBar() *components.StatusBar {
	return mv.statusBar
}
