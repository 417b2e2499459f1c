package controllers

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"triaxis/internal/logger"
	"triaxis/internal/models"
	"triaxis/internal/render"
	"triaxis/internal/services"
	"triaxis/internal/views"
)

// View is the part of the main view the controller drives.
type View interface {
	Path() string
	SetPath(path string)
	SetColumns(columns []string, sel models.AxisSelection)
	Selection() (models.AxisSelection, models.PlotType)
	SetFigure(img image.Image)
	FigureSize() render.Size
	UpdateStatus(status string)
	SetTableInfo(source string, rows, columns int)
	ShowError(title string, err error)
	ShowInfo(title, message string)
	ShowOpenDialog(exts []string, onChosen func(path string))
	ShowSaveDialog(exts []string, onChosen func(w io.WriteCloser, path string))
	SetActions(actions views.Actions)
}

// MainController owns the application state and handles every user action.
// All methods run on the UI goroutine.
type MainController struct {
	dataService   *services.DataService
	plotService   *services.PlotService
	exportService *services.ExportService

	state      *models.State
	figure     *render.Figure
	exportSize render.Size
	logger     logger.Logger

	view View
	quit func()
}

// NewMainController creates a controller drawing into fig. Files are
// exported at exportSize.
func NewMainController(
	dataService *services.DataService,
	plotService *services.PlotService,
	exportService *services.ExportService,
	state *models.State,
	fig *render.Figure,
	exportSize render.Size,
	log logger.Logger,
) *MainController {
	return &MainController{
		dataService:   dataService,
		plotService:   plotService,
		exportService: exportService,
		state:         state,
		figure:        fig,
		exportSize:    exportSize,
		logger:        log,
	}
}

// SetMainView associates the main view with this controller and wires its
// buttons and menu items.
func (mc *MainController) SetMainView(view View) {
	mc.view = view
	view.SetActions(views.Actions{
		SelectFile:      mc.HandleSelectFile,
		LoadData:        mc.HandleLoad,
		Plot:            mc.HandlePlot,
		SaveToFile:      mc.HandleSave,
		CopyToClipboard: mc.HandleCopy,
		Quit:            mc.handleQuit,
	})
}

// SetQuitHandler sets what the Quit menu item does.
func (mc *MainController) SetQuitHandler(fn func()) {
	mc.quit = fn
}

// SetInitialPath pre-fills the path field.
func (mc *MainController) SetInitialPath(path string) {
	if path == "" {
		return
	}
	mc.state.SetPath(path)
	mc.view.SetPath(path)
}

// Load reads the file at path and, when it has enough columns, makes it
// the loaded table. A rejected file leaves the previous table in place.
func (mc *MainController) Load(path string) error {
	table, err := mc.dataService.Load(path)
	if err != nil {
		return err
	}

	mc.state.SetPath(strings.TrimSpace(path))
	mc.state.SetTable(table)

	mc.view.SetColumns(table.Columns, models.DefaultSelection(table.Columns))
	mc.view.SetTableInfo(table.Source, table.NumRows(), table.NumColumns())
	mc.view.UpdateStatus(fmt.Sprintf("Loaded %s", filepath.Base(table.Source)))
	return nil
}

// Render draws the loaded table and shows the result. Requests that fail
// validation leave the display as it was.
func (mc *MainController) Render(sel models.AxisSelection, plotType models.PlotType) error {
	summary, err := mc.plotService.Plot(mc.figure, mc.state.Table(), sel, plotType)

	var renderErr *models.PlotRenderError
	if err != nil && !errors.As(err, &renderErr) {
		return err
	}

	img, imgErr := mc.figure.Image(mc.view.FigureSize())
	if imgErr != nil {
		return &models.PlotRenderError{Err: imgErr}
	}
	mc.view.SetFigure(img)
	if err != nil {
		return err
	}

	mc.state.SetLastRender(summary)
	mc.view.UpdateStatus(fmt.Sprintf("%s of %s, %s, %s (%d points)",
		plotType, sel.X, sel.Y, sel.Z, summary.Points))
	return nil
}

// Export writes the current figure to path in the format named by its
// extension, PNG when it has none.
func (mc *MainController) Export(path string) error {
	return mc.exportService.SaveFile(path, mc.figure, mc.exportSize)
}

// Copy places the current figure on the clipboard at display size.
func (mc *MainController) Copy() error {
	return mc.exportService.CopyToClipboard(mc.figure, mc.view.FigureSize())
}

// HandleSelectFile asks for a data file and puts its path in the path field.
func (mc *MainController) HandleSelectFile() {
	mc.view.ShowOpenDialog(mc.dataService.Extensions(), func(path string) {
		mc.view.SetPath(path)
		mc.view.UpdateStatus(fmt.Sprintf("Selected %s", filepath.Base(path)))
	})
}

// HandleLoad loads the file named in the path field.
func (mc *MainController) HandleLoad() {
	mc.present("Load failed", mc.Load(mc.view.Path()))
}

// HandlePlot renders the current selection.
func (mc *MainController) HandlePlot() {
	sel, plotType := mc.view.Selection()
	mc.present("Plot failed", mc.Render(sel, plotType))
}

// HandleSave asks for a destination and saves the figure there.
func (mc *MainController) HandleSave() {
	mc.view.ShowSaveDialog(mc.exportService.Extensions(), func(w io.WriteCloser, path string) {
		// The dialog has already created the file; SaveFile rewrites it.
		w.Close()

		if err := mc.Export(path); err != nil {
			removeIfEmpty(path)
			mc.present("Save failed", err)
			return
		}
		mc.info("Saved", fmt.Sprintf("Plot saved to %s", path))
	})
}

// HandleCopy copies the figure to the clipboard.
func (mc *MainController) HandleCopy() {
	if err := mc.Copy(); err != nil {
		mc.present("Copy failed", err)
		return
	}
	mc.info("Copied", "Plot copied to clipboard")
}

func (mc *MainController) handleQuit() {
	if mc.quit != nil {
		mc.quit()
	}
}

// present is the single place errors reach the user.
func (mc *MainController) present(title string, err error) {
	if err == nil {
		return
	}
	mc.logger.Error("MainController", err, map[string]interface{}{
		"action": title,
	})
	mc.view.UpdateStatus(title)
	mc.view.ShowError(title, err)
}

func (mc *MainController) info(title, message string) {
	mc.logger.Info("MainController", message, nil)
	mc.view.UpdateStatus(message)
	mc.view.ShowInfo(title, message)
}

// State exposes the application state for inspection.
func (mc *MainController) State() *models.State {
	return mc.state
}

// Shutdown logs what was loaded when the application closes.
func (mc *MainController) Shutdown() {
	fields := map[string]interface{}{"path": mc.state.Path()}
	if t := mc.state.Table(); t != nil {
		fields["rows"] = t.NumRows()
		fields["columns"] = t.NumColumns()
		fields["loaded_at"] = mc.state.LoadedAt()
	}
	if r := mc.state.LastRender(); r != nil {
		fields["last_plot"] = r.PlotType.String()
	}
	mc.logger.Info("MainController", "controller shut down", fields)
}

func removeIfEmpty(path string) {
	if fi, err := os.Stat(path); err == nil && fi.Size() == 0 {
		os.Remove(path)
	}
}
