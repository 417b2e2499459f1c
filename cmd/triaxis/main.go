package main

import (
	"fmt"
	"os"
	"runtime"

	"triaxis/internal/config"
	"triaxis/internal/controllers"
	"triaxis/internal/logger"
	"triaxis/internal/models"
	"triaxis/internal/opencv"
	"triaxis/internal/pipeline"
	"triaxis/internal/render"
	"triaxis/internal/services"
	"triaxis/internal/shutdown"
	"triaxis/internal/views"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

const (
	AppName    = "Triaxis"
	AppID      = "io.triaxis.plotter"
	AppVersion = "1.0.0"
)

// Application holds the wired components of one run.
type Application struct {
	fyneApp fyne.App
	window  fyne.Window
	logger  logger.Logger

	controller *controllers.MainController
	view       *views.MainView
	shutdown   *shutdown.Manager
}

func main() {
	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", AppName, err)
		os.Exit(2)
	}

	application := NewApplication(cfg)
	application.Run()
}

// NewApplication creates the Fyne app, main window and MVC components.
func NewApplication(cfg config.Config) *Application {
	appLogger := logger.New(cfg.LogLevel, cfg.LogJSON)

	app.SetMetadata(fyne.AppMetadata{
		ID:      AppID,
		Name:    AppName,
		Version: AppVersion,
	})
	fyneApp := app.NewWithID(AppID)

	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(cfg.WindowWidth, cfg.WindowHeight))
	window.CenterOnScreen()

	appLogger.Info("Application", "starting", map[string]interface{}{
		"version":     AppVersion,
		"window_size": fmt.Sprintf("%.0fx%.0f", cfg.WindowWidth, cfg.WindowHeight),
		"go_version":  runtime.Version(),
		"log_level":   cfg.LogLevel.String(),
	})

	loader := pipeline.NewLoader(appLogger)
	saver := pipeline.NewSaver(appLogger)
	for _, ext := range opencv.Extensions {
		saver.Register(ext, pipeline.Raster(opencv.Encoder(ext)))
	}

	dataService := services.NewDataService(loader, appLogger)
	plotService := services.NewPlotService(appLogger)
	exportService := services.NewExportService(saver, services.NewSystemClipboard(), appLogger)

	figure := render.NewFigure(render.Camera{Azimuth: cfg.Azimuth, Elevation: cfg.Elevation})
	exportSize := render.Size{Width: cfg.ExportWidth, Height: cfg.ExportHeight, DPI: cfg.DPI}

	controller := controllers.NewMainController(
		dataService, plotService, exportService,
		models.NewState(), figure, exportSize, appLogger,
	)
	view := views.NewMainView(window, cfg.DPI)
	controller.SetMainView(view)
	controller.SetQuitHandler(fyneApp.Quit)
	controller.SetInitialPath(cfg.InitialPath)

	manager := shutdown.NewManager(appLogger)
	manager.Register("controller", controller)

	application := &Application{
		fyneApp:    fyneApp,
		window:     window,
		logger:     appLogger,
		controller: controller,
		view:       view,
		shutdown:   manager,
	}
	application.setupWindowEvents()

	appLogger.Info("Application", "initialized", map[string]interface{}{
		"data_formats":  dataService.Extensions(),
		"image_formats": exportService.Extensions(),
	})
	return application
}

// Run shows the window and blocks until the application quits.
func (app *Application) Run() {
	app.shutdown.Listen(func() {
		fyne.Do(app.fyneApp.Quit)
	})

	app.view.Show()
	app.fyneApp.Run()

	app.shutdown.Shutdown()
	app.logger.Info("Application", "terminated", nil)
}

func (app *Application) setupWindowEvents() {
	app.window.SetCloseIntercept(func() {
		app.logger.Info("Application", "window close requested", nil)
		app.window.Close()
	})

	app.window.SetOnClosed(func() {
		app.logger.Info("Application", "window closed", nil)
	})
}
