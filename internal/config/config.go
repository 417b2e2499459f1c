package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

const (
	DefaultWindowWidth  = 1000
	DefaultWindowHeight = 700
	DefaultAzimuth      = -60.0
	DefaultElevation    = 30.0
	DefaultExportWidth  = 800
	DefaultExportHeight = 600
	DefaultDPI          = 96
)

// Config holds the settings for one application run. Nothing is persisted.
type Config struct {
	LogLevel zerolog.Level
	LogJSON  bool

	WindowWidth  float32
	WindowHeight float32

	// Camera angles in degrees.
	Azimuth   float64
	Elevation float64

	// Export size in pixels at DPI.
	ExportWidth  int
	ExportHeight int
	DPI          int

	// InitialPath pre-fills the file path field when given.
	InitialPath string
}

// Default returns the configuration used when no flags are given.
func Default() Config {
	return Config{
		LogLevel:     zerolog.InfoLevel,
		WindowWidth:  DefaultWindowWidth,
		WindowHeight: DefaultWindowHeight,
		Azimuth:      DefaultAzimuth,
		Elevation:    DefaultElevation,
		ExportWidth:  DefaultExportWidth,
		ExportHeight: DefaultExportHeight,
		DPI:          DefaultDPI,
	}
}

// Parse reads command-line arguments (without the program name).
func Parse(args []string) (Config, error) {
	cfg := Default()

	fs := pflag.NewFlagSet("triaxis", pflag.ContinueOnError)
	logLevel := fs.String("log-level", "info", "log level: debug, info, warn, error")
	fs.BoolVar(&cfg.LogJSON, "log-json", false, "emit JSON log lines instead of console output")
	fs.Float32Var(&cfg.WindowWidth, "width", cfg.WindowWidth, "initial window width")
	fs.Float32Var(&cfg.WindowHeight, "height", cfg.WindowHeight, "initial window height")
	fs.Float64Var(&cfg.Azimuth, "azimuth", cfg.Azimuth, "camera azimuth in degrees")
	fs.Float64Var(&cfg.Elevation, "elevation", cfg.Elevation, "camera elevation in degrees")
	fs.IntVar(&cfg.ExportWidth, "export-width", cfg.ExportWidth, "exported image width in pixels")
	fs.IntVar(&cfg.ExportHeight, "export-height", cfg.ExportHeight, "exported image height in pixels")
	fs.IntVar(&cfg.DPI, "dpi", cfg.DPI, "resolution used when rasterising figures")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	level, err := parseLevel(*logLevel)
	if err != nil {
		return Config{}, err
	}
	cfg.LogLevel = level

	if fs.NArg() > 0 {
		cfg.InitialPath = fs.Arg(0)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		return fmt.Errorf("window size must be positive, got %vx%v", c.WindowWidth, c.WindowHeight)
	}
	if c.ExportWidth <= 0 || c.ExportHeight <= 0 {
		return fmt.Errorf("export size must be positive, got %dx%d", c.ExportWidth, c.ExportHeight)
	}
	if c.DPI <= 0 {
		return fmt.Errorf("dpi must be positive, got %d", c.DPI)
	}
	if c.Elevation < -90 || c.Elevation > 90 {
		return fmt.Errorf("elevation must be within [-90, 90], got %v", c.Elevation)
	}
	return nil
}

func parseLevel(s string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel, nil
	case "info", "":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	default:
		return zerolog.NoLevel, fmt.Errorf("unknown log level %q", s)
	}
}
