package services

import (
	"path/filepath"
	"strings"

	"triaxis/internal/logger"
	"triaxis/internal/models"
	"triaxis/internal/pipeline"
)

// DataService loads and validates input tables.
type DataService struct {
	loader pipeline.TableLoader
	logger logger.Logger
}

// NewDataService creates a data service over loader.
func NewDataService(loader pipeline.TableLoader, log logger.Logger) *DataService {
	return &DataService{loader: loader, logger: log}
}

// Load parses path and checks that the result can be plotted. It never
// touches application state; the caller decides whether to keep the table.
func (ds *DataService) Load(path string) (*models.Table, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, models.ErrMissingPath
	}

	table, err := ds.loader.Load(path)
	if err != nil {
		ds.logger.Warning("DataService", "load failed", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
		return nil, err
	}

	if table.NumColumns() < models.MinColumns {
		ds.logger.Warning("DataService", "table rejected", map[string]interface{}{
			"path":    path,
			"columns": table.NumColumns(),
		})
		return nil, &models.InsufficientColumnsError{Got: table.NumColumns()}
	}

	ds.logger.Info("DataService", "table accepted", map[string]interface{}{
		"file":    filepath.Base(path),
		"columns": table.NumColumns(),
		"rows":    table.NumRows(),
	})
	return table, nil
}

// Extensions lists the loadable file extensions.
func (ds *DataService) Extensions() []string {
	return ds.loader.Extensions()
}
