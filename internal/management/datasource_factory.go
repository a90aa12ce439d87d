package management

import (
	"fmt"

	"management-quality/internal/interfaces"
	"management-quality/internal/management/datasource"
	"management-quality/internal/store"
)

// CreateDataSource creates the appropriate data source based on configuration
func CreateDataSource(cfg *store.Config) (interfaces.DatasetSource, error) {
	if cfg == nil {
		return nil, fmt.Errorf("no configuration")
	}

	switch cfg.DataSource {
	case "FILESYSTEM", "":
		return datasource.NewFileSystemSource(cfg.BasePath, cfg.DataDir), nil
	case "MOCK":
		return datasource.NewMockDataSource(), nil
	default:
		return nil, fmt.Errorf("unknown data source type: %s (valid options: FILESYSTEM, MOCK)", cfg.DataSource)
	}
}
