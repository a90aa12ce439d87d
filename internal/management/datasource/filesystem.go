package datasource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"management-quality/internal/logger"
	"management-quality/internal/types"
)

// ErrNoDataset is returned when a symbol's data directory holds no JSON file
var ErrNoDataset = errors.New("no dataset found")

// FileSystemSource reads fundamentals from <base>/<symbol>/<dataDir>/*.json
type FileSystemSource struct {
	basePath string
	dataDir  string
}

// NewFileSystemSource creates a new filesystem dataset source
func NewFileSystemSource(basePath, dataDir string) *FileSystemSource {
	if dataDir == "" {
		dataDir = "core"
	}
	return &FileSystemSource{
		basePath: basePath,
		dataDir:  dataDir,
	}
}

// DataDir returns the directory datasets for symbol are read from
func (s *FileSystemSource) DataDir(symbol string) string {
	return filepath.Join(s.basePath, symbol, s.dataDir)
}

// FindLatestDataset loads the lexicographically last JSON file for symbol
func (s *FileSystemSource) FindLatestDataset(ctx context.Context, symbol string) (*types.FinancialDataset, error) {
	dir := s.DataDir(symbol)
	op := logger.StartOperation(ctx, "datasource.find_latest", "symbol", symbol, "dir", dir)

	name, err := LatestFile(dir)
	if err != nil {
		op.EndWithError(err)
		return nil, err
	}

	path := filepath.Join(dir, name)
	dataset, err := LoadDataset(path)
	if err != nil {
		op.EndWithError(err)
		return nil, err
	}

	logger.Info(op.GetContext(), "Loaded dataset", "symbol", symbol, "path", path)
	op.End("file", name)
	return dataset, nil
}

// LatestFile picks the reverse-sorted first .json file name in dir.
// File names are expected to sort by date, e.g. 2024.03.31.json.
func LatestFile(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read data directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}
	if len(names) == 0 {
		return "", fmt.Errorf("%w in %s", ErrNoDataset, dir)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names[0], nil
}

// LoadDataset parses one fundamentals document
func LoadDataset(path string) (*types.FinancialDataset, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var dataset types.FinancialDataset
	if err := json.Unmarshal(b, &dataset); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	dataset.Source = path
	return &dataset, nil
}
