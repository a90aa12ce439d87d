package datasource

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `{
  "data": {
    "data": {
      "financials": {
        "annual": {
          "revenue": [1, 2, 3],
          "roic": [0.1, 0.2, 0.3],
          "current_ratio": [1.5, 1.6, 1.7],
          "debt_to_equity": [0.2, 0.3, 0.4],
          "period_end_date": ["2021-12-31", "2022-12-31", "2023-12-31"]
        }
      }
    }
  }
}`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLatestFilePicksLastName(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "2023.12.31.json"), "{}")
	writeFile(t, filepath.Join(dir, "2024.03.31.json"), "{}")
	writeFile(t, filepath.Join(dir, "2022.01.01.json"), "{}")
	writeFile(t, filepath.Join(dir, "2099.01.01.txt"), "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "2100.01.01.json"), 0755))

	name, err := LatestFile(dir)
	require.NoError(t, err)
	assert.Equal(t, "2024.03.31.json", name)
}

func TestLatestFileEmptyDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "notes.md"), "")

	_, err := LatestFile(dir)
	assert.True(t, errors.Is(err, ErrNoDataset))
}

func TestLatestFileMissingDir(t *testing.T) {
	_, err := LatestFile(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoDataset))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestFindLatestDataset(t *testing.T) {
	base := t.TempDir()
	writeFile(t, filepath.Join(base, "ACME", "core", "2023.01.01.json"), `{"data":{"data":{"financials":{"annual":{"revenue":[9]}}}}}`)
	writeFile(t, filepath.Join(base, "ACME", "core", "2024.01.01.json"), fixture)

	src := NewFileSystemSource(base, "")
	ds, err := src.FindLatestDataset(context.Background(), "ACME")
	require.NoError(t, err)

	annual := ds.Annual()
	assert.Equal(t, []float64{1, 2, 3}, annual.Revenue)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, annual.ROIC)
	assert.Equal(t, []float64{1.5, 1.6, 1.7}, annual.CurrentRatio)
	assert.Equal(t, []float64{0.2, 0.3, 0.4}, annual.DebtToEquity)
	assert.Equal(t, "2023-12-31", annual.PeriodEndDate[2])
	assert.Equal(t, filepath.Join(base, "ACME", "core", "2024.01.01.json"), ds.Source)
}

func TestFindLatestDatasetMalformed(t *testing.T) {
	base := t.TempDir()
	writeFile(t, filepath.Join(base, "ACME", "core", "2024.01.01.json"), "{not json")

	_, err := NewFileSystemSource(base, "core").FindLatestDataset(context.Background(), "ACME")
	assert.Error(t, err)
}

func TestFindLatestDatasetNoFiles(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "ACME", "core"), 0755))

	_, err := NewFileSystemSource(base, "core").FindLatestDataset(context.Background(), "ACME")
	assert.ErrorIs(t, err, ErrNoDataset)
}

func TestMockDataSource(t *testing.T) {
	ds, err := NewMockDataSource().FindLatestDataset(context.Background(), "XYZ")
	require.NoError(t, err)

	annual := ds.Annual()
	assert.Len(t, annual.Revenue, 12)
	assert.Len(t, annual.PeriodEndDate, 12)
	assert.Equal(t, "2024-12-31", annual.PeriodEndDate[11])
	assert.Equal(t, "mock://XYZ", ds.Source)

	short, err := NewShortHistoryMockDataSource(4).FindLatestDataset(context.Background(), "XYZ")
	require.NoError(t, err)
	assert.Len(t, short.Annual().Revenue, 4)
}
