package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"management-quality/internal/types"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigFromFile(t *testing.T) {
	t.Setenv("MANAGEMENT_BASE_PATH", "")
	path := writeConfig(t, `
base_path: /data/evaluation
rule_policy: legacy
report:
  indent: 2
  console_format: json
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/evaluation", cfg.BasePath)
	assert.Equal(t, "FILESYSTEM", cfg.DataSource)
	assert.Equal(t, "core", cfg.DataDir)
	assert.Equal(t, "management", cfg.ReportDir)
	assert.Equal(t, types.PolicyLegacy, cfg.RulePolicy)
	assert.Equal(t, 10, cfg.WindowYears)
	assert.Equal(t, 2, cfg.Report.Indent)
	assert.Equal(t, "json", cfg.Report.ConsoleFormat)
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"), WithBasePath("/tmp/eval"))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/eval", cfg.BasePath)
	assert.Equal(t, types.PolicyCanonical, cfg.RulePolicy)
	assert.Equal(t, 4, cfg.Report.Indent)
	assert.Equal(t, "text", cfg.Report.ConsoleFormat)
}

func TestLoadConfigRequiresBasePath(t *testing.T) {
	t.Setenv("MANAGEMENT_BASE_PATH", "")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"), WithDataSource("mock"))
	require.NoError(t, err)
	assert.Equal(t, "MOCK", cfg.DataSource)
}

func TestLoadConfigEnvBasePath(t *testing.T) {
	t.Setenv("MANAGEMENT_BASE_PATH", "/from/env")
	path := writeConfig(t, "base_path: /from/file\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.BasePath)

	cfg, err = LoadConfig(path, WithBasePath("/from/flag"))
	require.NoError(t, err)
	assert.Equal(t, "/from/flag", cfg.BasePath)
}

func TestLoadConfigOverridesPolicy(t *testing.T) {
	path := writeConfig(t, "base_path: /x\nrule_policy: CANONICAL\n")

	cfg, err := LoadConfig(path, WithRulePolicy("legacy"))
	require.NoError(t, err)
	assert.Equal(t, types.PolicyLegacy, cfg.ManagementConfig().Policy)
	assert.Equal(t, 10, cfg.ManagementConfig().WindowYears)
}

func TestLoadConfigValidation(t *testing.T) {
	tests := map[string]string{
		"bad policy":      "base_path: /x\nrule_policy: YOLO\n",
		"bad window":      "base_path: /x\nwindow_years: 5\n",
		"bad format":      "base_path: /x\nreport:\n  console_format: xml\n",
		"bad indent":      "base_path: /x\nreport:\n  indent: 12\n",
		"bad data source": "base_path: /x\ndata_source: http\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigMalformedYAML(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "base_path: [unterminated\n"))
	assert.Error(t, err)
}
