package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile_Defaults(t *testing.T) {
	t.Setenv("REPLIERS_API_KEY", "")
	path := writeConfig(t, "camunda:\n  broker_address: localhost:26500\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "listing-search-workers", cfg.App.Name)
	assert.Equal(t, DefaultBaseURL, cfg.Repliers.BaseURL)
	assert.Equal(t, DefaultStatus, cfg.Repliers.DefaultStatus)
	assert.Equal(t, DefaultResultsPerPage, cfg.Repliers.DefaultResultsPerPage)
	assert.True(t, cfg.Repliers.DebugOutput())
	assert.Equal(t, 30*time.Second, cfg.Repliers.RequestTimeout())
	assert.Empty(t, cfg.Repliers.APIKey)
	assert.Equal(t, ":8080", cfg.Metrics.Address)

	wcfg := GetWorkerConfig(cfg, DefaultSearchListingsTaskKey)
	assert.True(t, wcfg.Enabled)
	assert.Equal(t, 5, wcfg.MaxJobsActive)
	assert.Equal(t, 45000, wcfg.Timeout)
}

func TestLoadFromFile_EnvExpansion(t *testing.T) {
	t.Setenv("REPLIERS_API_KEY", "secret-key")
	t.Setenv("TEST_BOARD_IDS", "1,2")
	path := writeConfig(t, `
repliers:
  api_key: ${REPLIERS_API_KEY}
  default_board_ids: ${TEST_BOARD_IDS}
  base_url: https://example.test/
  enable_debug_output: false
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "secret-key", cfg.Repliers.APIKey)
	assert.Equal(t, "1,2", cfg.Repliers.DefaultBoardIDs)
	assert.Equal(t, "https://example.test", cfg.Repliers.BaseURL)
	assert.False(t, cfg.Repliers.DebugOutput())
}

func TestLoadFromFile_UnsetPlaceholderIsEmpty(t *testing.T) {
	os.Unsetenv("TEST_UNSET_LISTING_KEY")
	t.Setenv("REPLIERS_API_KEY", "")
	path := writeConfig(t, "repliers:\n  api_key: ${TEST_UNSET_LISTING_KEY}\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.Repliers.APIKey)
}

func TestLoadFromFile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "non-http base url",
			body:    "repliers:\n  base_url: ftp://example.test\n",
			wantErr: "base_url",
		},
		{
			name:    "negative results per page",
			body:    "repliers:\n  default_results_per_page: -1\n",
			wantErr: "default_results_per_page",
		},
		{
			name:    "sns without topic",
			body:    "notifications:\n  sns:\n    enabled: true\n",
			wantErr: "topic_arn",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LISTING_NOTIFICATIONS_TOPIC_ARN", "")
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateForWorker(t *testing.T) {
	assert.Error(t, ValidateForWorker(&Config{}))
	assert.NoError(t, ValidateForWorker(&Config{Camunda: CamundaConfig{BrokerAddress: "zeebe:26500"}}))
}

func TestIsWorkerEnabled(t *testing.T) {
	cfg := &Config{Workers: map[string]WorkerConfig{"search-listings": {Enabled: false}}}
	assert.False(t, IsWorkerEnabled(cfg, "search-listings"))
	assert.True(t, IsWorkerEnabled(cfg, "other"))
}
