package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listing-search-workers/internal/listing"
)

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func emptyConfigFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app:\n  name: listing-search\n"), 0o600))
	return path
}

func TestParseFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		pairs   []string
		want    map[string]any
		wantErr string
	}{
		{
			name:  "scalars",
			pairs: []string{"city=Austin, TX", "minPrice=300000"},
			want:  map[string]any{"city": "Austin, TX", "minPrice": "300000"},
		},
		{
			name:  "list value",
			pairs: []string{"status=A|U"},
			want:  map[string]any{"status": []any{"A", "U"}},
		},
		{
			name:  "empty value kept",
			pairs: []string{"neighborhood="},
			want:  map[string]any{"neighborhood": ""},
		},
		{
			name:    "missing equals",
			pairs:   []string{"city"},
			wantErr: "expected key=value",
		},
		{
			name:    "unknown keys reported together",
			pairs:   []string{"town=Austin", "bedrooms=3"},
			wantErr: "unknown filter(s): bedrooms, town",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFilterArgs(tt.pairs)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFiltersCommand(t *testing.T) {
	out, _, err := runCLI(t, "filters")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, listing.FilterKeys(), lines)
}

func TestToolCommand(t *testing.T) {
	out, _, err := runCLI(t, "tool")
	require.NoError(t, err)

	var def map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &def))
	assert.Equal(t, listing.ToolName, def["name"])
	props := def["parameters"].(map[string]any)["properties"].(map[string]any)
	assert.Len(t, props, len(listing.FilterKeys()))
}

func TestSearchCommand(t *testing.T) {
	var gotKey, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("REPLIERS-API-KEY")
		gotQuery = r.URL.RawQuery
		_, _ = io.WriteString(w, `{"listings":[]}`)
	}))
	defer server.Close()

	out, stderr, err := runCLI(t, "search",
		"--config", emptyConfigFile(t),
		"--api-key", "cli-key",
		"--base-url", server.URL+"/",
		"--no-debug",
		"--events",
		"--filter", "city=Austin, TX",
		"--filter", "status=A|U",
	)
	require.NoError(t, err)

	assert.Equal(t, "cli-key", gotKey)
	assert.Contains(t, gotQuery, "city=Austin")
	assert.Contains(t, gotQuery, "state=TX")
	assert.Contains(t, gotQuery, "status=A%2CU")
	assert.True(t, strings.HasPrefix(out, "Listing search complete.\nNo listings found."))
	assert.Contains(t, stderr, "[status] Sending listing search request...")
	assert.Contains(t, stderr, "[status] Done")
}

func TestSearchCommand_MissingKeyPrintsMessage(t *testing.T) {
	t.Setenv("REPLIERS_API_KEY", "")
	out, _, err := runCLI(t, "search", "--config", emptyConfigFile(t), "--filter", "city=Austin")
	require.NoError(t, err)
	assert.Equal(t, "Repliers API key is not configured; set repliers.api_key first.\n", out)
}
