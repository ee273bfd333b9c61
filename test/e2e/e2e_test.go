// test/e2e/e2e_test.go
package e2e

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"listing-search-workers/internal/common/camunda"
	"listing-search-workers/internal/common/config"
	"listing-search-workers/internal/common/logger"
	sl "listing-search-workers/internal/workers/listings/search-listings"
)

const processID = "listing-search-process"

// zeebeAddress returns the broker under test. The suite is skipped without one.
func zeebeAddress(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping E2E tests in short mode")
	}
	addr := os.Getenv("E2E_ZEEBE_ADDRESS")
	if addr == "" {
		t.Skip("E2E_ZEEBE_ADDRESS not set")
	}
	return addr
}

func startWorker(t *testing.T, client zbc.Client, apiKey, baseURL string) {
	t.Helper()
	debug := false
	cfg := &sl.Config{
		Enabled:       true,
		MaxJobsActive: 2,
		Timeout:       20 * time.Second,
		Repliers: config.RepliersConfig{
			APIKey:                apiKey,
			BaseURL:               baseURL,
			DefaultStatus:         config.DefaultStatus,
			DefaultResultsPerPage: config.DefaultResultsPerPage,
			EnableDebugOutput:     &debug,
			Timeout:               5000,
		},
	}

	handler, err := sl.NewHandler(sl.HandlerOptions{Config: cfg, Logger: logger.NewTestLogger(t)})
	require.NoError(t, err)

	w := camunda.NewWorker(client, config.WorkerConfig{Enabled: true, MaxJobsActive: 2, Timeout: 20000}, handler, zaptest.NewLogger(t))
	require.NotNil(t, w)
	t.Cleanup(w.Stop)
}

func deployProcess(t *testing.T, client zbc.Client) {
	t.Helper()
	definition, err := os.ReadFile("testdata/listing-search.bpmn")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	_, err = client.NewDeployResourceCommand().AddResource(definition, "listing-search.bpmn").Send(ctx)
	require.NoError(t, err, "deploy listing-search.bpmn")
}

func runInstance(t *testing.T, client zbc.Client, vars map[string]interface{}) map[string]interface{} {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cmd, err := client.NewCreateInstanceCommand().BPMNProcessId(processID).LatestVersion().VariablesFromMap(vars)
	require.NoError(t, err)

	result, err := cmd.WithResult().Send(ctx)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(result.GetVariables()), &out))
	return out
}

func TestSearchListingsWorkflow(t *testing.T) {
	addr := zeebeAddress(t)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("REPLIERS-API-KEY") != "e2e-key" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, "unauthorized")
			return
		}
		_, _ = io.WriteString(w, `{"listings":[{"mlsNumber":"E2E1","listPrice":425000,"address":{"city":"Denver","state":"CO"}}]}`)
	}))
	defer upstream.Close()

	client, err := zbc.NewClient(&zbc.ClientConfig{GatewayAddress: addr, UsePlaintextConnection: true})
	require.NoError(t, err)
	defer client.Close()

	deployProcess(t, client)
	startWorker(t, client, "e2e-key", upstream.URL)

	vars := runInstance(t, client, map[string]interface{}{
		"filters": map[string]interface{}{"city": "Denver, CO", "minPrice": 400000},
	})

	assert.Equal(t, float64(1), vars["listingCount"])
	assert.Contains(t, vars["summary"], "1. E2E1 |")
	assert.NotEmpty(t, vars["searchId"])
	events, ok := vars["events"].([]interface{})
	require.True(t, ok)
	assert.Len(t, events, 3)
}

func TestSearchListingsWorkflow_UpstreamErrorIsCaught(t *testing.T) {
	addr := zeebeAddress(t)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, "maintenance")
	}))
	defer upstream.Close()

	client, err := zbc.NewClient(&zbc.ClientConfig{GatewayAddress: addr, UsePlaintextConnection: true})
	require.NoError(t, err)
	defer client.Close()

	deployProcess(t, client)
	startWorker(t, client, "e2e-key", upstream.URL)

	// the boundary error event ends the instance instead of raising an incident
	vars := runInstance(t, client, map[string]interface{}{"filters": map[string]interface{}{}})
	assert.NotContains(t, vars, "summary")
}
