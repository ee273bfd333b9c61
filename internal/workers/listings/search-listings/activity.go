// internal/workers/listings/search-listings/activity.go
package searchlistings

import (
	"sort"

	"listing-search-workers/internal/common/errors"
	"listing-search-workers/pkg/registry"
)

const ActivityID = "listing.search.execute"

// Activity is the registry entry for this worker, built from the live schemas.
func Activity(cfg *Config) registry.Activity {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	codes := make([]string, 0, len(errors.BPMNErrorMapping))
	for _, code := range errors.BPMNErrorMapping {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	return registry.Activity{
		ID:                   ActivityID,
		DisplayName:          "Search Listings",
		Description:          "Searches real-estate listings through the Repliers API and returns a text summary with the full response.",
		Category:             "listings",
		Version:              "1.0.0",
		TaskType:             TaskType,
		ImplementationStatus: "completed",
		InputSchema:          GetInputSchema(),
		OutputSchema:         GetOutputSchema(),
		ErrorCodes:           codes,
		Timeout:              cfg.Timeout.String(),
		Retries:              errors.GetRetryCount(errors.ErrCodeUnexpected),
		Workflows:            []string{},
		Tags:                 []string{"repliers", "real-estate", "search"},
	}
}
