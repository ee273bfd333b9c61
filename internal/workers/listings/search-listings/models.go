// internal/workers/listings/search-listings/models.go
package searchlistings

import "listing-search-workers/internal/listing"

type Input struct {
	Filters map[string]interface{} `json:"filters"`
}

type Output struct {
	SearchID     string          `json:"searchId"`
	ListingCount int             `json:"listingCount"`
	Summary      string          `json:"summary"`
	Output       string          `json:"output"`
	Events       []listing.Event `json:"events"`
}

// GetInputSchema is the JSON schema for job variables. Other process variables are allowed.
func GetInputSchema() map[string]interface{} {
	return map[string]interface{}{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type":    "object",
		"properties": map[string]interface{}{
			"filters": listing.FilterSchema(),
		},
	}
}

func GetOutputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":     "object",
		"required": []string{"searchId", "listingCount", "summary", "output", "events"},
		"properties": map[string]interface{}{
			"searchId":     map[string]interface{}{"type": "string"},
			"listingCount": map[string]interface{}{"type": "integer", "minimum": 0},
			"summary":      map[string]interface{}{"type": "string"},
			"output":       map[string]interface{}{"type": "string"},
			"events":       map[string]interface{}{"type": "array"},
		},
	}
}
