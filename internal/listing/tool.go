package listing

import (
	"context"
	"fmt"

	"listing-search-workers/internal/common/errors"
)

// ToolName is the function name exposed to LLM tool calling.
const ToolName = "search_listing"

// ToolProperty describes one tool argument.
type ToolProperty struct {
	Type        []string `json:"type"`
	Description string   `json:"description,omitempty"`
}

// ToolSchema is the JSON schema of the tool arguments.
type ToolSchema struct {
	Required   []string                `json:"required"`
	Properties map[string]ToolProperty `json:"properties"`
}

// ExecuteFunc runs the tool. The returned string is always meant for the model,
// including on failure.
type ExecuteFunc func(ctx context.Context, args map[string]any) (string, error)

// Tool exposes listing search as an LLM-callable function.
type Tool struct {
	Name        string
	Description string
	Schema      ToolSchema
	Execute     ExecuteFunc
}

// argumentHints documents the filters a model reaches for most often.
var argumentHints = map[string]string{
	"city":           `City name; "City, ST" fills state when state is not given.`,
	"state":          "State or province code.",
	"minPrice":       "Minimum list price.",
	"maxPrice":       "Maximum list price.",
	"minBedrooms":    "Minimum bedroom count.",
	"minBaths":       "Minimum bathroom count.",
	"status":         `Listing status, e.g. "A" (active) or "U" (unavailable). Lists are comma-joined.`,
	"class":          "Property class, e.g. residential or condo.",
	"fields":         "Response fields to include; list or comma-separated string.",
	"sortBy":         "Sort order, e.g. updatedOnDesc.",
	"resultsPerPage": "Number of listings per page.",
	"boardId":        "MLS board id(s).",
}

// NewTool wires a Service into a Tool. Events from every call go to emitter.
func NewTool(svc *Service, emitter Emitter) *Tool {
	props := make(map[string]ToolProperty, len(filterKeys))
	for _, key := range filterKeys {
		props[key] = ToolProperty{
			Type:        []string{"string", "number", "integer", "boolean", "array"},
			Description: argumentHints[key],
		}
	}

	return &Tool{
		Name: ToolName,
		Description: fmt.Sprintf("Search real-estate listings through the Repliers API. Accepts any of %d "+
			"optional filters named exactly as the API expects and returns a text summary of the matching "+
			"listings followed by the full JSON response.", len(filterKeys)),
		Schema: ToolSchema{
			Required:   []string{},
			Properties: props,
		},
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			filters, err := FilterSetFromMap(args)
			if err != nil {
				msg := errors.As(err).UserMessage()
				if emitter != nil {
					emitter.Emit(ctx, ErrorEvent(msg))
				}
				return msg, nil
			}
			return svc.SearchListings(ctx, filters, emitter), nil
		},
	}
}
