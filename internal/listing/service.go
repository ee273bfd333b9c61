package listing

import (
	"context"
	"encoding/json"
	"fmt"

	"listing-search-workers/internal/common/config"
	"listing-search-workers/internal/common/errors"
	"listing-search-workers/internal/common/logger"

	"github.com/google/uuid"
)

const (
	statusSending = "Sending listing search request..."
	statusDone    = "Done"
)

// Service runs listing searches: normalize, send, parse, format.
type Service struct {
	cfg    config.RepliersConfig
	client *Client
	logger logger.Logger
}

// SearchResult is everything one successful search produced.
type SearchResult struct {
	SearchID string
	URL      string
	Params   QueryParams
	Entry    LocationEntry
	Response *Response
	Summary  string
	Output   string
}

func NewService(cfg config.RepliersConfig, log logger.Logger) *Service {
	return NewServiceWithClient(cfg, NewClient(cfg, log), log)
}

func NewServiceWithClient(cfg config.RepliersConfig, client *Client, log logger.Logger) *Service {
	return &Service{
		cfg:    cfg,
		client: client,
		logger: log.WithFields(map[string]interface{}{"component": "listing-search"}),
	}
}

// SearchListings runs one search and always returns a string: the formatted output on
// success, or the error message on failure. A nil emitter is allowed.
func (s *Service) SearchListings(ctx context.Context, filters FilterSet, emitter Emitter) string {
	result, err := s.Search(ctx, filters, emitter)
	if err != nil {
		return errors.As(err).UserMessage()
	}
	return result.Output
}

// Search runs one search. Every failure is emitted as an error event and returned as a
// *errors.StandardError; panics become UNEXPECTED_ERROR.
func (s *Service) Search(ctx context.Context, filters FilterSet, emitter Emitter) (result *SearchResult, err error) {
	if emitter == nil {
		emitter = NopEmitter{}
	}

	searchID := uuid.NewString()
	ctx = WithSearchID(ctx, searchID)
	log := s.logger.WithFields(map[string]interface{}{"searchId": searchID})

	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = errors.NewUnexpectedError(fmt.Errorf("%v", r))
		}
		if err != nil {
			stdErr := errors.As(err)
			err = stdErr
			log.Error("listing search failed", map[string]interface{}{
				"errorCode": string(stdErr.Code),
				"details":   stdErr.Details,
			})
			emitter.Emit(ctx, ErrorEvent(stdErr.UserMessage()))
		}
	}()

	if s.cfg.APIKey == "" {
		return nil, errors.NewConfigurationError("repliers.api_key is empty")
	}

	params, entry := Normalize(filters, DefaultsFromConfig(s.cfg))
	url := s.client.URL()

	var debug string
	if s.cfg.DebugOutput() {
		debug, err = debugBlock(url, params, entry)
		if err != nil {
			return nil, errors.NewUnexpectedError(err)
		}
	}

	emitter.Emit(ctx, StatusEvent(statusSending, false))
	log.Info("searching listings", map[string]interface{}{"params": len(params)})

	resp, err := s.client.Search(ctx, params)
	if err != nil {
		return nil, err
	}

	summary := FormatListings(resp.Listings)
	output := fmt.Sprintf("Listing search complete.\n%s\n\nFull response JSON:\n%s", summary, IndentJSON(resp.Raw))
	if debug != "" {
		output = fmt.Sprintf("Debug:\n%s\n\n", debug) + output
	}

	emitter.Emit(ctx, ResultEvent(output))
	emitter.Emit(ctx, StatusEvent(statusDone, true))

	log.Info("listing search complete", map[string]interface{}{"listings": len(resp.Listings)})

	return &SearchResult{
		SearchID: searchID,
		URL:      url,
		Params:   params,
		Entry:    entry,
		Response: resp,
		Summary:  summary,
		Output:   output,
	}, nil
}

func debugBlock(url string, params QueryParams, entry LocationEntry) (string, error) {
	b, err := json.MarshalIndent(struct {
		URL    string        `json:"url"`
		Params QueryParams   `json:"params"`
		Entry  LocationEntry `json:"entry"`
	}{url, params, entry}, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
