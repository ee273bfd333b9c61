package listing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"listing-search-workers/internal/common/config"
	"listing-search-workers/internal/common/errors"
	commonhttp "listing-search-workers/internal/common/http"
	"listing-search-workers/internal/common/logger"
	"listing-search-workers/internal/common/metrics"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	APIKeyHeader = "REPLIERS-API-KEY"
	listingsPath = "/listings"
	tracerName   = "listing-search-workers/internal/listing"
)

// listingKeys are checked in order for the listings array of a response.
var listingKeys = []string{"listings", "results", "items"}

// Client issues listing searches against the Repliers API.
type Client struct {
	http    *commonhttp.Client
	baseURL string
	apiKey  string
	logger  logger.Logger
	tracer  trace.Tracer
}

// Response is one decoded listing search response.
type Response struct {
	StatusCode int
	Raw        []byte
	Data       map[string]any
	Listings   []map[string]any
}

// NewClient builds a client with the configured base URL, key and request timeout.
func NewClient(cfg config.RepliersConfig, log logger.Logger) *Client {
	return NewClientWithHTTP(cfg, commonhttp.NewClient(cfg.RequestTimeout()), log)
}

// NewClientWithHTTP builds a client on a caller-supplied transport.
func NewClientWithHTTP(cfg config.RepliersConfig, hc *commonhttp.Client, log logger.Logger) *Client {
	return &Client{
		http:    hc,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		logger:  log.WithFields(map[string]interface{}{"component": "listing-client"}),
		tracer:  otel.Tracer(tracerName),
	}
}

// URL returns the search endpoint.
func (c *Client) URL() string {
	return c.baseURL + listingsPath
}

// Search POSTs an empty JSON body with params as the query string.
func (c *Client) Search(ctx context.Context, params QueryParams) (*Response, error) {
	ctx, span := c.tracer.Start(ctx, "repliers.listings.search",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", "POST"),
			attribute.String("http.url", c.URL()),
			attribute.Int("listing.params", len(params)),
		),
	)
	defer span.End()

	start := time.Now()
	resp, err := c.search(ctx, params)
	outcome := "ok"
	if err != nil {
		outcome = strings.ToLower(string(errors.As(err).Code))
		span.RecordError(err)
		span.SetStatus(codes.Error, errors.As(err).UserMessage())
	} else {
		span.SetAttributes(
			attribute.Int("http.status_code", resp.StatusCode),
			attribute.Int("listing.count", len(resp.Listings)),
		)
		metrics.ListingsReturned.Observe(float64(len(resp.Listings)))
	}
	metrics.ListingAPIRequests.WithLabelValues(outcome).Inc()
	metrics.ListingAPIDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())

	return resp, err
}

func (c *Client) search(ctx context.Context, params QueryParams) (*Response, error) {
	target := c.URL()
	if q := params.Encode(); q != "" {
		target += "?" + q
	}

	headers := map[string]string{
		APIKeyHeader:   c.apiKey,
		"Accept":       "application/json",
		"Content-Type": "application/json",
	}

	c.logger.Debug("sending listing search", map[string]interface{}{
		"url":    c.URL(),
		"params": len(params),
	})

	httpResp, err := c.http.PostJSON(ctx, target, headers, map[string]any{})
	if err != nil {
		c.logger.Warn("listing search request failed", map[string]interface{}{"error": err.Error()})
		return nil, errors.NewNetworkError(err)
	}

	if !httpResp.OK() {
		c.logger.Warn("listing search returned error status", map[string]interface{}{
			"statusCode": httpResp.StatusCode,
		})
		return nil, errors.NewHTTPError(httpResp.StatusCode, string(httpResp.Body))
	}

	data, err := decodeObject(httpResp.Body)
	if err != nil {
		return nil, errors.NewDecodeError(err)
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Raw:        httpResp.Body,
		Data:       data,
		Listings:   ExtractListings(data),
	}, nil
}

func decodeObject(body []byte) (map[string]any, error) {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected a JSON object, got %s", jsonKind(v))
	}
	return obj, nil
}

// ExtractListings picks the first of listings, results or items holding a non-empty value.
// If that value is not an array there are no listings. Non-object entries render as empty listings.
func ExtractListings(data map[string]any) []map[string]any {
	for _, key := range listingKeys {
		v, ok := data[key]
		if !ok || !truthy(v) {
			continue
		}
		items, isList := v.([]any)
		if !isList {
			return nil
		}
		out := make([]map[string]any, 0, len(items))
		for _, item := range items {
			obj, _ := item.(map[string]any)
			if obj == nil {
				obj = map[string]any{}
			}
			out = append(out, obj)
		}
		return out
	}
	return nil
}

// IndentJSON pretty-prints raw JSON with two-space indentation, keeping the upstream key order.
func IndentJSON(raw []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(raw), "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	}
	return true
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	}
	return fmt.Sprintf("%T", v)
}
