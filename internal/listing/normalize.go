package listing

import (
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"listing-search-workers/internal/common/config"
)

// QueryParams is the flat, scalar-valued query string sent upstream. It never holds empty values.
type QueryParams map[string]string

// Encode renders the parameters as a URL query string.
func (q QueryParams) Encode() string {
	values := make(url.Values, len(q))
	for k, v := range q {
		values.Set(k, v)
	}
	return values.Encode()
}

// Defaults are the values injected when a caller leaves boardId, status or resultsPerPage out.
type Defaults struct {
	BoardIDs       string
	Status         string
	ResultsPerPage int
}

// DefaultsFromConfig extracts the search defaults from the listing API settings.
func DefaultsFromConfig(cfg config.RepliersConfig) Defaults {
	return Defaults{
		BoardIDs:       cfg.DefaultBoardIDs,
		Status:         cfg.DefaultStatus,
		ResultsPerPage: cfg.DefaultResultsPerPage,
	}
}

// LocationEntry snapshots the location filters after city/state splitting.
type LocationEntry struct {
	RawCity           any `json:"raw_city"`
	RawAreaOrCity     any `json:"raw_areaOrCity"`
	RawCityOrDistrict any `json:"raw_cityOrDistrict"`
	RawState          any `json:"raw_state"`
}

// Normalize turns a FilterSet into the query parameters for one search.
func Normalize(filters FilterSet, defaults Defaults) (QueryParams, LocationEntry) {
	city, state := splitCityState(filters.City, filters.State)
	cityOrDistrict, state := splitCityState(filters.CityOrDistrict, state)
	areaOrCity, state := splitCityState(filters.AreaOrCity, state)

	filters.City = city
	filters.CityOrDistrict = cityOrDistrict
	filters.AreaOrCity = areaOrCity
	filters.State = state

	entry := LocationEntry{
		RawCity:           city,
		RawAreaOrCity:     areaOrCity,
		RawCityOrDistrict: cityOrDistrict,
		RawState:          state,
	}

	params := make(QueryParams)
	for _, f := range filters.Values() {
		if isEmpty(f.Value) {
			continue
		}
		params[f.Key] = paramString(f.Value)
	}

	if _, ok := params["boardId"]; !ok && defaults.BoardIDs != "" {
		params["boardId"] = defaults.BoardIDs
	}
	if _, ok := params["status"]; !ok && defaults.Status != "" {
		params["status"] = defaults.Status
	}
	if _, ok := params["resultsPerPage"]; !ok && defaults.ResultsPerPage > 0 {
		params["resultsPerPage"] = strconv.Itoa(defaults.ResultsPerPage)
	}

	return params, entry
}

// splitCityState splits "City, ST" on the first comma. The city is only replaced when the
// left side is non-empty; state is only filled when it was not supplied.
func splitCityState(location, state any) (any, any) {
	s, ok := location.(string)
	if !ok || !strings.Contains(s, ",") {
		return location, state
	}
	left, right, _ := strings.Cut(s, ",")
	cityClean := strings.TrimSpace(left)
	stateClean := strings.TrimSpace(right)

	var city any = s
	if cityClean != "" {
		city = cityClean
	}
	if isEmpty(state) {
		state = stateClean
	}
	return city, state
}

// isEmpty matches the values stripped from the query: nil and the empty string.
func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

// paramString renders a filter value as a query string value; lists are comma-joined.
func paramString(v any) string {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		if b, ok := v.([]byte); ok {
			return string(b)
		}
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = scalarString(rv.Index(i).Interface())
		}
		return strings.Join(parts, ",")
	}
	return scalarString(v)
}

func scalarString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case json.Number:
		return t.String()
	case fmt.Stringer:
		return t.String()
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Map, reflect.Struct:
		if b, err := json.Marshal(v); err == nil {
			return string(b)
		}
	}
	return fmt.Sprint(v)
}
