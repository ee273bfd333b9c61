package listing

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	notAvailable   = "N/A"
	noListings     = "No listings found."
	unknownAddress = "Unknown address"
)

var currencyPrinter = message.NewPrinter(language.English)

// FormatListings renders one numbered block per listing. Images are never fetched; only
// their count is shown.
func FormatListings(listings []map[string]any) string {
	if len(listings) == 0 {
		return noListings
	}

	blocks := make([]string, 0, len(listings))
	for i, listing := range listings {
		blocks = append(blocks, formatListing(i+1, listing))
	}
	return strings.Join(blocks, "\n")
}

func formatListing(idx int, listing map[string]any) string {
	address := object(listing, "address")

	mls := "MLS N/A"
	if v, ok := First(listing, MLSPaths); ok {
		mls = display(v)
	}

	lines := []string{
		fmt.Sprintf("%d. %s | status: %s | class/type: %s / %s | price: %s | listDate: %s | DOM: %s",
			idx, mls,
			field(listing, StatusPaths),
			field(listing, ClassPaths),
			field(listing, SubtypePaths),
			currencyField(listing, PricePaths),
			field(listing, ListDatePaths),
			field(listing, DOMPaths),
		),
		fmt.Sprintf("   Address: %s | neighborhood: %s",
			FormatAddress(address),
			field(address, NeighborhoodPaths),
		),
		fmt.Sprintf("   Beds/Baths: %s/%s | sqft: %s | year: %s | HOA: %s | pets: %s",
			field(listing, BedsPaths),
			field(listing, BathsPaths),
			field(listing, SqftPaths),
			field(listing, YearPaths),
			currencyField(listing, HOAPaths),
			field(listing, PetsPaths),
		),
		fmt.Sprintf("   Lot: %s | acres: %s",
			field(listing, LotPaths),
			field(listing, AcresPaths),
		),
		fmt.Sprintf("   Amenities: %s", joinedField(listing, AmenitiesPaths)),
		fmt.Sprintf("   Brokerage: %s | Agents: %s",
			field(listing, BrokeragePaths),
			agentNames(listing),
		),
		fmt.Sprintf("   Estimate: %s", FormatEstimate(object(listing, "estimate"))),
		fmt.Sprintf("   Map: lat %s, long %s",
			field(listing, LatitudePaths),
			field(listing, LongitudePaths),
		),
		fmt.Sprintf("   Images: [placeholder; photoCount=%s]", field(listing, PhotoPaths)),
	}
	return strings.Join(lines, "\n")
}

// FormatAddress joins the street line and the city/region/postal segment. An address with
// neither renders as "Unknown address".
func FormatAddress(address map[string]any) string {
	street := make([]string, 0, len(streetParts))
	for _, p := range streetParts {
		if v, ok := Lookup(address, p); ok {
			street = append(street, display(v))
		}
	}
	line := strings.TrimSpace(strings.Join(street, " "))

	tail := make([]string, 0, 3)
	for _, paths := range [][]Path{CityPaths, RegionPaths, PostalPaths} {
		if v, ok := First(address, paths); ok {
			tail = append(tail, display(v))
		}
	}

	segments := make([]string, 0, 2)
	for _, s := range []string{line, strings.Join(tail, ", ")} {
		if s != "" {
			segments = append(segments, s)
		}
	}
	if len(segments) == 0 {
		return unknownAddress
	}
	return strings.Join(segments, ", ")
}

// FormatEstimate shows value, range and confidence when all four are numeric, the value
// alone when only it is numeric, and N/A otherwise.
func FormatEstimate(estimate map[string]any) string {
	value, ok := number(estimate["value"])
	if !ok {
		return notAvailable
	}
	low, lowOK := number(estimate["low"])
	high, highOK := number(estimate["high"])
	conf, confOK := number(estimate["confidence"])
	if lowOK && highOK && confOK {
		return fmt.Sprintf("%s (range %s-%s, conf %s)",
			Currency(value), Currency(low), Currency(high), strconv.FormatFloat(conf, 'f', 2, 64))
	}
	return Currency(value)
}

// Currency renders a dollar amount with thousands separators and no decimals.
func Currency(v float64) string {
	return "$" + currencyPrinter.Sprintf("%.0f", v)
}

func field(record map[string]any, paths []Path) string {
	if v, ok := First(record, paths); ok {
		return display(v)
	}
	return notAvailable
}

func currencyField(record map[string]any, paths []Path) string {
	v, ok := First(record, paths)
	if !ok {
		return notAvailable
	}
	if n, isNum := number(v); isNum {
		return Currency(n)
	}
	return display(v)
}

func joinedField(record map[string]any, paths []Path) string {
	v, ok := First(record, paths)
	if !ok {
		return notAvailable
	}
	items, isList := v.([]any)
	if !isList {
		return display(v)
	}
	if len(items) == 0 {
		return notAvailable
	}
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = display(item)
	}
	return strings.Join(parts, ", ")
}

func agentNames(listing map[string]any) string {
	agents, _ := listing["agents"].([]any)
	names := make([]string, 0, len(agents))
	for _, a := range agents {
		agent, ok := a.(map[string]any)
		if !ok {
			continue
		}
		if name, ok := Lookup(agent, Path{"name"}); ok {
			names = append(names, display(name))
		}
	}
	if len(names) == 0 {
		return notAvailable
	}
	return strings.Join(names, ", ")
}

// number reports whether v is a JSON number. Booleans are not numbers.
func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// display renders a present value the way it appears in the summary.
func display(v any) string {
	switch t := v.(type) {
	case nil:
		return notAvailable
	case string:
		return t
	case []any, map[string]any:
		if b, err := json.Marshal(t); err == nil {
			return string(b)
		}
	}
	return scalarString(v)
}
