package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func noDefaults() Defaults {
	return Defaults{}
}

// ==========================
// Empty Value Stripping
// ==========================

func TestNormalize_StripsOnlyNilAndEmptyString(t *testing.T) {
	filters := FilterSet{
		MinPrice:     0,
		HasImages:    false,
		Fields:       []string{},
		Neighborhood: "",
		MaxPrice:     nil,
		SwimmingPool: "inground",
		MaxBedrooms:  3,
		StreetName:   "",
		Waterfront:   nil,
	}

	params, _ := Normalize(filters, noDefaults())

	assert.Equal(t, "0", params["minPrice"])
	assert.Equal(t, "false", params["hasImages"])
	v, ok := params["fields"]
	assert.True(t, ok, "empty list must be kept")
	assert.Equal(t, "", v)
	assert.Equal(t, "inground", params["swimmingPool"])
	assert.Equal(t, "3", params["maxBedrooms"])

	assert.NotContains(t, params, "neighborhood")
	assert.NotContains(t, params, "maxPrice")
	assert.NotContains(t, params, "streetName")
	assert.NotContains(t, params, "waterfront")
}

func TestNormalize_ListsAreCommaJoined(t *testing.T) {
	tests := []struct {
		name     string
		filters  FilterSet
		key      string
		expected string
	}{
		{"fields", FilterSet{Fields: []string{"mlsNumber", "price"}}, "fields", "mlsNumber,price"},
		{"searchFields", FilterSet{SearchFields: []any{"address.city", "details.style"}}, "searchFields", "address.city,details.style"},
		{"status list", FilterSet{Status: []any{"A", "U"}}, "status", "A,U"},
		{"numeric list", FilterSet{MLSNumber: []any{float64(101), float64(202)}}, "mlsNumber", "101,202"},
		{"array", FilterSet{Class: [2]string{"condo", "residential"}}, "class", "condo,residential"},
		{"scalar passthrough", FilterSet{SortBy: "updatedOnDesc"}, "sortBy", "updatedOnDesc"},
		{"float passthrough", FilterSet{Lat: 43.6532}, "lat", "43.6532"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, _ := Normalize(tt.filters, noDefaults())
			assert.Equal(t, tt.expected, params[tt.key])
		})
	}
}

// ==========================
// City / State Splitting
// ==========================

func TestNormalize_CityStateSplitting(t *testing.T) {
	tests := []struct {
		name          string
		filters       FilterSet
		expectedCity  string
		expectedState string
		hasState      bool
	}{
		{
			name:          "city with state",
			filters:       FilterSet{City: "Austin, TX"},
			expectedCity:  "Austin",
			expectedState: "TX",
			hasState:      true,
		},
		{
			name:          "explicit state wins",
			filters:       FilterSet{City: "Austin, TX", State: "CA"},
			expectedCity:  "Austin",
			expectedState: "CA",
			hasState:      true,
		},
		{
			name:          "empty left part keeps city, still fills state",
			filters:       FilterSet{City: ", TX"},
			expectedCity:  ", TX",
			expectedState: "TX",
			hasState:      true,
		},
		{
			name:         "trailing comma leaves state empty",
			filters:      FilterSet{City: "Austin,"},
			expectedCity: "Austin",
			hasState:     false,
		},
		{
			name:          "splits on first comma only",
			filters:       FilterSet{City: "Springfield, IL, USA"},
			expectedCity:  "Springfield",
			expectedState: "IL, USA",
			hasState:      true,
		},
		{
			name:         "no comma",
			filters:      FilterSet{City: "Miami"},
			expectedCity: "Miami",
			hasState:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, entry := Normalize(tt.filters, noDefaults())
			assert.Equal(t, tt.expectedCity, params["city"])
			assert.Equal(t, tt.expectedCity, entry.RawCity)

			state, ok := params["state"]
			assert.Equal(t, tt.hasState, ok)
			if tt.hasState {
				assert.Equal(t, tt.expectedState, state)
			}
		})
	}
}

func TestNormalize_FirstLocationFieldFillsState(t *testing.T) {
	filters := FilterSet{
		City:           "Toronto, ON",
		CityOrDistrict: "Ottawa, QC",
		AreaOrCity:     "Halifax, NS",
	}

	params, entry := Normalize(filters, noDefaults())

	assert.Equal(t, "Toronto", params["city"])
	assert.Equal(t, "Ottawa", params["cityOrDistrict"])
	assert.Equal(t, "Halifax", params["areaOrCity"])
	assert.Equal(t, "ON", params["state"])
	assert.Equal(t, "ON", entry.RawState)
	assert.Equal(t, "Ottawa", entry.RawCityOrDistrict)
	assert.Equal(t, "Halifax", entry.RawAreaOrCity)
}

func TestNormalize_NonStringLocationUntouched(t *testing.T) {
	params, _ := Normalize(FilterSet{City: []string{"Austin, TX", "Dallas"}}, noDefaults())

	assert.Equal(t, "Austin, TX,Dallas", params["city"])
	assert.NotContains(t, params, "state")
}

// ==========================
// Default Injection
// ==========================

func TestNormalize_DefaultsFillOnlyAbsentKeys(t *testing.T) {
	defaults := Defaults{BoardIDs: "1,2", Status: "A", ResultsPerPage: 20}

	t.Run("absent keys get defaults", func(t *testing.T) {
		params, _ := Normalize(FilterSet{}, defaults)
		assert.Equal(t, QueryParams{"boardId": "1,2", "status": "A", "resultsPerPage": "20"}, params)
	})

	t.Run("caller values win", func(t *testing.T) {
		params, _ := Normalize(FilterSet{BoardID: 7, Status: "U", ResultsPerPage: 5}, defaults)
		assert.Equal(t, "7", params["boardId"])
		assert.Equal(t, "U", params["status"])
		assert.Equal(t, "5", params["resultsPerPage"])
	})

	t.Run("empty string counts as absent", func(t *testing.T) {
		params, _ := Normalize(FilterSet{Status: ""}, defaults)
		assert.Equal(t, "A", params["status"])
	})

	t.Run("zero page size is kept", func(t *testing.T) {
		params, _ := Normalize(FilterSet{ResultsPerPage: 0}, defaults)
		assert.Equal(t, "0", params["resultsPerPage"])
	})

	t.Run("no other field is defaulted", func(t *testing.T) {
		params, _ := Normalize(FilterSet{}, defaults)
		assert.Len(t, params, 3)
	})

	t.Run("empty defaults inject nothing", func(t *testing.T) {
		params, _ := Normalize(FilterSet{}, noDefaults())
		assert.Empty(t, params)
	})
}

func TestQueryParams_Encode(t *testing.T) {
	params := QueryParams{"city": "Austin", "fields": "mlsNumber,price", "minPrice": "0"}

	assert.Equal(t, "city=Austin&fields=mlsNumber%2Cprice&minPrice=0", params.Encode())
}

// ==========================
// Filter Catalogue
// ==========================

func TestFilterKeys(t *testing.T) {
	keys := FilterKeys()

	require.Len(t, keys, 115)
	assert.Equal(t, "agent", keys[0])
	assert.Equal(t, "zoning", keys[len(keys)-1])
	assert.Contains(t, keys, "class")
	assert.Contains(t, keys, "boardId")
	assert.Contains(t, keys, "mlsNumber")

	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		assert.False(t, seen[k], "duplicate key %s", k)
		seen[k] = true
	}
}

func TestFilterSet_SetGetValues(t *testing.T) {
	var fs FilterSet
	require.NoError(t, fs.Set("minPrice", 100000))
	require.NoError(t, fs.Set("city", "Austin"))
	require.NoError(t, fs.Set("class", "condo"))

	assert.Equal(t, 100000, fs.MinPrice)
	assert.Equal(t, "condo", fs.Get("class"))
	assert.Nil(t, fs.Get("notAFilter"))

	values := fs.Values()
	require.Len(t, values, 3)
	assert.Equal(t, Filter{Key: "city", Value: "Austin"}, values[0])
	assert.Equal(t, Filter{Key: "class", Value: "condo"}, values[1])
	assert.Equal(t, Filter{Key: "minPrice", Value: 100000}, values[2])

	require.NoError(t, fs.Set("city", nil))
	assert.Nil(t, fs.City)

	err := fs.Set("bogus", 1)
	assert.Error(t, err)
}

func TestFilterSetFromMap(t *testing.T) {
	t.Run("known keys", func(t *testing.T) {
		fs, err := FilterSetFromMap(map[string]any{
			"city":     "Austin, TX",
			"minPrice": 0,
			"fields":   []any{"mlsNumber", "price"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Austin, TX", fs.City)
		assert.Equal(t, float64(0), fs.MinPrice)
		assert.Equal(t, []any{"mlsNumber", "price"}, fs.Fields)
	})

	t.Run("unknown key rejected", func(t *testing.T) {
		_, err := FilterSetFromMap(map[string]any{"cityy": "Austin"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid filter format")
	})

	t.Run("empty map", func(t *testing.T) {
		fs, err := FilterSetFromMap(nil)
		require.NoError(t, err)
		assert.Empty(t, fs.Values())
	})
}
