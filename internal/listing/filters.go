package listing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"listing-search-workers/internal/common/errors"
)

// FilterSet carries every filter the listing API understands. The json tag is the verbatim
// upstream parameter name. A nil field is "not supplied"; any scalar or slice value is passed through.
type FilterSet struct {
	Agent                        any `json:"agent,omitempty"`
	Aggregates                   any `json:"aggregates,omitempty"`
	AggregateStatistics          any `json:"aggregateStatistics,omitempty"`
	Amenities                    any `json:"amenities,omitempty"`
	AmenitiesOperator            any `json:"amenitiesOperator,omitempty"`
	Area                         any `json:"area,omitempty"`
	AreaOrCity                   any `json:"areaOrCity,omitempty"`
	Balcony                      any `json:"balcony,omitempty"`
	Basement                     any `json:"basement,omitempty"`
	BoardID                      any `json:"boardId,omitempty"`
	Brokerage                    any `json:"brokerage,omitempty"`
	BusinessSubType              any `json:"businessSubType,omitempty"`
	BusinessType                 any `json:"businessType,omitempty"`
	City                         any `json:"city,omitempty"`
	CityOrDistrict               any `json:"cityOrDistrict,omitempty"`
	Class                        any `json:"class,omitempty"`
	Cluster                      any `json:"cluster,omitempty"`
	ClusterFields                any `json:"clusterFields,omitempty"`
	ClusterLimit                 any `json:"clusterLimit,omitempty"`
	ClusterPrecision             any `json:"clusterPrecision,omitempty"`
	ClusterStatistics            any `json:"clusterStatistics,omitempty"`
	CoverImage                   any `json:"coverImage,omitempty"`
	Den                          any `json:"den,omitempty"`
	DisplayAddressOnInternet     any `json:"displayAddressOnInternet,omitempty"`
	DisplayInternetEntireListing any `json:"displayInternetEntireListing,omitempty"`
	DisplayPublic                any `json:"displayPublic,omitempty"`
	District                     any `json:"district,omitempty"`
	Driveway                     any `json:"driveway,omitempty"`
	ExteriorConstruction         any `json:"exteriorConstruction,omitempty"`
	Fields                       any `json:"fields,omitempty"`
	Garage                       any `json:"garage,omitempty"`
	HasAgents                    any `json:"hasAgents,omitempty"`
	HasImages                    any `json:"hasImages,omitempty"`
	Heating                      any `json:"heating,omitempty"`
	LastStatus                   any `json:"lastStatus,omitempty"`
	Lat                          any `json:"lat,omitempty"`
	ListDate                     any `json:"listDate,omitempty"`
	Listings                     any `json:"listings,omitempty"`
	Locker                       any `json:"locker,omitempty"`
	Long                         any `json:"long,omitempty"`
	Map                          any `json:"map,omitempty"`
	MapOperator                  any `json:"mapOperator,omitempty"`
	MaxBaths                     any `json:"maxBaths,omitempty"`
	MaxBedrooms                  any `json:"maxBedrooms,omitempty"`
	MaxBedroomsPlus              any `json:"maxBedroomsPlus,omitempty"`
	MaxBedroomsTotal             any `json:"maxBedroomsTotal,omitempty"`
	MaxKitchens                  any `json:"maxKitchens,omitempty"`
	MaxListDate                  any `json:"maxListDate,omitempty"`
	MaxLotSizeSqft               any `json:"maxLotSizeSqft,omitempty"`
	MaxMaintenanceFee            any `json:"maxMaintenanceFee,omitempty"`
	MaxOpenHouseDate             any `json:"maxOpenHouseDate,omitempty"`
	MaxParkingSpaces             any `json:"maxParkingSpaces,omitempty"`
	MaxPrice                     any `json:"maxPrice,omitempty"`
	MaxRepliersUpdatedOn         any `json:"maxRepliersUpdatedOn,omitempty"`
	MaxSoldDate                  any `json:"maxSoldDate,omitempty"`
	MaxSoldPrice                 any `json:"maxSoldPrice,omitempty"`
	MaxStreetNumber              any `json:"maxStreetNumber,omitempty"`
	MaxSqft                      any `json:"maxSqft,omitempty"`
	MaxTaxes                     any `json:"maxTaxes,omitempty"`
	MaxUnavailableDate           any `json:"maxUnavailableDate,omitempty"`
	MaxUpdatedOn                 any `json:"maxUpdatedOn,omitempty"`
	MaxYearBuilt                 any `json:"maxYearBuilt,omitempty"`
	MinBaths                     any `json:"minBaths,omitempty"`
	MinBedrooms                  any `json:"minBedrooms,omitempty"`
	MinBedroomsPlus              any `json:"minBedroomsPlus,omitempty"`
	MinBedroomsTotal             any `json:"minBedroomsTotal,omitempty"`
	MinGarageSpaces              any `json:"minGarageSpaces,omitempty"`
	MinKitchens                  any `json:"minKitchens,omitempty"`
	MinListDate                  any `json:"minListDate,omitempty"`
	MinLotSizeSqft               any `json:"minLotSizeSqft,omitempty"`
	MinOpenHouseDate             any `json:"minOpenHouseDate,omitempty"`
	MinParkingSpaces             any `json:"minParkingSpaces,omitempty"`
	MinPrice                     any `json:"minPrice,omitempty"`
	MinRepliersUpdatedOn         any `json:"minRepliersUpdatedOn,omitempty"`
	MinSoldDate                  any `json:"minSoldDate,omitempty"`
	MinSoldPrice                 any `json:"minSoldPrice,omitempty"`
	MinSqft                      any `json:"minSqft,omitempty"`
	MinStreetNumber              any `json:"minStreetNumber,omitempty"`
	MinTaxes                     any `json:"minTaxes,omitempty"`
	MinUnavailableDate           any `json:"minUnavailableDate,omitempty"`
	MinUpdatedOn                 any `json:"minUpdatedOn,omitempty"`
	MinYearBuilt                 any `json:"minYearBuilt,omitempty"`
	MLSNumber                    any `json:"mlsNumber,omitempty"`
	Neighborhood                 any `json:"neighborhood,omitempty"`
	OfficeID                     any `json:"officeId,omitempty"`
	Operator                     any `json:"operator,omitempty"`
	PageNum                      any `json:"pageNum,omitempty"`
	PropertyType                 any `json:"propertyType,omitempty"`
	PropertyTypeOrStyle          any `json:"propertyTypeOrStyle,omitempty"`
	Radius                       any `json:"radius,omitempty"`
	ResultsPerPage               any `json:"resultsPerPage,omitempty"`
	Search                       any `json:"search,omitempty"`
	SearchFields                 any `json:"searchFields,omitempty"`
	SortBy                       any `json:"sortBy,omitempty"`
	Sqft                         any `json:"sqft,omitempty"`
	Statistics                   any `json:"statistics,omitempty"`
	StandardStatus               any `json:"standardStatus,omitempty"`
	Status                       any `json:"status,omitempty"`
	StreetDirection              any `json:"streetDirection,omitempty"`
	StreetName                   any `json:"streetName,omitempty"`
	StreetNumber                 any `json:"streetNumber,omitempty"`
	StreetSuffix                 any `json:"streetSuffix,omitempty"`
	Style                        any `json:"style,omitempty"`
	SwimmingPool                 any `json:"swimmingPool,omitempty"`
	Type                         any `json:"type,omitempty"`
	UnitNumber                   any `json:"unitNumber,omitempty"`
	UpdatedOn                    any `json:"updatedOn,omitempty"`
	WaterSource                  any `json:"waterSource,omitempty"`
	RepliersUpdatedOn            any `json:"repliersUpdatedOn,omitempty"`
	Sewer                        any `json:"sewer,omitempty"`
	State                        any `json:"state,omitempty"`
	Waterfront                   any `json:"waterfront,omitempty"`
	YearBuilt                    any `json:"yearBuilt,omitempty"`
	Zip                          any `json:"zip,omitempty"`
	Zoning                       any `json:"zoning,omitempty"`
}

// Filter is one supplied filter in catalogue order.
type Filter struct {
	Key   string
	Value any
}

var (
	filterKeys  []string
	filterIndex map[string]int
)

func init() {
	t := reflect.TypeOf(FilterSet{})
	filterKeys = make([]string, 0, t.NumField())
	filterIndex = make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		key, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		filterKeys = append(filterKeys, key)
		filterIndex[key] = i
	}
}

// FilterKeys returns the recognized filter names in catalogue order.
func FilterKeys() []string {
	out := make([]string, len(filterKeys))
	copy(out, filterKeys)
	return out
}

// IsFilterKey reports whether key is a recognized filter name.
func IsFilterKey(key string) bool {
	_, ok := filterIndex[key]
	return ok
}

// Get returns the value supplied for key, or nil.
func (f *FilterSet) Get(key string) any {
	i, ok := filterIndex[key]
	if !ok {
		return nil
	}
	return reflect.ValueOf(f).Elem().Field(i).Interface()
}

// Set assigns value to the filter named key.
func (f *FilterSet) Set(key string, value any) error {
	i, ok := filterIndex[key]
	if !ok {
		return errors.NewInvalidFilterFormatError(fmt.Sprintf("unknown filter %q", key))
	}
	field := reflect.ValueOf(f).Elem().Field(i)
	if value == nil {
		field.Set(reflect.Zero(field.Type()))
		return nil
	}
	field.Set(reflect.ValueOf(value))
	return nil
}

// Values returns every non-nil filter in catalogue order.
func (f FilterSet) Values() []Filter {
	v := reflect.ValueOf(f)
	out := make([]Filter, 0, 16)
	for i, key := range filterKeys {
		val := v.Field(i).Interface()
		if val == nil {
			continue
		}
		out = append(out, Filter{Key: key, Value: val})
	}
	return out
}

// FilterSetFromMap builds a FilterSet from loosely typed input such as job variables
// or tool-call arguments. Unknown keys are rejected.
func FilterSetFromMap(m map[string]any) (FilterSet, error) {
	var fs FilterSet
	if len(m) == 0 {
		return fs, nil
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return fs, errors.NewInvalidFilterFormatError(err.Error())
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fs); err != nil {
		return fs, errors.NewInvalidFilterFormatError(err.Error())
	}
	return fs, nil
}

// FilterSchema returns the JSON schema accepted for a filter object: every key optional,
// each value a scalar or an array of scalars.
func FilterSchema() map[string]interface{} {
	scalar := []string{"string", "number", "integer", "boolean"}
	props := make(map[string]interface{}, len(filterKeys))
	for _, key := range filterKeys {
		props[key] = map[string]interface{}{
			"type":  append([]string{"array", "null"}, scalar...),
			"items": map[string]interface{}{"type": append([]string{"null"}, scalar...)},
		}
	}
	return map[string]interface{}{
		"$schema":              "http://json-schema.org/draft-07/schema#",
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	}
}
