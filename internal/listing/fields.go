package listing

// Path is a lookup path into a listing record, one key per nesting level.
type Path []string

// Fallback chains for every displayed listing field. The first path holding a
// present, non-null, non-empty value wins.
var (
	PricePaths     = []Path{{"listPrice"}, {"price"}, {"list_price"}}
	BedsPaths      = []Path{{"details", "numBedrooms"}, {"bedrooms"}, {"beds"}, {"bedroomsTotal"}}
	BathsPaths     = []Path{{"details", "numBathrooms"}, {"bathrooms"}, {"baths"}, {"bathroomsTotal"}}
	SqftPaths      = []Path{{"details", "sqft"}, {"sqft"}}
	YearPaths      = []Path{{"details", "yearBuilt"}, {"yearBuilt"}}
	StatusPaths    = []Path{{"standardStatus"}, {"status"}}
	ClassPaths     = []Path{{"class"}, {"propertyType"}}
	SubtypePaths   = []Path{{"type"}, {"style"}}
	DOMPaths       = []Path{{"simpleDaysOnMarket"}, {"daysOnMarket"}}
	HOAPaths       = []Path{{"details", "HOAFee"}, {"condominium", "fees", "maintenance"}}
	PetsPaths      = []Path{{"condominium", "pets"}}
	AmenitiesPaths = []Path{{"nearby", "amenities"}}
	LotPaths       = []Path{{"lot", "legalDescription"}, {"lot", "size"}}
	AcresPaths     = []Path{{"lot", "acres"}}
	MLSPaths       = []Path{{"mlsNumber"}}
	ListDatePaths  = []Path{{"listDate"}}
	BrokeragePaths = []Path{{"office", "brokerageName"}}
	PhotoPaths     = []Path{{"photoCount"}}
	LatitudePaths  = []Path{{"map", "latitude"}}
	LongitudePaths = []Path{{"map", "longitude"}}

	// Relative to the listing's address object.
	CityPaths         = []Path{{"city"}}
	RegionPaths       = []Path{{"state"}, {"province"}}
	PostalPaths       = []Path{{"postalCode"}, {"zip"}}
	NeighborhoodPaths = []Path{{"neighborhood"}}
)

// streetParts are joined, in order, into the street line of an address.
var streetParts = []Path{{"streetNumber"}, {"streetName"}, {"streetSuffix"}, {"unitNumber"}}

// Lookup walks one path through nested JSON objects.
func Lookup(record map[string]any, path Path) (any, bool) {
	var cur any = record
	for _, key := range path {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = obj[key]
		if !ok {
			return nil, false
		}
	}
	if isEmpty(cur) {
		return nil, false
	}
	return cur, true
}

// First returns the value of the first path in paths that is present.
func First(record map[string]any, paths []Path) (any, bool) {
	for _, p := range paths {
		if v, ok := Lookup(record, p); ok {
			return v, true
		}
	}
	return nil, false
}

// object returns the nested object at key, or an empty one.
func object(record map[string]any, key string) map[string]any {
	if obj, ok := record[key].(map[string]any); ok {
		return obj
	}
	return map[string]any{}
}
