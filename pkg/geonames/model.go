// Package geonames resolves between geographic coordinates and named
// locations (postal codes and gazetteer place names) using the bulk
// per-country datasets published at download.geonames.org.
//
// Callers load a record collection once via a Loader and then run
// stateless queries (Nearest, LocateByKey, WithinRadius, ...) over it.
// No spatial index is built; every query is a full scan with a cheap
// bounding-box pre-filter ahead of exact haversine distances.
package geonames

import "time"

// Coordinate is a WGS84 point in decimal degrees. It is a value type
// and is never mutated after construction.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Accuracy ranks how a record's coordinate was derived, from weakest
// to strongest evidence. The zero value means the record carries no
// location at all.
type Accuracy int

const (
	AccuracyNone Accuracy = iota
	AccuracyUnknown
	AccuracyEstimated
	AccuracySamePostalCode
	AccuracyGeonameID
	AccuracyCentroid
)

// ParseAccuracy maps the upstream accuracy column to an Accuracy.
// Unrecognized codes map to AccuracyUnknown; upstream data is not
// schema-guaranteed, so this never fails.
func ParseAccuracy(code string) Accuracy {
	switch code {
	case "0":
		return AccuracyNone
	case "1":
		return AccuracyEstimated
	case "3":
		return AccuracySamePostalCode
	case "4":
		return AccuracyGeonameID
	case "6":
		return AccuracyCentroid
	default:
		return AccuracyUnknown
	}
}

// String implements fmt.Stringer.
func (a Accuracy) String() string {
	switch a {
	case AccuracyNone:
		return "none"
	case AccuracyEstimated:
		return "estimated"
	case AccuracySamePostalCode:
		return "same_postal_code"
	case AccuracyGeonameID:
		return "geoname_id"
	case AccuracyCentroid:
		return "centroid"
	default:
		return "unknown"
	}
}

// PostalRecord is one row of the postal-code dataset for a country.
// CountryCode and PostalCode are always set; everything else is
// optional upstream. Coordinate is nil when the source row carries no
// estimable location — callers must filter on Location(), never on
// Accuracy alone.
type PostalRecord struct {
	CountryCode string      `json:"country_code"`
	PostalCode  string      `json:"postal_code"`
	PlaceName   string      `json:"place_name,omitempty"`
	AdminName1  string      `json:"admin_name1,omitempty"`
	AdminCode1  string      `json:"admin_code1,omitempty"`
	AdminName2  string      `json:"admin_name2,omitempty"`
	AdminCode2  string      `json:"admin_code2,omitempty"`
	AdminName3  string      `json:"admin_name3,omitempty"`
	AdminCode3  string      `json:"admin_code3,omitempty"`
	Coordinate  *Coordinate `json:"coordinate,omitempty"`
	Accuracy    Accuracy    `json:"accuracy"`
}

// Location implements Record.
func (r PostalRecord) Location() *Coordinate { return r.Coordinate }

// Key implements Record; the natural key of a postal record is its
// postal code. Postal codes are not unique across rows (one code can
// span several places) — first match wins on keyed lookups.
func (r PostalRecord) Key() string { return r.PostalCode }

// MatchesKey implements Record.
func (r PostalRecord) MatchesKey(key string) bool { return r.PostalCode == key }

// MatchesKeyFolded implements Record. The argument must already be
// folded with FoldKey.
func (r PostalRecord) MatchesKeyFolded(folded string) bool {
	return FoldKey(r.PostalCode) == folded
}

// PlaceRecord is one row of the gazetteer dataset: a named geographic
// point (city, hill, stream, ...). ID is assigned upstream and unique
// within one country's dataset; this package trusts the feed and does
// not enforce it.
type PlaceRecord struct {
	ID                    int64       `json:"id"`
	Name                  string      `json:"name"`
	ASCIIName             string      `json:"asciiname"`
	AlternateNames        []string    `json:"alternate_names,omitempty"`
	Coordinate            *Coordinate `json:"coordinate,omitempty"`
	FeatureClass          string      `json:"feature_class"`
	FeatureCode           string      `json:"feature_code"`
	CountryCode           string      `json:"country_code"`
	AlternateCountryCodes []string    `json:"alternate_country_codes,omitempty"`
	Admin1Code            string      `json:"admin1_code,omitempty"`
	Admin2Code            string      `json:"admin2_code,omitempty"`
	Admin3Code            string      `json:"admin3_code,omitempty"`
	Admin4Code            string      `json:"admin4_code,omitempty"`
	Population            int64       `json:"population"`
	Elevation             int64       `json:"elevation"`
	DEM                   int64       `json:"dem"`
	Timezone              string      `json:"timezone"`
	ModifiedAt            time.Time   `json:"modified_at"`
}

// Location implements Record.
func (r PlaceRecord) Location() *Coordinate { return r.Coordinate }

// Key implements Record; the natural key of a place is its primary name.
func (r PlaceRecord) Key() string { return r.Name }

// MatchesKey implements Record. A place matches on its primary name,
// its ASCII name, or any alternate name.
func (r PlaceRecord) MatchesKey(key string) bool {
	if r.Name == key || r.ASCIIName == key {
		return true
	}
	for _, alt := range r.AlternateNames {
		if alt == key {
			return true
		}
	}
	return false
}

// MatchesKeyFolded implements Record. The argument must already be
// folded with FoldKey.
func (r PlaceRecord) MatchesKeyFolded(folded string) bool {
	if FoldKey(r.Name) == folded || FoldKey(r.ASCIIName) == folded {
		return true
	}
	for _, alt := range r.AlternateNames {
		if FoldKey(alt) == folded {
			return true
		}
	}
	return false
}

// Record is the constraint shared by both dataset kinds. Queries
// borrow record slices for the duration of one call and never retain
// references past it.
type Record interface {
	Location() *Coordinate
	Key() string
	MatchesKey(key string) bool
	MatchesKeyFolded(folded string) bool
}
