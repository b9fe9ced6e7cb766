package geonames

import (
	"strconv"
	"strings"
	"time"
)

// Upstream rows are tab-separated with positional columns. Trailing
// optional columns may be missing entirely, so fields beyond the
// guaranteed minimum are read through fields.get rather than indexed
// directly.
type fields []string

func (f fields) get(i int) string {
	if i < 0 || i >= len(f) {
		return ""
	}
	return f[i]
}

// ParsePostal parses the raw postal dataset text into records. Lines
// with a malformed mandatory field (empty country or postal code,
// non-numeric latitude/longitude) are skipped; the second return value
// counts them. Upstream data is third-party and not schema-guaranteed,
// so a bad line never aborts the whole parse.
func ParsePostal(text string) ([]PostalRecord, int) {
	var records []PostalRecord
	var skipped int

	for line := range strings.Lines(text) {
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			continue
		}
		rec, ok := parsePostalLine(fields(strings.Split(line, "\t")))
		if !ok {
			skipped++
			continue
		}
		records = append(records, rec)
	}

	return records, skipped
}

func parsePostalLine(f fields) (PostalRecord, bool) {
	rec := PostalRecord{
		CountryCode: f.get(0),
		PostalCode:  f.get(1),
		PlaceName:   f.get(2),
		AdminName1:  f.get(3),
		AdminCode1:  f.get(4),
		AdminName2:  f.get(5),
		AdminCode2:  f.get(6),
		AdminName3:  f.get(7),
		AdminCode3:  f.get(8),
	}
	if rec.CountryCode == "" || rec.PostalCode == "" {
		return PostalRecord{}, false
	}

	coord, ok := parseCoordinate(f.get(9), f.get(10))
	if !ok {
		return PostalRecord{}, false
	}
	rec.Coordinate = coord
	if coord == nil {
		// No estimable location upstream; the accuracy column is
		// meaningless for such rows.
		rec.Accuracy = AccuracyNone
	} else {
		rec.Accuracy = ParseAccuracy(f.get(11))
	}

	return rec, true
}

// ParseGazetteer parses the raw gazetteer dump text into records, with
// the same lenient skip policy as ParsePostal. Mandatory fields are
// the numeric id, the latitude/longitude pair, and the modification
// date when present; population, elevation and dem default to zero on
// bad input, matching their advisory role upstream.
func ParseGazetteer(text string) ([]PlaceRecord, int) {
	var records []PlaceRecord
	var skipped int

	for line := range strings.Lines(text) {
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			continue
		}
		rec, ok := parseGazetteerLine(fields(strings.Split(line, "\t")))
		if !ok {
			skipped++
			continue
		}
		records = append(records, rec)
	}

	return records, skipped
}

func parseGazetteerLine(f fields) (PlaceRecord, bool) {
	id, err := strconv.ParseInt(f.get(0), 10, 64)
	if err != nil {
		return PlaceRecord{}, false
	}

	coord, ok := parseCoordinate(f.get(4), f.get(5))
	if !ok {
		return PlaceRecord{}, false
	}

	var modified time.Time
	if raw := f.get(18); raw != "" {
		modified, err = time.Parse("2006-01-02", raw)
		if err != nil {
			return PlaceRecord{}, false
		}
	}

	return PlaceRecord{
		ID:                    id,
		Name:                  f.get(1),
		ASCIIName:             f.get(2),
		AlternateNames:        splitList(f.get(3)),
		Coordinate:            coord,
		FeatureClass:          f.get(6),
		FeatureCode:           f.get(7),
		CountryCode:           f.get(8),
		AlternateCountryCodes: splitList(f.get(9)),
		Admin1Code:            f.get(10),
		Admin2Code:            f.get(11),
		Admin3Code:            f.get(12),
		Admin4Code:            f.get(13),
		Population:            parseInt64(f.get(14)),
		Elevation:             parseInt64(f.get(15)),
		DEM:                   parseInt64(f.get(16)),
		Timezone:              f.get(17),
		ModifiedAt:            modified,
	}, true
}

// parseCoordinate parses a latitude/longitude column pair. Both empty
// means the row has no estimable location (nil, ok); a non-numeric
// value in either means the row is malformed (nil, !ok).
func parseCoordinate(latRaw, lonRaw string) (*Coordinate, bool) {
	if latRaw == "" && lonRaw == "" {
		return nil, true
	}
	lat, err := strconv.ParseFloat(latRaw, 64)
	if err != nil {
		return nil, false
	}
	lon, err := strconv.ParseFloat(lonRaw, 64)
	if err != nil {
		return nil, false
	}
	return &Coordinate{Latitude: lat, Longitude: lon}, true
}

// splitList splits a comma-separated upstream list column, preserving
// order. An empty column yields nil rather than a single empty entry.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

func parseInt64(raw string) int64 {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
