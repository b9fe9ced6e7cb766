package geonames

import "math"

// Nearest returns the coordinate-bearing record closest to point, or
// nil if no record has a coordinate. Ties break to the first record
// attaining the minimum in iteration order.
func Nearest[T Record](point Coordinate, records []T) *T {
	var best *T
	bestDist := math.Inf(1)

	for i := range records {
		loc := records[i].Location()
		if loc == nil {
			continue
		}
		if d := Distance(point, *loc); d < bestDist {
			bestDist = d
			best = &records[i]
		}
	}

	return best
}

// NearestWithin is Nearest restricted to candidates inside the
// bounding box of thresholdKM around point. When every record lies
// outside the box the result is nil even though Nearest would have
// returned a (far) record: this answers "nearest, but only if within
// roughly thresholdKM", not "nearest, capped".
func NearestWithin[T Record](point Coordinate, records []T, thresholdKM float64) *T {
	box := NewBoundingBox(point, thresholdKM)

	var best *T
	bestDist := math.Inf(1)

	for i := range records {
		loc := records[i].Location()
		if loc == nil || !box.Contains(*loc) {
			continue
		}
		if d := Distance(point, *loc); d < bestDist {
			bestDist = d
			best = &records[i]
		}
	}

	return best
}

// LocateByKey returns the coordinate of the first record whose natural
// key matches exactly (postal code equality; for places the primary
// name, ASCII name, or any alternate name). Matching records without a
// coordinate are passed over. Callers needing every match should use
// WithinRadius-style collection instead.
func LocateByKey[T Record](key string, records []T) *Coordinate {
	for i := range records {
		if !records[i].MatchesKey(key) {
			continue
		}
		if loc := records[i].Location(); loc != nil {
			return loc
		}
	}
	return nil
}

// LocateByKeyFolded is LocateByKey with case- and diacritic-
// insensitive matching via FoldKey. "Malmo" locates "Malmö".
func LocateByKeyFolded[T Record](key string, records []T) *Coordinate {
	folded := FoldKey(key)
	for i := range records {
		if !records[i].MatchesKeyFolded(folded) {
			continue
		}
		if loc := records[i].Location(); loc != nil {
			return loc
		}
	}
	return nil
}

// WithinRadius returns every coordinate-bearing record within radiusKM
// of point, in input order (not sorted by distance). Records sharing a
// key are all returned. The bounding box is a pre-filter only; the
// exact haversine check decides admission, so the box never causes
// false negatives.
func WithinRadius[T Record](point Coordinate, radiusKM float64, records []T) []*T {
	box := NewBoundingBox(point, radiusKM)

	var out []*T
	for i := range records {
		loc := records[i].Location()
		if loc == nil || !box.Contains(*loc) {
			continue
		}
		if Distance(point, *loc) <= radiusKM {
			out = append(out, &records[i])
		}
	}

	return out
}

// KeysWithinRadius projects WithinRadius onto natural keys, removing
// immediately-adjacent repeats only. Upstream rows for one postal code
// are stored contiguously, so this collapses the common duplication —
// but it is adjacent dedup, not a set-uniqueness guarantee.
func KeysWithinRadius[T Record](point Coordinate, radiusKM float64, records []T) []string {
	matches := WithinRadius(point, radiusKM, records)

	var keys []string
	for _, m := range matches {
		k := (*m).Key()
		if n := len(keys); n > 0 && keys[n-1] == k {
			continue
		}
		keys = append(keys, k)
	}

	return keys
}

// Lookup returns a copy of the first record whose natural key matches
// exactly, whether or not it carries a coordinate.
func Lookup[T Record](key string, records []T) (T, bool) {
	for i := range records {
		if records[i].MatchesKey(key) {
			return records[i], true
		}
	}
	var zero T
	return zero, false
}
