// Package geojson renders query results as GeoJSON for the CLI.
package geojson

import (
	"encoding/json"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	geojsonenc "github.com/twpayne/go-geom/encoding/geojson"

	"github.com/sells-group/geonames/pkg/geonames"
)

// Encode renders coordinate-bearing records as a GeoJSON
// FeatureCollection. Records without a coordinate are skipped; they
// have no geometry to carry.
func Encode[T geonames.Record](records []T) ([]byte, error) {
	fc := &geojsonenc.FeatureCollection{}

	for _, rec := range records {
		loc := rec.Location()
		if loc == nil {
			continue
		}

		f := &geojsonenc.Feature{
			Geometry:   geom.NewPointFlat(geom.XY, []float64{loc.Longitude, loc.Latitude}),
			Properties: properties(rec),
		}
		fc.Features = append(fc.Features, f)
	}

	data, err := json.Marshal(fc)
	if err != nil {
		return nil, eris.Wrap(err, "geojson: marshal feature collection")
	}
	return data, nil
}

// properties maps a record's identifying fields to GeoJSON feature
// properties.
func properties(rec geonames.Record) map[string]any {
	switch r := rec.(type) {
	case geonames.PostalRecord:
		return map[string]any{
			"kind":         "postal",
			"postal_code":  r.PostalCode,
			"place_name":   r.PlaceName,
			"country_code": r.CountryCode,
			"accuracy":     r.Accuracy.String(),
		}
	case geonames.PlaceRecord:
		return map[string]any{
			"kind":          "place",
			"id":            strconv.FormatInt(r.ID, 10),
			"name":          r.Name,
			"feature_class": r.FeatureClass,
			"feature_code":  r.FeatureCode,
			"country_code":  r.CountryCode,
		}
	default:
		return map[string]any{"key": rec.Key()}
	}
}
