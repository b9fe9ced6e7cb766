package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/geonames/internal/geojson"
	"github.com/sells-group/geonames/pkg/geonames"
)

var (
	withinCountry string
	withinKind    string
	withinLat     float64
	withinLon     float64
	withinRadius  float64
	withinGeoJSON bool
	withinKeys    bool
)

var withinCmd = &cobra.Command{
	Use:   "within",
	Short: "List records within a radius of a coordinate",
	RunE: func(cmd *cobra.Command, args []string) error {
		country, err := geonames.ParseCountry(withinCountry)
		if err != nil {
			return err
		}
		point := geonames.Coordinate{Latitude: withinLat, Longitude: withinLon}
		loader := newLoader()

		if withinKind == "both" {
			// Load the two dataset kinds concurrently; they hit
			// different upstream archives.
			var postal []geonames.PostalRecord
			var places []geonames.PlaceRecord
			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				var err error
				postal, err = loader.LoadPostal(ctx, country)
				return err
			})
			g.Go(func() error {
				var err error
				places, err = loader.LoadGazetteer(ctx, country)
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}
			if err := printWithin(point, withinRadius, postal); err != nil {
				return err
			}
			return printWithin(point, withinRadius, places)
		}

		kind, err := geonames.ParseKind(withinKind)
		if err != nil {
			return err
		}
		if kind == geonames.KindGazetteer {
			records, err := loader.LoadGazetteer(cmd.Context(), country)
			if err != nil {
				return err
			}
			return printWithin(point, withinRadius, records)
		}

		records, err := loader.LoadPostal(cmd.Context(), country)
		if err != nil {
			return err
		}
		return printWithin(point, withinRadius, records)
	},
}

func printWithin[T geonames.Record](point geonames.Coordinate, radiusKM float64, records []T) error {
	if withinKeys {
		return printJSON(geonames.KeysWithinRadius(point, radiusKM, records))
	}

	matches := geonames.WithinRadius(point, radiusKM, records)
	out := make([]T, 0, len(matches))
	for _, m := range matches {
		out = append(out, *m)
	}

	if withinGeoJSON {
		data, err := geojson.Encode(out)
		if err != nil {
			return eris.Wrap(err, "encode geojson")
		}
		fmt.Fprintln(os.Stdout, string(data))
		return nil
	}
	return printJSON(out)
}

func init() {
	withinCmd.Flags().StringVar(&withinCountry, "country", "", "country identifier, e.g. GB (required)")
	withinCmd.Flags().StringVar(&withinKind, "kind", "postal", "dataset kind: postal, gazetteer or both")
	withinCmd.Flags().Float64Var(&withinLat, "lat", 0, "latitude in decimal degrees (required)")
	withinCmd.Flags().Float64Var(&withinLon, "lon", 0, "longitude in decimal degrees (required)")
	withinCmd.Flags().Float64Var(&withinRadius, "radius", 10, "radius in km")
	withinCmd.Flags().BoolVar(&withinGeoJSON, "geojson", false, "emit a GeoJSON FeatureCollection")
	withinCmd.Flags().BoolVar(&withinKeys, "keys", false, "emit just the natural keys (adjacent duplicates removed)")
	_ = withinCmd.MarkFlagRequired("country")
	_ = withinCmd.MarkFlagRequired("lat")
	_ = withinCmd.MarkFlagRequired("lon")
	rootCmd.AddCommand(withinCmd)
}
