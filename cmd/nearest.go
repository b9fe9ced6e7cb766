package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/geonames/pkg/geonames"
)

var (
	nearestCountry   string
	nearestKind      string
	nearestLat       float64
	nearestLon       float64
	nearestThreshold float64
)

var nearestCmd = &cobra.Command{
	Use:   "nearest",
	Short: "Find the record nearest to a coordinate",
	RunE: func(cmd *cobra.Command, args []string) error {
		country, err := geonames.ParseCountry(nearestCountry)
		if err != nil {
			return err
		}
		kind, err := geonames.ParseKind(nearestKind)
		if err != nil {
			return err
		}

		loader := newLoader()
		point := geonames.Coordinate{Latitude: nearestLat, Longitude: nearestLon}

		if kind == geonames.KindGazetteer {
			records, err := loader.LoadGazetteer(cmd.Context(), country)
			if err != nil {
				return err
			}
			return printNearest(point, records, nearestThreshold)
		}

		records, err := loader.LoadPostal(cmd.Context(), country)
		if err != nil {
			return err
		}
		return printNearest(point, records, nearestThreshold)
	},
}

// printNearest runs the plain or bounded nearest query and prints the
// winning record.
func printNearest[T geonames.Record](point geonames.Coordinate, records []T, thresholdKM float64) error {
	var match *T
	if thresholdKM > 0 {
		match = geonames.NearestWithin(point, records, thresholdKM)
	} else {
		match = geonames.Nearest(point, records)
	}
	if match == nil {
		return eris.New("no record within reach")
	}
	return printJSON(*match)
}

func init() {
	nearestCmd.Flags().StringVar(&nearestCountry, "country", "", "country identifier, e.g. GB (required)")
	nearestCmd.Flags().StringVar(&nearestKind, "kind", "postal", "dataset kind: postal or gazetteer")
	nearestCmd.Flags().Float64Var(&nearestLat, "lat", 0, "latitude in decimal degrees (required)")
	nearestCmd.Flags().Float64Var(&nearestLon, "lon", 0, "longitude in decimal degrees (required)")
	nearestCmd.Flags().Float64Var(&nearestThreshold, "threshold", 0, "only accept matches within roughly this many km (0 = unbounded)")
	_ = nearestCmd.MarkFlagRequired("country")
	_ = nearestCmd.MarkFlagRequired("lat")
	_ = nearestCmd.MarkFlagRequired("lon")
	rootCmd.AddCommand(nearestCmd)
}
