package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/geonames/pkg/geonames"
)

var (
	locateCountry string
	locateKind    string
	locateFold    bool
)

var locateCmd = &cobra.Command{
	Use:   "locate KEY",
	Short: "Find the coordinate of a postal code or place name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]

		country, err := geonames.ParseCountry(locateCountry)
		if err != nil {
			return err
		}
		kind, err := geonames.ParseKind(locateKind)
		if err != nil {
			return err
		}

		loader := newLoader()

		if kind == geonames.KindGazetteer {
			records, err := loader.LoadGazetteer(cmd.Context(), country)
			if err != nil {
				return err
			}
			return printLocation(key, records, locateFold)
		}

		records, err := loader.LoadPostal(cmd.Context(), country)
		if err != nil {
			return err
		}
		return printLocation(key, records, locateFold)
	},
}

func printLocation[T geonames.Record](key string, records []T, fold bool) error {
	var loc *geonames.Coordinate
	if fold {
		loc = geonames.LocateByKeyFolded(key, records)
	} else {
		loc = geonames.LocateByKey(key, records)
	}
	if loc == nil {
		return eris.Errorf("no location found for %q", key)
	}
	return printJSON(loc)
}

func init() {
	locateCmd.Flags().StringVar(&locateCountry, "country", "", "country identifier, e.g. GB (required)")
	locateCmd.Flags().StringVar(&locateKind, "kind", "postal", "dataset kind: postal or gazetteer")
	locateCmd.Flags().BoolVar(&locateFold, "fold", false, "match case- and diacritic-insensitively")
	_ = locateCmd.MarkFlagRequired("country")
	rootCmd.AddCommand(locateCmd)
}
