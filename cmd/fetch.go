package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/geonames/pkg/geonames"
)

var (
	fetchCountry string
	fetchKind    string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch a dataset and warm the on-disk cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		country, err := geonames.ParseCountry(fetchCountry)
		if err != nil {
			return err
		}
		kind, err := geonames.ParseKind(fetchKind)
		if err != nil {
			return err
		}

		loader := newLoader()

		var count int
		if kind == geonames.KindGazetteer {
			records, err := loader.LoadGazetteer(cmd.Context(), country)
			if err != nil {
				return err
			}
			count = len(records)
		} else {
			records, err := loader.LoadPostal(cmd.Context(), country)
			if err != nil {
				return err
			}
			count = len(records)
		}

		zap.L().Info("dataset loaded",
			zap.Stringer("country", country),
			zap.Stringer("kind", kind),
			zap.Int("records", count),
		)
		return printJSON(map[string]any{
			"country": country.ID(),
			"kind":    kind.String(),
			"records": count,
		})
	},
}

func init() {
	fetchCmd.Flags().StringVar(&fetchCountry, "country", "", "country identifier, e.g. GB (required)")
	fetchCmd.Flags().StringVar(&fetchKind, "kind", "postal", "dataset kind: postal or gazetteer")
	_ = fetchCmd.MarkFlagRequired("country")
	rootCmd.AddCommand(fetchCmd)
}
