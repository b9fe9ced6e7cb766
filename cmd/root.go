package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/geonames/internal/cache"
	"github.com/sells-group/geonames/internal/config"
	"github.com/sells-group/geonames/internal/fetcher"
	"github.com/sells-group/geonames/pkg/geonames"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "geonames",
	Short: "Resolve between coordinates, postal codes and place names",
	Long:  "Loads per-country geonames.org datasets (cached on disk after first fetch) and answers nearest, key-lookup and within-radius queries over them.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// newLoader wires the loader from the configured collaborators.
func newLoader() *geonames.Loader {
	f := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent: cfg.Fetch.UserAgent,
		Timeout:   cfg.Fetch.Timeout(),
	})
	store := cache.NewStore(cfg.Cache.Dir)
	return geonames.NewLoader(f, store, geonames.Options{DisableCache: cfg.Cache.Disable})
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
