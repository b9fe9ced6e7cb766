package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var invalidateCmd = &cobra.Command{
	Use:   "invalidate",
	Short: "Remove all cached datasets",
	RunE: func(cmd *cobra.Command, args []string) error {
		loader := newLoader()
		if err := loader.InvalidateCache(); err != nil {
			return err
		}
		zap.L().Info("cache invalidated", zap.String("dir", cfg.Cache.Dir))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(invalidateCmd)
}
