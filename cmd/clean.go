/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>
*/
package cmd

import (
	"github.com/gnames/gn"
	"github.com/gnames/tebreak/internal/iocache"
	"github.com/gnames/tebreak/pkg/config"
	"github.com/spf13/cobra"
)

// getCleanCmd returns the clean command.
func getCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove cached null distributions",
		Long: `Remove null distributions cached by previous runs.

Cached distributions are reused only for identical inputs and settings,
cleaning is needed only to free disk space.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runClean()
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
}

func runClean() error {
	dir := config.NullModelCacheDir(cfg.HomeDir)
	cache, err := iocache.New(dir)
	if err != nil {
		return err
	}
	if err = cache.Clean(); err != nil {
		return err
	}
	gn.Info("Removed cached null distributions from <em>%s</em>", dir)
	return nil
}
