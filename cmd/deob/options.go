package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"deob/internal/driver"
)

// driverOptions merges deob.toml with the flags every pipeline command
// shares.
func driverOptions(cmd *cobra.Command) (driver.Options, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return driver.Options{}, err
	}
	maxDiag, err := maxDiagnostics(cmd)
	if err != nil {
		return driver.Options{}, err
	}
	opts := driver.Options{
		MaxDiagnostics: maxDiag,
		Normalize:      cfg.Normalize,
		Format:         cfg.Format,
		Query:          cfg.Query,
	}
	if cmd.Flags().Lookup("jobs") != nil {
		jobs, err := cmd.Flags().GetInt("jobs")
		if err != nil {
			return driver.Options{}, fmt.Errorf("failed to get jobs flag: %w", err)
		}
		opts.Jobs = jobs
	}
	return opts, nil
}
