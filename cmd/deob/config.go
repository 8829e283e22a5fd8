package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"deob/internal/project"
)

// loadConfig returns the settings of --config, or of the deob.toml found
// above the working directory, or the defaults.
func loadConfig(cmd *cobra.Command) (project.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return project.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		m, err := project.LoadFile(path)
		if err != nil {
			return project.Config{}, err
		}
		return m.Config, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return project.Config{}, err
	}
	m, ok, err := project.Load(wd)
	if err != nil {
		return project.Config{}, err
	}
	if !ok {
		return project.Default(), nil
	}
	return m.Config, nil
}
