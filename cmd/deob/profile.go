package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"deob/internal/prof"
)

// setupProfiling starts the profiles requested on the command line and
// returns the function that stops them.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	flags := cmd.Root().PersistentFlags()
	var r flagReader
	cfg := prof.Config{
		CPUPath:   readFlag(&r, flags.GetString, "cpu-profile"),
		MemPath:   readFlag(&r, flags.GetString, "mem-profile"),
		TracePath: readFlag(&r, flags.GetString, "runtime-trace"),
	}
	if r.err != nil {
		return nil, r.err
	}
	if !cfg.Enabled() {
		return func() {}, nil
	}
	s, err := prof.Start(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to start profiling: %w", err)
	}
	return func() {
		if err := s.Stop(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: profiling: %v\n", err)
		}
	}, nil
}
