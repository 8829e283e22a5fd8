package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"deob/internal/diag"
	"deob/internal/diagfmt"
	"deob/internal/observ"
	"deob/internal/source"
)

// applyColorMode resolves --color once for fatih/color and the renderers.
func applyColorMode(cmd *cobra.Command) error {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	m, err := parseSwitch("color", mode)
	if err != nil {
		return err
	}
	color.NoColor = !m.enabled(os.Stdout)
	return nil
}

func useColor(w io.Writer) bool {
	if color.NoColor {
		return false
	}
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}

func quiet(cmd *cobra.Command) bool {
	q, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	return q
}

func maxDiagnostics(cmd *cobra.Command) (int, error) {
	n, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return 0, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	return n, nil
}

// printDiagnostics writes bag to stderr when it holds errors or warnings.
func printDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) {
	if bag == nil || (!bag.HasErrors() && !bag.HasWarnings()) {
		return
	}
	out := cmd.ErrOrStderr()
	diagfmt.Pretty(out, bag, fs, diagfmt.PrettyOpts{
		Color:     useColor(out),
		Context:   2,
		ShowNotes: true,
	})
}

// printTimings writes the timer summary to stderr when --timings is set.
func printTimings(cmd *cobra.Command, timer *observ.Timer) {
	show, _ := cmd.Root().PersistentFlags().GetBool("timings")
	if !show || timer == nil {
		return
	}
	fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
}

func checkFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return fmt.Errorf("unknown format: %s (expected %s)", format, strings.Join(allowed, "|"))
}
