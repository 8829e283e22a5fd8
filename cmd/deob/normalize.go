package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"deob/internal/driver"
	"deob/internal/names"
	"deob/internal/observ"
)

func newNormalizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "normalize [flags] file.js|dir|-",
		Short: "Rewrite JavaScript into A-normal form",
		Long: `Normalize hoists every call and other side effect into its own statement
bound to a fresh temporary, keeping evaluation order and short-circuiting.

A file (or - for stdin) is printed to stdout or to --output. A directory is
processed in parallel; each script is written next to its input as
name.anf.js, or under --output when given.`,
		Args: cobra.ExactArgs(1),
		RunE: runNormalize,
	}
	f := cmd.Flags()
	f.StringP("output", "o", "", "output file (single input) or directory (directory input)")
	f.String("wordlist", "", "draw temporaries from this file, one name per line")
	f.String("prefix", "", "prefix of numbered temporaries (default from deob.toml, _t)")
	f.Int("pool-size", -1, "number of numbered temporaries available (0=unbounded)")
	f.Int("indent", -1, "indent width of the printed program")
	f.Bool("tabs", false, "indent with tabs")
	f.Int("jobs", 0, "max parallel files for directories (0=auto)")
	f.Bool("no-cache", false, "do not read or write the normalization cache")
	f.String("ui", "auto", "progress UI for directories (auto|on|off)")
	return cmd
}

func runNormalize(cmd *cobra.Command, args []string) error {
	opts, err := driverOptions(cmd)
	if err != nil {
		return err
	}
	if err := applyNormalizeFlags(cmd, &opts); err != nil {
		return err
	}
	opts.Timer = observ.NewTimer()
	defer printTimings(cmd, opts.Timer)

	noCache, _ := cmd.Flags().GetBool("no-cache")
	if opts.Normalize.Cache && !noCache {
		cache, err := driver.OpenDiskCache("deob")
		if err != nil {
			if !quiet(cmd) {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: cache disabled: %v\n", err)
			}
		} else {
			opts.Cache = cache
		}
	}

	output, _ := cmd.Flags().GetString("output")
	target := args[0]
	if target == "-" {
		src, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return err
		}
		res, err := driver.NormalizeSource(cmd.Context(), "<stdin>", src, opts)
		return finishSingle(cmd, res, err, output)
	}

	info, err := os.Stat(target)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		res, err := driver.NormalizeFile(cmd.Context(), target, opts)
		return finishSingle(cmd, res, err, output)
	}

	opts.OutDir = output
	modeStr, _ := cmd.Flags().GetString("ui")
	mode, err := parseSwitch("ui", modeStr)
	if err != nil {
		return err
	}
	var results []driver.NormalizeResult
	if mode.enabled(os.Stdout) && !quiet(cmd) {
		files, err := driver.ListSourceFiles(target)
		if err != nil {
			return err
		}
		results, err = runNormalizeWithUI(cmd.Context(), "normalize "+target, files, target, opts)
		if err != nil {
			return err
		}
	} else {
		results, err = driver.NormalizeDir(cmd.Context(), target, opts)
		if err != nil {
			return err
		}
	}
	return reportDir(cmd, results)
}

// applyNormalizeFlags lets explicitly set flags override deob.toml.
func applyNormalizeFlags(cmd *cobra.Command, opts *driver.Options) error {
	f := cmd.Flags()
	if f.Changed("wordlist") {
		opts.Normalize.Wordlist, _ = f.GetString("wordlist")
	}
	if f.Changed("prefix") {
		prefix, _ := f.GetString("prefix")
		if !names.IsIdentifier(prefix) {
			return fmt.Errorf("--prefix %q does not start an identifier", prefix)
		}
		opts.Normalize.Prefix = prefix
		if !f.Changed("wordlist") {
			opts.Normalize.Wordlist = ""
		}
	}
	if n, _ := f.GetInt("pool-size"); n >= 0 {
		opts.Normalize.PoolSize = n
	}
	if n, _ := f.GetInt("indent"); n >= 0 {
		if n > 8 {
			return fmt.Errorf("--indent must be between 0 and 8")
		}
		opts.Format.Indent = n
	}
	if f.Changed("tabs") {
		opts.Format.Tabs, _ = f.GetBool("tabs")
	}
	return nil
}

func finishSingle(cmd *cobra.Command, res *driver.NormalizeResult, err error, output string) error {
	if res != nil && res.Parse != nil {
		printDiagnostics(cmd, res.Parse.Bag, res.Parse.FileSet)
	}
	if err != nil {
		return err
	}
	if output == "" {
		_, err := cmd.OutOrStdout().Write(res.Output)
		return err
	}
	return os.WriteFile(output, res.Output, 0o644)
}

func reportDir(cmd *cobra.Command, results []driver.NormalizeResult) error {
	var cached, failed int
	for _, res := range results {
		switch {
		case res.Err != nil:
			failed++
			if res.Parse != nil {
				printDiagnostics(cmd, res.Parse.Bag, res.Parse.FileSet)
			} else {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", res.Path, res.Err)
			}
		case res.Cached:
			cached++
		}
		if res.Err == nil && !quiet(cmd) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (%d temporaries)\n", res.Path, res.OutPath, res.Temps)
		}
	}
	if !quiet(cmd) {
		fmt.Fprintf(cmd.ErrOrStderr(), "normalized %d files: %d cached, %d failed\n", len(results)-failed, cached, failed)
	}
	if err := driver.JoinErrors(results); err != nil {
		return fmt.Errorf("%d of %d files failed: %w", failed, len(results), err)
	}
	return nil
}
