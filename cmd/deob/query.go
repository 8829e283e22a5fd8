package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"deob/internal/diagfmt"
	"deob/internal/driver"
	"deob/internal/observ"
	"deob/internal/selector"
)

func newQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query [flags] selector file.js|dir",
		Short: "Print the nodes a selector matches",
		Long: `Query runs a selector such as "CallExpression Literal[kind=number]" over
a file, or over every script of a directory, and prints each match with its
position and source text. Whitespace is the descendant combinator, '+' the
adjacent sibling combinator.`,
		Example: `  deob query 'Program CallExpression Literal' app.js
  deob query 'Literal[kind=number] + Literal[kind=number]' src/ --format json`,
		Args: cobra.ExactArgs(2),
		RunE: runQuery,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	cmd.Flags().Int("jobs", 0, "max parallel files for directories (0=auto)")
	cmd.Flags().Int("max-results", -1, "keep at most this many matches per file (0=unlimited, default from deob.toml)")
	return cmd
}

type queryFileJSON struct {
	Path string `json:"path"`
	diagfmt.MatchesOutput
	Error string `json:"error,omitempty"`
}

type queryDirJSON struct {
	Files []queryFileJSON `json:"files"`
	Count int             `json:"count"`
}

func runQuery(cmd *cobra.Command, args []string) error {
	outFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if err := checkFormat(outFormat, "pretty", "json"); err != nil {
		return err
	}
	q, err := selector.ParseQuery(args[0])
	if err != nil {
		return err
	}
	opts, err := driverOptions(cmd)
	if err != nil {
		return err
	}
	if limit, _ := cmd.Flags().GetInt("max-results"); limit >= 0 {
		opts.Query.MaxResults = limit
	}
	opts.Timer = observ.NewTimer()
	defer printTimings(cmd, opts.Timer)

	info, err := os.Stat(args[1])
	if err != nil {
		return err
	}
	var results []driver.QueryResult
	if info.IsDir() {
		results, err = driver.QueryDir(cmd.Context(), args[1], q, opts)
		if err != nil {
			return err
		}
	} else {
		res, err := driver.QueryFile(cmd.Context(), args[1], q, opts)
		if res == nil {
			return err
		}
		results = []driver.QueryResult{*res}
	}

	var failed []error
	for _, res := range results {
		if res.Err != nil {
			failed = append(failed, res.Err)
			if res.Parse != nil {
				printDiagnostics(cmd, res.Parse.Bag, res.Parse.FileSet)
			}
		}
	}

	out := cmd.OutOrStdout()
	if outFormat == "json" {
		payload := queryDirJSON{Files: []queryFileJSON{}}
		for _, res := range results {
			entry := queryFileJSON{Path: res.Path, MatchesOutput: diagfmt.MatchesOutput{Matches: []diagfmt.MatchJSON{}}}
			if res.Err != nil {
				entry.Error = res.Err.Error()
			} else {
				entry.MatchesOutput = diagfmt.BuildMatchesOutput(res.Parse.FileSet, res.Parse.Builder, res.Matches, diagfmt.JSONOpts{IncludePositions: true})
				entry.Count = res.Total
			}
			payload.Count += entry.Count
			payload.Files = append(payload.Files, entry)
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(payload); err != nil {
			return err
		}
	} else {
		total := 0
		for _, res := range results {
			if res.Err != nil {
				continue
			}
			total += res.Total
			err := diagfmt.Matches(out, res.Parse.FileSet, res.Parse.Builder, res.Matches, diagfmt.PrettyOpts{Color: useColor(out)})
			if err != nil {
				return err
			}
			if res.Total > len(res.Matches) && !quiet(cmd) {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %d more matches not shown\n", res.Path, res.Total-len(res.Matches))
			}
		}
		if !quiet(cmd) {
			fmt.Fprintf(cmd.ErrOrStderr(), "%d matches\n", total)
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("%d of %d files failed: %w", len(failed), len(results), failed[0])
	}
	return nil
}
