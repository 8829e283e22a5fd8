package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"deob/internal/diagfmt"
	"deob/internal/driver"
	"deob/internal/format"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] file.js",
		Short: "Parse a JavaScript file and print its syntax tree",
		Long: `Parse prints the syntax tree of a file (tree), the tree as JSON (json),
or the program printed back as JavaScript (js).`,
		Args: cobra.ExactArgs(1),
		RunE: runParse,
	}
	cmd.Flags().String("format", "tree", "output format (tree|json|js)")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	outFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if err := checkFormat(outFormat, "tree", "json", "js"); err != nil {
		return err
	}
	maxDiag, err := maxDiagnostics(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	res, err := driver.Parse(cmd.Context(), args[0], maxDiag)
	if res != nil {
		printDiagnostics(cmd, res.Bag, res.FileSet)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch outFormat {
	case "json":
		return diagfmt.TreeJSON(out, res.Builder, res.FileID, res.FileSet, diagfmt.JSONOpts{IncludePositions: true})
	case "js":
		_, err := out.Write(format.Program(res.Builder, res.FileID, format.Options{
			IndentWidth: cfg.Format.Indent,
			UseTabs:     cfg.Format.Tabs,
		}))
		return err
	default:
		return diagfmt.Tree(out, res.Builder, res.FileID, res.FileSet, diagfmt.PrettyOpts{Color: useColor(out)})
	}
}
