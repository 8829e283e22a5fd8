package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"deob/internal/trace"
	"deob/internal/version"
)

// session owns what PersistentPreRunE sets up. Cobra skips the post-run
// hook when a command fails, so main closes it too.
type session struct {
	cleanups []func()
}

func (s *session) onClose(fn func()) {
	if fn != nil {
		s.cleanups = append(s.cleanups, fn)
	}
}

// close runs the cleanups in reverse order of registration.
func (s *session) close() {
	for i := len(s.cleanups) - 1; i >= 0; i-- {
		s.cleanups[i]()
	}
	s.cleanups = nil
}

// newRootCmd builds the command tree with its global flags.
func newRootCmd(sess *session) *cobra.Command {
	root := &cobra.Command{
		Use:   "deob",
		Short: "Query and normalize JavaScript syntax trees",
		Long: `deob parses JavaScript, runs CSS-like selector queries over the syntax
tree and rewrites programs into A-normal form, one side effect per statement.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := applyColorMode(cmd); err != nil {
				return err
			}
			stopProf, err := setupProfiling(cmd)
			if err != nil {
				return err
			}
			sess.onClose(stopProf)
			stopTrace, err := setupTracing(cmd)
			if err != nil {
				return err
			}
			sess.onClose(stopTrace)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			sess.close()
		},
	}

	flags := root.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	flags.String("config", "", "path to deob.toml (default: search upwards from the working directory)")

	flags.String("trace", "", "write trace events to file (- for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	flags.Int("trace-ring-size", 4096, "events kept by the ring tracer")
	flags.Duration("trace-heartbeat", 0, "emit heartbeat events at this interval (0 disables)")

	flags.String("cpu-profile", "", "write a CPU profile to file")
	flags.String("mem-profile", "", "write a heap profile to file on exit")
	flags.String("runtime-trace", "", "write a Go execution trace to file")

	root.AddCommand(newTokenizeCmd())
	root.AddCommand(newParseCmd())
	root.AddCommand(newQueryCmd())
	root.AddCommand(newNormalizeCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// main executes the root command. A failed command exits with status 1,
// dumping the trace ring first when one was configured.
func main() {
	sess := &session{}
	root := newRootCmd(sess)
	err := root.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if ring, ok := trace.RingOf(trace.FromContext(root.Context())); ok {
			fmt.Fprintln(os.Stderr, "trace ring:")
			_ = ring.Dump(os.Stderr, trace.FormatText)
		}
	}
	sess.close()
	if err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is a terminal
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
