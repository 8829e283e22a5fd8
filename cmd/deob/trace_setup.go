package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"deob/internal/trace"
)

// flagReader collects the first error of a run of flag lookups.
type flagReader struct{ err error }

func readFlag[T any](r *flagReader, get func(string) (T, error), name string) T {
	var zero T
	if r.err != nil {
		return zero
	}
	v, err := get(name)
	if err != nil {
		r.err = fmt.Errorf("failed to get %s flag: %w", name, err)
		return zero
	}
	return v
}

// setupTracing builds the tracer described by the --trace* flags, opens the
// command span and installs both on the command context. The returned
// function ends the span and closes the tracer.
func setupTracing(cmd *cobra.Command) (func(), error) {
	flags := cmd.Root().PersistentFlags()
	var r flagReader
	cfg := trace.Config{
		OutputPath: readFlag(&r, flags.GetString, "trace"),
		RingSize:   readFlag(&r, flags.GetInt, "trace-ring-size"),
		Heartbeat:  readFlag(&r, flags.GetDuration, "trace-heartbeat"),
	}
	levelStr := readFlag(&r, flags.GetString, "trace-level")
	modeStr := readFlag(&r, flags.GetString, "trace-mode")
	if r.err != nil {
		return nil, r.err
	}

	var err error
	if cfg.Level, err = trace.ParseLevel(levelStr); err != nil {
		return nil, err
	}
	if cfg.Level == trace.LevelOff {
		if cfg.OutputPath == "" {
			setContext(cmd, trace.WithTracer(cmd.Context(), trace.Nop))
			return func() {}, nil
		}
		// an output file without a level means the user wants phases
		cfg.Level = trace.LevelPhase
	}
	if cfg.Mode, err = trace.ParseMode(modeStr); err != nil {
		return nil, err
	}

	tracer, err := trace.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	span := trace.Begin(tracer, trace.ScopeCommand, cmd.Name(), 0)
	setContext(cmd, trace.WithSpan(trace.WithTracer(cmd.Context(), tracer), span))

	heartbeat := trace.StartHeartbeat(tracer, cfg.Heartbeat)
	return func() {
		if heartbeat != nil {
			heartbeat.Stop()
		}
		span.End("")
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}, nil
}

// setContext installs ctx on cmd and the root so that main can reach the
// tracer after a failure.
func setContext(cmd *cobra.Command, ctx context.Context) {
	cmd.SetContext(ctx)
	cmd.Root().SetContext(ctx)
}
