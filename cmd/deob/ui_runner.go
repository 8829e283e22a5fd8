package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"deob/internal/driver"
	"deob/internal/pipeline"
	"deob/internal/ui"
)

type normalizeOutcome struct {
	results []driver.NormalizeResult
	err     error
}

// runNormalizeWithUI runs NormalizeDir while a Bubble Tea view follows its
// progress events. The view exits when the run closes the channel.
func runNormalizeWithUI(ctx context.Context, title string, files []string, dir string, opts driver.Options) ([]driver.NormalizeResult, error) {
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan normalizeOutcome, 1)

	go func() {
		runOpts := opts
		runOpts.Progress = pipeline.ChannelSink{Ch: events}
		res, err := driver.NormalizeDir(ctx, dir, runOpts)
		outcomeCh <- normalizeOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
