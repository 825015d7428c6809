package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"saxwasm/internal/driver"
	"saxwasm/internal/ui"
)

type tokenizeOutcome struct {
	results []*driver.Result
	err     error
}

// runTokenizeWithUI tokenizes files while a progress view renders on
// stderr, leaving stdout to the event output.
func runTokenizeWithUI(ctx context.Context, title string, files []string, opts driver.Options, jobs int) ([]*driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan tokenizeOutcome, 1)

	go func() {
		o := opts
		o.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.TokenizeFiles(ctx, files, o, jobs)
		outcomeCh <- tokenizeOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithInput(nil))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
