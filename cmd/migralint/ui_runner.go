package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"migralint/internal/driver"
	"migralint/internal/ui"
)

type checkOutcome struct {
	run *driver.RunResult
	err error
}

// runCheckWithUI drives the analysis in a goroutine while a Bubble Tea
// program renders per-file progress from the driver's event stream.
func runCheckWithUI(ctx context.Context, title string, files []string, opts driver.Options) (*driver.RunResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		run, err := driver.CheckFiles(ctx, files, optsCopy)
		outcomeCh <- checkOutcome{run: run, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.run, uiErr
	}
	return outcome.run, outcome.err
}
