package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"lumen/internal/pipeline"
	"lumen/internal/ui"
)

// runStagesWithUI runs the driver stages on a background goroutine, feeding
// progress events to a Bubble Tea model on this one.
func runStagesWithUI(title string, files []string, run func(sink pipeline.Sink) error) error {
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan error, 1)

	go func() {
		outcomeCh <- run(pipeline.ChannelSink{Ch: events})
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return uiErr
	}
	return outcome
}
