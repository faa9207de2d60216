package main

import (
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/robmorgan/pulse/rhythm"
)

const (
	volumeStep      = 0.1
	coarseTempoJump = 10.0
)

type model struct {
	metronome *rhythm.Metronome
	snapshot  rhythm.Snapshot
	spinner   spinner.Model
	volumeBar progress.Model

	// tempo entry
	editing bool
	input   string
	status  string

	quitting bool
}

// beatMsg carries the snapshot of a beat the player has just sounded.
type beatMsg rhythm.Snapshot

// changeMsg reports that the metronome was changed from outside the UI, e.g. over OSC.
type changeMsg struct{}

func newModel(metronome *rhythm.Metronome) model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	bar := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(30),
		progress.WithoutPercentage(),
	)

	return model{
		metronome: metronome,
		snapshot:  metronome.Snapshot(),
		spinner:   s,
		volumeBar: bar,
	}
}

func (m model) Init() tea.Cmd {
	return m.spinner.Tick
}
