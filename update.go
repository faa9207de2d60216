package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/robmorgan/pulse/rhythm"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing {
			return m.updateTempoEntry(msg), nil
		}
		return m.updateControls(msg)
	case beatMsg:
		m.snapshot = rhythm.Snapshot(msg)
		return m, nil
	case changeMsg:
		m.snapshot = m.metronome.Snapshot()
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) updateControls(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	key := msg.String()
	switch key {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit
	case " ", "t":
		m.snapshot = m.metronome.Tap()
	case "]":
		m.snapshot = m.metronome.IncrementTempo()
	case "[":
		m.snapshot = m.metronome.DecrementTempo()
	case "}":
		m.snapshot = m.metronome.AdjustTempo(coarseTempoJump)
	case "{":
		m.snapshot = m.metronome.AdjustTempo(-coarseTempoJump)
	case "r":
		m.snapshot = m.metronome.ResetTempo()
	case "p", "enter":
		m.snapshot = m.metronome.Toggle()
	case "m":
		m.snapshot = m.metronome.ToggleMute()
	case "M":
		m.snapshot = m.metronome.SetMaxVolume()
	case "=", "+":
		m.snapshot = m.metronome.SetVolume(m.metronome.Snapshot().Volume + volumeStep)
	case "-":
		m.snapshot = m.metronome.SetVolume(m.metronome.Snapshot().Volume - volumeStep)
	case "v":
		m.snapshot = m.metronome.ResetVolume()
	case "e":
		m.editing = true
		m.input = ""
	case "1", "2", "3", "4", "5", "6", "7", "8":
		m.snapshot = m.metronome.SetBeatsPerBar(int(key[0] - '0'))
	}
	return m, nil
}

// updateTempoEntry edits the typed tempo. A value that does not parse leaves the tempo alone.
func (m model) updateTempoEntry(msg tea.KeyMsg) model {
	switch msg.Type {
	case tea.KeyEsc:
		m.editing = false
		m.input = ""
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeyEnter:
		m.editing = false
		bpm, err := strconv.ParseFloat(strings.TrimSpace(m.input), 64)
		if err != nil {
			m.status = fmt.Sprintf("%q is not a tempo, keeping %.1f BPM", m.input, m.snapshot.Tempo)
		} else {
			m.snapshot = m.metronome.ApplyTempo(bpm)
		}
		m.input = ""
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if (r >= '0' && r <= '9') || r == '.' {
				m.input += string(r)
			}
		}
	}
	return m
}
