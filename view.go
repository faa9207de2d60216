package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Margin(1, 0)
	tempoStyle   = lipgloss.NewStyle().Bold(true)
	limitStyle   = helpStyle.Copy().UnsetMargins()
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	appStyle     = lipgloss.NewStyle().Margin(1, 2, 0, 2)

	beatStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("241"))
	activeBeatStyle = beatStyle.Copy().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33"))
	accentBeatStyle = beatStyle.Copy().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("202"))
)

func (m model) View() string {
	var b strings.Builder
	b.WriteString(m.tempoLine())
	b.WriteString("\n\n")
	b.WriteString(m.beatLine())
	b.WriteString("\n\n")
	b.WriteString(m.volumeLine())
	b.WriteString("\n")

	if m.editing {
		fmt.Fprintf(&b, "\nTempo: %s_\n", m.input)
	}
	if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status) + "\n")
	}

	help := "(space/t) tap  ([ ]) BPM -/+  ({ }) BPM -/+10  (e) enter BPM  (r) reset BPM\n" +
		"(p) play/stop  (1-8) beats per bar  (- =) volume  (m) mute  (M) max  (v) reset volume\n\n" +
		"Press q to exit"
	b.WriteString(helpStyle.Render(help))

	if m.quitting {
		b.WriteString("\n")
	}
	return appStyle.Render(b.String())
}

func (m model) tempoLine() string {
	s := m.snapshot

	line := tempoStyle.Render(fmt.Sprintf("%.1f BPM", s.Tempo))
	switch {
	case s.AtMinTempo():
		line += " " + limitStyle.Render(fmt.Sprintf("(min %.0f)", s.MinTempo))
	case s.AtMaxTempo():
		line += " " + limitStyle.Render(fmt.Sprintf("(max %.0f)", s.MaxTempo))
	}

	if s.Playing {
		return m.spinner.View() + " " + line
	}
	return "  " + line + " " + limitStyle.Render("stopped")
}

func (m model) beatLine() string {
	s := m.snapshot

	beats := make([]string, 0, s.BeatsPerBar)
	for i := 1; i <= s.BeatsPerBar; i++ {
		style := beatStyle
		if s.Playing && i == s.CurrentBeat {
			style = activeBeatStyle
			if i == 1 {
				style = accentBeatStyle
			}
		}
		beats = append(beats, style.Render(fmt.Sprint(i)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, beats...)
}

func (m model) volumeLine() string {
	s := m.snapshot

	label := fmt.Sprintf("Volume %3.0f%%", s.Volume*100)
	if s.Muted {
		label += " " + limitStyle.Render("muted")
	}
	return m.volumeBar.ViewAs(s.Volume) + " " + label
}
