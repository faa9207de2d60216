package main

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/robmorgan/pulse/config"
	"github.com/robmorgan/pulse/rhythm"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"
)

func newTestModel() (model, *testingclock.FakeClock) {
	clk := testingclock.NewFakeClock(time.Date(2023, 6, 1, 20, 0, 0, 0, time.UTC))
	return newModel(rhythm.NewMetronome(rhythm.DefaultSettings(), nil, clk)), clk
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m model, msg tea.Msg) model {
	next, _ := m.Update(msg)
	return next.(model)
}

func TestModelTempoKeys(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel()
	assert.Equal(t, 120.0, m.snapshot.Tempo)

	m = send(m, runes("]"))
	assert.Equal(t, 121.0, m.snapshot.Tempo)
	m = send(m, runes("}"))
	assert.Equal(t, 131.0, m.snapshot.Tempo)
	m = send(m, runes("{"))
	m = send(m, runes("["))
	assert.Equal(t, 120.0, m.snapshot.Tempo)

	m = send(m, runes("}"))
	m = send(m, runes("r"))
	assert.Equal(t, 120.0, m.snapshot.Tempo)
}

func TestModelTapSetsTempo(t *testing.T) {
	t.Parallel()

	m, clk := newTestModel()
	m = send(m, runes("t"))
	clk.Step(250 * time.Millisecond)
	m = send(m, runes("t"))
	assert.Equal(t, 120.0, m.snapshot.Tempo)

	clk.Step(250 * time.Millisecond)
	m = send(m, runes("t"))
	assert.Equal(t, 240.0, m.snapshot.Tempo)
}

func TestModelTypedTempo(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel()
	m = send(m, runes("e"))
	require.True(t, m.editing)

	m = send(m, runes("9"))
	m = send(m, runes("x"))
	m = send(m, runes("5"))
	m = send(m, tea.KeyMsg{Type: tea.KeyBackspace})
	m = send(m, runes("0"))
	assert.Equal(t, "90", m.input)

	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.editing)
	assert.Equal(t, 90.0, m.snapshot.Tempo)
	assert.Empty(t, m.status)

	// anything that does not parse keeps the previous tempo
	m = send(m, runes("e"))
	m = send(m, runes("."))
	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 90.0, m.snapshot.Tempo)
	assert.Contains(t, m.status, "keeping 90.0 BPM")

	m = send(m, runes("e"))
	m = send(m, runes("200"))
	m = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.editing)
	assert.Equal(t, 90.0, m.snapshot.Tempo)
}

func TestModelPlaybackAndBeats(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel()
	m = send(m, runes("3"))
	assert.Equal(t, 3, m.snapshot.BeatsPerBar)

	m = send(m, runes("9"))
	assert.Equal(t, 3, m.snapshot.BeatsPerBar)

	m = send(m, runes("p"))
	require.True(t, m.snapshot.Playing)

	m = send(m, beatMsg(m.metronome.OnTick()))
	m = send(m, beatMsg(m.metronome.OnTick()))
	assert.Equal(t, 2, m.snapshot.CurrentBeat)
	assert.Equal(t, 3, m.snapshot.BeatsPerBar)
	assert.Contains(t, m.View(), "120.0 BPM")

	m = send(m, runes("p"))
	assert.False(t, m.snapshot.Playing)
	assert.Contains(t, m.View(), "stopped")
}

func TestModelVolumeKeys(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel()
	m = send(m, runes("m"))
	assert.True(t, m.snapshot.Muted)
	assert.Equal(t, 0.0, m.snapshot.Volume)
	assert.Contains(t, m.View(), "muted")

	m = send(m, runes("m"))
	assert.False(t, m.snapshot.Muted)
	assert.Equal(t, 0.5, m.snapshot.Volume)

	m = send(m, runes("M"))
	assert.Equal(t, 1.0, m.snapshot.Volume)
	m = send(m, runes("="))
	assert.Equal(t, 1.0, m.snapshot.Volume)
	m = send(m, runes("-"))
	assert.InDelta(t, 0.9, m.snapshot.Volume, 1e-9)

	m = send(m, runes("v"))
	assert.Equal(t, rhythm.DefaultVolume, m.snapshot.Volume)
}

func TestModelFollowsOutsideChanges(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel()
	m = send(m, runes("p"))

	// the remote changes the metronome behind the UI's back
	m.metronome.SetBeatsPerBar(8)
	m.metronome.SetVolume(0.9)
	m.metronome.ApplyTempo(100)

	// volume keys step from the live level, not the one last drawn
	m = send(m, runes("-"))
	assert.InDelta(t, 0.8, m.snapshot.Volume, 1e-9)
	assert.Equal(t, 8, m.snapshot.BeatsPerBar)

	m.metronome.SetBeatsPerBar(5)
	m = send(m, changeMsg{})
	assert.Equal(t, 5, m.snapshot.BeatsPerBar)
	assert.Equal(t, 100.0, m.snapshot.Tempo)

	for i := 0; i < 6; i++ {
		m = send(m, beatMsg(m.metronome.OnTick()))
	}
	assert.Equal(t, 1, m.snapshot.CurrentBeat)
	assert.Equal(t, 5, m.snapshot.BeatsPerBar)
	assert.Equal(t, m.metronome.Snapshot(), m.snapshot)
}

func TestModelQuit(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel()
	next, cmd := m.Update(runes("q"))
	assert.True(t, next.(model).quitting)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestLoadConfigAppliesFlags(t *testing.T) {
	t.Parallel()

	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--tempo", "90", "--beats", "3", "--no-dmx", "--log-level", "debug", "--osc", ":9100"}))

	cfg, err := loadConfig(cmd, optionsOf(t, cmd))
	require.NoError(t, err)
	assert.Equal(t, 90.0, cfg.Initial.Tempo)
	assert.Equal(t, 3, cfg.Initial.BeatsPerBar)
	assert.Equal(t, rhythm.DefaultVolume, cfg.Initial.Volume)
	assert.False(t, cfg.Output.Enabled)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, config.RemoteConfig{Enabled: true, Address: ":9100"}, cfg.Remote)
}

func TestLoadConfigRejectsBadFlags(t *testing.T) {
	t.Parallel()

	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--ola="}))

	_, err := loadConfig(cmd, optionsOf(t, cmd))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ola_address")
}

// optionsOf reads the parsed flag values back into options.
func optionsOf(t *testing.T, cmd *cobra.Command) *options {
	t.Helper()

	flags := cmd.Flags()
	opts := &options{}
	var err error
	opts.configPath, err = flags.GetString("config")
	require.NoError(t, err)
	opts.tempo, err = flags.GetFloat64("tempo")
	require.NoError(t, err)
	opts.volume, err = flags.GetFloat64("volume")
	require.NoError(t, err)
	opts.beats, err = flags.GetInt("beats")
	require.NoError(t, err)
	opts.logLevel, err = flags.GetString("log-level")
	require.NoError(t, err)
	opts.noDMX, err = flags.GetBool("no-dmx")
	require.NoError(t, err)
	opts.olaAddress, err = flags.GetString("ola")
	require.NoError(t, err)
	opts.oscAddress, err = flags.GetString("osc")
	require.NoError(t, err)
	return opts
}

func TestNewFlasherPatchesFixtures(t *testing.T) {
	t.Parallel()

	cfg := config.NewPulseConfig()
	flasher, state, err := newFlasher(cfg)
	require.NoError(t, err)
	require.NotNil(t, flasher)
	assert.NotNil(t, state)

	cfg.PatchedFixtures[0].Profile = "missing"
	_, _, err = newFlasher(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown profile")
}

func TestFormatUniverse(t *testing.T) {
	t.Parallel()

	data := make([]byte, 512)
	data[0] = 255
	data[114] = 40

	assert.Equal(t, "universe 1\n  1: 255\n115:  40\n", formatUniverse(1, data))
	assert.Equal(t, "universe 2\nall channels at 0\n", formatUniverse(2, make([]byte, 512)))
}
