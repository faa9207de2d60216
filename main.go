package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nickysemenza/gola"
	"github.com/robmorgan/pulse/config"
	"github.com/robmorgan/pulse/effect"
	"github.com/robmorgan/pulse/fixture"
	"github.com/robmorgan/pulse/logger"
	"github.com/robmorgan/pulse/player"
	"github.com/robmorgan/pulse/remote"
	"github.com/robmorgan/pulse/rhythm"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"k8s.io/utils/clock"
)

type options struct {
	configPath string
	tempo      float64
	volume     float64
	beats      int
	logLevel   string
	logFile    string
	noDMX      bool
	olaAddress string
	oscAddress string
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "pulse: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "pulse",
		Short:         "A visual metronome that flashes DMX fixtures on the beat",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			return Run(cmd.Context(), cfg, opts.logFile)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "path to a YAML config file")
	flags.Float64VarP(&opts.tempo, "tempo", "t", rhythm.DefaultBPM, "initial tempo in bpm")
	flags.Float64Var(&opts.volume, "volume", rhythm.DefaultVolume, "initial volume between 0 and 1")
	flags.IntVarP(&opts.beats, "beats", "b", rhythm.DefaultBeatsPerBar, "beats per bar (1-8)")
	flags.StringVar(&opts.logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	flags.StringVar(&opts.logFile, "log-file", "", "write logs to this file while the UI is running")
	flags.BoolVar(&opts.noDMX, "no-dmx", false, "disable DMX output")
	flags.StringVar(&opts.olaAddress, "ola", config.DefaultOLAAddress, "OLA address")
	flags.StringVar(&opts.oscAddress, "osc", "", "listen for OSC remote control on this address, e.g. :9000")

	cmd.AddCommand(newDumpCmd())

	return cmd
}

// loadConfig reads the config file, if any, and applies the flags the user set on top.
func loadConfig(cmd *cobra.Command, opts *options) (*config.PulseConfig, error) {
	cfg := config.NewPulseConfig()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.LoadFile(opts.configPath); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("tempo") {
		cfg.Initial.Tempo = opts.tempo
	}
	if flags.Changed("volume") {
		cfg.Initial.Volume = opts.volume
	}
	if flags.Changed("beats") {
		cfg.Initial.BeatsPerBar = opts.beats
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = opts.logLevel
	}
	if flags.Changed("ola") {
		cfg.Output.OLAAddress = opts.olaAddress
	}
	if opts.oscAddress != "" {
		cfg.Remote.Enabled = true
		cfg.Remote.Address = opts.oscAddress
	}
	if opts.noDMX {
		cfg.Output.Enabled = false
	}

	return cfg, cfg.Validate()
}

// Run starts the metronome, the beat loop, the DMX output and the UI, and blocks until the UI
// quits or ctx is cancelled.
func Run(ctx context.Context, cfg *config.PulseConfig, logFile string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := logger.SetLevel(cfg.Logging.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Logging.Level, err)
	}

	// the terminal belongs to the UI from here on
	var logOutput io.Writer = io.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		logOutput = f
	}
	logger.SetOutput(logOutput)
	defer logger.SetOutput(os.Stderr)

	logger := logger.GetProjectLogger()
	wg := sync.WaitGroup{}
	clk := clock.RealClock{}

	logger.Info("Initializing metronome...")
	loop := player.NewLoop(clk)
	metronome := rhythm.NewMetronome(cfg.Rhythm, loop, clk)
	loop.Handle(metronome.OnLoopTick)
	metronome.Configure(cfg.Initial.Tempo, cfg.Initial.Volume, cfg.Initial.BeatsPerBar)

	metronome.OnChange(func(s rhythm.Snapshot) {
		logger.WithFields(logrus.Fields{
			"tempo":         s.Tempo,
			"volume":        s.Volume,
			"beats_per_bar": s.BeatsPerBar,
		}).Debug("Metronome settings changed")
	})

	wg.Add(1)
	go loop.Run(ctx, &wg)

	if cfg.Output.Enabled {
		logger.Info("Connecting to OLA...")
		if err := startDMXOutput(ctx, cfg, clk, loop, &wg); err != nil {
			logger.Errorf("could not start DMX output: %v", err)
		}
	}

	if cfg.Remote.Enabled {
		r := remote.NewRemote(cfg.Remote.Address, metronome)
		wg.Add(1)
		go func() {
			if err := r.Serve(ctx, &wg); err != nil {
				logger.Errorf("OSC remote stopped: %v", err)
			}
		}()
	}

	p := tea.NewProgram(newModel(metronome))
	metronome.OnBeat(func(s rhythm.Snapshot) {
		p.Send(beatMsg(s))
	})
	// changes made from the UI notify on the UI goroutine, which must not block on Send
	metronome.OnChange(func(rhythm.Snapshot) {
		go p.Send(changeMsg{})
	})
	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	_, err := p.Run()

	metronome.Stop()
	cancel()
	wg.Wait()

	final := metronome.Snapshot()
	logger.WithFields(logrus.Fields{"tempo": final.Tempo, "volume": final.Volume, "beats_per_bar": final.BeatsPerBar}).
		Info("shutting down pulse")

	return err
}

// startDMXOutput connects to OLA and flashes the patched fixtures on every beat.
func startDMXOutput(ctx context.Context, cfg *config.PulseConfig, clk clock.Clock, loop *player.Loop, wg *sync.WaitGroup) error {
	flasher, state, err := newFlasher(cfg)
	if err != nil {
		return err
	}

	client, err := gola.New(cfg.Output.OLAAddress)
	if err != nil {
		return fmt.Errorf("could not connect to OLA: %w", err)
	}

	loop.Sink(flasher.Flash)

	wg.Add(2)
	go flasher.RenderWorker(ctx, clk, cfg.Output.FPS, wg)
	go fixture.SendDMXWorker(ctx, client, clk, cfg.Output.SendTick, state, wg)

	return nil
}

// newFlasher patches the configured fixtures and builds the beat flasher writing to a fresh
// DMX state.
func newFlasher(cfg *config.PulseConfig) (*fixture.Flasher, *fixture.DMXState, error) {
	fg := fixture.NewGroup()
	for _, pf := range cfg.PatchedFixtures {
		p, ok := cfg.Profiles[pf.Profile]
		if !ok {
			return nil, nil, fmt.Errorf("fixture %s uses unknown profile %q", pf.Name, pf.Profile)
		}
		fg.AddFixture(fixture.NewFixture(pf.Name, pf.Universe, pf.Address, p))
	}

	state := fixture.NewDMXState()
	flasher, err := fixture.NewFlasher(state, fg, cfg.Output.AccentColor, cfg.Output.BeatColor, cfg.Output.FlashDecay)
	if err != nil {
		return nil, nil, err
	}
	if flasher.Easing, err = effect.Curve(cfg.Output.Easing); err != nil {
		return nil, nil, err
	}
	return flasher, state, nil
}
