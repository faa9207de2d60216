package remote

import (
	"context"
	"math"
	"net"
	"sync"

	"github.com/hypebeast/go-osc/osc"
	"github.com/robmorgan/pulse/logger"
	"github.com/robmorgan/pulse/rhythm"
	"github.com/robmorgan/pulse/utils"
	"github.com/sirupsen/logrus"
)

const (
	AddressTap    = "/pulse/tap"
	AddressTempo  = "/pulse/bpm"
	AddressNudge  = "/pulse/nudge"
	AddressReset  = "/pulse/reset"
	AddressPlay   = "/pulse/play"
	AddressStop   = "/pulse/stop"
	AddressToggle = "/pulse/toggle"
	AddressBeats  = "/pulse/beats"
	AddressVolume = "/pulse/volume"
	AddressMute   = "/pulse/mute"
)

// Metronome is the part of the metronome a remote can drive.
type Metronome interface {
	Tap() rhythm.Snapshot
	ApplyTempo(bpm float64) rhythm.Snapshot
	AdjustTempo(delta float64) rhythm.Snapshot
	ResetTempo() rhythm.Snapshot
	Start() rhythm.Snapshot
	Stop() rhythm.Snapshot
	Toggle() rhythm.Snapshot
	SetBeatsPerBar(n int) rhythm.Snapshot
	SetVolume(level float64) rhythm.Snapshot
	ToggleMute() rhythm.Snapshot
}

// Remote turns OSC messages into metronome operations, so a controller app or a lighting desk
// can tap the tempo.
type Remote struct {
	metronome Metronome
	addr      string
}

func NewRemote(addr string, metronome Metronome) *Remote {
	return &Remote{metronome: metronome, addr: addr}
}

// Dispatch implements osc.Dispatcher. Messages inside bundles are applied straight away.
func (r *Remote) Dispatch(packet osc.Packet) {
	switch packet := packet.(type) {
	case *osc.Message:
		r.handle(packet)
	case *osc.Bundle:
		for _, msg := range packet.Messages {
			r.handle(msg)
		}
		for _, b := range packet.Bundles {
			r.Dispatch(b)
		}
	}
}

func (r *Remote) handle(msg *osc.Message) {
	if msg == nil {
		return
	}
	logger := logger.GetProjectLogger().WithFields(logrus.Fields{"address": msg.Address, "arguments": msg.Arguments})

	switch msg.Address {
	case AddressTap:
		r.metronome.Tap()
	case AddressReset:
		r.metronome.ResetTempo()
	case AddressPlay:
		r.metronome.Start()
	case AddressStop:
		r.metronome.Stop()
	case AddressToggle:
		r.metronome.Toggle()
	case AddressMute:
		r.metronome.ToggleMute()
	case AddressTempo, AddressNudge, AddressVolume, AddressBeats:
		v, ok := numberArg(msg)
		if !ok {
			logger.Warn("Ignoring OSC message without a finite numeric argument")
			return
		}
		switch msg.Address {
		case AddressTempo:
			r.metronome.ApplyTempo(v)
		case AddressNudge:
			r.metronome.AdjustTempo(v)
		case AddressVolume:
			r.metronome.SetVolume(v)
		case AddressBeats:
			r.metronome.SetBeatsPerBar(int(utils.Clamp(v, rhythm.MinBeatsPerBar, rhythm.MaxBeatsPerBar)))
		}
	default:
		logger.Debug("Ignoring unknown OSC address")
		return
	}

	logger.Debug("Applied OSC message")
}

// numberArg reads the first argument of msg as a finite float.
func numberArg(msg *osc.Message) (float64, bool) {
	if len(msg.Arguments) == 0 {
		return 0, false
	}

	var v float64
	switch arg := msg.Arguments[0].(type) {
	case float32:
		v = float64(arg)
	case float64:
		v = arg
	case int32:
		v = float64(arg)
	case int64:
		v = float64(arg)
	default:
		return 0, false
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Serve listens for OSC packets on the remote's UDP address until ctx is cancelled.
func (r *Remote) Serve(ctx context.Context, wg *sync.WaitGroup) error {
	defer wg.Done()

	conn, err := net.ListenPacket("udp", r.addr)
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	logger.GetProjectLogger().Infof("Listening for OSC on %s", conn.LocalAddr())

	server := &osc.Server{Dispatcher: r}
	if err := server.Serve(conn); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
