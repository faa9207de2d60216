package fixture

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robmorgan/pulse/logger"
	"github.com/sirupsen/logrus"
	"k8s.io/utils/clock"
)

// UniverseChannels is the number of channels in a DMX512 universe.
const UniverseChannels = 512

// DMXState holds the DMX512 values for each channel
type DMXState struct {
	universes map[int][]byte
	lock      sync.Mutex
}

type dmxOperation struct {
	universe, channel int
	value             byte
}

// NewDMXState creates an empty DMXState.
func NewDMXState() *DMXState {
	return &DMXState{universes: make(map[int][]byte)}
}

// Get returns the value of a 1-based channel. Channels never written read as zero.
func (s *DMXState) Get(universe, channel int) byte {
	s.lock.Lock()
	defer s.lock.Unlock()
	if channel < 1 || channel > UniverseChannels || s.universes[universe] == nil {
		return 0
	}
	return s.universes[universe][channel-1]
}

// Universes returns a copy of every universe that has been written to.
func (s *DMXState) Universes() map[int][]byte {
	s.lock.Lock()
	defer s.lock.Unlock()

	out := make(map[int][]byte, len(s.universes))
	for k, v := range s.universes {
		values := make([]byte, len(v))
		copy(values, v)
		out[k] = values
	}
	return out
}

func (s *DMXState) set(ops ...dmxOperation) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	for _, op := range ops {
		if op.channel < 1 || op.channel > UniverseChannels {
			return fmt.Errorf("dmx channel (%d) not in range, op=%v", op.channel, op)
		}

		s.initializeUniverse(op.universe)
		s.universes[op.universe][op.channel-1] = op.value
	}

	return nil
}

func (s *DMXState) initializeUniverse(universe int) {
	if s.universes[universe] == nil {
		s.universes[universe] = make([]byte, UniverseChannels)
	}
}

// OLAClient is the interface for communicating with OLA
type OLAClient interface {
	SendDmx(universe int, values []byte) (status bool, err error)
	Close()
}

// SendDMXWorker sends OLA the current DMX state across all universes every tick.
func SendDMXWorker(ctx context.Context, client OLAClient, clk clock.Clock, tick time.Duration, state *DMXState, wg *sync.WaitGroup) error {
	defer wg.Done()
	defer client.Close()

	logger := logger.GetProjectLogger()

	t := clk.NewTimer(tick)
	defer t.Stop()
	logger.Infof("SendDMXWorker started at %v", clk.Now())

	for {
		select {
		case <-ctx.Done():
			logger.Info("SendDMXWorker shutdown")
			return ctx.Err()
		case <-t.C():
			for universe, values := range state.Universes() {
				if _, err := client.SendDmx(universe, values); err != nil {
					logger.WithFields(logrus.Fields{"universe": universe}).Errorf("error sending dmx: %v", err)
				}
			}
			t.Reset(tick)
		}
	}
}
