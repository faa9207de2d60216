package fixture

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/robmorgan/pulse/profile"
	"github.com/robmorgan/pulse/utils"
)

// State is what a fixture should show: a color at an intensity in [0,1].
type State struct {
	Intensity float64
	RGB       colorful.Color
}

// Fixture is a patched DMX fixture.
type Fixture struct {
	Name string

	// The DMX universe and 1-based starting address
	Universe int
	Address  int

	Profile profile.Profile
}

// NewFixture creates a fixture patched at address in universe.
func NewFixture(name string, universe, address int, p profile.Profile) *Fixture {
	return &Fixture{
		Name:     name,
		Universe: universe,
		Address:  address,
		Profile:  p,
	}
}

// operations converts state into DMX writes for the fixture's channels. Fixtures without an
// intensity channel get the intensity folded into their color channels.
func (f *Fixture) operations(state State) []dmxOperation {
	r, g, b := state.RGB.Clamped().RGB255()

	ops := make([]dmxOperation, 0, 5)
	if offset, ok := f.Profile.Offset(profile.ChannelTypeIntensity); ok {
		ops = append(ops, f.op(offset, utils.LevelToDMX(state.Intensity)))
	} else {
		r = utils.ScaleDMX(r, state.Intensity)
		g = utils.ScaleDMX(g, state.Intensity)
		b = utils.ScaleDMX(b, state.Intensity)
	}

	for channelType, value := range map[string]byte{
		profile.ChannelTypeRed:   r,
		profile.ChannelTypeGreen: g,
		profile.ChannelTypeBlue:  b,
		profile.ChannelTypeWhite: 0,
	} {
		if offset, ok := f.Profile.Offset(channelType); ok {
			ops = append(ops, f.op(offset, value))
		}
	}

	return ops
}

func (f *Fixture) op(offset int, value byte) dmxOperation {
	return dmxOperation{
		universe: f.Universe,
		channel:  f.Address + offset - 1,
		value:    value,
	}
}
