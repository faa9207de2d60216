package profile

import "fmt"

const (
	ChannelTypeIntensity = "channel:type:intensity"
	ChannelTypeStrobe    = "channel:type:strobe"

	ChannelTypeRed   = "channel:type:red"
	ChannelTypeGreen = "channel:type:green"
	ChannelTypeBlue  = "channel:type:blue"
	ChannelTypeWhite = "channel:type:white"
	ChannelTypeAmber = "channel:type:amber"
	ChannelTypeUV    = "channel:type:uv"

	ChannelTypePan  = "channel:type:pan"
	ChannelTypeTilt = "channel:type:tilt"

	ChannelTypeFunctionSelect = "channel:type:function:select"
	ChannelTypeUnknown        = "channel:type:unknown"
)

// Profile holds info for a fixture profile including the channel mappings. Channels maps a
// channel type to its 1-based offset from the fixture's start address.
type Profile struct {
	Name     string         `yaml:"name"`
	Channels map[string]int `yaml:"channels"`
}

// Offset returns the 1-based offset of the channel type, if the profile has it.
func (p Profile) Offset(channelType string) (int, bool) {
	offset, ok := p.Channels[channelType]
	return offset, ok
}

// Footprint returns the number of DMX channels the profile occupies.
func (p Profile) Footprint() int {
	max := 0
	for _, offset := range p.Channels {
		if offset > max {
			max = offset
		}
	}
	return max
}

// Validate checks that every offset is positive and that at least one color or intensity
// channel exists.
func (p Profile) Validate() error {
	for channelType, offset := range p.Channels {
		if offset < 1 {
			return fmt.Errorf("profile %q: channel %s has invalid offset %d", p.Name, channelType, offset)
		}
	}
	for _, channelType := range []string{ChannelTypeIntensity, ChannelTypeRed, ChannelTypeGreen, ChannelTypeBlue, ChannelTypeWhite} {
		if _, ok := p.Channels[channelType]; ok {
			return nil
		}
	}
	return fmt.Errorf("profile %q has no intensity or color channels", p.Name)
}
