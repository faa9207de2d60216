package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfile(t *testing.T) {
	t.Parallel()

	p := Profile{
		Name: "par",
		Channels: map[string]int{
			ChannelTypeIntensity: 1,
			ChannelTypeRed:       2,
			ChannelTypeGreen:     3,
			ChannelTypeBlue:      4,
			ChannelTypeUnknown:   8,
		},
	}

	require.NoError(t, p.Validate())
	assert.Equal(t, 8, p.Footprint())

	offset, ok := p.Offset(ChannelTypeGreen)
	assert.True(t, ok)
	assert.Equal(t, 3, offset)

	_, ok = p.Offset(ChannelTypeUV)
	assert.False(t, ok)
}

func TestProfileValidate(t *testing.T) {
	t.Parallel()

	require.Error(t, Profile{Name: "bad", Channels: map[string]int{ChannelTypeRed: 0}}.Validate())
	require.Error(t, Profile{Name: "motor", Channels: map[string]int{ChannelTypePan: 1}}.Validate())
}
