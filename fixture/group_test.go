package fixture

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGroup(t *testing.T) {
	t.Parallel()

	fg := NewGroup()
	fg.AddFixture(NewFixture("right_par", 1, 139, parProfile))
	fg.AddFixture(NewFixture("left_par", 1, 115, parProfile))

	require.Equal(t, 2, fg.Count())
	require.True(t, fg.HasFixture("left_par"))
	require.False(t, fg.HasFixture("top_par"))
	require.Equal(t, []string{"left_par", "right_par"}, fg.Names())

	fix, err := fg.GetFixture("right_par")
	require.NoError(t, err)
	require.Equal(t, 139, fix.Address)

	_, err = fg.GetFixture("top_par")
	require.Error(t, err)
}

func TestGroupReplacesByName(t *testing.T) {
	t.Parallel()

	fg := NewGroup()
	fg.AddFixture(NewFixture("par", 1, 1, parProfile))
	fg.AddFixture(NewFixture("par", 1, 20, parProfile))

	require.Equal(t, 1, fg.Count())
	fixtures := fg.Fixtures()
	require.Len(t, fixtures, 1)
	require.Equal(t, 20, fixtures[0].Address)
}
