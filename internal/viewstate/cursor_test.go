package viewstate_test

import (
	"testing"

	"github.com/ganot/nirapod/internal/viewstate"
	"github.com/stretchr/testify/require"
)

func TestCursor_StaysInBounds(t *testing.T) {
	c := viewstate.NewCursor(3)
	require.True(t, c.First())
	require.False(t, c.Prev())

	require.True(t, c.Next())
	require.True(t, c.Next())
	require.True(t, c.Last())
	require.False(t, c.Next())
	require.Equal(t, 2, c.Pos())

	require.True(t, c.Move(-10))
	require.Equal(t, 0, c.Pos())

	c.Move(2)
	c.Resize(1)
	require.Equal(t, 0, c.Pos())
}

func TestCursor_Empty(t *testing.T) {
	c := viewstate.NewCursor(0)
	require.False(t, c.Next())
	require.False(t, c.Prev())
	require.True(t, c.Last())
	require.Equal(t, 0, c.Pos())
}
