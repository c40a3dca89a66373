// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package activeset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const cooldown = 100

func TestRegisterActivation(t *testing.T) {
	require := require.New(t)

	s := New[string]()
	require.NoError(s.Register(50, "v"))

	require.True(s.WasActiveAt(50, "v"))
	require.False(s.WasActiveAt(49, "v"))
	require.True(s.WasActiveAt(1_000_000, "v"))
	require.False(s.WasActiveAt(50, "other"))
}

func TestRegisterDuplicate(t *testing.T) {
	require := require.New(t)

	s := New[string]()
	require.NoError(s.Register(50, "v"))
	require.ErrorIs(s.Register(60, "v"), ErrAlreadyRegistered)

	// A disabled entry still blocks re-registration.
	require.NoError(s.Pause(70, "v"))
	require.ErrorIs(s.Register(80, "v"), ErrAlreadyRegistered)
}

func TestPauseUnpause(t *testing.T) {
	require := require.New(t)

	s := New[string]()
	require.ErrorIs(s.Pause(10, "v"), ErrNotRegistered)

	require.NoError(s.Register(50, "v"))
	require.ErrorIs(s.Unpause(60, cooldown, "v"), ErrNotPaused)

	require.NoError(s.Pause(70, "v"))
	require.ErrorIs(s.Pause(80, "v"), ErrAlreadyPaused)

	// The historical window is unchanged by the pause.
	require.True(s.WasActiveAt(69, "v"))
	require.False(s.WasActiveAt(70, "v"))

	require.ErrorIs(s.Unpause(70+cooldown-1, cooldown, "v"), ErrCooldownNotElapsed)
	require.NoError(s.Unpause(70+cooldown, cooldown, "v"))

	// Original enabledAt preserved, past window still intact.
	require.True(s.WasActiveAt(69, "v"))
	require.True(s.WasActiveAt(50, "v"))
	require.False(s.WasActiveAt(49, "v"))
	require.True(s.WasActiveAt(70+cooldown, "v"))
}

func TestUnregister(t *testing.T) {
	require := require.New(t)

	s := New[string]()
	require.ErrorIs(s.Unregister(10, cooldown, "v"), ErrNotRegistered)

	require.NoError(s.Register(50, "v"))

	// Active (never paused) entries cannot be removed.
	require.ErrorIs(s.Unregister(500, cooldown, "v"), ErrCooldownNotElapsed)

	require.NoError(s.Pause(70, "v"))
	require.ErrorIs(s.Unregister(70+cooldown-1, cooldown, "v"), ErrCooldownNotElapsed)
	require.NoError(s.Unregister(70+cooldown, cooldown, "v"))

	require.False(s.Contains("v"))
	require.False(s.WasActiveAt(60, "v"))
	require.Empty(s.Active(60))

	// The cooldown has elapsed, so the identity may cycle again.
	require.NoError(s.Register(70+cooldown, "v"))
}

func TestActiveOrder(t *testing.T) {
	require := require.New(t)

	s := New[int]()
	require.NoError(s.Register(10, 3))
	require.NoError(s.Register(20, 1))
	require.NoError(s.Register(30, 2))
	require.NoError(s.Pause(40, 1))

	require.Equal([]int{3, 1, 2}, s.Active(35))
	require.Equal([]int{3, 2}, s.Active(40))
	require.Equal([]int{3}, s.Active(15))
	require.Empty(s.Active(5))
	require.Equal(3, s.Len())
}

func TestUnregisterPreservesOrder(t *testing.T) {
	require := require.New(t)

	s := New[int]()
	require.NoError(s.Register(10, 1))
	require.NoError(s.Register(10, 2))
	require.NoError(s.Register(10, 3))
	require.NoError(s.Pause(20, 2))
	require.NoError(s.Unregister(20+cooldown, cooldown, 2))

	require.Equal([]int{1, 3}, s.Active(20+cooldown))
}
