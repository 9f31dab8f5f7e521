package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelectDevice(t *testing.T) {
	t.Parallel()

	one := Device{Serial: "emulator-5554", State: "device"}
	two := Device{Serial: "R58M123ABC", State: "device"}

	t.Run("no devices", func(t *testing.T) {
		t.Parallel()

		_, err := SelectDevice(nil, "")
		require.ErrorIs(t, err, ErrNoDevice)
	})

	t.Run("sole device auto-selected", func(t *testing.T) {
		t.Parallel()

		d, err := SelectDevice([]Device{one}, "")
		require.NoError(t, err)
		require.Equal(t, one.Serial, d.Serial)
	})

	t.Run("multiple devices need a name", func(t *testing.T) {
		t.Parallel()

		_, err := SelectDevice([]Device{one, two}, "")
		require.ErrorIs(t, err, ErrAmbiguousDevice)
	})

	t.Run("named device found", func(t *testing.T) {
		t.Parallel()

		d, err := SelectDevice([]Device{one, two}, "R58M123ABC")
		require.NoError(t, err)
		require.Equal(t, two.Serial, d.Serial)
	})

	t.Run("named device missing", func(t *testing.T) {
		t.Parallel()

		_, err := SelectDevice([]Device{one, two}, "nope")
		require.ErrorIs(t, err, ErrDeviceNotFound)
		require.Contains(t, err.Error(), "nope")
	})
}
