package adb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDevices(t *testing.T) {
	t.Parallel()

	out := "List of devices attached\n" +
		"emulator-5554          device product:sdk_gphone64_x86_64 model:sdk_gphone64_x86_64 device:emu64x transport_id:1\n" +
		"R58M123ABC             unauthorized usb:1-4 transport_id:2\n" +
		"\n"

	devices := parseDevices(out)
	require.Len(t, devices, 2)

	require.Equal(t, "emulator-5554", devices[0].Serial)
	require.Equal(t, "device", devices[0].State)
	require.True(t, devices[0].Online())
	require.Equal(t, "emu64x", devices[0].Props["device"])
	require.Equal(t, "1", devices[0].Props["transport_id"])

	require.Equal(t, "R58M123ABC", devices[1].Serial)
	require.Equal(t, "unauthorized", devices[1].State)
	require.False(t, devices[1].Online())
	require.Equal(t, "1-4", devices[1].Props["usb"])
}

func TestParseDevicesEmpty(t *testing.T) {
	t.Parallel()

	require.Empty(t, parseDevices("List of devices attached\n\n"))
	require.Empty(t, parseDevices(""))
}

func TestParseDevicesSkipsDaemonNoise(t *testing.T) {
	t.Parallel()

	out := "* daemon not running; starting now at tcp:5037\n" +
		"* daemon started successfully\n" +
		"List of devices attached\n" +
		"emulator-5554\tdevice\n"

	devices := parseDevices(out)
	require.Len(t, devices, 1)
	require.Equal(t, "emulator-5554", devices[0].Serial)
}

func TestParseDevicesWindowsLineEndings(t *testing.T) {
	t.Parallel()

	out := "List of devices attached\r\nemulator-5554          device transport_id:1\r\n"

	devices := parseDevices(out)
	require.Len(t, devices, 1)
	require.Equal(t, "emulator-5554", devices[0].Serial)
}
