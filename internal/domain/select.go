package domain

import "fmt"

// SelectDevice picks the device to operate on. A named device must be
// attached; with no name the sole attached device is used.
func SelectDevice(devices []Device, name string) (Device, error) {
	if len(devices) == 0 {
		return Device{}, ErrNoDevice
	}

	if name != "" {
		for _, d := range devices {
			if d.Serial == name {
				return d, nil
			}
		}
		return Device{}, fmt.Errorf("%w: %s", ErrDeviceNotFound, name)
	}

	if len(devices) > 1 {
		return Device{}, ErrAmbiguousDevice
	}

	return devices[0], nil
}
