package adb

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/TamerPlatform/frida-push/internal/domain"
)

// Client shells out to the adb binary. Nothing in the protocol is spoken
// directly; adb must be reachable on the host.
type Client struct {
	path string
}

func New(path string) *Client {
	if path == "" {
		path = "adb"
	}
	return &Client{path: path}
}

func (c *Client) Devices(ctx context.Context) ([]domain.Device, error) {
	out, _, err := c.run(ctx, "devices", "-l")
	if err != nil {
		return nil, fmt.Errorf("listing devices: %w", err)
	}

	return parseDevices(out), nil
}

func (c *Client) GetProp(ctx context.Context, serial, key string) (string, error) {
	out, _, err := c.run(ctx, "-s", serial, "shell", "getprop", key)
	if err != nil {
		return "", fmt.Errorf("%w: getprop %s: %v", domain.ErrDeviceProperty, key, err)
	}

	value := strings.TrimSpace(out)
	if value == "" {
		return "", fmt.Errorf("%w: getprop %s returned nothing", domain.ErrDeviceProperty, key)
	}

	return value, nil
}

func (c *Client) Push(ctx context.Context, serial, local, remote string) error {
	_, stderr, err := c.run(ctx, "-s", serial, "push", local, remote)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrPush, strings.TrimSpace(stderr), err)
	}

	return nil
}

func (c *Client) Shell(ctx context.Context, serial, command string) (string, error) {
	out, _, err := c.run(ctx, "-s", serial, "shell", command)
	return strings.TrimSpace(out), err
}

func (c *Client) run(ctx context.Context, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, c.path, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// parseDevices reads `adb devices -l` output. Each line after the banner
// looks like:
//
//	emulator-5554   device product:sdk_gphone64_x86_64 model:Pixel_6 transport_id:1
func parseDevices(out string) []domain.Device {
	var devices []domain.Device

	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" || strings.HasPrefix(line, "List of devices") || strings.HasPrefix(line, "*") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		device := domain.Device{
			Serial: fields[0],
			State:  fields[1],
			Props:  make(map[string]string),
		}

		for _, field := range fields[2:] {
			if idx := strings.Index(field, ":"); idx > 0 {
				device.Props[field[:idx]] = field[idx+1:]
			}
		}

		devices = append(devices, device)
	}

	return devices
}
