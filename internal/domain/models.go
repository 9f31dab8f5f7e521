package domain

import "time"

type Device struct {
	Serial string
	State  string
	Props  map[string]string
}

// Online reports whether adb considers the device usable.
// Unauthorized and offline devices still show up in the listing.
func (d Device) Online() bool {
	return d.State == "device"
}

type Asset struct {
	Version     string
	Arch        string
	DownloadURL string
	Filename    string
}

type FetchResult struct {
	Asset Asset
	Path  string
	Error error
}

type PushRecord struct {
	Serial   string    `json:"serial"`
	Version  string    `json:"version"`
	Arch     string    `json:"arch"`
	PID      int       `json:"pid"`
	PushedAt time.Time `json:"pushed_at"`
}
