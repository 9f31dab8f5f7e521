package resolver

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/TamerPlatform/frida-push/internal/domain"
)

// archMap is the closed set of ABIs a release build exists for. Anything
// the device reports outside this set is rejected, never guessed.
var archMap = map[string]string{
	"armeabi":     "arm",
	"armeabi-v7a": "arm",
	"arm64-v8a":   "arm64",
	"x86":         "x86",
	"x86_64":      "x86_64",
}

// MapArch normalizes a raw ro.product.cpu.abi value to the architecture
// tag used in release asset names.
func MapArch(raw string) (string, error) {
	arch, ok := archMap[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedArch, raw)
	}

	return arch, nil
}

// Resolve builds the download URL and cache filename for a (version, arch)
// pair. Pure; distinct pairs never collide on the same filename.
func Resolve(host, server, version, arch string) domain.Asset {
	name := fmt.Sprintf("%s-%s-android-%s", server, version, arch)

	return domain.Asset{
		Version:     version,
		Arch:        arch,
		DownloadURL: fmt.Sprintf("%s/%s/%s.xz", strings.TrimRight(host, "/"), version, name),
		Filename:    name,
	}
}

// ValidVersion reports whether s is a version string worth trusting.
// Devices with no running server print usage text or nothing at all.
func ValidVersion(s string) bool {
	_, err := semver.StrictNewVersion(strings.TrimSpace(s))
	return err == nil
}
