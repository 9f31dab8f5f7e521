package resolver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/TamerPlatform/frida-push/internal/domain"
)

const (
	testHost   = "https://github.com/frida/frida/releases/download"
	testServer = "frida-server"
)

func TestMapArch(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"armeabi":     "arm",
		"armeabi-v7a": "arm",
		"arm64-v8a":   "arm64",
		"x86":         "x86",
		"x86_64":      "x86_64",
		"ARM64-V8A":   "arm64",
		" x86 \n":     "x86",
	}

	for raw, want := range cases {
		arch, err := MapArch(raw)
		require.NoError(t, err, raw)
		require.Equal(t, want, arch)
	}
}

func TestMapArchUnsupported(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"mips", "riscv64", "", "sparc"} {
		_, err := MapArch(raw)
		require.ErrorIs(t, err, domain.ErrUnsupportedArch, raw)
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	asset := Resolve(testHost, testServer, "10.6.32", "x86")

	require.Equal(t, testHost+"/10.6.32/frida-server-10.6.32-android-x86.xz", asset.DownloadURL)
	require.Equal(t, "frida-server-10.6.32-android-x86", asset.Filename)
	require.Equal(t, "10.6.32", asset.Version)
	require.Equal(t, "x86", asset.Arch)
}

func TestResolveTrimsTrailingSlash(t *testing.T) {
	t.Parallel()

	asset := Resolve(testHost+"/", testServer, "10.6.32", "arm")
	require.Equal(t, testHost+"/10.6.32/frida-server-10.6.32-android-arm.xz", asset.DownloadURL)
}

func TestResolveFilenamesNeverCollide(t *testing.T) {
	t.Parallel()

	seen := make(map[string]string)
	for _, version := range []string{"10.6.32", "16.1.4"} {
		for _, arch := range []string{"arm", "arm64", "x86", "x86_64"} {
			asset := Resolve(testHost, testServer, version, arch)
			require.Contains(t, asset.DownloadURL, "-android-"+arch+".xz")

			prev, dup := seen[asset.Filename]
			require.False(t, dup, "filename %s already produced by %s", asset.Filename, prev)
			seen[asset.Filename] = version + "/" + arch
		}
	}
}

func TestValidVersion(t *testing.T) {
	t.Parallel()

	require.True(t, ValidVersion("10.6.32"))
	require.True(t, ValidVersion("16.1.4\n"))

	require.False(t, ValidVersion(""))
	require.False(t, ValidVersion("frida-server: command not found"))
	require.False(t, ValidVersion("Usage: frida-server [OPTION]"))
	require.False(t, ValidVersion("16.1"))
}
