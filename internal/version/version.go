package version

// Version is set via ldflags at build time:
// go build -ldflags "-X github.com/TamerPlatform/frida-push/internal/version.Version=v0.2.0"
var Version = "dev"
