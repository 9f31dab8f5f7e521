package main

import (
	"os"

	"github.com/TamerPlatform/frida-push/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
