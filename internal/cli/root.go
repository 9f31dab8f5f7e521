package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TamerPlatform/frida-push/internal/adb"
	"github.com/TamerPlatform/frida-push/internal/cache"
	"github.com/TamerPlatform/frida-push/internal/config"
	"github.com/TamerPlatform/frida-push/internal/domain"
	"github.com/TamerPlatform/frida-push/internal/extractor"
	"github.com/TamerPlatform/frida-push/internal/fetcher"
	"github.com/TamerPlatform/frida-push/internal/logger"
	"github.com/TamerPlatform/frida-push/internal/manager"
	"github.com/TamerPlatform/frida-push/internal/registry"
	"github.com/TamerPlatform/frida-push/internal/state"
	"github.com/TamerPlatform/frida-push/internal/version"
)

func Execute() error {
	var (
		deviceName string
		force      bool
		logLevel   string
	)

	rootCmd := &cobra.Command{
		Use:     "frida-push",
		Short:   "Push and start the matching frida-server build on a connected device",
		Version: version.Version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if level, ok := logger.ParseLevel(logLevel); ok {
				logger.SetLevel(level)
			}

			deployer, cfg, hist, err := newDeployer()
			if err != nil {
				return err
			}
			if hist != nil {
				defer hist.Close()
			}

			rec, err := deployer.Deploy(cmd.Context(), manager.Options{
				DeviceName: deviceName,
				Force:      force,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\n%s %s%s%s running on %s (%s)\n",
				green("✓"), bold(cfg.ServerName), bold("-"), bold(rec.Version),
				bold(rec.Serial), rec.Arch)
			if rec.PID > 0 {
				fmt.Printf("  %s %d\n", cyan("pid:"), rec.PID)
			}
			return nil
		},
	}

	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	rootCmd.Flags().StringVarP(&deviceName, "device-name", "d", "", "Serial of the device to use (default: the sole attached device)")
	rootCmd.Flags().BoolVarP(&force, "force", "f", false, "Re-download the server even if it is cached")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newClearCmd(),
		newHistoryCmd(),
	)

	// Every fail-fast path surfaces exactly one log line: flag misuse,
	// setup failures, and deploy errors all return through here.
	if err := rootCmd.Execute(); err != nil {
		logger.L().Errorf("%v", err)
		return err
	}

	return nil
}

func newDeployer() (*manager.Deployer, *config.Config, *state.SQLiteHistory, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	c, err := cache.New(cfg.CacheDir)
	if err != nil {
		return nil, nil, nil, err
	}

	hist, err := state.New(cfg.HistoryFile)
	if err != nil {
		// History is bookkeeping; never block a deploy on it.
		logger.L().Warnf("push history unavailable: %v", err)
		hist = nil
	}

	deployer := manager.New(
		adb.New(cfg.ADBPath),
		fetcher.New(cfg.CacheDir, cfg.Timeout()),
		c,
		extractor.New(),
		registry.NewGitHub(cfg.ReleaseAPI, cfg.ReleaseRepo),
		historyOrNil(hist),
		cfg,
		logger.L())

	return deployer, cfg, hist, nil
}

// historyOrNil keeps a nil *SQLiteHistory from turning into a non-nil
// interface value inside the deployer.
func historyOrNil(h *state.SQLiteHistory) domain.History {
	if h == nil {
		return nil
	}
	return h
}
