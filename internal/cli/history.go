package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/TamerPlatform/frida-push/internal/config"
	"github.com/TamerPlatform/frida-push/internal/state"
)

func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show past deploys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			hist, err := state.New(cfg.HistoryFile)
			if err != nil {
				return err
			}
			defer hist.Close()

			records, err := hist.All()
			if err != nil {
				return err
			}

			if len(records) == 0 {
				fmt.Printf("%s No deploys recorded yet\n", dim("○"))
				return nil
			}

			for _, rec := range records {
				line := fmt.Sprintf(" %s  %s %s",
					dim(rec.PushedAt.Local().Format(time.DateTime)),
					bold(rec.Serial),
					fmt.Sprintf("%s-%s-%s", cfg.ServerName, rec.Version, rec.Arch))
				if rec.PID > 0 {
					line += fmt.Sprintf("  %s", dim(fmt.Sprintf("pid %d", rec.PID)))
				}
				fmt.Println(line)
			}

			return nil
		},
	}
}
