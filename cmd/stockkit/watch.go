package main

import (
	"log"

	"github.com/spf13/cobra"

	"StockKit/internal/notifier"
	"StockKit/internal/scheduler"
)

func newWatchCmd(a *app) *cobra.Command {
	var runNow bool
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run the consistency check on a schedule and alert on problems",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			sched := scheduler.NewScheduler(ctx, a.doctor(), nil)

			tn := notifier.NewTelegramNotifier(a.cfg.Telegram.BotToken, a.cfg.Telegram.ChatID, a.cfg.Proxy)
			if tn.Enabled() {
				sched.Notifier = tn
				log.Println("[INFO] telegram alerts enabled")
			}

			if err := sched.Register(a.cfg.Schedule.CheckCron); err != nil {
				return err
			}
			sched.Start()
			defer sched.Stop()

			if runNow {
				a.printf("%s", notifier.FormatVerdict(sched.RunCheckNow()))
			}

			log.Printf("[INFO] watching OpenBB install (%s). Press Ctrl+C to stop.", a.cfg.Schedule.CheckCron)
			<-ctx.Done()
			log.Println("[INFO] shutdown signal received, stopping...")
			return nil
		},
	}
	cmd.Flags().BoolVar(&runNow, "run-now", false, "run one check immediately")
	return cmd
}
