package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ehtishamsajjad/tm/internal/bot"
	"github.com/ehtishamsajjad/tm/internal/config"
	"github.com/ehtishamsajjad/tm/internal/service"
)

const reportTimeout = 30 * time.Second

func newBotCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram bot and the report scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := st.cfg.RequireBot(); err != nil {
				return err
			}
			a, err := newApp(st.cfg, st.log)
			if err != nil {
				return err
			}
			defer a.Close()

			telegramBot, err := bot.New(st.cfg.TelegramToken, a.users, a.tasks, a.reports, st.log.Named("bot"))
			if err != nil {
				return err
			}

			scheduler := service.NewSchedulerService(time.Local, st.log)
			if err := scheduleReports(scheduler, st.cfg, func() {
				jobCtx, cancel := context.WithTimeout(context.Background(), reportTimeout)
				defer cancel()
				if err := telegramBot.SendReports(jobCtx); err != nil && !errors.Is(err, context.Canceled) {
					st.log.Error("send reports", zap.Error(err))
				}
			}); err != nil {
				return err
			}
			scheduler.Start()
			defer scheduler.Stop()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			st.log.Info("bot started")
			if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			st.log.Info("shutdown complete")
			return nil
		},
	}
}

// scheduleReports registers the digest job at ReportAt when set, otherwise
// every ReportInterval.
func scheduleReports(scheduler *service.SchedulerService, cfg config.Config, job func()) error {
	if cfg.ReportAt != "" {
		_, err := scheduler.ScheduleDaily(cfg.ReportAt, job)
		return err
	}
	_, err := scheduler.ScheduleInterval(cfg.ReportInterval, job)
	return err
}
