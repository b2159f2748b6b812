package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"dayplanner/internal/bot"
	"dayplanner/internal/repository"
	"dayplanner/internal/service"
	"dayplanner/pkg/logx"
)

func newBotCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram planner bot",
		Long: "Run the Telegram planner bot.\n\n" +
			"Requires TELEGRAM_TOKEN. PROMPT_TIME=HH:MM enables the daily morning prompt.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Config.ValidateBot(); err != nil {
				return err
			}
			return runBot(cmd.Context(), app)
		},
	}
}

func runBot(ctx context.Context, app *App) error {
	cfg := app.Config
	log := app.Log

	userRepo := repository.NewUserRepository()
	planSvc := service.NewPlanService(service.FixedDelay(cfg.PlannerDelay), cfg.PlanRatePerMinute, log)
	categorySvc := service.NewCategoryService()
	reminderSvc := service.NewReminderService(userRepo)

	telegramBot, err := bot.New(cfg.TelegramToken, userRepo, planSvc, categorySvc, reminderSvc, log)
	if err != nil {
		return fmt.Errorf("bot: %w", err)
	}

	if cfg.PromptTime != "" {
		scheduler := service.NewPromptScheduler(time.Local, log)
		if _, err := scheduler.ScheduleDaily(cfg.PromptTime, func() {
			jobCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()
			if err := telegramBot.SendMorningPrompts(jobCtx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("morning prompt", logx.Err(err))
			}
		}); err != nil {
			return fmt.Errorf("schedule morning prompt: %w", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
		log.Info("morning prompt scheduled", logx.String("at", cfg.PromptTime))
	}

	log.Info("daily planner bot started")
	if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("bot stopped with error: %w", err)
	}
	log.Info("shutdown complete")
	return nil
}
