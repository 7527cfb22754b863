package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"just-in-time/internal/config"
	"just-in-time/internal/notify"
	"just-in-time/internal/repository"
	"just-in-time/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	todoRepo := repository.NewTodoRepository(db)

	var notifier notify.Notifier = notify.LogNotifier{}
	if cfg.TelegramToken != "" {
		notifier, err = notify.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Fatalf("notifier: %v", err)
		}
	}

	reminderSvc := service.NewReminderService(todoRepo, notifier, cfg.ReminderWindow)

	scheduler := service.NewSchedulerService(time.Local)
	err = scheduler.ScheduleEvery("due-soon-scan", cfg.ReminderInterval, func(jobCtx context.Context) error {
		return reminderSvc.CheckDueSoon(jobCtx, time.Now())
	})
	if err != nil {
		log.Fatalf("schedule reminders: %v", err)
	}
	err = scheduler.ScheduleDaily("daily-summary", cfg.SummaryTime, func(jobCtx context.Context) error {
		return reminderSvc.SendDailySummary(jobCtx, time.Now())
	})
	if err != nil {
		log.Fatalf("schedule summary: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	log.Println("Just-in-time reminder daemon started.")
	<-ctx.Done()
	log.Println("Shutdown complete.")
}
