package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config keeps runtime settings for the planner daemon.
type Config struct {
	DatabaseURL      string
	TelegramToken    string
	TelegramChatID   int64
	SummaryTime      string
	ReminderInterval time.Duration
	ReminderWindow   time.Duration
}

// Load reads configuration from environment variables with sane
// defaults. Telegram delivery is optional; without a token, reminders
// go to the process log.
func Load() (Config, error) {
	cfg := Config{
		DatabaseURL:      strings.TrimSpace(os.Getenv("DATABASE_URL")),
		TelegramToken:    strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")),
		SummaryTime:      strings.TrimSpace(os.Getenv("SUMMARY_TIME")),
		ReminderInterval: parseMinutes(strings.TrimSpace(os.Getenv("REMINDER_INTERVAL_MINUTES"))),
		ReminderWindow:   parseMinutes(strings.TrimSpace(os.Getenv("REMINDER_WINDOW_MINUTES"))),
	}

	if raw := strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid TELEGRAM_CHAT_ID %q", raw)
		}
		cfg.TelegramChatID = id
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "just_in_time.db"
	}
	if cfg.SummaryTime == "" {
		cfg.SummaryTime = "09:00"
	}
	if cfg.ReminderInterval == 0 {
		cfg.ReminderInterval = 5 * time.Minute
	}
	if cfg.ReminderWindow == 0 {
		cfg.ReminderWindow = time.Hour
	}

	if cfg.TelegramToken != "" && cfg.TelegramChatID == 0 {
		return cfg, fmt.Errorf("TELEGRAM_CHAT_ID is required when TELEGRAM_TOKEN is set")
	}

	return cfg, nil
}

func parseMinutes(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	minutes, err := time.ParseDuration(raw + "m")
	if err != nil || minutes <= 0 {
		return 0
	}
	return minutes
}
