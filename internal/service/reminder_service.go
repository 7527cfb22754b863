package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"just-in-time/internal/model"
	"just-in-time/internal/notify"
	"just-in-time/internal/repository"
)

// ReminderService watches due dates and hands reminder messages to a
// notifier. It relies only on persisted completion timestamps, so any
// write path that keeps those accurate keeps reminders accurate.
type ReminderService struct {
	todoRepo *repository.TodoRepository
	notifier notify.Notifier
	window   time.Duration

	mu sync.Mutex
	// notified maps todo id to the due date already announced, so a
	// todo is reminded once per due date and again if rescheduled.
	notified map[string]time.Time
}

func NewReminderService(todoRepo *repository.TodoRepository, notifier notify.Notifier, window time.Duration) *ReminderService {
	if window <= 0 {
		window = time.Hour
	}
	return &ReminderService{
		todoRepo: todoRepo,
		notifier: notifier,
		window:   window,
		notified: make(map[string]time.Time),
	}
}

// CheckDueSoon announces every incomplete todo whose due date falls
// inside (now, now+window].
func (s *ReminderService) CheckDueSoon(ctx context.Context, now time.Time) error {
	todos, err := s.todoRepo.ListDueBetween(ctx, now, now.Add(s.window))
	if err != nil {
		return err
	}

	for _, todo := range todos {
		due := *todo.DueDate
		if s.alreadyNotified(todo.ID, due) {
			continue
		}

		minutes := int(math.Round(due.Sub(now).Minutes()))
		msg := notify.Message{
			Title:  "Task Due Soon",
			Body:   fmt.Sprintf("Task %q is due in %d minutes", todo.Title, minutes),
			TodoID: todo.ID,
		}
		if err := s.notifier.Send(ctx, msg); err != nil {
			return fmt.Errorf("send reminder: %w", err)
		}
		s.markNotified(todo.ID, due)
	}

	s.prune(now)
	return nil
}

// SendDailySummary delivers the pending-todo report through the
// notifier.
func (s *ReminderService) SendDailySummary(ctx context.Context, now time.Time) error {
	text, err := s.DailySummary(ctx, now)
	if err != nil {
		return err
	}
	return s.notifier.Send(ctx, notify.Message{Title: "Daily summary", Body: text})
}

// DailySummary builds a human-readable report of pending todos,
// earliest deadline first, undated ones last (newest created first
// among those).
func (s *ReminderService) DailySummary(ctx context.Context, now time.Time) (string, error) {
	pending, err := s.todoRepo.ListPending(ctx)
	if err != nil {
		return "", err
	}

	sort.SliceStable(pending, func(i, j int) bool {
		switch {
		case pending[i].DueDate == nil && pending[j].DueDate == nil:
			return pending[i].CreatedAt.After(pending[j].CreatedAt)
		case pending[i].DueDate == nil:
			return false
		case pending[j].DueDate == nil:
			return true
		default:
			return pending[i].DueDate.Before(*pending[j].DueDate)
		}
	})

	var builder strings.Builder
	builder.WriteString("📋 Daily report\n")
	builder.WriteString(fmt.Sprintf("🗓 %s\n\n", now.Format("2006-01-02")))

	builder.WriteString("🔥 Pending tasks\n")
	if len(pending) == 0 {
		builder.WriteString("— no open tasks\n")
	} else {
		for _, todo := range pending {
			builder.WriteString(formatPending(todo, now))
		}
	}

	return strings.TrimSpace(builder.String()), nil
}

func formatPending(todo model.Todo, now time.Time) string {
	var sb strings.Builder

	icon := "🟢"
	if todo.DueDate != nil {
		due := todo.DueDate.In(now.Location())
		switch {
		case now.After(due):
			icon = "⚠️"
		case due.Sub(now) <= 48*time.Hour:
			icon = "⏳"
		}
	}

	sb.WriteString(fmt.Sprintf("%s %s", icon, strings.TrimSpace(todo.Title)))

	if todo.Priority >= model.PriorityHigh {
		sb.WriteString(fmt.Sprintf(" [%s]", todo.PriorityLabel()))
	}

	if todo.Category != nil {
		name := strings.TrimSpace(todo.Category.Name)
		if name != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", name))
		}
	}

	if todo.DueDate != nil {
		due := todo.DueDate.In(now.Location())
		if now.After(due) {
			sb.WriteString(fmt.Sprintf("\n   ⏰ due %s — overdue", due.Format("2006-01-02")))
		} else {
			daysLeft := int(due.Sub(now).Hours()/24) + 1
			sb.WriteString(fmt.Sprintf("\n   ⏰ due %s · ≈%d days left", due.Format("2006-01-02"), daysLeft))
		}
	}

	if todo.Description != nil && strings.TrimSpace(*todo.Description) != "" {
		sb.WriteString(fmt.Sprintf("\n   📝 %s", strings.TrimSpace(*todo.Description)))
	}

	sb.WriteByte('\n')
	return sb.String()
}

func (s *ReminderService) alreadyNotified(id string, due time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen, ok := s.notified[id]
	return ok && seen.Equal(due)
}

func (s *ReminderService) markNotified(id string, due time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notified[id] = due
}

func (s *ReminderService) prune(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, due := range s.notified {
		if due.Before(now) {
			delete(s.notified, id)
		}
	}
}
