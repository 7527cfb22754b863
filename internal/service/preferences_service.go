package service

import (
	"context"
	"errors"
	"time"

	"just-in-time/internal/livequery"
	"just-in-time/internal/model"
	"just-in-time/internal/repository"
)

// Defaults for the auto-created preferences row.
const (
	defaultThemeMode  = model.ThemeModeSystem
	defaultThemeColor = "#31d071"
)

// PreferencesService manages the singleton user preferences record.
type PreferencesService struct {
	repo *repository.PreferencesRepository
	bus  *livequery.Bus
}

func NewPreferencesService(repo *repository.PreferencesRepository, bus *livequery.Bus) *PreferencesService {
	return &PreferencesService{repo: repo, bus: bus}
}

// Get returns the preferences row, creating it with defaults on first
// access.
func (s *PreferencesService) Get(ctx context.Context) (*model.UserPreferences, error) {
	prefs, err := s.repo.Get(ctx)
	switch {
	case err == nil:
		return prefs, nil
	case errors.Is(err, repository.ErrNotFound):
		now := time.Now()
		created := model.UserPreferences{
			ID:         model.UserPreferencesID,
			ThemeMode:  defaultThemeMode,
			ThemeColor: defaultThemeColor,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := s.repo.Create(ctx, &created); err != nil {
			return nil, err
		}
		s.publish()
		return &created, nil
	default:
		return nil, err
	}
}

// SetThemeMode updates the theme mode; mode must be one of light,
// dark or system.
func (s *PreferencesService) SetThemeMode(ctx context.Context, mode string) (*model.UserPreferences, error) {
	switch mode {
	case model.ThemeModeLight, model.ThemeModeDark, model.ThemeModeSystem:
	default:
		return nil, &ValidationError{Field: "themeMode", Reason: "must be light, dark or system"}
	}

	if _, err := s.Get(ctx); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateFields(ctx, map[string]any{
		"theme_mode": mode,
		"updated_at": time.Now(),
	}); err != nil {
		return nil, err
	}

	s.publish()
	return s.repo.Get(ctx)
}

// SetThemeColor updates the theme color.
func (s *PreferencesService) SetThemeColor(ctx context.Context, color string) (*model.UserPreferences, error) {
	if color == "" {
		return nil, &ValidationError{Field: "themeColor", Reason: "must not be empty"}
	}

	if _, err := s.Get(ctx); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateFields(ctx, map[string]any{
		"theme_color": color,
		"updated_at":  time.Now(),
	}); err != nil {
		return nil, err
	}

	s.publish()
	return s.repo.Get(ctx)
}

// Watch re-runs Get on every preferences write.
func (s *PreferencesService) Watch(ctx context.Context) *livequery.Query[*model.UserPreferences] {
	return livequery.Watch(ctx, s.bus, []livequery.Table{livequery.TablePreferences}, s.Get)
}

func (s *PreferencesService) publish() {
	if s.bus != nil {
		s.bus.Publish(livequery.TablePreferences)
	}
}
