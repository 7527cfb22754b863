package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"just-in-time/internal/model"
)

// PreferencesRepository stores the singleton user preferences row.
type PreferencesRepository struct {
	db *gorm.DB
}

func NewPreferencesRepository(db *gorm.DB) *PreferencesRepository {
	return &PreferencesRepository{db: db}
}

func (r *PreferencesRepository) Get(ctx context.Context) (*model.UserPreferences, error) {
	var prefs model.UserPreferences
	if err := r.db.WithContext(ctx).First(&prefs, "id = ?", model.UserPreferencesID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find preferences: %w", err)
	}
	return &prefs, nil
}

func (r *PreferencesRepository) Create(ctx context.Context, prefs *model.UserPreferences) error {
	if err := r.db.WithContext(ctx).Create(prefs).Error; err != nil {
		return fmt.Errorf("create preferences: %w", err)
	}
	return nil
}

// UpdateFields merges the given column values into the singleton row.
func (r *PreferencesRepository) UpdateFields(ctx context.Context, fields map[string]any) error {
	result := r.db.WithContext(ctx).
		Model(&model.UserPreferences{}).
		Where("id = ?", model.UserPreferencesID).
		Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("update preferences: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
