package model

import "time"

// UserPreferencesID is the fixed id of the singleton preferences row.
const UserPreferencesID = "1"

// Theme modes.
const (
	ThemeModeLight  = "light"
	ThemeModeDark   = "dark"
	ThemeModeSystem = "system"
)

// UserPreferences is a singleton record storing theme settings.
type UserPreferences struct {
	ID         string `gorm:"primaryKey"`
	ThemeMode  string
	ThemeColor string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
