package model

import "time"

// Subtask is a child step owned by exactly one todo and deleted with it.
type Subtask struct {
	ID          string `gorm:"primaryKey"`
	Title       string
	Completed   bool `gorm:"default:false"`
	CompletedAt *time.Time
	TodoID      string    `gorm:"index"`
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time
}
