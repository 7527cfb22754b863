package model

import "time"

// Category labels todos by area (work, health, study, etc.).
type Category struct {
	ID          string `gorm:"primaryKey"`
	Name        string
	Description *string
	Color       string
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time

	Todos []Todo `gorm:"foreignKey:CategoryID"`
}
