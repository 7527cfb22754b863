package model

import "time"

// Group is a second, independent labeling dimension for todos; a todo
// may carry at most one category and one group.
type Group struct {
	ID          string `gorm:"primaryKey"`
	Name        string
	Description *string
	Color       string
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time

	Todos []Todo `gorm:"foreignKey:GroupID"`
}
