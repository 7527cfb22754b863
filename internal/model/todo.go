package model

import "time"

// Priority levels. Stored values outside this range are a data
// integrity violation; reads pass them through unchanged and label
// them Unknown.
const (
	PriorityLow    = 1
	PriorityMedium = 2
	PriorityHigh   = 3
	PriorityUrgent = 4
)

// Todo represents a single task with optional category and group labels.
type Todo struct {
	ID          string `gorm:"primaryKey"`
	Title       string
	Description *string
	Priority    int
	DueDate     *time.Time
	Completed   bool `gorm:"default:false"`
	CompletedAt *time.Time
	CategoryID  *string   `gorm:"index"`
	GroupID     *string   `gorm:"index"`
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time

	Category *Category `gorm:"foreignKey:CategoryID"`
	Group    *Group    `gorm:"foreignKey:GroupID"`
	Subtasks []Subtask `gorm:"foreignKey:TodoID"`
}

// PriorityLabel renders the priority for display.
func (t Todo) PriorityLabel() string {
	switch t.Priority {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	case PriorityUrgent:
		return "Urgent"
	}
	return "Unknown"
}
