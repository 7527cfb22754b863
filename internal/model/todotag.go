package model

// TodoTag associates a todo with a tag id.
type TodoTag struct {
	ID     string `gorm:"primaryKey"`
	TodoID string `gorm:"index"`
	TagID  string `gorm:"index"`
}
