package entity

import "time"

// Entry is a single journal note. Timestamps are owned by the store.
type Entry struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"`
	Title     string    `gorm:"not null;size:255"`
	Content   string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}
