package models

import (
	"time"
)

// Journal represents a single journal entry owned by one user.
// The (user_id, id) pair is unique so every lookup is owner scoped.
type Journal struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement;index:idx_user_entry,unique,priority:2" json:"id"`
	UserID    string    `gorm:"type:char(36);not null;index:idx_user_entry,unique,priority:1" json:"userId"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName overrides the table name for Journal
func (Journal) TableName() string {
	return "journal_entries"
}
