package models

import (
	"time"
)

// Analysis holds the sentiment/mood metadata derived from one journal entry.
// EntryID is unique so the relationship stays strictly 1:1; every re-save of
// an entry overwrites the row in place, no analysis history is kept.
type Analysis struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         string    `gorm:"type:char(36);not null;index" json:"userId"`
	EntryID        uint64    `gorm:"not null;uniqueIndex" json:"entryId"`
	SentimentScore float64   `gorm:"not null;default:0" json:"sentimentScore"`
	Mood           string    `gorm:"size:64;not null" json:"mood"`
	Summary        string    `gorm:"type:text" json:"summary"`
	Subject        string    `gorm:"size:255" json:"subject"`
	Negative       bool      `gorm:"not null;default:false" json:"negative"`
	Color          string    `gorm:"size:32" json:"color"`
	IsFallback     bool      `gorm:"not null;default:false" json:"isFallback"`
	RawResponse    RawJSON   `gorm:"type:json" json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// TableName overrides the table name for Analysis
func (Analysis) TableName() string {
	return "analyses"
}
