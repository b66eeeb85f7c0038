package models

import (
	"time"
)

// User represents an application user, mirrored from the identity provider.
// ClerkID holds the identity provider's subject id; a local row is created
// lazily the first time an authenticated subject is seen.
type User struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	ClerkID   string    `gorm:"size:255;not null;uniqueIndex" json:"clerkId"`
	Email     string    `gorm:"size:255;not null" json:"email"`
	Name      string    `gorm:"size:255" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}
