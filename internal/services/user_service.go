package services

import (
	"github.com/google/uuid"
	"github.com/moodscribe/moodscribe/internal/models"
	"gorm.io/gorm"
)

// FindOrCreateUser resolves the local user row for an identity-provider
// subject, creating it on first sight.
func FindOrCreateUser(db *gorm.DB, clerkID, email, name string) (*models.User, error) {
	var user models.User
	err := db.Where("clerk_id = ?", clerkID).
		Attrs(models.User{
			ID:      uuid.NewString(),
			ClerkID: clerkID,
			Email:   email,
			Name:    name,
		}).
		FirstOrCreate(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}
