package services

import (
	"errors"

	"github.com/moodscribe/moodscribe/internal/models"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// ErrNotFound is returned when a record is absent or not owned by the caller.
// Foreign-owned rows resolve to the same error as missing rows so existence
// never leaks across users.
var ErrNotFound = errors.New("not found")

// Placeholder values seeded into newly created entries.
const (
	PlaceholderTitle   = "Entry Title"
	PlaceholderContent = "Write about your day!"
)

// CreateEntry creates a new journal entry with placeholder title and content.
func CreateEntry(db *gorm.DB, userID string) (*models.Journal, error) {
	entry := models.Journal{
		UserID:  userID,
		Title:   PlaceholderTitle,
		Content: PlaceholderContent,
	}
	if err := db.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// GetEntry retrieves one entry scoped by owner.
func GetEntry(db *gorm.DB, userID string, entryID uint64) (*models.Journal, error) {
	var entry models.Journal
	err := db.Where("user_id = ? AND id = ?", userID, entryID).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// UpdateEntry overwrites title and content of an owned entry and bumps
// UpdatedAt. Fails with ErrNotFound when the entry does not belong to userID.
func UpdateEntry(db *gorm.DB, userID string, entryID uint64, title, content string) (*models.Journal, error) {
	entry, err := GetEntry(db, userID, entryID)
	if err != nil {
		return nil, err
	}

	entry.Title = title
	entry.Content = content
	if err := db.Save(entry).Error; err != nil {
		return nil, err
	}

	return entry, nil
}

// DeleteEntry deletes an owned entry.
func DeleteEntry(db *gorm.DB, userID string, entryID uint64) error {
	result := db.Where("user_id = ? AND id = ?", userID, entryID).Delete(&models.Journal{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListEntries returns all entries for an owner, newest first.
func ListEntries(db *gorm.DB, userID string) ([]models.Journal, error) {
	query := db.Where("user_id = ?", userID).Order("created_at DESC")

	// The composite owner index only helps the planner on MySQL; the hint
	// syntax is not portable to the other drivers.
	if db.Dialector.Name() == "mysql" {
		query = query.Clauses(hints.UseIndex("idx_user_entry"))
	}

	var entries []models.Journal
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
