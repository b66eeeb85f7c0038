package services

import (
	"errors"
	"math"

	"github.com/moodscribe/moodscribe/internal/classifier"
	"github.com/moodscribe/moodscribe/internal/models"
	"gorm.io/gorm"
)

// UpsertAnalysis creates or fully overwrites the analysis row for an entry.
// The entry_id unique index keeps the relationship 1:1; repeat upserts with
// the same result are idempotent.
func UpsertAnalysis(db *gorm.DB, userID string, entryID uint64, result classifier.Result) (*models.Analysis, error) {
	var analysis models.Analysis
	err := db.Where("entry_id = ?", entryID).First(&analysis).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	analysis.UserID = userID
	analysis.EntryID = entryID
	analysis.SentimentScore = result.SentimentScore
	analysis.Mood = result.Mood
	analysis.Summary = result.Summary
	analysis.Subject = result.Subject
	analysis.Negative = result.Negative
	analysis.Color = result.Color
	analysis.IsFallback = result.IsFallback
	analysis.RawResponse = models.NewRawJSON(result.Raw)

	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := db.Create(&analysis).Error; err != nil {
			return nil, err
		}
	} else {
		if err := db.Save(&analysis).Error; err != nil {
			return nil, err
		}
	}

	return &analysis, nil
}

// GetAnalysis retrieves the analysis for an entry.
func GetAnalysis(db *gorm.DB, entryID uint64) (*models.Analysis, error) {
	var analysis models.Analysis
	err := db.Where("entry_id = ?", entryID).First(&analysis).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &analysis, nil
}

// DeleteAnalysis deletes the analysis for an owned entry. Ownership is
// enforced here as well, not just on the entry delete.
func DeleteAnalysis(db *gorm.DB, userID string, entryID uint64) error {
	result := db.Where("user_id = ? AND entry_id = ?", userID, entryID).Delete(&models.Analysis{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListAnalyses returns all analyses for an owner in creation order.
func ListAnalyses(db *gorm.DB, userID string) ([]models.Analysis, error) {
	var analyses []models.Analysis
	err := db.Where("user_id = ?", userID).Order("created_at ASC").Find(&analyses).Error
	if err != nil {
		return nil, err
	}
	return analyses, nil
}

// AverageSentiment computes the mean sentiment score across all of the
// owner's analyses, rounded to the nearest integer with half values rounding
// toward positive infinity. Returns 0 when the owner has no analyses.
func AverageSentiment(db *gorm.DB, userID string) (int, error) {
	analyses, err := ListAnalyses(db, userID)
	if err != nil {
		return 0, err
	}
	if len(analyses) == 0 {
		return 0, nil
	}

	var sum float64
	for _, a := range analyses {
		sum += a.SentimentScore
	}

	return int(math.Floor(sum/float64(len(analyses)) + 0.5)), nil
}
