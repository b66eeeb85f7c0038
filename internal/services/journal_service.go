package services

import (
	"context"
	"errors"
	"log"

	"github.com/moodscribe/moodscribe/internal/classifier"
	"github.com/moodscribe/moodscribe/internal/models"
	"gorm.io/gorm"
)

// Classifier is the part of the classifier client the orchestration needs.
type Classifier interface {
	Classify(ctx context.Context, content string) classifier.Result
}

// SaveEntry persists new title/content for an owned entry, classifies the new
// content and upserts the derived analysis. The three steps run sequentially:
// an entry-store failure aborts the operation, the classify step never fails
// (fallback substitution), and an analysis-store failure after the entry
// write is surfaced without rolling the entry back. That inconsistency window
// is accepted; a transaction here would have to span the external call.
func SaveEntry(ctx context.Context, db *gorm.DB, clf Classifier, userID string, entryID uint64, title, content string) (*models.Journal, *models.Analysis, error) {
	entry, err := UpdateEntry(db, userID, entryID, title, content)
	if err != nil {
		return nil, nil, err
	}

	result := clf.Classify(ctx, entry.Content)

	analysis, err := UpsertAnalysis(db, userID, entry.ID, result)
	if err != nil {
		return nil, nil, err
	}

	return entry, analysis, nil
}

// CreateJournalEntry creates a placeholder entry and synchronously classifies
// the placeholder content to seed its initial analysis. The caller typically
// redirects straight into edit mode with the returned entry.
func CreateJournalEntry(ctx context.Context, db *gorm.DB, clf Classifier, userID string) (*models.Journal, error) {
	entry, err := CreateEntry(db, userID)
	if err != nil {
		return nil, err
	}

	result := clf.Classify(ctx, entry.Content)

	if _, err := UpsertAnalysis(db, userID, entry.ID, result); err != nil {
		return nil, err
	}

	return entry, nil
}

// DeleteJournalEntry deletes the analysis before the entry to respect the
// FK-style dependency. A missing analysis is not fatal: entries that never
// completed a classification can still be deleted.
func DeleteJournalEntry(db *gorm.DB, userID string, entryID uint64) error {
	if err := DeleteAnalysis(db, userID, entryID); err != nil {
		if !errors.Is(err, ErrNotFound) {
			return err
		}
		log.Printf("No analysis to delete for entry %d", entryID)
	}

	return DeleteEntry(db, userID, entryID)
}
