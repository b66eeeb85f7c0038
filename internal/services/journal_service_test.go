package services_test

import (
	"context"
	"testing"

	"github.com/moodscribe/moodscribe/internal/classifier"
	"github.com/moodscribe/moodscribe/internal/services"
)

// stubClassifier counts calls and replays canned results.
type stubClassifier struct {
	calls   int
	results []classifier.Result
}

func (s *stubClassifier) Classify(ctx context.Context, content string) classifier.Result {
	s.calls++
	if len(s.results) > 0 {
		result := s.results[0]
		if len(s.results) > 1 {
			s.results = s.results[1:]
		}
		return result
	}
	return testResult(1, "Neutral")
}

func TestCreateJournalEntrySeedsAnalysis(t *testing.T) {
	db := setupTestDB(t)
	userID := createTestUser(t, db)
	clf := &stubClassifier{}

	entry, err := services.CreateJournalEntry(context.Background(), db, clf, userID)
	if err != nil {
		t.Fatalf("CreateJournalEntry failed: %v", err)
	}

	if entry.Content != "Write about your day!" {
		t.Errorf("Expected placeholder content, got %q", entry.Content)
	}
	if clf.calls != 1 {
		t.Errorf("Expected 1 classification, got %d", clf.calls)
	}

	analysis, err := services.GetAnalysis(db, entry.ID)
	if err != nil {
		t.Fatalf("Expected seeded analysis: %v", err)
	}
	if analysis.EntryID != entry.ID || analysis.UserID != userID {
		t.Errorf("Analysis keyed wrong: entry=%d user=%s", analysis.EntryID, analysis.UserID)
	}
}

func TestSaveEntryUpdatesAndOverwritesAnalysis(t *testing.T) {
	db := setupTestDB(t)
	userID := createTestUser(t, db)
	clf := &stubClassifier{results: []classifier.Result{
		testResult(0, "Neutral"),
		{SentimentScore: 8, Mood: "Happy", Summary: "I had a wonderful day.", Subject: "my day", Color: "#FFD700"},
	}}

	entry, err := services.CreateJournalEntry(context.Background(), db, clf, userID)
	if err != nil {
		t.Fatalf("CreateJournalEntry failed: %v", err)
	}
	seeded, err := services.GetAnalysis(db, entry.ID)
	if err != nil {
		t.Fatalf("Expected seeded analysis: %v", err)
	}

	updated, analysis, err := services.SaveEntry(context.Background(), db, clf, userID, entry.ID, "A Good Day", "I had a wonderful day")
	if err != nil {
		t.Fatalf("SaveEntry failed: %v", err)
	}

	if updated.Title != "A Good Day" || updated.Content != "I had a wonderful day" {
		t.Errorf("Entry not updated: title=%q content=%q", updated.Title, updated.Content)
	}
	if analysis.ID != seeded.ID {
		t.Errorf("SaveEntry duplicated the analysis: %d -> %d", seeded.ID, analysis.ID)
	}
	if analysis.Mood != "Happy" || analysis.Summary != "I had a wonderful day." {
		t.Errorf("Analysis not overwritten: mood=%q summary=%q", analysis.Mood, analysis.Summary)
	}
	if clf.calls != 2 {
		t.Errorf("Expected 2 classifications, got %d", clf.calls)
	}
}

func TestSaveEntryFailsFastOnUnownedEntry(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db)
	stranger := createTestUser(t, db)
	clf := &stubClassifier{}

	entry, err := services.CreateJournalEntry(context.Background(), db, clf, owner)
	if err != nil {
		t.Fatalf("CreateJournalEntry failed: %v", err)
	}
	callsAfterCreate := clf.calls

	_, _, err = services.SaveEntry(context.Background(), db, clf, stranger, entry.ID, "x", "y")
	if err != services.ErrNotFound {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}

	// The classifier must not run when the entry write is rejected
	if clf.calls != callsAfterCreate {
		t.Errorf("Classifier ran for a rejected save: %d calls", clf.calls-callsAfterCreate)
	}
}

func TestSaveEntryStoresFallbackResult(t *testing.T) {
	db := setupTestDB(t)
	userID := createTestUser(t, db)
	clf := &stubClassifier{results: []classifier.Result{
		testResult(0, "Neutral"),
		{SentimentScore: -1.5, Mood: "Anxious", Summary: classifier.FallbackSummary, Subject: "Unknown", IsFallback: true, Color: "#123456"},
	}}

	entry, err := services.CreateJournalEntry(context.Background(), db, clf, userID)
	if err != nil {
		t.Fatalf("CreateJournalEntry failed: %v", err)
	}

	_, analysis, err := services.SaveEntry(context.Background(), db, clf, userID, entry.ID, "t", "c")
	if err != nil {
		t.Fatalf("SaveEntry failed: %v", err)
	}
	if !analysis.IsFallback {
		t.Error("Expected fallback flag to be persisted")
	}
}

func TestDeleteJournalEntryRemovesBothRecords(t *testing.T) {
	db := setupTestDB(t)
	userID := createTestUser(t, db)
	clf := &stubClassifier{}

	entry, err := services.CreateJournalEntry(context.Background(), db, clf, userID)
	if err != nil {
		t.Fatalf("CreateJournalEntry failed: %v", err)
	}

	if err := services.DeleteJournalEntry(db, userID, entry.ID); err != nil {
		t.Fatalf("DeleteJournalEntry failed: %v", err)
	}

	if _, err := services.GetEntry(db, userID, entry.ID); err != services.ErrNotFound {
		t.Errorf("Entry survived delete: %v", err)
	}
	if _, err := services.GetAnalysis(db, entry.ID); err != services.ErrNotFound {
		t.Errorf("Analysis survived delete: %v", err)
	}
}

func TestDeleteJournalEntryWithoutAnalysis(t *testing.T) {
	db := setupTestDB(t)
	userID := createTestUser(t, db)

	// Entry created directly on the store, no classification ever ran
	entry, err := services.CreateEntry(db, userID)
	if err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}

	if err := services.DeleteJournalEntry(db, userID, entry.ID); err != nil {
		t.Fatalf("Delete without analysis must succeed: %v", err)
	}
	if _, err := services.GetEntry(db, userID, entry.ID); err != services.ErrNotFound {
		t.Errorf("Entry survived delete: %v", err)
	}
}

func TestDeleteJournalEntryUnowned(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db)
	stranger := createTestUser(t, db)
	clf := &stubClassifier{}

	entry, err := services.CreateJournalEntry(context.Background(), db, clf, owner)
	if err != nil {
		t.Fatalf("CreateJournalEntry failed: %v", err)
	}

	if err := services.DeleteJournalEntry(db, stranger, entry.ID); err != services.ErrNotFound {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}

	// Both records must survive the rejected delete
	if _, err := services.GetEntry(db, owner, entry.ID); err != nil {
		t.Errorf("Entry lost after rejected delete: %v", err)
	}
	if _, err := services.GetAnalysis(db, entry.ID); err != nil {
		t.Errorf("Analysis lost after rejected delete: %v", err)
	}
}
