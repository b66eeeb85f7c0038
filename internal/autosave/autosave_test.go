package autosave

import (
	"errors"
	"sync"
	"testing"
	"time"
)

// recordingSave captures every save call the controller issues.
type recordingSave struct {
	mu    sync.Mutex
	calls [][2]string
	err   error
}

func (r *recordingSave) save(title, content string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, [2]string{title, content})
	return r.err
}

func (r *recordingSave) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func (r *recordingSave) last() [2]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.calls) == 0 {
		return [2]string{}
	}
	return r.calls[len(r.calls)-1]
}

const window = 100 * time.Millisecond

func TestDebounceCollapsesRapidEdits(t *testing.T) {
	rec := &recordingSave{}
	c := New("Entry Title", "Write about your day!", rec.save, WithWindow(window))

	// Three edits inside one window; only the last values may be sent
	c.Edit("Entry Title", "I")
	time.Sleep(30 * time.Millisecond)
	c.Edit("Entry Title", "I had")
	time.Sleep(30 * time.Millisecond)
	c.Edit("My Day", "I had a wonderful day")

	if got := c.State(); got != PendingSave {
		t.Fatalf("Expected PendingSave while debouncing, got %v", got)
	}
	if rec.count() != 0 {
		t.Fatalf("Save fired inside the debounce window")
	}

	// The window restarts from the last edit
	time.Sleep(window + 50*time.Millisecond)

	if rec.count() != 1 {
		t.Fatalf("Expected exactly 1 save, got %d", rec.count())
	}
	if got := rec.last(); got[0] != "My Day" || got[1] != "I had a wonderful day" {
		t.Errorf("Save carried stale values: %v", got)
	}
	if got := c.State(); got != Idle {
		t.Errorf("Expected Idle after save, got %v", got)
	}

	title, content := c.Baseline()
	if title != "My Day" || content != "I had a wonderful day" {
		t.Errorf("Baseline not advanced: %q %q", title, content)
	}
}

func TestEditMatchingBaselineDoesNotSave(t *testing.T) {
	rec := &recordingSave{}
	c := New("Entry Title", "Write about your day!", rec.save, WithWindow(window))

	// Typing that ends where it started must not hit the store
	c.Edit("Entry Title", "draft")
	c.Edit("Entry Title", "Write about your day!")

	time.Sleep(window + 50*time.Millisecond)

	if rec.count() != 0 {
		t.Errorf("Expected no save for baseline-equal values, got %d", rec.count())
	}
	if got := c.State(); got != Idle {
		t.Errorf("Expected Idle, got %v", got)
	}
}

func TestSaveNowBypassesDebounce(t *testing.T) {
	rec := &recordingSave{}
	c := New("Entry Title", "Write about your day!", rec.save, WithWindow(window))

	c.Edit("My Day", "content")
	if err := c.SaveNow(); err != nil {
		t.Fatalf("SaveNow failed: %v", err)
	}

	if rec.count() != 1 {
		t.Fatalf("Expected 1 save, got %d", rec.count())
	}
	if got := rec.last(); got[0] != "My Day" || got[1] != "content" {
		t.Errorf("SaveNow carried wrong values: %v", got)
	}

	// The pending timer must not fire a second save afterwards
	time.Sleep(window + 50*time.Millisecond)
	if rec.count() != 1 {
		t.Errorf("Debounce timer fired after SaveNow: %d saves", rec.count())
	}
}

func TestFailedSaveKeepsBaselineAndSurfacesError(t *testing.T) {
	saveErr := errors.New("store unavailable")
	rec := &recordingSave{err: saveErr}

	var mu sync.Mutex
	var notified error
	c := New("Entry Title", "Write about your day!", rec.save,
		WithWindow(window),
		WithErrorHandler(func(err error) {
			mu.Lock()
			notified = err
			mu.Unlock()
		}))

	c.Edit("My Day", "content")
	time.Sleep(window + 50*time.Millisecond)

	if rec.count() != 1 {
		t.Fatalf("Expected 1 attempted save, got %d", rec.count())
	}
	if c.Err() == nil {
		t.Error("Expected Err() to surface the failure")
	}
	mu.Lock()
	if !errors.Is(notified, saveErr) {
		t.Errorf("Error handler got %v", notified)
	}
	mu.Unlock()
	if got := c.State(); got != Idle {
		t.Errorf("Expected Idle after failed save, got %v", got)
	}

	title, content := c.Baseline()
	if title != "Entry Title" || content != "Write about your day!" {
		t.Errorf("Baseline advanced on failure: %q %q", title, content)
	}

	// The unchanged pending edit retries as a fresh debounce cycle
	rec.mu.Lock()
	rec.err = nil
	rec.mu.Unlock()

	c.Edit("My Day", "content")
	time.Sleep(window + 50*time.Millisecond)

	if rec.count() != 2 {
		t.Fatalf("Expected retry save, got %d total saves", rec.count())
	}
	title, content = c.Baseline()
	if title != "My Day" || content != "content" {
		t.Errorf("Baseline not advanced after retry: %q %q", title, content)
	}
}

func TestCancelPendingStopsQueuedSave(t *testing.T) {
	rec := &recordingSave{}
	c := New("Entry Title", "Write about your day!", rec.save, WithWindow(window))

	// Delete flow: cancel the debounce before issuing the delete
	c.Edit("My Day", "content")
	c.CancelPending()

	if got := c.State(); got != Idle {
		t.Errorf("Expected Idle after cancel, got %v", got)
	}

	time.Sleep(window + 50*time.Millisecond)
	if rec.count() != 0 {
		t.Errorf("Cancelled save still fired: %d saves", rec.count())
	}
}

func TestEditClearsPreviousError(t *testing.T) {
	rec := &recordingSave{err: errors.New("boom")}
	c := New("a", "b", rec.save, WithWindow(window))

	c.Edit("a2", "b2")
	time.Sleep(window + 50*time.Millisecond)
	if c.Err() == nil {
		t.Fatal("Expected an error after failed save")
	}

	c.Edit("a3", "b3")
	if c.Err() != nil {
		t.Error("Expected a new edit to clear the previous error")
	}
	c.CancelPending()
}
