// Package autosave debounces rapid journal edits into single orchestrated
// save calls and tracks the last-confirmed-saved baseline so unchanged
// content is never re-sent.
package autosave

import (
	"sync"
	"time"
)

// DefaultWindow is the debounce delay after the last edit before a save fires.
const DefaultWindow = time.Second

// State is the controller's position in the save cycle.
type State int

const (
	// Idle means no edit is waiting and no save is running.
	Idle State = iota
	// PendingSave means an edit is waiting out the debounce window.
	PendingSave
	// Saving means a save call is in flight.
	Saving
)

// SaveFunc performs one orchestrated save of the given field values.
type SaveFunc func(title, content string) error

// Controller runs the autosave state machine for one open entry. Unlike its
// single-threaded browser counterpart it is safe for concurrent use: the
// debounce timer fires on its own goroutine.
type Controller struct {
	mu     sync.Mutex
	window time.Duration
	save   SaveFunc

	timer   *time.Timer
	pending bool
	state   State

	title   string
	content string

	baselineTitle   string
	baselineContent string

	lastErr error
	onError func(error)
}

// Option configures a Controller.
type Option func(*Controller)

// WithWindow overrides the debounce window.
func WithWindow(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.window = d
		}
	}
}

// WithErrorHandler registers a callback invoked when an autosave fails.
func WithErrorHandler(fn func(error)) Option {
	return func(c *Controller) {
		c.onError = fn
	}
}

// New creates a controller whose baseline is the entry's current title and
// content as loaded from the store.
func New(title, content string, save SaveFunc, opts ...Option) *Controller {
	c := &Controller{
		window:          DefaultWindow,
		save:            save,
		title:           title,
		content:         content,
		baselineTitle:   title,
		baselineContent: content,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Edit records new field values. When they differ from the last-confirmed
// baseline it restarts the debounce window; only the latest values within the
// window are sent. Edits matching the baseline cancel any pending save.
func (c *Controller) Edit(title, content string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.title = title
	c.content = content
	c.lastErr = nil

	if title == c.baselineTitle && content == c.baselineContent {
		// Nothing to write; drop a pending save rather than issuing a
		// redundant one.
		c.cancelLocked()
		if c.state == PendingSave {
			c.state = Idle
		}
		return
	}

	c.pending = true
	c.state = PendingSave
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.window, c.fire)
}

// fire is the debounce timer callback.
func (c *Controller) fire() {
	c.mu.Lock()
	if !c.pending {
		c.mu.Unlock()
		return
	}
	title, content := c.title, c.content
	c.pending = false
	c.state = Saving
	c.mu.Unlock()

	c.finishSave(title, content, c.save(title, content))
}

// SaveNow bypasses the debounce window and saves the current field values
// synchronously. On success the baseline is advanced; the caller typically
// navigates away from the editor afterwards.
func (c *Controller) SaveNow() error {
	c.mu.Lock()
	c.cancelLocked()
	title, content := c.title, c.content
	c.state = Saving
	c.lastErr = nil
	c.mu.Unlock()

	err := c.save(title, content)
	c.finishSave(title, content, err)
	return err
}

// finishSave applies the outcome of a save call for the values that were sent.
func (c *Controller) finishSave(title, content string, err error) {
	c.mu.Lock()
	if err != nil {
		c.lastErr = err
		if c.state == Saving {
			c.state = Idle
		}
		fn := c.onError
		c.mu.Unlock()
		if fn != nil {
			fn(err)
		}
		return
	}

	c.baselineTitle = title
	c.baselineContent = content
	// A newer edit during the save keeps its PendingSave state
	if c.state == Saving {
		c.state = Idle
	}
	c.mu.Unlock()
}

// CancelPending drops any pending debounce timer without saving. Callers must
// invoke this before issuing a delete so a queued autosave cannot race the
// deletion.
func (c *Controller) CancelPending() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelLocked()
	if c.state == PendingSave {
		c.state = Idle
	}
}

func (c *Controller) cancelLocked() {
	c.pending = false
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// State reports the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Err reports the error of the last failed save, cleared by the next edit or
// successful save.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Baseline reports the last-confirmed-saved title and content.
func (c *Controller) Baseline() (string, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.baselineTitle, c.baselineContent
}
