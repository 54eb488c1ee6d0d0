package client

import (
	"context"
	"sync"
	"time"

	"quicknotes/model"
)

const DefaultAutosaveDelay = time.Second

// SaveFunc persists the edited note.
type SaveFunc func(ctx context.Context, note model.Note) (*model.Note, error)

// Autosaver buffers edits and saves the latest one after an idle delay.
// At most one save is pending; a new edit replaces it and restarts the delay.
type Autosaver struct {
	ctx   context.Context
	delay time.Duration
	save  SaveFunc

	mu       sync.Mutex
	timer    *time.Timer
	pending  *model.Note
	seq      uint64
	inFlight int
	lastErr  error
}

func NewAutosaver(ctx context.Context, delay time.Duration, save SaveFunc) *Autosaver {
	if delay <= 0 {
		delay = DefaultAutosaveDelay
	}
	return &Autosaver{ctx: ctx, delay: delay, save: save}
}

// Edit records the note's current editor state and reschedules the save.
func (a *Autosaver) Edit(note model.Note) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.timer != nil {
		a.timer.Stop()
	}
	a.seq++
	seq := a.seq
	a.pending = &note
	a.timer = time.AfterFunc(a.delay, func() { a.fire(seq) })
}

// Flush saves any pending edit now.
func (a *Autosaver) Flush() error {
	a.mu.Lock()
	note, ok := a.takeLocked()
	if ok {
		a.inFlight++
	}
	a.mu.Unlock()
	if !ok {
		return nil
	}
	return a.run(note)
}

// Cancel drops the pending edit without saving.
func (a *Autosaver) Cancel() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.takeLocked()
}

// Saved reports whether nothing is pending or being written.
func (a *Autosaver) Saved() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pending == nil && a.inFlight == 0
}

func (a *Autosaver) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastErr
}

func (a *Autosaver) fire(seq uint64) {
	a.mu.Lock()
	if seq != a.seq {
		a.mu.Unlock()
		return
	}
	note, ok := a.takeLocked()
	if ok {
		a.inFlight++
	}
	a.mu.Unlock()
	if ok {
		_ = a.run(note)
	}
}

// takeLocked detaches the pending edit and invalidates any armed timer.
func (a *Autosaver) takeLocked() (model.Note, bool) {
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.seq++
	if a.pending == nil {
		return model.Note{}, false
	}
	note := *a.pending
	a.pending = nil
	return note, true
}

// run saves note; a blank title is saved as DefaultNoteTitle.
func (a *Autosaver) run(note model.Note) error {
	if note.Title == "" {
		note.Title = DefaultNoteTitle
	}
	_, err := a.save(a.ctx, note)

	a.mu.Lock()
	a.inFlight--
	a.lastErr = err
	a.mu.Unlock()
	return err
}
