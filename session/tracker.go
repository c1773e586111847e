// Copyright (c) 2026 the Movie Night Ranker authors.
// Source-available; see LICENSE.

package session

import "sync"

// Selection records which movie a voter has picked but not yet scored.
type Selection struct {
	MovieID    string
	MovieTitle string
	PackID     string
}

// Tracker holds at most one pending selection per voter, keyed by the
// voter's external id. It is purely in-memory: a restart loses all
// pending selections and voters simply re-select. The slot is
// advisory, never authoritative - the vote itself is validated against
// the store when the score arrives.
type Tracker struct {
	mu      sync.Mutex
	pending map[string]Selection
}

func NewTracker() *Tracker {
	return &Tracker{pending: make(map[string]Selection)}
}

// Select records a pending selection for the voter. Selecting again
// before scoring silently overwrites the previous slot: last
// selection wins.
func (t *Tracker) Select(voterExternalID string, sel Selection) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending[voterExternalID] = sel
}

// Get returns the voter's pending selection without clearing it, so a
// recoverable validation error leaves the voter free to retype the
// score.
func (t *Tracker) Get(voterExternalID string) (Selection, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	sel, ok := t.pending[voterExternalID]
	return sel, ok
}

// Consume returns the pending selection and clears the slot.
func (t *Tracker) Consume(voterExternalID string) (Selection, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	sel, ok := t.pending[voterExternalID]
	if ok {
		delete(t.pending, voterExternalID)
	}
	return sel, ok
}

// Clear removes the voter's pending selection, if any.
func (t *Tracker) Clear(voterExternalID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.pending, voterExternalID)
}
