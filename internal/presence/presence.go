// SPDX-License-Identifier: Apache-2.0

// Package presence tracks ephemeral cursor positions. Presence lives
// in a different consistency class than the event log: last-write-wins
// per user, no ordering, no deduplication, no persistence.
package presence

import (
	"sync"

	"github.com/Himanshu-Sharma005/realtime-collaborative-whiteboard/internal/domain"
)

// Tracker holds one slot per user, overwritten in place on every
// update. Slots are never removed on disconnect: there is no leave
// signal in the transport contract to hang an expiry on, so stale
// cursors linger for the session lifetime.
type Tracker struct {
	mu    sync.RWMutex
	slots map[string]domain.Presence
}

func NewTracker() *Tracker {
	return &Tracker{
		slots: make(map[string]domain.Presence),
	}
}

// Update unconditionally overwrites the slot for p.UserID. Filtering
// out the local participant's own echo is the consumer's job, not the
// tracker's.
func (t *Tracker) Update(p domain.Presence) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.slots[p.UserID] = p
}

// Get returns the latest slot for a user.
func (t *Tracker) Get(userID string) (domain.Presence, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	p, ok := t.slots[userID]
	return p, ok
}

// All returns a copy of every slot, keyed by user ID.
func (t *Tracker) All() map[string]domain.Presence {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make(map[string]domain.Presence, len(t.slots))
	for id, p := range t.slots {
		out[id] = p
	}
	return out
}
