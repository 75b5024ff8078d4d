// SPDX-License-Identifier: Apache-2.0

// Package board implements the shared-canvas core: an append-only,
// deduplicated event log plus the pure resolvers that derive which
// drawing events are currently visible.
package board

import (
	"github.com/google/uuid"

	"github.com/Himanshu-Sharma005/realtime-collaborative-whiteboard/internal/domain"
)

// Store owns the append-only event log and the seen-ID set.
//
// Ingest is idempotent so the at-least-once relay channel can deliver
// events duplicated and reordered without corrupting the log. The seen
// set grows for the process lifetime; a bounded session is assumed.
// Long-lived deployments need a bounded or TTL'd structure here.
//
// Store is not goroutine-safe; Board serializes access to it.
type Store struct {
	seen map[uuid.UUID]struct{}
	log  []domain.Event
	rev  uint64
}

func NewStore() *Store {
	return &Store{
		seen: make(map[uuid.UUID]struct{}),
		log:  make([]domain.Event, 0, 64),
	}
}

// Ingest admits an event into the log exactly once.
//
// A previously seen ID returns false with no mutation, regardless of
// whether the event originated locally or remotely. An admit bumps the
// revision, invalidating any cached resolution of the log.
func (s *Store) Ingest(ev domain.Event) bool {
	if _, dup := s.seen[ev.ID]; dup {
		return false
	}

	s.seen[ev.ID] = struct{}{}
	s.log = append(s.log, ev)
	s.rev++
	return true
}

// Seen reports whether an event ID has already been admitted.
func (s *Store) Seen(id uuid.UUID) bool {
	_, ok := s.seen[id]
	return ok
}

// Len returns the number of admitted events.
func (s *Store) Len() int {
	return len(s.log)
}

// Revision increments on every admit. Resolvers cache against it.
func (s *Store) Revision() uint64 {
	return s.rev
}

// Events returns a copy of the log in arrival order.
func (s *Store) Events() []domain.Event {
	out := make([]domain.Event, len(s.log))
	copy(out, s.log)
	return out
}

// lastMatch scans the log backward and returns the most recent event
// satisfying pred. Undo and redo target selection are built on this.
func (s *Store) lastMatch(pred func(domain.Event) bool) (domain.Event, bool) {
	for i := len(s.log) - 1; i >= 0; i-- {
		if pred(s.log[i]) {
			return s.log[i], true
		}
	}
	return domain.Event{}, false
}
