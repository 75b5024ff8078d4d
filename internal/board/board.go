// SPDX-License-Identifier: Apache-2.0

package board

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/Himanshu-Sharma005/realtime-collaborative-whiteboard/internal/domain"
)

type Deps struct {
	UserID string
	Logger *slog.Logger
}

// Board is one participant's session over the shared log: it mints
// local events, admits remote ones, and serves the resolved visible
// sequence.
//
// All mutation runs under one mutex so a local action and an inbound
// network event never interleave mid-computation; each operation runs
// to completion before the next is processed.
type Board struct {
	mu     sync.Mutex
	logger *slog.Logger
	userID string
	store  *Store

	// nextSeq numbers this origin's stream. It means nothing when
	// compared across origins; ResolveOrder documents the fallout.
	nextSeq int64

	ordered    []domain.Event
	orderedRev uint64
	orderedOK  bool
}

func New(deps Deps) *Board {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	userID := deps.UserID
	if userID == "" {
		userID = uuid.NewString()
	}

	return &Board{
		logger: logger,
		userID: userID,
		store:  NewStore(),
	}
}

func (b *Board) UserID() string {
	return b.userID
}

// NewStrokeID mints an identifier for a stroke about to be drawn.
func (b *Board) NewStrokeID() string {
	return uuid.NewString()
}

// StartStroke records the local pen going down and returns the event
// to broadcast.
func (b *Board) StartStroke(strokeID string, x, y float64) domain.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.emit(domain.StrokeStart{StrokeID: strokeID, X: x, Y: y})
}

// MoveStroke records the local pen extending a stroke.
func (b *Board) MoveStroke(strokeID string, x, y float64) domain.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.emit(domain.StrokeMove{StrokeID: strokeID, X: x, Y: y})
}

// EndStroke records the local pen lifting.
func (b *Board) EndStroke(strokeID string) domain.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.emit(domain.StrokeEnd{StrokeID: strokeID})
}

// Undo constructs a compensating event for this user's most recently
// completed stroke. The backward scan does not skip strokes that are
// already hidden, so a repeated undo with no new stroke in between
// re-targets the same stroke instead of advancing to the previous one.
// That matches the behavior every deployed client already has; see
// DESIGN.md for the corrected-LIFO alternative that was not adopted.
//
// Returns false, emitting nothing, when the user has no completed
// stroke in the log.
func (b *Board) Undo() (domain.Event, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	target, ok := b.store.lastMatch(func(ev domain.Event) bool {
		_, isEnd := ev.Action.(domain.StrokeEnd)
		return isEnd && ev.Origin == b.userID
	})
	if !ok {
		return domain.Event{}, false
	}

	end := target.Action.(domain.StrokeEnd)
	return b.emit(domain.Undo{TargetStrokeID: end.StrokeID}), true
}

// Redo constructs a compensating event for this user's most recent
// Undo event. Redo is scoped to the requester's own undos: it never
// targets another user's undo and never an older one of this user's
// once a newer exists.
//
// Returns false, emitting nothing, when the user has no Undo event in
// the log.
func (b *Board) Redo() (domain.Event, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	target, ok := b.store.lastMatch(func(ev domain.Event) bool {
		_, isUndo := ev.Action.(domain.Undo)
		return isUndo && ev.Origin == b.userID
	})
	if !ok {
		return domain.Event{}, false
	}

	return b.emit(domain.Redo{TargetUndoEventID: target.ID}), true
}

// Ingest admits an event delivered by the relay. Duplicates return
// false and change nothing; that is the intended idempotence of the
// at-least-once channel, not a failure.
func (b *Board) Ingest(ev domain.Event) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	admitted := b.store.Ingest(ev)
	if !admitted {
		b.logger.Debug("duplicate event dropped", "event_id", ev.ID, "origin", ev.Origin)
	}
	return admitted
}

// VisibleEvents returns the ordered, filtered draw sequence a renderer
// consumes: Seq-ascending (arrival order on ties), stroke-bearing,
// live strokes only.
func (b *Board) VisibleEvents() []domain.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return VisibleEvents(b.orderedLocked())
}

// VisibleStrokes returns the IDs of strokes currently live.
func (b *Board) VisibleStrokes() map[string]struct{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	return VisibleStrokes(b.store.log)
}

// EventCount reports the size of the append-only log, undone events
// included.
func (b *Board) EventCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.store.Len()
}

func (b *Board) emit(a domain.Action) domain.Event {
	ev := domain.Event{
		ID:     uuid.New(),
		Seq:    b.nextSeq,
		Origin: b.userID,
		Action: a,
	}
	b.nextSeq++

	// A freshly minted UUID cannot collide with the seen set.
	b.store.Ingest(ev)
	return ev
}

// orderedLocked returns the resolved order, recomputing only when an
// admit has invalidated the cache. Callers hold b.mu.
func (b *Board) orderedLocked() []domain.Event {
	rev := b.store.Revision()
	if !b.orderedOK || b.orderedRev != rev {
		b.ordered = ResolveOrder(b.store.log)
		b.orderedRev = rev
		b.orderedOK = true
	}
	return b.ordered
}
