// SPDX-License-Identifier: Apache-2.0

package board

import (
	"github.com/google/uuid"

	"github.com/Himanshu-Sharma005/realtime-collaborative-whiteboard/internal/domain"
)

// VisibleStrokes computes the set of stroke IDs currently live.
//
// A Redo neutralizes exactly one Undo event (by event ID). An Undo
// that has not been redone hides its target stroke. If several live
// Undo events target the same stroke, every one of them must be
// individually redone before the stroke reappears.
//
// Pure function over a read-only view of the log; order-insensitive.
func VisibleStrokes(log []domain.Event) map[string]struct{} {
	redone := make(map[uuid.UUID]struct{})
	for _, ev := range log {
		if r, ok := ev.Action.(domain.Redo); ok {
			redone[r.TargetUndoEventID] = struct{}{}
		}
	}

	undone := make(map[string]struct{})
	for _, ev := range log {
		u, ok := ev.Action.(domain.Undo)
		if !ok {
			continue
		}
		if _, neutralized := redone[ev.ID]; neutralized {
			continue
		}
		undone[u.TargetStrokeID] = struct{}{}
	}

	visible := make(map[string]struct{})
	for _, ev := range log {
		strokeID, ok := domain.StrokeRef(ev.Action)
		if !ok {
			continue
		}
		if _, hidden := undone[strokeID]; hidden {
			continue
		}
		visible[strokeID] = struct{}{}
	}

	return visible
}

// VisibleEvents filters an ordered log down to the sequence a renderer
// consumes: stroke-bearing events whose stroke is live, in the given
// order. Compensating events never reach the renderer.
func VisibleEvents(ordered []domain.Event) []domain.Event {
	visible := VisibleStrokes(ordered)

	out := make([]domain.Event, 0, len(ordered))
	for _, ev := range ordered {
		strokeID, ok := domain.StrokeRef(ev.Action)
		if !ok {
			continue
		}
		if _, live := visible[strokeID]; !live {
			continue
		}
		out = append(out, ev)
	}

	return out
}
