// SPDX-License-Identifier: Apache-2.0

package board

import (
	"testing"

	"github.com/google/uuid"

	"github.com/Himanshu-Sharma005/realtime-collaborative-whiteboard/internal/domain"
)

func strokeEvents(user, strokeID string, seq int64) []domain.Event {
	return []domain.Event{
		makeEvent(user, seq, domain.StrokeStart{StrokeID: strokeID, X: 0, Y: 0}),
		makeEvent(user, seq+1, domain.StrokeMove{StrokeID: strokeID, X: 10, Y: 10}),
		makeEvent(user, seq+2, domain.StrokeEnd{StrokeID: strokeID}),
	}
}

func TestUndoHidesRedoRestores(t *testing.T) {
	log := strokeEvents("u1", "s1", 0)

	undo := makeEvent("u1", 3, domain.Undo{TargetStrokeID: "s1"})
	log = append(log, undo)

	visible := VisibleStrokes(log)
	if _, ok := visible["s1"]; ok {
		t.Fatal("expected s1 hidden after undo")
	}
	if got := VisibleEvents(ResolveOrder(log)); len(got) != 0 {
		t.Fatalf("expected empty visible sequence, got %d events", len(got))
	}

	log = append(log, makeEvent("u1", 4, domain.Redo{TargetUndoEventID: undo.ID}))

	visible = VisibleStrokes(log)
	if _, ok := visible["s1"]; !ok {
		t.Fatal("expected s1 restored after redo")
	}
}

func TestMultiUndoRequiresFullRedo(t *testing.T) {
	log := strokeEvents("u1", "s1", 0)

	undoA := makeEvent("u1", 3, domain.Undo{TargetStrokeID: "s1"})
	undoB := makeEvent("u1", 4, domain.Undo{TargetStrokeID: "s1"})
	log = append(log, undoA, undoB)

	if _, ok := VisibleStrokes(log)["s1"]; ok {
		t.Fatal("expected s1 hidden under two undos")
	}

	// Redoing one of the two is not enough.
	log = append(log, makeEvent("u1", 5, domain.Redo{TargetUndoEventID: undoA.ID}))
	if _, ok := VisibleStrokes(log)["s1"]; ok {
		t.Fatal("expected s1 still hidden: one live undo remains")
	}

	// Only once both are redone does the stroke reappear.
	log = append(log, makeEvent("u1", 6, domain.Redo{TargetUndoEventID: undoB.ID}))
	if _, ok := VisibleStrokes(log)["s1"]; !ok {
		t.Fatal("expected s1 visible after both undos redone")
	}
}

func TestUndoOnlyHidesTargetStroke(t *testing.T) {
	log := strokeEvents("u1", "s1", 0)
	log = append(log, strokeEvents("u2", "s2", 0)...)
	log = append(log, makeEvent("u1", 3, domain.Undo{TargetStrokeID: "s1"}))

	visible := VisibleStrokes(log)
	if _, ok := visible["s1"]; ok {
		t.Fatal("expected s1 hidden")
	}
	if _, ok := visible["s2"]; !ok {
		t.Fatal("expected s2 untouched")
	}

	events := VisibleEvents(ResolveOrder(log))
	for _, ev := range events {
		id, ok := domain.StrokeRef(ev.Action)
		if !ok {
			t.Fatalf("compensating event leaked to renderer: %T", ev.Action)
		}
		if id != "s2" {
			t.Fatalf("hidden stroke leaked to renderer: %s", id)
		}
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 visible events for s2, got %d", len(events))
	}
}

func TestRedoForUnknownUndoIsInert(t *testing.T) {
	log := strokeEvents("u1", "s1", 0)
	log = append(log,
		makeEvent("u1", 3, domain.Undo{TargetStrokeID: "s1"}),
		// Targets an undo event nobody has seen; neutralizes nothing.
		makeEvent("u1", 4, domain.Redo{TargetUndoEventID: uuid.New()}),
	)

	if _, ok := VisibleStrokes(log)["s1"]; ok {
		t.Fatal("expected s1 still hidden: redo targeted a different undo")
	}
}

// End to end: a two-point path, an undo that empties the canvas, a
// redo that restores it, seq 0..4 from one user.
func TestDrawUndoRedoScenario(t *testing.T) {
	log := []domain.Event{
		makeEvent("u1", 0, domain.StrokeStart{StrokeID: "s", X: 0, Y: 0}),
		makeEvent("u1", 1, domain.StrokeMove{StrokeID: "s", X: 10, Y: 10}),
		makeEvent("u1", 2, domain.StrokeEnd{StrokeID: "s"}),
	}

	path := VisibleEvents(ResolveOrder(log))
	if len(path) != 3 {
		t.Fatalf("expected 3 visible events, got %d", len(path))
	}
	start := path[0].Action.(domain.StrokeStart)
	move := path[1].Action.(domain.StrokeMove)
	if start.X != 0 || start.Y != 0 || move.X != 10 || move.Y != 10 {
		t.Fatalf("unexpected path: %+v -> %+v", start, move)
	}

	undo := makeEvent("u1", 3, domain.Undo{TargetStrokeID: "s"})
	log = append(log, undo)
	if got := VisibleEvents(ResolveOrder(log)); len(got) != 0 {
		t.Fatalf("expected empty canvas after undo, got %d events", len(got))
	}

	log = append(log, makeEvent("u1", 4, domain.Redo{TargetUndoEventID: undo.ID}))
	path = VisibleEvents(ResolveOrder(log))
	if len(path) != 3 {
		t.Fatalf("expected restored path of 3 events, got %d", len(path))
	}
}
