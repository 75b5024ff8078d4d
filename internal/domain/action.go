// SPDX-License-Identifier: Apache-2.0

package domain

import "github.com/google/uuid"

// Kind is the wire discriminator for a draw action.
type Kind string

const (
	KindStrokeStart Kind = "stroke_start"
	KindStrokeMove  Kind = "stroke_move"
	KindStrokeEnd   Kind = "stroke_end"
	KindUndo        Kind = "undo"
	KindRedo        Kind = "redo"

	// KindCursor is not an Action; it discriminates the ephemeral
	// presence frame at the transport boundary.
	KindCursor Kind = "cursor"
)

// Action is the closed set of draw operations. Only the five variants
// below implement it; resolvers type-switch over them and treat any
// other value as a programming error rather than a silent no-op.
type Action interface {
	Kind() Kind
	isAction()
}

// StrokeStart opens a new stroke at a canvas position.
type StrokeStart struct {
	StrokeID string
	X, Y     float64
}

// StrokeMove extends an open stroke to a new position.
type StrokeMove struct {
	StrokeID string
	X, Y     float64
}

// StrokeEnd closes a stroke. Undo targeting scans for these.
type StrokeEnd struct {
	StrokeID string
}

// Undo is a compensating action hiding every event of the target
// stroke. The stroke stays in the log; visibility is derived.
type Undo struct {
	TargetStrokeID string
}

// Redo neutralizes one specific Undo event, identified by event ID.
type Redo struct {
	TargetUndoEventID uuid.UUID
}

func (StrokeStart) Kind() Kind { return KindStrokeStart }
func (StrokeMove) Kind() Kind  { return KindStrokeMove }
func (StrokeEnd) Kind() Kind   { return KindStrokeEnd }
func (Undo) Kind() Kind        { return KindUndo }
func (Redo) Kind() Kind        { return KindRedo }

func (StrokeStart) isAction() {}
func (StrokeMove) isAction()  {}
func (StrokeEnd) isAction()   {}
func (Undo) isAction()        {}
func (Redo) isAction()        {}

// StrokeRef returns the stroke an action draws on, and whether it is a
// stroke-bearing action at all. Undo and Redo reference strokes only
// indirectly and report false.
func StrokeRef(a Action) (string, bool) {
	switch v := a.(type) {
	case StrokeStart:
		return v.StrokeID, true
	case StrokeMove:
		return v.StrokeID, true
	case StrokeEnd:
		return v.StrokeID, true
	case Undo, Redo:
		return "", false
	default:
		return "", false
	}
}
