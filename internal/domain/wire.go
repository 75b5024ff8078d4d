// SPDX-License-Identifier: Apache-2.0

package domain

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// wireFrame is the superset of every relay frame shape. Exactly one
// JSON object travels per frame, discriminated by "type". There is no
// versioning field: consumers drop unrecognized types instead of
// failing the read loop.
type wireFrame struct {
	Type              Kind    `json:"type"`
	StrokeID          string  `json:"strokeId,omitempty"`
	TargetStrokeID    string  `json:"targetStrokeId,omitempty"`
	TargetUndoEventID string  `json:"targetUndoEventId,omitempty"`
	X                 float64 `json:"x,omitempty"`
	Y                 float64 `json:"y,omitempty"`
	ID                string  `json:"id,omitempty"`
	Seq               *int64  `json:"seq,omitempty"`
	UserID            string  `json:"userId"`
	Color             string  `json:"color,omitempty"`
}

// Frame is one decoded relay frame: either a durable log event or an
// ephemeral presence update, never both. The two shapes belong to
// different consistency domains and are split at this boundary.
type Frame struct {
	Event    *Event
	Presence *Presence
}

// EncodeEvent serializes a log event to its wire shape.
func EncodeEvent(ev Event) ([]byte, error) {
	if ev.Action == nil {
		return nil, fmt.Errorf("encode event %s: nil action", ev.ID)
	}

	seq := ev.Seq
	f := wireFrame{
		Type:   ev.Action.Kind(),
		ID:     ev.ID.String(),
		Seq:    &seq,
		UserID: ev.Origin,
	}

	switch a := ev.Action.(type) {
	case StrokeStart:
		f.StrokeID = a.StrokeID
		f.X, f.Y = a.X, a.Y
	case StrokeMove:
		f.StrokeID = a.StrokeID
		f.X, f.Y = a.X, a.Y
	case StrokeEnd:
		f.StrokeID = a.StrokeID
	case Undo:
		f.TargetStrokeID = a.TargetStrokeID
	case Redo:
		f.TargetUndoEventID = a.TargetUndoEventID.String()
	default:
		return nil, fmt.Errorf("encode event: unhandled action %T", ev.Action)
	}

	return json.Marshal(f)
}

// EncodePresence serializes a cursor update. No ID, no Seq.
func EncodePresence(p Presence) ([]byte, error) {
	return json.Marshal(wireFrame{
		Type:   KindCursor,
		UserID: p.UserID,
		X:      p.X,
		Y:      p.Y,
		Color:  p.Color,
	})
}

// DecodeFrame parses one inbound relay frame.
//
// Returns ErrMalformedFrame for unparseable or structurally invalid
// payloads and ErrUnknownFrameType for a type this build does not
// know; callers must drop both with a diagnostic and keep reading.
func DecodeFrame(data []byte) (Frame, error) {
	var f wireFrame
	if err := json.Unmarshal(data, &f); err != nil {
		return Frame{}, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}

	if f.Type == KindCursor {
		return Frame{Presence: &Presence{
			UserID: f.UserID,
			X:      f.X,
			Y:      f.Y,
			Color:  f.Color,
		}}, nil
	}

	action, err := decodeAction(f)
	if err != nil {
		return Frame{}, err
	}

	id, err := uuid.Parse(f.ID)
	if err != nil {
		return Frame{}, fmt.Errorf("%w: event id %q: %v", ErrMalformedFrame, f.ID, err)
	}
	if f.Seq == nil {
		return Frame{}, fmt.Errorf("%w: event %s has no seq", ErrMalformedFrame, f.ID)
	}
	if f.UserID == "" {
		return Frame{}, fmt.Errorf("%w: event %s has no userId", ErrMalformedFrame, f.ID)
	}

	return Frame{Event: &Event{
		ID:     id,
		Seq:    *f.Seq,
		Origin: f.UserID,
		Action: action,
	}}, nil
}

func decodeAction(f wireFrame) (Action, error) {
	switch f.Type {
	case KindStrokeStart:
		return StrokeStart{StrokeID: f.StrokeID, X: f.X, Y: f.Y}, nil
	case KindStrokeMove:
		return StrokeMove{StrokeID: f.StrokeID, X: f.X, Y: f.Y}, nil
	case KindStrokeEnd:
		return StrokeEnd{StrokeID: f.StrokeID}, nil
	case KindUndo:
		return Undo{TargetStrokeID: f.TargetStrokeID}, nil
	case KindRedo:
		target, err := uuid.Parse(f.TargetUndoEventID)
		if err != nil {
			return nil, fmt.Errorf("%w: redo target %q: %v", ErrMalformedFrame, f.TargetUndoEventID, err)
		}
		return Redo{TargetUndoEventID: target}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFrameType, f.Type)
	}
}
