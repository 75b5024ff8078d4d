// SPDX-License-Identifier: Apache-2.0

package domain

import "github.com/google/uuid"

// Event is a draw action as stored in the append-only log.
//
// ID is globally unique and is the sole deduplication key. Seq is
// strictly increasing only within one origin's stream; it carries no
// cross-origin ordering guarantee. Events are write-once: an undone
// stroke stays in the log and visibility is recomputed, never edited.
type Event struct {
	ID     uuid.UUID
	Seq    int64
	Origin string
	Action Action
}

// Presence is the ephemeral cursor slot for one participant. It has no
// ID and no Seq: it is overwritten last-write-wins, never logged and
// never deduplicated. Slots are not removed on disconnect; expiry
// needs a transport-level leave signal that does not exist yet.
type Presence struct {
	UserID string  `json:"userId"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Color  string  `json:"color"`
}
