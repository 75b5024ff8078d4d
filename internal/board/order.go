// SPDX-License-Identifier: Apache-2.0

package board

import (
	"sort"

	"github.com/Himanshu-Sharma005/realtime-collaborative-whiteboard/internal/domain"
)

// ResolveOrder derives the render order from an arrival-order log:
// stable sort by Seq ascending, ties kept in arrival order.
//
// This is a best-effort, non-linearizable order. Seq is comparable
// only within one origin's stream, so concurrent streams from two
// origins that both count from 0 interleave by raw numeric value, not
// by causal relationship. That weakness is kept on purpose; replacing
// it with Lamport or vector timestamps would change observable
// interleavings and is a deliberate-upgrade decision, not a bug fix.
//
// The input is not mutated. For a fixed set of events the output is
// identical regardless of the arrival permutation that built the log,
// as long as same-seq events arrived in the same relative order.
func ResolveOrder(log []domain.Event) []domain.Event {
	ordered := make([]domain.Event, len(log))
	copy(ordered, log)

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Seq < ordered[j].Seq
	})

	return ordered
}
