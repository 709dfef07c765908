/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bracket

// History is the undo stack: deep snapshots of the state taken before each
// mutation, most recent last. When limit is positive the oldest snapshots
// are dropped once the stack grows past it.
type History struct {
	snapshots []State
	limit     int
}

func NewHistory(limit int) *History {
	return &History{limit: limit}
}

// Push records a copy of s.
func (h *History) Push(s State) {
	h.snapshots = append(h.snapshots, s.Clone())
	if h.limit > 0 && len(h.snapshots) > h.limit {
		h.snapshots = h.snapshots[len(h.snapshots)-h.limit:]
	}
}

// Pop removes and returns the most recent snapshot.
func (h *History) Pop() (State, bool) {
	if len(h.snapshots) == 0 {
		return State{}, false
	}
	last := h.snapshots[len(h.snapshots)-1]
	h.snapshots = h.snapshots[:len(h.snapshots)-1]

	return last, true
}

func (h *History) Len() int {
	return len(h.snapshots)
}

func (h *History) Limit() int {
	return h.limit
}

func (h *History) Reset() {
	h.snapshots = nil
}
