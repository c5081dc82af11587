// Package undo keeps a bounded history of pool snapshots so the most
// recent judgments can be reverted.
package undo

import "cinerank/internal/domain"

// Depth of the snapshot stack. Older snapshots are dropped silently,
// undo beyond this bound is a no-op for the caller.
const Depth = 10

// Stack of whole-pool snapshots, newest last.
type Stack struct {
	snapshots []domain.Pool
	depth     int
}

func New() *Stack {
	return NewWithDepth(Depth)
}

func NewWithDepth(depth int) *Stack {
	if depth < 1 {
		depth = 1
	}
	return &Stack{depth: depth}
}

// Push stores a deep copy of the pool as it was before a mutation.
func (s *Stack) Push(pool domain.Pool) {
	s.snapshots = append(s.snapshots, pool.Clone())
	if len(s.snapshots) > s.depth {
		s.snapshots = s.snapshots[1:]
	}
}

// Pop removes and returns the most recent snapshot. ok is false when
// there is nothing left to undo.
func (s *Stack) Pop() (snapshot domain.Pool, ok bool) {
	if len(s.snapshots) == 0 {
		return nil, false
	}
	last := len(s.snapshots) - 1
	snapshot = s.snapshots[last]
	s.snapshots = s.snapshots[:last]
	return snapshot, true
}

// Len reports how many undo steps are available.
func (s *Stack) Len() int {
	return len(s.snapshots)
}
