package utils

import "sync/atomic"

// Sequencer hands out monotonically increasing generation numbers and
// accepts only results belonging to the latest generation. It implements
// the last-result-wins rule for overlapping asynchronous operations: a
// result that arrives after a newer operation started is stale and must be
// discarded, regardless of arrival order.
type Sequencer struct {
	latest atomic.Uint64
}

// Next starts a new generation and returns its number
func (s *Sequencer) Next() uint64 {
	return s.latest.Add(1)
}

// Accept reports whether a result produced by generation seq should still
// be applied. Only the latest generation is accepted.
func (s *Sequencer) Accept(seq uint64) bool {
	return s.latest.Load() == seq
}
