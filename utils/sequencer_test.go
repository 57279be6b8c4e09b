package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequencerAcceptsLatestGeneration(t *testing.T) {
	var s Sequencer

	first := s.Next()
	assert.True(t, s.Accept(first))

	second := s.Next()
	assert.False(t, s.Accept(first), "older generation must be discarded")
	assert.True(t, s.Accept(second))
}

func TestSequencerLastStartedWinsRegardlessOfArrivalOrder(t *testing.T) {
	var s Sequencer

	first := s.Next()
	second := s.Next()

	// The newer run finishes first, then the stale one arrives
	assert.True(t, s.Accept(second))
	assert.False(t, s.Accept(first))
}

func TestSequencerGenerationsIncrease(t *testing.T) {
	var s Sequencer
	prev := s.Next()
	for i := 0; i < 10; i++ {
		next := s.Next()
		assert.Greater(t, next, prev)
		prev = next
	}
}
