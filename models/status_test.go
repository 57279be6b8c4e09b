package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionFromPending(t *testing.T) {
	assert.NoError(t, Transition(StatusPending, StatusConfirmed))
	assert.NoError(t, Transition(StatusPending, StatusCancelled))
}

func TestTransitionOutOfTerminalStateFails(t *testing.T) {
	cases := []struct {
		from, to Status
	}{
		{StatusConfirmed, StatusCancelled},
		{StatusConfirmed, StatusPending},
		{StatusConfirmed, StatusConfirmed},
		{StatusCancelled, StatusConfirmed},
		{StatusCancelled, StatusPending},
		{StatusCancelled, StatusCancelled},
		{StatusPending, StatusPending},
	}

	for _, tc := range cases {
		err := Transition(tc.from, tc.to)
		var invalid *ErrInvalidTransition
		require.ErrorAs(t, err, &invalid, "transition %s -> %s", tc.from, tc.to)
		assert.Equal(t, tc.from, invalid.From)
		assert.Equal(t, tc.to, invalid.To)
	}
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.True(t, StatusConfirmed.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
}

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"pending", "confirmed", "cancelled"} {
		s, err := ParseStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, Status(valid), s)
	}

	_, err := ParseStatus("shipped")
	assert.Error(t, err)

	_, err = ParseStatus("")
	assert.Error(t, err)
}
