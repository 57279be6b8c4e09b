package utils

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInflightGuardRefusesOverlap(t *testing.T) {
	g := NewInflightGuard()

	require.NoError(t, g.Acquire("order", 31))
	assert.Error(t, g.Acquire("order", 31))

	g.Release("order", 31)
	assert.NoError(t, g.Acquire("order", 31))
}

func TestInflightGuardIsScopedByEntityAndID(t *testing.T) {
	g := NewInflightGuard()

	require.NoError(t, g.Acquire("order", 31))
	assert.NoError(t, g.Acquire("order", 32))
	assert.NoError(t, g.Acquire("return-request", 31))
}

func TestInflightGuardConcurrentAcquire(t *testing.T) {
	g := NewInflightGuard()

	const attempts = 50
	var wg sync.WaitGroup
	acquired := make(chan struct{}, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if g.Acquire("order", 7) == nil {
				acquired <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(acquired)

	count := 0
	for range acquired {
		count++
	}
	assert.Equal(t, 1, count, "exactly one concurrent acquire must win")
}
