package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClockConversions(t *testing.T) {
	counter := newFakeCounter(10_000_000)
	clock := NewClock(counter)

	assert.Equal(t, uint64(10_000_000), clock.Frequency())
	assert.InDelta(t, 1.5, clock.Seconds(15_000_000), 1e-12)
	assert.InDelta(t, 2.0, clock.Milliseconds(20_000), 1e-12)
	assert.Equal(t, uint64(100), clock.Nanoseconds(1))
	assert.Equal(t, uint64(3_000_000_500), clock.Nanoseconds(30_000_005))
}

func TestClockStopwatch(t *testing.T) {
	counter := newFakeCounter(1_000)
	clock := NewClock(counter)

	clock.Update()
	assert.Zero(t, clock.Elapsed(), "a clock that was never started does not advance")

	clock.Start()
	counter.advance(2_500)
	clock.Update()
	assert.InDelta(t, 2.5, clock.Elapsed(), 1e-9)

	clock.Stop()
	counter.advance(1_000)
	clock.Update()
	assert.InDelta(t, 2.5, clock.Elapsed(), 1e-9)
}

func TestClockSinceNeverUnderflows(t *testing.T) {
	counter := newFakeCounter(1_000)
	clock := NewClock(counter)
	assert.Zero(t, clock.Since(counter.now+10))
}
