package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScheduler(t *testing.T, freq uint64, rate int) (*TickScheduler, *fakeCounter) {
	t.Helper()
	counter := newFakeCounter(freq)
	s, err := NewTickScheduler(NewClock(counter), rate)
	require.NoError(t, err)
	return s, counter
}

func TestTickDeltaTimeMatchesRate(t *testing.T) {
	s, _ := newTestScheduler(t, 1_000_000_000, DefaultTicksPerSecond)
	for r := 1; r <= 1000; r++ {
		require.NoError(t, s.SetTicksPerSecond(r))
		assert.InDelta(t, 1.0/float64(r), s.TickDeltaTime(), 1e-15)
		assert.Equal(t, r, s.TicksPerSecond())
	}
}

func TestTickRateMustBePositive(t *testing.T) {
	counter := newFakeCounter(1_000)
	_, err := NewTickScheduler(NewClock(counter), 0)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	s, _ := newTestScheduler(t, 1_000, 10)
	assert.ErrorIs(t, s.SetTicksPerSecond(-5), ErrInvalidConfiguration)
	assert.Equal(t, 10, s.TicksPerSecond(), "a rejected rate keeps the previous one")
}

func TestTickRateAboveCounterFrequency(t *testing.T) {
	logs := captureLog(t)
	_, err := NewTickScheduler(NewClock(newFakeCounter(30)), 60)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
	assert.Contains(t, logs.String(), "exceeds the counter frequency")

	logs.Reset()
	s, _ := newTestScheduler(t, 1_000, 10)
	assert.ErrorIs(t, s.SetTicksPerSecond(5_000), ErrInvalidConfiguration)
	assert.Equal(t, 10, s.TicksPerSecond())
	assert.Contains(t, logs.String(), "tick rate 5000")
}

func TestProcessRunsFloorOfElapsedOverInterval(t *testing.T) {
	cases := []struct {
		name    string
		elapsed uint64
	}{
		{"nothing elapsed", 0},
		{"less than one interval", 16_000},
		{"exactly one interval", 16_666},
		{"one and a half", 25_000},
		{"many intervals", 1_000_000},
		{"just under seven", 16_666*7 - 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, counter := newTestScheduler(t, 1_000_000, 60)
			interval := s.TickInterval()
			require.Equal(t, uint64(16_666), interval)

			counter.advance(tc.elapsed)
			frameStart := counter.now
			ticks := 0
			require.NoError(t, s.Process(frameStart, nil, func() error {
				ticks++
				return nil
			}))

			assert.Equal(t, int(tc.elapsed/interval), ticks)
			assert.Equal(t, tc.elapsed%interval, s.Debt(frameStart))
			if ticks > 0 {
				assert.Equal(t, ticks, s.TicksThisFrame())
			}
		})
	}
}

func TestProcessNeverFabricatesDebt(t *testing.T) {
	s, counter := newTestScheduler(t, 1_000_000, 60)
	interval := s.TickInterval()

	var elapsed, ticks uint64
	steps := []uint64{1, 5_000, 16_666, 33_000, 7, 49_999, 100, 16_665, 2, 80_000, 12_345}
	for i := 0; i < 50; i++ {
		step := steps[i%len(steps)]
		counter.advance(step)
		elapsed += step
		require.NoError(t, s.Process(counter.now, nil, func() error {
			ticks++
			return nil
		}))
		assert.LessOrEqual(t, ticks*interval, elapsed+interval)
		assert.Less(t, elapsed-ticks*interval, interval, "whole intervals are never left undrained")
	}
}

func TestProcessSamplesInputOnlyWhenDue(t *testing.T) {
	s, counter := newTestScheduler(t, 1_000, 10)
	sampler := &recordingSampler{}
	tick := func() error {
		sampler.log = append(sampler.log, "tick")
		return nil
	}

	counter.advance(50)
	require.NoError(t, s.Process(counter.now, sampler, tick))
	assert.Empty(t, sampler.log)

	counter.advance(200)
	require.NoError(t, s.Process(counter.now, sampler, tick))
	assert.Equal(t, []string{"process", "tick", "tick", "post"}, sampler.log)
}

func TestProcessStopsOnTickError(t *testing.T) {
	s, counter := newTestScheduler(t, 1_000, 10)
	boom := errors.New("boom")
	sampler := &recordingSampler{}

	counter.advance(500)
	calls := 0
	err := s.Process(counter.now, sampler, func() error {
		calls++
		if calls == 2 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, s.TicksThisFrame())
	assert.Equal(t, []string{"process", "post"}, sampler.log)
}

func TestMaxTicksPerFrameDropsExcessIntervals(t *testing.T) {
	s, counter := newTestScheduler(t, 1_000, 10)
	assert.Zero(t, s.MaxTicksPerFrame(), "unbounded by default")
	s.SetMaxTicksPerFrame(3)

	counter.advance(1_050)
	ticks := 0
	require.NoError(t, s.Process(counter.now, nil, func() error {
		ticks++
		return nil
	}))
	assert.Equal(t, 3, ticks)
	assert.Equal(t, uint64(50), s.Debt(counter.now), "only the partial interval is carried over")

	counter.advance(60)
	ticks = 0
	require.NoError(t, s.Process(counter.now, nil, func() error {
		ticks++
		return nil
	}))
	assert.Equal(t, 1, ticks)
}

func TestRateChangePolicies(t *testing.T) {
	t.Run("preserve keeps wall time owed", func(t *testing.T) {
		s, counter := newTestScheduler(t, 1_000, 10)
		counter.advance(90)
		require.NoError(t, s.SetTicksPerSecond(20))

		ticks := 0
		require.NoError(t, s.Process(counter.now, nil, func() error {
			ticks++
			return nil
		}))
		assert.Equal(t, 1, ticks)
		assert.Equal(t, uint64(40), s.Debt(counter.now))
	})

	t.Run("reset forgets the debt", func(t *testing.T) {
		s, counter := newTestScheduler(t, 1_000, 10)
		s.SetRateChangePolicy(ResetDebt)
		counter.advance(90)
		require.NoError(t, s.SetTicksPerSecond(20))

		ticks := 0
		require.NoError(t, s.Process(counter.now, nil, func() error {
			ticks++
			return nil
		}))
		assert.Zero(t, ticks)
		assert.Zero(t, s.Debt(counter.now))
	})
}

func TestSixtyHertzUncappedScenario(t *testing.T) {
	counter := newFakeCounter(1_000_000_000)
	clock := NewClock(counter)
	ticks, err := NewTickScheduler(clock, 60)
	require.NoError(t, err)
	sleeper := &fakeSleeper{counter: counter}
	frames := NewRenderScheduler(clock, sleeper)
	frames.SetFrameRateCap(0)

	total, renders := 0, 0
	for i := 0; i < 10; i++ {
		counter.advance(16_670_000)
		frameStart := counter.now
		require.NoError(t, ticks.Process(frameStart, nil, func() error {
			total++
			return nil
		}))
		require.NoError(t, frames.Process(frameStart, func() error {
			renders++
			return nil
		}))
		frames.HandleFrameRateCap()
	}

	assert.InDelta(t, 10, total, 1)
	assert.Equal(t, 10, renders)
	assert.Zero(t, sleeper.calls)
}
