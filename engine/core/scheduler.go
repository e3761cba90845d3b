package core

import (
	"fmt"
)

const DefaultTicksPerSecond = 60

// Sampler is sampled once before a batch of ticks and finalized once after it.
type Sampler interface {
	Process()
	PostProcess()
}

// RateChangePolicy decides what happens to outstanding time debt when the tick rate changes.
type RateChangePolicy uint8

const (
	// PreserveDebt keeps the wall time owed; it is drained at the new rate.
	PreserveDebt RateChangePolicy = iota
	// ResetDebt forgets the time owed; ticking restarts from the moment of the change.
	ResetDebt
)

func (p RateChangePolicy) String() string {
	switch p {
	case PreserveDebt:
		return "preserve"
	case ResetDebt:
		return "reset"
	}
	return "unknown"
}

// TickScheduler runs game logic at a fixed rate, independent from the frame rate.
//
// The accumulator is kept as an absolute counter mark: every whole interval
// between the mark and the frame start is owed as one tick, and the mark
// advances by exactly one interval per executed tick.
type TickScheduler struct {
	clock *Clock

	ticksPerSecond int
	tickDeltaTime  float64
	interval       uint64
	mark           uint64

	ticksThisFrame   int
	totalTicks       uint64
	lastTickDuration float64

	maxTicksPerFrame int
	policy           RateChangePolicy
}

func NewTickScheduler(clock *Clock, ticksPerSecond int) (*TickScheduler, error) {
	s := &TickScheduler{
		clock: clock,
		mark:  clock.Now(),
	}
	if err := s.setRate(ticksPerSecond); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *TickScheduler) setRate(ticksPerSecond int) error {
	if ticksPerSecond <= 0 {
		LogError("tick rate must be positive, got %d", ticksPerSecond)
		return fmt.Errorf("%w: ticks per second must be positive, got %d", ErrInvalidConfiguration, ticksPerSecond)
	}
	interval := s.clock.Frequency() / uint64(ticksPerSecond)
	if interval == 0 {
		LogError("tick rate %d exceeds the counter frequency %d", ticksPerSecond, s.clock.Frequency())
		return fmt.Errorf("%w: tick rate %d exceeds counter frequency %d", ErrInvalidConfiguration, ticksPerSecond, s.clock.Frequency())
	}
	s.ticksPerSecond = ticksPerSecond
	s.tickDeltaTime = 1.0 / float64(ticksPerSecond)
	s.interval = interval
	return nil
}

// SetTicksPerSecond changes the logic rate and applies the rate change policy to the debt.
func (s *TickScheduler) SetTicksPerSecond(ticksPerSecond int) error {
	if err := s.setRate(ticksPerSecond); err != nil {
		return err
	}
	if s.policy == ResetDebt {
		s.mark = s.clock.Now()
	}
	return nil
}

func (s *TickScheduler) TicksPerSecond() int {
	return s.ticksPerSecond
}

// TickDeltaTime is the fixed step in seconds handed to game logic.
func (s *TickScheduler) TickDeltaTime() float64 {
	return s.tickDeltaTime
}

// TickInterval is the fixed step in counter units.
func (s *TickScheduler) TickInterval() uint64 {
	return s.interval
}

// TicksThisFrame is the number of ticks executed by the last due Process call.
func (s *TickScheduler) TicksThisFrame() int {
	return s.ticksThisFrame
}

func (s *TickScheduler) TotalTicks() uint64 {
	return s.totalTicks
}

// LastTickDuration is the wall time in milliseconds spent by the last tick batch.
func (s *TickScheduler) LastTickDuration() float64 {
	return s.lastTickDuration
}

// SetMaxTicksPerFrame bounds the ticks drained by a single Process call; 0 means unbounded.
// Whole intervals beyond the bound are dropped instead of being carried to the next frame.
func (s *TickScheduler) SetMaxTicksPerFrame(n int) {
	if n < 0 {
		n = 0
	}
	s.maxTicksPerFrame = n
}

func (s *TickScheduler) MaxTicksPerFrame() int {
	return s.maxTicksPerFrame
}

func (s *TickScheduler) SetRateChangePolicy(policy RateChangePolicy) {
	s.policy = policy
}

func (s *TickScheduler) RateChangePolicy() RateChangePolicy {
	return s.policy
}

// Reset discards all time owed up to now.
func (s *TickScheduler) Reset(now uint64) {
	s.mark = now
}

// Debt returns the counter units owed at the given counter value.
func (s *TickScheduler) Debt(at uint64) uint64 {
	if at < s.mark {
		return 0
	}
	return at - s.mark
}

// Due reports whether at least one tick is owed at frameStart.
func (s *TickScheduler) Due(frameStart uint64) bool {
	return s.Debt(frameStart) >= s.interval
}

// Process drains the time debt accumulated up to frameStart, one tick per
// whole interval. Input is sampled before the batch and finalized after it;
// nothing happens when no tick is due. A tick error stops the batch and is returned.
func (s *TickScheduler) Process(frameStart uint64, input Sampler, tick func() error) error {
	if !s.Due(frameStart) {
		return nil
	}

	if input != nil {
		input.Process()
	}

	s.ticksThisFrame = 0
	var err error
	for s.Debt(frameStart) >= s.interval {
		if s.maxTicksPerFrame > 0 && s.ticksThisFrame >= s.maxTicksPerFrame {
			dropped := s.Debt(frameStart) / s.interval
			s.mark += dropped * s.interval
			LogWarn("tick budget of %d reached, dropping %d ticks", s.maxTicksPerFrame, dropped)
			break
		}
		if err = tick(); err != nil {
			break
		}
		s.mark += s.interval
		s.ticksThisFrame++
		s.totalTicks++
	}

	if input != nil {
		input.PostProcess()
	}

	s.lastTickDuration = s.clock.Milliseconds(s.clock.Since(frameStart))
	return err
}
