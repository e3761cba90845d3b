package core

// CounterSource is a monotonic high resolution counter, usually the
// platform's performance counter.
type CounterSource interface {
	PerformanceCounter() uint64
	PerformanceFrequency() uint64
}

type Clock struct {
	source    CounterSource
	frequency uint64
	startTime uint64
	elapsed   uint64
}

// NewClock panics on a zero frequency: without one no elapsed time can be derived.
func NewClock(source CounterSource) *Clock {
	freq := source.PerformanceFrequency()
	if freq == 0 {
		LogFatal("performance counter reports a zero frequency")
		panic("core: zero counter frequency")
	}
	return &Clock{
		source:    source,
		frequency: freq,
	}
}

// Now returns the current counter value.
func (c *Clock) Now() uint64 {
	return c.source.PerformanceCounter()
}

// Frequency returns the number of counter units per second.
func (c *Clock) Frequency() uint64 {
	return c.frequency
}

func (c *Clock) Seconds(delta uint64) float64 {
	return float64(delta) / float64(c.frequency)
}

func (c *Clock) Milliseconds(delta uint64) float64 {
	return float64(delta) * 1000.0 / float64(c.frequency)
}

func (c *Clock) Nanoseconds(delta uint64) uint64 {
	// split to avoid overflowing delta*1e9 on large deltas
	secs := delta / c.frequency
	rem := delta % c.frequency
	return secs*1_000_000_000 + rem*1_000_000_000/c.frequency
}

// Since returns the counter units elapsed since mark.
func (c *Clock) Since(mark uint64) uint64 {
	now := c.Now()
	if now < mark {
		return 0
	}
	return now - mark
}

// Updates the provided clock. Should be called just before checking elapsed time.
// Has no effect on non-started clocks.
func (c *Clock) Update() {
	if c.startTime != 0 {
		c.elapsed = c.Since(c.startTime)
	}
}

// Starts the provided clock. Resets elapsed time.
func (c *Clock) Start() {
	c.startTime = c.Now()
	c.elapsed = 0
}

// Stops the provided clock. Does not reset elapsed time.
func (c *Clock) Stop() {
	c.startTime = 0
}

// Elapsed returns the seconds measured at the last Update.
func (c *Clock) Elapsed() float64 {
	return c.Seconds(c.elapsed)
}
