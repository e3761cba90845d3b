package core

import (
	"bytes"
	"os"
	"testing"
)

// captureLog collects engine log output for the rest of the test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetLogOutput(&buf)
	t.Cleanup(func() { SetLogOutput(os.Stderr) })
	return &buf
}

type fakeCounter struct {
	now  uint64
	freq uint64
}

func newFakeCounter(freq uint64) *fakeCounter {
	return &fakeCounter{now: 1_000, freq: freq}
}

func (c *fakeCounter) PerformanceCounter() uint64   { return c.now }
func (c *fakeCounter) PerformanceFrequency() uint64 { return c.freq }
func (c *fakeCounter) advance(units uint64)         { c.now += units }

// fakeSleeper advances the counter instead of blocking.
type fakeSleeper struct {
	counter *fakeCounter
	calls   int
	slept   uint64
}

func (s *fakeSleeper) DelayNS(ns uint64) {
	s.calls++
	s.slept += ns
	s.counter.advance(ns * s.counter.freq / 1_000_000_000)
}

type recordingSampler struct {
	log []string
}

func (r *recordingSampler) Process()     { r.log = append(r.log, "process") }
func (r *recordingSampler) PostProcess() { r.log = append(r.log, "post") }
