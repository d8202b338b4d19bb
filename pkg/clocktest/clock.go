// Package clocktest provides a controllable time source for deterministic
// scheduler and motion-model tests.
package clocktest

import (
	"sync"
	"time"

	"github.com/go-drift/clockface/pkg/clockface"
)

// FakeSource implements clockface.TimeSource with manually-advanced time.
// The monotonic reading and the wall-clock reading move together through
// Advance, and the wall clock can additionally be repositioned on its own
// with SetWall. All methods are safe for concurrent use.
type FakeSource struct {
	mu   sync.Mutex
	now  time.Time
	wall time.Duration // offset into the day
}

// NewFakeSource returns a FakeSource starting at a fixed epoch with the
// wall clock at midnight.
func NewFakeSource() *FakeSource {
	return &FakeSource{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Now returns the current fake monotonic timestamp.
func (f *FakeSource) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// WallClock returns the current fake wall-clock reading.
func (f *FakeSource) WallClock() clockface.WallTime {
	f.mu.Lock()
	defer f.mu.Unlock()
	return wallTimeFromOffset(f.wall)
}

// Advance moves both the monotonic timestamp and the wall clock forward
// by d, wrapping the wall clock at 24h.
func (f *FakeSource) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
	f.wall = (f.wall + d) % (24 * time.Hour)
}

// SetWall repositions the wall clock without touching the monotonic
// timestamp.
func (f *FakeSource) SetWall(wt clockface.WallTime) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.wall = time.Duration(wt.Hours)*time.Hour +
		time.Duration(wt.Minutes)*time.Minute +
		time.Duration(wt.Seconds)*time.Second +
		time.Duration(wt.Milliseconds)*time.Millisecond
}

func wallTimeFromOffset(d time.Duration) clockface.WallTime {
	return clockface.WallTime{
		Hours:        int(d / time.Hour),
		Minutes:      int(d/time.Minute) % 60,
		Seconds:      int(d/time.Second) % 60,
		Milliseconds: int(d/time.Millisecond) % 1000,
	}
}
