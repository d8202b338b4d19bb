// Package frametrace records per-tick timing for the clockface scheduler.
//
// A [Collector] aggregates tick durations into an HDR histogram and counts
// ticks that overran a dropped-frame threshold (by default one 60Hz refresh
// interval). Snapshots are cheap enough to take while the driver is running.
package frametrace

import (
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

const (
	// Histogram range: 1 microsecond to 10 seconds.
	minTickUs = 1
	maxTickUs = 10_000_000
	sigFigs   = 3

	defaultThreshold = 16667 * time.Microsecond
)

// Collector aggregates scheduler tick durations.
type Collector struct {
	mu        sync.Mutex
	histogram *hdrhistogram.Histogram
	threshold time.Duration
	ticks     int64
	dropped   int64
	startTime time.Time
}

// NewCollector creates a Collector. A threshold <= 0 selects the default
// 60Hz dropped-frame threshold.
func NewCollector(threshold time.Duration) *Collector {
	if threshold <= 0 {
		threshold = defaultThreshold
	}
	return &Collector{
		histogram: hdrhistogram.New(minTickUs, maxTickUs, sigFigs),
		threshold: threshold,
		startTime: time.Now(),
	}
}

// Threshold returns the dropped-frame threshold.
func (c *Collector) Threshold() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.threshold
}

// Record adds one tick duration.
func (c *Collector) Record(d time.Duration) {
	us := d.Microseconds()
	if us < minTickUs {
		us = minTickUs
	}
	if us > maxTickUs {
		us = maxTickUs
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.histogram.RecordValue(us)
	c.ticks++
	if d > c.threshold {
		c.dropped++
	}
}

// Snapshot is a point-in-time summary of recorded ticks.
type Snapshot struct {
	Ticks    int64
	Dropped  int64
	Duration time.Duration

	Min  time.Duration
	Max  time.Duration
	Mean time.Duration
	P50  time.Duration
	P95  time.Duration
	P99  time.Duration
}

// Snapshot returns a summary of everything recorded since construction or
// the last Reset.
func (c *Collector) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		Ticks:    c.ticks,
		Dropped:  c.dropped,
		Duration: time.Since(c.startTime),
	}
	if c.ticks == 0 {
		return snap
	}

	snap.Min = time.Duration(c.histogram.Min()) * time.Microsecond
	snap.Max = time.Duration(c.histogram.Max()) * time.Microsecond
	snap.Mean = time.Duration(c.histogram.Mean()) * time.Microsecond
	snap.P50 = time.Duration(c.histogram.ValueAtQuantile(50)) * time.Microsecond
	snap.P95 = time.Duration(c.histogram.ValueAtQuantile(95)) * time.Microsecond
	snap.P99 = time.Duration(c.histogram.ValueAtQuantile(99)) * time.Microsecond
	return snap
}

// Reset clears all recorded ticks and restarts the collection window.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.histogram.Reset()
	c.ticks = 0
	c.dropped = 0
	c.startTime = time.Now()
}
