package clockface

import "time"

// WallTime is a wall-clock sample with sub-second precision.
// Hours is in [0, 24), Minutes and Seconds in [0, 60), Milliseconds in [0, 1000).
type WallTime struct {
	Hours        int
	Minutes      int
	Seconds      int
	Milliseconds int
}

// TimeSource supplies the two kinds of time the engine needs: a monotonic
// timestamp for frame pacing and a wall-clock sample for hand positions.
//
// The default implementation is [SystemSource]. Tests inject a controllable
// source so that pacing and displayed time can be driven independently.
type TimeSource interface {
	// Now returns a monotonic-clock-backed timestamp.
	Now() time.Time
	// WallClock returns the current local wall-clock time.
	WallClock() WallTime
}

// SystemSource reads time.Now for both monotonic and wall-clock readings.
type SystemSource struct{}

// Now returns the current time.
func (SystemSource) Now() time.Time { return time.Now() }

// WallClock returns the current local time broken into clock fields.
func (SystemSource) WallClock() WallTime {
	t := time.Now()
	return WallTime{
		Hours:        t.Hour(),
		Minutes:      t.Minute(),
		Seconds:      t.Second(),
		Milliseconds: t.Nanosecond() / int(time.Millisecond),
	}
}
