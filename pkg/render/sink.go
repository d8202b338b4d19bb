// Package render provides rendering sinks for the clockface scheduler.
//
// A sink receives the angles an instance's motion model produced for one
// accepted frame. [RecordingSink] keeps them for inspection; [ImageSink]
// composites them into an in-memory dial image using the instance's
// resolved style.
package render

import (
	"sync"

	"github.com/go-drift/clockface/pkg/clockface"
)

// RecordingSink retains every applied frame, keyed by instance id.
// It is safe for concurrent use.
type RecordingSink struct {
	mu     sync.Mutex
	frames map[string][]clockface.HandAngles
}

// NewRecordingSink creates an empty RecordingSink.
func NewRecordingSink() *RecordingSink {
	return &RecordingSink{frames: make(map[string][]clockface.HandAngles)}
}

// ApplyAngles records one frame for the instance.
func (s *RecordingSink) ApplyAngles(instanceID string, angles clockface.HandAngles) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames[instanceID] = append(s.frames[instanceID], angles)
}

// Applied returns a copy of the frames recorded for the instance, oldest
// first.
func (s *RecordingSink) Applied(instanceID string) []clockface.HandAngles {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]clockface.HandAngles, len(s.frames[instanceID]))
	copy(out, s.frames[instanceID])
	return out
}

// Last returns the most recently recorded frame for the instance.
func (s *RecordingSink) Last(instanceID string) (clockface.HandAngles, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	frames := s.frames[instanceID]
	if len(frames) == 0 {
		return clockface.HandAngles{}, false
	}
	return frames[len(frames)-1], true
}

// Reset discards all recorded frames.
func (s *RecordingSink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames = make(map[string][]clockface.HandAngles)
}
