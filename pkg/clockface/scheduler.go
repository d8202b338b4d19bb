package clockface

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/go-drift/clockface/pkg/errors"
	"github.com/go-drift/clockface/pkg/frametrace"
)

// Sink receives computed hand angles. Implementations decide how the
// angles reach the screen; parts an instance does not have are simply
// skipped by the sink, never reported as errors.
//
// The scheduler calls ApplyAngles without holding its own lock, but always
// from the driver goroutine (or the caller of [Scheduler.Tick]), one
// instance at a time.
type Sink interface {
	ApplyAngles(instanceID string, angles HandAngles)
}

// FrameUpdate is one instance's output for one accepted frame.
type FrameUpdate struct {
	InstanceID string
	Angles     HandAngles
}

// DefaultRefreshInterval approximates a 60Hz display refresh and paces the
// shared frame driver. Per-instance FPS gating happens on top of this.
const DefaultRefreshInterval = 16667 * time.Microsecond

// SchedulerOptions configures a [Scheduler]. The zero value is usable:
// system time, no sink, 60Hz driver pacing, no tracing.
type SchedulerOptions struct {
	// Source supplies monotonic and wall-clock time. Defaults to SystemSource.
	Source TimeSource

	// Sink receives computed angles. May be nil, in which case frames are
	// still computed (and returned from Tick) but not delivered anywhere.
	Sink Sink

	// RefreshInterval paces the shared frame driver. Defaults to
	// DefaultRefreshInterval.
	RefreshInterval time.Duration

	// Trace, if set, records per-tick durations.
	Trace *frametrace.Collector
}

// Scheduler owns the instance registry and the single shared frame driver
// that fans out to every running instance.
//
// The driver has two states: idle (no goroutine) and active (one goroutine
// re-arming itself every refresh interval). It activates lazily on the
// first [Scheduler.Start] and deactivates once a [Scheduler.Stop] leaves no
// instance running; the already-armed wakeup observes the cleared flag and
// exits, so deactivation is eventually consistent within one frame.
//
// All methods are safe for concurrent use.
type Scheduler struct {
	source  TimeSource
	sink    Sink
	refresh time.Duration
	trace   *frametrace.Collector

	mu sync.Mutex
	// order preserves registry insertion order; each tick visits
	// instances in this order.
	order  []*instance
	byID   map[string]*instance
	active bool
	// wake is closed when the active flag is cleared so the driver
	// goroutine can exit without waiting out a full refresh interval.
	wake chan struct{}
}

// NewScheduler creates a Scheduler with the given options.
func NewScheduler(opts SchedulerOptions) *Scheduler {
	source := opts.Source
	if source == nil {
		source = SystemSource{}
	}
	refresh := opts.RefreshInterval
	if refresh <= 0 {
		refresh = DefaultRefreshInterval
	}
	return &Scheduler{
		source:  source,
		sink:    opts.Sink,
		refresh: refresh,
		trace:   opts.Trace,
		byID:    make(map[string]*instance),
	}
}

// CreateInstance registers a new stopped clock instance with default FPS
// and the default motion style, returning its id. Ids are unique within
// the process; registry entries are never removed.
func (s *Scheduler) CreateInstance() string {
	in := &instance{
		id:           uuid.NewString(),
		fps:          DefaultFPS,
		style:        MotionNone,
		cycleSeconds: impulseCycleMin + rand.Float64()*(impulseCycleMax-impulseCycleMin),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[in.id] = in
	s.order = append(s.order, in)
	return in.id
}

// SetFPS updates the instance's desired update rate, effective on the next
// tick. fps must be greater than zero.
func (s *Scheduler) SetFPS(id string, fps float64) error {
	const op = "clockface.Scheduler.SetFPS"
	if fps <= 0 {
		return &errors.ConfigurationError{Op: op, Field: "fps", Value: fps, Reason: "must be greater than zero"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	in, ok := s.byID[id]
	if !ok {
		return unknownInstance(op, id)
	}
	in.fps = fps
	return nil
}

// SetMotionStyle updates the instance's motion model, effective on the
// next tick. Retained impulse state survives style switches.
func (s *Scheduler) SetMotionStyle(id string, style MotionStyle) error {
	const op = "clockface.Scheduler.SetMotionStyle"
	switch style {
	case MotionNone, MotionSmooth, MotionJumping, MotionImpulse:
	default:
		return &errors.ConfigurationError{Op: op, Field: "style", Value: int(style), Reason: "unknown motion style"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	in, ok := s.byID[id]
	if !ok {
		return unknownInstance(op, id)
	}
	in.style = style
	return nil
}

// Start marks the instance running and, if the shared driver is idle,
// activates it. Starting an already-running instance is a no-op.
//
// A restarted instance resumes from its retained gate timestamp and
// impulse state; a stale timestamp only means the next frame is accepted
// unconditionally.
func (s *Scheduler) Start(id string) error {
	const op = "clockface.Scheduler.Start"

	s.mu.Lock()
	defer s.mu.Unlock()
	in, ok := s.byID[id]
	if !ok {
		return unknownInstance(op, id)
	}
	in.running = true
	if !s.active {
		s.active = true
		s.wake = make(chan struct{})
		go s.drive(s.wake)
	}
	return nil
}

// Stop marks the instance stopped. Its registry entry, gate timestamp and
// impulse state are retained. If no instance remains running the driver
// flag is cleared; the driver goroutine observes this on its next wakeup
// and exits.
func (s *Scheduler) Stop(id string) error {
	const op = "clockface.Scheduler.Stop"

	s.mu.Lock()
	defer s.mu.Unlock()
	in, ok := s.byID[id]
	if !ok {
		return unknownInstance(op, id)
	}
	in.running = false
	for _, other := range s.order {
		if other.running {
			return nil
		}
	}
	if s.active {
		s.active = false
		close(s.wake)
		s.wake = nil
	}
	return nil
}

// Running reports whether the instance is currently started.
func (s *Scheduler) Running(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	in, ok := s.byID[id]
	if !ok {
		return false, unknownInstance("clockface.Scheduler.Running", id)
	}
	return in.running, nil
}

// Active reports whether the shared frame driver is armed.
func (s *Scheduler) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// InstanceIDs returns the registered instance ids in insertion order.
func (s *Scheduler) InstanceIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, len(s.order))
	for i, in := range s.order {
		ids[i] = in.id
	}
	return ids
}

// Tick runs exactly one driver iteration at the given monotonic timestamp
// without arming another frame: every running instance is offered to its
// frame-rate gate and, if accepted, its motion model output is delivered
// to the sink. The produced updates are returned in registry order.
//
// The shared driver calls Tick once per refresh interval; tests call it
// directly with synthetic timestamps.
func (s *Scheduler) Tick(now time.Time) []FrameUpdate {
	wall := s.source.WallClock()

	s.mu.Lock()
	snapshot := make([]*instance, len(s.order))
	copy(snapshot, s.order)
	s.mu.Unlock()

	var updates []FrameUpdate
	for _, in := range snapshot {
		if update, ok := s.step(in, wall, now); ok {
			updates = append(updates, update)
		}
	}
	return updates
}

// step processes one instance's share of a tick. A panic (realistically
// only from a sink) is recovered and reported so the remaining instances
// still get their frame.
func (s *Scheduler) step(in *instance, wall WallTime, now time.Time) (update FrameUpdate, ok bool) {
	defer errors.RecoverInstance("clockface.Scheduler.Tick", in.id)

	s.mu.Lock()
	if !in.running || !in.shouldUpdate(now) {
		s.mu.Unlock()
		return FrameUpdate{}, false
	}
	angles := in.angles(wall, now)
	s.mu.Unlock()

	if s.sink != nil {
		s.sink.ApplyAngles(in.id, angles)
	}
	return FrameUpdate{InstanceID: in.id, Angles: angles}, true
}

// drive is the shared frame driver loop. It runs while the active flag is
// set, pacing itself with the refresh interval and timing each tick into
// the trace collector when one is configured. wake is closed when the
// flag is cleared.
func (s *Scheduler) drive(wake chan struct{}) {
	ticker := time.NewTicker(s.refresh)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
		case <-wake:
			return
		}

		s.mu.Lock()
		// A stale wake channel means this driver was deactivated and a
		// new one armed in the meantime; only the current driver ticks.
		active := s.active && s.wake == wake
		s.mu.Unlock()
		if !active {
			return
		}

		start := s.source.Now()
		s.Tick(start)
		if s.trace != nil {
			s.trace.Record(s.source.Now().Sub(start))
		}
	}
}

func unknownInstance(op, id string) error {
	return &errors.ConfigurationError{Op: op, Field: "instance", Value: id, Reason: "unknown instance id"}
}
