package clockface

import "time"

// DefaultFPS is the update rate assigned to newly created instances.
const DefaultFPS = 80

// instance is one registered clock. Registry membership and the running
// flag belong to the Scheduler; lastUpdate belongs to the frame-rate gate;
// impulse state belongs to the impulse motion model. All access is
// serialized by the scheduler mutex.
type instance struct {
	id    string
	fps   float64
	style MotionStyle

	// lastUpdate is the monotonic timestamp of the last accepted frame.
	// The zero value means "never updated", so the first frame after
	// creation (or after a stale stop/start cycle) is always accepted.
	lastUpdate time.Time

	// cycleSeconds is the impulse sweep duration, drawn once at
	// construction from [impulseCycleMin, impulseCycleMax).
	cycleSeconds float64

	impulse *impulseState

	running bool
}

// shouldUpdate is the frame-rate gate: it accepts the frame iff at least
// 1s/fps has elapsed since the last accepted frame, recording now as the
// new acceptance timestamp. A rejected frame has no side effect.
func (in *instance) shouldUpdate(now time.Time) bool {
	interval := time.Duration(float64(time.Second) / in.fps)
	if !in.lastUpdate.IsZero() && now.Sub(in.lastUpdate) < interval {
		return false
	}
	in.lastUpdate = now
	return true
}
