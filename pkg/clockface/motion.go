package clockface

import (
	"fmt"
	"math"
	"time"
)

// MotionStyle selects how an instance's hand angles are derived from
// wall-clock time.
//
// The styles form a closed set; [Scheduler.SetMotionStyle] rejects any
// other value with a configuration error.
type MotionStyle int

const (
	// MotionNone is the default: all three hands sweep continuously.
	MotionNone MotionStyle = iota
	// MotionSmooth sweeps the second hand continuously while the minute
	// and hour hands step once per minute.
	MotionSmooth
	// MotionJumping steps the second hand once per second and the minute
	// and hour hands once per minute.
	MotionJumping
	// MotionImpulse emulates a mechanical slave movement: the second hand
	// sweeps a slightly-fast cycle then parks at twelve, while the minute
	// and hour hands snap forward at the minute boundary and settle with a
	// damped oscillation.
	MotionImpulse
)

// String returns the style's configuration name.
func (s MotionStyle) String() string {
	switch s {
	case MotionNone:
		return "none"
	case MotionSmooth:
		return "smooth"
	case MotionJumping:
		return "jumping"
	case MotionImpulse:
		return "impulse"
	default:
		return fmt.Sprintf("MotionStyle(%d)", int(s))
	}
}

// ParseMotionStyle converts a configuration name into a MotionStyle.
func ParseMotionStyle(name string) (MotionStyle, error) {
	switch name {
	case "none", "":
		return MotionNone, nil
	case "smooth":
		return MotionSmooth, nil
	case "jumping":
		return MotionJumping, nil
	case "impulse":
		return MotionImpulse, nil
	default:
		return MotionNone, fmt.Errorf("unknown motion style %q", name)
	}
}

// HandAngles holds the computed rotation for each hand, in degrees.
// Values are not normalized into [0, 360); rotation is periodic, so
// sinks may apply them as-is.
type HandAngles struct {
	Hour   float64
	Minute float64
	Second float64
}

// Impulse cycle duration bounds, in seconds. Each instance draws its cycle
// once at construction so that multiple impulse clocks drift visibly apart.
const (
	impulseCycleMin = 57.5
	impulseCycleMax = 58.7
)

// jiggle tuning for the impulse model. After the minute-boundary jump the
// minute hand oscillates at sin(elapsedMs/40) with an amplitude of 8 degrees
// decaying by a factor of 0.4 every 350ms; the hour hand follows at 1/12
// of that.
const (
	jiggleAmplitude = 8.0
	jiggleDecay     = 0.4
	jiggleHalfStep  = 350.0
	jigglePeriod    = 40.0
)

// impulseState is the retained state of the impulse model. It is created
// lazily on the first impulse-style frame and survives style switches and
// stop/start cycles for the lifetime of the instance.
type impulseState struct {
	jumped      bool
	jiggleStart time.Time
}

// angles computes the hand angles for the instance's current motion style
// from the wall-clock sample wt. now is the monotonic timestamp of the
// frame; only the impulse model consumes it.
func (in *instance) angles(wt WallTime, now time.Time) HandAngles {
	sec := float64(wt.Seconds) + float64(wt.Milliseconds)/1000
	min := float64(wt.Minutes) + sec/60
	hour := float64(wt.Hours) + min/60

	switch in.style {
	case MotionSmooth:
		return HandAngles{
			Second: sec * 6,
			Minute: math.Floor(min) * 6,
			Hour:   math.Floor(math.Mod(hour, 12))*30 + math.Floor(min)/60*30,
		}
	case MotionJumping:
		return HandAngles{
			Second: math.Floor(sec) * 6,
			Minute: math.Floor(min) * 6,
			Hour:   math.Floor(math.Mod(hour, 12))*30 + math.Floor(min)/60*30,
		}
	case MotionImpulse:
		return in.impulseAngles(wt, sec, now)
	default:
		return HandAngles{
			Second: sec * 6,
			Minute: math.Mod(min, 60) * 6,
			Hour:   math.Mod(hour, 12) * 30,
		}
	}
}

// impulseAngles runs the impulse state machine. Within each minute the
// second hand sweeps 0..360 over the instance's cycle duration, then parks
// at zero for the remainder. The minute and hour hands jump to the new
// minute's target on the first frame of the sweep and jiggle around it
// afterwards; during the park they hold the target and the jump trigger
// re-arms.
func (in *instance) impulseAngles(wt WallTime, sec float64, now time.Time) HandAngles {
	if in.impulse == nil {
		in.impulse = &impulseState{}
	}
	st := in.impulse

	minuteTarget := float64(wt.Minutes) * 6
	hourTarget := float64(wt.Hours%12)*30 + float64(wt.Minutes)/60*30

	if sec > in.cycleSeconds {
		// Pause phase: second hand parked, hands hold, trigger re-armed.
		st.jumped = false
		return HandAngles{Second: 0, Minute: minuteTarget, Hour: hourTarget}
	}

	out := HandAngles{Second: sec / in.cycleSeconds * 360}
	if !st.jumped {
		st.jumped = true
		st.jiggleStart = now
		out.Minute = minuteTarget
		out.Hour = hourTarget
		return out
	}

	elapsed := float64(now.Sub(st.jiggleStart)) / float64(time.Millisecond)
	amplitude := jiggleAmplitude * math.Pow(jiggleDecay, elapsed/jiggleHalfStep)
	jiggle := math.Sin(elapsed/jigglePeriod) * amplitude
	out.Minute = minuteTarget + jiggle
	out.Hour = hourTarget + jiggle/12
	return out
}
