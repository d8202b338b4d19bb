package clockface

import (
	"math"
	"testing"
	"time"
)

const angleTolerance = 1e-9

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func newTestInstance(style MotionStyle) *instance {
	return &instance{
		id:           "test",
		fps:          DefaultFPS,
		style:        style,
		cycleSeconds: 58.0,
	}
}

// Reference sample 10:09:30.500 with hand angles worked out by hand for
// each stateless style.
func TestStatelessStyles(t *testing.T) {
	wall := WallTime{Hours: 10, Minutes: 9, Seconds: 30, Milliseconds: 500}
	now := time.Date(2024, 1, 1, 10, 9, 30, 500e6, time.UTC)

	sec := 30.5
	min := 9 + sec/60
	hour := 10 + min/60

	tests := []struct {
		style MotionStyle
		want  HandAngles
	}{
		{MotionNone, HandAngles{
			Second: sec * 6,
			Minute: min * 6,
			Hour:   math.Mod(hour, 12) * 30,
		}},
		{MotionSmooth, HandAngles{
			Second: 183,
			Minute: 54,
			Hour:   304.5,
		}},
		{MotionJumping, HandAngles{
			Second: 180,
			Minute: 54,
			Hour:   304.5,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.style.String(), func(t *testing.T) {
			in := newTestInstance(tt.style)
			got := in.angles(wall, now)
			if !approxEqual(got.Second, tt.want.Second, angleTolerance) {
				t.Errorf("Second = %v, want %v", got.Second, tt.want.Second)
			}
			if !approxEqual(got.Minute, tt.want.Minute, angleTolerance) {
				t.Errorf("Minute = %v, want %v", got.Minute, tt.want.Minute)
			}
			if !approxEqual(got.Hour, tt.want.Hour, angleTolerance) {
				t.Errorf("Hour = %v, want %v", got.Hour, tt.want.Hour)
			}
		})
	}
}

func TestStatelessStylesLeaveNoState(t *testing.T) {
	wall := WallTime{Hours: 3, Minutes: 15, Seconds: 42, Milliseconds: 0}
	now := time.Date(2024, 1, 1, 3, 15, 42, 0, time.UTC)

	for _, style := range []MotionStyle{MotionNone, MotionSmooth, MotionJumping} {
		in := newTestInstance(style)
		in.angles(wall, now)
		if in.impulse != nil {
			t.Errorf("style %v created impulse state", style)
		}
	}
}

func TestImpulseJumpOnFirstActiveFrame(t *testing.T) {
	in := newTestInstance(MotionImpulse)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	// Immediately after the minute boundary: secCycle = 0.
	wall := WallTime{Hours: 10, Minutes: 9, Seconds: 0, Milliseconds: 0}
	got := in.angles(wall, now)

	if in.impulse == nil || !in.impulse.jumped {
		t.Fatal("expected jump trigger to fire on first active frame")
	}
	if !in.impulse.jiggleStart.Equal(now) {
		t.Errorf("jiggleStart = %v, want %v", in.impulse.jiggleStart, now)
	}
	if got.Second != 0 {
		t.Errorf("Second = %v, want 0 at cycle start", got.Second)
	}
	// The jump lands exactly on the new minute's target, with no jiggle.
	if got.Minute != 54 {
		t.Errorf("Minute = %v, want 54", got.Minute)
	}
	want := float64(10%12)*30 + 9.0/60*30
	if !approxEqual(got.Hour, want, angleTolerance) {
		t.Errorf("Hour = %v, want %v", got.Hour, want)
	}
}

func TestImpulseSecondHandSweep(t *testing.T) {
	in := newTestInstance(MotionImpulse)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	// Halfway through a 58s cycle the second hand is at 180 degrees.
	wall := WallTime{Hours: 10, Minutes: 9, Seconds: 29, Milliseconds: 0}
	got := in.angles(wall, now)
	want := 29.0 / 58.0 * 360
	if !approxEqual(got.Second, want, angleTolerance) {
		t.Errorf("Second = %v, want %v", got.Second, want)
	}
}

func TestImpulseJiggleFollowsDecayCurve(t *testing.T) {
	in := newTestInstance(MotionImpulse)
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	wall := WallTime{Hours: 10, Minutes: 9, Seconds: 1, Milliseconds: 0}

	// Trigger the jump.
	in.angles(WallTime{Hours: 10, Minutes: 9}, start)

	elapsedMs := 100.0
	got := in.angles(wall, start.Add(100*time.Millisecond))

	wantJiggle := math.Sin(elapsedMs/40) * 8 * math.Pow(0.4, elapsedMs/350)
	if !approxEqual(got.Minute, 54+wantJiggle, 1e-6) {
		t.Errorf("Minute = %v, want %v", got.Minute, 54+wantJiggle)
	}
	wantHour := float64(10%12)*30 + 9.0/60*30 + wantJiggle/12
	if !approxEqual(got.Hour, wantHour, 1e-6) {
		t.Errorf("Hour = %v, want %v", got.Hour, wantHour)
	}
}

// Two samples 350ms apart must show the jiggle envelope decayed by a
// factor of 0.4.
func TestImpulseJiggleAmplitudeDecay(t *testing.T) {
	in := newTestInstance(MotionImpulse)
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	wall := WallTime{Hours: 10, Minutes: 9, Seconds: 2, Milliseconds: 0}

	in.angles(WallTime{Hours: 10, Minutes: 9}, start)

	sample := func(elapsed time.Duration) float64 {
		out := in.angles(wall, start.Add(elapsed))
		jiggle := out.Minute - 54
		// Divide out the carrier so only the envelope remains.
		return jiggle / math.Sin(float64(elapsed)/float64(time.Millisecond)/40)
	}

	a1 := sample(100 * time.Millisecond)
	a2 := sample(450 * time.Millisecond)
	ratio := a2 / a1
	if !approxEqual(ratio, 0.4, 1e-6) {
		t.Errorf("amplitude ratio over 350ms = %v, want 0.4", ratio)
	}
}

func TestImpulsePausePhase(t *testing.T) {
	in := newTestInstance(MotionImpulse)
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	// Jump, then run past the cycle duration into the pause.
	in.angles(WallTime{Hours: 10, Minutes: 9}, start)
	got := in.angles(WallTime{Hours: 10, Minutes: 9, Seconds: 59}, start.Add(59*time.Second))

	if got.Second != 0 {
		t.Errorf("Second = %v, want 0 (parked)", got.Second)
	}
	if got.Minute != 54 {
		t.Errorf("Minute = %v, want 54 (held, no jiggle)", got.Minute)
	}
	if in.impulse.jumped {
		t.Error("pause phase should re-arm the jump trigger")
	}

	// Next minute's first active frame jumps to the new target.
	next := in.angles(WallTime{Hours: 10, Minutes: 10}, start.Add(60*time.Second))
	if next.Minute != 60 {
		t.Errorf("Minute = %v, want 60 after jump to new minute", next.Minute)
	}
	if !in.impulse.jumped {
		t.Error("expected jump trigger to fire again after pause")
	}
}

func TestImpulseStateSurvivesStyleSwitch(t *testing.T) {
	in := newTestInstance(MotionImpulse)
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	in.angles(WallTime{Hours: 10, Minutes: 9}, start)
	st := in.impulse

	in.style = MotionSmooth
	in.angles(WallTime{Hours: 10, Minutes: 9, Seconds: 5}, start.Add(5*time.Second))

	in.style = MotionImpulse
	in.angles(WallTime{Hours: 10, Minutes: 9, Seconds: 6}, start.Add(6*time.Second))
	if in.impulse != st {
		t.Error("impulse state should persist across style switches")
	}
}

func TestParseMotionStyle(t *testing.T) {
	tests := []struct {
		name    string
		want    MotionStyle
		wantErr bool
	}{
		{"none", MotionNone, false},
		{"", MotionNone, false},
		{"smooth", MotionSmooth, false},
		{"jumping", MotionJumping, false},
		{"impulse", MotionImpulse, false},
		{"bouncy", MotionNone, true},
	}
	for _, tt := range tests {
		got, err := ParseMotionStyle(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMotionStyle(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseMotionStyle(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestMotionStyleString(t *testing.T) {
	tests := []struct {
		style MotionStyle
		want  string
	}{
		{MotionNone, "none"},
		{MotionSmooth, "smooth"},
		{MotionJumping, "jumping"},
		{MotionImpulse, "impulse"},
	}
	for _, tt := range tests {
		if got := tt.style.String(); got != tt.want {
			t.Errorf("MotionStyle(%d).String() = %q, want %q", tt.style, got, tt.want)
		}
	}
}
