package render

import (
	"image"
	"image/draw"
	"math"
	"sync"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/go-drift/clockface/pkg/clockface"
	"github.com/go-drift/clockface/pkg/style"
)

// ImageSink composites each applied frame into an in-memory dial image:
// the style's face as background, then each hand rotated about the dial
// centre by its computed angle. Hand images are authored pointing at
// twelve; a part the style does not define is skipped silently.
//
// ImageSink is safe for concurrent use, though the scheduler only ever
// delivers one instance's frame at a time.
type ImageSink struct {
	st   *style.Style
	size int

	mu     sync.Mutex
	frames map[string]*image.RGBA
}

// NewImageSink creates an ImageSink rendering st at size pixels square.
// The caller typically derives size from the host container's minimum
// dimension and passes a style already scaled to match.
func NewImageSink(st *style.Style, size int) *ImageSink {
	return &ImageSink{
		st:     st,
		size:   size,
		frames: make(map[string]*image.RGBA),
	}
}

// ApplyAngles renders the frame for the instance, replacing its previous
// frame.
func (s *ImageSink) ApplyAngles(instanceID string, angles clockface.HandAngles) {
	dst := image.NewRGBA(image.Rect(0, 0, s.size, s.size))

	if face, ok := s.st.Part(style.PartFace); ok {
		draw.Draw(dst, dst.Bounds(), face, face.Bounds().Min, draw.Src)
	}
	s.drawHand(dst, style.PartHourHand, angles.Hour)
	s.drawHand(dst, style.PartMinuteHand, angles.Minute)
	s.drawHand(dst, style.PartSecondHand, angles.Second)

	s.mu.Lock()
	s.frames[instanceID] = dst
	s.mu.Unlock()
}

// Frame returns the most recently rendered image for the instance.
func (s *ImageSink) Frame(instanceID string) (*image.RGBA, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	frame, ok := s.frames[instanceID]
	return frame, ok
}

// drawHand rotates the part's image about the dial centre by degrees and
// composites it over dst. Missing parts are skipped.
func (s *ImageSink) drawHand(dst *image.RGBA, part style.Part, degrees float64) {
	hand, ok := s.st.Part(part)
	if !ok {
		return
	}

	theta := degrees * math.Pi / 180
	sin, cos := math.Sin(theta), math.Cos(theta)

	b := hand.Bounds()
	srcX := float64(b.Min.X+b.Max.X) / 2
	srcY := float64(b.Min.Y+b.Max.Y) / 2
	dstC := float64(s.size) / 2

	// Affine map from source to destination: rotate about the hand's
	// centre, then translate that centre onto the dial centre. Screen
	// coordinates grow downward, so a positive angle turns clockwise.
	m := f64.Aff3{
		cos, -sin, dstC - cos*srcX + sin*srcY,
		sin, cos, dstC - sin*srcX - cos*srcY,
	}
	xdraw.CatmullRom.Transform(dst, m, hand, b, xdraw.Over, nil)
}
