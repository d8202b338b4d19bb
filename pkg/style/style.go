// Package style loads clock face styles: named sets of renderable images
// for the dial and hands, declared in YAML style sheets and resolved
// through a caching [Store].
//
// A style sheet is a file `<id>.yaml` at the root of the store's
// filesystem:
//
//	format: v1.0.0
//	name: Station Clock
//	parts:
//	  face: station/face.png
//	  hourHand: station/hour.png
//	  minuteHand: station/minute.png
//	  secondHand: station/second.png
//
// The format field is a semantic version; the store accepts major v1.
// Parts are optional; an instance without a second hand simply never has
// a second-hand angle applied.
package style

import (
	"fmt"
	"image"

	// Registered image formats for sheet part decoding.
	_ "image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"
)

// Part identifies one renderable piece of a clock face.
type Part int

const (
	// PartFace is the dial background.
	PartFace Part = iota
	// PartHourHand is the hour hand image, drawn pointing at twelve.
	PartHourHand
	// PartMinuteHand is the minute hand image, drawn pointing at twelve.
	PartMinuteHand
	// PartSecondHand is the second hand image, drawn pointing at twelve.
	PartSecondHand
)

// String returns the part's sheet key.
func (p Part) String() string {
	switch p {
	case PartFace:
		return "face"
	case PartHourHand:
		return "hourHand"
	case PartMinuteHand:
		return "minuteHand"
	case PartSecondHand:
		return "secondHand"
	default:
		return fmt.Sprintf("Part(%d)", int(p))
	}
}

// parsePart maps a sheet key back to a Part.
func parsePart(key string) (Part, bool) {
	switch key {
	case "face":
		return PartFace, true
	case "hourHand":
		return PartHourHand, true
	case "minuteHand":
		return PartMinuteHand, true
	case "secondHand":
		return PartSecondHand, true
	default:
		return 0, false
	}
}

// Hands returns the three hand parts in hour/minute/second order.
func Hands() []Part {
	return []Part{PartHourHand, PartMinuteHand, PartSecondHand}
}

// Style is a resolved, decoded style: a reusable record shared by every
// instance rendered with it. Styles are immutable once resolved, so they
// are safe for concurrent use without locking.
type Style struct {
	// ID is the style sheet identifier the style was resolved from.
	ID string
	// Name is the sheet's display name, if any.
	Name string

	parts map[Part]image.Image
}

// New builds a Style directly from decoded images, for hosts that manage
// their own assets instead of resolving sheets through a [Store].
func New(id string, parts map[Part]image.Image) *Style {
	copied := make(map[Part]image.Image, len(parts))
	for part, img := range parts {
		copied[part] = img
	}
	return &Style{ID: id, parts: copied}
}

// Part returns the decoded image for p, or false if the style does not
// define it.
func (s *Style) Part(p Part) (image.Image, bool) {
	img, ok := s.parts[p]
	return img, ok
}

// HasPart reports whether the style defines p.
func (s *Style) HasPart(p Part) bool {
	_, ok := s.Part(p)
	return ok
}

// Scaled returns a copy of the style with every part resampled to a px
// square, sized from the host container's minimum dimension. The receiver
// is left untouched.
func (s *Style) Scaled(px int) *Style {
	scaled := &Style{
		ID:    s.ID,
		Name:  s.Name,
		parts: make(map[Part]image.Image, len(s.parts)),
	}
	target := image.Rect(0, 0, px, px)
	for part, img := range s.parts {
		dst := image.NewRGBA(target)
		xdraw.CatmullRom.Scale(dst, target, img, img.Bounds(), xdraw.Over, nil)
		scaled.parts[part] = dst
	}
	return scaled
}
