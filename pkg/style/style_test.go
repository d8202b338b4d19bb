package style

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	cferrors "github.com/go-drift/clockface/pkg/errors"
)

// pngBytes encodes a solid-colored test image.
func pngBytes(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return buf.Bytes()
}

func testStore(t *testing.T) *Store {
	t.Helper()
	red := pngBytes(t, 64, 64, color.RGBA{R: 255, A: 255})
	blue := pngBytes(t, 16, 48, color.RGBA{B: 255, A: 255})

	return NewStore(fstest.MapFS{
		"station.yaml": {Data: []byte(`
format: v1.0.0
name: Station Clock
parts:
  face: img/face.png
  hourHand: img/hour.png
  minuteHand: img/minute.png
  secondHand: img/second.png
`)},
		"bare.yaml": {Data: []byte(`
format: v1.2.0
parts:
  face: img/face.png
  hourHand: img/hour.png
  minuteHand: img/minute.png
`)},
		"future.yaml": {Data: []byte(`
format: v2.0.0
parts:
  face: img/face.png
`)},
		"badversion.yaml": {Data: []byte(`
format: banana
parts:
  face: img/face.png
`)},
		"badpart.yaml": {Data: []byte(`
format: v1.0.0
parts:
  cuckoo: img/face.png
`)},
		"missingimage.yaml": {Data: []byte(`
format: v1.0.0
parts:
  face: img/absent.png
`)},
		"corrupt.yaml": {Data: []byte(`
format: v1.0.0
parts:
  face: img/corrupt.png
`)},
		"img/face.png":    {Data: red},
		"img/hour.png":    {Data: blue},
		"img/minute.png":  {Data: blue},
		"img/second.png":  {Data: blue},
		"img/corrupt.png": {Data: []byte("not an image")},
	})
}

func TestResolve(t *testing.T) {
	store := testStore(t)
	st, err := store.Resolve("station")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if st.ID != "station" {
		t.Errorf("ID = %q, want %q", st.ID, "station")
	}
	if st.Name != "Station Clock" {
		t.Errorf("Name = %q, want %q", st.Name, "Station Clock")
	}
	for _, part := range []Part{PartFace, PartHourHand, PartMinuteHand, PartSecondHand} {
		img, ok := st.Part(part)
		if !ok {
			t.Errorf("missing part %s", part)
			continue
		}
		if img.Bounds().Empty() {
			t.Errorf("part %s decoded empty", part)
		}
	}
}

func TestResolveCaches(t *testing.T) {
	store := testStore(t)
	first, err := store.Resolve("station")
	if err != nil {
		t.Fatal(err)
	}
	second, err := store.Resolve("station")
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("Resolve must return the cached record for a repeated id")
	}
}

func TestResolveOmitsUndeclaredParts(t *testing.T) {
	store := testStore(t)
	st, err := store.Resolve("bare")
	if err != nil {
		t.Fatal(err)
	}
	if st.HasPart(PartSecondHand) {
		t.Error("style without a second hand must not report one")
	}
}

func TestResolveUnknownStyle(t *testing.T) {
	store := testStore(t)
	_, err := store.Resolve("nope")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrUnknownStyle) {
		t.Errorf("error = %v, want ErrUnknownStyle", err)
	}
	var ce *cferrors.ClockError
	if !errors.As(err, &ce) || ce.Kind != cferrors.KindStyle {
		t.Errorf("error = %v, want ClockError with KindStyle", err)
	}
}

func TestResolveFormatErrors(t *testing.T) {
	store := testStore(t)
	for _, id := range []string{"future", "badversion"} {
		_, err := store.Resolve(id)
		if err == nil {
			t.Errorf("%s: expected error", id)
			continue
		}
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("%s: error = %v, want ErrUnsupportedFormat", id, err)
		}
	}
}

func TestResolveUnknownPart(t *testing.T) {
	store := testStore(t)
	if _, err := store.Resolve("badpart"); err == nil {
		t.Error("expected error for unknown part key")
	}
}

func TestResolveImageErrors(t *testing.T) {
	store := testStore(t)
	for _, id := range []string{"missingimage", "corrupt"} {
		_, err := store.Resolve(id)
		if err == nil {
			t.Errorf("%s: expected error", id)
			continue
		}
		var ce *cferrors.ClockError
		if !errors.As(err, &ce) || ce.Kind != cferrors.KindDecode {
			t.Errorf("%s: error = %v, want ClockError with KindDecode", id, err)
		}
	}
}

func TestScaled(t *testing.T) {
	store := testStore(t)
	st, err := store.Resolve("station")
	if err != nil {
		t.Fatal(err)
	}

	scaled := st.Scaled(32)
	want := image.Rect(0, 0, 32, 32)
	for _, part := range []Part{PartFace, PartHourHand} {
		img, ok := scaled.Part(part)
		if !ok {
			t.Fatalf("scaled style lost part %s", part)
		}
		if img.Bounds() != want {
			t.Errorf("part %s bounds = %v, want %v", part, img.Bounds(), want)
		}
	}

	// The original keeps its decoded dimensions.
	orig, _ := st.Part(PartFace)
	if orig.Bounds() != image.Rect(0, 0, 64, 64) {
		t.Errorf("original mutated: bounds = %v", orig.Bounds())
	}
}

func TestPartString(t *testing.T) {
	tests := []struct {
		part Part
		want string
	}{
		{PartFace, "face"},
		{PartHourHand, "hourHand"},
		{PartMinuteHand, "minuteHand"},
		{PartSecondHand, "secondHand"},
	}
	for _, tt := range tests {
		if got := tt.part.String(); got != tt.want {
			t.Errorf("Part(%d).String() = %q, want %q", tt.part, got, tt.want)
		}
	}
}
