package style

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"sync"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	cferrors "github.com/go-drift/clockface/pkg/errors"
)

// formatMajor is the style sheet format major version the store accepts.
const formatMajor = "v1"

var (
	// ErrUnknownStyle reports a style id with no sheet in the store.
	ErrUnknownStyle = errors.New("unknown style")
	// ErrUnsupportedFormat reports a sheet whose format version the
	// store cannot read.
	ErrUnsupportedFormat = errors.New("unsupported style sheet format")
)

// sheet is the YAML document shape of a style sheet.
type sheet struct {
	Format string            `yaml:"format"`
	Name   string            `yaml:"name,omitempty"`
	Parts  map[string]string `yaml:"parts"`
}

// Store resolves style ids into decoded, cached [Style] records.
// A Store is safe for concurrent use.
type Store struct {
	fsys fs.FS

	mu    sync.Mutex
	cache map[string]*Style
}

// NewStore creates a Store reading sheets and images from fsys.
func NewStore(fsys fs.FS) *Store {
	return &Store{
		fsys:  fsys,
		cache: make(map[string]*Style),
	}
}

// Resolve loads the style sheet for id, decodes its part images and
// returns the resulting Style. Results are cached; every call for the
// same id returns the same record.
//
// Unknown ids fail with a config-kind error wrapping [ErrUnknownStyle];
// unreadable or undecodable images fail with a decode-kind error naming
// the part.
func (st *Store) Resolve(id string) (*Style, error) {
	const op = "style.Store.Resolve"

	st.mu.Lock()
	if cached, ok := st.cache[id]; ok {
		st.mu.Unlock()
		return cached, nil
	}
	st.mu.Unlock()

	data, err := fs.ReadFile(st.fsys, id+".yaml")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &cferrors.ClockError{
				Op: op, Kind: cferrors.KindStyle,
				Err: fmt.Errorf("style %q: %w", id, ErrUnknownStyle),
			}
		}
		return nil, &cferrors.ClockError{
			Op: op, Kind: cferrors.KindStyle,
			Err: fmt.Errorf("read style sheet %q: %w", id, err),
		}
	}

	var sh sheet
	if err := yaml.Unmarshal(data, &sh); err != nil {
		return nil, &cferrors.ClockError{
			Op: op, Kind: cferrors.KindStyle,
			Err: fmt.Errorf("parse style sheet %q: %w", id, err),
		}
	}
	if err := checkFormat(sh.Format); err != nil {
		return nil, &cferrors.ClockError{
			Op: op, Kind: cferrors.KindStyle,
			Err: fmt.Errorf("style sheet %q: %w", id, err),
		}
	}

	resolved := &Style{
		ID:    id,
		Name:  sh.Name,
		parts: make(map[Part]image.Image, len(sh.Parts)),
	}
	for key, file := range sh.Parts {
		part, ok := parsePart(key)
		if !ok {
			return nil, &cferrors.ClockError{
				Op: op, Kind: cferrors.KindStyle,
				Err: fmt.Errorf("style sheet %q: unknown part %q", id, key),
			}
		}
		img, err := st.loadImage(file)
		if err != nil {
			return nil, &cferrors.ClockError{
				Op: op, Kind: cferrors.KindDecode,
				Err: fmt.Errorf("style %q part %s: %w", id, part, err),
			}
		}
		resolved.parts[part] = img
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	// Another goroutine may have resolved the same id concurrently;
	// keep the first record so callers share one instance.
	if cached, ok := st.cache[id]; ok {
		return cached, nil
	}
	st.cache[id] = resolved
	return resolved, nil
}

func (st *Store) loadImage(file string) (image.Image, error) {
	f, err := st.fsys.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", file, err)
	}
	return img, nil
}

// checkFormat validates the sheet's declared format version.
func checkFormat(format string) error {
	if format == "" {
		return fmt.Errorf("missing format version: %w", ErrUnsupportedFormat)
	}
	if !semver.IsValid(format) {
		return fmt.Errorf("format %q is not a semantic version: %w", format, ErrUnsupportedFormat)
	}
	if semver.Major(format) != formatMajor {
		return fmt.Errorf("format %s: %w (want major %s)", format, ErrUnsupportedFormat, formatMajor)
	}
	return nil
}
