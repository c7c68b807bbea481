package canvas

import (
	"errors"
	"fmt"

	"github.com/ironsheep/image-canvas-mcp/internal/storage"
)

// Sentinel errors returned (usually wrapped) by canvas operations.
// Use errors.Is to test for them.
var (
	// ErrInvalidArgument reports an unrecognized enum value such as a flip
	// mode, compositing rule, interpolation name or shear direction.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidGeometry reports negative or nonsensical shape dimensions.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrOutOfBounds reports a crop, copy or sample region outside the image.
	ErrOutOfBounds = errors.New("out of bounds")

	// ErrInvalidColor reports a color specification that cannot be resolved.
	ErrInvalidColor = errors.New("invalid color")

	// ErrNoSourcePath reports a write with no explicit path on an image that
	// was never given a source descriptor.
	ErrNoSourcePath = errors.New("no source path")

	// ErrNoOverwrite reports a write to an existing destination when
	// overwriting was not allowed.
	ErrNoOverwrite = storage.ErrExists
)

// LoadError is returned when an image cannot be constructed from a source,
// a payload or a blank specification.
type LoadError struct {
	// Source is the path or URL that was read. Empty for payload decodes.
	Source string

	// Format is the requested or detected format (or channel layout for
	// blank images). May be empty.
	Format string

	// Err is the underlying cause.
	Err error
}

func (e *LoadError) Error() string {
	switch {
	case e.Source != "" && e.Format != "":
		return fmt.Sprintf("load %s (%s): %v", e.Source, e.Format, e.Err)
	case e.Source != "":
		return fmt.Sprintf("load %s: %v", e.Source, e.Err)
	case e.Format != "":
		return fmt.Sprintf("load (%s): %v", e.Format, e.Err)
	default:
		return fmt.Sprintf("load: %v", e.Err)
	}
}

func (e *LoadError) Unwrap() error { return e.Err }

// WriteError is returned when an image cannot be written to its destination.
type WriteError struct {
	Path   string
	Format string
	Err    error
}

func (e *WriteError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("write: %v", e.Err)
	}
	return fmt.Sprintf("write %s (%s): %v", e.Path, e.Format, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// invalidArg wraps ErrInvalidArgument with context.
func invalidArg(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// invalidGeometry wraps ErrInvalidGeometry with context.
func invalidGeometry(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidGeometry, fmt.Sprintf(format, args...))
}
