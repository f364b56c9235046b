package resolve

import (
	"errors"
	"io/fs"
	"syscall"
)

// Kind classifies a resolution failure.
type Kind int

const (
	// KindIO covers every failure not classified below (device errors,
	// entries disappearing mid-listing, ...).
	KindIO Kind = iota
	KindNotFound
	KindNotDirectory
	KindPermission
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not-found"
	case KindNotDirectory:
		return "not-a-directory"
	case KindPermission:
		return "permission-denied"
	default:
		return "io"
	}
}

// Sentinels matched by [*Error] through errors.Is.
var (
	ErrNotFound     = errors.New("path not found")
	ErrNotDirectory = errors.New("not a directory")
	ErrPermission   = errors.New("permission denied")
)

// Error reports the operation and path at which a resolution failed.
type Error struct {
	Op   string // "open", "readdir" or "stat"
	Path string
	Kind Kind
	Err  error
}

func newError(op, path string, err error) *Error {
	return &Error{Op: op, Path: path, Kind: classify(err), Err: err}
}

// Error returns the underlying message. OS errors already carry the
// operation and path; anything else gets them prefixed.
func (e *Error) Error() string {
	var pe *fs.PathError
	if errors.As(e.Err, &pe) {
		return pe.Error()
	}
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrNotDirectory:
		return e.Kind == KindNotDirectory
	case ErrPermission:
		return e.Kind == KindPermission
	}
	return false
}

// KindOf returns the kind of err, or KindIO when err did not come from a
// resolution.
func KindOf(err error) Kind {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	return KindIO
}

func classify(err error) Kind {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return KindNotFound
	case errors.Is(err, syscall.ENOTDIR):
		return KindNotDirectory
	case errors.Is(err, fs.ErrPermission):
		return KindPermission
	default:
		return KindIO
	}
}
