package resolve

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/raphi011/nestedfolder/internal/log"
)

// Reason describes why descent halted.
type Reason int

const (
	// ReasonEmpty: the directory has no entries.
	ReasonEmpty Reason = iota
	// ReasonLoneFile: the only entry is not a directory.
	ReasonLoneFile
	// ReasonMultipleEntries: a second entry was observed.
	ReasonMultipleEntries
	// ReasonMaxDepth: Options.MaxDepth descents were made.
	ReasonMaxDepth
)

func (r Reason) String() string {
	switch r {
	case ReasonEmpty:
		return "empty"
	case ReasonLoneFile:
		return "lone-file"
	case ReasonMultipleEntries:
		return "multiple-entries"
	case ReasonMaxDepth:
		return "max-depth"
	default:
		return "unknown"
	}
}

// Options tune the descent. The zero value gives the plain rule.
// A Resolver built from Options that fail Validate rejects every input
// with the validation error.
type Options struct {
	// FollowSymlinks inspects the target of symlinked entries instead of
	// treating them as non-directories.
	FollowSymlinks bool
	// MaxDepth stops after that many descents. Zero means unlimited.
	MaxDepth int
	// Ignore lists basename globs (filepath.Match syntax) of entries that
	// are skipped before counting, e.g. ".DS_Store".
	Ignore []string
}

// Validate checks that every ignore pattern is well formed.
func (o Options) Validate() error {
	if o.MaxDepth < 0 {
		return errors.New("max depth must not be negative")
	}
	for _, pat := range o.Ignore {
		if _, err := filepath.Match(pat, ""); err != nil {
			return &fs.PathError{Op: "ignore", Path: pat, Err: err}
		}
	}
	return nil
}

// Result is the outcome of resolving one input.
type Result struct {
	Input  string
	Path   string
	Depth  int // number of descents made
	Reason Reason
	Err    error
}

// dirReader is the part of *os.File used for streaming listings.
type dirReader interface {
	ReadDir(n int) ([]fs.DirEntry, error)
	Close() error
}

// Resolver holds descent options. It has no per-call state and is safe
// for concurrent use.
type Resolver struct {
	opts    Options
	invalid error // from opts.Validate
	open    func(name string) (dirReader, error)
	stat    func(name string) (fs.FileInfo, error)
}

// New creates a Resolver reading the local filesystem.
func New(opts Options) *Resolver {
	return &Resolver{
		opts:    opts,
		invalid: opts.Validate(),
		open:    func(name string) (dirReader, error) { return os.Open(name) },
		stat:    os.Stat,
	}
}

// Path resolves path with default options.
func Path(path string) (string, error) {
	return New(Options{}).Resolve(context.Background(), path)
}

// Resolve returns the effective directory for path.
func (r *Resolver) Resolve(ctx context.Context, path string) (string, error) {
	res, err := r.Trace(ctx, path)
	if err != nil {
		return "", err
	}
	return res.Path, nil
}

// Trace resolves path and reports how deep it went and why it stopped.
// On error the returned Result is zero apart from Input and Err.
func (r *Resolver) Trace(ctx context.Context, path string) (Result, error) {
	l := log.FromContext(ctx)

	if r.invalid != nil {
		err := newError("options", path, r.invalid)
		return Result{Input: path, Err: err}, err
	}

	current := path
	depth := 0
	for {
		if err := ctx.Err(); err != nil {
			return Result{Input: path, Err: err}, err
		}
		if r.opts.MaxDepth > 0 && depth >= r.opts.MaxDepth {
			l.Debug("halt", "path", current, "reason", ReasonMaxDepth)
			return Result{Input: path, Path: current, Depth: depth, Reason: ReasonMaxDepth}, nil
		}

		candidate, reason, err := r.scan(current)
		if err != nil {
			l.Debug("fail", "path", current, "error", err)
			return Result{Input: path, Err: err}, err
		}
		if candidate == "" {
			l.Debug("halt", "path", current, "reason", reason)
			return Result{Input: path, Path: current, Depth: depth, Reason: reason}, nil
		}

		l.Debug("descend", "from", current, "to", candidate)
		current = candidate
		depth++
	}
}

// scan lists dir and returns its sole sub-directory, or "" with the reason
// descent halts here. The listing stops at the second counted entry.
func (r *Resolver) scan(dir string) (candidate string, reason Reason, err error) {
	d, err := r.open(dir)
	if err != nil {
		return "", 0, newError("open", dir, err)
	}
	defer d.Close()

	seen := 0
	for {
		entries, readErr := d.ReadDir(1)
		for _, e := range entries {
			if r.ignored(e.Name()) {
				continue
			}
			seen++
			if seen > 1 {
				return "", ReasonMultipleEntries, nil
			}
			isDir, err := r.isDir(dir, e)
			if err != nil {
				return "", 0, err
			}
			if !isDir {
				return "", ReasonLoneFile, nil
			}
			candidate = filepath.Join(dir, e.Name())
		}

		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return "", 0, newError("readdir", dir, notDirectory(d, dir, readErr))
		}
	}

	if candidate == "" {
		return "", ReasonEmpty, nil
	}
	return candidate, 0, nil
}

func (r *Resolver) isDir(parent string, e fs.DirEntry) (bool, error) {
	if r.opts.FollowSymlinks && e.Type()&fs.ModeSymlink != 0 {
		target := filepath.Join(parent, e.Name())
		fi, err := r.stat(target)
		if err != nil {
			return false, newError("stat", target, err)
		}
		return fi.IsDir(), nil
	}
	return e.IsDir(), nil
}

func (r *Resolver) ignored(name string) bool {
	for _, pat := range r.opts.Ignore {
		if matched, _ := filepath.Match(pat, name); matched {
			return true
		}
	}
	return false
}

// notDirectory normalises a listing failure on a non-directory handle to
// ENOTDIR, since not every platform reports it that way.
func notDirectory(d dirReader, dir string, err error) error {
	if errors.Is(err, syscall.ENOTDIR) {
		return err
	}
	s, ok := d.(interface{ Stat() (fs.FileInfo, error) })
	if !ok {
		return err
	}
	if fi, statErr := s.Stat(); statErr == nil && !fi.IsDir() {
		return &fs.PathError{Op: "readdir", Path: dir, Err: syscall.ENOTDIR}
	}
	return err
}
