// Package output provides context-aware output for nestedfolder.
// Stdout is used for primary data output (resolved paths, tables, JSON).
// Stderr (via log package) is used for diagnostics.
package output

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

type ctxKey struct{}

// Printer writes primary output to stdout.
type Printer struct {
	w    io.Writer
	term string // written after each path
}

// New creates a new Printer writing to the given writer.
func New(w io.Writer) *Printer {
	return &Printer{w: w, term: "\n"}
}

// WithPrinter attaches a Printer to the context.
func WithPrinter(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// FromContext retrieves the Printer from context.
// Returns a Printer writing to os.Stdout if none is attached.
func FromContext(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stdout)
}

// NullTerminated makes Path end each path with NUL instead of a newline,
// for consumption by xargs -0.
func (p *Printer) NullTerminated(on bool) {
	if on {
		p.term = "\x00"
		return
	}
	p.term = "\n"
}

// Path writes a single resolved path followed by the terminator.
func (p *Printer) Path(path string) {
	fmt.Fprint(p.w, path, p.term)
}

// JSON writes v as one line of JSON.
func (p *Printer) JSON(v any) error {
	return json.NewEncoder(p.w).Encode(v)
}

// Print writes output without a newline.
func (p *Printer) Print(a ...any) {
	fmt.Fprint(p.w, a...)
}

// Printf writes formatted output.
func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.w, format, a...)
}

// Println writes a line of output.
func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.w, a...)
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.w
}
