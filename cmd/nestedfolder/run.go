package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/colorprofile"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/raphi011/nestedfolder/internal/config"
	"github.com/raphi011/nestedfolder/internal/log"
	"github.com/raphi011/nestedfolder/internal/output"
	"github.com/raphi011/nestedfolder/internal/resolve"
	"github.com/raphi011/nestedfolder/internal/suggest"
	"github.com/raphi011/nestedfolder/internal/ui/static"
	"github.com/raphi011/nestedfolder/internal/ui/styles"
)

// maxSuggestions bounds the "did you mean" lines per missing path.
const maxSuggestions = 3

// rootFlags are the flags of the resolving root command.
type rootFlags struct {
	format string
	print0 bool
	jobs   int
	stdin  bool
	copy   bool
}

// jsonResult is one line of --format json output.
type jsonResult struct {
	Input string `json:"input"`
	Path  string `json:"path,omitempty"`
	Depth int    `json:"depth"`
	Stop  string `json:"stop,omitempty"`
	Error string `json:"error,omitempty"`
	Kind  string `json:"kind,omitempty"`
}

func runResolve(cmd *cobra.Command, args []string, ro *rootFlags) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	l := log.FromContext(ctx)
	out := output.FromContext(ctx)

	if len(args) == 0 && !ro.stdin {
		fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
		return nil
	}

	inputs := nonEmpty(args)
	if ro.stdin {
		stdinPaths, err := readPaths(cmd.InOrStdin())
		if err != nil {
			return err
		}
		inputs = append(inputs, stdinPaths...)
	}

	out.NullTerminated(ro.print0)
	results := resolve.All(ctx, resolve.New(cfg.ResolveOptions()), inputs, cfg.Jobs)

	failures := newFailureReporter(cmd.ErrOrStderr())
	var resolved []string
	failed := 0
	for _, r := range results {
		if cfg.Format == config.FormatJSON {
			if err := out.JSON(toJSON(r)); err != nil {
				return err
			}
		}
		if r.Err != nil {
			failed++
			failures.report(r)
			continue
		}
		resolved = append(resolved, r.Path)
		if cfg.Format == config.FormatPlain {
			out.Path(r.Path)
		}
	}

	if cfg.Format == config.FormatTable {
		fmt.Fprint(colorWriter(out.Writer()), static.RenderResults(results))
	}

	if ro.copy && len(resolved) > 0 {
		if err := clipboard.WriteAll(strings.Join(resolved, "\n")); err != nil {
			l.Printf("Warning: failed to copy to clipboard: %v\n", err)
		} else {
			l.Debug("copied to clipboard", "paths", len(resolved))
		}
	}

	if failed > 0 {
		l.Debug("finished with failures", "failed", failed, "total", len(results))
		return errResolveFailed
	}
	return nil
}

// colorWriter downsamples or strips ANSI styling to what w's terminal
// supports. Only styled, human-facing output goes through it.
func colorWriter(w io.Writer) io.Writer {
	return colorprofile.NewWriter(w, os.Environ())
}

// failureReporter writes per-input failures. Paths and error messages
// are written verbatim; only the fixed labels are coloured, and only
// when w is a colour terminal.
type failureReporter struct {
	w     io.Writer
	color bool
}

func newFailureReporter(w io.Writer) *failureReporter {
	f := &failureReporter{w: w}
	switch colorprofile.Detect(w, os.Environ()) {
	case colorprofile.TrueColor, colorprofile.ANSI256, colorprofile.ANSI:
		f.color = true
	}
	return f
}

func (f *failureReporter) label(style lipgloss.Style, text string) string {
	if !f.color {
		return text
	}
	return style.Render(text)
}

// report writes the failure line, plus suggestions when the input does
// not exist.
func (f *failureReporter) report(r resolve.Result) {
	fmt.Fprintf(f.w, "%s %q: %v\n", f.label(styles.ErrorStyle, "failed for"), r.Input, r.Err)

	if !errors.Is(r.Err, resolve.ErrNotFound) {
		return
	}
	for _, s := range suggest.ForMissing(r.Input, maxSuggestions) {
		fmt.Fprintf(f.w, "  %s %s?\n", f.label(styles.WarningStyle, "did you mean"), s)
	}
}

func toJSON(r resolve.Result) jsonResult {
	if r.Err != nil {
		return jsonResult{Input: r.Input, Error: r.Err.Error(), Kind: resolve.KindOf(r.Err).String()}
	}
	return jsonResult{Input: r.Input, Path: r.Path, Depth: r.Depth, Stop: r.Reason.String()}
}

// nonEmpty drops empty arguments, which are skipped silently.
func nonEmpty(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if a != "" {
			out = append(out, a)
		}
	}
	return out
}

// readPaths reads newline-separated paths, skipping empty lines. It
// refuses an interactive terminal so the command never blocks waiting
// for typed input.
func readPaths(r io.Reader) ([]string, error) {
	if f, ok := r.(*os.File); ok {
		if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
			return nil, errors.New("--stdin requires piped input")
		}
	}

	var paths []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line != "" {
			paths = append(paths, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return paths, nil
}
