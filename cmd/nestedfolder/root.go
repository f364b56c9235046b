package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raphi011/nestedfolder/internal/config"
	"github.com/raphi011/nestedfolder/internal/log"
	"github.com/raphi011/nestedfolder/internal/output"
)

// errResolveFailed is returned when at least one input failed to resolve.
// Each failure has already been reported, so Execute only sets the exit code.
var errResolveFailed = errors.New("one or more paths failed to resolve")

// globalFlags are shared by every command.
type globalFlags struct {
	verbose        bool
	quiet          bool
	followSymlinks bool
	maxDepth       int
	ignore         []string
}

// newRootCmd builds the command tree. The loaded config is expected in the
// context passed to ExecuteContext; defaults apply when it is missing.
func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	ro := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "nestedfolder [path...]",
		Short: "Find the first directory with real content",
		Long: `nestedfolder skips through chains of single-child directories.

For each path it descends while the current directory holds exactly one
entry and that entry is a directory, then prints the directory where
descent stopped: one that is empty, holds a single file, or holds more
than one entry.

Failures are reported per path on stderr as
  failed for "<path>": <error>
and the remaining paths are still resolved. Once every path has been
processed the exit status is 1 if any of them failed and 0 otherwise, so
scripts can detect a partial failure without parsing stderr.`,
		Example: `  nestedfolder ~/Downloads/archive      # print the effective directory
  cd "$(nestedfolder extracted/)"        # jump into it
  find . -name '*-unpacked' | nestedfolder --stdin
  nestedfolder -f table a b c            # show depth and stop reason`,
		Args:                       cobra.ArbitraryArgs,
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2, // Enable typo suggestions
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate mutually exclusive flags
			if g.verbose && g.quiet {
				return fmt.Errorf("--verbose and --quiet are mutually exclusive")
			}

			cfg, err := effectiveConfig(cmd, g, ro)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			ctx = config.WithConfig(ctx, cfg)
			ctx = log.WithLogger(ctx, log.New(colorWriter(cmd.ErrOrStderr()), g.verbose, g.quiet))
			// Paths are data: never rewrite them for the terminal
			ctx = output.WithPrinter(ctx, output.New(cmd.OutOrStdout()))
			cmd.SetContext(ctx)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, args, ro)
		},
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveFilterDirs
		},
	}

	// Global flags
	pf := cmd.PersistentFlags()
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "Trace each descent step on stderr")
	pf.BoolVarP(&g.quiet, "quiet", "q", false, "Suppress warnings and traces")
	pf.BoolVarP(&g.followSymlinks, "follow-symlinks", "L", false, "Descend into symlinked directories")
	pf.IntVar(&g.maxDepth, "max-depth", 0, "Stop after this many descents (0 = unlimited)")
	pf.StringSliceVar(&g.ignore, "ignore", nil, "Basename glob of entries to skip when counting (repeatable)")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Resolve flags
	f := cmd.Flags()
	f.StringVarP(&ro.format, "format", "f", "", "Output format: plain, json or table")
	f.BoolVarP(&ro.print0, "print0", "0", false, "Terminate plain output with NUL instead of newline")
	f.IntVarP(&ro.jobs, "jobs", "j", 0, "Resolve up to N paths concurrently")
	f.BoolVar(&ro.stdin, "stdin", false, "Also read newline-separated paths from stdin")
	f.BoolVar(&ro.copy, "copy", false, "Copy resolved paths to the clipboard")
	cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(config.ValidFormats, cobra.ShellCompDirectiveNoFileComp))

	// Version flag
	cmd.Version = versionString()
	cmd.SetVersionTemplate("{{.Version}}\n")

	cmd.AddCommand(newWatchCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newCompletionCmd())

	return cmd
}

// effectiveConfig applies explicitly set flags on top of the loaded config.
func effectiveConfig(cmd *cobra.Command, g *globalFlags, ro *rootFlags) (*config.Config, error) {
	cfg := config.Default()
	if loaded := config.FromContext(cmd.Context()); loaded != nil {
		cfg = *loaded
		cfg.Ignore = slices.Clone(loaded.Ignore)
	}

	flags := cmd.Flags()
	if flags.Changed("follow-symlinks") {
		cfg.FollowSymlinks = g.followSymlinks
	}
	if flags.Changed("max-depth") {
		cfg.MaxDepth = g.maxDepth
	}
	if flags.Changed("ignore") {
		cfg.Ignore = append(cfg.Ignore, g.ignore...)
	}
	if flags.Changed("format") {
		cfg.Format = ro.format
	}
	if flags.Changed("jobs") {
		cfg.Jobs = ro.jobs
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Execute loads the config, runs the root command and exits non-zero on
// failure.
func Execute() {
	// Load config
	loadedCfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	ctx = config.WithConfig(ctx, &loadedCfg)

	err = newRootCmd().ExecuteContext(ctx)
	if err == nil {
		return
	}
	if !errors.Is(err, errResolveFailed) {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Run 'nestedfolder -h' for help")
	}
	cancel()
	os.Exit(1)
}
