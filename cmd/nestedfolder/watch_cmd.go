package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/raphi011/nestedfolder/internal/config"
	"github.com/raphi011/nestedfolder/internal/output"
	"github.com/raphi011/nestedfolder/internal/resolve"
	"github.com/raphi011/nestedfolder/internal/watch"
)

const defaultDebounce = 200 * time.Millisecond

func newWatchCmd() *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch <path>",
		Short: "Re-resolve a path whenever its tree changes",
		Args:  cobra.ExactArgs(1),
		Long: `Resolve a path, then keep watching the directories below it and print
the effective directory again each time it changes.

Only entries being created, removed or renamed trigger a re-resolve; file
content changes never affect the result. Runs until interrupted.`,
		Example: `  nestedfolder watch ~/Downloads/incoming
  nestedfolder watch --debounce 1s ./extract`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveFilterDirs
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			out := output.FromContext(ctx)

			if debounce <= 0 {
				return fmt.Errorf("invalid --debounce %s: must be positive", debounce)
			}

			failures := newFailureReporter(cmd.ErrOrStderr())
			r := resolve.New(cfg.ResolveOptions())
			return watch.Follow(ctx, r, args[0], debounce, func(res resolve.Result) {
				if res.Err != nil {
					failures.report(res)
					return
				}
				out.Path(res.Path)
			})
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", defaultDebounce, "Quiet period before re-resolving after a change")

	return cmd
}
