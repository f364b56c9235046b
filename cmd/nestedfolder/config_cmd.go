package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/nestedfolder/internal/config"
	"github.com/raphi011/nestedfolder/internal/output"
	"github.com/raphi011/nestedfolder/internal/ui/styles"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage configuration",
		Aliases: []string{"cfg"},
		Long: `Manage nestedfolder configuration.

Config file: ~/.config/nestedfolder/config.toml
Override the location with NESTEDFOLDER_CONFIG.`,
		Example: `  nestedfolder config init     # Create default config
  nestedfolder config show     # Show effective config`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		force  bool
		stdout bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default config file",
		Args:  cobra.NoArgs,
		Example: `  nestedfolder config init      # Create config
  nestedfolder config init -f   # Overwrite existing config
  nestedfolder config init -s   # Print config to stdout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			if stdout {
				out.Print(config.DefaultConfig())
				return nil
			}

			path, err := config.Path()
			if err != nil {
				return fmt.Errorf("locate config: %w", err)
			}
			if err := config.Init(path, force); err != nil {
				return err
			}

			out.Printf("Created config file: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config")
	cmd.Flags().BoolVarP(&stdout, "stdout", "s", false, "Print config to stdout")

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Args:  cobra.NoArgs,
		Long: `Show effective configuration.

Values come from the config file with global flags such as --max-depth
and --ignore applied on top.`,
		Example: `  nestedfolder config show          # Show config
  nestedfolder config show --json   # Output as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			out := output.FromContext(ctx)

			if jsonOutput {
				enc := json.NewEncoder(out.Writer())
				enc.SetIndent("", "  ")
				return enc.Encode(cfg)
			}

			out = output.New(colorWriter(out.Writer()))

			source := cfg.Source
			if source == "" {
				source = "(defaults)"
			}
			out.Printf("%s %s\n", styles.PrimaryStyle.Render("Config file:"), source)
			out.Println()

			out.Printf("follow_symlinks: %v\n", cfg.FollowSymlinks)
			out.Printf("max_depth: %d\n", cfg.MaxDepth)
			if len(cfg.Ignore) > 0 {
				out.Printf("ignore: %s\n", strings.Join(cfg.Ignore, ", "))
			} else {
				out.Printf("ignore: (none)\n")
			}
			out.Printf("format: %s\n", cfg.Format)
			out.Printf("jobs: %d\n", cfg.Jobs)

			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
