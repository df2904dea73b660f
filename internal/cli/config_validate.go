package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/gridview/internal/config"
)

// NewConfigValidateCmd creates the config validate command.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate [FILE]",
		Short: "Validate configuration file",
		Long: `Loads a configuration file (or the default one) and checks every value:
density, selection mode, stale selection policy, page size, overscan and columns.`,
		Example: `  # Validate the active configuration
  gridview config validate

  # Validate a specific file and print the effective grid settings
  gridview config validate ./gridview.yaml --verbose`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runConfigValidate(cmd, path, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate loads path (or the active configuration) and reports the result.
// config.Load validates as part of loading.
func runConfigValidate(cmd *cobra.Command, path string, verbose bool) error {
	cfg := config.GetGlobalConfig()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return fmt.Errorf("configuration validation failed: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Println("Configuration is valid")
	if verbose {
		g := cfg.ToGridConfig()
		cmd.Printf("  strategy:   %s\n", g.Strategy())
		cmd.Printf("  density:    %s (row height %d)\n", g.Density, g.RowHeight())
		cmd.Printf("  selectable: %s\n", g.Selectable)
		cmd.Printf("  page size:  %d\n", g.PageSize)
		cmd.Printf("  overscan:   %d\n", g.Overscan)
		cmd.Printf("  columns:    %d configured\n", len(cfg.Columns))
	}
	return nil
}
