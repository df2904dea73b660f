package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/gridview/internal/config"
)

// NewConfigShowCmd creates the config show command that prints the resolved configuration.
func NewConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration as YAML",
		Long: `Prints the configuration after the config file, GRIDVIEW_* environment variables
and command-line flags have been applied.`,
		Example: `  # Show the active configuration
  gridview config show

  # Show the effect of flags and environment overrides
  GRIDVIEW_GRID_PAGE_SIZE=50 gridview config show --density compact`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return config.GetGlobalConfig().Encode(cmd.OutOrStdout())
		},
	}
}
