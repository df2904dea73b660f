package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/gridview/internal/config"
	"github.com/rshade/gridview/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// rootFlags holds the persistent flags that override grid configuration.
type rootFlags struct {
	configPath string
	debug      bool
	theme      string
	density    string
	selectable string
	virtual    bool
	pagination bool
}

// NewRootCmd creates the root Cobra command for the gridview CLI.
// It loads configuration, applies flag overrides, wires up logging and tracing, and adds
// the view, render and config subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "gridview",
		Short: "Virtualized data grid for tabular files",
		Long: `gridview shows JSON, YAML, CSV and XLSX rows in a virtualized, sortable grid.

Large datasets stay responsive: only the rows in view plus a small overscan are
rendered, sorting is memoized, and selection survives reloads by row key.`,
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.InitGlobalConfig(flags.configPath)
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			if err := applyFlagOverrides(cmd, &flags, cfg); err != nil {
				return err
			}

			result := setupLogging(cmd, isInteractiveCmd(cmd))
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default: gridview.yaml in the config dir or .)")
	pf.BoolVar(&flags.debug, "debug", false, "enable debug logging")
	pf.StringVar(&flags.theme, "theme", "", "color theme: dark or light")
	pf.StringVar(&flags.density, "density", "", "row density: compact, normal or comfortable")
	pf.StringVar(&flags.selectable, "selectable", "", "row selection: none, single or multi")
	pf.BoolVar(&flags.virtual, "virtual", true, "virtualize scrolling (only the visible window is rendered)")
	pf.BoolVar(&flags.pagination, "pagination", false, "split rows into pages (ignored while --virtual is on)")

	cmd.AddCommand(NewViewCmd(), NewRenderCmd(), newConfigCmd())

	return cmd
}

const rootCmdExample = `  # Browse a CSV file interactively
  gridview view services.csv

  # Browse several files as one dataset and reload when they change
  gridview view part-1.json part-2.json --watch

  # Print page 4 of a dataset sorted by size, 25 rows per page
  gridview render inventory.yaml --virtual=false --page 4 --page-size 25 --sort size:desc

  # Print the rows visible after scrolling to row 400, as JSON
  gridview render events.xlsx --scroll 400 --height 20 --format json

  # Show the resolved configuration
  gridview config show`

// applyFlagOverrides copies explicitly set persistent flags onto cfg and revalidates it.
func applyFlagOverrides(cmd *cobra.Command, flags *rootFlags, cfg *config.Config) error {
	changed := cmd.Flags().Changed
	if changed("theme") {
		cfg.Grid.Theme = flags.theme
	}
	if changed("density") {
		cfg.Grid.Density = flags.density
	}
	if changed("selectable") {
		cfg.Grid.Selectable = flags.selectable
	}
	if changed("virtual") {
		cfg.Grid.VirtualScroll = flags.virtual
	}
	if changed("pagination") {
		cfg.Grid.Pagination = flags.pagination
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// isInteractiveCmd reports whether cmd takes over the terminal.
func isInteractiveCmd(cmd *cobra.Command) bool {
	return cmd.Name() == viewCmdName
}

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration commands"}
	cmd.AddCommand(NewConfigShowCmd(), NewConfigInitCmd(), NewConfigValidateCmd())
	return cmd
}
