package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/gridview/internal/config"
	"github.com/rshade/gridview/internal/logging"
	"github.com/rshade/gridview/internal/source"
	"github.com/rshade/gridview/internal/tui"
)

const viewCmdName = "view"

// ErrNotInteractive is returned when view runs without a terminal.
var ErrNotInteractive = errors.New("view needs an interactive terminal; use 'gridview render' instead")

type viewParams struct {
	source sourceFlags
	watch  bool
}

// NewViewCmd creates the "view" command that opens files in the interactive grid.
func NewViewCmd() *cobra.Command {
	var params viewParams

	cmd := &cobra.Command{
		Use:   viewCmdName + " FILE...",
		Short: "Browse files in the interactive grid",
		Long: `Opens one or more JSON, YAML, CSV or XLSX files as a single dataset in a
virtualized terminal grid.

Keys:
  - Navigation with up/down, pgup/pgdown, home/end and the mouse wheel
  - Sort by pressing the column number (1-9); press again to reverse
  - Select with space, select all with 'a', open a row with enter
  - Expand row details with 'e' (when not virtualized)
  - Change pages with n/p and page size with +/-
  - Reload with 'r' and quit with 'q' or Ctrl+C`,
		Example: `  # Browse a CSV file
  gridview view services.csv

  # Reload whenever the file changes on disk
  gridview view services.csv --watch

  # Use pages of 50 rows with multi-selection
  gridview view services.csv --virtual=false --pagination --selectable multi`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeView(cmd, args, params)
		},
	}

	params.source.register(cmd)
	cmd.Flags().BoolVar(&params.watch, "watch", false, "reload when a file changes")

	return cmd
}

// executeView loads the files through the TUI model and runs the Bubble Tea program.
func executeView(cmd *cobra.Command, paths []string, params viewParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	cfg := config.GetGlobalConfig()

	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return ErrNotInteractive
	}

	opts, err := params.source.options(cmd, cfg)
	if err != nil {
		return err
	}

	var changes <-chan source.Change
	if params.watch || cfg.Source.Watch {
		ch, stop, watchErr := source.Watch(paths, cfg.Source.Debounce)
		if watchErr != nil {
			return fmt.Errorf("watching files: %w", watchErr)
		}
		defer stop()
		changes = ch
	}

	m := tui.NewGridModel(ctx, tui.ModelOptions{
		Config:  cfg,
		Load:    fileLoader(paths, opts),
		Changes: changes,
		Logger:  log,
	})
	defer m.Close()

	log.Debug().Strs("paths", paths).Bool("watch", changes != nil).Msg("starting interactive grid")
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run interactive TUI: %w", err)
	}
	return nil
}

// fileLoader returns a loader that reads paths as one dataset.
func fileLoader(paths []string, opts source.Options) tui.Loader {
	return func(ctx context.Context) (*source.Dataset, error) {
		ds, err := source.LoadAll(ctx, paths, opts)
		if err != nil {
			return nil, err
		}
		return &ds, nil
	}
}
