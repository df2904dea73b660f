package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/gridview/internal/config"
)

// NewConfigInitCmd creates the config init command that writes a default gridview.yaml.
func NewConfigInitCmd() *cobra.Command {
	var (
		force bool
		path  string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates gridview.yaml with default values in the configuration directory
($GRIDVIEW_HOME, $XDG_CONFIG_HOME/gridview or ~/.config/gridview), or at --path.`,
		Example: `  # Create the default configuration file
  gridview config init

  # Create a project-local configuration, overwriting an existing one
  gridview config init --path ./gridview.yaml --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd, path, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().StringVar(&path, "path", "", "write the configuration to this file")

	return cmd
}

func runConfigInit(cmd *cobra.Command, path string, force bool) error {
	if path == "" {
		var err error
		if path, err = config.DefaultConfigPath(); err != nil {
			return err
		}
	}

	if !force {
		_, err := os.Stat(path)
		if err == nil {
			return errors.New("configuration file already exists, use --force to overwrite")
		}
		if !os.IsNotExist(err) {
			return fmt.Errorf("cannot access config path %s: %w", path, err)
		}
	}

	if err := config.New().Save(path); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	logger.Debug().Str("path", path).Msg("configuration initialized")
	cmd.Printf("Configuration initialized at %s\n", path)
	return nil
}
