package cli

import (
	"fmt"
	"maps"

	"github.com/spf13/cobra"

	"github.com/rshade/gridview/internal/config"
	"github.com/rshade/gridview/internal/source"
)

// sourceFlags holds the data loading flags shared by view and render.
type sourceFlags struct {
	generateIDs bool
	noInfer     bool
	kinds       []string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.generateIDs, "ids", false, "assign a ULID to rows without an id field")
	cmd.Flags().BoolVar(&f.noInfer, "no-infer", false, "keep untyped cells as strings instead of inferring numbers and dates")
	cmd.Flags().StringArrayVar(&f.kinds, "kind", nil,
		"column kind as column=kind (string, number, date, version, bool); repeatable")
}

// options merges the flags over the configured loader options.
func (f *sourceFlags) options(cmd *cobra.Command, cfg *config.Config) (source.Options, error) {
	opts := cfg.ToSourceOptions()
	if cmd.Flags().Changed("ids") {
		opts.GenerateIDs = f.generateIDs
	}
	if f.noInfer {
		opts.Infer = false
	}
	if len(f.kinds) > 0 {
		kinds, err := source.ParseKinds(f.kinds)
		if err != nil {
			return source.Options{}, fmt.Errorf("parsing --kind: %w", err)
		}
		if opts.Kinds == nil {
			opts.Kinds = make(map[string]source.Kind, len(kinds))
		}
		maps.Copy(opts.Kinds, kinds)
	}
	return opts, nil
}
