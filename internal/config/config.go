// Package config loads gridview configuration with viper.
//
// Configuration is read from gridview.yaml in the config directory or the working
// directory, overridden by GRIDVIEW_* environment variables (for example
// GRIDVIEW_GRID_DENSITY), and finally by command-line flags.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/rshade/gridview/internal/grid"
	"github.com/rshade/gridview/internal/source"
)

// Config file name and environment prefix.
const (
	FileName  = "gridview"
	EnvPrefix = "GRIDVIEW"
)

// Validation errors.
var (
	ErrInvalidDensity    = errors.New("invalid density")
	ErrInvalidSelectable = errors.New("invalid selection mode")
	ErrInvalidStale      = errors.New("invalid stale selection policy")
	ErrInvalidPageSize   = errors.New("page size must be positive")
	ErrInvalidOverscan   = errors.New("overscan must not be negative")
	ErrInvalidColumn     = errors.New("invalid column")
)

// Config is the resolved gridview configuration.
type Config struct {
	Grid    GridConfig     `mapstructure:"grid"    yaml:"grid"`
	Columns []ColumnConfig `mapstructure:"columns" yaml:"columns,omitempty"`
	Source  SourceConfig   `mapstructure:"source"  yaml:"source"`
	Logging LoggingConfig  `mapstructure:"logging" yaml:"logging"`
}

// GridConfig holds the render configuration.
type GridConfig struct {
	Theme          string `mapstructure:"theme"           yaml:"theme"`
	Density        string `mapstructure:"density"         yaml:"density"`
	Striped        bool   `mapstructure:"striped"         yaml:"striped"`
	Bordered       bool   `mapstructure:"bordered"        yaml:"bordered"`
	Hoverable      bool   `mapstructure:"hoverable"       yaml:"hoverable"`
	StickyHeader   bool   `mapstructure:"sticky_header"   yaml:"sticky_header"`
	Selectable     string `mapstructure:"selectable"      yaml:"selectable"`
	Sortable       bool   `mapstructure:"sortable"        yaml:"sortable"`
	Pagination     bool   `mapstructure:"pagination"      yaml:"pagination"`
	PageSize       int    `mapstructure:"page_size"       yaml:"page_size"`
	VirtualScroll  bool   `mapstructure:"virtual_scroll"  yaml:"virtual_scroll"`
	Overscan       int    `mapstructure:"overscan"        yaml:"overscan"`
	StaleSelection string `mapstructure:"stale_selection" yaml:"stale_selection"`
	// Locale enables locale-aware string sorting when set, for example "en" or "de".
	Locale string `mapstructure:"locale" yaml:"locale,omitempty"`
}

// ColumnConfig overrides how one field is presented. Fields without an entry are shown
// with defaults after the configured columns.
type ColumnConfig struct {
	Key      string `mapstructure:"key"       yaml:"key"`
	Label    string `mapstructure:"label"     yaml:"label,omitempty"`
	Kind     string `mapstructure:"kind"      yaml:"kind,omitempty"`
	Sortable *bool  `mapstructure:"sortable"  yaml:"sortable,omitempty"`
	Width    int    `mapstructure:"width"     yaml:"width,omitempty"`
	MinWidth int    `mapstructure:"min_width" yaml:"min_width,omitempty"`
	MaxWidth int    `mapstructure:"max_width" yaml:"max_width,omitempty"`
	Align    string `mapstructure:"align"     yaml:"align,omitempty"`
	Hidden   bool   `mapstructure:"hidden"    yaml:"hidden,omitempty"`
}

// SourceConfig controls how data files are read.
type SourceConfig struct {
	GenerateIDs bool          `mapstructure:"generate_ids" yaml:"generate_ids"`
	Infer       bool          `mapstructure:"infer"        yaml:"infer"`
	Watch       bool          `mapstructure:"watch"        yaml:"watch"`
	Debounce    time.Duration `mapstructure:"debounce"     yaml:"debounce"`
}

// New returns the built-in defaults.
func New() *Config {
	d := grid.DefaultConfig()
	return &Config{
		Grid: GridConfig{
			Theme:          d.Theme,
			Density:        string(d.Density),
			Striped:        d.Striped,
			Bordered:       d.Bordered,
			Hoverable:      d.Hoverable,
			StickyHeader:   d.StickyHeader,
			Selectable:     string(d.Selectable),
			Sortable:       d.Sortable,
			Pagination:     d.Pagination,
			PageSize:       d.PageSize,
			VirtualScroll:  d.VirtualScroll,
			Overscan:       d.Overscan,
			StaleSelection: string(d.StaleSelection),
		},
		Source: SourceConfig{
			Infer:    true,
			Debounce: source.DefaultDebounce,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads configuration. An explicit path must exist; otherwise gridview.yaml is
// looked up in the config directory and the working directory, and a missing file
// leaves the defaults in place.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, New())

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		if dir, err := GetConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("grid.theme", d.Grid.Theme)
	v.SetDefault("grid.density", d.Grid.Density)
	v.SetDefault("grid.striped", d.Grid.Striped)
	v.SetDefault("grid.bordered", d.Grid.Bordered)
	v.SetDefault("grid.hoverable", d.Grid.Hoverable)
	v.SetDefault("grid.sticky_header", d.Grid.StickyHeader)
	v.SetDefault("grid.selectable", d.Grid.Selectable)
	v.SetDefault("grid.sortable", d.Grid.Sortable)
	v.SetDefault("grid.pagination", d.Grid.Pagination)
	v.SetDefault("grid.page_size", d.Grid.PageSize)
	v.SetDefault("grid.virtual_scroll", d.Grid.VirtualScroll)
	v.SetDefault("grid.overscan", d.Grid.Overscan)
	v.SetDefault("grid.stale_selection", d.Grid.StaleSelection)
	v.SetDefault("grid.locale", d.Grid.Locale)
	v.SetDefault("source.generate_ids", d.Source.GenerateIDs)
	v.SetDefault("source.infer", d.Source.Infer)
	v.SetDefault("source.watch", d.Source.Watch)
	v.SetDefault("source.debounce", d.Source.Debounce)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.file", d.Logging.File)
}

// Validate checks enumerated values and column entries.
func (c *Config) Validate() error {
	g := c.Grid
	if !slices.Contains([]grid.Density{grid.DensityCompact, grid.DensityNormal, grid.DensityComfortable}, grid.Density(g.Density)) {
		return fmt.Errorf("%w: %q", ErrInvalidDensity, g.Density)
	}
	if !slices.Contains([]grid.SelectionMode{grid.SelectNone, grid.SelectSingle, grid.SelectMulti}, grid.SelectionMode(g.Selectable)) {
		return fmt.Errorf("%w: %q", ErrInvalidSelectable, g.Selectable)
	}
	if !slices.Contains([]grid.StalePolicy{grid.StaleKeep, grid.StalePrune}, grid.StalePolicy(g.StaleSelection)) {
		return fmt.Errorf("%w: %q", ErrInvalidStale, g.StaleSelection)
	}
	if g.PageSize <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPageSize, g.PageSize)
	}
	if g.Overscan < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidOverscan, g.Overscan)
	}

	seen := make(map[string]struct{}, len(c.Columns))
	for i, col := range c.Columns {
		if col.Key == "" {
			return fmt.Errorf("%w: entry %d has no key", ErrInvalidColumn, i+1)
		}
		if _, dup := seen[col.Key]; dup {
			return fmt.Errorf("%w: duplicate key %q", ErrInvalidColumn, col.Key)
		}
		seen[col.Key] = struct{}{}
		if col.Kind != "" {
			if _, err := source.ParseKind(col.Kind); err != nil {
				return fmt.Errorf("%w: %q: %w", ErrInvalidColumn, col.Key, err)
			}
		}
		switch grid.Align(col.Align) {
		case "", grid.AlignLeft, grid.AlignCenter, grid.AlignRight:
		default:
			return fmt.Errorf("%w: %q: unknown alignment %q", ErrInvalidColumn, col.Key, col.Align)
		}
	}
	return nil
}

// ToGridConfig converts the grid section to the engine configuration.
func (c *Config) ToGridConfig() grid.Config {
	g := c.Grid
	return grid.Config{
		Theme:          g.Theme,
		Density:        grid.Density(g.Density),
		Striped:        g.Striped,
		Bordered:       g.Bordered,
		Hoverable:      g.Hoverable,
		StickyHeader:   g.StickyHeader,
		Selectable:     grid.SelectionMode(g.Selectable),
		Sortable:       g.Sortable,
		Pagination:     g.Pagination,
		PageSize:       g.PageSize,
		VirtualScroll:  g.VirtualScroll,
		Overscan:       g.Overscan,
		StaleSelection: grid.StalePolicy(g.StaleSelection),
	}
}

// ToSourceOptions converts the source section and column kinds to loader options.
func (c *Config) ToSourceOptions() source.Options {
	opts := source.Options{
		GenerateIDs: c.Source.GenerateIDs,
		Infer:       c.Source.Infer,
	}
	for _, col := range c.Columns {
		if col.Kind == "" {
			continue
		}
		kind, err := source.ParseKind(col.Kind)
		if err != nil {
			continue
		}
		if opts.Kinds == nil {
			opts.Kinds = make(map[string]source.Kind)
		}
		opts.Kinds[col.Key] = kind
	}
	return opts
}

// Column returns the configuration for key, if any.
func (c *Config) Column(key string) (ColumnConfig, bool) {
	for _, col := range c.Columns {
		if col.Key == key {
			return col, true
		}
	}
	return ColumnConfig{}, false
}
