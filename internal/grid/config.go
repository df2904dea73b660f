package grid

// Config is the render configuration of a grid.
type Config struct {
	Theme        string
	Density      Density
	Striped      bool
	Bordered     bool
	Hoverable    bool
	StickyHeader bool

	Selectable SelectionMode
	Sortable   bool

	Pagination    bool
	PageSize      int
	VirtualScroll bool

	// Overscan is the number of extra rows windowed above and below the viewport.
	Overscan int
	// ViewportHeight is the measured viewport height. Zero means not measured yet.
	ViewportHeight int
	// StaleSelection decides whether selected keys survive a dataset replacement.
	StaleSelection StalePolicy
}

// DefaultConfig returns the configuration of a freshly mounted grid.
func DefaultConfig() Config {
	return Config{
		Theme:          "dark",
		Density:        DensityNormal,
		Striped:        true,
		Hoverable:      true,
		StickyHeader:   true,
		Selectable:     SelectNone,
		Sortable:       true,
		PageSize:       DefaultPageSize,
		VirtualScroll:  true,
		Overscan:       DefaultOverscan,
		StaleSelection: StaleKeep,
	}
}

// Strategy is how the grid picks the subset of rows to materialize.
type Strategy int

// Subset strategies.
const (
	// StrategyAll materializes every row.
	StrategyAll Strategy = iota
	// StrategyWindowed materializes the scroll window plus overscan.
	StrategyWindowed
	// StrategyPaged materializes the current page.
	StrategyPaged
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyWindowed:
		return "windowed"
	case StrategyPaged:
		return "paged"
	default:
		return "all"
	}
}

// Strategy returns the subset strategy. Virtual scrolling wins over pagination.
func (c Config) Strategy() Strategy {
	switch {
	case c.VirtualScroll:
		return StrategyWindowed
	case c.Pagination:
		return StrategyPaged
	default:
		return StrategyAll
	}
}

// RowHeight returns the fixed row height of the configured density.
func (c Config) RowHeight() int {
	return c.Density.RowHeight()
}

// normalized fills zero values with defaults.
func (c Config) normalized() Config {
	if c.Density == "" {
		c.Density = DensityNormal
	}
	if c.Selectable == "" {
		c.Selectable = SelectNone
	}
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	if c.Overscan < 0 {
		c.Overscan = 0
	}
	if c.StaleSelection == "" {
		c.StaleSelection = StaleKeep
	}
	return c
}
