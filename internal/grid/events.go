package grid

// Event is an input to Grid.Dispatch.
type Event interface {
	gridEvent()
}

// DataReplaced delivers a new dataset from the data source.
type DataReplaced[T any] struct {
	Rows []T
}

// ColumnsReplaced swaps the column set, for example after a reload brought new fields.
// A sort on a column that is gone or no longer sortable is cleared.
type ColumnsReplaced[T any] struct {
	Columns []Column[T]
}

// StatusChanged delivers the data source's loading flag and error message.
type StatusChanged struct {
	Loading bool
	Err     string
}

// Scrolled reports a new scroll offset of the viewport.
type Scrolled struct {
	Offset int
}

// Resized reports a newly measured viewport height. Zero means unmeasured.
type Resized struct {
	Height int
}

// SortClicked reports a click on the header of the column with Field as key.
type SortClicked struct {
	Field string
}

// RowClicked reports a click on the row at Index in the sorted dataset.
type RowClicked struct {
	Index int
}

// RowDoubleClicked reports a double click on the row at Index in the sorted dataset.
type RowDoubleClicked struct {
	Index int
}

// SelectAllToggled reports a click on the select-all control.
type SelectAllToggled struct{}

// ExpandToggled reports a click on the expander of the row at Index.
type ExpandToggled struct {
	Index int
}

// PageChanged requests a page (1-based).
type PageChanged struct {
	Page int
}

// PageSizeChanged requests a new page size.
type PageSizeChanged struct {
	Size int
}

// RetryRequested reports a click on the error state's retry control.
type RetryRequested struct{}

func (DataReplaced[T]) gridEvent()    {}
func (ColumnsReplaced[T]) gridEvent() {}
func (StatusChanged) gridEvent()      {}
func (Scrolled) gridEvent()           {}
func (Resized) gridEvent()            {}
func (SortClicked) gridEvent()        {}
func (RowClicked) gridEvent()         {}
func (RowDoubleClicked) gridEvent()   {}
func (SelectAllToggled) gridEvent()   {}
func (ExpandToggled) gridEvent()      {}
func (PageChanged) gridEvent()        {}
func (PageSizeChanged) gridEvent()    {}
func (RetryRequested) gridEvent()     {}

// Callbacks are invoked synchronously from Dispatch. Any of them may be nil.
type Callbacks[T any] struct {
	OnSort            func(field string, dir Direction)
	OnSelectionChange func(rows []T)
	OnRowClick        func(row T, index int)
	OnRowDoubleClick  func(row T, index int)
	OnPageChange      func(page int)
	OnPageSizeChange  func(size int)
	OnRetry           func()
}
