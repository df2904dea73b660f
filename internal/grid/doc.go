// Package grid provides the table model and rendering engine behind gridview.
//
// The engine turns an already-loaded, already-filtered slice of rows into bounded
// render frames. Key features:
//   - Column descriptors with value accessors and cell renderers
//   - Stable sorting with nulls ordered last in both directions
//   - Selection tracking in none, single and multi modes with select-all over the full dataset
//   - Viewport windowing with overscan, O(1) per scroll event
//   - Page slicing as the non-virtual alternative to windowing
//   - A loading/error/empty/ready state machine driven only by its inputs
//
// All state lives in a Grid value and changes only through Dispatch, one event at a time.
// Sorting is memoized on the data version and sort state, so high-frequency scroll
// events never re-sort or re-derive selection.
package grid
