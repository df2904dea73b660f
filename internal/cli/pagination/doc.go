// Package pagination provides the paging, scrolling and sorting flags shared by CLI
// commands that render a grid snapshot.
//
// This package contains:
//   - Params: CLI flag parsing and validation
//   - Meta: structured metadata describing which part of the dataset a snapshot shows
//   - Sorter: sort expression parsing with validation against the sortable columns
//
// Parsed values are turned into grid events so snapshots go through the same reducer
// as the interactive view.
package pagination
