package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestPageState_LastPage tests the 97 rows / 25 per page scenario.
func TestPageState_LastPage(t *testing.T) {
	p := PageState{Current: 4, Size: 25}.Clamp(97)
	slice := p.Slice(97)
	meta := p.Meta(97)

	assert.Equal(t, 4, TotalPages(97, 25))
	assert.Equal(t, 75, slice.Start)
	assert.Equal(t, 97, slice.End)
	assert.Equal(t, 76, slice.FirstItem)
	assert.Equal(t, 97, slice.LastItem)
	assert.Equal(t, PageMeta{
		CurrentPage: 4,
		PageSize:    25,
		TotalPages:  4,
		TotalItems:  97,
		HasPrevious: true,
		HasNext:     false,
		FirstItem:   76,
		LastItem:    97,
	}, meta)
}

// TestPageState_Clamp tests clamping into the valid page range.
func TestPageState_Clamp(t *testing.T) {
	tests := []struct {
		name  string
		state PageState
		total int
		want  PageState
	}{
		{name: "in range", state: PageState{Current: 2, Size: 10}, total: 35, want: PageState{Current: 2, Size: 10}},
		{name: "past the end", state: PageState{Current: 9, Size: 10}, total: 35, want: PageState{Current: 4, Size: 10}},
		{name: "below one", state: PageState{Current: 0, Size: 10}, total: 35, want: PageState{Current: 1, Size: 10}},
		{name: "empty dataset", state: PageState{Current: 3, Size: 10}, total: 0, want: PageState{Current: 1, Size: 10}},
		{name: "zero size uses default", state: PageState{Current: 2, Size: 0}, total: 100, want: PageState{Current: 2, Size: DefaultPageSize}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.Clamp(tt.total))
		})
	}
}

// TestPageState_Slice tests page slices.
func TestPageState_Slice(t *testing.T) {
	assert.Equal(t, PageSlice{Start: 0, End: 25, FirstItem: 1, LastItem: 25}, PageState{Current: 1, Size: 25}.Slice(97))
	assert.Equal(t, PageSlice{}, PageState{Current: 1, Size: 25}.Slice(0))
}

// TestTotalPages tests page counts.
func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 25))
	assert.Equal(t, 1, TotalPages(25, 25))
	assert.Equal(t, 2, TotalPages(26, 25))
	assert.Equal(t, 0, TotalPages(10, 0))
}
