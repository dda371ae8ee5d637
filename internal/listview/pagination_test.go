package listview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageNumbersWindow(t *testing.T) {
	cases := []struct {
		name       string
		current    int
		totalPages int
		want       []int
	}{
		{"centered mid-range", 7, 10, []int{5, 6, 7, 8, 9}},
		{"fewer pages than window", 1, 3, []int{1, 2, 3}},
		{"at the start", 1, 10, []int{1, 2, 3, 4, 5}},
		{"near the start", 2, 10, []int{1, 2, 3, 4, 5}},
		{"at the end window slides back", 10, 10, []int{6, 7, 8, 9, 10}},
		{"near the end", 9, 10, []int{6, 7, 8, 9, 10}},
		{"single page", 1, 1, []int{1}},
		{"no pages", 1, 0, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PageNumbers(tc.current, tc.totalPages, 5))
		})
	}
}

func TestPageNumbersLengthInvariant(t *testing.T) {
	const maxVisible = 5
	for totalPages := 0; totalPages <= 12; totalPages++ {
		for current := 1; current <= totalPages+2; current++ {
			got := PageNumbers(current, totalPages, maxVisible)
			want := totalPages
			if want > maxVisible {
				want = maxVisible
			}
			assert.Len(t, got, want, "current=%d totalPages=%d", current, totalPages)
			if totalPages == 0 {
				assert.Empty(t, got)
			}
		}
	}
}
