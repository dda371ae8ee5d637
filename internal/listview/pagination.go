package listview

// SetPage moves the window to a 1-based page number. Out-of-range values are
// clamped rather than rejected; navigation affordances additionally disable
// Previous/Next at the boundaries. Before the page count is known the
// requested number is retained so a server-side load can fetch it, but Page
// still reports the clamped value.
func (c *Controller[T]) SetPage(page int) {
	total := c.TotalPages()
	c.mu.Lock()
	defer c.mu.Unlock()
	if page < 1 {
		page = 1
	}
	if total >= 1 && page > total {
		page = total
	}
	c.page = page
}

// Page returns the current 1-based page number, clamped to
// [1, max(1, totalPages)]. An empty or unloaded view reports page 1.
func (c *Controller[T]) Page() int {
	total := c.TotalPages()
	c.mu.Lock()
	defer c.mu.Unlock()
	return clampPage(c.page, total)
}

// clampPage confines page to [1, max(1, total)].
func clampPage(page, total int) int {
	if total < 1 {
		total = 1
	}
	if page > total {
		return total
	}
	if page < 1 {
		return 1
	}
	return page
}

// PageSize returns the configured window size.
func (c *Controller[T]) PageSize() int {
	return c.cfg.PageSize
}

// Total returns the number of entities in the filtered view (or, for
// server-side pagination, the total reported by the backend).
func (c *Controller[T]) Total() int {
	if c.serverPaginated() {
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.total
	}
	return len(c.FilteredView())
}

// TotalPages derives ceil(total / pageSize).
func (c *Controller[T]) TotalPages() int {
	if c.serverPaginated() {
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.lastPage
	}
	n := len(c.FilteredView())
	if n == 0 {
		return 0
	}
	return (n + c.cfg.PageSize - 1) / c.cfg.PageSize
}

// VisiblePage returns the contiguous slice of the filtered view covered by
// the current window. With server-side pagination the snapshot already is the
// page and is returned as-is.
func (c *Controller[T]) VisiblePage() []T {
	view := c.FilteredView()
	if c.serverPaginated() {
		return view
	}
	c.mu.Lock()
	page := c.page
	size := c.cfg.PageSize
	c.mu.Unlock()

	totalPages := (len(view) + size - 1) / size
	start := (clampPage(page, totalPages) - 1) * size
	if start >= len(view) {
		return nil
	}
	end := start + size
	if end > len(view) {
		end = len(view)
	}
	return view[start:end]
}

// PageNumbers returns the window of page numbers to render, centred on the
// current page, up to maxVisible wide. Empty when there are no pages.
func (c *Controller[T]) PageNumbers(maxVisible int) []int {
	return PageNumbers(c.Page(), c.TotalPages(), maxVisible)
}

// PageNumbers centres a window of up to maxVisible page numbers around
// current. When fewer than maxVisible pages remain at the tail the window
// slides back so it stays full whenever totalPages allows.
func PageNumbers(current, totalPages, maxVisible int) []int {
	if totalPages <= 0 {
		return nil
	}
	if maxVisible <= 0 {
		maxVisible = 5
	}

	start := current - maxVisible/2
	if start < 1 {
		start = 1
	}
	end := start + maxVisible - 1
	if end > totalPages {
		end = totalPages
	}
	if end-start+1 < maxVisible {
		start = end - maxVisible + 1
		if start < 1 {
			start = 1
		}
	}

	nums := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		nums = append(nums, i)
	}
	return nums
}
