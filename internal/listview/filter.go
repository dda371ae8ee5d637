package listview

import (
	"strings"

	"golang.org/x/text/cases"
)

// NoFilter is the sentinel value for an enumerated filter that passes
// every entity.
const NoFilter = "-"

// SetFilter updates one enumerated filter and resets the window to page 1.
// Filtering never touches the snapshot; it only changes the derived view.
func (c *Controller[T]) SetFilter(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if value == "" || value == NoFilter {
		delete(c.filters, key)
	} else {
		c.filters[key] = value
	}
	c.page = 1
}

// Filter returns the current value for key, or NoFilter when unset.
func (c *Controller[T]) Filter(key string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.filters[key]; ok {
		return v
	}
	return NoFilter
}

// SetSearch updates the free-text search term and resets the window to page 1.
func (c *Controller[T]) SetSearch(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.search = term
	c.page = 1
}

// Search returns the current search term.
func (c *Controller[T]) Search() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.search
}

// FilteredView derives the order-preserving subsequence of the snapshot
// passing every active filter. All filters combine with AND; the search term
// matches when ANY searchable field contains it, case-insensitively. The view
// is recomputed on every call, never cached.
func (c *Controller[T]) FilteredView() []T {
	c.mu.Lock()
	snapshot := c.snapshot
	filters := make(map[string]string, len(c.filters))
	for k, v := range c.filters {
		filters[k] = v
	}
	term := c.search
	c.mu.Unlock()

	if c.serverPaginated() {
		// Server already applied the filters; the page is the view.
		return snapshot
	}
	if len(filters) == 0 && strings.TrimSpace(term) == "" {
		return snapshot
	}

	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(term))

	view := make([]T, 0, len(snapshot))
	for _, item := range snapshot {
		if !c.matchFilters(item, filters) {
			continue
		}
		if needle != "" && !c.matchSearch(item, fold, needle) {
			continue
		}
		view = append(view, item)
	}
	return view
}

func (c *Controller[T]) matchFilters(item T, filters map[string]string) bool {
	for key, want := range filters {
		accessor, ok := c.cfg.Fields[key]
		if !ok {
			continue
		}
		if accessor(item) != want {
			return false
		}
	}
	return true
}

func (c *Controller[T]) matchSearch(item T, fold cases.Caser, needle string) bool {
	if c.cfg.SearchFields == nil {
		return false
	}
	for _, field := range c.cfg.SearchFields(item) {
		if strings.Contains(fold.String(field), needle) {
			return true
		}
	}
	return false
}
