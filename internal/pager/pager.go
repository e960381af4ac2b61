package pager

import (
	"errors"
	"slices"
	"sort"
)

// DefaultPageSize is used when Options.PageSize is not positive.
const DefaultPageSize = 10

// Mode selects how the filtered set is windowed.
type Mode int

const (
	// ModeWindowed shows one fixed page at a time.
	ModeWindowed Mode = iota
	// ModeIncremental grows the visible slice with LoadMore.
	ModeIncremental
)

// SelectionScope selects which records ToggleSelectAll acts on.
type SelectionScope int

const (
	// ScopePage acts on the visible rows only.
	ScopePage SelectionScope = iota
	// ScopeFiltered acts on the whole filtered set.
	ScopeFiltered
)

// Options configures a Pager.
type Options[T any] struct {
	ID           func(T) string
	SearchFields func(T) []string
	Categories   []Category[T]
	Sorts        map[string]func(a, b T) int

	PageSize int
	Mode     Mode
	// Pad fills windowed pages with placeholder rows up to PageSize.
	Pad   bool
	Scope SelectionScope
	// ClearSelectionOnFilter drops the selection whenever search or filters change.
	ClearSelectionOnFilter bool
}

// Pager holds the search, filter, window and selection state over one collection.
// It is not safe for concurrent use.
type Pager[T any] struct {
	opts  Options[T]
	items []T

	search   string
	active   ActiveFilters
	sortKey  string
	sortDesc bool

	filtered []T
	// page is the window number in windowed mode and the count of loaded pages
	// in incremental mode.
	page int

	selected map[string]struct{}

	loading bool
	loadGen uint64
}

// New constructs a Pager over items. The slice is not copied and must not be
// mutated by the caller afterwards; use SetItems to replace it.
func New[T any](items []T, opts Options[T]) (*Pager[T], error) {
	if opts.ID == nil {
		return nil, errors.New("pager: ID func is required")
	}
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	p := &Pager[T]{
		opts:     opts,
		items:    items,
		active:   ActiveFilters{},
		page:     1,
		selected: map[string]struct{}{},
	}
	p.recompute()
	return p, nil
}

// Options returns the pager configuration.
func (p *Pager[T]) Options() Options[T] {
	return p.opts
}

// Categories describes the configured filter categories.
func (p *Pager[T]) Categories() []CategoryInfo {
	out := make([]CategoryInfo, 0, len(p.opts.Categories))
	for _, cat := range p.opts.Categories {
		out = append(out, CategoryInfo{Key: cat.Key, Label: cat.Label, Values: append([]string(nil), cat.Values...)})
	}
	return out
}

// SortKeys returns the configured sort keys in lexical order.
func (p *Pager[T]) SortKeys() []string {
	keys := make([]string, 0, len(p.opts.Sorts))
	for k := range p.opts.Sorts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SearchText returns the current query.
func (p *Pager[T]) SearchText() string {
	return p.search
}

// ActiveFilters returns a copy of the selected filter values.
func (p *Pager[T]) ActiveFilters() ActiveFilters {
	return p.active.Clone()
}

// Sort returns the current sort key and direction.
func (p *Pager[T]) Sort() (string, bool) {
	return p.sortKey, p.sortDesc
}

// Filtered returns a copy of the filtered set.
func (p *Pager[T]) Filtered() []T {
	return append([]T(nil), p.filtered...)
}

// SetSearchText updates the query and resets to the first page.
func (p *Pager[T]) SetSearchText(text string) {
	p.search = text
	p.queryChanged()
}

// ToggleFilter adds or removes value in category key. Unknown categories and
// undeclared values are ignored and report false.
func (p *Pager[T]) ToggleFilter(key, value string) bool {
	cat, ok := p.category(key)
	if !ok || value == "" {
		return false
	}
	if len(cat.Values) > 0 && !slices.Contains(cat.Values, value) {
		return false
	}
	values := p.active[key]
	if idx := slices.Index(values, value); idx >= 0 {
		values = slices.Delete(slices.Clone(values), idx, idx+1)
	} else {
		values = append(slices.Clone(values), value)
	}
	if len(values) == 0 {
		delete(p.active, key)
	} else {
		p.active[key] = values
	}
	p.queryChanged()
	return true
}

// ClearAllFilters empties every category and resets to the first page.
func (p *Pager[T]) ClearAllFilters() {
	p.active = ActiveFilters{}
	p.queryChanged()
}

// SetSort orders the filtered set by key. An empty key restores source order.
func (p *Pager[T]) SetSort(key string, desc bool) bool {
	if key != "" {
		if _, ok := p.opts.Sorts[key]; !ok {
			return false
		}
	}
	p.sortKey = key
	p.sortDesc = desc
	p.resetWindow()
	p.recompute()
	return true
}

// SetItems replaces the source collection, keeping query, filters and selection.
func (p *Pager[T]) SetItems(items []T) {
	p.items = items
	p.CancelLoad()
	p.recompute()
}

// TotalPages is ceil(filtered/pageSize), never below 1.
func (p *Pager[T]) TotalPages() int {
	return totalPages(len(p.filtered), p.opts.PageSize)
}

// Page returns the current 1-based page.
func (p *Pager[T]) Page() int {
	return p.page
}

// GoToPage moves to page n. Out-of-range pages are ignored.
func (p *Pager[T]) GoToPage(n int) bool {
	if p.opts.Mode != ModeWindowed {
		return false
	}
	if n < 1 || n > p.TotalPages() {
		return false
	}
	p.page = n
	return true
}

// NextPage advances one page when possible.
func (p *Pager[T]) NextPage() bool { return p.GoToPage(p.page + 1) }

// PrevPage goes back one page when possible.
func (p *Pager[T]) PrevPage() bool { return p.GoToPage(p.page - 1) }

// FirstPage jumps to page 1.
func (p *Pager[T]) FirstPage() bool { return p.GoToPage(1) }

// LastPage jumps to the last page.
func (p *Pager[T]) LastPage() bool { return p.GoToPage(p.TotalPages()) }

// Window returns the [start, end) bounds of the visible slice.
func (p *Pager[T]) Window() (start, end int) {
	n := len(p.filtered)
	if p.opts.Mode == ModeIncremental {
		return 0, min(p.page*p.opts.PageSize, n)
	}
	return windowBounds(p.page, p.opts.PageSize, n)
}

// HasMore reports whether records exist beyond the visible window.
func (p *Pager[T]) HasMore() bool {
	_, end := p.Window()
	return end < len(p.filtered)
}

func (p *Pager[T]) category(key string) (Category[T], bool) {
	for _, cat := range p.opts.Categories {
		if cat.Key == key {
			return cat, true
		}
	}
	return Category[T]{}, false
}

func (p *Pager[T]) queryChanged() {
	if p.opts.ClearSelectionOnFilter {
		p.ClearSelection()
	}
	p.resetWindow()
	p.recompute()
}

func (p *Pager[T]) resetWindow() {
	p.page = 1
	p.CancelLoad()
}

func (p *Pager[T]) recompute() {
	p.filtered = computeSorted(p.items, p.search, p.active, p.opts, p.sortKey, p.sortDesc)
	p.clamp()
}

func (p *Pager[T]) clamp() {
	pages := p.TotalPages()
	if p.page > pages {
		p.page = pages
	}
	if p.page < 1 {
		p.page = 1
	}
}

func totalPages(count, size int) int {
	if size <= 0 || count <= 0 {
		return 1
	}
	return (count + size - 1) / size
}

func windowBounds(page, size, count int) (start, end int) {
	if count <= 0 || size <= 0 {
		return 0, 0
	}
	start = (page - 1) * size
	if start < 0 {
		start = 0
	}
	if start > count {
		start = count
	}
	end = min(start+size, count)
	return start, end
}
