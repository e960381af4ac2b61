package pager

// Row is one displayed row. Placeholder rows carry the zero Item.
type Row[T any] struct {
	Item        T
	ID          string
	Selected    bool
	Placeholder bool
}

// View is the render output consumed by a display layer.
type View[T any] struct {
	Rows []Row[T]

	Page       int
	TotalPages int
	PageSize   int
	StartIndex int
	EndIndex   int

	FilteredCount int
	TotalCount    int

	HasMore bool
	Loading bool
	Empty   bool
	CanPrev bool
	CanNext bool

	SelectedCount int
	// AllSelected reports whether every record of the select-all scope is selected.
	AllSelected bool
}

// View renders the current window.
func (p *Pager[T]) View() View[T] {
	start, end := p.Window()
	n := len(p.filtered)
	v := View[T]{
		Page:          p.page,
		TotalPages:    p.TotalPages(),
		PageSize:      p.opts.PageSize,
		StartIndex:    start,
		EndIndex:      end,
		FilteredCount: n,
		TotalCount:    len(p.items),
		HasMore:       end < n,
		Loading:       p.loading,
		Empty:         n == 0,
		SelectedCount: len(p.selected),
	}
	if p.opts.Mode == ModeWindowed {
		v.CanPrev = n > 0 && p.page > 1
		v.CanNext = n > 0 && p.page < v.TotalPages
	}
	ids := p.scopeIDs()
	v.AllSelected = len(ids) > 0 && p.allSelected(ids)

	rows := make([]Row[T], 0, max(end-start, p.opts.PageSize))
	for _, item := range p.filtered[start:end] {
		id := p.opts.ID(item)
		_, sel := p.selected[id]
		rows = append(rows, Row[T]{Item: item, ID: id, Selected: sel})
	}
	if p.opts.Pad && p.opts.Mode == ModeWindowed {
		for len(rows) < p.opts.PageSize {
			rows = append(rows, Row[T]{Placeholder: true})
		}
	}
	v.Rows = rows
	return v
}
