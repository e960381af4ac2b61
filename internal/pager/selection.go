package pager

import "sort"

// ToggleRowSelection flips the selection of id.
func (p *Pager[T]) ToggleRowSelection(id string) {
	if _, ok := p.selected[id]; ok {
		delete(p.selected, id)
		return
	}
	p.selected[id] = struct{}{}
}

// ToggleSelectAll selects every record of the scope set, or deselects them all
// when they are already selected. Records outside the scope set are untouched.
func (p *Pager[T]) ToggleSelectAll() {
	ids := p.scopeIDs()
	if len(ids) == 0 {
		return
	}
	if p.allSelected(ids) {
		for _, id := range ids {
			delete(p.selected, id)
		}
		return
	}
	for _, id := range ids {
		p.selected[id] = struct{}{}
	}
}

// ClearSelection empties the selection set.
func (p *Pager[T]) ClearSelection() {
	p.selected = map[string]struct{}{}
}

// IsSelected reports whether id is selected.
func (p *Pager[T]) IsSelected(id string) bool {
	_, ok := p.selected[id]
	return ok
}

// Selected returns the selected ids in lexical order.
func (p *Pager[T]) Selected() []string {
	ids := make([]string, 0, len(p.selected))
	for id := range p.selected {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SelectedItems returns the selected records that are still in the source
// collection, in source order.
func (p *Pager[T]) SelectedItems() []T {
	var out []T
	for _, item := range p.items {
		if _, ok := p.selected[p.opts.ID(item)]; ok {
			out = append(out, item)
		}
	}
	return out
}

func (p *Pager[T]) scopeIDs() []string {
	set := p.filtered
	if p.opts.Scope == ScopePage {
		start, end := p.Window()
		set = p.filtered[start:end]
	}
	ids := make([]string, len(set))
	for i, item := range set {
		ids[i] = p.opts.ID(item)
	}
	return ids
}

func (p *Pager[T]) allSelected(ids []string) bool {
	for _, id := range ids {
		if _, ok := p.selected[id]; !ok {
			return false
		}
	}
	return true
}
