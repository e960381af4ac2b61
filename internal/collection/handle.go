// Package collection binds each creator collection to a filtered pager.
package collection

import (
	"context"

	"github.com/verte-zerg/creatordesk/internal/pager"
	"github.com/verte-zerg/creatordesk/internal/store"
	"github.com/verte-zerg/creatordesk/internal/suggest"
)

// Column describes one table column.
type Column struct {
	Title string
	Width int
	Right bool
}

// Spec describes how one record type is searched, filtered, sorted and shown.
type Spec[T any] struct {
	Name    string
	Title   string
	Group   string
	Columns []Column
	Cells   func(T) []string
	Options pager.Options[T]
	Load    func(ctx context.Context, st *store.Store) ([]T, error)
}

// Row is one rendered table row.
type Row struct {
	ID          string
	Cells       []string
	Selected    bool
	Placeholder bool
}

// Snapshot is a type-erased pager view plus the query that produced it.
type Snapshot struct {
	Rows []Row

	Page       int
	TotalPages int
	PageSize   int
	Start      int
	End        int
	Filtered   int
	Total      int
	Selected   int

	HasMore     bool
	Loading     bool
	Empty       bool
	CanPrev     bool
	CanNext     bool
	AllSelected bool

	Search     string
	Filters    pager.ActiveFilters
	SortKey    string
	SortDesc   bool
	Suggestion string
}

// Handle is the record-type independent surface used by the UI and the CLI.
type Handle interface {
	Name() string
	Title() string
	Group() string
	Mode() pager.Mode
	Columns() []Column
	Categories() []pager.CategoryInfo
	SortKeys() []string
	Total() int

	SetSearchText(text string)
	ToggleFilter(key, value string) bool
	ClearAllFilters()
	SetSort(key string, desc bool) bool

	GoToPage(n int) bool
	NextPage() bool
	PrevPage() bool
	FirstPage() bool
	LastPage() bool

	ToggleRowSelection(id string)
	ToggleSelectAll()
	ClearSelection()
	SelectedIDs() []string

	BeginLoadMore() (pager.LoadTicket, bool)
	CompleteLoadMore(t pager.LoadTicket) bool
	CancelLoad()

	Reload(ctx context.Context, st *store.Store) error
	Snapshot() Snapshot
}

type binding[T any] struct {
	spec  Spec[T]
	pager *pager.Pager[T]
	items []T
}

// Bind wraps items in a pager configured by spec.
func Bind[T any](spec Spec[T], items []T) (Handle, error) {
	p, err := pager.New(items, spec.Options)
	if err != nil {
		return nil, err
	}
	return &binding[T]{spec: spec, pager: p, items: items}, nil
}

func (b *binding[T]) Name() string                     { return b.spec.Name }
func (b *binding[T]) Title() string                    { return b.spec.Title }
func (b *binding[T]) Group() string                    { return b.spec.Group }
func (b *binding[T]) Mode() pager.Mode                 { return b.pager.Options().Mode }
func (b *binding[T]) Columns() []Column                { return b.spec.Columns }
func (b *binding[T]) Categories() []pager.CategoryInfo { return b.pager.Categories() }
func (b *binding[T]) SortKeys() []string               { return b.pager.SortKeys() }
func (b *binding[T]) Total() int                       { return len(b.items) }

func (b *binding[T]) SetSearchText(text string)           { b.pager.SetSearchText(text) }
func (b *binding[T]) ToggleFilter(key, value string) bool { return b.pager.ToggleFilter(key, value) }
func (b *binding[T]) ClearAllFilters()                    { b.pager.ClearAllFilters() }
func (b *binding[T]) SetSort(key string, desc bool) bool  { return b.pager.SetSort(key, desc) }

func (b *binding[T]) GoToPage(n int) bool { return b.pager.GoToPage(n) }
func (b *binding[T]) NextPage() bool      { return b.pager.NextPage() }
func (b *binding[T]) PrevPage() bool      { return b.pager.PrevPage() }
func (b *binding[T]) FirstPage() bool     { return b.pager.FirstPage() }
func (b *binding[T]) LastPage() bool      { return b.pager.LastPage() }

func (b *binding[T]) ToggleRowSelection(id string) { b.pager.ToggleRowSelection(id) }
func (b *binding[T]) ToggleSelectAll()             { b.pager.ToggleSelectAll() }
func (b *binding[T]) ClearSelection()              { b.pager.ClearSelection() }
func (b *binding[T]) SelectedIDs() []string        { return b.pager.Selected() }

func (b *binding[T]) BeginLoadMore() (pager.LoadTicket, bool)  { return b.pager.BeginLoadMore() }
func (b *binding[T]) CompleteLoadMore(t pager.LoadTicket) bool { return b.pager.CompleteLoadMore(t) }
func (b *binding[T]) CancelLoad()                              { b.pager.CancelLoad() }

// Reload fetches the collection again, keeping query, filters and selection.
func (b *binding[T]) Reload(ctx context.Context, st *store.Store) error {
	items, err := b.spec.Load(ctx, st)
	if err != nil {
		return err
	}
	b.items = items
	b.pager.SetItems(items)
	return nil
}

func (b *binding[T]) Snapshot() Snapshot {
	v := b.pager.View()
	key, desc := b.pager.Sort()
	snap := Snapshot{
		Page:        v.Page,
		TotalPages:  v.TotalPages,
		PageSize:    v.PageSize,
		Start:       v.StartIndex,
		End:         v.EndIndex,
		Filtered:    v.FilteredCount,
		Total:       v.TotalCount,
		Selected:    v.SelectedCount,
		HasMore:     v.HasMore,
		Loading:     v.Loading,
		Empty:       v.Empty,
		CanPrev:     v.CanPrev,
		CanNext:     v.CanNext,
		AllSelected: v.AllSelected,
		Search:      b.pager.SearchText(),
		Filters:     b.pager.ActiveFilters(),
		SortKey:     key,
		SortDesc:    desc,
	}
	snap.Rows = make([]Row, 0, len(v.Rows))
	for _, row := range v.Rows {
		if row.Placeholder {
			snap.Rows = append(snap.Rows, Row{Placeholder: true, Cells: make([]string, len(b.spec.Columns))})
			continue
		}
		snap.Rows = append(snap.Rows, Row{ID: row.ID, Cells: b.spec.Cells(row.Item), Selected: row.Selected})
	}
	if v.Empty && snap.Search != "" {
		snap.Suggestion = b.suggestion(snap.Search)
	}
	return snap
}

// suggestion draws candidates from records passing the active filters, so a
// suggested word can actually produce results.
func (b *binding[T]) suggestion(query string) string {
	fields := b.spec.Options.SearchFields
	if fields == nil {
		return ""
	}
	var candidates []string
	for _, item := range pager.ComputeFilteredSet(b.items, "", b.pager.ActiveFilters(), b.spec.Options) {
		candidates = append(candidates, fields(item)...)
	}
	return suggest.Closest(query, candidates, suggest.MaxDistance(query))
}
