// Package pager provides a generic in-memory filtered pager with selection tracking.
package pager

import (
	"slices"
	"strings"
)

// Category is a named group of selectable filter values. Selected values of one
// category combine with OR; categories combine with AND.
type Category[T any] struct {
	Key    string
	Label  string
	Values []string
	Match  func(item T, value string) bool
}

// CategoryInfo describes a category without its predicate.
type CategoryInfo struct {
	Key    string
	Label  string
	Values []string
}

// ActiveFilters maps a category key to its selected values.
type ActiveFilters map[string][]string

// Clone returns a deep copy.
func (a ActiveFilters) Clone() ActiveFilters {
	out := make(ActiveFilters, len(a))
	for k, v := range a {
		if len(v) == 0 {
			continue
		}
		out[k] = append([]string(nil), v...)
	}
	return out
}

// Has reports whether value is selected for key.
func (a ActiveFilters) Has(key, value string) bool {
	return slices.Contains(a[key], value)
}

// Count returns the number of selected values across categories.
func (a ActiveFilters) Count() int {
	n := 0
	for _, v := range a {
		n += len(v)
	}
	return n
}

// FieldEquals builds a case-insensitive equality matcher over a single field.
func FieldEquals[T any](field func(T) string) func(T, string) bool {
	return func(item T, value string) bool {
		return strings.EqualFold(field(item), value)
	}
}

// ComputeFilteredSet applies the search text, then every active category, then
// the optional sort. It returns a new slice and never mutates items.
func ComputeFilteredSet[T any](items []T, search string, active ActiveFilters, opts Options[T]) []T {
	return computeSorted(items, search, active, opts, "", false)
}

func computeSorted[T any](items []T, search string, active ActiveFilters, opts Options[T], sortKey string, desc bool) []T {
	needle := strings.ToLower(strings.TrimSpace(search))
	cats := activeCategories(opts.Categories, active)
	out := make([]T, 0, len(items))
	for _, item := range items {
		if !matchesSearch(item, needle, opts.SearchFields) {
			continue
		}
		if !matchesCategories(item, cats) {
			continue
		}
		out = append(out, item)
	}
	if cmp, ok := opts.Sorts[sortKey]; ok && cmp != nil {
		if desc {
			slices.SortStableFunc(out, func(a, b T) int { return cmp(b, a) })
		} else {
			slices.SortStableFunc(out, cmp)
		}
	}
	return out
}

type activeCategory[T any] struct {
	match  func(T, string) bool
	values []string
}

func activeCategories[T any](cats []Category[T], active ActiveFilters) []activeCategory[T] {
	out := make([]activeCategory[T], 0, len(active))
	for _, cat := range cats {
		values := active[cat.Key]
		if len(values) == 0 || cat.Match == nil {
			continue
		}
		out = append(out, activeCategory[T]{match: cat.Match, values: values})
	}
	return out
}

func matchesSearch[T any](item T, needle string, fields func(T) []string) bool {
	if needle == "" || fields == nil {
		return true
	}
	for _, field := range fields(item) {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func matchesCategories[T any](item T, cats []activeCategory[T]) bool {
	for _, cat := range cats {
		hit := false
		for _, value := range cat.values {
			if cat.match(item, value) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}
