package pager

import (
	"fmt"
	"slices"
	"strings"
	"testing"
	"testing/quick"

	"github.com/google/go-cmp/cmp"
)

var propertyNames = []string{"John Doe", "Sarah", "Johnny", "Ana", "Joan", "Bob"}

// buildRecords derives a record set from fuzz input so quick can drive it.
func buildRecords(seeds []uint8) []member {
	out := make([]member, len(seeds))
	for i, s := range seeds {
		out[i] = member{
			id:     fmt.Sprintf("r%03d", i),
			name:   propertyNames[int(s)%len(propertyNames)],
			status: testStatuses[int(s)%len(testStatuses)],
			tier:   testTiers[int(s/7)%len(testTiers)],
		}
	}
	return out
}

func buildFilters(mask uint8) ActiveFilters {
	active := ActiveFilters{}
	for i, status := range testStatuses {
		if mask&(1<<i) != 0 {
			active["status"] = append(active["status"], status)
		}
	}
	for i, tier := range testTiers {
		if mask&(1<<(i+4)) != 0 {
			active["tier"] = append(active["tier"], tier)
		}
	}
	return active
}

func buildSearch(q uint8) string {
	queries := []string{"", "jo", "JOHN", "a", " sarah ", "zzz"}
	return queries[int(q)%len(queries)]
}

func TestPropertyFilteringIsIdempotent(t *testing.T) {
	f := func(seeds []uint8, q, mask uint8) bool {
		items := buildRecords(seeds)
		search := buildSearch(q)
		active := buildFilters(mask)
		first := ComputeFilteredSet(items, search, active, memberOptions())
		second := ComputeFilteredSet(items, search, active, memberOptions())
		return cmp.Equal(ids(first), ids(second))
	}
	if err := quick.Check(f, &quick.Config{MaxCount: 500}); err != nil {
		t.Error(err)
	}
}

func TestPropertySearchAndFilterComposition(t *testing.T) {
	f := func(seeds []uint8, q, mask uint8) bool {
		items := buildRecords(seeds)
		search := buildSearch(q)
		active := buildFilters(mask)
		got := ids(ComputeFilteredSet(items, search, active, memberOptions()))
		needle := strings.ToLower(strings.TrimSpace(search))
		for _, r := range items {
			want := strings.Contains(strings.ToLower(r.name), needle) || strings.Contains(strings.ToLower(r.email), needle)
			if s := active["status"]; len(s) > 0 && !slices.Contains(s, r.status) {
				want = false
			}
			if tiers := active["tier"]; len(tiers) > 0 && !slices.Contains(tiers, r.tier) {
				want = false
			}
			if slices.Contains(got, r.id) != want {
				return false
			}
		}
		return true
	}
	if err := quick.Check(f, &quick.Config{MaxCount: 500}); err != nil {
		t.Error(err)
	}
}

func TestPropertyPageResetLaw(t *testing.T) {
	f := func(seeds []uint8, q, mask, page uint8) bool {
		p, err := New(buildRecords(seeds), memberOptions())
		if err != nil {
			return false
		}
		p.GoToPage(int(page)%5 + 1)
		p.SetSearchText(buildSearch(q))
		if p.Page() != 1 {
			return false
		}
		p.LastPage()
		for key, values := range buildFilters(mask) {
			for _, v := range values {
				p.ToggleFilter(key, v)
				if p.Page() != 1 {
					return false
				}
			}
		}
		return true
	}
	if err := quick.Check(f, &quick.Config{MaxCount: 300}); err != nil {
		t.Error(err)
	}
}

func TestPropertyWindowBounds(t *testing.T) {
	f := func(count uint16, size, page uint8) bool {
		n := int(count % 500)
		pageSize := int(size%25) + 1
		opts := memberOptions()
		opts.PageSize = pageSize
		p, err := New(makeMembers(n), opts)
		if err != nil {
			return false
		}
		p.GoToPage(int(page)%(p.TotalPages()+2) + 1)
		v := p.View()
		if v.Page < 1 || v.Page > v.TotalPages {
			return false
		}
		return 0 <= v.StartIndex &&
			v.StartIndex <= v.EndIndex &&
			v.EndIndex <= v.FilteredCount &&
			v.EndIndex-v.StartIndex <= pageSize
	}
	if err := quick.Check(f, &quick.Config{MaxCount: 1000}); err != nil {
		t.Error(err)
	}
}

func TestPropertySelectAllFromEmpty(t *testing.T) {
	f := func(seeds []uint8, q, mask uint8, filtered bool) bool {
		opts := memberOptions()
		if filtered {
			opts.Scope = ScopeFiltered
		}
		p, err := New(buildRecords(seeds), opts)
		if err != nil {
			return false
		}
		p.SetSearchText(buildSearch(q))
		for key, values := range buildFilters(mask) {
			for _, v := range values {
				p.ToggleFilter(key, v)
			}
		}
		var want []string
		if filtered {
			want = ids(p.Filtered())
		} else {
			for _, row := range p.View().Rows {
				want = append(want, row.ID)
			}
		}
		slices.Sort(want)
		p.ToggleSelectAll()
		return slices.Equal(want, p.Selected())
	}
	if err := quick.Check(f, &quick.Config{MaxCount: 500}); err != nil {
		t.Error(err)
	}
}
