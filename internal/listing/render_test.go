package listing

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verte-zerg/creatordesk/internal/collection"
	"github.com/verte-zerg/creatordesk/internal/pager"
)

type fan struct {
	id     string
	name   string
	status string
}

func fanHandle(t *testing.T, fans []fan, mode pager.Mode) collection.Handle {
	t.Helper()
	spec := collection.Spec[fan]{
		Name:    "fans",
		Title:   "Fans",
		Columns: []collection.Column{{Title: "Name"}, {Title: "Status"}},
		Cells:   func(f fan) []string { return []string{f.name, f.status} },
		Options: pager.Options[fan]{
			ID:           func(f fan) string { return f.id },
			SearchFields: func(f fan) []string { return []string{f.name} },
			Categories: []pager.Category[fan]{{
				Key:    "status",
				Label:  "Status",
				Values: []string{"Active", "Cancelled"},
				Match:  pager.FieldEquals(func(f fan) string { return f.status }),
			}},
			PageSize: 2,
			Mode:     mode,
			Pad:      true,
		},
	}
	h, err := collection.Bind(spec, fans)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	return h
}

func sampleFans() []fan {
	return []fan{
		{"1", "John Doe", "Active"},
		{"2", "Sarah Lee", "Cancelled"},
		{"3", "Johnny Cash", "Active"},
	}
}

func TestRenderWindowedPage(t *testing.T) {
	h := fanHandle(t, sampleFans(), pager.ModeWindowed)
	h.ToggleRowSelection("2")

	var buf bytes.Buffer
	if err := Render(&buf, h, 0); err != nil {
		t.Fatalf("render: %v", err)
	}
	want := strings.Join([]string{
		"  Name      Status",
		"  John Doe  Active",
		"* Sarah Lee Cancelled",
		"Page 1/2 · shown 1-2 of 3 · 1 selected",
		"",
	}, "\n")
	if buf.String() != want {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
}

func TestRenderSkipsPlaceholders(t *testing.T) {
	h := fanHandle(t, sampleFans(), pager.ModeWindowed)
	h.LastPage()
	lines := Lines(h.Columns(), h.Snapshot())
	if len(lines) != 3 {
		t.Fatalf("expected header, one row and footer, got %q", lines)
	}
	if lines[2] != "Page 2/2 · shown 3-3 of 3" {
		t.Fatalf("unexpected footer: %q", lines[2])
	}
}

func TestRenderIncrementalFooter(t *testing.T) {
	h := fanHandle(t, sampleFans(), pager.ModeIncremental)
	footer := Footer(h.Snapshot())
	if footer != "Page 1/2 · shown 1-2 of 3 · more available" {
		t.Fatalf("unexpected footer: %q", footer)
	}
}

func TestRenderEmptyStateWithSuggestion(t *testing.T) {
	h := fanHandle(t, sampleFans(), pager.ModeWindowed)
	h.SetSearchText("sarh")
	lines := Lines(h.Columns(), h.Snapshot())
	if lines[0] != `No results for "sarh". Did you mean "Sarah"?` {
		t.Fatalf("unexpected empty message: %q", lines[0])
	}
	if lines[1] != "Page 1/1 · shown 0 of 0 · 3 total" {
		t.Fatalf("unexpected footer: %q", lines[1])
	}
}

func TestEmptyMessageFiltersOnly(t *testing.T) {
	h := fanHandle(t, []fan{{"1", "John Doe", "Active"}}, pager.ModeWindowed)
	h.ToggleFilter("status", "Cancelled")
	if got := EmptyMessage(h.Snapshot()); got != "No records match status=Cancelled." {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestRenderTruncates(t *testing.T) {
	h := fanHandle(t, sampleFans(), pager.ModeWindowed)
	var buf bytes.Buffer
	if err := Render(&buf, h, 10); err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		if displayWidth(line) > 10 {
			t.Fatalf("expected line within 10 cells, got %q", line)
		}
	}
}
