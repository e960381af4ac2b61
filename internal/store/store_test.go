package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/verte-zerg/creatordesk/internal/dataset"
	"github.com/verte-zerg/creatordesk/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "creatordesk.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestSeedRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)
	ds := dataset.New(3, now).Build(model.DataConfig{Members: 12, Sales: 6, Posts: 9, Collections: 4, Downloads: 5})
	if err := st.Seed(ctx, ds); err != nil {
		t.Fatalf("seed: %v", err)
	}

	members, err := st.ListMembers(ctx)
	if err != nil {
		t.Fatalf("list members: %v", err)
	}
	if diff := cmp.Diff(ds.Members, members); diff != "" {
		t.Fatalf("members differ (-want +got):\n%s", diff)
	}
	sales, err := st.ListSales(ctx)
	if err != nil {
		t.Fatalf("list sales: %v", err)
	}
	if diff := cmp.Diff(ds.Sales, sales); diff != "" {
		t.Fatalf("sales differ (-want +got):\n%s", diff)
	}
	posts, err := st.ListPosts(ctx)
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	if diff := cmp.Diff(ds.Posts, posts); diff != "" {
		t.Fatalf("posts differ (-want +got):\n%s", diff)
	}
	collections, err := st.ListCollections(ctx)
	if err != nil {
		t.Fatalf("list collections: %v", err)
	}
	if diff := cmp.Diff(ds.Collections, collections); diff != "" {
		t.Fatalf("collections differ (-want +got):\n%s", diff)
	}
	downloads, err := st.ListDownloads(ctx)
	if err != nil {
		t.Fatalf("list downloads: %v", err)
	}
	if diff := cmp.Diff(ds.Downloads, downloads); diff != "" {
		t.Fatalf("downloads differ (-want +got):\n%s", diff)
	}
}

func TestSeedReplacesPreviousData(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	gen := dataset.New(1, time.Now())
	if err := st.Seed(ctx, gen.Build(model.DataConfig{Members: 10, Posts: 3})); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if err := st.Seed(ctx, gen.Build(model.DataConfig{Members: 4})); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	counts, err := st.Counts(ctx)
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if counts.Members != 4 || counts.Posts != 0 {
		t.Fatalf("expected 4 members and 0 posts, got %+v", counts)
	}
	if counts.Total() != 4 {
		t.Fatalf("expected total 4, got %d", counts.Total())
	}
}

func TestEmptyStoreCounts(t *testing.T) {
	st := openTestStore(t)
	counts, err := st.Counts(context.Background())
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if counts.Total() != 0 {
		t.Fatalf("expected empty store, got %+v", counts)
	}
	members, err := st.ListMembers(context.Background())
	if err != nil {
		t.Fatalf("list members: %v", err)
	}
	if len(members) != 0 {
		t.Fatalf("expected no members, got %d", len(members))
	}
}
