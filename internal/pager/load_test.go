package pager

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func incrementalOptions() Options[member] {
	opts := memberOptions()
	opts.Mode = ModeIncremental
	return opts
}

func TestLoadMoreIgnoresSecondCallWhileLoading(t *testing.T) {
	p := mustPager(t, makeMembers(35), incrementalOptions())
	ticket, ok := p.BeginLoadMore()
	if !ok {
		t.Fatalf("expected first load to start")
	}
	if _, ok := p.BeginLoadMore(); ok {
		t.Fatalf("expected second load to be refused while loading")
	}
	if !p.View().Loading {
		t.Fatalf("expected view to report loading")
	}
	if !p.CompleteLoadMore(ticket) {
		t.Fatalf("expected load to complete")
	}
	if p.CompleteLoadMore(ticket) {
		t.Fatalf("expected completed ticket to be rejected")
	}
	if p.Page() != 2 {
		t.Fatalf("expected page counter 2, got %d", p.Page())
	}
	v := p.View()
	if v.StartIndex != 0 || v.EndIndex != 20 || len(v.Rows) != 20 {
		t.Fatalf("expected 20 rows from 0, got [%d,%d) with %d rows", v.StartIndex, v.EndIndex, len(v.Rows))
	}
}

func TestLoadMoreStopsAtEnd(t *testing.T) {
	p := mustPager(t, makeMembers(25), incrementalOptions())
	if !p.LoadMore() || !p.LoadMore() {
		t.Fatalf("expected two loads to succeed")
	}
	if p.HasMore() {
		t.Fatalf("expected no more records")
	}
	if p.LoadMore() {
		t.Fatalf("expected load past the end to be refused")
	}
	if got := len(p.View().Rows); got != 25 {
		t.Fatalf("expected 25 rows, got %d", got)
	}
}

func TestLoadMoreDiscardsStaleTicket(t *testing.T) {
	p := mustPager(t, makeMembers(35), incrementalOptions())
	ticket, ok := p.BeginLoadMore()
	if !ok {
		t.Fatalf("expected load to start")
	}
	p.SetSearchText("member")
	if p.Loading() {
		t.Fatalf("expected query change to cancel the load")
	}
	if p.CompleteLoadMore(ticket) {
		t.Fatalf("expected stale ticket to be rejected")
	}
	if got := len(p.View().Rows); got != 10 {
		t.Fatalf("expected 10 rows, got %d", got)
	}
}

func TestCancelLoad(t *testing.T) {
	p := mustPager(t, makeMembers(35), incrementalOptions())
	ticket, _ := p.BeginLoadMore()
	p.CancelLoad()
	if p.CompleteLoadMore(ticket) {
		t.Fatalf("expected cancelled ticket to be rejected")
	}
	if _, ok := p.BeginLoadMore(); !ok {
		t.Fatalf("expected a new load after cancel")
	}
}

func TestLoadMoreRefusedInWindowedMode(t *testing.T) {
	p := mustPager(t, makeMembers(35), memberOptions())
	if _, ok := p.BeginLoadMore(); ok {
		t.Fatalf("expected windowed pager to refuse load more")
	}
}

func TestIncrementalIgnoresGoToPage(t *testing.T) {
	p := mustPager(t, makeMembers(35), incrementalOptions())
	if p.GoToPage(2) {
		t.Fatalf("expected incremental pager to refuse GoToPage")
	}
}

func TestIncrementalRefreshKeepsLoadedPages(t *testing.T) {
	p := mustPager(t, makeMembers(35), incrementalOptions())
	p.LoadMore()
	p.SetItems(makeMembers(15))
	if p.Page() != 2 {
		t.Fatalf("expected page counter clamped to 2, got %d", p.Page())
	}
	if got := len(p.View().Rows); got != 15 {
		t.Fatalf("expected 15 rows, got %d", got)
	}
}

func TestDelayFetcherCompletes(t *testing.T) {
	defer goleak.VerifyNone(t)
	f := DelayFetcher{Delay: time.Millisecond}
	if err := f.Fetch(context.Background(), 2); err != nil {
		t.Fatalf("expected fetch to complete, got %v", err)
	}
}

func TestDelayFetcherCancelled(t *testing.T) {
	defer goleak.VerifyNone(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- DelayFetcher{Delay: time.Hour}.Fetch(ctx, 2)
	}()
	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("fetch did not observe cancellation")
	}
}
