package pager

import (
	"context"
	"time"
)

// LoadTicket identifies one pending incremental load.
type LoadTicket struct {
	gen  uint64
	page int
}

// Page is the page number the load will reveal.
func (t LoadTicket) Page() int {
	return t.page
}

// Loading reports whether an incremental load is pending.
func (p *Pager[T]) Loading() bool {
	return p.loading
}

// BeginLoadMore marks a load as pending. It refuses while another load is
// pending, when nothing is left to show, or in windowed mode.
func (p *Pager[T]) BeginLoadMore() (LoadTicket, bool) {
	if p.opts.Mode != ModeIncremental || p.loading || !p.HasMore() {
		return LoadTicket{}, false
	}
	p.loading = true
	p.loadGen++
	return LoadTicket{gen: p.loadGen, page: p.page + 1}, true
}

// CompleteLoadMore reveals the next page for a ticket from BeginLoadMore.
// Tickets invalidated by CancelLoad or a query change report false.
func (p *Pager[T]) CompleteLoadMore(t LoadTicket) bool {
	if !p.loading || t.gen != p.loadGen {
		return false
	}
	p.loading = false
	if p.page < p.TotalPages() {
		p.page++
	}
	return true
}

// CancelLoad abandons the pending load, if any.
func (p *Pager[T]) CancelLoad() {
	p.loading = false
	p.loadGen++
}

// LoadMore begins and completes a load in one step.
func (p *Pager[T]) LoadMore() bool {
	t, ok := p.BeginLoadMore()
	if !ok {
		return false
	}
	return p.CompleteLoadMore(t)
}

// Fetcher stands in for the remote call behind an incremental load.
type Fetcher interface {
	Fetch(ctx context.Context, page int) error
}

// DelayFetcher simulates latency and honours cancellation.
type DelayFetcher struct {
	Delay time.Duration
}

// Fetch waits for Delay or until ctx is done.
func (f DelayFetcher) Fetch(ctx context.Context, _ int) error {
	if f.Delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(f.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
