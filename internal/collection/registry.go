package collection

import (
	"context"
	"fmt"
	"strings"

	"github.com/verte-zerg/creatordesk/internal/model"
	"github.com/verte-zerg/creatordesk/internal/pager"
	"github.com/verte-zerg/creatordesk/internal/store"
)

// Names lists the collections in display order.
func Names() []string {
	return []string{"members", "sales", "posts", "collections", "downloads"}
}

// Open loads one collection from the store and binds it to a pager tuned by cfg.
func Open(ctx context.Context, st *store.Store, name string, cfg model.Config) (Handle, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "members":
		return open(ctx, st, MembersSpec(), cfg)
	case "sales":
		return open(ctx, st, SalesSpec(), cfg)
	case "posts":
		return open(ctx, st, PostsSpec(), cfg)
	case "collections":
		return open(ctx, st, CollectionsSpec(), cfg)
	case "downloads":
		return open(ctx, st, DownloadsSpec(), cfg)
	default:
		return nil, fmt.Errorf("unknown collection %q (available: %s)", name, strings.Join(Names(), ", "))
	}
}

// OpenAll opens every collection in display order.
func OpenAll(ctx context.Context, st *store.Store, cfg model.Config) ([]Handle, error) {
	handles := make([]Handle, 0, len(Names()))
	for _, name := range Names() {
		h, err := Open(ctx, st, name, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", name, err)
		}
		handles = append(handles, h)
	}
	return handles, nil
}

// ParseScope maps a config value to a selection scope.
func ParseScope(value string) (pager.SelectionScope, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "page", "visible":
		return pager.ScopePage, nil
	case "filtered", "global":
		return pager.ScopeFiltered, nil
	default:
		return pager.ScopePage, fmt.Errorf("invalid selection scope %q (use page or filtered)", value)
	}
}

func open[T any](ctx context.Context, st *store.Store, spec Spec[T], cfg model.Config) (Handle, error) {
	if err := applyConfig(&spec, cfg); err != nil {
		return nil, err
	}
	items, err := spec.Load(ctx, st)
	if err != nil {
		return nil, err
	}
	return Bind(spec, items)
}

func applyConfig[T any](spec *Spec[T], cfg model.Config) error {
	var pc model.PagerConfig
	switch spec.Group {
	case GroupAudience:
		pc = cfg.Audience
	case GroupLibrary:
		pc = cfg.Library
	case GroupDownloads:
		pc = cfg.Downloads
	}
	if pc.PageSize > 0 {
		spec.Options.PageSize = pc.PageSize
	}
	scope, err := ParseScope(pc.Scope)
	if err != nil {
		return err
	}
	spec.Options.Scope = scope
	return nil
}
