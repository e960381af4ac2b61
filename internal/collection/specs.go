package collection

import (
	"cmp"
	"context"

	"github.com/verte-zerg/creatordesk/internal/model"
	"github.com/verte-zerg/creatordesk/internal/pager"
	"github.com/verte-zerg/creatordesk/internal/store"
)

// Screen groups share pager settings.
const (
	GroupAudience  = "audience"
	GroupLibrary   = "library"
	GroupDownloads = "downloads"
)

// MembersSpec lists audience members in fixed, padded pages.
func MembersSpec() Spec[model.Member] {
	return Spec[model.Member]{
		Name:  "members",
		Title: "Members",
		Group: GroupAudience,
		Columns: []Column{
			{Title: "Name", Width: 20},
			{Title: "Email", Width: 30},
			{Title: "Tier", Width: 10},
			{Title: "Status", Width: 16},
			{Title: "Joined", Width: 10},
			{Title: "Lifetime", Width: 11, Right: true},
		},
		Cells: func(m model.Member) []string {
			return []string{m.Name, m.Email, m.Tier, m.Status, formatDate(m.JoinedAt), formatCents(m.LifetimeCents)}
		},
		Options: pager.Options[model.Member]{
			ID:           func(m model.Member) string { return m.ID },
			SearchFields: func(m model.Member) []string { return []string{m.Name, m.Email} },
			Categories: []pager.Category[model.Member]{
				{Key: "status", Label: "Status", Values: model.MemberStatuses, Match: pager.FieldEquals(func(m model.Member) string { return m.Status })},
				{Key: "tier", Label: "Tier", Values: model.MemberTiers, Match: pager.FieldEquals(func(m model.Member) string { return m.Tier })},
			},
			Sorts: map[string]func(a, b model.Member) int{
				"name":     func(a, b model.Member) int { return compareFold(a.Name, b.Name) },
				"joined":   func(a, b model.Member) int { return compareTime(a.JoinedAt, b.JoinedAt) },
				"lifetime": func(a, b model.Member) int { return cmp.Compare(a.LifetimeCents, b.LifetimeCents) },
			},
			PageSize: 10,
			Mode:     pager.ModeWindowed,
			Pad:      true,
		},
		Load: func(ctx context.Context, st *store.Store) ([]model.Member, error) { return st.ListMembers(ctx) },
	}
}

// SalesSpec lists product sales in fixed, padded pages.
func SalesSpec() Spec[model.Sale] {
	return Spec[model.Sale]{
		Name:  "sales",
		Title: "Sales",
		Group: GroupAudience,
		Columns: []Column{
			{Title: "Buyer", Width: 20},
			{Title: "Email", Width: 30},
			{Title: "Product", Width: 15},
			{Title: "Amount", Width: 9, Right: true},
			{Title: "Status", Width: 9},
			{Title: "Date", Width: 10},
		},
		Cells: func(v model.Sale) []string {
			return []string{v.Buyer, v.Email, v.Product, formatCents(v.AmountCents), v.Status, formatDate(v.SoldAt)}
		},
		Options: pager.Options[model.Sale]{
			ID:           func(v model.Sale) string { return v.ID },
			SearchFields: func(v model.Sale) []string { return []string{v.Buyer, v.Email, v.Product} },
			Categories: []pager.Category[model.Sale]{
				{Key: "status", Label: "Status", Values: model.SaleStatuses, Match: pager.FieldEquals(func(v model.Sale) string { return v.Status })},
				{Key: "product", Label: "Product", Values: model.Products, Match: pager.FieldEquals(func(v model.Sale) string { return v.Product })},
			},
			Sorts: map[string]func(a, b model.Sale) int{
				"date":   func(a, b model.Sale) int { return compareTime(a.SoldAt, b.SoldAt) },
				"amount": func(a, b model.Sale) int { return cmp.Compare(a.AmountCents, b.AmountCents) },
			},
			PageSize: 10,
			Mode:     pager.ModeWindowed,
			Pad:      true,
		},
		Load: func(ctx context.Context, st *store.Store) ([]model.Sale, error) { return st.ListSales(ctx) },
	}
}

// PostsSpec lists library posts with load-more paging.
func PostsSpec() Spec[model.Post] {
	return Spec[model.Post]{
		Name:  "posts",
		Title: "Posts",
		Group: GroupLibrary,
		Columns: []Column{
			{Title: "Title", Width: 34},
			{Title: "Type", Width: 6},
			{Title: "Access", Width: 8},
			{Title: "Status", Width: 10},
			{Title: "Published", Width: 10},
			{Title: "Likes", Width: 6, Right: true},
		},
		Cells: func(p model.Post) []string {
			return []string{p.Title, p.Kind, p.Access, p.Status, formatDate(p.PublishedAt), formatCount(p.Likes)}
		},
		Options: pager.Options[model.Post]{
			ID:           func(p model.Post) string { return p.ID },
			SearchFields: func(p model.Post) []string { return []string{p.Title} },
			Categories: []pager.Category[model.Post]{
				{Key: "kind", Label: "Type", Values: model.PostKinds, Match: pager.FieldEquals(func(p model.Post) string { return p.Kind })},
				{Key: "access", Label: "Access", Values: model.PostAccess, Match: pager.FieldEquals(func(p model.Post) string { return p.Access })},
				{Key: "status", Label: "Status", Values: model.PostStatuses, Match: pager.FieldEquals(func(p model.Post) string { return p.Status })},
			},
			Sorts: map[string]func(a, b model.Post) int{
				"date":  func(a, b model.Post) int { return compareTime(a.PublishedAt, b.PublishedAt) },
				"likes": func(a, b model.Post) int { return cmp.Compare(a.Likes, b.Likes) },
				"title": func(a, b model.Post) int { return compareFold(a.Title, b.Title) },
			},
			PageSize: 12,
			Mode:     pager.ModeIncremental,
		},
		Load: func(ctx context.Context, st *store.Store) ([]model.Post, error) { return st.ListPosts(ctx) },
	}
}

// CollectionsSpec lists library collections with load-more paging.
func CollectionsSpec() Spec[model.Collection] {
	return Spec[model.Collection]{
		Name:  "collections",
		Title: "Collections",
		Group: GroupLibrary,
		Columns: []Column{
			{Title: "Title", Width: 32},
			{Title: "Visibility", Width: 10},
			{Title: "Posts", Width: 5, Right: true},
			{Title: "Updated", Width: 10},
		},
		Cells: func(c model.Collection) []string {
			return []string{c.Title, c.Visibility, itoa(c.PostCount), formatDate(c.UpdatedAt)}
		},
		Options: pager.Options[model.Collection]{
			ID:           func(c model.Collection) string { return c.ID },
			SearchFields: func(c model.Collection) []string { return []string{c.Title} },
			Categories: []pager.Category[model.Collection]{
				{Key: "visibility", Label: "Visibility", Values: model.Visibilities, Match: pager.FieldEquals(func(c model.Collection) string { return c.Visibility })},
			},
			Sorts: map[string]func(a, b model.Collection) int{
				"title":   func(a, b model.Collection) int { return compareFold(a.Title, b.Title) },
				"updated": func(a, b model.Collection) int { return compareTime(a.UpdatedAt, b.UpdatedAt) },
			},
			PageSize: 12,
			Mode:     pager.ModeIncremental,
		},
		Load: func(ctx context.Context, st *store.Store) ([]model.Collection, error) { return st.ListCollections(ctx) },
	}
}

// DownloadsSpec lists download groups with load-more paging.
func DownloadsSpec() Spec[model.DownloadGroup] {
	return Spec[model.DownloadGroup]{
		Name:  "downloads",
		Title: "Downloads",
		Group: GroupDownloads,
		Columns: []Column{
			{Title: "Title", Width: 30},
			{Title: "Format", Width: 6},
			{Title: "Files", Width: 5, Right: true},
			{Title: "Size", Width: 9, Right: true},
			{Title: "Status", Width: 10},
			{Title: "Created", Width: 10},
		},
		Cells: func(d model.DownloadGroup) []string {
			return []string{d.Title, d.Format, itoa(d.Files), formatBytes(d.SizeBytes), d.Status, formatDate(d.CreatedAt)}
		},
		Options: pager.Options[model.DownloadGroup]{
			ID:           func(d model.DownloadGroup) string { return d.ID },
			SearchFields: func(d model.DownloadGroup) []string { return []string{d.Title, d.Format} },
			Categories: []pager.Category[model.DownloadGroup]{
				{Key: "format", Label: "Format", Values: model.DownloadFormats, Match: pager.FieldEquals(func(d model.DownloadGroup) string { return d.Format })},
				{Key: "status", Label: "Status", Values: model.DownloadStatuses, Match: pager.FieldEquals(func(d model.DownloadGroup) string { return d.Status })},
			},
			Sorts: map[string]func(a, b model.DownloadGroup) int{
				"date": func(a, b model.DownloadGroup) int { return compareTime(a.CreatedAt, b.CreatedAt) },
				"size": func(a, b model.DownloadGroup) int { return cmp.Compare(a.SizeBytes, b.SizeBytes) },
			},
			PageSize: 8,
			Mode:     pager.ModeIncremental,
		},
		Load: func(ctx context.Context, st *store.Store) ([]model.DownloadGroup, error) { return st.ListDownloads(ctx) },
	}
}
