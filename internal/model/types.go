// Package model defines shared data structures.
package model

import "time"

// Config defines interactive UI settings.
type Config struct {
	LoadDelay time.Duration
	Audience  PagerConfig
	Library   PagerConfig
	Downloads PagerConfig
}

// PagerConfig tunes the pager of one screen group.
type PagerConfig struct {
	PageSize int
	// Scope is "page" or "filtered".
	Scope string
}

// DataConfig controls the generated mock dataset.
type DataConfig struct {
	Seed        int64
	Members     int
	Sales       int
	Posts       int
	Collections int
	Downloads   int
}

// Member is one audience member.
type Member struct {
	ID            string
	Name          string
	Email         string
	Tier          string
	Status        string
	JoinedAt      time.Time
	LifetimeCents int64
}

// Sale is one purchase of a product.
type Sale struct {
	ID          string
	Buyer       string
	Email       string
	Product     string
	AmountCents int64
	Status      string
	SoldAt      time.Time
}

// Post is one library post.
type Post struct {
	ID          string
	Title       string
	Kind        string
	Access      string
	Status      string
	PublishedAt time.Time
	Likes       int
}

// Collection groups library posts.
type Collection struct {
	ID         string
	Title      string
	Visibility string
	PostCount  int
	UpdatedAt  time.Time
}

// DownloadGroup is one bundle of downloadable files.
type DownloadGroup struct {
	ID        string
	Title     string
	Format    string
	Files     int
	SizeBytes int64
	Status    string
	CreatedAt time.Time
}

// Dataset bundles every collection.
type Dataset struct {
	Members     []Member
	Sales       []Sale
	Posts       []Post
	Collections []Collection
	Downloads   []DownloadGroup
}

// Value lists shared by the generator and the filter categories.
var (
	MemberStatuses   = []string{"Active", "Free", "Cancelled", "Payment declined"}
	MemberTiers      = []string{"Supporter", "Insider", "Patron"}
	SaleStatuses     = []string{"Paid", "Pending", "Refunded"}
	Products         = []string{"Preset Pack", "Masterclass", "Sample Library", "Wallpaper Set", "E-book"}
	PostKinds        = []string{"Video", "Audio", "Text", "Image", "Poll"}
	PostAccess       = []string{"Public", "Members", "Paid"}
	PostStatuses     = []string{"Published", "Draft", "Scheduled"}
	Visibilities     = []string{"Public", "Members", "Private"}
	DownloadFormats  = []string{"PDF", "ZIP", "MP3", "MP4"}
	DownloadStatuses = []string{"Ready", "Processing", "Expired"}
)
