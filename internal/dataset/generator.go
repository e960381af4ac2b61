// Package dataset builds deterministic mock collections.
package dataset

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/creatordesk/internal/model"
)

var (
	firstNames = []string{"John", "Sarah", "Johnny", "Maya", "Liam", "Ava", "Noah", "Zoe", "Ethan", "Ines", "Kofi", "Mei", "Lucas", "Priya", "Omar", "Elena"}
	lastNames  = []string{"Doe", "Kim", "Rivera", "Okafor", "Novak", "Silva", "Tanaka", "Haddad", "Larsen", "Moreau", "Patel", "Schmidt"}
	topics     = []string{"Studio Tour", "Mixing Basics", "Behind the Scenes", "Q&A", "Color Grading", "Sketchbook", "Live Session", "Gear Review", "Tutorial", "Monthly Update"}
	adjectives = []string{"Weekly", "Extended", "Raw", "Bonus", "Annotated", "Quick", "Deep Dive"}
)

// Generator produces pseudo-random records from a fixed seed.
type Generator struct {
	rnd *rand.Rand
	now time.Time
}

// New returns a Generator for seed. Dates are spread backwards from now.
func New(seed int64, now time.Time) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed)), now: now.UTC().Truncate(time.Second)}
}

// Build generates a full dataset sized by cfg.
func (g *Generator) Build(cfg model.DataConfig) model.Dataset {
	return model.Dataset{
		Members:     g.Members(cfg.Members),
		Sales:       g.Sales(cfg.Sales),
		Posts:       g.Posts(cfg.Posts),
		Collections: g.Collections(cfg.Collections),
		Downloads:   g.Downloads(cfg.Downloads),
	}
}

// Members generates n audience members.
func (g *Generator) Members(n int) []model.Member {
	out := make([]model.Member, 0, max(n, 0))
	for i := 0; i < n; i++ {
		name := g.personName()
		out = append(out, model.Member{
			ID:            stableID("member", i),
			Name:          name,
			Email:         emailFor(name, i),
			Tier:          pick(g.rnd, model.MemberTiers),
			Status:        pick(g.rnd, model.MemberStatuses),
			JoinedAt:      g.daysAgo(720),
			LifetimeCents: int64(g.rnd.Intn(50000)),
		})
	}
	return out
}

// Sales generates n product sales.
func (g *Generator) Sales(n int) []model.Sale {
	out := make([]model.Sale, 0, max(n, 0))
	for i := 0; i < n; i++ {
		name := g.personName()
		out = append(out, model.Sale{
			ID:          stableID("sale", i),
			Buyer:       name,
			Email:       emailFor(name, i),
			Product:     pick(g.rnd, model.Products),
			AmountCents: int64(500 + g.rnd.Intn(9500)),
			Status:      pick(g.rnd, model.SaleStatuses),
			SoldAt:      g.daysAgo(180),
		})
	}
	return out
}

// Posts generates n library posts.
func (g *Generator) Posts(n int) []model.Post {
	out := make([]model.Post, 0, max(n, 0))
	for i := 0; i < n; i++ {
		out = append(out, model.Post{
			ID:          stableID("post", i),
			Title:       g.title(i),
			Kind:        pick(g.rnd, model.PostKinds),
			Access:      pick(g.rnd, model.PostAccess),
			Status:      pick(g.rnd, model.PostStatuses),
			PublishedAt: g.daysAgo(365),
			Likes:       g.rnd.Intn(2000),
		})
	}
	return out
}

// Collections generates n library collections.
func (g *Generator) Collections(n int) []model.Collection {
	out := make([]model.Collection, 0, max(n, 0))
	for i := 0; i < n; i++ {
		out = append(out, model.Collection{
			ID:         stableID("collection", i),
			Title:      fmt.Sprintf("%s Collection", pick(g.rnd, topics)),
			Visibility: pick(g.rnd, model.Visibilities),
			PostCount:  1 + g.rnd.Intn(40),
			UpdatedAt:  g.daysAgo(365),
		})
	}
	return out
}

// Downloads generates n download groups.
func (g *Generator) Downloads(n int) []model.DownloadGroup {
	out := make([]model.DownloadGroup, 0, max(n, 0))
	for i := 0; i < n; i++ {
		out = append(out, model.DownloadGroup{
			ID:        stableID("download", i),
			Title:     fmt.Sprintf("%s Bundle %d", pick(g.rnd, topics), i+1),
			Format:    pick(g.rnd, model.DownloadFormats),
			Files:     1 + g.rnd.Intn(24),
			SizeBytes: int64(1+g.rnd.Intn(4000)) << 20,
			Status:    pick(g.rnd, model.DownloadStatuses),
			CreatedAt: g.daysAgo(365),
		})
	}
	return out
}

func (g *Generator) personName() string {
	return pick(g.rnd, firstNames) + " " + pick(g.rnd, lastNames)
}

func (g *Generator) title(i int) string {
	return fmt.Sprintf("%s %s #%d", pick(g.rnd, adjectives), pick(g.rnd, topics), i+1)
}

func (g *Generator) daysAgo(maxDays int) time.Time {
	d := time.Duration(g.rnd.Intn(maxDays*24)) * time.Hour
	return g.now.Add(-d)
}

func pick(rnd *rand.Rand, values []string) string {
	return values[rnd.Intn(len(values))]
}

func emailFor(name string, i int) string {
	local := strings.ToLower(strings.ReplaceAll(name, " ", "."))
	return fmt.Sprintf("%s%d@example.com", local, i+1)
}

// stableID derives the same id for the same kind and position on every run.
func stableID(kind string, i int) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("creatordesk:%s:%d", kind, i))).String()
}
