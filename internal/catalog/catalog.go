// Package catalog provides the static event catalog and seeds it into a
// store on first use.
package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"sort"

	"github.com/Shivanand-hulikatti/event-ease/internal/model"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Category is one browsable category page.
type Category struct {
	Route string
	Label string
}

var categories = []Category{
	{"cultural", "Cultural"},
	{"sports", "Sports"},
	{"workshops", "Workshops"},
	{"techtalks", "Tech Talks"},
	{"hackathons", "Hackathons"},
	{"social", "Social"},
	{"literary", "Literary"},
	{"esports", "Esports"},
	{"entrepreneurship", "Entrepreneurship"},
	{"photography", "Photography"},
	{"quizzes", "Quizzes"},
	{"alumni", "Alumni"},
}

// Categories returns the category pages in display order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// Label returns the display label of a category route, or the route
// itself when unknown.
func Label(route string) string {
	for _, c := range categories {
		if c.Route == route {
			return c.Label
		}
	}
	return route
}

// IsCategory reports whether route is a category page.
func IsCategory(route string) bool {
	for _, c := range categories {
		if c.Route == route {
			return true
		}
	}
	return false
}

type file struct {
	Events []model.Event `yaml:"events"`
}

// Events decodes the embedded catalog, ordered by id.
func Events() ([]model.Event, error) {
	return Parse(catalogYAML)
}

// Parse decodes a catalog document.
func Parse(data []byte) ([]model.Event, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	seen := make(map[int64]bool, len(f.Events))
	for i, e := range f.Events {
		if e.ID <= 0 || e.Title == "" {
			return nil, fmt.Errorf("catalog entry %d: id and title are required", i)
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("catalog entry %d: duplicate id %d", i, e.ID)
		}
		seen[e.ID] = true
		f.Events[i].Date = e.Date.UTC()
	}
	sort.Slice(f.Events, func(i, j int) bool { return f.Events[i].ID < f.Events[j].ID })
	return f.Events, nil
}

// Seeder is the part of the store Seed writes to.
type Seeder interface {
	CountEvents(ctx context.Context) (int, error)
	SeedEvents(ctx context.Context, events []model.Event) error
}

// Seed loads the embedded catalog into store when it holds no events.
// seeded reports whether anything was written.
func Seed(ctx context.Context, store Seeder) (seeded bool, err error) {
	n, err := store.CountEvents(ctx)
	if err != nil {
		return false, fmt.Errorf("count events: %w", err)
	}
	if n > 0 {
		return false, nil
	}
	events, err := Events()
	if err != nil {
		return false, err
	}
	if err := store.SeedEvents(ctx, events); err != nil {
		return false, fmt.Errorf("seed events: %w", err)
	}
	return true, nil
}
