package catalog

import (
	"context"

	"github.com/rpggio/showcase/internal/domain/gallery"
)

// ItemRepository provides persistence for gallery items.
type ItemRepository interface {
	Create(ctx context.Context, item *gallery.Item) error
	Get(ctx context.Context, id int64) (*gallery.Item, error)
	List(ctx context.Context) ([]gallery.Item, error)
	Count(ctx context.Context) (int, error)
	SaveEnrichment(ctx context.Context, e gallery.Enrichment) error
}

// TestimonialRepository provides persistence for testimonials.
type TestimonialRepository interface {
	Create(ctx context.Context, t *Testimonial) error
	List(ctx context.Context) ([]Testimonial, error)
}

// SeedRepository writes seed content atomically. Each table is filled only
// while it is empty.
type SeedRepository interface {
	Seed(ctx context.Context, items []gallery.Item, testimonials []Testimonial) (SeedResult, error)
}
