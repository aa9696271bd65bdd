package catalog

import (
	"time"

	"github.com/rpggio/showcase/internal/domain/gallery"
)

// Testimonial is a client quote shown as one carousel slide.
type Testimonial struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Position  string    `json:"position" yaml:"position"`
	Content   string    `json:"content" yaml:"content"`
	Rating    int       `json:"rating" yaml:"rating"`
	Image     string    `json:"image,omitempty" yaml:"image"`
	SortOrder int       `json:"sort_order" yaml:"sort_order"`
	CreatedAt time.Time `json:"created_at" yaml:"-"`
}

// Seed is the initial catalogue content.
type Seed struct {
	Items        []gallery.Item `yaml:"items"`
	Testimonials []Testimonial  `yaml:"testimonials"`
}

// SeedResult counts the rows a seed wrote.
type SeedResult struct {
	Items        int
	Testimonials int
}
