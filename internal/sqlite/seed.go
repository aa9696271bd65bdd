package sqlite

import (
	"context"
	"fmt"

	"github.com/rpggio/showcase/internal/domain/catalog"
	"github.com/rpggio/showcase/internal/domain/gallery"
)

var _ catalog.SeedRepository = (*SeedRepository)(nil)

// SeedRepository implements catalog.SeedRepository for SQLite
type SeedRepository struct {
	db *DB
}

// NewSeedRepository creates a new SeedRepository
func NewSeedRepository(db *DB) *SeedRepository {
	return &SeedRepository{db: db}
}

// Seed fills the empty tables inside one transaction. Nothing is written
// unless every insert succeeds.
func (r *SeedRepository) Seed(ctx context.Context, items []gallery.Item, testimonials []catalog.Testimonial) (catalog.SeedResult, error) {
	var result catalog.SeedResult

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return result, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var itemCount, testimonialCount int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&itemCount); err != nil {
		return result, fmt.Errorf("failed to count items: %w", err)
	}
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM testimonials`).Scan(&testimonialCount); err != nil {
		return result, fmt.Errorf("failed to count testimonials: %w", err)
	}

	if itemCount == 0 {
		for i := range items {
			if err := insertItem(ctx, tx, &items[i]); err != nil {
				return catalog.SeedResult{}, fmt.Errorf("item %d: %w", items[i].ID, err)
			}
		}
		result.Items = len(items)
	}
	if testimonialCount == 0 {
		for i := range testimonials {
			if err := insertTestimonial(ctx, tx, &testimonials[i]); err != nil {
				return catalog.SeedResult{}, fmt.Errorf("testimonial %q: %w", testimonials[i].Name, err)
			}
		}
		result.Testimonials = len(testimonials)
	}

	if err := tx.Commit(); err != nil {
		return catalog.SeedResult{}, fmt.Errorf("failed to commit seed: %w", err)
	}
	return result, nil
}
