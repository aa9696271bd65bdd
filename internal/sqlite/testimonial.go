package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/rpggio/showcase/internal/domain/catalog"
	"github.com/rpggio/showcase/internal/repository"
)

var _ catalog.TestimonialRepository = (*TestimonialRepository)(nil)

// TestimonialRepository implements catalog.TestimonialRepository for SQLite
type TestimonialRepository struct {
	db *DB
}

// NewTestimonialRepository creates a new TestimonialRepository
func NewTestimonialRepository(db *DB) *TestimonialRepository {
	return &TestimonialRepository{db: db}
}

// Create inserts a new testimonial
func (r *TestimonialRepository) Create(ctx context.Context, t *catalog.Testimonial) error {
	return insertTestimonial(ctx, r.db, t)
}

func insertTestimonial(ctx context.Context, db execer, t *catalog.Testimonial) error {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO testimonials (id, name, position, content, rating, image, sort_order, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.ExecContext(ctx, query,
		t.ID,
		t.Name,
		t.Position,
		t.Content,
		t.Rating,
		t.Image,
		t.SortOrder,
		t.CreatedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to create testimonial: %w", err)
	}

	return nil
}

// List returns testimonials in slide order
func (r *TestimonialRepository) List(ctx context.Context) ([]catalog.Testimonial, error) {
	query := `
		SELECT id, name, position, content, rating, image, sort_order, created_at
		FROM testimonials
		ORDER BY sort_order ASC, created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list testimonials: %w", err)
	}
	defer rows.Close()

	list := []catalog.Testimonial{}
	for rows.Next() {
		var t catalog.Testimonial
		if err := rows.Scan(
			&t.ID,
			&t.Name,
			&t.Position,
			&t.Content,
			&t.Rating,
			&t.Image,
			&t.SortOrder,
			&t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan testimonial: %w", err)
		}
		list = append(list, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating testimonial rows: %w", err)
	}

	return list, nil
}
