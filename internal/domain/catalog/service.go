// Package catalog manages the portfolio's projects and testimonials.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/showcase/internal/domain/gallery"
	"github.com/rpggio/showcase/internal/repository"
)

// Service handles catalogue operations.
type Service struct {
	items        ItemRepository
	testimonials TestimonialRepository
	seeds        SeedRepository
	logger       *slog.Logger
}

// NewService creates a new catalogue service.
func NewService(items ItemRepository, testimonials TestimonialRepository, seeds SeedRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{items: items, testimonials: testimonials, seeds: seeds, logger: logger}
}

// Items returns all items in insertion order.
func (s *Service) Items(ctx context.Context) ([]gallery.Item, error) {
	items, err := s.items.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	return items, nil
}

// Item fetches an item by id.
func (s *Service) Item(ctx context.Context, id int64) (*gallery.Item, error) {
	item, err := s.items.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// CreateItem validates and stores a new item.
func (s *Service) CreateItem(ctx context.Context, item gallery.Item) (*gallery.Item, error) {
	item.Title = strings.TrimSpace(item.Title)
	if err := validateItem(&item); err != nil {
		return nil, err
	}
	if err := s.items.Create(ctx, &item); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateItem, item.ID)
		}
		return nil, fmt.Errorf("creating item: %w", err)
	}
	return &item, nil
}

// Testimonials returns testimonials in slide order.
func (s *Service) Testimonials(ctx context.Context) ([]Testimonial, error) {
	list, err := s.testimonials.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing testimonials: %w", err)
	}
	return list, nil
}

// CreateTestimonial validates and stores a new testimonial.
func (s *Service) CreateTestimonial(ctx context.Context, t Testimonial) (*Testimonial, error) {
	t.Name = strings.TrimSpace(t.Name)
	if err := validateTestimonial(&t); err != nil {
		return nil, err
	}
	if strings.TrimSpace(t.ID) == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	if err := s.testimonials.Create(ctx, &t); err != nil {
		return nil, fmt.Errorf("creating testimonial: %w", err)
	}
	return &t, nil
}

// Seed loads seed content into whichever of the item and testimonial
// tables are still empty. The content is validated up front and written in
// one transaction. It reports whether anything was written.
func (s *Service) Seed(ctx context.Context, seed Seed) (bool, error) {
	items := make([]gallery.Item, 0, len(seed.Items))
	for _, item := range seed.Items {
		item.Title = strings.TrimSpace(item.Title)
		if err := validateItem(&item); err != nil {
			return false, fmt.Errorf("seeding item %d: %w", item.ID, err)
		}
		items = append(items, item)
	}

	now := time.Now()
	testimonials := make([]Testimonial, 0, len(seed.Testimonials))
	for i, t := range seed.Testimonials {
		t.Name = strings.TrimSpace(t.Name)
		if err := validateTestimonial(&t); err != nil {
			return false, fmt.Errorf("seeding testimonial %q: %w", t.Name, err)
		}
		if strings.TrimSpace(t.ID) == "" {
			t.ID = uuid.NewString()
		}
		if t.SortOrder == 0 {
			t.SortOrder = i + 1
		}
		if t.CreatedAt.IsZero() {
			t.CreatedAt = now
		}
		testimonials = append(testimonials, t)
	}

	result, err := s.seeds.Seed(ctx, items, testimonials)
	if err != nil {
		return false, fmt.Errorf("seeding catalog: %w", err)
	}
	if result.Items == 0 && result.Testimonials == 0 {
		return false, nil
	}

	s.logger.Info("catalog seeded", "items", result.Items, "testimonials", result.Testimonials)
	return true, nil
}

// SaveEnrichment persists externally sourced fields for an item.
func (s *Service) SaveEnrichment(ctx context.Context, e gallery.Enrichment) error {
	if err := s.items.SaveEnrichment(ctx, e); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrItemNotFound
		}
		return fmt.Errorf("saving enrichment: %w", err)
	}
	return nil
}
