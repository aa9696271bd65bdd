package mocks

import (
	"context"

	"github.com/rpggio/showcase/internal/domain/activity"
	"github.com/rpggio/showcase/internal/domain/catalog"
	"github.com/rpggio/showcase/internal/domain/gallery"
	"github.com/stretchr/testify/mock"
)

// ItemRepository is a mock for catalog.ItemRepository.
type ItemRepository struct {
	mock.Mock
}

func (m *ItemRepository) Create(ctx context.Context, item *gallery.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *ItemRepository) Get(ctx context.Context, id int64) (*gallery.Item, error) {
	args := m.Called(ctx, id)
	if item, ok := args.Get(0).(*gallery.Item); ok {
		return item, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ItemRepository) List(ctx context.Context) ([]gallery.Item, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]gallery.Item); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ItemRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *ItemRepository) SaveEnrichment(ctx context.Context, e gallery.Enrichment) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

// TestimonialRepository is a mock for catalog.TestimonialRepository.
type TestimonialRepository struct {
	mock.Mock
}

func (m *TestimonialRepository) Create(ctx context.Context, t *catalog.Testimonial) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *TestimonialRepository) List(ctx context.Context) ([]catalog.Testimonial, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]catalog.Testimonial); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// SeedRepository is a mock for catalog.SeedRepository.
type SeedRepository struct {
	mock.Mock
}

func (m *SeedRepository) Seed(ctx context.Context, items []gallery.Item, testimonials []catalog.Testimonial) (catalog.SeedResult, error) {
	args := m.Called(ctx, items, testimonials)
	return args.Get(0).(catalog.SeedResult), args.Error(1)
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, entry *activity.ActivityEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]activity.ActivityEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
