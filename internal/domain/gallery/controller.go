// Package gallery implements the filterable, sortable project list.
package gallery

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/rpggio/showcase/internal/notify"
)

// Controller owns the gallery items and query and keeps the derived view
// current. Every mutation rebuilds the view from the full item list.
type Controller struct {
	mu    sync.Mutex
	items []Item
	query Query
	view  View

	changes notify.Dispatcher[View]
	logger  *slog.Logger
}

// NewController creates a controller over items with the given starting
// query. Zero query fields take their defaults.
func NewController(items []Item, query Query, logger *slog.Logger) (*Controller, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	query = query.normalized()
	if err := validateQuery(query); err != nil {
		return nil, err
	}

	c := &Controller{query: query, logger: logger}
	if err := c.replaceItems(items); err != nil {
		return nil, err
	}
	c.view = Compute(c.items, c.query)
	c.query = c.view.Query
	return c, nil
}

// OnChange subscribes fn to view updates. The returned func unsubscribes.
func (c *Controller) OnChange(fn func(View)) func() {
	return c.changes.Subscribe(fn)
}

// View returns the current derived view.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// Query returns the current query.
func (c *Controller) Query() Query {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Items returns a copy of the full source list in insertion order.
func (c *Controller) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Item, len(c.items))
	for i, item := range c.items {
		out[i] = item.clone()
	}
	return out
}

// Item looks up a single item by id.
func (c *Controller) Item(id int64) (Item, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range c.items {
		if item.ID == id {
			return item.clone(), true
		}
	}
	return Item{}, false
}

// SetFilter selects a category, or CategoryAll, and returns to page one.
func (c *Controller) SetFilter(category Category) error {
	if category != CategoryAll && !category.Valid() {
		return fmt.Errorf("%w: category %q", ErrInvalidQuery, category)
	}
	c.update(func(q *Query) {
		q.Category = category
		q.Page = 1
	})
	return nil
}

// SetSearchTerm sets the case-insensitive search term and returns to page
// one. An empty term matches everything.
func (c *Controller) SetSearchTerm(term string) {
	c.update(func(q *Query) {
		q.Search = term
		q.Page = 1
	})
}

// SetSort selects the ordering. The current page is kept, clamped if needed.
func (c *Controller) SetSort(key SortKey) error {
	if !key.Valid() {
		return fmt.Errorf("%w: sort %q", ErrInvalidQuery, key)
	}
	c.update(func(q *Query) { q.Sort = key })
	return nil
}

// SetPage moves to page n, clamped into [1, TotalPages]. It returns the
// page actually selected.
func (c *Controller) SetPage(n int) int {
	c.update(func(q *Query) { q.Page = max(n, 1) })
	return c.View().CurrentPage
}

// Apply replaces the whole query. Zero fields take their defaults, so a
// query naming only a category lands on page one. Unknown categories or
// sort keys are rejected without changing anything.
func (c *Controller) Apply(q Query) (View, error) {
	q = q.normalized()
	if err := validateQuery(q); err != nil {
		return c.View(), err
	}
	c.update(func(cur *Query) { *cur = q })
	return c.View(), nil
}

// Update derives a new query from the current one and recomputes once.
// The result is validated like Apply; on error nothing changes. fn runs
// under the controller lock and must not call back into it.
func (c *Controller) Update(fn func(Query) Query) (View, error) {
	c.mu.Lock()
	q := fn(c.query).normalized()
	if err := validateQuery(q); err != nil {
		view := c.view
		c.mu.Unlock()
		return view, err
	}
	c.query = q
	c.recomputeLocked()
	view := c.view
	c.mu.Unlock()

	c.changes.Flush()
	return view, nil
}

// Recompute rebuilds the view from the current inputs and notifies
// subscribers.
func (c *Controller) Recompute() View {
	c.update(func(*Query) {})
	return c.View()
}

// SetItems replaces the source list. Items must have unique ids.
func (c *Controller) SetItems(items []Item) error {
	c.mu.Lock()
	if err := c.replaceItems(items); err != nil {
		c.mu.Unlock()
		return err
	}
	c.recomputeLocked()
	c.mu.Unlock()

	c.changes.Flush()
	return nil
}

// Merge applies enrichments to matching items and recomputes. Unknown item
// ids are skipped. It returns the number of items updated.
func (c *Controller) Merge(updates []Enrichment) int {
	if len(updates) == 0 {
		return 0
	}

	c.mu.Lock()
	byID := make(map[int64]int, len(c.items))
	for i, item := range c.items {
		byID[item.ID] = i
	}
	merged := 0
	for _, u := range updates {
		i, ok := byID[u.ItemID]
		if !ok {
			continue
		}
		c.items[i] = u.Apply(c.items[i])
		merged++
	}
	if merged > 0 {
		c.recomputeLocked()
	}
	c.mu.Unlock()

	c.changes.Flush()
	if merged > 0 {
		c.logger.Debug("gallery items enriched", "count", merged)
	}
	return merged
}

func (c *Controller) update(mutate func(*Query)) {
	c.mu.Lock()
	mutate(&c.query)
	c.recomputeLocked()
	c.mu.Unlock()

	c.changes.Flush()
}

func (c *Controller) recomputeLocked() {
	c.view = Compute(c.items, c.query)
	c.query = c.view.Query
	c.changes.Enqueue(c.view)
}

func (c *Controller) replaceItems(items []Item) error {
	seen := make(map[int64]struct{}, len(items))
	copied := make([]Item, 0, len(items))
	for _, item := range items {
		if _, dup := seen[item.ID]; dup {
			return fmt.Errorf("%w: %d", ErrDuplicateID, item.ID)
		}
		seen[item.ID] = struct{}{}
		copied = append(copied, item.clone())
	}
	c.items = copied
	return nil
}

func validateQuery(q Query) error {
	if q.Category != CategoryAll && !q.Category.Valid() {
		return fmt.Errorf("%w: category %q", ErrInvalidQuery, q.Category)
	}
	if !q.Sort.Valid() {
		return fmt.Errorf("%w: sort %q", ErrInvalidQuery, q.Sort)
	}
	return nil
}
