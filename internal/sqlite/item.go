package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rpggio/showcase/internal/domain/catalog"
	"github.com/rpggio/showcase/internal/domain/gallery"
	"github.com/rpggio/showcase/internal/repository"
)

const dateLayout = "2006-01-02"

var _ catalog.ItemRepository = (*ItemRepository)(nil)

// ItemRepository implements catalog.ItemRepository for SQLite
type ItemRepository struct {
	db *DB
}

// NewItemRepository creates a new ItemRepository
func NewItemRepository(db *DB) *ItemRepository {
	return &ItemRepository{db: db}
}

const itemColumns = `
	id, title, description, image, category, tags, live_url, repo_url,
	featured, date, stars, forks, language, updated_at
`

// Create inserts a new item after the existing ones
func (r *ItemRepository) Create(ctx context.Context, item *gallery.Item) error {
	return insertItem(ctx, r.db, item)
}

func insertItem(ctx context.Context, db execer, item *gallery.Item) error {
	tags, err := json.Marshal(nonNilTags(item.Tags))
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}

	query := `
		INSERT INTO items (
			id, position, title, description, image, category, tags, live_url, repo_url,
			featured, date, stars, forks, language, updated_at
		) VALUES (
			?, (SELECT COALESCE(MAX(position), 0) + 1 FROM items), ?, ?, ?, ?, ?, ?, ?,
			?, ?, ?, ?, ?, ?
		)
	`

	_, err = db.ExecContext(ctx, query,
		item.ID,
		item.Title,
		item.Description,
		item.Image,
		item.Category,
		string(tags),
		item.LiveURL,
		item.RepoURL,
		item.Featured,
		item.Date.Format(dateLayout),
		item.Stars,
		item.Forks,
		item.Language,
		nullTime(item.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to create item: %w", err)
	}

	return nil
}

// Get retrieves an item by ID
func (r *ItemRepository) Get(ctx context.Context, id int64) (*gallery.Item, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id)
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

// List returns all items in insertion order
func (r *ItemRepository) List(ctx context.Context) ([]gallery.Item, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+itemColumns+` FROM items ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	items := []gallery.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating item rows: %w", err)
	}

	return items, nil
}

// Count returns the number of stored items
func (r *ItemRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return n, nil
}

// SaveEnrichment writes the non-empty enrichment fields onto an item
func (r *ItemRepository) SaveEnrichment(ctx context.Context, e gallery.Enrichment) error {
	query := `
		UPDATE items SET
			stars = COALESCE(?, stars),
			forks = COALESCE(?, forks),
			language = CASE WHEN ? = '' THEN language ELSE ? END,
			updated_at = COALESCE(?, updated_at)
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		nullInt(e.Stars),
		nullInt(e.Forks),
		e.Language, e.Language,
		nullTime(e.UpdatedAt),
		e.ItemID,
	)
	if err != nil {
		return fmt.Errorf("failed to save enrichment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*gallery.Item, error) {
	var item gallery.Item
	var tags, date string
	var updatedAt sql.NullTime

	if err := row.Scan(
		&item.ID,
		&item.Title,
		&item.Description,
		&item.Image,
		&item.Category,
		&tags,
		&item.LiveURL,
		&item.RepoURL,
		&item.Featured,
		&date,
		&item.Stars,
		&item.Forks,
		&item.Language,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(tags), &item.Tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags: %w", err)
	}
	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("failed to parse date: %w", err)
	}
	item.Date = parsed
	if updatedAt.Valid {
		t := updatedAt.Time.UTC()
		item.UpdatedAt = &t
	}

	return &item, nil
}

func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
