package gallery

import (
	"strings"
	"time"
)

// Category groups projects in the gallery.
type Category string

const (
	CategoryAll    Category = "all"
	CategoryWeb    Category = "web"
	CategoryMobile Category = "mobile"
	CategoryDesign Category = "design"
	CategoryOther  Category = "other"
)

// Categories lists the concrete categories in display order.
var Categories = []Category{CategoryWeb, CategoryMobile, CategoryDesign, CategoryOther}

// Valid reports whether c names a concrete category.
func (c Category) Valid() bool {
	switch c {
	case CategoryWeb, CategoryMobile, CategoryDesign, CategoryOther:
		return true
	}
	return false
}

// Label returns the human-readable category name.
func (c Category) Label() string {
	switch c {
	case CategoryWeb:
		return "Web App"
	case CategoryMobile:
		return "Mobile App"
	case CategoryDesign:
		return "UI/UX Design"
	case CategoryOther:
		return "Other"
	case CategoryAll:
		return "All"
	}
	return string(c)
}

// SortKey selects the gallery ordering.
type SortKey string

const (
	SortDate     SortKey = "date"
	SortName     SortKey = "name"
	SortCategory SortKey = "category"
	SortStars    SortKey = "stars"
)

// Valid reports whether k is a known sort key.
func (k SortKey) Valid() bool {
	switch k {
	case SortDate, SortName, SortCategory, SortStars:
		return true
	}
	return false
}

// Item is a portfolio project.
type Item struct {
	ID          int64      `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Image       string     `json:"image,omitempty" yaml:"image"`
	Category    Category   `json:"category" yaml:"category"`
	Tags        []string   `json:"tags" yaml:"tags"`
	LiveURL     string     `json:"live_url,omitempty" yaml:"live_url"`
	RepoURL     string     `json:"repo_url,omitempty" yaml:"repo_url"`
	Featured    bool       `json:"featured" yaml:"featured"`
	Date        time.Time  `json:"date" yaml:"date"`
	Stars       int        `json:"stars" yaml:"stars"`
	Forks       int        `json:"forks" yaml:"forks"`
	Language    string     `json:"language,omitempty" yaml:"language"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty" yaml:"updated_at"`
}

// MatchesTerm reports whether the lower-cased term occurs within the
// title, the description or a single tag. Fields are matched one at a
// time, so a term never spans two of them.
func (i Item) MatchesTerm(term string) bool {
	if strings.Contains(strings.ToLower(i.Title), term) ||
		strings.Contains(strings.ToLower(i.Description), term) {
		return true
	}
	for _, tag := range i.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

func (i Item) clone() Item {
	if i.Tags != nil {
		i.Tags = append([]string(nil), i.Tags...)
	}
	if i.UpdatedAt != nil {
		t := *i.UpdatedAt
		i.UpdatedAt = &t
	}
	return i
}

// Enrichment carries externally sourced fields for one item. Nil or empty
// fields leave the item's value as is.
type Enrichment struct {
	ItemID    int64      `json:"item_id"`
	Stars     *int       `json:"stars,omitempty"`
	Forks     *int       `json:"forks,omitempty"`
	Language  string     `json:"language,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Apply returns item with the enrichment merged in.
func (e Enrichment) Apply(item Item) Item {
	if e.Stars != nil {
		item.Stars = *e.Stars
	}
	if e.Forks != nil {
		item.Forks = *e.Forks
	}
	if e.Language != "" {
		item.Language = e.Language
	}
	if e.UpdatedAt != nil {
		t := *e.UpdatedAt
		item.UpdatedAt = &t
	}
	return item
}

// Query holds the gallery inputs.
type Query struct {
	Category Category `json:"category"`
	Search   string   `json:"search"`
	Sort     SortKey  `json:"sort"`
	Page     int      `json:"page"`
	PageSize int      `json:"page_size"`
}

// View is the derived, visible slice of the gallery. Views are shared
// snapshots and must be treated as read-only.
type View struct {
	Items       []Item `json:"items"`
	TotalPages  int    `json:"total_pages"`
	CurrentPage int    `json:"current_page"`
	MatchCount  int    `json:"match_count"`
	Query       Query  `json:"query"`
}
