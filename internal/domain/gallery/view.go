package gallery

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultPageSize is the number of projects shown per page.
const DefaultPageSize = 6

// DefaultQuery is the state of a freshly opened gallery.
func DefaultQuery() Query {
	return Query{
		Category: CategoryAll,
		Sort:     SortDate,
		Page:     1,
		PageSize: DefaultPageSize,
	}
}

func (q Query) normalized() Query {
	if q.Category == "" {
		q.Category = CategoryAll
	}
	if q.Sort == "" {
		q.Sort = SortDate
	}
	if q.PageSize <= 0 {
		q.PageSize = DefaultPageSize
	}
	if q.Page < 1 {
		q.Page = 1
	}
	return q
}

// TotalPages returns the page count for n matches, never less than one.
func TotalPages(n, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return max(1, (n+pageSize-1)/pageSize)
}

// Compute derives the visible view from the full item list. It filters by
// category, then by search term, sorts, and finally slices out the
// requested page, clamped into range. items is not modified.
func Compute(items []Item, q Query) View {
	q = q.normalized()
	term := strings.ToLower(strings.TrimSpace(q.Search))

	matched := make([]Item, 0, len(items))
	for _, item := range items {
		if q.Category != CategoryAll && item.Category != q.Category {
			continue
		}
		if term != "" && !item.MatchesTerm(term) {
			continue
		}
		matched = append(matched, item.clone())
	}

	sortItems(matched, q.Sort)

	totalPages := TotalPages(len(matched), q.PageSize)
	page := min(q.Page, totalPages)
	start := (page - 1) * q.PageSize
	end := min(start+q.PageSize, len(matched))

	visible := make([]Item, 0, end-start)
	visible = append(visible, matched[start:end]...)

	q.Page = page
	return View{
		Items:       visible,
		TotalPages:  totalPages,
		CurrentPage: page,
		MatchCount:  len(matched),
		Query:       q,
	}
}

// sortItems orders items in place. All orderings are stable, so ties keep
// the source order.
func sortItems(items []Item, key SortKey) {
	switch key {
	case SortName:
		col := collate.New(language.English)
		slices.SortStableFunc(items, func(a, b Item) int {
			return col.CompareString(a.Title, b.Title)
		})
	case SortCategory:
		col := collate.New(language.English)
		slices.SortStableFunc(items, func(a, b Item) int {
			if c := col.CompareString(a.Category.Label(), b.Category.Label()); c != 0 {
				return c
			}
			return col.CompareString(a.Title, b.Title)
		})
	case SortStars:
		slices.SortStableFunc(items, func(a, b Item) int {
			return cmp.Compare(b.Stars, a.Stars)
		})
	default:
		slices.SortStableFunc(items, func(a, b Item) int {
			return cmp.Compare(dayKey(b.Date), dayKey(a.Date))
		})
	}
}

// dayKey reduces t to its calendar date.
func dayKey(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}
