package gallery_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/rpggio/showcase/internal/domain/gallery"
	"github.com/stretchr/testify/require"
)

func newGallery(t *testing.T, items []gallery.Item) *gallery.Controller {
	t.Helper()
	c, err := gallery.NewController(items, gallery.Query{}, nil)
	require.NoError(t, err)
	return c
}

func TestNewController_Defaults(t *testing.T) {
	c := newGallery(t, sampleItems())
	q := c.Query()
	require.Equal(t, gallery.CategoryAll, q.Category)
	require.Equal(t, gallery.SortDate, q.Sort)
	require.Equal(t, 1, q.Page)
	require.Equal(t, gallery.DefaultPageSize, q.PageSize)
	require.Len(t, c.View().Items, 5)
}

func TestNewController_RejectsDuplicateIDs(t *testing.T) {
	items := []gallery.Item{{ID: 1, Title: "a"}, {ID: 1, Title: "b"}}
	_, err := gallery.NewController(items, gallery.Query{}, nil)
	require.ErrorIs(t, err, gallery.ErrDuplicateID)
}

func TestNewController_RejectsInvalidQuery(t *testing.T) {
	_, err := gallery.NewController(nil, gallery.Query{Sort: "rating"}, nil)
	require.ErrorIs(t, err, gallery.ErrInvalidQuery)
}

func TestSetFilterAndSearch_ResetPage(t *testing.T) {
	items := make([]gallery.Item, 13)
	for i := range items {
		items[i] = gallery.Item{ID: int64(i + 1), Title: fmt.Sprintf("Item %02d", i+1), Category: gallery.CategoryWeb, Date: day(2024, 1, 1)}
	}
	c := newGallery(t, items)

	require.Equal(t, 3, c.SetPage(3))
	require.NoError(t, c.SetFilter(gallery.CategoryWeb))
	require.Equal(t, 1, c.View().CurrentPage)

	c.SetPage(2)
	c.SetSearchTerm("item")
	require.Equal(t, 1, c.View().CurrentPage)
}

func TestSetPage_Clamps(t *testing.T) {
	items := make([]gallery.Item, 13)
	for i := range items {
		items[i] = gallery.Item{ID: int64(i + 1), Title: fmt.Sprintf("Item %02d", i+1), Category: gallery.CategoryOther, Date: day(2024, 1, 1)}
	}
	c := newGallery(t, items)

	view := c.View()
	require.Equal(t, 3, view.TotalPages)
	require.Equal(t, 3, c.SetPage(5))
	require.Equal(t, 3, c.View().Query.Page)
	require.Equal(t, 1, c.SetPage(0))
	require.Equal(t, 1, c.SetPage(-4))
}

func TestSetSort_KeepsPage(t *testing.T) {
	items := make([]gallery.Item, 8)
	for i := range items {
		items[i] = gallery.Item{ID: int64(i + 1), Title: fmt.Sprintf("Item %02d", i+1), Category: gallery.CategoryWeb, Date: day(2024, 1, 1)}
	}
	c := newGallery(t, items)
	c.SetPage(2)

	require.NoError(t, c.SetSort(gallery.SortName))
	require.Equal(t, 2, c.View().CurrentPage)
}

func TestInvalidInputs_LeaveStateUnchanged(t *testing.T) {
	c := newGallery(t, sampleItems())
	var notified int
	c.OnChange(func(gallery.View) { notified++ })
	before := c.View()

	require.ErrorIs(t, c.SetFilter("games"), gallery.ErrInvalidQuery)
	require.ErrorIs(t, c.SetSort("rating"), gallery.ErrInvalidQuery)
	_, err := c.Apply(gallery.Query{Category: "games"})
	require.ErrorIs(t, err, gallery.ErrInvalidQuery)

	require.Equal(t, before, c.View())
	require.Zero(t, notified)
}

func TestEmptySearchAndAllFilter_ShowEverything(t *testing.T) {
	c := newGallery(t, sampleItems())
	require.NoError(t, c.SetFilter(gallery.CategoryMobile))
	c.SetSearchTerm("fitness")

	c.SetSearchTerm("")
	require.NoError(t, c.SetFilter(gallery.CategoryAll))

	expected := gallery.Compute(sampleItems(), gallery.Query{Sort: gallery.SortDate, PageSize: 100})
	require.Equal(t, ids(expected.Items), ids(c.View().Items))
	require.Equal(t, 5, c.View().MatchCount)
}

func TestOnChange_DeliversEachRecompute(t *testing.T) {
	c := newGallery(t, sampleItems())
	var views []gallery.View
	unsubscribe := c.OnChange(func(v gallery.View) { views = append(views, v) })

	require.NoError(t, c.SetFilter(gallery.CategoryWeb))
	c.SetSearchTerm("task")
	c.Recompute()
	unsubscribe()
	c.SetSearchTerm("")

	require.Len(t, views, 3)
	require.Equal(t, []int64{1, 2}, ids(views[0].Items))
	require.Equal(t, []int64{2}, ids(views[1].Items))
	require.Equal(t, views[1], views[2])
}

func TestRecompute_Deterministic(t *testing.T) {
	c := newGallery(t, sampleItems())
	_, err := c.Apply(gallery.Query{Category: gallery.CategoryWeb, Search: "a", Sort: gallery.SortName, PageSize: 1, Page: 2})
	require.NoError(t, err)

	require.Equal(t, c.Recompute(), c.Recompute())
}

func TestApply_SetsAllFields(t *testing.T) {
	c := newGallery(t, sampleItems())
	view, err := c.Apply(gallery.Query{Category: gallery.CategoryWeb, Sort: gallery.SortStars, PageSize: 1, Page: 2})
	require.NoError(t, err)
	require.Equal(t, []int64{2}, ids(view.Items))
	require.Equal(t, 2, view.TotalPages)
	require.Equal(t, gallery.SortStars, c.Query().Sort)
}

func TestMerge_IsAdditive(t *testing.T) {
	c := newGallery(t, sampleItems())
	stars := 100
	updated := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	merged := c.Merge([]gallery.Enrichment{
		{ItemID: 2, Stars: &stars, UpdatedAt: &updated},
		{ItemID: 99, Stars: &stars},
	})
	require.Equal(t, 1, merged)

	item, ok := c.Item(2)
	require.True(t, ok)
	require.Equal(t, 100, item.Stars)
	require.Equal(t, "Task Management App", item.Title)
	require.Empty(t, item.Language)
	require.Equal(t, updated, *item.UpdatedAt)

	require.NoError(t, c.SetSort(gallery.SortStars))
	require.Equal(t, int64(2), c.View().Items[0].ID)

	require.Zero(t, c.Merge(nil))
}

func TestSetItems_ReplacesSource(t *testing.T) {
	c := newGallery(t, sampleItems())
	require.NoError(t, c.SetItems([]gallery.Item{{ID: 9, Title: "Only", Category: gallery.CategoryWeb}}))
	require.Equal(t, []int64{9}, ids(c.View().Items))

	require.ErrorIs(t, c.SetItems([]gallery.Item{{ID: 1}, {ID: 1}}), gallery.ErrDuplicateID)
	require.Equal(t, []int64{9}, ids(c.View().Items))
}

func TestItems_ReturnsCopies(t *testing.T) {
	c := newGallery(t, sampleItems())
	items := c.Items()
	items[0].Tags[0] = "changed"

	item, ok := c.Item(1)
	require.True(t, ok)
	require.Equal(t, "React", item.Tags[0])

	_, ok = c.Item(404)
	require.False(t, ok)
}

func TestUpdate_SingleRecompute(t *testing.T) {
	c := newGallery(t, sampleItems())
	c.SetPage(1)
	var views []gallery.View
	c.OnChange(func(v gallery.View) { views = append(views, v) })

	view, err := c.Update(func(q gallery.Query) gallery.Query {
		q.Category = gallery.CategoryWeb
		q.Sort = gallery.SortName
		q.Search = "a"
		return q
	})
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, view, views[0])
	require.Equal(t, []int64{1, 2}, ids(view.Items))

	_, err = c.Update(func(q gallery.Query) gallery.Query {
		q.Sort = "rating"
		return q
	})
	require.ErrorIs(t, err, gallery.ErrInvalidQuery)
	require.Len(t, views, 1)
	require.Equal(t, gallery.SortName, c.Query().Sort)
}
