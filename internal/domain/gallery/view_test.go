package gallery_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/rpggio/showcase/internal/domain/gallery"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ids(items []gallery.Item) []int64 {
	out := make([]int64, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

func sampleItems() []gallery.Item {
	return []gallery.Item{
		{ID: 1, Title: "E-Commerce Platform", Description: "Shopping cart and payments", Category: gallery.CategoryWeb, Tags: []string{"React", "Stripe"}, Date: day(2024, 1, 15), Stars: 45},
		{ID: 2, Title: "Task Management App", Description: "Real-time collaboration", Category: gallery.CategoryWeb, Tags: []string{"Vue.js", "Firebase"}, Date: day(2023, 12, 20), Stars: 32},
		{ID: 3, Title: "Fitness Tracking App", Description: "Workout planning", Category: gallery.CategoryMobile, Tags: []string{"React Native"}, Date: day(2023, 10, 5), Stars: 67},
		{ID: 4, Title: "brand refresh", Description: "Logo and palette", Category: gallery.CategoryDesign, Tags: []string{"Figma"}, Date: day(2023, 10, 5), Stars: 3},
		{ID: 5, Title: "CLI toolkit", Description: "Shell helpers", Category: gallery.CategoryOther, Tags: []string{"Go"}, Date: day(2023, 6, 1)},
	}
}

func TestCompute_DateThenName(t *testing.T) {
	items := []gallery.Item{
		{ID: 1, Title: "B", Date: day(2024, 1, 1), Category: gallery.CategoryWeb},
		{ID: 2, Title: "A", Date: day(2024, 2, 1), Category: gallery.CategoryWeb},
	}

	byDate := gallery.Compute(items, gallery.Query{Sort: gallery.SortDate})
	require.Equal(t, []int64{2, 1}, ids(byDate.Items))

	byName := gallery.Compute(items, gallery.Query{Sort: gallery.SortName})
	require.Equal(t, []int64{2, 1}, ids(byName.Items))
}

func TestCompute_DateTiesKeepSourceOrder(t *testing.T) {
	items := sampleItems()
	view := gallery.Compute(items, gallery.Query{Sort: gallery.SortDate, PageSize: 10})
	// Items 3 and 4 share a date and keep their source order.
	require.Equal(t, []int64{1, 2, 3, 4, 5}, ids(view.Items))

	items[2], items[3] = items[3], items[2]
	view = gallery.Compute(items, gallery.Query{Sort: gallery.SortDate, PageSize: 10})
	require.Equal(t, []int64{1, 2, 4, 3, 5}, ids(view.Items))
}

func TestCompute_NameUsesCollation(t *testing.T) {
	view := gallery.Compute(sampleItems(), gallery.Query{Sort: gallery.SortName, PageSize: 10})
	// Lower-case "brand refresh" sorts among the Bs, not after Z.
	require.Equal(t, []int64{4, 5, 1, 3, 2}, ids(view.Items))
}

func TestCompute_CategoryThenName(t *testing.T) {
	items := append(sampleItems(), gallery.Item{ID: 6, Title: "Admin Dashboard", Category: gallery.CategoryWeb, Date: day(2022, 1, 1)})
	view := gallery.Compute(items, gallery.Query{Sort: gallery.SortCategory, PageSize: 10})
	// Mobile App < Other < UI/UX Design < Web App; web items by title.
	require.Equal(t, []int64{3, 5, 4, 6, 1, 2}, ids(view.Items))
}

func TestCompute_Stars(t *testing.T) {
	view := gallery.Compute(sampleItems(), gallery.Query{Sort: gallery.SortStars, PageSize: 10})
	require.Equal(t, []int64{3, 1, 2, 4, 5}, ids(view.Items))
}

func TestCompute_FilterAndSearch(t *testing.T) {
	items := sampleItems()

	web := gallery.Compute(items, gallery.Query{Category: gallery.CategoryWeb})
	require.Equal(t, []int64{1, 2}, ids(web.Items))

	react := gallery.Compute(items, gallery.Query{Search: "REACT"})
	require.Equal(t, []int64{1, 3}, ids(react.Items))

	webReact := gallery.Compute(items, gallery.Query{Category: gallery.CategoryWeb, Search: "react"})
	require.Equal(t, []int64{1}, ids(webReact.Items))

	byDescription := gallery.Compute(items, gallery.Query{Search: "palette"})
	require.Equal(t, []int64{4}, ids(byDescription.Items))
}

func TestCompute_SearchStaysWithinOneField(t *testing.T) {
	items := []gallery.Item{{ID: 1, Title: "Weather Dashboard", Description: "Forecasts", Tags: []string{"Vue", "API"}, Category: gallery.CategoryWeb}}

	require.Empty(t, gallery.Compute(items, gallery.Query{Search: "dashboard\nforecasts"}).Items)
	require.Empty(t, gallery.Compute(items, gallery.Query{Search: "vue\napi"}).Items)
	require.Equal(t, []int64{1}, ids(gallery.Compute(items, gallery.Query{Search: "FORECAST"}).Items))
	require.Equal(t, []int64{1}, ids(gallery.Compute(items, gallery.Query{Search: "api"}).Items))
}

func TestCompute_NoMatches(t *testing.T) {
	view := gallery.Compute(sampleItems(), gallery.Query{Search: "nothing like this", Page: 4})
	require.NotNil(t, view.Items)
	require.Empty(t, view.Items)
	require.Equal(t, 1, view.TotalPages)
	require.Equal(t, 1, view.CurrentPage)
	require.Zero(t, view.MatchCount)

	empty := gallery.Compute(nil, gallery.DefaultQuery())
	require.Equal(t, 1, empty.TotalPages)
	require.Equal(t, 1, empty.CurrentPage)
}

func TestCompute_PaginationClamps(t *testing.T) {
	items := make([]gallery.Item, 13)
	for i := range items {
		items[i] = gallery.Item{ID: int64(i + 1), Title: fmt.Sprintf("Item %02d", i+1), Category: gallery.CategoryWeb, Date: day(2024, 1, 1).AddDate(0, 0, -i)}
	}

	view := gallery.Compute(items, gallery.Query{PageSize: 6, Page: 5})
	require.Equal(t, 3, view.TotalPages)
	require.Equal(t, 3, view.CurrentPage)
	require.Equal(t, []int64{13}, ids(view.Items))
	require.Equal(t, 13, view.MatchCount)

	second := gallery.Compute(items, gallery.Query{PageSize: 6, Page: 2})
	require.Equal(t, []int64{7, 8, 9, 10, 11, 12}, ids(second.Items))
}

func TestCompute_Deterministic(t *testing.T) {
	items := sampleItems()
	queries := []gallery.Query{
		gallery.DefaultQuery(),
		{Category: gallery.CategoryWeb, Sort: gallery.SortName, PageSize: 1, Page: 2},
		{Search: "app", Sort: gallery.SortCategory, PageSize: 2},
		{Sort: gallery.SortStars, PageSize: 3, Page: 9},
	}
	for _, q := range queries {
		require.Equal(t, gallery.Compute(items, q), gallery.Compute(items, q))
	}
}

func TestCompute_DoesNotModifySource(t *testing.T) {
	items := sampleItems()
	before := sampleItems()

	view := gallery.Compute(items, gallery.Query{Sort: gallery.SortName, PageSize: 10})
	view.Items[0].Tags[0] = "changed"

	require.Equal(t, before, items)
}

func TestTotalPages(t *testing.T) {
	require.Equal(t, 1, gallery.TotalPages(0, 6))
	require.Equal(t, 1, gallery.TotalPages(6, 6))
	require.Equal(t, 2, gallery.TotalPages(7, 6))
	require.Equal(t, 3, gallery.TotalPages(13, 6))
}
