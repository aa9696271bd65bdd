package mcp

import (
	"context"
	"fmt"
	"strconv"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/showcase/internal/domain/activity"
	"github.com/rpggio/showcase/internal/domain/carousel"
	"github.com/rpggio/showcase/internal/domain/catalog"
	"github.com/rpggio/showcase/internal/domain/gallery"
)

const maxEventLimit = 200

type toolHandlers struct {
	cfg Config
}

func registerTools(server *sdkmcp.Server, cfg Config) {
	h := &toolHandlers{cfg: cfg}

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "carousel_state",
		Description: "Get the current testimonial slide, the slide count, whether autoplay is running, and the slides",
	}, h.carouselState)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "carousel_navigate",
		Description: "Move the testimonial carousel: next, previous, first, last, or goto with an index",
	}, h.carouselNavigate)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "carousel_autoplay",
		Description: "Start, stop or toggle carousel autoplay",
	}, h.carouselAutoPlay)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "gallery_view",
		Description: "Get the visible page of projects and the active filter, search, sort and page",
	}, h.galleryView)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "gallery_query",
		Description: "Change the gallery query. Only the fields provided are changed",
	}, h.galleryQuery)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_project",
		Description: "Get a single project by id",
	}, h.getProject)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "recent_events",
		Description: "List recent analytics events, newest first",
	}, h.recentEvents)
}

func (h *toolHandlers) carouselSnapshot() CarouselStateResult {
	return CarouselStateResult{
		State:  toCarouselState(h.cfg.Carousel.State()),
		Slides: toSlides(h.cfg.Slides),
	}
}

func (h *toolHandlers) carouselState(_ context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, CarouselStateResult, error) {
	return nil, h.carouselSnapshot(), nil
}

func (h *toolHandlers) carouselNavigate(_ context.Context, _ *sdkmcp.CallToolRequest, in NavigateParams) (*sdkmcp.CallToolResult, CarouselState, error) {
	c := h.cfg.Carousel
	switch in.Action {
	case "next":
		c.Next()
	case "previous":
		c.Previous()
	case "first":
		if err := c.GoTo(0); err != nil {
			return nil, CarouselState{}, MapError(err)
		}
	case "last":
		if err := c.GoTo(c.State().Total - 1); err != nil {
			return nil, CarouselState{}, MapError(err)
		}
	case "goto":
		if in.Index == nil {
			return nil, CarouselState{}, MapError(fmt.Errorf("%w: goto requires index", ErrInvalidParams))
		}
		if err := c.GoTo(*in.Index); err != nil {
			return nil, CarouselState{}, MapError(err)
		}
	default:
		return nil, CarouselState{}, MapError(fmt.Errorf("%w: unknown action %q", ErrInvalidParams, in.Action))
	}
	return nil, toCarouselState(c.State()), nil
}

func (h *toolHandlers) carouselAutoPlay(_ context.Context, _ *sdkmcp.CallToolRequest, in AutoPlayParams) (*sdkmcp.CallToolResult, CarouselState, error) {
	c := h.cfg.Carousel
	interval, err := carousel.IntervalFromMillis(in.IntervalMS)
	if err != nil {
		return nil, CarouselState{}, MapError(err)
	}
	switch in.Action {
	case "start":
		if err := c.StartAutoPlay(interval); err != nil {
			return nil, CarouselState{}, MapError(err)
		}
	case "stop":
		c.StopAutoPlay()
	case "toggle":
		c.ToggleAutoPlay()
	default:
		return nil, CarouselState{}, MapError(fmt.Errorf("%w: unknown action %q", ErrInvalidParams, in.Action))
	}
	return nil, toCarouselState(c.State()), nil
}

func (h *toolHandlers) galleryView(_ context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, GalleryView, error) {
	return nil, toGalleryView(h.cfg.Gallery.View()), nil
}

// galleryQuery merges the provided fields into the current query and
// applies them in one step. A new category or search term returns to page
// one unless a page is given.
func (h *toolHandlers) galleryQuery(ctx context.Context, _ *sdkmcp.CallToolRequest, in GalleryQueryParams) (*sdkmcp.CallToolResult, GalleryView, error) {
	g := h.cfg.Gallery
	if in.Category != nil {
		c := gallery.Category(*in.Category)
		if c != gallery.CategoryAll && !c.Valid() {
			return nil, GalleryView{}, MapError(fmt.Errorf("%w: category %q", gallery.ErrInvalidQuery, c))
		}
	}
	if in.Sort != nil && !gallery.SortKey(*in.Sort).Valid() {
		return nil, GalleryView{}, MapError(fmt.Errorf("%w: sort %q", gallery.ErrInvalidQuery, *in.Sort))
	}

	view, err := g.Update(func(q gallery.Query) gallery.Query {
		if in.Category != nil {
			q.Category = gallery.Category(*in.Category)
			q.Page = 1
		}
		if in.Search != nil {
			q.Search = *in.Search
			q.Page = 1
		}
		if in.Sort != nil {
			q.Sort = gallery.SortKey(*in.Sort)
		}
		if in.Page != nil {
			q.Page = max(*in.Page, 1)
		}
		return q
	})
	if err != nil {
		return nil, GalleryView{}, MapError(err)
	}
	if h.cfg.Activity != nil {
		h.cfg.Activity.Track(ctx, activity.TypeQueryChanged, "", "gallery query changed", view.Query)
	}
	return nil, toGalleryView(view), nil
}

func (h *toolHandlers) getProject(ctx context.Context, _ *sdkmcp.CallToolRequest, in GetProjectParams) (*sdkmcp.CallToolResult, Project, error) {
	item, ok := h.cfg.Gallery.Item(in.ID)
	if !ok {
		return nil, Project{}, MapError(fmt.Errorf("%w: %d", catalog.ErrItemNotFound, in.ID))
	}
	if h.cfg.Activity != nil {
		h.cfg.Activity.Track(ctx, activity.TypeProjectViewed, strconv.FormatInt(item.ID, 10), item.Title, nil)
	}
	return nil, toProject(item), nil
}

func (h *toolHandlers) recentEvents(ctx context.Context, _ *sdkmcp.CallToolRequest, in RecentEventsParams) (*sdkmcp.CallToolResult, RecentEventsResult, error) {
	if h.cfg.Activity == nil {
		return nil, RecentEventsResult{Events: []Event{}}, nil
	}
	if in.Limit < 0 {
		return nil, RecentEventsResult{}, MapError(fmt.Errorf("%w: limit must not be negative", ErrInvalidParams))
	}
	opts := activity.ListActivityOptions{Limit: min(in.Limit, maxEventLimit)}
	if in.Type != "" {
		typ := activity.ActivityType(in.Type)
		opts.ActivityType = &typ
	}
	if in.Subject != "" {
		subject := in.Subject
		opts.Subject = &subject
	}

	entries, err := h.cfg.Activity.GetRecentActivity(ctx, opts)
	if err != nil {
		return nil, RecentEventsResult{}, MapError(err)
	}
	events := make([]Event, 0, len(entries))
	for _, e := range entries {
		events = append(events, toEvent(e))
	}
	return nil, RecentEventsResult{Events: events}, nil
}
