package mcp

import (
	"time"

	"github.com/rpggio/showcase/internal/domain/activity"
	"github.com/rpggio/showcase/internal/domain/carousel"
	"github.com/rpggio/showcase/internal/domain/catalog"
	"github.com/rpggio/showcase/internal/domain/gallery"
)

const dateLayout = "2006-01-02"

type EmptyParams struct{}

type NavigateParams struct {
	Action string `json:"action" jsonschema:"one of next, previous, goto, first, last"`
	Index  *int   `json:"index,omitempty" jsonschema:"target slide for goto, zero-based"`
}

type AutoPlayParams struct {
	Action     string `json:"action" jsonschema:"one of start, stop, toggle"`
	IntervalMS int    `json:"interval_ms,omitempty" jsonschema:"autoplay period in milliseconds when starting"`
}

type GalleryQueryParams struct {
	Category *string `json:"category,omitempty" jsonschema:"all, web, mobile, design or other; resets to page one"`
	Search   *string `json:"search,omitempty" jsonschema:"case-insensitive search term; resets to page one"`
	Sort     *string `json:"sort,omitempty" jsonschema:"date, name, category or stars"`
	Page     *int    `json:"page,omitempty" jsonschema:"page number, clamped into range"`
}

type GetProjectParams struct {
	ID int64 `json:"id" jsonschema:"project id"`
}

type RecentEventsParams struct {
	Type    string `json:"type,omitempty" jsonschema:"filter by event type"`
	Subject string `json:"subject,omitempty" jsonschema:"filter by subject, such as a project id"`
	Limit   int    `json:"limit,omitempty" jsonschema:"maximum number of events"`
}

type CarouselState struct {
	CurrentIndex int  `json:"current_index"`
	Total        int  `json:"total"`
	AutoPlaying  bool `json:"auto_playing"`
}

type Slide struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position,omitempty"`
	Content  string `json:"content"`
	Rating   int    `json:"rating"`
}

type CarouselStateResult struct {
	State  CarouselState `json:"state"`
	Slides []Slide       `json:"slides"`
}

type Project struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	LiveURL     string   `json:"live_url,omitempty"`
	RepoURL     string   `json:"repo_url,omitempty"`
	Featured    bool     `json:"featured"`
	Date        string   `json:"date"`
	Stars       int      `json:"stars"`
	Forks       int      `json:"forks"`
	Language    string   `json:"language,omitempty"`
	UpdatedAt   string   `json:"updated_at,omitempty"`
}

type GalleryQuery struct {
	Category string `json:"category"`
	Search   string `json:"search"`
	Sort     string `json:"sort"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

type GalleryView struct {
	Items       []Project    `json:"items"`
	TotalPages  int          `json:"total_pages"`
	CurrentPage int          `json:"current_page"`
	MatchCount  int          `json:"match_count"`
	Query       GalleryQuery `json:"query"`
}

type Event struct {
	ID        int64  `json:"id"`
	Type      string `json:"type"`
	Subject   string `json:"subject,omitempty"`
	Summary   string `json:"summary"`
	Details   string `json:"details,omitempty"`
	CreatedAt string `json:"created_at"`
}

type RecentEventsResult struct {
	Events []Event `json:"events"`
}

func toCarouselState(s carousel.State) CarouselState {
	return CarouselState{CurrentIndex: s.CurrentIndex, Total: s.Total, AutoPlaying: s.AutoPlaying}
}

func toSlides(list []catalog.Testimonial) []Slide {
	out := make([]Slide, 0, len(list))
	for _, t := range list {
		out = append(out, Slide{ID: t.ID, Name: t.Name, Position: t.Position, Content: t.Content, Rating: t.Rating})
	}
	return out
}

func toProject(item gallery.Item) Project {
	p := Project{
		ID:          item.ID,
		Title:       item.Title,
		Description: item.Description,
		Category:    string(item.Category),
		Tags:        item.Tags,
		LiveURL:     item.LiveURL,
		RepoURL:     item.RepoURL,
		Featured:    item.Featured,
		Date:        item.Date.Format(dateLayout),
		Stars:       item.Stars,
		Forks:       item.Forks,
		Language:    item.Language,
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if item.UpdatedAt != nil {
		p.UpdatedAt = item.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return p
}

func toGalleryView(v gallery.View) GalleryView {
	items := make([]Project, 0, len(v.Items))
	for _, item := range v.Items {
		items = append(items, toProject(item))
	}
	return GalleryView{
		Items:       items,
		TotalPages:  v.TotalPages,
		CurrentPage: v.CurrentPage,
		MatchCount:  v.MatchCount,
		Query: GalleryQuery{
			Category: string(v.Query.Category),
			Search:   v.Query.Search,
			Sort:     string(v.Query.Sort),
			Page:     v.Query.Page,
			PageSize: v.Query.PageSize,
		},
	}
}

func toEvent(e activity.ActivityEntry) Event {
	ev := Event{
		ID:        e.ID,
		Type:      string(e.ActivityType),
		Summary:   e.Summary,
		Details:   e.Details,
		CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
	}
	if e.Subject != nil {
		ev.Subject = *e.Subject
	}
	return ev
}
