// Package app assembles the showcase service from configuration: storage,
// the carousel and gallery controllers, enrichment, metrics, the change
// stream and both the HTTP and MCP surfaces.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/showcase/internal/config"
	"github.com/rpggio/showcase/internal/domain/activity"
	"github.com/rpggio/showcase/internal/domain/carousel"
	"github.com/rpggio/showcase/internal/domain/catalog"
	"github.com/rpggio/showcase/internal/domain/gallery"
	"github.com/rpggio/showcase/internal/enrich"
	"github.com/rpggio/showcase/internal/mcp"
	"github.com/rpggio/showcase/internal/metrics"
	"github.com/rpggio/showcase/internal/sqlite"
	"github.com/rpggio/showcase/internal/transport"
)

// Version is reported by the MCP server.
const Version = "0.1.0"

// ErrNoTestimonials indicates the carousel has nothing to show.
var ErrNoTestimonials = errors.New("no testimonials to show")

// Overrides replaces collaborators that are normally built from config.
type Overrides struct {
	// Scheduler arms carousel timers. Defaults to the wall clock.
	Scheduler carousel.Scheduler
	// GitHub replaces the REST client used for enrichment.
	GitHub enrich.Source
}

// App is a fully wired service.
type App struct {
	DB       *sqlite.DB
	Catalog  *catalog.Service
	Activity *activity.Service
	Carousel *carousel.Controller
	Gallery  *gallery.Controller
	Enricher *enrich.Enricher
	Metrics  *metrics.Metrics
	Hub      *transport.Hub
	MCP      *sdkmcp.Server
	Slides   []catalog.Testimonial

	cfg    config.Config
	logger *slog.Logger
	stop   []func()
}

// New opens storage and wires every component. Close releases them.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger, ov Overrides) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}

	a := &App{DB: db, cfg: cfg, logger: logger}
	if err := a.wire(ctx, ov); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) wire(ctx context.Context, ov Overrides) error {
	cfg, logger := a.cfg, a.logger

	a.Catalog = catalog.NewService(
		sqlite.NewItemRepository(a.DB),
		sqlite.NewTestimonialRepository(a.DB),
		sqlite.NewSeedRepository(a.DB),
		logger,
	)
	a.Activity = activity.NewService(sqlite.NewActivityRepository(a.DB), logger)
	a.Metrics = metrics.New()

	if cfg.DB.Seed {
		seed, err := catalog.DefaultSeed()
		if err != nil {
			return err
		}
		seeded, err := a.Catalog.Seed(ctx, seed)
		if err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
		if seeded {
			logger.Info("catalog seeded")
		}
	}

	items, err := a.Catalog.Items(ctx)
	if err != nil {
		return err
	}
	a.Slides, err = a.Catalog.Testimonials(ctx)
	if err != nil {
		return err
	}
	if len(a.Slides) == 0 {
		return ErrNoTestimonials
	}

	a.Gallery, err = gallery.NewController(items, gallery.Query{PageSize: cfg.Gallery.PageSize}, logger)
	if err != nil {
		return fmt.Errorf("build gallery: %w", err)
	}
	a.Metrics.ObserveView(len(a.Gallery.View().Items), a.Gallery.View().MatchCount)
	a.Activity.Track(ctx, activity.TypeProjectsLoaded, "", fmt.Sprintf("%d projects loaded", len(items)), map[string]int{"count": len(items)})

	opts := carousel.DefaultOptions()
	opts.AutoPlay = cfg.Carousel.AutoPlay
	opts.Interval = cfg.Carousel.Interval
	opts.MobileInterval = cfg.Carousel.MobileInterval
	opts.MobileBreakpoint = cfg.Carousel.MobileBreakpoint
	opts.SwipeThreshold = cfg.Carousel.SwipeThreshold
	opts.Scheduler = ov.Scheduler
	a.Carousel, err = carousel.New(len(a.Slides), opts, logger)
	if err != nil {
		return fmt.Errorf("build carousel: %w", err)
	}
	a.stop = append(a.stop, a.Carousel.Close)
	a.Activity.Track(ctx, activity.TypeTestimonialsLoaded, "", fmt.Sprintf("%d testimonials loaded", len(a.Slides)), map[string]int{"count": len(a.Slides)})

	a.Hub = transport.NewHub(transport.HubOptions{
		AllowedOrigins: cfg.Transport.CORSOrigins,
		Snapshot:       a.snapshot,
		OnClientCount:  func(n int) { a.Metrics.StreamClients.Set(float64(n)) },
	}, logger)
	a.stop = append(a.stop, a.Hub.Close)

	a.stop = append(a.stop, a.Carousel.OnChange(a.onSlideChange))
	a.stop = append(a.stop, a.Carousel.OnStateChange(a.onCarouselState))
	a.stop = append(a.stop, a.Gallery.OnChange(a.onViewChange))

	if cfg.GitHub.Enabled {
		source := ov.GitHub
		if source == nil {
			source = enrich.NewClient(enrich.ClientConfig{
				BaseURL:           cfg.GitHub.APIURL,
				Token:             cfg.GitHub.Token,
				RequestsPerSecond: cfg.GitHub.RequestsPerSecond,
			})
		}
		a.Enricher = enrich.New(source, a.Gallery, enrich.Options{
			Username: cfg.GitHub.Username,
			CacheTTL: cfg.GitHub.CacheTTL,
			Pinned:   cfg.GitHub.Pinned,
			Store:    a.Catalog,
		}, logger)
		a.stop = append(a.stop, a.Enricher.OnRefresh(a.onRefresh))
	}

	a.MCP = mcp.NewServer(mcp.Config{
		Carousel:      a.Carousel,
		Gallery:       a.Gallery,
		Activity:      a.Activity,
		Slides:        a.Slides,
		TransportMode: cfg.Transport.Mode,
		Version:       Version,
		Logger:        logger,
	})
	return nil
}

// Handler returns the HTTP surface, with MCP served at /mcp.
func (a *App) Handler() http.Handler {
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return a.MCP },
		&sdkmcp.StreamableHTTPOptions{
			SessionTimeout: 30 * time.Minute,
		},
	)

	deps := transport.Deps{
		Carousel:    a.Carousel,
		Gallery:     a.Gallery,
		Slides:      a.Slides,
		Activity:    a.Activity,
		Hub:         a.Hub,
		Metrics:     a.Metrics.Handler(),
		MCP:         mcpHandler,
		MCPToken:    a.cfg.Transport.MCPToken,
		CORSOrigins: a.cfg.Transport.CORSOrigins,
		Logger:      a.logger,
	}
	if a.Enricher != nil {
		deps.Profile = a.Enricher
	}
	return transport.NewServer(deps)
}

// RunEnrichment refreshes GitHub data until ctx is canceled. It returns
// immediately when enrichment is disabled.
func (a *App) RunEnrichment(ctx context.Context) {
	if a.Enricher == nil {
		return
	}
	a.Enricher.Run(ctx, a.cfg.GitHub.RefreshInterval)
}

// Close stops timers, disconnects stream clients and closes the database.
func (a *App) Close() {
	for i := len(a.stop) - 1; i >= 0; i-- {
		a.stop[i]()
	}
	a.stop = nil
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			a.logger.Warn("close database", "error", err)
		}
	}
}

func (a *App) snapshot() []transport.Message {
	msgs := []transport.Message{
		{Type: transport.MessageCarousel, Data: a.Carousel.State()},
		{Type: transport.MessageGallery, Data: a.Gallery.View()},
	}
	if a.Enricher != nil {
		if p, ok := a.Enricher.Profile(); ok {
			msgs = append(msgs, transport.Message{Type: transport.MessageProfile, Data: p})
		}
	}
	return msgs
}

func (a *App) onSlideChange(ch carousel.Change) {
	a.Metrics.SlideChanges.Inc()
	a.Activity.Track(context.Background(), activity.TypeSlideChanged, strconv.Itoa(ch.To), a.slideSummary(ch.To), ch)
}

// onCarouselState pushes every state change, whichever surface caused it.
func (a *App) onCarouselState(s carousel.State) {
	a.Hub.Broadcast(transport.Message{Type: transport.MessageCarousel, Data: s})
}

func (a *App) slideSummary(index int) string {
	if index >= 0 && index < len(a.Slides) {
		return "testimonial from " + a.Slides[index].Name
	}
	return "slide " + strconv.Itoa(index)
}

func (a *App) onViewChange(v gallery.View) {
	a.Metrics.ObserveView(len(v.Items), v.MatchCount)
	a.Hub.Broadcast(transport.Message{Type: transport.MessageGallery, Data: v})
}

func (a *App) onRefresh(o enrich.Outcome) {
	ctx := context.Background()
	switch {
	case o.Err != nil:
		a.Metrics.ObserveEnrichment("error")
		a.Activity.Track(ctx, activity.TypeEnrichmentFailed, a.cfg.GitHub.Username, o.Err.Error(), nil)
	case o.Result.Skipped:
		a.Metrics.ObserveEnrichment("skipped")
	default:
		a.Metrics.ObserveEnrichment("ok")
		a.Activity.Track(ctx, activity.TypeEnrichmentApplied, a.cfg.GitHub.Username,
			fmt.Sprintf("%d of %d repositories merged", o.Result.Merged, o.Result.Repos), o.Result)
		if p, ok := a.Enricher.Profile(); ok {
			a.Hub.Broadcast(transport.Message{Type: transport.MessageProfile, Data: p})
		}
	}
}
