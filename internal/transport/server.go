// Package transport serves the showcase HTTP API, change stream and MCP
// endpoint.
package transport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpggio/showcase/internal/domain/activity"
	"github.com/rpggio/showcase/internal/domain/carousel"
	"github.com/rpggio/showcase/internal/domain/catalog"
	"github.com/rpggio/showcase/internal/domain/gallery"
	"github.com/rpggio/showcase/internal/enrich"
	"github.com/rs/cors"
)

// Carousel is the testimonial slider state machine.
type Carousel interface {
	State() carousel.State
	Next() int
	Previous() int
	GoTo(index int) error
	StartAutoPlay(interval time.Duration) error
	StopAutoPlay()
	ToggleAutoPlay() bool
	HandleKey(key string) bool
	HandleSwipe(startX, endX float64) bool
	PointerEnter()
	PointerLeave()
	SetViewportWidth(width int)
}

// Gallery is the filterable project list.
type Gallery interface {
	View() gallery.View
	Apply(q gallery.Query) (gallery.View, error)
	Item(id int64) (gallery.Item, bool)
}

// ActivityLog records and lists analytics events.
type ActivityLog interface {
	Track(ctx context.Context, typ activity.ActivityType, subject, summary string, details any)
	GetRecentActivity(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// ProfileSource returns the last fetched GitHub profile.
type ProfileSource interface {
	Profile() (enrich.Profile, bool)
}

// Deps are the collaborators the router serves.
type Deps struct {
	Carousel Carousel
	Gallery  Gallery
	Slides   []catalog.Testimonial
	Activity ActivityLog
	Profile  ProfileSource
	Hub      *Hub

	Metrics http.Handler
	MCP     http.Handler

	// MCPToken guards /mcp when set.
	MCPToken    string
	CORSOrigins []string
	Logger      *slog.Logger
}

// Server holds the API handlers.
type Server struct {
	deps   Deps
	logger *slog.Logger
}

// NewServer creates an HTTP router with middleware.
func NewServer(deps Deps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	srv := &Server{deps: deps, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/health", srv.handleHealth)
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics)
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/carousel", func(r chi.Router) {
			r.Get("/", srv.handleCarouselState)
			r.Post("/next", srv.handleCarouselNext)
			r.Post("/previous", srv.handleCarouselPrevious)
			r.Post("/goto", srv.handleCarouselGoTo)
			r.Post("/autoplay", srv.handleCarouselAutoPlay)
			r.Post("/key", srv.handleCarouselKey)
			r.Post("/swipe", srv.handleCarouselSwipe)
			r.Post("/hover", srv.handleCarouselHover)
			r.Post("/viewport", srv.handleCarouselViewport)
		})
		r.Route("/projects", func(r chi.Router) {
			r.Get("/", srv.handleGalleryView)
			r.Post("/query", srv.handleGalleryQuery)
			r.Get("/{id}", srv.handleProject)
		})
		r.Get("/profile", srv.handleProfile)
		r.Get("/events", srv.handleEvents)
		if deps.Hub != nil {
			r.Method(http.MethodGet, "/stream", deps.Hub)
		}
	})

	if deps.MCP != nil {
		r.With(AuthMiddleware(deps.MCPToken)).Handle("/mcp", deps.MCP)
	}

	return cors.New(cors.Options{
		AllowedOrigins: deps.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "Mcp-Session-Id"},
		ExposedHeaders: []string{"Mcp-Session-Id"},
	}).Handler(r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
