package mcp

import (
	"context"
	"log/slog"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/showcase/internal/domain/activity"
	"github.com/rpggio/showcase/internal/domain/carousel"
	"github.com/rpggio/showcase/internal/domain/catalog"
	"github.com/rpggio/showcase/internal/domain/gallery"
)

// Carousel defines the slideshow operations exposed as tools.
type Carousel interface {
	State() carousel.State
	Next() int
	Previous() int
	GoTo(index int) error
	StartAutoPlay(interval time.Duration) error
	StopAutoPlay()
	ToggleAutoPlay() bool
}

// Gallery defines the project list operations exposed as tools.
type Gallery interface {
	View() gallery.View
	Item(id int64) (gallery.Item, bool)
	Update(fn func(gallery.Query) gallery.Query) (gallery.View, error)
}

// ActivityLog defines analytics operations needed by MCP.
type ActivityLog interface {
	Track(ctx context.Context, typ activity.ActivityType, subject, summary string, details any)
	GetRecentActivity(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// Config contains server configuration.
type Config struct {
	Carousel      Carousel
	Gallery       Gallery
	Activity      ActivityLog
	Slides        []catalog.Testimonial
	TransportMode string // "stdio" or "http"
	Version       string
	Logger        *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Version == "" {
		cfg.Version = "0.1.0"
	}
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "showcase",
		Version: cfg.Version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg)

	cfg.Logger.Debug("mcp server configured", "transport", cfg.TransportMode)
	return server
}
