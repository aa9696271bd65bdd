package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rpggio/showcase/internal/config"
	"github.com/rpggio/showcase/internal/domain/activity"
	"github.com/rpggio/showcase/internal/domain/carousel"
	"github.com/rpggio/showcase/internal/enrich"
	"github.com/stretchr/testify/require"
)

type idleTimer struct{}

func (idleTimer) Stop() bool { return true }

type idleScheduler struct{}

func (idleScheduler) AfterFunc(time.Duration, func()) carousel.Timer { return idleTimer{} }

type stubGitHub struct {
	repos []enrich.Repo
	err   error
}

func (s stubGitHub) User(context.Context, string) (*enrich.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &enrich.User{Login: "johndeveloper", PublicRepos: len(s.repos)}, nil
}

func (s stubGitHub) Repos(context.Context, string) ([]enrich.Repo, error) {
	return s.repos, s.err
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.DB.Path = ":memory:"
	return cfg
}

func newApp(t *testing.T, cfg config.Config, ov Overrides) *App {
	t.Helper()
	if ov.Scheduler == nil {
		ov.Scheduler = idleScheduler{}
	}
	a, err := New(context.Background(), cfg, nil, ov)
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a
}

func eventsOf(t *testing.T, a *App, typ activity.ActivityType) []activity.ActivityEntry {
	t.Helper()
	entries, err := a.Activity.GetRecentActivity(context.Background(), activity.ListActivityOptions{ActivityType: &typ})
	require.NoError(t, err)
	return entries
}

func TestNew_SeedsAndWires(t *testing.T) {
	a := newApp(t, testConfig(t), Overrides{})

	require.Len(t, a.Slides, 5)
	require.Equal(t, carousel.State{CurrentIndex: 0, Total: 5, AutoPlaying: true}, a.Carousel.State())

	view := a.Gallery.View()
	require.Len(t, view.Items, 6)
	require.Equal(t, 8, view.MatchCount)
	require.Equal(t, 2, view.TotalPages)
	require.Equal(t, float64(6), testutil.ToFloat64(a.Metrics.VisibleItems))

	require.Len(t, eventsOf(t, a, activity.TypeProjectsLoaded), 1)
	require.Len(t, eventsOf(t, a, activity.TypeTestimonialsLoaded), 1)
	require.Nil(t, a.Enricher)
}

func TestNew_SeedsOnlyOnce(t *testing.T) {
	cfg := testConfig(t)
	cfg.DB.Path = filepath.Join(t.TempDir(), "showcase.db")

	first, err := New(context.Background(), cfg, nil, Overrides{Scheduler: idleScheduler{}})
	require.NoError(t, err)
	first.Close()

	second := newApp(t, cfg, Overrides{})
	require.Equal(t, 8, second.Gallery.View().MatchCount)
	require.Len(t, second.Slides, 5)
}

func TestNew_NoTestimonials(t *testing.T) {
	cfg := testConfig(t)
	cfg.DB.Seed = false

	_, err := New(context.Background(), cfg, nil, Overrides{Scheduler: idleScheduler{}})
	require.ErrorIs(t, err, ErrNoTestimonials)
}

func TestSlideChange_TrackedAndCounted(t *testing.T) {
	a := newApp(t, testConfig(t), Overrides{})

	a.Carousel.Next()
	require.NoError(t, a.Carousel.GoTo(3))

	events := eventsOf(t, a, activity.TypeSlideChanged)
	require.Len(t, events, 2)
	require.Equal(t, "3", *events[0].Subject)
	require.Equal(t, "testimonial from David Thompson", events[0].Summary)
	require.Equal(t, float64(2), testutil.ToFloat64(a.Metrics.SlideChanges))
}

func TestEnrichment_MergesAndPersists(t *testing.T) {
	cfg := testConfig(t)
	cfg.GitHub.Enabled = true
	cfg.GitHub.Username = "johndeveloper"
	updated := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	a := newApp(t, cfg, Overrides{GitHub: stubGitHub{repos: []enrich.Repo{
		{Name: "Fitness-Tracker", Stars: 500, Forks: 40, Language: "Dart", UpdatedAt: updated},
		{Name: "unrelated", Stars: 1},
	}}})
	require.NotNil(t, a.Enricher)

	res, err := a.Enricher.Refresh(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, res.Merged)

	item, ok := a.Gallery.Item(4)
	require.True(t, ok)
	require.Equal(t, 500, item.Stars)
	require.Equal(t, "Dart", item.Language)

	stored, err := a.Catalog.Item(context.Background(), 4)
	require.NoError(t, err)
	require.Equal(t, 500, stored.Stars)

	require.Len(t, eventsOf(t, a, activity.TypeEnrichmentApplied), 1)
	require.Equal(t, float64(1), testutil.ToFloat64(a.Metrics.EnrichmentRuns.WithLabelValues("ok")))
}

func TestEnrichment_FailureLeavesGallery(t *testing.T) {
	cfg := testConfig(t)
	cfg.GitHub.Enabled = true
	cfg.GitHub.Username = "johndeveloper"
	a := newApp(t, cfg, Overrides{GitHub: stubGitHub{err: &enrich.StatusError{Code: http.StatusForbidden, Path: "/users/johndeveloper"}}})
	before := a.Gallery.View()

	_, err := a.Enricher.Refresh(context.Background())
	require.ErrorIs(t, err, enrich.ErrEnrichment)

	require.Equal(t, before, a.Gallery.View())
	require.Len(t, eventsOf(t, a, activity.TypeEnrichmentFailed), 1)
	require.Equal(t, float64(1), testutil.ToFloat64(a.Metrics.EnrichmentRuns.WithLabelValues("error")))
}

func TestHandler_ServesAPI(t *testing.T) {
	a := newApp(t, testConfig(t), Overrides{})
	srv := httptest.NewServer(a.Handler())
	t.Cleanup(srv.Close)

	for _, path := range []string{"/health", "/api/carousel", "/api/projects", "/metrics"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode, path)
	}

	resp, err := http.Get(srv.URL + "/api/profile")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
