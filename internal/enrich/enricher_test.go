package enrich_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rpggio/showcase/internal/domain/gallery"
	"github.com/rpggio/showcase/internal/enrich"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type fakeSource struct {
	mu      sync.Mutex
	user    *enrich.User
	repos   []enrich.Repo
	err     error
	fetches int
}

func (f *fakeSource) User(ctx context.Context, username string) (*enrich.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeSource) Repos(ctx context.Context, username string) ([]enrich.Repo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.repos, nil
}

func (f *fakeSource) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches
}

type fakeStore struct {
	saved []gallery.Enrichment
}

func (s *fakeStore) SaveEnrichment(ctx context.Context, e gallery.Enrichment) error {
	s.saved = append(s.saved, e)
	return nil
}

func galleryItems() []gallery.Item {
	return []gallery.Item{
		{ID: 1, Title: "E-Commerce Platform", Category: gallery.CategoryWeb, RepoURL: "https://github.com/johndeveloper/ecommerce-platform", Stars: 45},
		{ID: 2, Title: "Chat Application", Category: gallery.CategoryWeb, RepoURL: "https://github.com/johndeveloper/Chat-App/", Stars: 41},
		{ID: 3, Title: "Brand", Category: gallery.CategoryDesign},
	}
}

func newTarget(t *testing.T) *gallery.Controller {
	t.Helper()
	c, err := gallery.NewController(galleryItems(), gallery.Query{}, nil)
	require.NoError(t, err)
	return c
}

func TestRepoName(t *testing.T) {
	require.Equal(t, "chat-app", enrich.RepoName("https://github.com/johndeveloper/Chat-App/"))
	require.Equal(t, "tool", enrich.RepoName("https://github.com/x/tool.git"))
	require.Equal(t, "portfolio", enrich.RepoName("github.com/x/portfolio"))
	require.Empty(t, enrich.RepoName(""))
}

func TestPinnedRepos_SkipsForksAndPrivate(t *testing.T) {
	repos := []enrich.Repo{
		{Name: "a"}, {Name: "fork", Fork: true}, {Name: "b"}, {Name: "secret", Private: true}, {Name: "c"},
	}
	pinned := enrich.PinnedRepos(repos, 2)
	require.Len(t, pinned, 2)
	require.Equal(t, "a", pinned[0].Name)
	require.Equal(t, "b", pinned[1].Name)
}

func TestRefresh_MergesMatchingRepos(t *testing.T) {
	updated := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	source := &fakeSource{
		user: &enrich.User{Login: "johndeveloper"},
		repos: []enrich.Repo{
			{Name: "chat-app", Stars: 99, Forks: 20, Language: "TypeScript", UpdatedAt: updated},
			{Name: "ecommerce-platform", Stars: 50, Fork: true},
			{Name: "unrelated", Stars: 5},
		},
	}
	target := newTarget(t)
	store := &fakeStore{}
	e := enrich.New(source, target, enrich.Options{Username: "johndeveloper", Store: store}, nil)

	var outcomes []enrich.Outcome
	e.OnRefresh(func(o enrich.Outcome) { outcomes = append(outcomes, o) })

	res, err := e.Refresh(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, res.Repos)
	require.Equal(t, 1, res.Merged)

	chat, ok := target.Item(2)
	require.True(t, ok)
	require.Equal(t, 99, chat.Stars)
	require.Equal(t, "TypeScript", chat.Language)
	require.Equal(t, "Chat Application", chat.Title)

	shop, ok := target.Item(1)
	require.True(t, ok)
	require.Equal(t, 45, shop.Stars, "forks never enrich")

	require.Len(t, store.saved, 1)
	require.Len(t, outcomes, 1)

	profile, ok := e.Profile()
	require.True(t, ok)
	require.Equal(t, "johndeveloper", profile.User.Login)
	require.Len(t, profile.Pinned, 2)
}

func TestRefresh_CachesWithinTTL(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	source := &fakeSource{user: &enrich.User{Login: "x"}}
	e := enrich.New(source, newTarget(t), enrich.Options{
		Username: "x",
		CacheTTL: time.Hour,
		Now:      func() time.Time { return now },
	}, nil)

	_, err := e.Refresh(context.Background())
	require.NoError(t, err)

	now = now.Add(30 * time.Minute)
	res, err := e.Refresh(context.Background())
	require.NoError(t, err)
	require.True(t, res.Skipped)
	require.Equal(t, 1, source.count())

	now = now.Add(31 * time.Minute)
	_, err = e.Refresh(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, source.count())

	e.Invalidate()
	_, err = e.Refresh(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, source.count())
}

func TestRefresh_FailureLeavesItemsUntouched(t *testing.T) {
	source := &fakeSource{err: errors.New("network down")}
	target := newTarget(t)
	before := target.Items()
	e := enrich.New(source, target, enrich.Options{Username: "x"}, nil)

	var outcome enrich.Outcome
	e.OnRefresh(func(o enrich.Outcome) { outcome = o })

	_, err := e.Refresh(context.Background())
	require.ErrorIs(t, err, enrich.ErrEnrichment)
	require.ErrorIs(t, outcome.Err, enrich.ErrEnrichment)
	require.Equal(t, before, target.Items())

	_, ok := e.Profile()
	require.False(t, ok)
}

func TestRefresh_RequiresUsername(t *testing.T) {
	e := enrich.New(&fakeSource{}, newTarget(t), enrich.Options{}, nil)
	_, err := e.Refresh(context.Background())
	require.ErrorIs(t, err, enrich.ErrEnrichment)
}

func TestRun_StopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	source := &fakeSource{user: &enrich.User{Login: "x"}}
	e := enrich.New(source, newTarget(t), enrich.Options{Username: "x"}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		e.Run(ctx, time.Hour)
		close(done)
	}()

	require.Eventually(t, func() bool { return source.count() == 1 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}
