// Package enrich merges live GitHub repository data into gallery items.
package enrich

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rpggio/showcase/internal/domain/gallery"
	"github.com/rpggio/showcase/internal/notify"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultCacheTTL = time.Hour
	DefaultPinned   = 6
)

// Source fetches GitHub data. *Client satisfies it.
type Source interface {
	User(ctx context.Context, username string) (*User, error)
	Repos(ctx context.Context, username string) ([]Repo, error)
}

// Target receives merged enrichments. *gallery.Controller satisfies it.
type Target interface {
	Items() []gallery.Item
	Merge(updates []gallery.Enrichment) int
}

// Store persists enrichments so they survive restarts.
type Store interface {
	SaveEnrichment(ctx context.Context, e gallery.Enrichment) error
}

// Options configures an Enricher.
type Options struct {
	Username string
	CacheTTL time.Duration
	Pinned   int
	Store    Store
	Now      func() time.Time
}

// Profile is the last fetched GitHub account summary.
type Profile struct {
	User      User      `json:"user"`
	Pinned    []Repo    `json:"pinned"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Result summarizes one refresh.
type Result struct {
	Skipped bool `json:"skipped"`
	Repos   int  `json:"repos"`
	Merged  int  `json:"merged"`
}

// Outcome is delivered to subscribers after each refresh attempt.
type Outcome struct {
	Result Result
	Err    error
}

// Enricher periodically pulls repository metadata and merges it into the
// gallery. Failures leave the gallery untouched.
type Enricher struct {
	source Source
	target Target
	opts   Options
	logger *slog.Logger

	mu        sync.Mutex
	profile   *Profile
	lastFetch time.Time

	outcomes notify.Dispatcher[Outcome]
}

// New creates an Enricher.
func New(source Source, target Target, opts Options, logger *slog.Logger) *Enricher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	if opts.Pinned <= 0 {
		opts.Pinned = DefaultPinned
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Enricher{source: source, target: target, opts: opts, logger: logger}
}

// OnRefresh subscribes fn to refresh outcomes. The returned func unsubscribes.
func (e *Enricher) OnRefresh(fn func(Outcome)) func() {
	return e.outcomes.Subscribe(fn)
}

// Profile returns the last fetched profile, if any.
func (e *Enricher) Profile() (Profile, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.profile == nil {
		return Profile{}, false
	}
	p := *e.profile
	p.Pinned = append([]Repo(nil), p.Pinned...)
	return p, true
}

// Invalidate forgets the last fetch time so the next Refresh fetches.
func (e *Enricher) Invalidate() {
	e.mu.Lock()
	e.lastFetch = time.Time{}
	e.mu.Unlock()
}

// Refresh fetches the profile and repositories unless the cached data is
// still fresh, then merges matching repositories into the target.
func (e *Enricher) Refresh(ctx context.Context) (Result, error) {
	res, err := e.refresh(ctx)
	e.outcomes.Enqueue(Outcome{Result: res, Err: err})
	e.outcomes.Flush()
	return res, err
}

func (e *Enricher) refresh(ctx context.Context) (Result, error) {
	now := e.opts.Now()
	e.mu.Lock()
	fresh := !e.lastFetch.IsZero() && now.Sub(e.lastFetch) < e.opts.CacheTTL
	e.mu.Unlock()
	if fresh {
		return Result{Skipped: true}, nil
	}
	if e.opts.Username == "" {
		return Result{}, fmt.Errorf("%w: no username configured", ErrEnrichment)
	}

	var (
		user  *User
		repos []Repo
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := e.source.User(gctx, e.opts.Username)
		if err != nil {
			return fmt.Errorf("fetching user: %w", err)
		}
		user = u
		return nil
	})
	g.Go(func() error {
		r, err := e.source.Repos(gctx, e.opts.Username)
		if err != nil {
			return fmt.Errorf("fetching repos: %w", err)
		}
		repos = r
		return nil
	})
	if err := g.Wait(); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrEnrichment, err)
	}

	pinned := PinnedRepos(repos, e.opts.Pinned)
	updates := Match(e.target.Items(), pinned)
	merged := e.target.Merge(updates)
	e.persist(ctx, updates)

	e.mu.Lock()
	e.profile = &Profile{User: *user, Pinned: pinned, FetchedAt: now}
	e.lastFetch = now
	e.mu.Unlock()

	e.logger.Info("enrichment refreshed", "repos", len(pinned), "merged", merged)
	return Result{Repos: len(pinned), Merged: merged}, nil
}

func (e *Enricher) persist(ctx context.Context, updates []gallery.Enrichment) {
	if e.opts.Store == nil {
		return
	}
	for _, u := range updates {
		if err := e.opts.Store.SaveEnrichment(ctx, u); err != nil {
			e.logger.Warn("persisting enrichment", "item_id", u.ItemID, "error", err)
		}
	}
}

// Run refreshes immediately and then every interval until ctx is done.
// Failures are logged and never stop the loop.
func (e *Enricher) Run(ctx context.Context, every time.Duration) {
	if every <= 0 {
		every = e.opts.CacheTTL
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		if _, err := e.Refresh(ctx); err != nil && !errors.Is(err, context.Canceled) {
			e.logger.Warn("enrichment failed", "error", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// PinnedRepos drops forks and private repositories and keeps the first n.
func PinnedRepos(repos []Repo, n int) []Repo {
	out := make([]Repo, 0, min(len(repos), n))
	for _, r := range repos {
		if r.Fork || r.Private {
			continue
		}
		if len(out) == n {
			break
		}
		out = append(out, r)
	}
	return out
}

// Match pairs repositories with items whose repo URL names them. Items
// without a matching repository get no enrichment.
func Match(items []gallery.Item, repos []Repo) []gallery.Enrichment {
	byName := make(map[string]Repo, len(repos))
	for _, r := range repos {
		byName[strings.ToLower(r.Name)] = r
	}

	var out []gallery.Enrichment
	for _, item := range items {
		name := RepoName(item.RepoURL)
		if name == "" {
			continue
		}
		r, ok := byName[name]
		if !ok {
			continue
		}
		stars, forks := r.Stars, r.Forks
		e := gallery.Enrichment{ItemID: item.ID, Stars: &stars, Forks: &forks, Language: r.Language}
		if !r.UpdatedAt.IsZero() {
			updated := r.UpdatedAt
			e.UpdatedAt = &updated
		}
		out = append(out, e)
	}
	return out
}

// RepoName extracts the lower-cased repository name from a repository
// URL, or "" if there is none.
func RepoName(repoURL string) string {
	if repoURL == "" {
		return ""
	}
	path := repoURL
	if u, err := url.Parse(repoURL); err == nil && u.Path != "" {
		path = u.Path
	}
	path = strings.TrimSuffix(strings.TrimRight(path, "/"), ".git")
	if i := strings.LastIndex(path, "/"); i >= 0 {
		path = path[i+1:]
	}
	return strings.ToLower(path)
}
