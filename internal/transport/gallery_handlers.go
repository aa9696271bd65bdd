package transport

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rpggio/showcase/internal/domain/activity"
	"github.com/rpggio/showcase/internal/domain/catalog"
	"github.com/rpggio/showcase/internal/domain/gallery"
)

const maxEventsLimit = 200

func (s *Server) handleGalleryView(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Gallery.View())
}

// handleGalleryQuery replaces the whole query; omitted fields take their
// defaults.
func (s *Server) handleGalleryQuery(w http.ResponseWriter, r *http.Request) {
	var q gallery.Query
	if err := decodeBody(r, &q); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidRequest, "invalid body")
		return
	}
	view, err := s.deps.Gallery.Apply(q)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if s.deps.Activity != nil {
		s.deps.Activity.Track(r.Context(), activity.TypeQueryChanged, "", "gallery query changed", view.Query)
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleProject(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidRequest, "id must be an integer")
		return
	}
	item, ok := s.deps.Gallery.Item(id)
	if !ok {
		writeDomainError(w, fmt.Errorf("%w: %d", catalog.ErrItemNotFound, id))
		return
	}
	if s.deps.Activity != nil {
		s.deps.Activity.Track(r.Context(), activity.TypeProjectViewed, strconv.FormatInt(id, 10), item.Title, nil)
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleProfile(w http.ResponseWriter, _ *http.Request) {
	if s.deps.Profile == nil {
		writeError(w, http.StatusNotFound, CodeNotFound, "profile not available")
		return
	}
	profile, ok := s.deps.Profile.Profile()
	if !ok {
		writeError(w, http.StatusNotFound, CodeNotFound, "profile not fetched yet")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if s.deps.Activity == nil {
		writeJSON(w, http.StatusOK, []activity.ActivityEntry{})
		return
	}

	q := r.URL.Query()
	opts := activity.ListActivityOptions{}
	if v := q.Get("type"); v != "" {
		typ := activity.ActivityType(v)
		opts.ActivityType = &typ
	}
	if v := q.Get("subject"); v != "" {
		opts.Subject = &v
	}
	var err error
	if opts.Limit, err = intParam(q.Get("limit")); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidRequest, "limit must be a non-negative integer")
		return
	}
	if opts.Offset, err = intParam(q.Get("offset")); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidRequest, "offset must be a non-negative integer")
		return
	}
	opts.Limit = min(opts.Limit, maxEventsLimit)

	entries, err := s.deps.Activity.GetRecentActivity(r.Context(), opts)
	if err != nil {
		s.logger.Error("listing events", "error", err)
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func intParam(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid integer %q", v)
	}
	return n, nil
}
