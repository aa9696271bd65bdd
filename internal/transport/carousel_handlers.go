package transport

import (
	"net/http"

	"github.com/rpggio/showcase/internal/domain/carousel"
	"github.com/rpggio/showcase/internal/domain/catalog"
)

// CarouselSnapshot is the carousel state together with its slides.
type CarouselSnapshot struct {
	State  carousel.State        `json:"state"`
	Slides []catalog.Testimonial `json:"slides"`
}

type gotoRequest struct {
	Index *int `json:"index"`
}

type autoPlayRequest struct {
	Action     string `json:"action"` // start, stop or toggle
	IntervalMS int    `json:"interval_ms,omitempty"`
}

type keyRequest struct {
	Key string `json:"key"`
}

type keyResponse struct {
	Handled bool           `json:"handled"`
	State   carousel.State `json:"state"`
}

type swipeRequest struct {
	StartX float64 `json:"start_x"`
	EndX   float64 `json:"end_x"`
}

type hoverRequest struct {
	Entered bool `json:"entered"`
}

type viewportRequest struct {
	Width int `json:"width"`
}

func (s *Server) handleCarouselState(w http.ResponseWriter, _ *http.Request) {
	slides := s.deps.Slides
	if slides == nil {
		slides = []catalog.Testimonial{}
	}
	writeJSON(w, http.StatusOK, CarouselSnapshot{State: s.deps.Carousel.State(), Slides: slides})
}

func (s *Server) handleCarouselNext(w http.ResponseWriter, _ *http.Request) {
	s.deps.Carousel.Next()
	writeJSON(w, http.StatusOK, s.deps.Carousel.State())
}

func (s *Server) handleCarouselPrevious(w http.ResponseWriter, _ *http.Request) {
	s.deps.Carousel.Previous()
	writeJSON(w, http.StatusOK, s.deps.Carousel.State())
}

func (s *Server) handleCarouselGoTo(w http.ResponseWriter, r *http.Request) {
	var req gotoRequest
	if err := decodeBody(r, &req); err != nil || req.Index == nil {
		writeError(w, http.StatusBadRequest, CodeInvalidRequest, "index is required")
		return
	}
	if err := s.deps.Carousel.GoTo(*req.Index); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.deps.Carousel.State())
}

func (s *Server) handleCarouselAutoPlay(w http.ResponseWriter, r *http.Request) {
	var req autoPlayRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidRequest, "invalid body")
		return
	}
	interval, err := carousel.IntervalFromMillis(req.IntervalMS)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	switch req.Action {
	case "start":
		if err := s.deps.Carousel.StartAutoPlay(interval); err != nil {
			writeDomainError(w, err)
			return
		}
	case "stop":
		s.deps.Carousel.StopAutoPlay()
	case "toggle", "":
		s.deps.Carousel.ToggleAutoPlay()
	default:
		writeError(w, http.StatusBadRequest, CodeInvalidRequest, "action must be start, stop or toggle")
		return
	}
	writeJSON(w, http.StatusOK, s.deps.Carousel.State())
}

func (s *Server) handleCarouselKey(w http.ResponseWriter, r *http.Request) {
	var req keyRequest
	if err := decodeBody(r, &req); err != nil || req.Key == "" {
		writeError(w, http.StatusBadRequest, CodeInvalidRequest, "key is required")
		return
	}
	handled := s.deps.Carousel.HandleKey(req.Key)
	writeJSON(w, http.StatusOK, keyResponse{Handled: handled, State: s.deps.Carousel.State()})
}

func (s *Server) handleCarouselSwipe(w http.ResponseWriter, r *http.Request) {
	var req swipeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidRequest, "invalid body")
		return
	}
	handled := s.deps.Carousel.HandleSwipe(req.StartX, req.EndX)
	writeJSON(w, http.StatusOK, keyResponse{Handled: handled, State: s.deps.Carousel.State()})
}

func (s *Server) handleCarouselHover(w http.ResponseWriter, r *http.Request) {
	var req hoverRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidRequest, "invalid body")
		return
	}
	if req.Entered {
		s.deps.Carousel.PointerEnter()
	} else {
		s.deps.Carousel.PointerLeave()
	}
	writeJSON(w, http.StatusOK, s.deps.Carousel.State())
}

func (s *Server) handleCarouselViewport(w http.ResponseWriter, r *http.Request) {
	var req viewportRequest
	if err := decodeBody(r, &req); err != nil || req.Width <= 0 {
		writeError(w, http.StatusBadRequest, CodeInvalidRequest, "width must be positive")
		return
	}
	s.deps.Carousel.SetViewportWidth(req.Width)
	writeJSON(w, http.StatusOK, s.deps.Carousel.State())
}
