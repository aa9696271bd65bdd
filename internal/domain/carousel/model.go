package carousel

import "time"

// State is a snapshot of the carousel.
type State struct {
	CurrentIndex int  `json:"current_index"`
	Total        int  `json:"total"`
	AutoPlaying  bool `json:"auto_playing"`
}

// Change describes a move from one slide to another.
type Change struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Options configures a Controller.
type Options struct {
	// AutoPlay starts the controller in the playing state.
	AutoPlay bool
	// Interval is the autoplay period on desktop-sized viewports.
	Interval time.Duration
	// MobileInterval is used once SetViewportWidth reports a narrow viewport.
	MobileInterval time.Duration
	// MobileBreakpoint is the viewport width below which MobileInterval applies.
	MobileBreakpoint int
	// SwipeThreshold is the minimum horizontal travel, in pixels, of a swipe.
	SwipeThreshold float64

	KeyboardEnabled bool
	TouchEnabled    bool
	PauseOnHover    bool

	// Scheduler arms autoplay timers. Defaults to the wall clock.
	Scheduler Scheduler
}

const (
	DefaultInterval         = 5 * time.Second
	DefaultMobileInterval   = 7 * time.Second
	DefaultMobileBreakpoint = 768
	DefaultSwipeThreshold   = 50
)

// DefaultOptions mirrors the site's testimonial slider defaults.
func DefaultOptions() Options {
	return Options{
		AutoPlay:         true,
		Interval:         DefaultInterval,
		MobileInterval:   DefaultMobileInterval,
		MobileBreakpoint: DefaultMobileBreakpoint,
		SwipeThreshold:   DefaultSwipeThreshold,
		KeyboardEnabled:  true,
		TouchEnabled:     true,
		PauseOnHover:     true,
	}
}

func (o Options) withDefaults() Options {
	if o.Interval <= 0 {
		o.Interval = DefaultInterval
	}
	if o.MobileInterval <= 0 {
		o.MobileInterval = o.Interval
	}
	if o.MobileBreakpoint <= 0 {
		o.MobileBreakpoint = DefaultMobileBreakpoint
	}
	if o.SwipeThreshold <= 0 {
		o.SwipeThreshold = DefaultSwipeThreshold
	}
	if o.Scheduler == nil {
		o.Scheduler = WallClock{}
	}
	return o
}
