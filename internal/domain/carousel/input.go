package carousel

import "math"

// Key names accepted by HandleKey, matching KeyboardEvent.key.
const (
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
	KeyHome       = "Home"
	KeyEnd        = "End"
	KeySpace      = " "
)

// HandleKey maps a key press to a navigation command. It reports whether
// the key was consumed.
func (c *Controller) HandleKey(key string) bool {
	if !c.opts.KeyboardEnabled {
		return false
	}
	switch key {
	case KeyArrowLeft:
		c.Previous()
	case KeyArrowRight:
		c.Next()
	case KeyHome:
		return c.GoTo(0) == nil
	case KeyEnd:
		return c.GoTo(c.State().Total-1) == nil
	case KeySpace, "Space", "Spacebar":
		c.ToggleAutoPlay()
	default:
		return false
	}
	return true
}

// HandleSwipe navigates when a touch moved further than the swipe
// threshold: leftward goes forward, rightward goes back.
func (c *Controller) HandleSwipe(startX, endX float64) bool {
	if !c.opts.TouchEnabled {
		return false
	}
	diff := startX - endX
	if math.Abs(diff) <= c.opts.SwipeThreshold {
		return false
	}
	if diff > 0 {
		c.Next()
	} else {
		c.Previous()
	}
	return true
}

// PointerEnter pauses autoplay while the pointer is over the slider.
func (c *Controller) PointerEnter() {
	if !c.opts.PauseOnHover {
		return
	}
	c.mu.Lock()
	if c.playing {
		c.stopLocked()
		c.hoverPaused = true
	}
	c.mu.Unlock()

	c.flush()
}

// PointerLeave resumes autoplay if PointerEnter paused it.
func (c *Controller) PointerLeave() {
	c.mu.Lock()
	if c.hoverPaused {
		c.hoverPaused = false
		c.startLocked(0)
	}
	c.mu.Unlock()

	c.flush()
}

// SetViewportWidth selects the autoplay interval for the viewport size.
// Narrow viewports advance more slowly. An interval chosen explicitly
// through StartAutoPlay or SetInterval is kept.
func (c *Controller) SetViewportWidth(width int) {
	d := c.opts.Interval
	if width > 0 && width < c.opts.MobileBreakpoint {
		d = c.opts.MobileInterval
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.customInterval {
		return
	}
	c.setIntervalLocked(d)
}
