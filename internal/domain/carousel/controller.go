// Package carousel implements the testimonial slider state machine.
package carousel

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rpggio/showcase/internal/notify"
)

// Interval bounds accepted from StartAutoPlay and SetInterval.
const (
	MinInterval = 100 * time.Millisecond
	MaxInterval = time.Hour
)

// Controller tracks the active slide and drives autoplay.
//
// Autoplay keeps at most one pending advance. Every manual navigation,
// interval change or stop replaces it and bumps a generation counter, so
// a timer that already fired but has not yet taken the lock becomes a
// no-op.
type Controller struct {
	mu             sync.Mutex
	opts           Options
	total          int
	current        int
	playing        bool
	hoverPaused    bool
	closed         bool
	interval       time.Duration
	customInterval bool
	timer          Timer
	gen            uint64

	changes notify.Dispatcher[Change]
	states  notify.Dispatcher[State]
	logger  *slog.Logger
}

// New creates a controller over total slides, starting at index 0.
func New(total int, opts Options, logger *slog.Logger) (*Controller, error) {
	if total < 1 {
		return nil, ErrNoSlides
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	opts = opts.withDefaults()

	c := &Controller{
		opts:     opts,
		total:    total,
		interval: opts.Interval,
		playing:  opts.AutoPlay,
		logger:   logger,
	}

	c.mu.Lock()
	c.armLocked()
	c.mu.Unlock()

	return c, nil
}

// State returns the current snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

// Interval returns the active autoplay period.
func (c *Controller) Interval() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.interval
}

// OnChange subscribes fn to slide changes. The returned func unsubscribes.
func (c *Controller) OnChange(fn func(Change)) func() {
	return c.changes.Subscribe(fn)
}

// OnStateChange subscribes fn to every change of the State snapshot:
// slide moves as well as autoplay starting or stopping.
func (c *Controller) OnStateChange(fn func(State)) func() {
	return c.states.Subscribe(fn)
}

// ValidateInterval reports whether d is an acceptable autoplay period.
func ValidateInterval(d time.Duration) error {
	if d < MinInterval || d > MaxInterval {
		return fmt.Errorf("%w: %s not within [%s, %s]", ErrInvalidInterval, d, MinInterval, MaxInterval)
	}
	return nil
}

// IntervalFromMillis converts a client-supplied millisecond count. Zero
// means keep the current interval and yields 0.
func IntervalFromMillis(ms int) (time.Duration, error) {
	if ms == 0 {
		return 0, nil
	}
	if ms < 0 || int64(ms) > int64(MaxInterval/time.Millisecond) {
		return 0, fmt.Errorf("%w: %dms not within [%s, %s]", ErrInvalidInterval, ms, MinInterval, MaxInterval)
	}
	d := time.Duration(ms) * time.Millisecond
	if err := ValidateInterval(d); err != nil {
		return 0, err
	}
	return d, nil
}

// GoTo activates the slide at index. Indices outside the slide range are
// rejected with ErrOutOfRange and leave the state untouched.
func (c *Controller) GoTo(index int) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if index < 0 || index >= c.total {
		c.mu.Unlock()
		return ErrOutOfRange
	}
	c.moveLocked(index)
	c.mu.Unlock()

	c.flush()
	return nil
}

// Next advances one slide, wrapping to the first. It returns the new index.
func (c *Controller) Next() int {
	return c.step(1)
}

// Previous goes back one slide, wrapping to the last. It returns the new index.
func (c *Controller) Previous() int {
	return c.step(-1)
}

func (c *Controller) step(delta int) int {
	c.mu.Lock()
	if c.closed {
		idx := c.current
		c.mu.Unlock()
		return idx
	}
	c.moveLocked((c.current + delta + c.total) % c.total)
	idx := c.current
	c.mu.Unlock()

	c.flush()
	return idx
}

// StartAutoPlay begins periodic advancing. A zero interval keeps the
// current one; any other value must lie within [MinInterval, MaxInterval].
// Calling it while already playing does nothing.
func (c *Controller) StartAutoPlay(interval time.Duration) error {
	if interval != 0 {
		if err := ValidateInterval(interval); err != nil {
			return err
		}
	}
	c.mu.Lock()
	if interval != 0 && !c.playing && !c.closed {
		c.customInterval = true
	}
	c.startLocked(interval)
	c.mu.Unlock()

	c.flush()
	return nil
}

// StopAutoPlay cancels autoplay. No advance happens after it returns.
func (c *Controller) StopAutoPlay() {
	c.mu.Lock()
	c.hoverPaused = false
	c.stopLocked()
	c.mu.Unlock()

	c.flush()
}

// ToggleAutoPlay flips between playing and paused and reports the new state.
func (c *Controller) ToggleAutoPlay() bool {
	c.mu.Lock()
	if c.playing {
		c.hoverPaused = false
		c.stopLocked()
	} else {
		c.startLocked(0)
	}
	playing := c.playing
	c.mu.Unlock()

	c.flush()
	return playing
}

// SetInterval changes the autoplay period, restarting the countdown if
// playing. The period then sticks: SetViewportWidth no longer replaces it.
func (c *Controller) SetInterval(d time.Duration) error {
	if err := ValidateInterval(d); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.customInterval = true
	c.setIntervalLocked(d)
	return nil
}

// Close stops autoplay and drops all subscribers. The controller keeps
// answering State but ignores navigation afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.playing = false
	c.hoverPaused = false
	c.armLocked()
	c.mu.Unlock()

	c.changes.Reset()
	c.states.Reset()
	c.logger.Debug("carousel closed")
}

func (c *Controller) stateLocked() State {
	return State{
		CurrentIndex: c.current,
		Total:        c.total,
		AutoPlaying:  c.playing,
	}
}

// moveLocked switches to index and restarts the autoplay countdown.
// Moving to the active slide emits nothing.
func (c *Controller) moveLocked(index int) {
	if index != c.current {
		change := Change{From: c.current, To: index}
		c.current = index
		c.changes.Enqueue(change)
		c.states.Enqueue(c.stateLocked())
	}
	c.armLocked()
}

// flush delivers queued notifications. Callers must not hold c.mu.
func (c *Controller) flush() {
	c.changes.Flush()
	c.states.Flush()
}

func (c *Controller) startLocked(interval time.Duration) {
	if c.closed || c.playing {
		return
	}
	if interval > 0 {
		c.interval = interval
	}
	c.playing = true
	c.armLocked()
	c.states.Enqueue(c.stateLocked())
	c.logger.Debug("carousel autoplay started", "interval", c.interval)
}

func (c *Controller) stopLocked() {
	if !c.playing {
		return
	}
	c.playing = false
	c.armLocked()
	c.states.Enqueue(c.stateLocked())
	c.logger.Debug("carousel autoplay stopped", "index", c.current)
}

func (c *Controller) setIntervalLocked(d time.Duration) {
	if d == c.interval {
		return
	}
	c.interval = d
	c.armLocked()
}

// armLocked cancels any pending advance and, when playing, schedules a new one.
func (c *Controller) armLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.gen++
	if !c.playing || c.closed {
		return
	}
	gen := c.gen
	c.timer = c.opts.Scheduler.AfterFunc(c.interval, func() { c.advance(gen) })
}

func (c *Controller) advance(gen uint64) {
	c.mu.Lock()
	if gen != c.gen || !c.playing || c.closed {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	c.moveLocked((c.current + 1) % c.total)
	c.mu.Unlock()

	c.flush()
}
