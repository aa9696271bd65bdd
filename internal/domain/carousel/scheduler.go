package carousel

import "time"

// Timer is a pending scheduled task.
type Timer interface {
	// Stop prevents the task from running if it has not started yet.
	Stop() bool
}

// Scheduler arms one-shot tasks.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// WallClock schedules tasks with time.AfterFunc.
type WallClock struct{}

// AfterFunc implements Scheduler.
func (WallClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
