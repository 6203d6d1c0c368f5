package sced

import (
	"time"
)

type Time struct {
	Time  time.Time
	Dt    time.Duration
	Frame uint64
}

// FrameLimiter caps the frame rate by sleeping out the rest of each
// frame's budget.
type FrameLimiter struct {
	Budget time.Duration
	next   time.Time
	sleep  func(time.Duration)
	now    func() time.Time
}

func NewFrameLimiter(fps int) *FrameLimiter {
	l := &FrameLimiter{sleep: time.Sleep, now: time.Now}
	if fps > 0 {
		l.Budget = time.Second / time.Duration(fps)
	}
	return l
}

// Wait blocks until the current frame's budget is spent. A frame that
// overran starts the next budget from now instead of catching up.
func (l *FrameLimiter) Wait() {
	if l.Budget <= 0 {
		return
	}
	now := l.now()
	if l.next.IsZero() || now.After(l.next) {
		l.next = now.Add(l.Budget)
		return
	}
	l.sleep(l.next.Sub(now))
	l.next = l.next.Add(l.Budget)
}

type TimeModule struct {
	FPS int
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Time{Time: time.Now()}, NewFrameLimiter(mod.FPS))
	app.UseSystem(System(timeSystem).InStage(Prelude).RunAlways())
	app.UseSystem(System(frameLimitSystem).InStage(Finale).RunAlways())
}

func timeSystem(timeResource *Time) {
	now := time.Now()

	timeResource.Dt = now.Sub(timeResource.Time)
	timeResource.Time = now
	timeResource.Frame++
}

func frameLimitSystem(limiter *FrameLimiter) {
	limiter.Wait()
}
