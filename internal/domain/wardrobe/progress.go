package wardrobe

import (
	"sync"
	"time"
)

// progressRun drives the upload indicator on a fixed timer, independent of the request.
type progressRun struct {
	view     View
	stopOnce sync.Once
	done     chan struct{}
	exited   chan struct{}
}

func startProgress(view View, step int, interval time.Duration) *progressRun {
	if step <= 0 {
		step = 5
	}
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	run := &progressRun{
		view:   view,
		done:   make(chan struct{}),
		exited: make(chan struct{}),
	}
	view.SetProgress(0, true)
	go run.loop(step, interval)
	return run
}

func (r *progressRun) loop(step int, interval time.Duration) {
	defer close(r.exited)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	percent := 0
	for {
		select {
		case <-r.done:
			return
		case <-ticker.C:
			percent += step
			if percent >= 100 {
				r.view.SetProgress(100, false)
				return
			}
			r.view.SetProgress(percent, true)
		}
	}
}

// stop hides the indicator immediately. Safe to call after the timer finished.
func (r *progressRun) stop() {
	r.stopOnce.Do(func() {
		close(r.done)
		<-r.exited
		r.view.SetProgress(0, false)
	})
}
