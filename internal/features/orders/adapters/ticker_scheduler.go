package adapters

import (
	"sync"
	"time"
)

// TickerScheduler runs jobs on time.Ticker, one goroutine per job.
type TickerScheduler struct{}

// NewTickerScheduler creates a new TickerScheduler.
func NewTickerScheduler() *TickerScheduler {
	return &TickerScheduler{}
}

// Every calls fn every interval until the returned cancel is called.
// cancel may be called from inside fn and more than once.
func (TickerScheduler) Every(interval time.Duration, fn func()) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	var once sync.Once

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				select {
				case <-done:
					return
				default:
				}
				fn()
			}
		}
	}()

	return func() {
		once.Do(func() { close(done) })
	}
}
