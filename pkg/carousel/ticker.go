package carousel

import (
	"sync"
	"time"
)

// Ticker is the subset of *time.Ticker the carousel needs.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type timeTicker struct{ t *time.Ticker }

func newTimeTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

// ManualTicker fires only when Fire is called.
type ManualTicker struct {
	ch       chan time.Time
	stopped  chan struct{}
	stopOnce sync.Once
}

// NewManualTicker returns a ticker driven by Fire.
func NewManualTicker() *ManualTicker {
	return &ManualTicker{ch: make(chan time.Time), stopped: make(chan struct{})}
}

// C implements Ticker.
func (m *ManualTicker) C() <-chan time.Time { return m.ch }

// Stop implements Ticker.
func (m *ManualTicker) Stop() {
	m.stopOnce.Do(func() { close(m.stopped) })
}

// Fire delivers one tick and blocks until the consumer has received it. It
// returns false if the ticker was stopped first.
func (m *ManualTicker) Fire() bool {
	select {
	case m.ch <- time.Now():
		return true
	case <-m.stopped:
		return false
	}
}

// Factory adapts m for WithTicker.
func (m *ManualTicker) Factory() func(time.Duration) Ticker {
	return func(time.Duration) Ticker { return m }
}
