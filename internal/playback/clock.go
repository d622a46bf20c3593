package playback

import (
	"sync"
	"time"
)

// TimeSink receives time updates from a Clock. The Controller is the only
// production implementation; tests supply their own.
type TimeSink interface {
	OnTimeUpdate(t float64)
	OnEnded()
}

// Clock is the media time source behind the controller. A real deployment
// backed by a browser media element forwards its native events instead and
// wires a no-op clock; the server-side review session uses TickerClock,
// the software fallback.
type Clock interface {
	Play()
	Pause()
	Seek(t float64)
	SetDuration(d float64)
	Close()
}

// NopClock satisfies Clock for setups where an external media element is
// the time source and the controller only mirrors its events.
type NopClock struct{}

func (NopClock) Play()               {}
func (NopClock) Pause()              {}
func (NopClock) Seek(float64)        {}
func (NopClock) SetDuration(float64) {}
func (NopClock) Close()              {}

// DefaultTickInterval matches the 100ms polling cadence used when no
// fine-grained media callbacks are available.
const DefaultTickInterval = 100 * time.Millisecond

// TickerClock advances a software playback position on a fixed tick while
// playing, clamping at the known duration instead of looping. The ticker
// goroutine only runs between Play and Pause, and Close tears everything
// down so no callback fires after teardown.
type TickerClock struct {
	mu       sync.Mutex
	interval time.Duration
	sink     TimeSink
	pos      float64
	duration float64
	stop     chan struct{}
	closed   bool
}

// NewTickerClock creates a paused software clock. Bind must be called
// before Play.
func NewTickerClock(interval time.Duration) *TickerClock {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &TickerClock{interval: interval}
}

// Bind attaches the sink receiving time updates. Separate from the
// constructor because the controller and its clock reference each other.
func (c *TickerClock) Bind(sink TimeSink) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sink = sink
}

func (c *TickerClock) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.stop != nil || c.sink == nil {
		return
	}
	stop := make(chan struct{})
	c.stop = stop
	go c.run(stop)
}

func (c *TickerClock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pauseLocked()
}

func (c *TickerClock) pauseLocked() {
	if c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
}

func (c *TickerClock) Seek(t float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t < 0 {
		t = 0
	}
	if c.duration > 0 && t > c.duration {
		t = c.duration
	}
	c.pos = t
}

func (c *TickerClock) SetDuration(d float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.duration = d
}

// Close permanently stops the clock. Used on session teardown.
func (c *TickerClock) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.pauseLocked()
}

func (c *TickerClock) run(stop chan struct{}) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			sink, pos, ended := c.advance(stop)
			if sink == nil {
				return
			}
			// Callbacks fire outside the clock lock so the sink may call
			// back into Pause/Seek without deadlocking.
			sink.OnTimeUpdate(pos)
			if ended {
				sink.OnEnded()
				return
			}
		}
	}
}

// advance moves the position one tick forward and reports whether the end
// of the media was reached. Returns a nil sink when this run loop has
// been superseded or the clock closed.
func (c *TickerClock) advance(stop chan struct{}) (TimeSink, float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.stop != stop {
		return nil, 0, false
	}
	c.pos += c.interval.Seconds()
	ended := false
	if c.duration > 0 && c.pos >= c.duration {
		c.pos = c.duration
		ended = true
		c.stop = nil
	}
	return c.sink, c.pos, ended
}
