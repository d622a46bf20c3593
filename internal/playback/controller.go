// Package playback owns the authoritative playback cursor and play/pause
// state for one video, reconciling media-backend time events with
// user-initiated intents. Every view reads the controller's snapshots and
// dispatches intents back through it; nothing else mutates the state.
package playback

import (
	"math"
	"sync"

	"github.com/lipeijia/video-ai-highlight-tool/internal/transcript"
	"github.com/lipeijia/video-ai-highlight-tool/models"
)

// State is the controller's lifecycle phase.
type State int

const (
	// StateIdle means no media metadata has arrived yet; any
	// duration-dependent math renders a degenerate empty result.
	StateIdle State = iota
	StatePaused
	StatePlaying
	// StateEnded is re-entered whenever the cursor reaches the duration;
	// seeking below the duration leaves it again.
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePaused:
		return "paused"
	case StatePlaying:
		return "playing"
	case StateEnded:
		return "ended"
	}
	return "unknown"
}

// Snapshot is an immutable view of the playback state, recomputed after
// every mutation and pushed to the change listener.
type Snapshot struct {
	CurrentTime float64
	Duration    float64
	IsPlaying   bool
	State       State
}

// seekSettleTolerance bounds how far a reported media time may sit from a
// just-issued seek target and still be treated as post-seek. Native time
// events that arrive late from the pre-seek position fall outside it and
// are dropped instead of stomping the seek.
const seekSettleTolerance = 0.75

// Controller is the single source of truth for "where are we in the video
// and are we playing". Safe for concurrent use: clock goroutines and HTTP
// handlers both call in.
type Controller struct {
	mu sync.Mutex

	entries  []models.TranscriptEntry
	clock    Clock
	onChange func(Snapshot)

	duration    float64
	currentTime float64
	state       State

	seekPending bool
	seekTarget  float64
}

// NewController creates an idle controller over an ordered transcript.
// clock may be nil when an external media element drives time updates.
func NewController(entries []models.TranscriptEntry, clock Clock) *Controller {
	if clock == nil {
		clock = NopClock{}
	}
	return &Controller{entries: entries, clock: clock, state: StateIdle}
}

// OnChange registers the listener notified with a fresh snapshot after
// every state mutation. At most one listener; called outside the lock.
func (c *Controller) OnChange(fn func(Snapshot)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
}

// LoadMetadata records the authoritative duration reported by the media
// backend and moves an idle controller to paused. Non-positive durations
// keep the controller idle.
func (c *Controller) LoadMetadata(duration float64) {
	c.withNotify(func() {
		if duration <= 0 || math.IsNaN(duration) || math.IsInf(duration, 0) {
			return
		}
		c.duration = duration
		c.clock.SetDuration(duration)
		if c.currentTime > duration {
			c.currentTime = duration
		}
		if c.state == StateIdle {
			c.state = StatePaused
		}
	})
}

// OnTimeUpdate accepts a new position from the media backend's own clock.
// Calls are idempotent and order-tolerant; a stale update racing a fresh
// seek is discarded until the backend reports a time near the seek target.
func (c *Controller) OnTimeUpdate(nativeTime float64) {
	c.withNotify(func() {
		if c.seekPending {
			if math.Abs(nativeTime-c.seekTarget) > seekSettleTolerance {
				return
			}
			c.seekPending = false
		}
		c.setTimeLocked(nativeTime)
	})
}

// TogglePlay flips between playing and paused. At the end of the video it
// is a no-op: replay requires an explicit Seek first, which the session
// layer performs as a documented convenience.
func (c *Controller) TogglePlay() {
	c.withNotify(func() {
		switch c.state {
		case StatePlaying:
			c.state = StatePaused
			c.clock.Pause()
		case StatePaused:
			c.state = StatePlaying
			c.clock.Play()
		}
	})
}

// Play starts playback unless the controller is idle or ended.
func (c *Controller) Play() {
	c.withNotify(func() {
		if c.state == StatePaused {
			c.state = StatePlaying
			c.clock.Play()
		}
	})
}

// Pause stops playback without moving the cursor.
func (c *Controller) Pause() {
	c.withNotify(func() {
		if c.state == StatePlaying {
			c.state = StatePaused
			c.clock.Pause()
		}
	})
}

// Seek clamps time to [0, duration], moves the cursor, and asks the media
// backend to jump there. Seeking to the duration stops playback; seeking
// below it from the ended state auto-pauses.
func (c *Controller) Seek(time float64) {
	c.withNotify(func() {
		c.seekLocked(time)
	})
}

// SkipToPreviousEntry seeks to the start of the entry before the one
// containing the cursor, or to zero when the cursor is in the first entry
// or in a gap.
func (c *Controller) SkipToPreviousEntry() {
	c.withNotify(func() {
		idx := transcript.FindIndexContaining(c.entries, c.currentTime)
		if idx > 0 {
			c.seekLocked(c.entries[idx-1].StartTime)
			return
		}
		c.seekLocked(0)
	})
}

// SkipToNextEntry seeks to the first entry starting after the cursor.
// Past the last entry it stops playback without moving the cursor.
func (c *Controller) SkipToNextEntry() {
	c.withNotify(func() {
		next, ok := transcript.FindFirstAfter(c.entries, c.currentTime)
		if ok {
			c.seekLocked(next.StartTime)
			return
		}
		if c.state == StatePlaying {
			c.state = StatePaused
			c.clock.Pause()
		}
	})
}

// OnPlay mirrors the media backend's play event.
func (c *Controller) OnPlay() {
	c.withNotify(func() {
		if c.state == StatePaused || c.state == StateIdle {
			c.state = StatePlaying
		}
	})
}

// OnPause mirrors the media backend's pause event.
func (c *Controller) OnPause() {
	c.withNotify(func() {
		if c.state == StatePlaying {
			c.state = StatePaused
		}
	})
}

// OnEnded mirrors the media backend's ended event: cursor at duration,
// playback stopped.
func (c *Controller) OnEnded() {
	c.withNotify(func() {
		if c.duration > 0 {
			c.currentTime = c.duration
		}
		c.state = StateEnded
	})
}

// Snapshot returns the current playback state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// ActiveEntry derives the transcript entry containing the cursor, if any.
// Pure recomputation on every call, never cached.
func (c *Controller) ActiveEntry() (models.TranscriptEntry, bool) {
	c.mu.Lock()
	t := c.currentTime
	c.mu.Unlock()
	return transcript.FindActiveEntry(c.entries, t)
}

// AtEnd reports whether the cursor sits at the end of known media.
func (c *Controller) AtEnd() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == StateEnded
}

func (c *Controller) seekLocked(t float64) {
	if math.IsNaN(t) {
		t = 0
	}
	t = clamp(t, 0, c.durationOrZero())
	c.seekPending = true
	c.seekTarget = t
	c.currentTime = t
	c.clock.Seek(t)

	if c.duration > 0 && t >= c.duration {
		if c.state == StatePlaying {
			c.clock.Pause()
		}
		c.state = StateEnded
	} else if c.state == StateEnded {
		c.state = StatePaused
	}
}

func (c *Controller) setTimeLocked(t float64) {
	if math.IsNaN(t) {
		return
	}
	c.currentTime = clamp(t, 0, c.durationOrZero())
	if c.duration > 0 && c.currentTime >= c.duration {
		c.currentTime = c.duration
		if c.state == StatePlaying {
			c.clock.Pause()
		}
		c.state = StateEnded
	}
}

func (c *Controller) durationOrZero() float64 {
	if c.duration > 0 {
		return c.duration
	}
	// Duration unknown: clamp only the lower bound and let LoadMetadata
	// re-clamp later.
	return math.MaxFloat64
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		CurrentTime: c.currentTime,
		Duration:    c.duration,
		IsPlaying:   c.state == StatePlaying,
		State:       c.state,
	}
}

// withNotify runs fn under the lock, then fires the change listener with
// the resulting snapshot outside it.
func (c *Controller) withNotify(fn func()) {
	c.mu.Lock()
	fn()
	snap := c.snapshotLocked()
	listener := c.onChange
	c.mu.Unlock()

	if listener != nil {
		listener(snap)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
