package playback

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lipeijia/video-ai-highlight-tool/models"
)

// fakeClock records controller commands without any timers, so tests can
// drive time updates deterministically.
type fakeClock struct {
	playing  bool
	pos      float64
	duration float64
	closed   bool
	seeks    []float64
}

func (f *fakeClock) Play()                 { f.playing = true }
func (f *fakeClock) Pause()                { f.playing = false }
func (f *fakeClock) Seek(t float64)        { f.pos = t; f.seeks = append(f.seeks, t) }
func (f *fakeClock) SetDuration(d float64) { f.duration = d }
func (f *fakeClock) Close()                { f.closed = true }

func skipFixture() []models.TranscriptEntry {
	return []models.TranscriptEntry{
		{ID: "1", StartTime: 0, EndTime: 5},
		{ID: "2", StartTime: 10, EndTime: 15},
		{ID: "3", StartTime: 20, EndTime: 25},
	}
}

func newLoaded(t *testing.T, duration float64) (*Controller, *fakeClock) {
	t.Helper()
	clock := &fakeClock{}
	ctrl := NewController(skipFixture(), clock)
	ctrl.LoadMetadata(duration)
	return ctrl, clock
}

func TestLoadMetadata_IdleToPaused(t *testing.T) {
	ctrl := NewController(nil, nil)
	assert.Equal(t, StateIdle, ctrl.Snapshot().State)

	ctrl.LoadMetadata(75)

	snap := ctrl.Snapshot()
	assert.Equal(t, StatePaused, snap.State)
	assert.Equal(t, 75.0, snap.Duration)
}

func TestLoadMetadata_RejectsDegenerateDurations(t *testing.T) {
	for _, d := range []float64{0, -10} {
		ctrl := NewController(nil, nil)
		ctrl.LoadMetadata(d)
		snap := ctrl.Snapshot()
		assert.Equal(t, StateIdle, snap.State)
		assert.Equal(t, 0.0, snap.Duration)
	}
}

func TestSeek_Clamps(t *testing.T) {
	tests := []struct {
		name   string
		target float64
		want   float64
	}{
		{"negative clamps to zero", -5, 0},
		{"in range passes through", 30, 30},
		{"beyond duration clamps to duration", 200, 75},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl, clock := newLoaded(t, 75)
			ctrl.Seek(tc.target)
			assert.Equal(t, tc.want, ctrl.Snapshot().CurrentTime)
			assert.Equal(t, tc.want, clock.pos)
		})
	}
}

func TestSeek_AtOrPastDurationStopsPlayback(t *testing.T) {
	ctrl, clock := newLoaded(t, 75)
	ctrl.TogglePlay()
	require.True(t, ctrl.Snapshot().IsPlaying)

	ctrl.Seek(80)

	snap := ctrl.Snapshot()
	assert.False(t, snap.IsPlaying)
	assert.Equal(t, StateEnded, snap.State)
	assert.Equal(t, 75.0, snap.CurrentTime)
	assert.False(t, clock.playing)
}

func TestSeek_FromEndedAutoPauses(t *testing.T) {
	ctrl, _ := newLoaded(t, 75)
	ctrl.Seek(75)
	require.Equal(t, StateEnded, ctrl.Snapshot().State)

	ctrl.Seek(10)

	snap := ctrl.Snapshot()
	assert.Equal(t, StatePaused, snap.State)
	assert.Equal(t, 10.0, snap.CurrentTime)
}

func TestTogglePlay(t *testing.T) {
	ctrl, clock := newLoaded(t, 75)

	ctrl.TogglePlay()
	assert.True(t, ctrl.Snapshot().IsPlaying)
	assert.True(t, clock.playing)

	ctrl.TogglePlay()
	assert.False(t, ctrl.Snapshot().IsPlaying)
	assert.False(t, clock.playing)
}

func TestTogglePlay_NoOpAtEndAndIdle(t *testing.T) {
	ctrl, _ := newLoaded(t, 75)
	ctrl.Seek(75)
	ctrl.TogglePlay()
	assert.Equal(t, StateEnded, ctrl.Snapshot().State)

	idle := NewController(nil, nil)
	idle.TogglePlay()
	assert.Equal(t, StateIdle, idle.Snapshot().State)
}

func TestOnTimeUpdate_ClampsAndEnds(t *testing.T) {
	ctrl, _ := newLoaded(t, 75)
	ctrl.TogglePlay()

	ctrl.OnTimeUpdate(30)
	assert.Equal(t, 30.0, ctrl.Snapshot().CurrentTime)

	// Redundant updates with the same time are harmless.
	ctrl.OnTimeUpdate(30)
	assert.Equal(t, 30.0, ctrl.Snapshot().CurrentTime)

	ctrl.OnTimeUpdate(76)
	snap := ctrl.Snapshot()
	assert.Equal(t, 75.0, snap.CurrentTime)
	assert.Equal(t, StateEnded, snap.State)
	assert.False(t, snap.IsPlaying)
}

func TestOnTimeUpdate_StaleEventAfterSeekIsDropped(t *testing.T) {
	ctrl, _ := newLoaded(t, 75)
	ctrl.TogglePlay()
	ctrl.OnTimeUpdate(60)

	ctrl.Seek(10)

	// A late event from the pre-seek position must not stomp the seek.
	ctrl.OnTimeUpdate(60.2)
	assert.Equal(t, 10.0, ctrl.Snapshot().CurrentTime)

	// Once the backend reports a time near the target, updates flow again.
	ctrl.OnTimeUpdate(10.3)
	assert.Equal(t, 10.3, ctrl.Snapshot().CurrentTime)
	ctrl.OnTimeUpdate(11)
	assert.Equal(t, 11.0, ctrl.Snapshot().CurrentTime)
}

func TestSkipNavigation(t *testing.T) {
	// Fixture [(0,5),(10,15),(20,25)] with the cursor at 12: back goes to
	// the previous entry's start, forward to the next entry's start.
	ctrl, _ := newLoaded(t, 75)
	ctrl.Seek(12)
	ctrl.OnTimeUpdate(12)

	ctrl.SkipToPreviousEntry()
	assert.Equal(t, 0.0, ctrl.Snapshot().CurrentTime)

	ctrl.Seek(12)
	ctrl.OnTimeUpdate(12)
	ctrl.SkipToNextEntry()
	assert.Equal(t, 20.0, ctrl.Snapshot().CurrentTime)
}

func TestSkipToPreviousEntry_InGapSeeksZero(t *testing.T) {
	ctrl, _ := newLoaded(t, 75)
	ctrl.Seek(17) // gap between entries 2 and 3
	ctrl.OnTimeUpdate(17)

	ctrl.SkipToPreviousEntry()
	assert.Equal(t, 0.0, ctrl.Snapshot().CurrentTime)
}

func TestSkipToNextEntry_PastLastStopsWithoutMoving(t *testing.T) {
	ctrl, _ := newLoaded(t, 75)
	ctrl.Seek(22)
	ctrl.OnTimeUpdate(22)
	ctrl.TogglePlay()

	ctrl.SkipToNextEntry()

	snap := ctrl.Snapshot()
	assert.Equal(t, 22.0, snap.CurrentTime)
	assert.False(t, snap.IsPlaying)
}

func TestNativeEventMirroring(t *testing.T) {
	ctrl, _ := newLoaded(t, 75)

	ctrl.OnPlay()
	assert.True(t, ctrl.Snapshot().IsPlaying)

	ctrl.OnPause()
	assert.False(t, ctrl.Snapshot().IsPlaying)

	ctrl.OnEnded()
	snap := ctrl.Snapshot()
	assert.Equal(t, StateEnded, snap.State)
	assert.Equal(t, 75.0, snap.CurrentTime)
}

func TestActiveEntry_Derivation(t *testing.T) {
	ctrl, _ := newLoaded(t, 75)

	ctrl.Seek(12)
	ctrl.OnTimeUpdate(12)
	active, ok := ctrl.ActiveEntry()
	require.True(t, ok)
	assert.Equal(t, "2", active.ID)

	ctrl.Seek(7)
	ctrl.OnTimeUpdate(7)
	_, ok = ctrl.ActiveEntry()
	assert.False(t, ok)
}

func TestOnChange_NotifiedAfterEveryMutation(t *testing.T) {
	ctrl, _ := newLoaded(t, 75)

	var snaps []Snapshot
	ctrl.OnChange(func(s Snapshot) { snaps = append(snaps, s) })

	ctrl.Seek(30)
	ctrl.TogglePlay()
	ctrl.OnTimeUpdate(30.4)

	require.Len(t, snaps, 3)
	assert.Equal(t, 30.0, snaps[0].CurrentTime)
	assert.True(t, snaps[1].IsPlaying)
	assert.Equal(t, 30.4, snaps[2].CurrentTime)
}

func TestTickerClock_DrivesControllerToEnd(t *testing.T) {
	clock := NewTickerClock(time.Millisecond)
	ctrl := NewController(nil, clock)
	clock.Bind(ctrl)
	ctrl.LoadMetadata(0.01)

	ctrl.TogglePlay()

	assert.Eventually(t, func() bool {
		snap := ctrl.Snapshot()
		return snap.State == StateEnded && snap.CurrentTime == 0.01
	}, time.Second, 2*time.Millisecond)

	clock.Close()
}

func TestTickerClock_PauseStopsAdvancing(t *testing.T) {
	clock := NewTickerClock(time.Millisecond)
	ctrl := NewController(nil, clock)
	clock.Bind(ctrl)
	ctrl.LoadMetadata(1000)

	ctrl.TogglePlay()
	assert.Eventually(t, func() bool {
		return ctrl.Snapshot().CurrentTime > 0
	}, time.Second, 2*time.Millisecond)

	ctrl.TogglePlay()
	at := ctrl.Snapshot().CurrentTime
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, at, ctrl.Snapshot().CurrentTime)

	clock.Close()
}
