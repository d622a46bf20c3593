// Package session hosts the review session: one caller-owned aggregate
// per active video binding the playback controller, the highlight
// selection, and the derived transcript/timeline views. It replaces the
// ambient "current video" global the review surface would otherwise lean
// on — everything flows through an explicit Session handle.
package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/lipeijia/video-ai-highlight-tool/internal/highlight"
	"github.com/lipeijia/video-ai-highlight-tool/internal/playback"
	"github.com/lipeijia/video-ai-highlight-tool/internal/timeline"
	"github.com/lipeijia/video-ai-highlight-tool/internal/transcript"
	"github.com/lipeijia/video-ai-highlight-tool/models"
	"github.com/lipeijia/video-ai-highlight-tool/utils"
)

// Snapshot is the full derived view state handed to the render layer.
// Every field is a pure function of the stored controller/selection
// state, recomputed on each read.
type Snapshot struct {
	SessionID     string                     `json:"session_id"`
	VideoID       string                     `json:"video_id"`
	CurrentTime   float64                    `json:"current_time"`
	Duration      float64                    `json:"duration"`
	IsPlaying     bool                       `json:"is_playing"`
	State         string                     `json:"state"`
	Clock         string                     `json:"clock"`
	ActiveEntryID string                     `json:"active_entry_id,omitempty"`
	CursorPercent float64                    `json:"cursor_percent"`
	Markers       []timeline.Marker         `json:"markers"`
	Groups        []transcript.SegmentGroup `json:"groups"`
	Highlights    map[string]bool           `json:"highlights"`
}

// Session binds one video's playback state and highlight selection.
type Session struct {
	ID    uuid.UUID
	Video *models.Video

	ctrl      *playback.Controller
	selection *highlight.Selection
	clock     *playback.TickerClock
	logger    *logrus.Logger
}

// New creates a session for a fully processed video, with playback reset
// to {0, paused-once-loaded} and the highlight selection seeded from the
// backend's suggestions. tick <= 0 falls back to the default software
// clock cadence.
func New(video *models.Video, tick time.Duration, logger *logrus.Logger) *Session {
	clock := playback.NewTickerClock(tick)
	ctrl := playback.NewController(video.Transcript, clock)
	clock.Bind(ctrl)

	selection := highlight.NewSelection()
	selection.Initialize(video.ID.String(), video.Transcript)

	s := &Session{
		ID:        uuid.New(),
		Video:     video,
		ctrl:      ctrl,
		selection: selection,
		clock:     clock,
		logger:    logger,
	}

	if logger != nil {
		ctrl.OnChange(func(snap playback.Snapshot) {
			logger.WithFields(logrus.Fields{
				"session_id":   s.ID,
				"video_id":     video.ID,
				"current_time": snap.CurrentTime,
				"state":        snap.State.String(),
			}).Debug("Playback state changed")
		})
	}

	// The media duration is already known from processing; loading it here
	// mirrors the loadedmetadata event a live media element would fire.
	ctrl.LoadMetadata(video.Duration)
	return s
}

// Snapshot assembles the derived view state.
func (s *Session) Snapshot() Snapshot {
	snap := s.ctrl.Snapshot()

	out := Snapshot{
		SessionID:     s.ID.String(),
		VideoID:       s.Video.ID.String(),
		CurrentTime:   snap.CurrentTime,
		Duration:      snap.Duration,
		IsPlaying:     snap.IsPlaying,
		State:         snap.State.String(),
		Clock:         utils.FormatClock(snap.CurrentTime, snap.Duration),
		CursorPercent: timeline.CursorPercent(snap.CurrentTime, snap.Duration),
		Markers:       timeline.MarkersFor(s.Video.Transcript, s.selection, snap.Duration),
		Groups:        transcript.GroupBySegment(s.Video.Transcript),
		Highlights:    s.selection.SelectedIDs(),
	}
	if active, ok := transcript.FindActiveEntry(s.Video.Transcript, snap.CurrentTime); ok {
		out.ActiveEntryID = active.ID
	}
	return out
}

// TogglePlay flips play/pause. Pressing play at the end of the video
// rewinds to the start first — the documented replay convenience layered
// on the controller's bare primitives.
func (s *Session) TogglePlay() {
	if s.ctrl.AtEnd() {
		s.ctrl.Seek(0)
	}
	s.ctrl.TogglePlay()
}

// JumpTo seeks to a clicked time (timeline or transcript row) and resumes
// playback unless the target is the end of the video.
func (s *Session) JumpTo(t float64) {
	s.ctrl.Seek(t)
	s.ctrl.Play()
}

// SeekOnly moves the cursor without touching the play state.
func (s *Session) SeekOnly(t float64) {
	s.ctrl.Seek(t)
}

// SkipBack jumps to the start of the previous transcript entry.
func (s *Session) SkipBack() {
	s.ctrl.SkipToPreviousEntry()
}

// SkipForward jumps to the start of the next transcript entry.
func (s *Session) SkipForward() {
	s.ctrl.SkipToNextEntry()
}

// ToggleHighlight flips the highlight selection for entryID; unknown ids
// are ignored. Returns the resulting membership.
func (s *Session) ToggleHighlight(entryID string) bool {
	return s.selection.Toggle(entryID)
}

// IsHighlighted reports selection membership for entryID.
func (s *Session) IsHighlighted(entryID string) bool {
	return s.selection.IsSelected(entryID)
}

// SelectedHighlights returns the selected transcript entries in original
// transcript order.
func (s *Session) SelectedHighlights() []models.TranscriptEntry {
	var out []models.TranscriptEntry
	for _, entry := range s.Video.Transcript {
		if s.selection.IsSelected(entry.ID) {
			out = append(out, entry)
		}
	}
	return out
}

// MediaEventType identifies a forwarded native media event.
type MediaEventType string

const (
	EventTimeUpdate     MediaEventType = "timeupdate"
	EventLoadedMetadata MediaEventType = "loadedmetadata"
	EventPlay           MediaEventType = "play"
	EventPause          MediaEventType = "pause"
	EventEnded          MediaEventType = "ended"
	EventError          MediaEventType = "error"
)

// ParseMediaEventType validates a raw event name against the closed set.
func ParseMediaEventType(s string) (MediaEventType, error) {
	t := MediaEventType(s)
	switch t {
	case EventTimeUpdate, EventLoadedMetadata, EventPlay, EventPause, EventEnded, EventError:
		return t, nil
	}
	return "", fmt.Errorf("unknown media event type %q", s)
}

// MediaEvent is one event from a live media element, forwarded verbatim.
type MediaEvent struct {
	Type     MediaEventType
	Time     float64
	Duration float64
	Message  string
}

// HandleMediaEvent feeds a native media event into the corresponding
// controller operation. Playback errors are logged and surfaced to the
// caller; the session never retries.
func (s *Session) HandleMediaEvent(ev MediaEvent) error {
	switch ev.Type {
	case EventTimeUpdate:
		s.ctrl.OnTimeUpdate(ev.Time)
	case EventLoadedMetadata:
		s.ctrl.LoadMetadata(ev.Duration)
	case EventPlay:
		s.ctrl.OnPlay()
	case EventPause:
		s.ctrl.OnPause()
	case EventEnded:
		s.ctrl.OnEnded()
	case EventError:
		s.ctrl.Pause()
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{
				"session_id": s.ID,
				"video_id":   s.Video.ID,
			}).Errorf("Media playback failure: %s", ev.Message)
		}
		return fmt.Errorf("media playback failure: %s", ev.Message)
	default:
		return fmt.Errorf("unknown media event type %q", ev.Type)
	}
	return nil
}

// Close tears the session down, cancelling the software clock so no
// callback mutates state after unmount.
func (s *Session) Close() {
	s.clock.Close()
}
