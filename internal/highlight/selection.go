// Package highlight owns the set of transcript entries the user has
// marked as highlights. Membership is independent of playback state: it
// survives seeks and play/pause, and resets only when the video changes.
package highlight

import (
	"sync"

	"github.com/lipeijia/video-ai-highlight-tool/models"
)

// Selection is the mutable highlight set for one loaded transcript.
type Selection struct {
	mu       sync.RWMutex
	videoID  string
	known    map[string]struct{}
	selected map[string]struct{}
}

// NewSelection returns an empty selection; call Initialize once a
// transcript is available.
func NewSelection() *Selection {
	return &Selection{
		known:    make(map[string]struct{}),
		selected: make(map[string]struct{}),
	}
}

// Initialize seeds the selection from every entry the backend suggested
// (IsHighlight). Idempotent per video: re-initializing with the same
// videoID leaves user edits untouched, so render-cycle callers cannot
// clobber a toggle. A different videoID resets everything.
func (s *Selection) Initialize(videoID string, entries []models.TranscriptEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.videoID == videoID && videoID != "" {
		return
	}

	s.videoID = videoID
	s.known = make(map[string]struct{}, len(entries))
	s.selected = make(map[string]struct{})
	for _, entry := range entries {
		s.known[entry.ID] = struct{}{}
		if entry.IsHighlight {
			s.selected[entry.ID] = struct{}{}
		}
	}
}

// Toggle flips membership for entryID. Ids that do not belong to the
// loaded transcript (e.g. stale ids from a previous video) are ignored.
// Returns the resulting membership state.
func (s *Selection) Toggle(entryID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.known[entryID]; !ok {
		return false
	}
	if _, on := s.selected[entryID]; on {
		delete(s.selected, entryID)
		return false
	}
	s.selected[entryID] = struct{}{}
	return true
}

// IsSelected reports membership for entryID.
func (s *Selection) IsSelected(entryID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, on := s.selected[entryID]
	return on
}

// SelectedIDs returns the selected ids as a set-shaped map for JSON
// rendering and membership tests in the view layer.
func (s *Selection) SelectedIDs() map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]bool, len(s.selected))
	for id := range s.selected {
		out[id] = true
	}
	return out
}

// Count returns how many entries are currently selected.
func (s *Selection) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.selected)
}
