package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/lipeijia/video-ai-highlight-tool/models"
)

// Registry tracks the active review session per video. At most one
// session exists per video; creating a new one closes and replaces the
// old, which resets playback to {0, paused} while a fresh highlight
// selection is reseeded from the video's suggestions.
type Registry struct {
	mu      sync.Mutex
	byVideo map[uuid.UUID]*Session
	tick    time.Duration
	logger  *logrus.Logger
}

// NewRegistry creates an empty registry. tick configures the software
// clock cadence of the sessions it spawns.
func NewRegistry(tick time.Duration, logger *logrus.Logger) *Registry {
	return &Registry{
		byVideo: make(map[uuid.UUID]*Session),
		tick:    tick,
		logger:  logger,
	}
}

// Create starts (or restarts) the review session for video.
func (r *Registry) Create(video *models.Video) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.byVideo[video.ID]; ok {
		old.Close()
	}
	s := New(video, r.tick, r.logger)
	r.byVideo[video.ID] = s
	return s
}

// Get returns the active session for videoID, if any.
func (r *Registry) Get(videoID uuid.UUID) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byVideo[videoID]
	return s, ok
}

// Remove closes and forgets the session for videoID. No-op when none
// exists.
func (r *Registry) Remove(videoID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.byVideo[videoID]; ok {
		s.Close()
		delete(r.byVideo, videoID)
	}
}

// CloseAll tears down every active session; used on shutdown.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, s := range r.byVideo {
		s.Close()
		delete(r.byVideo, id)
	}
}
