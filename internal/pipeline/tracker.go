package pipeline

import (
	"sync"

	"github.com/google/uuid"

	"github.com/lipeijia/video-ai-highlight-tool/models"
)

// ProgressTracker keeps the latest pipeline progress per video for the
// progress-polling endpoint.
type ProgressTracker struct {
	mu       sync.RWMutex
	progress map[uuid.UUID]models.UploadProgress
}

// NewProgressTracker returns an empty tracker.
func NewProgressTracker() *ProgressTracker {
	return &ProgressTracker{progress: make(map[uuid.UUID]models.UploadProgress)}
}

// Set records the current progress for videoID.
func (t *ProgressTracker) Set(videoID uuid.UUID, p models.UploadProgress) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.progress[videoID] = p
}

// Get returns the last reported progress for videoID.
func (t *ProgressTracker) Get(videoID uuid.UUID) (models.UploadProgress, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	p, ok := t.progress[videoID]
	return p, ok
}

// Forget drops the progress entry for a deleted video.
func (t *ProgressTracker) Forget(videoID uuid.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.progress, videoID)
}
