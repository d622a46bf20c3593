package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lipeijia/video-ai-highlight-tool/models"
)

// MemoryStore is a concurrency-safe in-memory VideoStore. Records are
// copied on the way in and out so callers can never alias the stored
// state.
type MemoryStore struct {
	mu     sync.RWMutex
	videos map[uuid.UUID]models.Video
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{videos: make(map[uuid.UUID]models.Video)}
}

func (m *MemoryStore) Create(_ context.Context, video *models.Video) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.videos[video.ID] = copyVideo(*video)
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id uuid.UUID) (*models.Video, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	video, ok := m.videos[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := copyVideo(video)
	return &out, nil
}

func (m *MemoryStore) List(_ context.Context) ([]models.Video, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Video, 0, len(m.videos))
	for _, video := range m.videos {
		out = append(out, copyVideo(video))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UploadedAt.Before(out[j].UploadedAt)
	})
	return out, nil
}

func (m *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.videos[id]; !ok {
		return ErrNotFound
	}
	delete(m.videos, id)
	return nil
}

func (m *MemoryStore) UpdateStatus(_ context.Context, id uuid.UUID, status models.ProcessingStatus, errorMessage string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	video, ok := m.videos[id]
	if !ok {
		return ErrNotFound
	}
	video.ProcessingStatus = status
	video.ErrorMessage = nil
	if status == models.StatusFailed && errorMessage != "" {
		video.ErrorMessage = &errorMessage
	}
	video.UpdatedAt = time.Now()
	m.videos[id] = video
	return nil
}

func (m *MemoryStore) AttachTranscript(_ context.Context, id uuid.UUID, entries []models.TranscriptEntry, duration float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	video, ok := m.videos[id]
	if !ok {
		return ErrNotFound
	}
	video.Transcript = append([]models.TranscriptEntry(nil), entries...)
	video.Duration = duration
	video.ProcessingStatus = models.StatusCompleted
	video.ErrorMessage = nil
	video.UpdatedAt = time.Now()
	m.videos[id] = video
	return nil
}

func copyVideo(v models.Video) models.Video {
	v.Transcript = append([]models.TranscriptEntry(nil), v.Transcript...)
	return v
}
