// Package store persists video records and uploaded media. The in-memory
// implementation backs tests and credential-less deployments; the
// PostgREST implementation mirrors the Supabase tables a hosted
// deployment uses.
package store

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"

	"github.com/lipeijia/video-ai-highlight-tool/models"
)

// ErrNotFound is returned when a video record does not exist.
var ErrNotFound = errors.New("video not found")

// VideoStore is the persistence surface for video records.
type VideoStore interface {
	Create(ctx context.Context, video *models.Video) error
	Get(ctx context.Context, id uuid.UUID) (*models.Video, error)
	List(ctx context.Context) ([]models.Video, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// UpdateStatus moves a video through the processing lifecycle.
	// errorMessage is recorded only for StatusFailed.
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ProcessingStatus, errorMessage string) error

	// AttachTranscript stores the generated transcript and the now-known
	// duration, flipping the video to StatusCompleted.
	AttachTranscript(ctx context.Context, id uuid.UUID, entries []models.TranscriptEntry, duration float64) error
}

// MediaStore persists the raw uploaded media file.
type MediaStore interface {
	// Save writes the media under the given storage path and returns the
	// path the record should reference.
	Save(path string, r io.Reader) (string, error)
}
