package store

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lipeijia/video-ai-highlight-tool/models"
)

func newVideo(title string, uploadedAt time.Time) *models.Video {
	return &models.Video{
		ID:               uuid.New(),
		Title:            title,
		ProcessingStatus: models.StatusUploading,
		UploadedAt:       uploadedAt,
		UpdatedAt:        uploadedAt,
	}
}

func TestMemoryStore_CreateGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	video := newVideo("demo", time.Now())

	require.NoError(t, s.Create(ctx, video))

	got, err := s.Get(ctx, video.ID)
	require.NoError(t, err)
	assert.Equal(t, "demo", got.Title)

	_, err = s.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_ListOrderedByUpload(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	now := time.Now()

	second := newVideo("second", now.Add(time.Minute))
	first := newVideo("first", now)
	require.NoError(t, s.Create(ctx, second))
	require.NoError(t, s.Create(ctx, first))

	videos, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, "first", videos[0].Title)
	assert.Equal(t, "second", videos[1].Title)
}

func TestMemoryStore_UpdateStatus(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	video := newVideo("demo", time.Now())
	require.NoError(t, s.Create(ctx, video))

	require.NoError(t, s.UpdateStatus(ctx, video.ID, models.StatusFailed, "decode error"))

	got, err := s.Get(ctx, video.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFailed, got.ProcessingStatus)
	require.NotNil(t, got.ErrorMessage)
	assert.Equal(t, "decode error", *got.ErrorMessage)

	assert.ErrorIs(t, s.UpdateStatus(ctx, uuid.New(), models.StatusCompleted, ""), ErrNotFound)
}

func TestMemoryStore_AttachTranscript(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	video := newVideo("demo", time.Now())
	require.NoError(t, s.Create(ctx, video))

	entries := []models.TranscriptEntry{{ID: "1", StartTime: 0, EndTime: 5, Text: "hello"}}
	require.NoError(t, s.AttachTranscript(ctx, video.ID, entries, 75))

	got, err := s.Get(ctx, video.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.ProcessingStatus)
	assert.Equal(t, 75.0, got.Duration)
	require.Len(t, got.Transcript, 1)

	// Stored state must not alias the caller's slice.
	entries[0].Text = "mutated"
	again, err := s.Get(ctx, video.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", again.Transcript[0].Text)
}

func TestMemoryStore_Delete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	video := newVideo("demo", time.Now())
	require.NoError(t, s.Create(ctx, video))

	require.NoError(t, s.Delete(ctx, video.ID))
	assert.ErrorIs(t, s.Delete(ctx, video.ID), ErrNotFound)
}

func TestLocalMediaStore_Save(t *testing.T) {
	s := &LocalMediaStore{Dir: t.TempDir()}

	path, err := s.Save("abc/video.mp4", strings.NewReader("fake media bytes"))
	require.NoError(t, err)
	assert.FileExists(t, path)
}
