package pipeline

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lipeijia/video-ai-highlight-tool/internal/store"
	"github.com/lipeijia/video-ai-highlight-tool/models"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newUploadedVideo(t *testing.T, s store.VideoStore) uuid.UUID {
	t.Helper()
	id := uuid.New()
	err := s.Create(context.Background(), &models.Video{
		ID:               id,
		Title:            "demo",
		ProcessingStatus: models.StatusUploading,
		UploadedAt:       time.Now(),
		UpdatedAt:        time.Now(),
	})
	require.NoError(t, err)
	return id
}

func TestProcessVideoJob_CompletesAndAttachesTranscript(t *testing.T) {
	s := store.NewMemoryStore()
	tracker := NewProgressTracker()
	id := newUploadedVideo(t, s)

	job := &ProcessVideoJob{VideoID: id, Store: s, Tracker: tracker, Logger: testLogger()}
	require.NoError(t, job.Execute())

	video, err := s.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, video.ProcessingStatus)
	assert.Equal(t, DemoDuration, video.Duration)
	assert.Len(t, video.Transcript, 12)

	progress, ok := tracker.Get(id)
	require.True(t, ok)
	assert.Equal(t, models.StageCompleted, progress.Stage)
	assert.Equal(t, 100, progress.Percent)
}

func TestStages_OrderAndPercents(t *testing.T) {
	stages := models.Stages()
	require.Equal(t, []models.Stage{
		models.StageUploading,
		models.StageProcessing,
		models.StageTranscribing,
		models.StageAnalyzing,
		models.StageCompleted,
	}, stages)

	// Progress is monotonically increasing across the sequence.
	last := 0
	for _, stage := range stages {
		assert.Greater(t, stage.Percent(), last)
		assert.NotEmpty(t, stage.Message())
		last = stage.Percent()
	}

	_, err := models.ParseStage("reticulating")
	assert.Error(t, err)
}

func TestProcessVideoJob_StoreFailureMarksVideoFailed(t *testing.T) {
	s := &failingStore{VideoStore: store.NewMemoryStore()}
	tracker := NewProgressTracker()
	id := newUploadedVideo(t, s.VideoStore)

	job := &ProcessVideoJob{VideoID: id, Store: s, Tracker: tracker, Logger: testLogger()}
	err := job.Execute()
	require.Error(t, err)

	video, getErr := s.VideoStore.Get(context.Background(), id)
	require.NoError(t, getErr)
	assert.Equal(t, models.StatusFailed, video.ProcessingStatus)
	require.NotNil(t, video.ErrorMessage)
	assert.Contains(t, *video.ErrorMessage, "transcript store unavailable")
}

// failingStore passes status updates through but refuses the final
// transcript attach.
type failingStore struct {
	VideoStore store.VideoStore
}

func (f *failingStore) Create(ctx context.Context, v *models.Video) error {
	return f.VideoStore.Create(ctx, v)
}
func (f *failingStore) Get(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	return f.VideoStore.Get(ctx, id)
}
func (f *failingStore) List(ctx context.Context) ([]models.Video, error) {
	return f.VideoStore.List(ctx)
}
func (f *failingStore) Delete(ctx context.Context, id uuid.UUID) error {
	return f.VideoStore.Delete(ctx, id)
}
func (f *failingStore) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ProcessingStatus, msg string) error {
	return f.VideoStore.UpdateStatus(ctx, id, status, msg)
}
func (f *failingStore) AttachTranscript(context.Context, uuid.UUID, []models.TranscriptEntry, float64) error {
	return errors.New("transcript store unavailable")
}

func TestDispatcher_RunsSubmittedJobs(t *testing.T) {
	s := store.NewMemoryStore()
	tracker := NewProgressTracker()
	id := newUploadedVideo(t, s)

	d := NewDispatcher(2, 10, testLogger())
	d.Run()
	defer d.Stop()

	d.Submit(&ProcessVideoJob{VideoID: id, Store: s, Tracker: tracker, Logger: testLogger()})

	assert.Eventually(t, func() bool {
		video, err := s.Get(context.Background(), id)
		return err == nil && video.ProcessingStatus == models.StatusCompleted
	}, 2*time.Second, 10*time.Millisecond)
}

func TestDemoTranscript_Shape(t *testing.T) {
	entries := DemoTranscript()
	require.Len(t, entries, 12)

	// Ordered, non-overlapping, with the documented gaps.
	for i := 1; i < len(entries); i++ {
		assert.GreaterOrEqual(t, entries[i].StartTime, entries[i-1].EndTime)
	}
	assert.Equal(t, DemoDuration, entries[len(entries)-1].EndTime)

	var highlighted []string
	for _, e := range entries {
		if e.IsHighlight {
			highlighted = append(highlighted, e.ID)
		}
	}
	assert.Equal(t, []string{"2", "8", "9", "11"}, highlighted)
}
