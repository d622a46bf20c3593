package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/lipeijia/video-ai-highlight-tool/internal/store"
	"github.com/lipeijia/video-ai-highlight-tool/models"
)

// ProcessVideoJob walks one uploaded video through the simulated AI
// pipeline: staged progress reporting, then transcript and highlight
// attachment. The transcript itself is canned — the backend is a black
// box from the review surface's point of view.
type ProcessVideoJob struct {
	VideoID    uuid.UUID
	Store      store.VideoStore
	Tracker    *ProgressTracker
	Logger     *logrus.Logger
	StageDelay time.Duration
}

// ID returns the job identifier used in worker logs.
func (j *ProcessVideoJob) ID() string {
	return fmt.Sprintf("process_video_%s", j.VideoID)
}

// Execute runs the stage sequence. A store failure at any point marks the
// video failed and surfaces the error to the worker.
func (j *ProcessVideoJob) Execute() error {
	ctx := context.Background()

	for _, stage := range models.Stages() {
		if j.StageDelay > 0 {
			time.Sleep(j.StageDelay)
		}

		j.Tracker.Set(j.VideoID, models.UploadProgress{
			Percent: stage.Percent(),
			Stage:   stage,
			Message: stage.Message(),
		})
		j.Logger.WithFields(logrus.Fields{
			"video_id": j.VideoID,
			"stage":    stage,
			"percent":  stage.Percent(),
		}).Info("Pipeline stage reached")

		if err := j.applyStage(ctx, stage); err != nil {
			j.fail(ctx, err)
			return err
		}
	}
	return nil
}

// applyStage performs the store transition for each stage. The switch is
// exhaustive over the closed stage set.
func (j *ProcessVideoJob) applyStage(ctx context.Context, stage models.Stage) error {
	switch stage {
	case models.StageUploading:
		return j.Store.UpdateStatus(ctx, j.VideoID, models.StatusUploading, "")
	case models.StageProcessing, models.StageTranscribing, models.StageAnalyzing:
		return j.Store.UpdateStatus(ctx, j.VideoID, models.StatusProcessing, "")
	case models.StageCompleted:
		return j.Store.AttachTranscript(ctx, j.VideoID, DemoTranscript(), DemoDuration)
	}
	return fmt.Errorf("unknown pipeline stage %q", stage)
}

func (j *ProcessVideoJob) fail(ctx context.Context, cause error) {
	j.Logger.WithField("video_id", j.VideoID).WithError(cause).Error("Pipeline processing failed")
	if err := j.Store.UpdateStatus(ctx, j.VideoID, models.StatusFailed, cause.Error()); err != nil {
		j.Logger.WithField("video_id", j.VideoID).WithError(err).Error("Failed to record pipeline failure")
	}
}
