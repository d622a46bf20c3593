package handlers

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/lipeijia/video-ai-highlight-tool/internal/pipeline"
	"github.com/lipeijia/video-ai-highlight-tool/internal/store"
	"github.com/lipeijia/video-ai-highlight-tool/internal/transcript"
	"github.com/lipeijia/video-ai-highlight-tool/models"
	"github.com/lipeijia/video-ai-highlight-tool/utils"
)

// UploadVideo accepts a multipart video upload, stores the media, and
// enqueues the simulated AI pipeline that will attach a transcript.
// POST /api/v1/videos/upload
func (h *ApplicationHandler) UploadVideo(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "A 'file' form field is required")
	}

	videoID := uuid.New()
	ext := filepath.Ext(fileHeader.Filename)
	storagePath := fmt.Sprintf("%s%s", videoID, ext)

	file, err := fileHeader.Open()
	if err != nil {
		h.Logger.Errorf("Error opening uploaded file %s: %v", fileHeader.Filename, err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not read uploaded file")
	}
	defer file.Close()

	storedPath, err := h.Media.Save(storagePath, file)
	if err != nil {
		h.Logger.Errorf("Error storing media for video %s: %v", videoID, err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not store uploaded file")
	}

	now := time.Now()
	size := fileHeader.Size
	format := contentTypeFor(fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	video := &models.Video{
		ID:               videoID,
		Title:            strings.TrimSuffix(fileHeader.Filename, ext),
		FileSize:         &size,
		Format:           &format,
		StoragePath:      storedPath,
		ProcessingStatus: models.StatusUploading,
		UploadedAt:       now,
		UpdatedAt:        now,
	}

	if err := h.Videos.Create(c.Context(), video); err != nil {
		h.Logger.Errorf("Error creating video record %s: %v", videoID, err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not create video record")
	}

	h.Progress.Set(videoID, models.UploadProgress{
		Percent: 0,
		Stage:   models.StageUploading,
		Message: models.StageUploading.Message(),
	})
	h.Dispatcher.Submit(&pipeline.ProcessVideoJob{
		VideoID:    videoID,
		Store:      h.Videos,
		Tracker:    h.Progress,
		Logger:     h.Logger,
		StageDelay: h.Cfg.Pipeline.StageDelay(),
	})

	h.Logger.Infof("Accepted upload %s as video %s", fileHeader.Filename, videoID)
	return utils.RespondWithJSON(c, fiber.StatusAccepted, video)
}

// ListVideos returns all known videos.
// GET /api/v1/videos
func (h *ApplicationHandler) ListVideos(c *fiber.Ctx) error {
	videos, err := h.Videos.List(c.Context())
	if err != nil {
		h.Logger.Errorf("Error listing videos: %v", err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not list videos")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, videos)
}

// GetVideo returns one video record with its transcript, if generated.
// GET /api/v1/videos/:videoId
func (h *ApplicationHandler) GetVideo(c *fiber.Ctx) error {
	video, err := h.videoFromParams(c)
	if err != nil {
		return h.respondVideoLookupError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, video)
}

// DeleteVideo removes a video record, its progress entry, and any active
// review session.
// DELETE /api/v1/videos/:videoId
func (h *ApplicationHandler) DeleteVideo(c *fiber.Ctx) error {
	videoID, err := uuid.Parse(c.Params("videoId"))
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid video ID format")
	}

	if err := h.Videos.Delete(c.Context(), videoID); err != nil {
		return h.respondVideoLookupError(c, err)
	}
	h.Sessions.Remove(videoID)
	h.Progress.Forget(videoID)

	h.Logger.Infof("Deleted video %s", videoID)
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{"id": videoID})
}

// GetProgress reports the pipeline progress for a video being processed.
// GET /api/v1/videos/:videoId/progress
func (h *ApplicationHandler) GetProgress(c *fiber.Ctx) error {
	videoID, err := uuid.Parse(c.Params("videoId"))
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid video ID format")
	}

	progress, ok := h.Progress.Get(videoID)
	if !ok {
		return utils.RespondWithError(c, fiber.StatusNotFound, "No progress recorded for this video")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, progress)
}

// GetTranscript returns the transcript grouped by segment.
// GET /api/v1/videos/:videoId/transcript
func (h *ApplicationHandler) GetTranscript(c *fiber.Ctx) error {
	video, err := h.videoFromParams(c)
	if err != nil {
		return h.respondVideoLookupError(c, err)
	}
	if video.ProcessingStatus != models.StatusCompleted {
		return utils.RespondWithError(c, fiber.StatusConflict, "Transcript is not ready yet")
	}

	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{
		"groups":     transcript.GroupBySegment(video.Transcript),
		"word_count": transcript.WordCount(video.Transcript),
	})
}

// GetHighlights returns the current highlight selection for a video: the
// live session's selection when one exists, otherwise the backend's
// suggestions.
// GET /api/v1/videos/:videoId/highlights
func (h *ApplicationHandler) GetHighlights(c *fiber.Ctx) error {
	video, err := h.videoFromParams(c)
	if err != nil {
		return h.respondVideoLookupError(c, err)
	}

	if s, ok := h.Sessions.Get(video.ID); ok {
		return utils.RespondWithJSON(c, fiber.StatusOK, s.SelectedHighlights())
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, transcript.Highlights(video.Transcript))
}

func (h *ApplicationHandler) videoFromParams(c *fiber.Ctx) (*models.Video, error) {
	videoID, err := uuid.Parse(c.Params("videoId"))
	if err != nil {
		return nil, errInvalidVideoID
	}
	return h.Videos.Get(c.Context(), videoID)
}

var errInvalidVideoID = errors.New("invalid video ID format")

func (h *ApplicationHandler) respondVideoLookupError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, errInvalidVideoID):
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid video ID format")
	case errors.Is(err, store.ErrNotFound):
		return utils.RespondWithError(c, fiber.StatusNotFound, "Video not found")
	default:
		h.Logger.Errorf("Error fetching video: %v", err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not fetch video")
	}
}

func contentTypeFor(filename, declared string) string {
	if declared != "" {
		return declared
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".mp4":
		return "video/mp4"
	case ".mov":
		return "video/quicktime"
	case ".webm":
		return "video/webm"
	}
	return "application/octet-stream"
}
