package handlers

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/lipeijia/video-ai-highlight-tool/internal/session"
	"github.com/lipeijia/video-ai-highlight-tool/models"
	"github.com/lipeijia/video-ai-highlight-tool/utils"
)

var validate = validator.New()

// SeekPayload is the body of a seek intent.
type SeekPayload struct {
	Time float64 `json:"time" validate:"gte=0"`
	// Resume requests playback after the seek (the timeline-click
	// behavior). Defaults to true.
	Resume *bool `json:"resume,omitempty"`
}

// MediaEventPayload forwards one native media-element event.
type MediaEventPayload struct {
	Type     string  `json:"type" validate:"required"`
	Time     float64 `json:"time,omitempty"`
	Duration float64 `json:"duration,omitempty"`
	Message  string  `json:"message,omitempty"`
}

// CreateSession starts (or restarts) the review session for a processed
// video.
// POST /api/v1/videos/:videoId/session
func (h *ApplicationHandler) CreateSession(c *fiber.Ctx) error {
	video, err := h.videoFromParams(c)
	if err != nil {
		return h.respondVideoLookupError(c, err)
	}
	if video.ProcessingStatus != models.StatusCompleted {
		return utils.RespondWithError(c, fiber.StatusConflict,
			"Video is still processing; a review session requires a completed transcript")
	}

	s := h.Sessions.Create(video)
	h.Logger.Infof("Started review session %s for video %s", s.ID, video.ID)
	return utils.RespondWithJSON(c, fiber.StatusCreated, s.Snapshot())
}

// GetSession returns the current derived view state.
// GET /api/v1/videos/:videoId/session
func (h *ApplicationHandler) GetSession(c *fiber.Ctx) error {
	s, ok := h.sessionFromParams(c)
	if !ok {
		return nil
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, s.Snapshot())
}

// DeleteSession tears the session down, cancelling its playback clock.
// DELETE /api/v1/videos/:videoId/session
func (h *ApplicationHandler) DeleteSession(c *fiber.Ctx) error {
	videoID, err := uuid.Parse(c.Params("videoId"))
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid video ID format")
	}
	h.Sessions.Remove(videoID)
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{"video_id": videoID})
}

// TogglePlay flips play/pause, rewinding first when the video has ended.
// POST /api/v1/videos/:videoId/session/toggle-play
func (h *ApplicationHandler) TogglePlay(c *fiber.Ctx) error {
	s, ok := h.sessionFromParams(c)
	if !ok {
		return nil
	}
	s.TogglePlay()
	return utils.RespondWithJSON(c, fiber.StatusOK, s.Snapshot())
}

// Seek moves the playback cursor; out-of-range targets are clamped, never
// rejected.
// POST /api/v1/videos/:videoId/session/seek
func (h *ApplicationHandler) Seek(c *fiber.Ctx) error {
	s, ok := h.sessionFromParams(c)
	if !ok {
		return nil
	}

	payload := new(SeekPayload)
	if err := c.BodyParser(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest,
			"Validation failed: "+joinErrors(utils.FormatValidationErrors(err)))
	}

	if payload.Resume == nil || *payload.Resume {
		s.JumpTo(payload.Time)
	} else {
		s.SeekOnly(payload.Time)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, s.Snapshot())
}

// SkipBack seeks to the start of the previous transcript entry.
// POST /api/v1/videos/:videoId/session/skip-back
func (h *ApplicationHandler) SkipBack(c *fiber.Ctx) error {
	s, ok := h.sessionFromParams(c)
	if !ok {
		return nil
	}
	s.SkipBack()
	return utils.RespondWithJSON(c, fiber.StatusOK, s.Snapshot())
}

// SkipForward seeks to the start of the next transcript entry.
// POST /api/v1/videos/:videoId/session/skip-forward
func (h *ApplicationHandler) SkipForward(c *fiber.Ctx) error {
	s, ok := h.sessionFromParams(c)
	if !ok {
		return nil
	}
	s.SkipForward()
	return utils.RespondWithJSON(c, fiber.StatusOK, s.Snapshot())
}

// ToggleHighlight flips the highlight selection for one transcript entry.
// Unknown entry ids are a no-op, not an error.
// POST /api/v1/videos/:videoId/session/highlights/:entryId/toggle
func (h *ApplicationHandler) ToggleHighlight(c *fiber.Ctx) error {
	s, ok := h.sessionFromParams(c)
	if !ok {
		return nil
	}

	// Fiber reuses the buffer backing c.Params once the handler returns;
	// clone the id because it outlives this request as a selection key.
	entryID := strings.Clone(c.Params("entryId"))
	selected := s.ToggleHighlight(entryID)
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{
		"entry_id": entryID,
		"selected": selected,
	})
}

// HandleMediaEvent forwards a native media-element event into the
// playback controller. Genuine playback failures come back as 502s; the
// server does not retry.
// POST /api/v1/videos/:videoId/session/events
func (h *ApplicationHandler) HandleMediaEvent(c *fiber.Ctx) error {
	s, ok := h.sessionFromParams(c)
	if !ok {
		return nil
	}

	payload := new(MediaEventPayload)
	if err := c.BodyParser(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest,
			"Validation failed: "+joinErrors(utils.FormatValidationErrors(err)))
	}

	eventType, err := session.ParseMediaEventType(payload.Type)
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := s.HandleMediaEvent(session.MediaEvent{
		Type:     eventType,
		Time:     payload.Time,
		Duration: payload.Duration,
		Message:  payload.Message,
	}); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadGateway, err.Error())
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, s.Snapshot())
}

// sessionFromParams resolves the active session for the :videoId route
// parameter. On failure the error response has already been written and
// ok is false.
func (h *ApplicationHandler) sessionFromParams(c *fiber.Ctx) (*session.Session, bool) {
	videoID, err := uuid.Parse(c.Params("videoId"))
	if err != nil {
		_ = utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid video ID format")
		return nil, false
	}
	s, ok := h.Sessions.Get(videoID)
	if !ok {
		_ = utils.RespondWithError(c, fiber.StatusNotFound, "No active review session for this video")
		return nil, false
	}
	return s, true
}

func joinErrors(errs []string) string {
	out := ""
	for i, e := range errs {
		if i > 0 {
			out += "; "
		}
		out += e
	}
	return out
}
