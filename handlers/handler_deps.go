package handlers

import (
	"github.com/sirupsen/logrus"

	"github.com/lipeijia/video-ai-highlight-tool/config"
	"github.com/lipeijia/video-ai-highlight-tool/internal/pipeline"
	"github.com/lipeijia/video-ai-highlight-tool/internal/session"
	"github.com/lipeijia/video-ai-highlight-tool/internal/store"
)

// ApplicationHandler holds shared dependencies for the HTTP handlers.
type ApplicationHandler struct {
	Logger     *logrus.Logger
	Videos     store.VideoStore
	Media      store.MediaStore
	Dispatcher *pipeline.Dispatcher
	Progress   *pipeline.ProgressTracker
	Sessions   *session.Registry
	Cfg        *config.Config
}

// NewApplicationHandler wires the handler dependency set.
func NewApplicationHandler(
	logger *logrus.Logger,
	videos store.VideoStore,
	media store.MediaStore,
	dispatcher *pipeline.Dispatcher,
	progress *pipeline.ProgressTracker,
	sessions *session.Registry,
	cfg *config.Config,
) *ApplicationHandler {
	return &ApplicationHandler{
		Logger:     logger,
		Videos:     videos,
		Media:      media,
		Dispatcher: dispatcher,
		Progress:   progress,
		Sessions:   sessions,
		Cfg:        cfg,
	}
}
