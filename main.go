package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/lipeijia/video-ai-highlight-tool/config"
	"github.com/lipeijia/video-ai-highlight-tool/handlers"
	"github.com/lipeijia/video-ai-highlight-tool/internal/pipeline"
	"github.com/lipeijia/video-ai-highlight-tool/internal/session"
	"github.com/lipeijia/video-ai-highlight-tool/internal/store"
	"github.com/lipeijia/video-ai-highlight-tool/middleware"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}
	config.InitLogger(cfg.LogLevel)
	log := config.Log

	// Storage backends: Supabase when configured, local/in-memory otherwise.
	var videos store.VideoStore
	var media store.MediaStore
	if cfg.Supabase.Enabled() {
		pgStore, err := store.NewPostgrestStore(cfg.Supabase.URL, cfg.Supabase.ServiceKey)
		if err != nil {
			log.Fatalf("Failed to initialize PostgREST store: %v", err)
		}
		videos = pgStore

		supaClient, err := config.NewSupabaseClient(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize Supabase client: %v", err)
		}
		media = &store.SupabaseMediaStore{Client: supaClient, Bucket: cfg.Supabase.Bucket}
		log.Info("Using Supabase-backed video and media stores")
	} else {
		videos = store.NewMemoryStore()
		media = &store.LocalMediaStore{Dir: cfg.UploadDir}
		log.Info("Using in-memory video store and local media directory")
	}

	dispatcher := pipeline.NewDispatcher(cfg.Pipeline.Workers, cfg.Pipeline.QueueSize, log)
	dispatcher.Run()

	progress := pipeline.NewProgressTracker()
	sessions := session.NewRegistry(cfg.Playback.Tick(), log)

	h := handlers.NewApplicationHandler(log, videos, media, dispatcher, progress, sessions, cfg)

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	app.Use(middleware.RequestLogger(log))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "ok",
			"message": "Video highlight service is healthy",
		})
	})

	apiV1 := app.Group("/api/v1")

	apiV1.Post("/videos/upload", h.UploadVideo)
	apiV1.Get("/videos", h.ListVideos)
	apiV1.Get("/videos/:videoId", h.GetVideo)
	apiV1.Delete("/videos/:videoId", h.DeleteVideo)
	apiV1.Get("/videos/:videoId/progress", h.GetProgress)
	apiV1.Get("/videos/:videoId/transcript", h.GetTranscript)
	apiV1.Get("/videos/:videoId/highlights", h.GetHighlights)

	reviewSession := apiV1.Group("/videos/:videoId/session")
	reviewSession.Post("", h.CreateSession)
	reviewSession.Get("", h.GetSession)
	reviewSession.Delete("", h.DeleteSession)
	reviewSession.Post("/toggle-play", h.TogglePlay)
	reviewSession.Post("/seek", h.Seek)
	reviewSession.Post("/skip-back", h.SkipBack)
	reviewSession.Post("/skip-forward", h.SkipForward)
	reviewSession.Post("/highlights/:entryId/toggle", h.ToggleHighlight)
	reviewSession.Post("/events", h.HandleMediaEvent)

	go func() {
		log.Infof("Starting video highlight service on %s", cfg.ListenAddr)
		if err := app.Listen(cfg.ListenAddr); err != nil {
			log.Fatalf("Server stopped: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down...")
	sessions.CloseAll()
	dispatcher.Stop()
	if err := app.Shutdown(); err != nil {
		log.Errorf("Error during shutdown: %v", err)
	}
}
