package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	postgrest "github.com/supabase-community/postgrest-go"

	"github.com/lipeijia/video-ai-highlight-tool/models"
)

const videosTable = "videos"

// videoRecord maps the videos table. Transcript is a JSONB column holding
// the entry array; nullable columns use pointers so inserts omit them.
type videoRecord struct {
	ID               string          `json:"id"`
	Title            string          `json:"title"`
	Duration         float64         `json:"duration"`
	FileSize         *int64          `json:"file_size,omitempty"`
	Format           *string         `json:"format,omitempty"`
	StoragePath      string          `json:"storage_path"`
	ProcessingStatus string          `json:"processing_status"`
	ErrorMessage     *string         `json:"error_message,omitempty"`
	Transcript       json.RawMessage `json:"transcript,omitempty"`
	UploadedAt       time.Time       `json:"uploaded_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// PostgrestStore persists videos in a Supabase/PostgREST table.
type PostgrestStore struct {
	client *postgrest.Client
}

// NewPostgrestStore builds a store against the given Supabase project.
func NewPostgrestStore(supabaseURL, serviceKey string) (*PostgrestStore, error) {
	client := postgrest.NewClient(supabaseURL+"/rest/v1", "", map[string]string{
		"apikey":        serviceKey,
		"Authorization": fmt.Sprintf("Bearer %s", serviceKey),
	})
	if client.ClientError != nil {
		return nil, fmt.Errorf("failed to initialize PostgREST client: %w", client.ClientError)
	}
	return &PostgrestStore{client: client}, nil
}

func (p *PostgrestStore) Create(_ context.Context, video *models.Video) error {
	record, err := toRecord(video)
	if err != nil {
		return err
	}

	var results []videoRecord
	if _, err := p.client.From(videosTable).Insert(record, false, "", "representation", "").ExecuteTo(&results); err != nil {
		return fmt.Errorf("failed to insert video record: %w", err)
	}
	if len(results) == 0 {
		return fmt.Errorf("no record returned after insert, video id: %s", video.ID)
	}
	return nil
}

func (p *PostgrestStore) Get(_ context.Context, id uuid.UUID) (*models.Video, error) {
	var results []videoRecord
	_, err := p.client.From(videosTable).
		Select("*", "", false).
		Eq("id", id.String()).
		ExecuteTo(&results)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch video %s: %w", id, err)
	}
	if len(results) == 0 {
		return nil, ErrNotFound
	}
	return fromRecord(results[0])
}

func (p *PostgrestStore) List(_ context.Context) ([]models.Video, error) {
	var results []videoRecord
	_, err := p.client.From(videosTable).
		Select("*", "", false).
		Order("uploaded_at", &postgrest.OrderOpts{Ascending: true}).
		ExecuteTo(&results)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}

	videos := make([]models.Video, 0, len(results))
	for _, record := range results {
		video, err := fromRecord(record)
		if err != nil {
			return nil, err
		}
		videos = append(videos, *video)
	}
	return videos, nil
}

func (p *PostgrestStore) Delete(_ context.Context, id uuid.UUID) error {
	var results []videoRecord
	_, err := p.client.From(videosTable).
		Delete("representation", "").
		Eq("id", id.String()).
		ExecuteTo(&results)
	if err != nil {
		return fmt.Errorf("failed to delete video %s: %w", id, err)
	}
	if len(results) == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *PostgrestStore) UpdateStatus(_ context.Context, id uuid.UUID, status models.ProcessingStatus, errorMessage string) error {
	update := map[string]interface{}{
		"processing_status": string(status),
		"updated_at":        time.Now(),
	}
	if status == models.StatusFailed && errorMessage != "" {
		update["error_message"] = errorMessage
	} else {
		update["error_message"] = nil
	}
	return p.update(id, update)
}

func (p *PostgrestStore) AttachTranscript(_ context.Context, id uuid.UUID, entries []models.TranscriptEntry, duration float64) error {
	transcriptJSON, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal transcript: %w", err)
	}
	return p.update(id, map[string]interface{}{
		"transcript":        json.RawMessage(transcriptJSON),
		"duration":          duration,
		"processing_status": string(models.StatusCompleted),
		"error_message":     nil,
		"updated_at":        time.Now(),
	})
}

func (p *PostgrestStore) update(id uuid.UUID, fields map[string]interface{}) error {
	var results []videoRecord
	_, err := p.client.From(videosTable).
		Update(fields, "", "").
		Eq("id", id.String()).
		ExecuteTo(&results)
	if err != nil {
		return fmt.Errorf("failed to update video %s: %w", id, err)
	}
	return nil
}

func toRecord(video *models.Video) (videoRecord, error) {
	record := videoRecord{
		ID:               video.ID.String(),
		Title:            video.Title,
		Duration:         video.Duration,
		FileSize:         video.FileSize,
		Format:           video.Format,
		StoragePath:      video.StoragePath,
		ProcessingStatus: string(video.ProcessingStatus),
		ErrorMessage:     video.ErrorMessage,
		UploadedAt:       video.UploadedAt,
		UpdatedAt:        video.UpdatedAt,
	}
	if len(video.Transcript) > 0 {
		transcriptJSON, err := json.Marshal(video.Transcript)
		if err != nil {
			return videoRecord{}, fmt.Errorf("failed to marshal transcript: %w", err)
		}
		record.Transcript = transcriptJSON
	}
	return record, nil
}

func fromRecord(record videoRecord) (*models.Video, error) {
	id, err := uuid.Parse(record.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid video id %q in store: %w", record.ID, err)
	}

	status := models.ProcessingStatus(record.ProcessingStatus)
	if !status.Valid() {
		return nil, fmt.Errorf("invalid processing status %q for video %s", record.ProcessingStatus, record.ID)
	}

	video := &models.Video{
		ID:               id,
		Title:            record.Title,
		Duration:         record.Duration,
		FileSize:         record.FileSize,
		Format:           record.Format,
		StoragePath:      record.StoragePath,
		ProcessingStatus: status,
		ErrorMessage:     record.ErrorMessage,
		UploadedAt:       record.UploadedAt,
		UpdatedAt:        record.UpdatedAt,
	}
	if len(record.Transcript) > 0 {
		if err := json.Unmarshal(record.Transcript, &video.Transcript); err != nil {
			return nil, fmt.Errorf("failed to unmarshal transcript for video %s: %w", record.ID, err)
		}
	}
	return video, nil
}
