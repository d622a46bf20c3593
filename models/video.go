package models

import (
	"time"

	"github.com/google/uuid"
)

// ProcessingStatus tracks a video through the upload/transcription pipeline.
// The review surface only activates once a video reaches StatusCompleted.
type ProcessingStatus string

const (
	StatusUploading  ProcessingStatus = "uploading"
	StatusProcessing ProcessingStatus = "processing"
	StatusCompleted  ProcessingStatus = "completed"
	StatusFailed     ProcessingStatus = "failed"
)

// Valid reports whether s is one of the known processing statuses.
func (s ProcessingStatus) Valid() bool {
	switch s {
	case StatusUploading, StatusProcessing, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// TranscriptEntry is a single timestamped caption unit produced by the
// transcription backend. Entries arrive ordered by StartTime; gaps between
// entries are legal, overlaps are tolerated but not expected.
type TranscriptEntry struct {
	ID          string   `json:"id"`
	StartTime   float64  `json:"start_time"`
	EndTime     float64  `json:"end_time"`
	Text        string   `json:"text"`
	Speaker     *string  `json:"speaker,omitempty"`    // Nullable TEXT
	Confidence  *float64 `json:"confidence,omitempty"` // Nullable NUMERIC
	IsHighlight bool     `json:"is_highlight"`         // AI-suggested highlight flag
	Segment     string   `json:"segment,omitempty"`    // e.g. "Introduction"
}

// Contains reports whether t falls inside the entry's time range,
// inclusive on both ends.
func (e TranscriptEntry) Contains(t float64) bool {
	return t >= e.StartTime && t <= e.EndTime
}

// Video represents an uploaded source video and its generated transcript.
type Video struct {
	ID               uuid.UUID         `json:"id"`
	Title            string            `json:"title"`
	Duration         float64           `json:"duration"` // seconds, known once processing completes
	FileSize         *int64            `json:"file_size,omitempty"`
	Format           *string           `json:"format,omitempty"`
	StoragePath      string            `json:"storage_path"`
	ProcessingStatus ProcessingStatus  `json:"processing_status"`
	ErrorMessage     *string           `json:"error_message,omitempty"`
	Transcript       []TranscriptEntry `json:"transcript,omitempty"`
	UploadedAt       time.Time         `json:"uploaded_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}
