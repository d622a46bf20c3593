package models

import "fmt"

// Stage is one step of the simulated upload/transcription pipeline.
// It is a closed set: anything outside the constants below is rejected at
// parse time rather than passed through as a raw string.
type Stage string

const (
	StageUploading    Stage = "uploading"
	StageProcessing   Stage = "processing"
	StageTranscribing Stage = "transcribing"
	StageAnalyzing    Stage = "analyzing"
	StageCompleted    Stage = "completed"
)

// Stages returns the pipeline stages in execution order.
func Stages() []Stage {
	return []Stage{StageUploading, StageProcessing, StageTranscribing, StageAnalyzing, StageCompleted}
}

// ParseStage converts a raw string into a Stage, rejecting unknown values.
func ParseStage(s string) (Stage, error) {
	stage := Stage(s)
	switch stage {
	case StageUploading, StageProcessing, StageTranscribing, StageAnalyzing, StageCompleted:
		return stage, nil
	}
	return "", fmt.Errorf("unknown pipeline stage %q", s)
}

// Percent is the overall progress reported when this stage is reached.
func (s Stage) Percent() int {
	switch s {
	case StageUploading:
		return 20
	case StageProcessing:
		return 40
	case StageTranscribing:
		return 60
	case StageAnalyzing:
		return 80
	case StageCompleted:
		return 100
	}
	return 0
}

// Message is the user-facing status line for this stage.
func (s Stage) Message() string {
	switch s {
	case StageUploading:
		return "Uploading video..."
	case StageProcessing:
		return "Analyzing video content..."
	case StageTranscribing:
		return "Generating transcript..."
	case StageAnalyzing:
		return "Detecting highlight segments..."
	case StageCompleted:
		return "Processing complete!"
	}
	return ""
}

// UploadProgress is a snapshot of pipeline progress for one video.
type UploadProgress struct {
	Percent int    `json:"progress"`
	Stage   Stage  `json:"stage"`
	Message string `json:"message"`
}
