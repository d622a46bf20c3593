package pipeline

import "github.com/lipeijia/video-ai-highlight-tool/models"

// DemoDuration is the length in seconds of the canned demo recording.
const DemoDuration = 75.0

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }

// DemoTranscript returns the canned transcript the simulated AI backend
// attaches to every processed video: a 75 second product demo with four
// segments, deliberate gaps at 10-15, 35-40 and 55-60 seconds, and four
// suggested highlights.
func DemoTranscript() []models.TranscriptEntry {
	presenter := "Presenter"
	return []models.TranscriptEntry{
		{ID: "1", StartTime: 0, EndTime: 5, Text: "Welcome to our product demonstration.", Speaker: strPtr(presenter), Confidence: f64Ptr(0.95), Segment: "Introduction"},
		{ID: "2", StartTime: 5, EndTime: 10, Text: "Today, we'll be showcasing our latest innovation.", Speaker: strPtr(presenter), Confidence: f64Ptr(0.92), IsHighlight: true, Segment: "Introduction"},
		{ID: "3", StartTime: 15, EndTime: 20, Text: "Our product has three main features.", Speaker: strPtr(presenter), Confidence: f64Ptr(0.88), Segment: "Key Features"},
		{ID: "4", StartTime: 20, EndTime: 25, Text: "First, it's incredibly easy to use.", Speaker: strPtr(presenter), Confidence: f64Ptr(0.9), Segment: "Key Features"},
		{ID: "5", StartTime: 25, EndTime: 30, Text: "Second, it's highly efficient.", Speaker: strPtr(presenter), Confidence: f64Ptr(0.93), Segment: "Key Features"},
		{ID: "6", StartTime: 30, EndTime: 35, Text: "And third, it's cost-effective.", Speaker: strPtr(presenter), Confidence: f64Ptr(0.91), Segment: "Key Features"},
		{ID: "7", StartTime: 40, EndTime: 45, Text: "Let me show you how it works.", Speaker: strPtr(presenter), Confidence: f64Ptr(0.87), Segment: "Demonstration"},
		{ID: "8", StartTime: 45, EndTime: 50, Text: "Simply press this button to start.", Speaker: strPtr(presenter), Confidence: f64Ptr(0.94), IsHighlight: true, Segment: "Demonstration"},
		{ID: "9", StartTime: 50, EndTime: 55, Text: "The interface is intuitive and user-friendly.", Speaker: strPtr(presenter), Confidence: f64Ptr(0.89), IsHighlight: true, Segment: "Demonstration"},
		{ID: "10", StartTime: 60, EndTime: 65, Text: "In conclusion, our product is a game-changer.", Speaker: strPtr(presenter), Confidence: f64Ptr(0.96), Segment: "Conclusion"},
		{ID: "11", StartTime: 65, EndTime: 70, Text: "We're excited to bring this to market.", Speaker: strPtr(presenter), Confidence: f64Ptr(0.93), IsHighlight: true, Segment: "Conclusion"},
		{ID: "12", StartTime: 70, EndTime: 75, Text: "Thank you for your attention.", Speaker: strPtr(presenter), Confidence: f64Ptr(0.97), Segment: "Conclusion"},
	}
}
