// Package transcript provides pure lookup and grouping functions over an
// ordered transcript. Nothing here holds state; every function is safe to
// recompute on any change.
package transcript

import (
	"strings"

	"github.com/lipeijia/video-ai-highlight-tool/models"
)

// DefaultSegment labels entries that carry no segment of their own.
const DefaultSegment = "Other"

// SegmentGroup is one named group of consecutive-in-source transcript
// entries. Groups are returned as a slice because their order matters:
// first appearance in the transcript wins.
type SegmentGroup struct {
	Label   string                   `json:"label"`
	Entries []models.TranscriptEntry `json:"entries"`
}

// GroupBySegment organizes entries by their segment label, preserving the
// original entry order inside each group and the first-seen order of the
// groups themselves. Entries without a label fall under DefaultSegment.
func GroupBySegment(entries []models.TranscriptEntry) []SegmentGroup {
	var groups []SegmentGroup
	index := make(map[string]int)

	for _, entry := range entries {
		label := entry.Segment
		if strings.TrimSpace(label) == "" {
			label = DefaultSegment
		}
		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, SegmentGroup{Label: label})
		}
		groups[i].Entries = append(groups[i].Entries, entry)
	}
	return groups
}

// FindActiveEntry returns the entry whose [StartTime, EndTime] range
// contains t, inclusive on both ends. When ranges overlap (malformed
// input) the first entry in list order wins; that tie-break is relied on
// by callers and tested, not incidental. The bool reports whether any
// entry matched — gaps between entries are legal.
func FindActiveEntry(entries []models.TranscriptEntry, t float64) (models.TranscriptEntry, bool) {
	for _, entry := range entries {
		if entry.Contains(t) {
			return entry, true
		}
	}
	return models.TranscriptEntry{}, false
}

// FindIndexContaining returns the list index of the entry containing t,
// or -1 when t falls in a gap. Same first-match policy as FindActiveEntry.
func FindIndexContaining(entries []models.TranscriptEntry, t float64) int {
	for i, entry := range entries {
		if entry.Contains(t) {
			return i
		}
	}
	return -1
}

// FindFirstAfter returns the first entry whose StartTime is strictly
// greater than t, for skip-forward navigation.
func FindFirstAfter(entries []models.TranscriptEntry, t float64) (models.TranscriptEntry, bool) {
	for _, entry := range entries {
		if entry.StartTime > t {
			return entry, true
		}
	}
	return models.TranscriptEntry{}, false
}

// Highlights returns the entries the transcription backend suggested as
// highlights, in original order.
func Highlights(entries []models.TranscriptEntry) []models.TranscriptEntry {
	var out []models.TranscriptEntry
	for _, entry := range entries {
		if entry.IsHighlight {
			out = append(out, entry)
		}
	}
	return out
}

// WordCount sums whitespace-separated words across the whole transcript.
func WordCount(entries []models.TranscriptEntry) int {
	total := 0
	for _, entry := range entries {
		total += len(strings.Fields(entry.Text))
	}
	return total
}
