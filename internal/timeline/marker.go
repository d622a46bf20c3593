// Package timeline computes the proportional geometry used to render
// highlight markers and the playback cursor on a normalized 0-100% axis.
package timeline

import "github.com/lipeijia/video-ai-highlight-tool/models"

// Marker is the rendered position of one highlighted entry on the
// timeline, as percentages of the total duration.
type Marker struct {
	EntryID      string  `json:"entry_id"`
	LeftPercent  float64 `json:"left_percent"`
	WidthPercent float64 `json:"width_percent"`
}

// MarkerFor maps an entry's time range onto the timeline. While the total
// duration is unknown or degenerate the zero Marker is returned so callers
// never divide by zero; such markers are skipped from rendering.
func MarkerFor(entry models.TranscriptEntry, totalDuration float64) Marker {
	if totalDuration <= 0 {
		return Marker{EntryID: entry.ID}
	}
	return Marker{
		EntryID:      entry.ID,
		LeftPercent:  100 * entry.StartTime / totalDuration,
		WidthPercent: 100 * (entry.EndTime - entry.StartTime) / totalDuration,
	}
}

// CursorPercent positions the progress dot for the current playback time.
// Same degenerate-duration guard as MarkerFor.
func CursorPercent(currentTime, totalDuration float64) float64 {
	if totalDuration <= 0 {
		return 0
	}
	return 100 * currentTime / totalDuration
}

// Selected reports whether the entry id is in the highlight selection.
// Kept as a tiny interface so timeline does not depend on the highlight
// package.
type Selected interface {
	IsSelected(entryID string) bool
}

// MarkersFor returns a marker for every entry currently selected as a
// highlight. With an unknown duration the result is empty: there is
// nothing meaningful to render yet.
func MarkersFor(entries []models.TranscriptEntry, selection Selected, totalDuration float64) []Marker {
	if totalDuration <= 0 {
		return nil
	}
	var markers []Marker
	for _, entry := range entries {
		if selection != nil && !selection.IsSelected(entry.ID) {
			continue
		}
		markers = append(markers, MarkerFor(entry, totalDuration))
	}
	return markers
}
