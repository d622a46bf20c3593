package highlight

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lipeijia/video-ai-highlight-tool/models"
)

func fixture() []models.TranscriptEntry {
	return []models.TranscriptEntry{
		{ID: "1", StartTime: 0, EndTime: 5},
		{ID: "2", StartTime: 5, EndTime: 10, IsHighlight: true},
		{ID: "3", StartTime: 15, EndTime: 20},
	}
}

func TestInitialize_SeedsFromSuggestedFlags(t *testing.T) {
	s := NewSelection()
	s.Initialize("vid-1", fixture())

	assert.True(t, s.IsSelected("2"))
	assert.False(t, s.IsSelected("1"))
	assert.Equal(t, 1, s.Count())
}

func TestInitialize_IdempotentAcrossUserEdits(t *testing.T) {
	s := NewSelection()
	entries := fixture()

	s.Initialize("vid-1", entries)
	s.Toggle("1") // user adds
	s.Toggle("2") // user removes the suggestion

	// A re-render calling Initialize again must not reset the edits.
	s.Initialize("vid-1", entries)

	assert.True(t, s.IsSelected("1"))
	assert.False(t, s.IsSelected("2"))
}

func TestInitialize_NewVideoResets(t *testing.T) {
	s := NewSelection()
	s.Initialize("vid-1", fixture())
	s.Toggle("1")

	s.Initialize("vid-2", []models.TranscriptEntry{{ID: "a", IsHighlight: true}})

	assert.False(t, s.IsSelected("1"))
	assert.True(t, s.IsSelected("a"))
}

func TestToggle_UnknownIDIsNoOp(t *testing.T) {
	s := NewSelection()
	s.Initialize("vid-1", fixture())

	assert.False(t, s.Toggle("stale-id-from-previous-video"))
	assert.Equal(t, 1, s.Count())
}

func TestToggle_FlipsMembership(t *testing.T) {
	s := NewSelection()
	s.Initialize("vid-1", fixture())

	assert.True(t, s.Toggle("3"))
	assert.True(t, s.IsSelected("3"))
	assert.False(t, s.Toggle("3"))
	assert.False(t, s.IsSelected("3"))
}

func TestSelectedIDs(t *testing.T) {
	s := NewSelection()
	s.Initialize("vid-1", fixture())
	s.Toggle("1")

	assert.Equal(t, map[string]bool{"1": true, "2": true}, s.SelectedIDs())
}
