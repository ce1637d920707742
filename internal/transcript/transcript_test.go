package transcript

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSegments(t *testing.T) {
	input := `Using Apple Silicon GPU (MPS): mps
5.000s - 9.250s: SPEAKER_00
0.031s - 4.562s: SPEAKER_01

10.5s - 12s: SPEAKER_01
`

	segments, err := ParseSegments(strings.NewReader(input))
	require.NoError(t, err)

	// Non-segment lines skipped, segments sorted by start.
	require.Len(t, segments, 3)
	assert.Equal(t, Segment{Start: 0.031, End: 4.562, Speaker: "SPEAKER_01"}, segments[0])
	assert.Equal(t, Segment{Start: 5, End: 9.25, Speaker: "SPEAKER_00"}, segments[1])
	assert.Equal(t, Segment{Start: 10.5, End: 12, Speaker: "SPEAKER_01"}, segments[2])
}

func TestParseSegments_Empty(t *testing.T) {
	segments, err := ParseSegments(strings.NewReader("no segments here\n"))
	require.NoError(t, err)
	assert.Empty(t, segments)
}

func TestJoinConsecutive(t *testing.T) {
	segments := []Segment{
		{Start: 0, End: 2, Speaker: "SPEAKER_00"},
		{Start: 3, End: 5, Speaker: "SPEAKER_00"},
		{Start: 6, End: 8, Speaker: "SPEAKER_01"},
		{Start: 9, End: 10, Speaker: "SPEAKER_00"},
	}

	joined := JoinConsecutive(segments)

	// Same-speaker neighbors merge across the gap; a later return of the
	// first speaker starts a fresh interval.
	require.Len(t, joined, 3)
	assert.Equal(t, Segment{Start: 0, End: 5, Speaker: "SPEAKER_00"}, joined[0])
	assert.Equal(t, Segment{Start: 6, End: 8, Speaker: "SPEAKER_01"}, joined[1])
	assert.Equal(t, Segment{Start: 9, End: 10, Speaker: "SPEAKER_00"}, joined[2])
}

func TestJoinConsecutive_Empty(t *testing.T) {
	assert.Nil(t, JoinConsecutive(nil))
}

func TestSpeakerFor(t *testing.T) {
	segments := []Segment{
		{Start: 0, End: 5, Speaker: "SPEAKER_00"},
		{Start: 5, End: 10, Speaker: "SPEAKER_01"},
	}

	tests := []struct {
		name       string
		start, end float64
		want       string
	}{
		{"inside first", 1, 3, "SPEAKER_00"},
		{"inside second", 6, 9, "SPEAKER_01"},
		{"straddles, mostly second", 4, 9, "SPEAKER_01"},
		{"straddles, mostly first", 1, 6, "SPEAKER_00"},
		{"after all segments goes to last speaker", 11, 13, "SPEAKER_01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, speakerFor(tt.start, tt.end, segments))
		})
	}
}

func TestSpeakerFor_NoOverlapBeforeSegments(t *testing.T) {
	segments := []Segment{{Start: 10, End: 20, Speaker: "SPEAKER_00"}}
	assert.Equal(t, "UNKNOWN", speakerFor(0, 5, segments))
}

func TestParseSRT(t *testing.T) {
	input := `1
00:00:00,000 --> 00:00:02,500
Hallo, hallo

2
00:00:02,500 --> 00:00:05,000
Halli hallo!
Wie geht's?
`

	captions, err := ParseSRT(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, captions, 2)
	assert.Equal(t, Caption{Start: 0, End: 2.5, Text: "Hallo, hallo"}, captions[0])
	assert.Equal(t, Caption{Start: 2.5, End: 5, Text: "Halli hallo! Wie geht's?"}, captions[1])
}

func TestParseSRT_NoTrailingBlankLine(t *testing.T) {
	input := "1\n01:02:03,450 --> 01:02:04,000\nlast words"

	captions, err := ParseSRT(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, captions, 1)
	assert.InDelta(t, 3723.45, captions[0].Start, 1e-9)
	assert.Equal(t, "last words", captions[0].Text)
}

func TestParseSRT_BadTiming(t *testing.T) {
	input := "1\n00:00 --> 00:01\noops\n"

	_, err := ParseSRT(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad SRT")
}

func TestMerge(t *testing.T) {
	segments := []Segment{
		{Start: 0, End: 4, Speaker: "SPEAKER_01"},
		{Start: 4, End: 8, Speaker: "SPEAKER_00"},
	}
	captions := []Caption{
		{Start: 0, End: 2, Text: "Hallo, hallo"},
		{Start: 2, End: 4, Text: "schön dich zu sehen"},
		{Start: 4.5, End: 7, Text: "Halli hallo!"},
		{Start: 9, End: 11, Text: "Bis bald"},
	}

	lines := Merge(segments, captions)

	// Consecutive captions of one speaker coalesce; the caption past the
	// last segment goes to the last speaker.
	require.Len(t, lines, 2)
	assert.Equal(t, Line{Speaker: "SPEAKER_01", Text: "Hallo, hallo schön dich zu sehen"}, lines[0])
	assert.Equal(t, Line{Speaker: "SPEAKER_00", Text: "Halli hallo! Bis bald"}, lines[1])
}

func TestMerge_Empty(t *testing.T) {
	assert.Nil(t, Merge(nil, nil))
}

func TestRenderMarkdown(t *testing.T) {
	lines := []Line{
		{Speaker: "SPEAKER_01", Text: "Hallo, hallo"},
		{Speaker: "SPEAKER_00", Text: "Halli hallo!"},
	}

	got := RenderMarkdown(lines)
	assert.Equal(t, "[[SPEAKER_01]]: Hallo, hallo\n[[SPEAKER_00]]: Halli hallo!\n", got)
}

func TestNoteFilename(t *testing.T) {
	assert.Equal(t, "2025-03-15 interview.md", NoteFilename("2025-03-15", "interview"))
}
