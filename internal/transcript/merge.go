package transcript

import (
	"fmt"
	"strings"
)

// Line is one speaker turn in the merged note.
type Line struct {
	Speaker string
	Text    string
}

// Merge assigns each caption to the speaker with the largest interval
// overlap and coalesces consecutive captions of the same speaker into one
// turn.
func Merge(segments []Segment, captions []Caption) []Line {
	joined := JoinConsecutive(segments)

	var lines []Line
	currentSpeaker := ""
	var currentText []string

	flush := func() {
		if currentSpeaker != "" {
			lines = append(lines, Line{
				Speaker: currentSpeaker,
				Text:    strings.Join(currentText, " "),
			})
		}
	}

	for _, caption := range captions {
		speaker := speakerFor(caption.Start, caption.End, joined)
		if speaker == currentSpeaker {
			currentText = append(currentText, caption.Text)
			continue
		}
		flush()
		currentSpeaker = speaker
		currentText = []string{caption.Text}
	}
	flush()

	return lines
}

// RenderMarkdown renders speaker turns as Obsidian-linkable lines,
// "[[SPEAKER_01]]: text".
func RenderMarkdown(lines []Line) string {
	var b strings.Builder
	for _, line := range lines {
		fmt.Fprintf(&b, "[[%s]]: %s\n", line.Speaker, line.Text)
	}
	return b.String()
}

// NoteFilename builds the note name for a recording, "YYYY-MM-DD <name>.md".
func NoteFilename(date, name string) string {
	return fmt.Sprintf("%s %s.md", date, name)
}
