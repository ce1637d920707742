// Package transcript merges speaker-diarization segments with an SRT
// transcript into a speaker-attributed markdown note.
package transcript

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
)

// Segment is one diarized speaker interval.
type Segment struct {
	Start   float64
	End     float64
	Speaker string
}

// unknownSpeaker is assigned to captions no segment overlaps.
const unknownSpeaker = "UNKNOWN"

var segmentRe = regexp.MustCompile(`^(\d+(?:\.\d{1,3})?)s\s*-\s*(\d+(?:\.\d{1,3})?)s:\s*(\S+)$`)

// ParseSegments reads diarization output, one segment per line
// ("0.031s - 4.562s: SPEAKER_01"). Lines that do not look like segments
// (device banners, progress noise) are skipped. Segments are returned
// sorted by start time.
func ParseSegments(r io.Reader) ([]Segment, error) {
	var segments []Segment

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		m := segmentRe.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}

		start, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return nil, fmt.Errorf("parsing segment start %q: %w", m[1], err)
		}
		end, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return nil, fmt.Errorf("parsing segment end %q: %w", m[2], err)
		}

		segments = append(segments, Segment{Start: start, End: end, Speaker: m[3]})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading segments: %w", err)
	}

	sort.SliceStable(segments, func(i, j int) bool {
		return segments[i].Start < segments[j].Start
	})
	return segments, nil
}

// JoinConsecutive merges runs of segments from the same speaker into one
// interval each, bridging any gaps between them.
func JoinConsecutive(segments []Segment) []Segment {
	if len(segments) == 0 {
		return nil
	}

	joined := []Segment{segments[0]}
	for _, seg := range segments[1:] {
		last := &joined[len(joined)-1]
		if seg.Speaker == last.Speaker {
			if seg.End > last.End {
				last.End = seg.End
			}
			continue
		}
		joined = append(joined, seg)
	}
	return joined
}

// speakerFor returns the speaker whose segment overlaps [start, end) the
// most. A caption past the end of all segments belongs to the last speaker;
// one with no overlap at all is UNKNOWN.
func speakerFor(start, end float64, segments []Segment) string {
	best := unknownSpeaker
	maxOverlap := 0.0

	for _, seg := range segments {
		lo := max(start, seg.Start)
		hi := min(end, seg.End)
		if hi > lo && hi-lo > maxOverlap {
			maxOverlap = hi - lo
			best = seg.Speaker
		}
	}

	if best == unknownSpeaker && len(segments) > 0 {
		lastEnd := 0.0
		for _, seg := range segments {
			if seg.End > lastEnd {
				lastEnd = seg.End
			}
		}
		if start >= lastEnd {
			best = segments[len(segments)-1].Speaker
		}
	}

	return best
}
