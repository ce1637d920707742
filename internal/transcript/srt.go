package transcript

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Caption is one SRT caption block.
type Caption struct {
	Start float64
	End   float64
	Text  string
}

var srtTimeRe = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2}),(\d{3})$`)

func parseSRTTime(s string) (float64, error) {
	m := srtTimeRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, fmt.Errorf("bad SRT timestamp %q", s)
	}

	h, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	sec, _ := strconv.Atoi(m[3])
	ms, _ := strconv.Atoi(m[4])
	return float64(h)*3600 + float64(min)*60 + float64(sec) + float64(ms)/1000, nil
}

func parseBlock(block []string) (Caption, error) {
	if len(block) < 2 {
		return Caption{}, fmt.Errorf("incomplete SRT block: %v", block)
	}

	// block[0] is the sequence number, block[1] the timing line.
	timing := strings.SplitN(block[1], "-->", 2)
	if len(timing) != 2 {
		return Caption{}, fmt.Errorf("bad SRT timing line %q", block[1])
	}

	start, err := parseSRTTime(timing[0])
	if err != nil {
		return Caption{}, err
	}
	end, err := parseSRTTime(timing[1])
	if err != nil {
		return Caption{}, err
	}

	return Caption{
		Start: start,
		End:   end,
		Text:  strings.Join(block[2:], " "),
	}, nil
}

// ParseSRT reads an SRT transcript into caption blocks.
func ParseSRT(r io.Reader) ([]Caption, error) {
	var captions []Caption
	var block []string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) != "" {
			block = append(block, line)
			continue
		}
		if len(block) > 0 {
			caption, err := parseBlock(block)
			if err != nil {
				return nil, err
			}
			captions = append(captions, caption)
			block = nil
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading SRT: %w", err)
	}

	// Last block when the file has no trailing blank line.
	if len(block) > 0 {
		caption, err := parseBlock(block)
		if err != nil {
			return nil, err
		}
		captions = append(captions, caption)
	}

	return captions, nil
}
