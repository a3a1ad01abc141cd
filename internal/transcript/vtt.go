package transcript

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseVTT parses WebVTT content into cues.
func ParseVTT(content string) ([]Cue, error) {
	// Trim any quotes from the content
	content = strings.Trim(content, "\"")

	// Convert literal \n to actual newlines if needed
	if strings.Contains(content, "\\n") {
		content = strings.ReplaceAll(content, "\\n", "\n")
	}
	content = strings.ReplaceAll(content, "\r\n", "\n")

	if !strings.HasPrefix(content, "WEBVTT") {
		return nil, fmt.Errorf("invalid VTT format: missing WEBVTT header")
	}

	// Drop the header block. yt-dlp writes "WEBVTT\nKind: captions\n..."
	// so everything up to the first blank line belongs to the header.
	if idx := strings.Index(content, "\n\n"); idx != -1 {
		content = content[idx+2:]
	} else {
		return nil, fmt.Errorf("invalid VTT format: no cue blocks")
	}

	var cues []Cue
	blocks := strings.Split(content, "\n\n")

	for _, block := range blocks {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		if len(lines) < 2 {
			continue
		}

		// A block may carry an optional cue identifier before the timing
		// line; skip to the line containing the arrow.
		timingLine := -1
		for i, line := range lines {
			if strings.Contains(line, " --> ") {
				timingLine = i
				break
			}
		}
		if timingLine == -1 || timingLine == len(lines)-1 {
			continue
		}

		timestamps := strings.SplitN(lines[timingLine], " --> ", 2)
		if len(timestamps) != 2 {
			continue
		}

		start, err := parseVTTTimestamp(timestamps[0])
		if err != nil {
			return nil, fmt.Errorf("invalid start timestamp: %w", err)
		}

		// Trailing cue settings ("align:start position:0%") follow the end
		// timestamp on the same line.
		endField := strings.Fields(timestamps[1])[0]
		end, err := parseVTTTimestamp(endField)
		if err != nil {
			return nil, fmt.Errorf("invalid end timestamp: %w", err)
		}

		text := stripCueTags(strings.Join(lines[timingLine+1:], " "))
		if text == "" {
			continue
		}

		cues = append(cues, Cue{
			Text:  text,
			Start: start,
			End:   end,
		})
	}

	return cues, nil
}

// parseVTTTimestamp converts HH:MM:SS.mmm (or MM:SS.mmm) to seconds.
func parseVTTTimestamp(timestamp string) (float64, error) {
	if !strings.Contains(timestamp, ".") {
		return 0, fmt.Errorf("invalid timestamp format: missing milliseconds")
	}

	parts := strings.Split(timestamp, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid timestamp format: expected HH:MM:SS.mmm")
	}

	hours := 0
	if len(parts) == 3 {
		h, err := strconv.Atoi(parts[0])
		if err != nil {
			return 0, fmt.Errorf("invalid hours: %w", err)
		}
		hours = h
		parts = parts[1:]
	}

	minutes, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid minutes: %w", err)
	}

	secondParts := strings.Split(parts[1], ".")
	if len(secondParts) != 2 {
		return 0, fmt.Errorf("invalid seconds format: missing milliseconds")
	}

	seconds, err := strconv.Atoi(secondParts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid seconds: %w", err)
	}

	milliseconds, err := strconv.Atoi(secondParts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid milliseconds: %w", err)
	}

	return float64(hours)*3600 + float64(minutes)*60 + float64(seconds) + float64(milliseconds)/1000, nil
}

// stripCueTags removes inline styling/karaoke tags like <c> and <00:00:01.000>.
func stripCueTags(text string) string {
	var b strings.Builder
	inTag := false
	for _, r := range text {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
