package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

const frameMarker = '['

var ErrNoTimestamp = errors.New("No timestamp found in frame line")

var timestampRe = regexp.MustCompile(`\d+\.\d+`)

// IsFrame reports whether line is an event record. Only the first character
// is checked.
func IsFrame(line string) bool {
	return len(line) > 0 && line[0] == frameMarker
}

// FindTimestamp returns the value and byte span of the first decimal number in line.
func FindTimestamp(line string) (float64, int, int, error) {
	loc := timestampRe.FindStringIndex(line)
	if loc == nil {
		return 0, 0, 0, ErrNoTimestamp
	}
	// out of range values come back as ±Inf and are clamped like any other gap
	seconds, err := strconv.ParseFloat(line[loc[0]:loc[1]], 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, 0, 0, fmt.Errorf("Can't convert timestamp %q to seconds: %w", line[loc[0]:loc[1]], err)
	}
	return seconds, loc[0], loc[1], nil
}

func FormatTimestamp(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', 3, 64)
}

func ReplaceTimestamp(line string, start int, end int, seconds float64) string {
	return line[:start] + FormatTimestamp(seconds) + line[end:]
}
