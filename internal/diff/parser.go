package diff

import (
	"errors"
	"strconv"
	"strings"
)

// ErrExpectedBody is returned when a hunk header is not followed by at least
// one content line. Real git output never produces a bare header, so this
// indicates truncated or corrupt input that downstream hunk matching could
// not cope with.
var ErrExpectedBody = errors.New("expected another line in diff")

const (
	fileMarker = "diff"
	pathMarker = "+++ b/"
	hunkMarker = "@@"
)

// Parse splits raw unified-diff text into hunks grouped by file path.
//
// The input is segmented at lines beginning with "diff" (the per-file
// separator git emits). Within each segment the path is taken from the
// "+++ b/" marker line; a segment without one (e.g. a pure mode-change diff)
// yields an empty path and is skipped rather than treated as an error.
func Parse(raw string) (map[string][]*Hunk, error) {
	diffs := make(map[string][]*Hunk)
	if raw == "" {
		return diffs, nil
	}

	lines := strings.Split(strings.TrimRight(raw, "\n"), "\n")

	var segment []string
	flush := func() error {
		if len(segment) == 0 {
			return nil
		}
		path := segmentPath(segment)
		hunks, err := segmentHunks(segment)
		if err != nil {
			return err
		}
		if path != "" {
			diffs[path] = hunks
		}
		segment = nil
		return nil
	}

	started := false
	for _, line := range lines {
		if strings.HasPrefix(line, fileMarker) {
			if err := flush(); err != nil {
				return nil, err
			}
			started = true
			continue
		}
		if started {
			segment = append(segment, line)
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return diffs, nil
}

// segmentPath extracts the new-side path from a file segment, or "" when the
// marker line is absent or malformed.
func segmentPath(segment []string) string {
	for _, line := range segment {
		if strings.HasPrefix(line, pathMarker) {
			return line[len(pathMarker):]
		}
	}
	return ""
}

// segmentHunks groups a segment's lines under their "@@" headers. Lines
// before the first header are segment preamble ("---", "+++", "index") and
// are discarded.
func segmentHunks(segment []string) ([]*Hunk, error) {
	var hunks []*Hunk
	for _, line := range segment {
		if strings.HasPrefix(line, hunkMarker) {
			h := &Hunk{Header: line}
			h.OldStart, h.OldCount, h.NewStart, h.NewCount = parseRanges(line)
			hunks = append(hunks, h)
			continue
		}
		if len(hunks) == 0 {
			continue
		}
		last := hunks[len(hunks)-1]
		last.Lines = append(last.Lines, parseLine(line))
	}
	for _, h := range hunks {
		if len(h.Lines) == 0 {
			return nil, ErrExpectedBody
		}
	}
	return hunks, nil
}

// parseLine interprets the leading marker character of a hunk body line.
// An unrecognised leading character (or an empty line) falls back to
// Unchanged rather than failing; git's output format has grown markers over
// the years and a crash over one is worse than a mis-tag.
func parseLine(line string) Line {
	if line == "" {
		return Line{Kind: Unchanged}
	}
	var kind LineKind
	switch line[0] {
	case '+':
		kind = Added
	case '-':
		kind = Removed
	case ' ':
		kind = Unchanged
	default:
		kind = Unchanged
	}
	return Line{Kind: kind, Text: line[1:]}
}

// parseRanges pulls the "-a,b" and "+c,d" numeric fields out of a hunk
// header. A missing count defaults to 1, per the unified diff format.
// Malformed headers yield zero ranges, which simply never match during
// reconciliation.
func parseRanges(header string) (oldStart, oldCount, newStart, newCount int) {
	oldCount, newCount = 1, 1
	// Only the text between the two "@@" tokens carries the ranges; the
	// trailing context (function name etc.) may itself start with - or +.
	inner := header
	if i := strings.Index(inner, hunkMarker); i >= 0 {
		inner = inner[i+len(hunkMarker):]
	}
	if i := strings.Index(inner, hunkMarker); i >= 0 {
		inner = inner[:i]
	}
	for _, field := range strings.Fields(inner) {
		if len(field) < 2 {
			continue
		}
		switch field[0] {
		case '-':
			oldStart, oldCount = parseRange(field[1:])
		case '+':
			newStart, newCount = parseRange(field[1:])
		}
	}
	return oldStart, oldCount, newStart, newCount
}

func parseRange(s string) (start, count int) {
	count = 1
	if i := strings.IndexByte(s, ','); i >= 0 {
		count, _ = strconv.Atoi(s[i+1:])
		s = s[:i]
	}
	start, _ = strconv.Atoi(s)
	return start, count
}
