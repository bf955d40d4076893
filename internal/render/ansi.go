package render

import "strings"

// ansiState is the scanner state for walking a styled line. Styling escapes
// contribute zero width and must never be cut in half.
type ansiState int

const (
	statePrint ansiState = iota
	stateEsc             // just saw ESC
	stateCSI             // inside ESC [ ... terminated by 0x40-0x7e
	stateOSC             // inside ESC ] ... terminated by BEL or ESC \
)

const reset = "\x1b[m"

// TruncateANSI cuts s to at most width printable cells. Embedded escape
// sequences are copied through untouched and do not count toward the width,
// so styled text is never split mid-sequence. When anything styled was cut
// off, a reset is appended so the dropped tail cannot leak attributes into
// the rest of the screen.
func TruncateANSI(s string, width int) string {
	if width <= 0 {
		return ""
	}

	var b strings.Builder
	state := statePrint
	cells := 0
	sawEscape := false
	truncated := false

	for _, r := range s {
		switch state {
		case statePrint:
			if r == 0x1b {
				state = stateEsc
				sawEscape = true
				b.WriteRune(r)
				continue
			}
			if cells >= width {
				truncated = true
				continue
			}
			cells++
			b.WriteRune(r)

		case stateEsc:
			b.WriteRune(r)
			switch r {
			case '[':
				state = stateCSI
			case ']':
				state = stateOSC
			default:
				// Two-byte escape (e.g. ESC 7); done.
				state = statePrint
			}

		case stateCSI:
			b.WriteRune(r)
			// Parameter and intermediate bytes are 0x20-0x3f; anything in
			// 0x40-0x7e terminates the sequence.
			if r >= 0x40 && r <= 0x7e {
				state = statePrint
			}

		case stateOSC:
			b.WriteRune(r)
			if r == 0x07 {
				state = statePrint
			}
			// ESC \ terminators land back here via stateEsc on the next ESC;
			// close enough for the OSC 8 hyperlinks seen in practice.
		}
	}

	if truncated && sawEscape {
		b.WriteString(reset)
	}
	return b.String()
}

// VisibleWidth counts the printable cells of s, ignoring escape sequences.
func VisibleWidth(s string) int {
	state := statePrint
	cells := 0
	for _, r := range s {
		switch state {
		case statePrint:
			if r == 0x1b {
				state = stateEsc
				continue
			}
			cells++
		case stateEsc:
			switch r {
			case '[':
				state = stateCSI
			case ']':
				state = stateOSC
			default:
				state = statePrint
			}
		case stateCSI:
			if r >= 0x40 && r <= 0x7e {
				state = statePrint
			}
		case stateOSC:
			if r == 0x07 {
				state = statePrint
			}
		}
	}
	return cells
}
