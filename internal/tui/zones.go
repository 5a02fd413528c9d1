package tui

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// zoneID names a clickable element of a frame.
type zoneID int

// Table buttons use their table number (1-12) as the zone ID.
const (
	zonePro zoneID = iota + 100
	zoneClear
	zoneDelete
	zonePlayAgain
	// zoneDigit+d is the numpad key for digit d.
	zoneDigit zoneID = 200
)

// Zone markers are CSI sequences with a private final byte. They have no
// width, so lipgloss measures and pads around them, and they are stripped
// from the frame before it reaches the terminal.
var zoneMarker = regexp.MustCompile(`\x1b\[(\d+);([12])z`)

// zoneRect is the cell area an element covered, end column exclusive.
type zoneRect struct {
	x0, y0, x1, y1 int
}

func (r zoneRect) contains(x, y int) bool {
	return x >= r.x0 && x < r.x1 && y >= r.y0 && y <= r.y1
}

// markZone wraps a rendered element so scanZones can find it.
func markZone(id zoneID, s string) string {
	n := strconv.Itoa(int(id))
	return "\x1b[" + n + ";1z" + s + "\x1b[" + n + ";2z"
}

// scanZones strips zone markers from frame and returns where each marked
// element ended up.
func scanZones(frame string) (string, map[zoneID]zoneRect) {
	zones := make(map[zoneID]zoneRect)
	lines := strings.Split(frame, "\n")
	for y, line := range lines {
		matches := zoneMarker.FindAllStringSubmatchIndex(line, -1)
		if len(matches) == 0 {
			continue
		}
		for _, mt := range matches {
			n, err := strconv.Atoi(line[mt[2]:mt[3]])
			if err != nil {
				continue
			}
			id := zoneID(n)
			x := ansi.StringWidth(zoneMarker.ReplaceAllString(line[:mt[0]], ""))
			r := zones[id]
			if line[mt[4]:mt[5]] == "1" {
				r.x0, r.y0 = x, y
			} else {
				r.x1, r.y1 = x, y
			}
			zones[id] = r
		}
		lines[y] = zoneMarker.ReplaceAllString(line, "")
	}
	return strings.Join(lines, "\n"), zones
}

// zoneAt returns the element drawn at cell (x, y).
func zoneAt(zones map[zoneID]zoneRect, x, y int) (zoneID, bool) {
	for id, r := range zones {
		if r.contains(x, y) {
			return id, true
		}
	}
	return 0, false
}
