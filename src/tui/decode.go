package tui

import (
	"bytes"
	"unicode/utf8"
)

const (
	esc = 0x1b

	mouseReportLength = 6
	mouseBias         = 32
)

var mousePrefix = []byte{esc, '[', 'M'}

// inputEvent is either a key or a click
type inputEvent struct {
	key   KeyCode
	click *ClickEvent
}

// splitUnits cuts a token read from the terminal into input units: one
// control sequence, one mouse report, or one UTF-8 character each. A CSI
// sequence ends with its final byte or right before the next ESC.
func splitUnits(token []byte) [][]byte {
	units := [][]byte{}
	for len(token) > 0 {
		n := unitLength(token)
		units = append(units, token[:n])
		token = token[n:]
	}
	return units
}

func unitLength(b []byte) int {
	if b[0] != esc {
		_, size := utf8.DecodeRune(b)
		return size
	}
	if len(b) == 1 || b[1] == esc {
		return 1
	}
	switch b[1] {
	case '[':
		if bytes.HasPrefix(b, mousePrefix) {
			return min(len(b), mouseReportLength)
		}
		for i := 2; i < len(b); i++ {
			if b[i] == esc {
				return i
			}
			if b[i] >= 0x40 && b[i] <= 0x7e {
				return i + 1
			}
		}
		return len(b)
	case 'O':
		return min(len(b), 3)
	}
	// Alt + character
	_, size := utf8.DecodeRune(b[1:])
	return 1 + size
}

func decodeUnit(unit []byte) (inputEvent, error) {
	if bytes.HasPrefix(unit, mousePrefix) {
		if len(unit) < mouseReportLength {
			return inputEvent{}, protocolError("short mouse report: %q", unit)
		}
		return inputEvent{click: &ClickEvent{
			Button: MouseButton(int(unit[3]) - mouseBias),
			X:      max(0, int(unit[4])-mouseBias-1),
			Y:      max(0, int(unit[5])-mouseBias-1),
		}}, nil
	}
	if len(unit) > maxKeyLength {
		return inputEvent{}, protocolError("key sequence too long: %q", unit)
	}
	return inputEvent{key: Pack(unit)}, nil
}

// decode turns a token into events. Units that cannot be decoded are
// reported separately and skipped.
func decode(token []byte) ([]inputEvent, []error) {
	var events []inputEvent
	var errs []error
	for _, unit := range splitUnits(token) {
		event, err := decodeUnit(unit)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		events = append(events, event)
	}
	return events, errs
}
