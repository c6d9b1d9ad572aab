package tui

import (
	"fmt"
	"strconv"
)

// KeyCode is the little-endian packing of the bytes of one input unit
type KeyCode uint64

// Key codes recognized by the dashboard
const (
	KeyInterrupt KeyCode = 0
	KeyTab       KeyCode = 9
	KeyEnter     KeyCode = 10
	KeyEscape    KeyCode = 27
	KeyQ         KeyCode = 113

	KeyShiftTab KeyCode = 5921563    // ESC [ Z
	KeyUp       KeyCode = 4283163    // ESC [ A
	KeyDown     KeyCode = 4348699    // ESC [ B
	KeyRight    KeyCode = 4414235    // ESC [ C
	KeyLeft     KeyCode = 4479771    // ESC [ D
	KeyPageUp   KeyCode = 2117425947 // ESC [ 5 ~
	KeyPageDown KeyCode = 2117491483 // ESC [ 6 ~
)

const maxKeyLength = 8

var keyNames = map[KeyCode]string{
	KeyInterrupt: "interrupt",
	KeyTab:       "tab",
	KeyEnter:     "enter",
	KeyEscape:    "esc",
	KeyShiftTab:  "shift-tab",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyRight:     "right",
	KeyLeft:      "left",
	KeyPageUp:    "page-up",
	KeyPageDown:  "page-down",
}

// Pack returns the key code of the given bytes. Only the first 8 bytes are
// used.
func Pack(b []byte) KeyCode {
	var code KeyCode
	for i, c := range b {
		if i == maxKeyLength {
			break
		}
		code |= KeyCode(c) << (8 * i)
	}
	return code
}

// Key returns the key code of a single character
func Key(r rune) KeyCode {
	return Pack([]byte(string(r)))
}

// Bytes unpacks the key code back into the bytes it was made of
func (k KeyCode) Bytes() []byte {
	b := []byte{}
	for k > 0 {
		b = append(b, byte(k&0xff))
		k >>= 8
	}
	return b
}

func (k KeyCode) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	b := k.Bytes()
	if len(b) > 0 && b[0] >= 0x20 && b[0] != 0x7f {
		return string(b)
	}
	if k < 0x20 {
		return "ctrl-" + string(rune('a'+k-1))
	}
	return strconv.Quote(string(b))
}

// MouseButton identifies the button of a mouse report
type MouseButton int

// Buttons reported by X10 mouse tracking
const (
	MouseLeft       MouseButton = 0
	MouseMiddle     MouseButton = 1
	MouseRight      MouseButton = 2
	MouseRelease    MouseButton = 3
	MouseScrollUp   MouseButton = 64
	MouseScrollDown MouseButton = 65
)

// ClickEvent is a decoded mouse report with 0-based terminal coordinates
type ClickEvent struct {
	Button MouseButton
	X      int
	Y      int
}

func (e ClickEvent) String() string {
	return fmt.Sprintf("button %d at (%d, %d)", e.Button, e.X, e.Y)
}
