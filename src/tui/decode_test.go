package tui

import (
	"reflect"
	"testing"
)

func TestPackedKeyCodes(t *testing.T) {
	assert := func(seq string, expected KeyCode) {
		if code := Pack([]byte(seq)); code != expected {
			t.Errorf("%q: %d, expected %d", seq, code, expected)
		}
	}
	assert("\t", KeyTab)
	assert("\n", KeyEnter)
	assert("\x1b", KeyEscape)
	assert("q", KeyQ)
	assert("\x1b[Z", KeyShiftTab)
	assert("\x1b[A", KeyUp)
	assert("\x1b[B", KeyDown)
	assert("\x1b[C", KeyRight)
	assert("\x1b[D", KeyLeft)
	assert("\x1b[5~", KeyPageUp)
	assert("\x1b[6~", KeyPageDown)

	if Key('q') != KeyQ {
		t.Error("Key('q') should be KeyQ")
	}
	if string(KeyPageDown.Bytes()) != "\x1b[6~" {
		t.Errorf("Unexpected bytes: %q", KeyPageDown.Bytes())
	}
}

func TestKeyCodeString(t *testing.T) {
	assert := func(code KeyCode, expected string) {
		if code.String() != expected {
			t.Errorf("%d: %q, expected %q", code, code.String(), expected)
		}
	}
	assert(KeyInterrupt, "interrupt")
	assert(KeyShiftTab, "shift-tab")
	assert(Key('x'), "x")
	assert(Key('é'), "é")
	assert(Pack([]byte{1}), "ctrl-a")
	assert(Pack([]byte("\x1b[H")), `"\x1b[H"`)
}

func TestSplitUnits(t *testing.T) {
	assert := func(token string, expected ...string) {
		units := []string{}
		for _, unit := range splitUnits([]byte(token)) {
			units = append(units, string(unit))
		}
		if !reflect.DeepEqual(units, expected) {
			t.Errorf("%q: %q, expected %q", token, units, expected)
		}
	}
	assert("q", "q")
	assert("abc", "a", "b", "c")
	assert("日x", "日", "x")
	assert("\x1b[A\x1b[B", "\x1b[A", "\x1b[B")
	assert("\x1b\x1b", "\x1b", "\x1b")
	assert("\x1b[Aq\x1b[5~", "\x1b[A", "q", "\x1b[5~")
	assert("\x1bOPx", "\x1bOP", "x")
	assert("\x1bxy", "\x1bx", "y")
	assert("\x1b[12", "\x1b[12")
	assert("\x1b[1\x1b[B", "\x1b[1", "\x1b[B")
	assert("\x1b[M !!\x1b[M\"##", "\x1b[M !!", "\x1b[M\"##")
	assert("\x1b[M !!q", "\x1b[M !!", "q")
	assert("\x1b[M ", "\x1b[M ")
}

func TestDecodeClick(t *testing.T) {
	events, errs := decode([]byte{esc, '[', 'M', 32, 42, 37})
	if len(errs) > 0 {
		t.Fatal(errs)
	}
	if len(events) != 1 || events[0].click == nil {
		t.Fatalf("Expected one click: %v", events)
	}
	if *events[0].click != (ClickEvent{Button: MouseLeft, X: 9, Y: 4}) {
		t.Errorf("Unexpected click: %v", *events[0].click)
	}

	events, _ = decode([]byte{esc, '[', 'M', 96, 33, 33, esc, '[', 'M', 97, 50, 40})
	expected := []ClickEvent{{MouseScrollUp, 0, 0}, {MouseScrollDown, 17, 7}}
	if len(events) != 2 {
		t.Fatalf("Expected two clicks: %v", events)
	}
	for i, event := range events {
		if event.click == nil || *event.click != expected[i] {
			t.Errorf("Unexpected event #%d: %v", i, event)
		}
	}
}

func TestDecodeKeys(t *testing.T) {
	events, errs := decode([]byte("\x1b[Aq\t"))
	if len(errs) > 0 {
		t.Fatal(errs)
	}
	keys := []KeyCode{}
	for _, event := range events {
		if event.click != nil {
			t.Errorf("Unexpected click: %v", event.click)
		}
		keys = append(keys, event.key)
	}
	if !reflect.DeepEqual(keys, []KeyCode{KeyUp, KeyQ, KeyTab}) {
		t.Errorf("Unexpected keys: %v", keys)
	}
}

func TestDecodeErrors(t *testing.T) {
	events, errs := decode([]byte("\x1b[M !"))
	if len(errs) != 1 || !IsProtocolError(errs[0]) {
		t.Errorf("Expected a protocol error for the short report: %v", errs)
	}
	if len(events) != 0 {
		t.Errorf("Short report should be dropped entirely: %v", events)
	}

	events, errs = decode([]byte("\x1b[1;2;3;4;5~x"))
	if len(errs) != 1 || !IsProtocolError(errs[0]) {
		t.Errorf("Expected a protocol error for the long sequence: %v", errs)
	}
	if len(events) != 1 || events[0].key != Key('x') {
		t.Errorf("Only the long sequence should be dropped: %v", events)
	}
}
