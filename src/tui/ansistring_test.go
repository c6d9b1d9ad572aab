package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestAnsiStringLen(t *testing.T) {
	assert := func(raw string, visible string) {
		s := NewAnsiString(raw)
		if s.Visible() != visible {
			t.Errorf("%q: visible %q, expected %q", raw, s.Visible(), visible)
		}
		if s.Len() != len([]rune(visible)) {
			t.Errorf("%q: length %d, expected %d", raw, s.Len(), len([]rune(visible)))
		}
		if s.Raw() != raw {
			t.Errorf("%q: raw text changed to %q", raw, s.Raw())
		}
	}
	assert("", "")
	assert("hello world", "hello world")
	assert("\x1b[31mred\x1b[0m text", "red text")
	assert("\x1b[1m\x1b[38;5;42mbold green\x1b[m", "bold green")
	assert("\x1b7\x1b[32mx\x1b8", "x")
	assert("┌╴Tab 1╶──┐", "┌╴Tab 1╶──┐")
}

func TestAnsiStringMatchesStrip(t *testing.T) {
	for _, raw := range []string{
		"plain",
		"\x1b[1;32mTab\x1b[0m name",
		"a\x1b[7mb\x1b[0mc\x1b[44md",
		"\x1b[38;2;10;20;30mtruecolor\x1b[39m",
	} {
		s := NewAnsiString(raw)
		if s.Visible() != ansi.Strip(raw) {
			t.Errorf("%q: visible %q, ansi.Strip %q", raw, s.Visible(), ansi.Strip(raw))
		}
		if s.Width() != ansi.StringWidth(raw) {
			t.Errorf("%q: width %d, ansi.StringWidth %d", raw, s.Width(), ansi.StringWidth(raw))
		}
	}
}

func TestAnsiStringIndex(t *testing.T) {
	s := NewAnsiString("ab\x1b[31mcd\x1b[0mef")

	assert := func(i int, expected string) {
		r, err := s.Index(i)
		if err != nil {
			t.Fatalf("Index(%d): %v", i, err)
		}
		if r.Raw() != expected {
			t.Errorf("Index(%d) = %q, expected %q", i, r.Raw(), expected)
		}
	}
	assert(0, "\x1b7a\x1b8")
	assert(2, "\x1b7\x1b[31mc\x1b8")
	assert(3, "\x1b7\x1b[31md\x1b8")
	assert(4, "\x1b7\x1b[0me\x1b8")
	assert(-1, "\x1b7\x1b[0mf\x1b8")
	assert(-6, "\x1b7a\x1b8")

	for _, i := range []int{6, 100, -7} {
		if _, err := s.Index(i); err != ErrIndexOutOfRange {
			t.Errorf("Index(%d) should fail with ErrIndexOutOfRange, got %v", i, err)
		}
	}
}

func TestAnsiStringSlice(t *testing.T) {
	s := NewAnsiString("ab\x1b[31mcd\x1b[0mef")

	assert := func(start, stop int, raw string, visible string) {
		r := s.Slice(start, stop)
		if r.Raw() != raw {
			t.Errorf("Slice(%d, %d) = %q, expected %q", start, stop, r.Raw(), raw)
		}
		if r.Visible() != visible {
			t.Errorf("Slice(%d, %d) visible = %q, expected %q", start, stop, r.Visible(), visible)
		}
	}
	assert(0, 2, "\x1b7ab\x1b8", "ab")
	assert(1, 3, "\x1b7b\x1b[31mc\x1b8", "bc")
	assert(3, 5, "\x1b7\x1b[31md\x1b[0me\x1b8", "de")
	assert(0, 6, "\x1b7ab\x1b[31mcd\x1b[0mef\x1b8", "abcdef")
	assert(-2, 6, "\x1b7\x1b[0mef\x1b8", "ef")
	assert(2, 100, "\x1b7\x1b[31mcd\x1b[0mef\x1b8", "cdef")
	assert(4, 4, "", "")
	assert(5, 2, "", "")
}

func TestAnsiStringSliceCarriesStyle(t *testing.T) {
	raw := "x\x1b[1;34mblue\x1b[0m \x1b[32mgreen"
	s := NewAnsiString(raw)
	codes := []string{"", "\x1b[1;34m", "\x1b[1;34m", "\x1b[1;34m", "\x1b[1;34m", "\x1b[0m",
		"\x1b[32m", "\x1b[32m", "\x1b[32m", "\x1b[32m", "\x1b[32m"}
	visible := []rune(s.Visible())
	for i := 0; i < s.Len(); i++ {
		r := s.Slice(i, i+1)
		if r.Visible() != string(visible[i]) {
			t.Errorf("Slice(%d, %d) shows %q, expected %q", i, i+1, r.Visible(), string(visible[i]))
		}
		expected := saveCursor + codes[i] + string(visible[i]) + restoreCursor
		if r.Raw() != expected {
			t.Errorf("Slice(%d, %d) = %q, expected %q", i, i+1, r.Raw(), expected)
		}
		idx, _ := s.Index(i)
		if idx.Raw() != r.Raw() {
			t.Errorf("Index(%d) = %q differs from Slice = %q", i, idx.Raw(), r.Raw())
		}
	}
}

func TestAnsiStringNestedSlice(t *testing.T) {
	s := NewAnsiString("\x1b[31m" + strings.Repeat("r", 5) + "\x1b[32m" + strings.Repeat("g", 5))
	inner := s.Slice(3, 8).Slice(1, 4)
	if inner.Visible() != "rgg" {
		t.Errorf("Unexpected visible text: %q", inner.Visible())
	}
	if !strings.Contains(inner.Raw(), "\x1b[31m") || !strings.Contains(inner.Raw(), "\x1b[32m") {
		t.Errorf("Nested slice lost its codes: %q", inner.Raw())
	}
}
