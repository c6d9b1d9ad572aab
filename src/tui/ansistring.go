package tui

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	saveCursor    = "\x1b7"
	restoreCursor = "\x1b8"
)

// Style codes carry no visible glyph: SGR color sequences and the
// save/restore pair that wraps extracted fragments.
var styleRegex = regexp.MustCompile("(?:\x1b\\[[0-9;]*m|\x1b[78])+")

var widthCondition = &runewidth.Condition{EastAsianWidth: false}

type segment struct {
	code string
	text []rune
}

// AnsiString is an immutable string whose length, indexing and slicing
// operate on visible runes while keeping the color codes interleaved with
// them.
type AnsiString struct {
	raw      string
	visible  []rune
	segments []segment
}

// NewAnsiString splits text into (leading code, visible chunk) pairs.
// Adjacent codes with nothing visible between them form a single leading
// code.
func NewAnsiString(text string) AnsiString {
	s := AnsiString{raw: text}
	idx := 0
	code := ""
	for _, offset := range styleRegex.FindAllStringIndex(text, -1) {
		chunk := []rune(text[idx:offset[0]])
		if len(chunk) > 0 || len(s.segments) == 0 {
			s.segments = append(s.segments, segment{code, chunk})
		}
		s.visible = append(s.visible, chunk...)
		code = text[offset[0]:offset[1]]
		idx = offset[1]
	}
	rest := []rune(text[idx:])
	s.segments = append(s.segments, segment{code, rest})
	s.visible = append(s.visible, rest...)
	return s
}

// Len returns the number of visible runes
func (s AnsiString) Len() int {
	return len(s.visible)
}

// Width returns the number of terminal cells the visible text occupies
func (s AnsiString) Width() int {
	return widthCondition.StringWidth(string(s.visible))
}

// Raw returns the original text including escape codes
func (s AnsiString) Raw() string {
	return s.raw
}

// String implements fmt.Stringer; it is the raw text
func (s AnsiString) String() string {
	return s.raw
}

// Visible returns the text with every style code removed
func (s AnsiString) Visible() string {
	return string(s.visible)
}

func (s AnsiString) resolve(i int) int {
	if i < 0 {
		i += len(s.visible)
	}
	return i
}

// Index returns the rune at visible position i, wrapped so that it carries
// the style in effect at that position. Negative indices count from the end.
func (s AnsiString) Index(i int) (AnsiString, error) {
	idx := s.resolve(i)
	if idx < 0 || idx >= len(s.visible) {
		return AnsiString{}, ErrIndexOutOfRange
	}
	cur := 0
	for _, seg := range s.segments {
		if idx < cur+len(seg.text) {
			return NewAnsiString(saveCursor + seg.code + string(seg.text[idx-cur]) + restoreCursor), nil
		}
		cur += len(seg.text)
	}
	// Unreachable; segments cover every visible rune
	return AnsiString{}, ErrIndexOutOfRange
}

// Slice returns the visible range [start, stop) with the leading code in
// effect at start and any codes inside the range. Bounds follow Go-like
// clamping after resolving negative values against Len.
func (s AnsiString) Slice(start int, stop int) AnsiString {
	length := len(s.visible)
	start = clampIndex(s.resolve(start), length)
	stop = clampIndex(s.resolve(stop), length)
	if start >= stop {
		return NewAnsiString("")
	}

	var sb strings.Builder
	sb.WriteString(saveCursor)
	cur := 0
	for _, seg := range s.segments {
		segStart, segEnd := cur, cur+len(seg.text)
		cur = segEnd
		if segStart >= stop {
			break
		}
		from := max(start, segStart)
		to := min(stop, segEnd)
		if from >= to {
			continue
		}
		sb.WriteString(seg.code)
		sb.WriteString(string(seg.text[from-segStart : to-segStart]))
	}
	sb.WriteString(restoreCursor)
	return NewAnsiString(sb.String())
}

func clampIndex(i int, length int) int {
	if i < 0 {
		return 0
	}
	if i > length {
		return length
	}
	return i
}
