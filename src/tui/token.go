package tui

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type tokenKind int

const (
	tokText tokenKind = iota
	tokColor
	tokSave
	tokRestore
	tokGoto
	tokCarriageReturn
	tokNewline
	tokTab
	tokEraseLine
	numTokenKinds
)

type token struct {
	kind tokenKind
	text string
	row  int
	col  int
}

// The trailing lone ESC catches every sequence that is not understood
var tokenRegex = regexp.MustCompile("\x1b\\[[0-9;]*m|\x1b[78]|\x1b\\[([0-9]+);([0-9]+)H|\x1b\\[K|\r|\n|\t|\x1b")

const tabWidth = 4

func tokenize(text string) ([]token, error) {
	tokens := []token{}
	idx := 0
	for _, m := range tokenRegex.FindAllStringSubmatchIndex(text, -1) {
		if m[0] > idx {
			tokens = append(tokens, token{kind: tokText, text: text[idx:m[0]]})
		}
		seq := text[m[0]:m[1]]
		tok := token{text: seq}
		switch {
		case seq == "\r":
			tok.kind = tokCarriageReturn
		case seq == "\n":
			tok.kind = tokNewline
		case seq == "\t":
			tok.kind = tokTab
		case seq == saveCursor:
			tok.kind = tokSave
		case seq == restoreCursor:
			tok.kind = tokRestore
		case seq == "\x1b[K":
			tok.kind = tokEraseLine
		case strings.HasSuffix(seq, "m"):
			tok.kind = tokColor
		case m[2] >= 0:
			tok.kind = tokGoto
			tok.row, _ = strconv.Atoi(text[m[2]:m[3]])
			tok.col, _ = strconv.Atoi(text[m[4]:m[5]])
		default:
			end := min(len(text), m[0]+8)
			return nil, errors.Wrapf(ErrInvalidEscape, "at offset %d: %q", m[0], text[m[0]:end])
		}
		tokens = append(tokens, tok)
		idx = m[1]
	}
	if idx < len(text) {
		tokens = append(tokens, token{kind: tokText, text: text[idx:]})
	}
	return tokens, nil
}

// interpreter moves a cursor over the tokens of one AddStr call. The
// cursor is relative to the origin of the call; y counts content rows, so
// the drawn row is y - scroll.
type interpreter struct {
	screen *Screen
	draw   bool

	originX int
	originY int
	width   int
	height  int
	scroll  int
	wrap    bool

	x      int
	y      int
	savedX int
	savedY int

	minX int
	maxX int
	minY int
	maxY int
}

var transitions = [numTokenKinds]func(*interpreter, token){
	tokText:           (*interpreter).text,
	tokColor:          (*interpreter).color,
	tokSave:           (*interpreter).save,
	tokRestore:        (*interpreter).restore,
	tokGoto:           (*interpreter).jump,
	tokCarriageReturn: (*interpreter).carriageReturn,
	tokNewline:        (*interpreter).newline,
	tokTab:            (*interpreter).tab,
	tokEraseLine:      (*interpreter).eraseLine,
}

func newInterpreter(s *Screen, x, y, width, height, scroll int, wrap bool) *interpreter {
	in := &interpreter{
		screen:  s,
		draw:    true,
		originX: x,
		originY: y,
		width:   width,
		height:  height,
		scroll:  scroll,
		wrap:    wrap,
		savedY:  -scroll,
	}
	return in
}

func (in *interpreter) run(tokens []token) {
	for _, tok := range tokens {
		transitions[tok.kind](in, tok)
	}
}

func (in *interpreter) extent() (int, int) {
	return in.maxX - in.minX, in.maxY - in.minY + 1
}

func (in *interpreter) track() {
	in.minX = min(in.minX, in.x)
	in.maxX = max(in.maxX, in.x)
	in.minY = min(in.minY, in.y)
	in.maxY = max(in.maxY, in.y)
}

func (in *interpreter) visible(w int) bool {
	row := in.y - in.scroll
	return in.draw && row >= 0 && row < in.height && in.x >= 0 && in.x+w <= in.width
}

func (in *interpreter) put(str string, w int) {
	if !in.visible(w) {
		return
	}
	in.screen.place(in.originX+in.x, in.originY+in.y-in.scroll, str, w)
}

func (in *interpreter) text(tok token) {
	for _, r := range tok.text {
		if r < 0x20 || r == 0x7f {
			continue
		}
		w := widthCondition.RuneWidth(r)
		if in.x+w > in.width && w > 0 {
			if !in.wrap || w > in.width {
				// Clipped; the cursor stays at the edge
				in.x = max(in.x, in.width)
				in.track()
				continue
			}
			in.x = 0
			in.y++
			in.track()
		}
		in.put(string(r), w)
		in.x += w
		in.track()
	}
}

func (in *interpreter) color(tok token) {
	in.screen.write(tok.text)
}

func (in *interpreter) save(tok token) {
	in.savedX = in.x
	in.savedY = in.y - in.scroll
	in.screen.write(tok.text)
}

func (in *interpreter) restore(tok token) {
	in.x = in.savedX
	in.y = in.savedY + in.scroll
	in.screen.write(tok.text)
	in.screen.forget()
	in.track()
}

func (in *interpreter) jump(tok token) {
	in.x = tok.col - 1 - in.originX
	in.y = tok.row - 1 - in.originY + in.scroll
	in.track()
}

func (in *interpreter) carriageReturn(token) {
	in.x = 0
	in.track()
}

func (in *interpreter) newline(token) {
	in.x = 0
	in.y++
	in.track()
}

func (in *interpreter) tab(token) {
	next := (in.x/tabWidth + 1) * tabWidth
	if next > in.width {
		if in.wrap {
			in.x = 0
			in.y++
		} else {
			in.x = max(in.x, in.width)
		}
		in.track()
		return
	}
	in.pad(next)
}

func (in *interpreter) eraseLine(token) {
	if in.x < in.width {
		in.pad(in.width)
	}
}

func (in *interpreter) pad(to int) {
	for in.x < to {
		in.put(" ", 1)
		in.x++
	}
	in.track()
}

func gotoSequence(x, y int) string {
	return fmt.Sprintf("\x1b[%d;%dH", y+1, x+1)
}
