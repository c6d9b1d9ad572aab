package tui

import (
	"bytes"
	"io"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/pkg/errors"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	offsetPollTries    = 10
	offsetPollInterval = 5 * time.Millisecond
)

// Unbounded as a Placement width or height extends the box to the edge of
// the terminal
const Unbounded = -1

var offsetRegexp = regexp.MustCompile("\x1b\\[([0-9]+);([0-9]+)R")

// Placement describes the box an AddStr call writes into
type Placement struct {
	X      int
	Y      int
	Width  int
	Height int

	// Scroll is the number of content rows hidden above the box
	Scroll int

	// NoWrap clips text at the right edge instead of wrapping it
	NoWrap bool

	// NoDraw only measures the text; the buffer is left untouched
	NoDraw bool
}

// At returns a Placement at (x, y) extending to the edges of the terminal
func At(x int, y int) Placement {
	return Placement{X: x, Y: y, Width: Unbounded, Height: Unbounded}
}

// Box returns a Placement for the given rectangle
func Box(x int, y int, width int, height int) Placement {
	return Placement{X: x, Y: y, Width: width, Height: height}
}

// Screen accumulates output in a single buffer that is written to the
// terminal on Refresh
type Screen struct {
	mutex   sync.Mutex
	out     io.Writer
	in      io.Reader
	size    func() (int, int)
	buffer  bytes.Buffer
	started bool

	// Position of the terminal cursor after the buffered output; -1 if unknown
	termX int
	termY int
}

// NewScreen returns a Screen writing to out. size reports the terminal
// dimensions; in is where cursor position reports are read from and may
// be nil when CursorPosition is not used.
func NewScreen(out io.Writer, in io.Reader, size func() (width int, height int)) *Screen {
	if size == nil {
		size = func() (int, int) { return defaultWidth, defaultHeight }
	}
	return &Screen{out: out, in: in, size: size, termX: -1, termY: -1}
}

// Start switches to the alternate screen and hides the cursor
func (s *Screen) Start() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.started {
		return usageError("screen already started")
	}
	s.started = true
	// smcup, civis
	_, err := io.WriteString(s.out, "\x1b[?1049h\x1b[?25l")
	return err
}

// Stop leaves the alternate screen and shows the cursor again. Stopping a
// screen that is not started does nothing.
func (s *Screen) Stop() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if !s.started {
		return nil
	}
	s.started = false
	s.buffer.Reset()
	s.forget()
	// rmcup, cnorm
	_, err := io.WriteString(s.out, "\x1b[?1049l\x1b[?25h")
	return err
}

// Size returns the current terminal width and height
func (s *Screen) Size() (int, int) {
	width, height := s.size()
	return max(0, width), max(0, height)
}

// Goto moves the terminal cursor to the 0-based position (x, y)
func (s *Screen) Goto(x int, y int) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.buffer.WriteString(gotoSequence(x, y))
	s.termX, s.termY = x, y
}

// Clear erases the whole screen
func (s *Screen) Clear() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.buffer.WriteString("\x1b[2J")
}

// Refresh writes the buffer to the terminal and empties it
func (s *Screen) Refresh() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.buffer.Len() == 0 {
		return nil
	}
	_, err := s.out.Write(s.buffer.Bytes())
	s.buffer.Reset()
	return err
}

// Buffered returns a copy of the output not yet refreshed
func (s *Screen) Buffered() string {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.buffer.String()
}

// AddStr interprets text inside the box p and appends the result to the
// buffer. It returns the number of columns and rows the cursor swept
// through, whether or not they were drawn.
func (s *Screen) AddStr(text string, p Placement) (int, int, error) {
	if (p.Width < 0 && p.Width != Unbounded) || (p.Height < 0 && p.Height != Unbounded) {
		return 0, 0, usageError("negative box dimensions %dx%d", p.Width, p.Height)
	}
	tokens, err := tokenize(text)
	if err != nil {
		return 0, 0, err
	}

	termWidth, termHeight := s.Size()
	x := clampIndex(p.X, termWidth)
	y := clampIndex(p.Y, termHeight)
	width, height := p.Width, p.Height
	if width == Unbounded || width > termWidth-x {
		width = termWidth - x
	}
	if height == Unbounded || height > termHeight-y {
		height = termHeight - y
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	snapshot := s.buffer.Len()
	termX, termY := s.termX, s.termY

	in := newInterpreter(s, x, y, width, height, p.Scroll, !p.NoWrap)
	in.draw = !p.NoDraw
	in.run(tokens)

	if p.NoDraw {
		s.buffer.Truncate(snapshot)
		s.termX, s.termY = termX, termY
	}
	cols, rows := in.extent()
	return cols, rows, nil
}

// Measure returns the extent text would occupy in a box of the given width
func (s *Screen) Measure(text string, width int) (int, int, error) {
	return s.AddStr(text, Placement{Width: width, Height: Unbounded, NoDraw: true})
}

func (s *Screen) place(x int, y int, str string, w int) {
	if x != s.termX || y != s.termY {
		s.buffer.WriteString(gotoSequence(x, y))
	}
	s.buffer.WriteString(str)
	s.termX, s.termY = x+w, y
}

func (s *Screen) write(str string) {
	s.buffer.WriteString(str)
}

func (s *Screen) forget() {
	s.termX, s.termY = -1, -1
}

// CursorPosition asks the terminal where its cursor is and returns the
// 0-based coordinates. The terminal must already be in non-canonical mode
// so that the report can be read back without a newline.
func (s *Screen) CursorPosition() (int, int, error) {
	if s.in == nil {
		return 0, 0, usageError("screen has no input to read the cursor report from")
	}
	if _, err := io.WriteString(s.out, "\x1b[6n"); err != nil {
		return 0, 0, errors.Wrap(err, "failed to request cursor position")
	}

	buf := make([]byte, 64)
	response := []byte{}
	for tries := 0; tries < offsetPollTries; tries++ {
		n, err := s.in.Read(buf)
		response = append(response, buf[:n]...)
		if m := offsetRegexp.FindSubmatch(response); m != nil {
			row, _ := strconv.Atoi(string(m[1]))
			col, _ := strconv.Atoi(string(m[2]))
			return col - 1, row - 1, nil
		}
		if err != nil && err != io.EOF {
			return 0, 0, errors.Wrap(err, "failed to read cursor position")
		}
		if n == 0 {
			time.Sleep(offsetPollInterval)
		}
	}
	return 0, 0, protocolError("unexpected cursor position report: %q", response)
}
