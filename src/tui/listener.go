//go:build !windows

package tui

import (
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gdamms/lazydash/src/rawterm"
	"github.com/gdamms/lazydash/src/util"
	"github.com/muesli/cancelreader"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

const (
	readBufferSize = 256
	maxInputBuffer = 10 * 1024
)

// Listener reads key presses and mouse clicks from the terminal and
// dispatches them to the registered callbacks. Callbacks run on the
// goroutine that called Listen, one at a time.
type Listener struct {
	in     *os.File
	out    io.Writer
	mouse  bool
	logger *slog.Logger

	listening *util.AtomicBool
	stopped   *util.AtomicBool

	mutex          sync.Mutex
	reader         cancelreader.CancelReader
	keyCallbacks   []func(KeyCode)
	clickCallbacks []func(ClickEvent)

	// Serializes callbacks of the read loop and of the signal handler
	dispatchMutex sync.Mutex
}

// NewListener returns a Listener reading from the terminal in. Mouse
// tracking requests are written to out when mouse is true.
func NewListener(in *os.File, out io.Writer, mouse bool, logger *slog.Logger) *Listener {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Listener{
		in:        in,
		out:       out,
		mouse:     mouse,
		logger:    logger,
		listening: util.NewAtomicBool(false),
		stopped:   util.NewAtomicBool(false)}
}

// OnKey registers a callback for every decoded key, including
// KeyInterrupt on SIGINT and SIGTERM
func (l *Listener) OnKey(fn func(KeyCode)) {
	l.mutex.Lock()
	l.keyCallbacks = append(l.keyCallbacks, fn)
	l.mutex.Unlock()
}

// OnClick registers a callback for every decoded mouse report
func (l *Listener) OnClick(fn func(ClickEvent)) {
	l.mutex.Lock()
	l.clickCallbacks = append(l.clickCallbacks, fn)
	l.mutex.Unlock()
}

// Listening reports whether Listen is running
func (l *Listener) Listening() bool {
	return l.listening.Get()
}

// Listen puts the terminal into raw mode and blocks dispatching input until
// Stop is called. The terminal is restored before it returns.
func (l *Listener) Listen() (err error) {
	if !l.listening.Acquire() {
		return usageError("listener already started")
	}
	defer l.listening.Set(false)

	fd := int(l.in.Fd())
	if !rawterm.IsTerminal(fd) {
		return errors.Errorf("%s is not a terminal", l.in.Name())
	}
	state, err := rawterm.MakeRaw(fd)
	if err != nil {
		return err
	}
	defer func() {
		if rerr := rawterm.Restore(fd, state); rerr != nil && err == nil {
			err = rerr
		}
	}()

	if l.mouse {
		io.WriteString(l.out, "\x1b[?1000h")
		defer io.WriteString(l.out, "\x1b[?1000l")
	}

	reader, err := cancelreader.NewReader(l.in)
	if err != nil {
		return errors.Wrap(err, "failed to create input reader")
	}
	defer reader.Close()
	l.mutex.Lock()
	l.reader = reader
	stopped := l.stopped.Get()
	l.mutex.Unlock()
	defer func() {
		l.mutex.Lock()
		l.reader = nil
		l.mutex.Unlock()
	}()

	if stopped {
		return nil
	}

	sigs := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer func() {
		signal.Stop(sigs)
		close(done)
	}()
	go func() {
		for {
			select {
			case sig := <-sigs:
				l.logger.Debug("interrupted", "signal", sig)
				l.dispatch([]inputEvent{{key: KeyInterrupt}})
			case <-done:
				return
			}
		}
	}()

	l.logger.Debug("listener started", "mouse", l.mouse)
	err = l.loop(reader, func(token []byte) []byte { return l.drain(fd, token) })
	l.logger.Debug("listener stopped", "error", err)
	return err
}

// Stop makes Listen return after the current read. A stopped listener does
// not start again.
func (l *Listener) Stop() {
	l.stopped.Set(true)
	l.mutex.Lock()
	if l.reader != nil {
		l.reader.Cancel()
	}
	l.mutex.Unlock()
}

// loop blocks on the first byte of every token, then lets drain append
// whatever else is already available
func (l *Listener) loop(reader io.Reader, drain func([]byte) []byte) error {
	buffer := make([]byte, readBufferSize)
	for !l.stopped.Get() {
		n, err := reader.Read(buffer)
		if n > 0 {
			token := drain(append([]byte{}, buffer[:n]...))
			l.process(token)
		}
		if err != nil {
			if errors.Is(err, cancelreader.ErrCanceled) || errors.Is(err, io.EOF) {
				return nil
			}
			return errors.Wrap(err, "failed to read input")
		}
	}
	return nil
}

// drain reads the bytes that are immediately available. The terminal is in
// VMIN=0 mode, so a read without pending input returns nothing.
func (l *Listener) drain(fd int, token []byte) []byte {
	buffer := make([]byte, readBufferSize)
	for len(token) < maxInputBuffer {
		n, err := unix.Read(fd, buffer)
		if err != nil || n <= 0 {
			break
		}
		token = append(token, buffer[:n]...)
	}
	return token
}

func (l *Listener) process(token []byte) {
	events, errs := decode(token)
	for _, err := range errs {
		l.logger.Warn("dropped malformed input", "error", err)
	}
	l.dispatch(events)
}

func (l *Listener) dispatch(events []inputEvent) {
	l.mutex.Lock()
	keyCallbacks := append([]func(KeyCode){}, l.keyCallbacks...)
	clickCallbacks := append([]func(ClickEvent){}, l.clickCallbacks...)
	l.mutex.Unlock()

	l.dispatchMutex.Lock()
	defer l.dispatchMutex.Unlock()
	for _, event := range events {
		if event.click != nil {
			for _, fn := range clickCallbacks {
				fn(*event.click)
			}
			continue
		}
		for _, fn := range keyCallbacks {
			fn(event.key)
		}
	}
}
