// Package lazydash implements lazydash, a terminal dashboard of tabs, lines
// and scrollable subtexts.
package lazydash

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/gdamms/lazydash/src/logging"
	"github.com/gdamms/lazydash/src/tui"
	"github.com/gdamms/lazydash/src/util"
	"github.com/pkg/errors"
)

/*
Listener -> HandleKey/HandleClick -> Dashboard (under lock)
Feeder   -> Update                -> Dashboard (under lock)
Watch    -> EvtReload             -> session   (reload file, restart Feeder)
Dashboard.Start returns           -> EvtQuit   -> session (stop)
*/

// session keeps the dashboard file loaded and its commands running
type session struct {
	opts   *Options
	dash   *Dashboard
	logger *slog.Logger

	mutex  sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// load reads the file given with --config
func (s *session) load(ctx context.Context) error {
	file, err := LoadFile(s.opts.ConfigFile)
	if err != nil {
		return err
	}
	return s.apply(ctx, file)
}

// apply replaces the tabs with those of file and restarts the feeder with
// its commands
func (s *session) apply(ctx context.Context, file *File) error {
	jobs, err := s.dash.Load(file)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.stopFeeder()
	feederCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	feeder := NewFeeder(s.dash, jobs, file.RefreshInterval(), s.logger)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		feeder.Run(feederCtx)
	}()
	return nil
}

// stopFeeder is called with the mutex held
func (s *session) stopFeeder() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.wg.Wait()
}

func (s *session) stop() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.stopFeeder()
}

// watch reloads the file on every change until EvtQuit
func (s *session) watch(ctx context.Context) {
	eventBox := util.NewEventBox()
	go func() {
		err := Watch(ctx, s.opts.ConfigFile, s.logger, func() { eventBox.Set(EvtReload, nil) })
		if err != nil {
			s.logger.Error("file watcher stopped", "error", err)
		}
		eventBox.Set(EvtQuit, nil)
	}()

	for {
		quit := false
		eventBox.Wait(func(events *util.Events) {
			for evt := range *events {
				switch evt {
				case EvtReload:
					if err := s.load(ctx); err != nil {
						// Keep the previous tabs
						s.logger.Warn("reload failed", "path", s.opts.ConfigFile, "error", err)
					} else {
						s.logger.Info("reloaded", "path", s.opts.ConfigFile)
					}
				case EvtQuit:
					quit = true
				}
			}
			events.Clear()
		})
		if quit {
			return
		}
	}
}

// start fills the dashboard from the file given with --config, from stdin
// when it is redirected, or with the demo
func (s *session) start(ctx context.Context, stdin *os.File) error {
	switch {
	case len(s.opts.ConfigFile) > 0:
		if err := s.load(ctx); err != nil {
			return err
		}
		if s.opts.Watch {
			go s.watch(ctx)
		}
		return nil
	case !util.IsTty(stdin):
		s.logger.Info("reading dashboard from stdin")
		file, err := ReadFile(stdin, "stdin")
		if err != nil {
			return err
		}
		return s.apply(ctx, file)
	}
	return buildDemo(s.dash)
}

// Run starts lazydash and returns the exit status
func Run(opts *Options, version string) (int, error) {
	defer util.RunAtExitFuncs()

	logger, closeLog, err := logging.New(opts.Log, version)
	if err != nil {
		return ExitError, usageError("%s", err.Error())
	}
	defer closeLog()
	logger.Info("starting", "config", opts.ConfigFile)

	tty, err := tui.OpenTerminal(tui.DefaultTtyDevice)
	if err != nil {
		return ExitError, err
	}
	defer tty.Close()

	screen := tui.NewScreen(tty.Out, tty.In, tty.Size)
	dash := New(screen, Config{
		Layout:   opts.Layout,
		Interval: opts.Interval,
		Theme:    tui.DefaultTheme,
		Logger:   logger})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := &session{opts: opts, dash: dash, logger: logger}
	defer s.stop()

	if err := s.start(ctx, os.Stdin); err != nil {
		return ExitError, err
	}

	listener := tui.NewListener(tty.In, tty.Out, opts.Mouse, logger)
	if err := dash.Start(listener); err != nil {
		return ExitError, errors.Wrap(err, "dashboard failed")
	}
	if dash.Interrupted() {
		return ExitInterrupt, nil
	}
	return ExitOk, nil
}
