package lazydash

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gdamms/lazydash/src/util"
)

// Feeder runs the commands of a dashboard file and puts their output into
// the subtexts of the lines, once right away and then on every refresh.
type Feeder struct {
	dash     *Dashboard
	jobs     []job
	interval time.Duration
	timeout  time.Duration
	logger   *slog.Logger
}

// NewFeeder returns a Feeder updating the lines of dash
func NewFeeder(dash *Dashboard, jobs []job, interval time.Duration, logger *slog.Logger) *Feeder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if interval <= 0 {
		interval = defaultRefresh
	}
	return &Feeder{
		dash:     dash,
		jobs:     jobs,
		interval: interval,
		timeout:  commandTimeout,
		logger:   logger}
}

// Run blocks until ctx is done
func (f *Feeder) Run(ctx context.Context) {
	if len(f.jobs) == 0 {
		return
	}
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()
	for {
		f.round(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// round runs every command once, concurrently
func (f *Feeder) round(ctx context.Context) {
	var wg sync.WaitGroup
	for _, j := range f.jobs {
		wg.Add(1)
		go func(j job) {
			defer wg.Done()
			output, ok := f.run(ctx, j.command)
			if !ok && ctx.Err() != nil {
				return
			}
			f.dash.Update(func() { j.line.SetSubtext(j.subtab, output) })
		}(j)
	}
	wg.Wait()
}

// run returns the output of the command. On failure, the error is appended
// so that it shows up in the content pane.
func (f *Feeder) run(ctx context.Context, command string) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	start := time.Now()
	cmd := util.ExecCommand(ctx, command)
	// Do not wait for children still holding the output open
	cmd.WaitDelay = commandWaitDelay
	out, err := cmd.CombinedOutput()
	output := strings.TrimRight(string(out), "\n")
	if err != nil {
		f.logger.Warn("command failed", "command", command, "error", err, "elapsed", time.Since(start))
		if len(output) > 0 {
			output += "\n"
		}
		return output + err.Error(), false
	}
	f.logger.Debug("command finished", "command", command, "elapsed", time.Since(start))
	return output, true
}
