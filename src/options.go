package lazydash

import (
	"io"
	"os"
	"time"

	"github.com/gdamms/lazydash/src/layout"
	"github.com/gdamms/lazydash/src/logging"
	"github.com/gdamms/lazydash/src/tui"

	"github.com/mattn/go-shellwords"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

const usage = `usage: lazydash [options]

  Dashboard
    --config=FILE             YAML file describing the tabs and their lines
                              (default: standard input when it is not
                              a terminal, otherwise the built-in demo)
    --watch                   Rebuild the tabs when the file changes
    --interval=DURATION       Delay between two frames (default: 100ms)
    --no-mouse                Disable mouse tracking

  Layout
    --tabs-width=FRACTION     Share of the width given to the tab list
                              (default: 0.4)
    --tabs-min-width=N        Narrowest tab list before giving up (default: 10)
    --content-min-width=N     Narrowest content pane before giving up
                              (default: 10)

  Logging
    --log-file=FILE           Write logs to the file, rotated by size
    --log-level=LEVEL         debug, info, warn or error (default: warn)
    --log-format=FORMAT       text or json (default: text)

  Other
    -h, --help                Show this message
    --version                 Display version information and exit

  Environment variables
    LAZYDASH_DEFAULT_OPTS     Default options (e.g. '--no-mouse --interval=50ms')

  Keys
    Tab/Shift+Tab             Switch tab
    Up/Down                   Switch line
    Left/Right                Switch subtab
    PgUp/PgDn                 Scroll the content pane
    q, Esc                    Quit
`

const defaultOptsEnv = "LAZYDASH_DEFAULT_OPTS"

// Options stores the values of command-line options
type Options struct {
	ConfigFile string
	Watch      bool
	Interval   time.Duration
	Mouse      bool
	Layout     layout.Config
	Log        logging.Config
	Version    bool
	Help       bool
}

func defaultOptions() *Options {
	return &Options{
		Interval: defaultInterval,
		Mouse:    true,
		Layout: layout.Config{
			TabsWidth:       defaultTabsWidth,
			TabsMinWidth:    defaultTabsMinWidth,
			ContentMinWidth: defaultContentMinWidth},
		Log: logging.DefaultConfig()}
}

// Usage returns the help message
func Usage() string {
	return usage
}

func usageError(format string, args ...any) error {
	return errors.Wrapf(tui.ErrUsage, format, args...)
}

// parseOptions applies args on top of opts. Flags not given keep their
// current value, so later sources override earlier ones.
func parseOptions(opts *Options, args []string) error {
	flags := pflag.NewFlagSet("lazydash", pflag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.Usage = func() {}

	flags.StringVar(&opts.ConfigFile, "config", opts.ConfigFile, "")
	flags.BoolVar(&opts.Watch, "watch", opts.Watch, "")
	flags.DurationVar(&opts.Interval, "interval", opts.Interval, "")
	noMouse := flags.Bool("no-mouse", !opts.Mouse, "")
	flags.Float64Var(&opts.Layout.TabsWidth, "tabs-width", opts.Layout.TabsWidth, "")
	flags.IntVar(&opts.Layout.TabsMinWidth, "tabs-min-width", opts.Layout.TabsMinWidth, "")
	flags.IntVar(&opts.Layout.ContentMinWidth, "content-min-width", opts.Layout.ContentMinWidth, "")
	flags.StringVar(&opts.Log.File, "log-file", opts.Log.File, "")
	flags.StringVar(&opts.Log.Level, "log-level", opts.Log.Level, "")
	flags.StringVar(&opts.Log.Format, "log-format", opts.Log.Format, "")
	flags.BoolVar(&opts.Version, "version", opts.Version, "")
	flags.BoolVarP(&opts.Help, "help", "h", opts.Help, "")

	if err := flags.Parse(args); err != nil {
		return usageError("%s", err.Error())
	}
	if flags.NArg() > 0 {
		return usageError("unexpected argument: %s", flags.Arg(0))
	}
	opts.Mouse = !*noMouse
	return nil
}

func validateOptions(opts *Options) error {
	if opts.Layout.TabsWidth <= 0 || opts.Layout.TabsWidth >= 1 {
		return usageError("tabs width must be between 0 and 1: %v", opts.Layout.TabsWidth)
	}
	if opts.Layout.TabsMinWidth < minPaneWidth {
		return usageError("tabs min width must be at least %d: %d", minPaneWidth, opts.Layout.TabsMinWidth)
	}
	if opts.Layout.ContentMinWidth < minPaneWidth {
		return usageError("content min width must be at least %d: %d", minPaneWidth, opts.Layout.ContentMinWidth)
	}
	if opts.Interval <= 0 {
		return usageError("interval must be positive: %v", opts.Interval)
	}
	if opts.Watch && len(opts.ConfigFile) == 0 {
		return usageError("--watch requires --config")
	}
	if err := opts.Log.Validate(); err != nil {
		return usageError("%s", err.Error())
	}
	return nil
}

// ParseOptions parses $LAZYDASH_DEFAULT_OPTS when useDefaults is set, then
// the arguments, and validates the result
func ParseOptions(useDefaults bool, args []string) (*Options, error) {
	opts := defaultOptions()

	if useDefaults {
		// Options from Env var
		words, err := shellwords.Parse(os.Getenv(defaultOptsEnv))
		if err != nil {
			return nil, usageError("invalid %s: %s", defaultOptsEnv, err.Error())
		}
		if len(words) > 0 {
			if err := parseOptions(opts, words); err != nil {
				return nil, errors.Wrap(err, defaultOptsEnv)
			}
		}
	}

	// Options from command-line arguments
	if err := parseOptions(opts, args); err != nil {
		return nil, err
	}

	if opts.Help || opts.Version {
		return opts, nil
	}
	if err := validateOptions(opts); err != nil {
		return nil, err
	}
	return opts, nil
}
