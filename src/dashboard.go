package lazydash

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gdamms/lazydash/src/layout"
	"github.com/gdamms/lazydash/src/tui"
	"github.com/gdamms/lazydash/src/util"
	"github.com/pkg/errors"
)

// Config holds the settings of a Dashboard
type Config struct {
	Layout   layout.Config
	Interval time.Duration
	Theme    tui.Theme
	Logger   *slog.Logger
}

// DefaultConfig returns the default settings
func DefaultConfig() Config {
	return Config{
		Layout:   layout.DefaultConfig(),
		Interval: defaultInterval,
		Theme:    tui.DefaultTheme,
	}
}

// Dashboard owns the tabs and draws them on a screen. One mutex guards the
// tabs, the selection and every render pass.
type Dashboard struct {
	mutex  sync.Mutex
	screen *tui.Screen
	logger *slog.Logger

	layoutConfig layout.Config
	interval     time.Duration
	theme        *tui.Theme

	tabs        []*Tab
	selectedTab int
	keyMap      map[tui.KeyCode][]func()
	result      layout.Result
	width       int
	height      int

	running     *util.AtomicBool
	interrupted bool
	lastError   string

	// Guards events and listener; Stop runs with or without mutex held
	runMutex sync.Mutex
	events   *util.EventBox
	listener *tui.Listener
}

// New returns a Dashboard drawing on screen
func New(screen *tui.Screen, cfg Config) *Dashboard {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	theme := cfg.Theme
	return &Dashboard{
		screen:       screen,
		logger:       logger,
		layoutConfig: cfg.Layout,
		interval:     interval,
		theme:        &theme,
		keyMap:       make(map[tui.KeyCode][]func()),
		running:      util.NewAtomicBool(false),
		events:       util.NewEventBox()}
}

// Update runs fn under the dashboard lock. Use it to modify tabs and lines
// from other goroutines. Key callbacks already hold the lock and must not
// call it.
func (d *Dashboard) Update(fn func()) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	fn()
}

// NewTab appends a tab. The weight sets its share of the rows of the tab
// list; minHeight is the number of lines it shows at least.
func (d *Dashboard) NewTab(name string, subtabs []string, heightWeight float64, minHeight int) (*Tab, error) {
	if err := validateTab(name, heightWeight, minHeight); err != nil {
		return nil, err
	}
	d.mutex.Lock()
	defer d.mutex.Unlock()
	tab := newTab(name, subtabs, heightWeight, minHeight, d.screen, d.theme)
	d.tabs = append(d.tabs, tab)
	return tab, nil
}

func validateTab(name string, heightWeight float64, minHeight int) error {
	if heightWeight <= 0 {
		return usageError("height weight of tab %q must be positive", name)
	}
	if minHeight < 1 {
		return usageError("minimum height of tab %q must be at least 1", name)
	}
	return nil
}

// Tabs returns the tabs
func (d *Dashboard) Tabs() []*Tab {
	return d.tabs
}

// SelectedTab returns the selected tab, or nil without tabs
func (d *Dashboard) SelectedTab() *Tab {
	if len(d.tabs) == 0 {
		return nil
	}
	return d.tabs[d.selectedTab]
}

// AddKey registers a callback for the key. Callbacks of the same key run in
// registration order.
func (d *Dashboard) AddKey(key tui.KeyCode, callback func()) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.keyMap[key] = append(d.keyMap[key], callback)
}

// SetTheme replaces the styles of every tab
func (d *Dashboard) SetTheme(theme tui.Theme) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	*d.theme = theme
}

// Navigation; called with the lock held

func (d *Dashboard) selectTab(i int) {
	if len(d.tabs) == 0 {
		return
	}
	d.tabs[d.selectedTab].Unselect()
	d.selectedTab = wrapIndex(i, len(d.tabs))
	d.tabs[d.selectedTab].Select()
}

// NextTab selects the next tab
func (d *Dashboard) NextTab() {
	d.selectTab(d.selectedTab + 1)
}

// PreviousTab selects the previous tab
func (d *Dashboard) PreviousTab() {
	d.selectTab(d.selectedTab - 1)
}

func (d *Dashboard) withSelected(fn func(*Tab)) {
	if tab := d.SelectedTab(); tab != nil {
		fn(tab)
	}
}

// HandleKey applies the built-in bindings, then the dashboard callbacks,
// then the shortcuts of the selected tab
func (d *Dashboard) HandleKey(key tui.KeyCode) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.logger.Debug("key", "code", uint64(key), "name", key.String())
	switch key {
	case tui.KeyInterrupt:
		d.interrupted = true
		d.Stop()
	case tui.KeyEscape, tui.KeyQ:
		d.Stop()
	case tui.KeyTab:
		d.NextTab()
	case tui.KeyShiftTab:
		d.PreviousTab()
	case tui.KeyDown:
		d.withSelected((*Tab).NextLine)
	case tui.KeyUp:
		d.withSelected((*Tab).PreviousLine)
	case tui.KeyRight:
		d.withSelected((*Tab).NextSubtab)
	case tui.KeyLeft:
		d.withSelected((*Tab).PreviousSubtab)
	case tui.KeyPageUp:
		d.withSelected(func(tab *Tab) { tab.ScrollUp(1) })
	case tui.KeyPageDown:
		d.withSelected(func(tab *Tab) { tab.ScrollDown(1) })
	}

	for _, callback := range d.keyMap[key] {
		callback()
	}
	if tab := d.SelectedTab(); tab != nil {
		for _, callback := range tab.keyCallbacks(key) {
			callback()
		}
	}
}

// HandleClick selects what was clicked on and scrolls with the wheel
func (d *Dashboard) HandleClick(event tui.ClickEvent) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.logger.Debug("click", "button", int(event.Button), "x", event.X, "y", event.Y)
	if len(d.tabs) == 0 || !d.result.Renderable || event.Y >= d.result.TabList.Height {
		return
	}

	if event.X < d.result.TabList.Width {
		switch event.Button {
		case tui.MouseLeft:
			d.clickTabList(event.Y)
		case tui.MouseScrollUp:
			d.withSelected((*Tab).PreviousLine)
		case tui.MouseScrollDown:
			d.withSelected((*Tab).NextLine)
		}
		return
	}

	tab := d.SelectedTab()
	switch event.Button {
	case tui.MouseLeft:
		if event.Y == tab.contentBox.Y {
			if i := tab.subtabAt(event.X); i >= 0 {
				tab.SelectSubtab(i)
			}
		}
	case tui.MouseScrollUp:
		tab.ScrollUp(wheelScrollLines)
	case tui.MouseScrollDown:
		tab.ScrollDown(wheelScrollLines)
	}
}

func (d *Dashboard) clickTabList(y int) {
	for i, tab := range d.tabs {
		box := tab.tabBox
		if y < box.Y || y >= box.Y+max(1, box.Height) {
			continue
		}
		d.selectTab(i)
		// Rows between the borders are lines
		if row := y - box.Y - 1; row >= 0 && row < box.Height-2 {
			if line := tab.tabScroll + row; line < len(tab.lines) {
				tab.SelectLine(line)
			}
		}
		return
	}
}

// Stop ends Start. It is safe to call from callbacks and other goroutines.
func (d *Dashboard) Stop() {
	d.running.Set(false)
	d.runMutex.Lock()
	events, listener := d.events, d.listener
	d.runMutex.Unlock()
	if listener != nil {
		listener.Stop()
	}
	events.Set(EvtQuit, nil)
}

// Interrupted reports whether the dashboard was stopped by SIGINT or SIGTERM
func (d *Dashboard) Interrupted() bool {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.interrupted
}

func (d *Dashboard) updateLayout() {
	d.width, d.height = d.screen.Size()
	specs := make([]layout.TabSpec, len(d.tabs))
	for i, tab := range d.tabs {
		specs[i] = tab.spec()
	}
	if len(d.tabs) > 0 {
		d.selectedTab = util.Constrain(d.selectedTab, 0, len(d.tabs)-1)
	}
	d.result = layout.Compute(d.width, d.height, specs, d.selectedTab, d.layoutConfig)
	for i, tab := range d.tabs {
		tab.applyLayout(d.result.Tabs[i], d.result.Contents[i])
		if i == d.selectedTab {
			tab.Select()
		} else {
			tab.Unselect()
		}
	}
}

// Render draws one frame and writes it to the terminal
func (d *Dashboard) Render() error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.updateLayout()
	d.screen.Clear()

	var err error
	collect := func(e error) {
		if e != nil && err == nil {
			err = e
		}
	}
	switch {
	case len(d.tabs) == 0:
		_, _, e := d.screen.AddStr(msgNoTab, tui.At(0, 0))
		collect(e)
	case !d.result.Renderable:
		_, _, e := d.screen.AddStr(msgTooSmall, tui.At(0, 0))
		collect(e)
	default:
		for _, tab := range d.tabs {
			collect(tab.renderTab())
		}
		collect(d.tabs[d.selectedTab].renderContent())
	}
	collect(d.renderFooter())

	if e := d.screen.Refresh(); e != nil {
		return errors.Wrap(e, "failed to refresh the screen")
	}
	return err
}

// menu lists the displayable shortcuts of the selected tab
func (d *Dashboard) menu() string {
	items := []string{}
	if tab := d.SelectedTab(); tab != nil {
		for _, shortcut := range tab.shortcuts {
			if shortcut.Displayable() {
				items = append(items, fmt.Sprintf(shortcutFormat, shortcut.Name, shortcut.Help))
			}
		}
	}
	return strings.Join(items, menuSeparator)
}

func (d *Dashboard) renderFooter() error {
	if d.height < layout.FooterHeight {
		return nil
	}
	menu, _ := util.Truncate(d.menu(), d.width)
	if _, _, err := d.screen.AddStr(d.theme.Default.Code()+menu, tui.Box(0, d.height-2, d.width, 1)); err != nil {
		return err
	}
	help, _ := util.Truncate(footerText, d.width)
	_, _, err := d.screen.AddStr(help, tui.Placement{X: 0, Y: d.height - 1, Width: d.width, Height: 1, NoWrap: true})
	return err
}

func (d *Dashboard) logRenderError(err error) {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	// Once per distinct error, not once per frame
	if msg != d.lastError && err != nil {
		d.logger.Warn("render failed", "error", err)
	}
	d.lastError = msg
}

func (d *Dashboard) renderLoop(done chan<- struct{}) {
	defer close(done)
	for d.running.Get() {
		start := time.Now()
		d.logRenderError(d.Render())
		if wait := d.interval - time.Since(start); wait > 0 {
			time.Sleep(wait)
		}
	}
}

// Start takes over the terminal and blocks until Stop is called or the
// listener fails. The screen and the terminal mode are restored before it
// returns, and also by util.Exit if the program exits early.
func (d *Dashboard) Start(listener *tui.Listener) error {
	if !d.running.Acquire() {
		return usageError("dashboard already started")
	}
	defer d.running.Set(false)
	events := util.NewEventBox()
	d.runMutex.Lock()
	d.events = events
	d.listener = listener
	d.runMutex.Unlock()

	if err := d.screen.Start(); err != nil {
		return err
	}
	teardown := util.AtExit(func() {
		listener.Stop()
		d.screen.Stop()
	})
	defer teardown()

	listener.OnKey(d.HandleKey)
	listener.OnClick(d.HandleClick)

	listenerDone := make(chan error, 1)
	go func() {
		err := listener.Listen()
		listenerDone <- err
		events.Set(EvtQuit, err)
	}()

	renderDone := make(chan struct{})
	go d.renderLoop(renderDone)
	d.logger.Info("dashboard started", "tabs", len(d.tabs))

	events.WaitFor(EvtQuit)
	d.Stop()
	err := <-listenerDone
	<-renderDone
	d.logger.Info("dashboard stopped", "interrupted", d.Interrupted())
	return err
}
