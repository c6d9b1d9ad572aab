package lazydash

import (
	"time"

	"github.com/gdamms/lazydash/src/util"
)

const (
	// Render loop
	defaultInterval = 100 * time.Millisecond

	// Layout
	defaultTabsWidth       = 0.4
	defaultTabsMinWidth    = 10
	defaultContentMinWidth = 10
	minPaneWidth           = 4

	// Tabs
	defaultHeightWeight = 1.0
	defaultMinHeight    = 1

	// Command feeder
	defaultRefresh   = 2 * time.Second
	commandTimeout   = 10 * time.Second
	commandWaitDelay = 500 * time.Millisecond

	// Mouse wheel
	wheelScrollLines = 3
)

// Dashboard events
const (
	EvtQuit util.EventType = iota
	EvtReload
)

const (
	ExitOk        = 0
	ExitError     = 2
	ExitInterrupt = 130
)

const footerText = "Tab/Shift+Tab: Switch tab | ↑ ↓: Switch line | ← →: Switch subtab | PgUp/PgDn: Scroll | q: Quit"

const (
	msgNoTab       = "No tab."
	msgTooSmall    = "Terminal too small."
	shortcutFormat = "%s: %s"
	menuSeparator  = " | "
)
