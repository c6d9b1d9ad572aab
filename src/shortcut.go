package lazydash

import "github.com/gdamms/lazydash/src/tui"

// Shortcut binds a key to a callback of a tab. It is listed in the menu row
// when both Name and Help are set.
type Shortcut struct {
	Key      tui.KeyCode
	Callback func()
	Name     string
	Help     string
}

// Displayable reports whether the shortcut is listed in the menu
func (s Shortcut) Displayable() bool {
	return len(s.Name) > 0 && len(s.Help) > 0
}
