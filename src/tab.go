package lazydash

import (
	"math"
	"strings"

	"github.com/gdamms/lazydash/src/layout"
	"github.com/gdamms/lazydash/src/tui"
	"github.com/gdamms/lazydash/src/util"
)

// Tab is one entry of the tab list with the lines it holds. Only the
// selected tab shows its content pane.
//
// Tabs are not synchronized. Modify them from key callbacks, which already
// run under the dashboard lock, or inside Dashboard.Update.
type Tab struct {
	name         string
	subtabs      []string
	heightWeight float64
	minHeight    int

	lines          []*Line
	selectedLine   int
	selectedSubtab int
	selected       bool

	// Topmost line of the tab list
	tabScroll int

	// Offset into the selected subtext, -1 follows the end
	contentScroll int

	tabBox     layout.Rect
	contentBox layout.Rect

	shortcuts []Shortcut

	screen *tui.Screen
	theme  *tui.Theme
}

func newTab(name string, subtabs []string, heightWeight float64, minHeight int, screen *tui.Screen, theme *tui.Theme) *Tab {
	return &Tab{
		name:          name,
		subtabs:       append([]string{}, subtabs...),
		heightWeight:  heightWeight,
		minHeight:     minHeight,
		contentScroll: -1,
		screen:        screen,
		theme:         theme}
}

// Name returns the name of the tab
func (t *Tab) Name() string {
	return t.name
}

// Subtabs returns the names of the subtabs
func (t *Tab) Subtabs() []string {
	return t.subtabs
}

// AddKey binds a key to a callback while the tab is selected. The shortcut
// is listed in the menu row if both name and help are given.
func (t *Tab) AddKey(key tui.KeyCode, callback func(), name string, help string) {
	t.shortcuts = append(t.shortcuts, Shortcut{Key: key, Callback: callback, Name: name, Help: help})
}

// Shortcuts returns the shortcuts of the tab
func (t *Tab) Shortcuts() []Shortcut {
	return t.shortcuts
}

func (t *Tab) keyCallbacks(key tui.KeyCode) []func() {
	callbacks := []func(){}
	for _, shortcut := range t.shortcuts {
		if shortcut.Key == key && shortcut.Callback != nil {
			callbacks = append(callbacks, shortcut.Callback)
		}
	}
	return callbacks
}

// AddLine appends a line to the tab
func (t *Tab) AddLine(text string, subtexts ...string) *Line {
	line := NewLine(text, subtexts...)
	t.lines = append(t.lines, line)
	return line
}

// DeleteLine removes the line from the tab. It returns false if the line
// does not belong to the tab.
func (t *Tab) DeleteLine(line *Line) bool {
	for i, l := range t.lines {
		if l == line {
			t.lines = append(t.lines[:i], t.lines[i+1:]...)
			if t.selectedLine >= len(t.lines) {
				t.selectedLine = max(0, len(t.lines)-1)
			}
			t.updateTabScroll()
			t.updateContentScroll()
			return true
		}
	}
	return false
}

// ClearLines removes every line
func (t *Tab) ClearLines() {
	t.lines = nil
	t.selectedLine = 0
	t.tabScroll = 0
	t.contentScroll = -1
}

// Lines returns the lines of the tab
func (t *Tab) Lines() []*Line {
	return t.lines
}

// NumLines returns the number of lines
func (t *Tab) NumLines() int {
	return len(t.lines)
}

func wrapIndex(i int, n int) int {
	return ((i % n) + n) % n
}

// SelectLine selects the line at the given index, wrapping around
func (t *Tab) SelectLine(i int) {
	if len(t.lines) == 0 {
		return
	}
	t.selectedLine = wrapIndex(i, len(t.lines))
	t.updateTabScroll()
	t.updateContentScroll()
}

// NextLine selects the next line
func (t *Tab) NextLine() {
	t.SelectLine(t.selectedLine + 1)
}

// PreviousLine selects the previous line
func (t *Tab) PreviousLine() {
	t.SelectLine(t.selectedLine - 1)
}

// SelectedLine returns the selected line, or nil if the tab has no line
func (t *Tab) SelectedLine() *Line {
	if len(t.lines) == 0 {
		return nil
	}
	return t.lines[t.selectedLine]
}

// SelectedLineIndex returns the index of the selected line
func (t *Tab) SelectedLineIndex() int {
	return t.selectedLine
}

// SelectSubtab selects the subtab at the given index, wrapping around
func (t *Tab) SelectSubtab(i int) {
	if len(t.subtabs) == 0 {
		return
	}
	t.selectedSubtab = wrapIndex(i, len(t.subtabs))
	t.updateContentScroll()
}

// NextSubtab selects the next subtab
func (t *Tab) NextSubtab() {
	t.SelectSubtab(t.selectedSubtab + 1)
}

// PreviousSubtab selects the previous subtab
func (t *Tab) PreviousSubtab() {
	t.SelectSubtab(t.selectedSubtab - 1)
}

// SelectedSubtab returns the index of the selected subtab
func (t *Tab) SelectedSubtab() int {
	return t.selectedSubtab
}

// SelectedSubtext returns the text shown in the content pane
func (t *Tab) SelectedSubtext() string {
	line := t.SelectedLine()
	if line == nil {
		return ""
	}
	return line.Subtext(t.selectedSubtab)
}

// ContentScroll returns the scroll offset of the content pane
func (t *Tab) ContentScroll() int {
	return t.contentScroll
}

func (t *Tab) setContentScroll(scroll int) {
	if line := t.SelectedLine(); line != nil {
		line.SetScroll(t.selectedSubtab, scroll)
	}
	t.contentScroll = scroll
}

// lineCount returns the number of rows the selected subtext takes in the
// content pane
func (t *Tab) lineCount() int {
	_, rows, err := t.screen.Measure(t.SelectedSubtext(), max(0, t.contentBox.Width-2))
	if err != nil {
		return 0
	}
	return rows
}

// maxContentScroll is the offset showing the last row of the subtext at the
// bottom of the pane
func (t *Tab) maxContentScroll(lineCount int) int {
	return lineCount - t.contentBox.Height + 2
}

// ScrollUp scrolls the content pane up by the given number of rows. A
// negative value scrolls to the top.
func (t *Tab) ScrollUp(rows int) {
	line := t.SelectedLine()
	if line == nil {
		return
	}
	current := line.Scroll(t.selectedSubtab)
	if rows < 0 || (current >= 0 && current < rows) {
		t.setContentScroll(0)
		return
	}

	scroll := current
	if current < 0 {
		scroll = t.maxContentScroll(t.lineCount())
	}
	t.setContentScroll(max(0, scroll-rows))
}

// ScrollDown scrolls the content pane down by the given number of rows. A
// negative value follows the end of the text.
func (t *Tab) ScrollDown(rows int) {
	line := t.SelectedLine()
	if line == nil {
		return
	}
	if rows < 0 {
		t.setContentScroll(-1)
		return
	}

	current := line.Scroll(t.selectedSubtab)
	if current < 0 {
		// Already at the end
		return
	}
	scroll := current + rows
	if scroll > t.maxContentScroll(t.lineCount()) {
		t.setContentScroll(-1)
		return
	}
	t.setContentScroll(scroll)
}

func (t *Tab) updateContentScroll() {
	line := t.SelectedLine()
	if line == nil {
		t.contentScroll = -1
		return
	}
	t.contentScroll = line.Scroll(t.selectedSubtab)
}

// updateTabScroll keeps the selected line inside the tab box
func (t *Tab) updateTabScroll() {
	rows := t.tabBox.Height - 2
	if rows <= 0 {
		return
	}
	if t.selectedLine < t.tabScroll {
		t.tabScroll = t.selectedLine
	} else if t.selectedLine >= t.tabScroll+rows {
		t.tabScroll = t.selectedLine - rows + 1
	}
	t.tabScroll = util.Constrain(t.tabScroll, 0, max(0, len(t.lines)-rows))
}

// resolveContentScroll turns the scroll offset into a row of the subtext.
// The end sentinel resolves to the last page; an offset beyond the last
// page follows the end again.
func (t *Tab) resolveContentScroll(lineCount int) int {
	last := t.maxContentScroll(lineCount)
	scroll := t.contentScroll
	if scroll < 0 {
		scroll = last
	} else if scroll > last {
		scroll = last
		t.setContentScroll(-1)
	}
	return max(0, scroll)
}

// Select marks the tab as the selected one
func (t *Tab) Select() {
	t.selected = true
}

// Unselect clears the selection mark
func (t *Tab) Unselect() {
	t.selected = false
}

// Selected reports whether the tab is selected
func (t *Tab) Selected() bool {
	return t.selected
}

// Box model

func (t *Tab) SetTabWidth(width int) { t.tabBox.Width = width }
func (t *Tab) SetTabHeight(height int) { t.tabBox.Height = height }
func (t *Tab) SetTabX(x int) { t.tabBox.X = x }
func (t *Tab) SetTabY(y int) { t.tabBox.Y = y }

func (t *Tab) SetContentWidth(width int) { t.contentBox.Width = width }
func (t *Tab) SetContentHeight(height int) { t.contentBox.Height = height }
func (t *Tab) SetContentX(x int) { t.contentBox.X = x }
func (t *Tab) SetContentY(y int) { t.contentBox.Y = y }

func (t *Tab) TabHeight() int { return t.tabBox.Height }
func (t *Tab) ContentWidth() int { return t.contentBox.Width }
func (t *Tab) ContentHeight() int { return t.contentBox.Height }
func (t *Tab) MinHeight() int { return t.minHeight }
func (t *Tab) HeightWeight() float64 { return t.heightWeight }
func (t *Tab) TabBox() layout.Rect { return t.tabBox }
func (t *Tab) ContentBox() layout.Rect { return t.contentBox }

func (t *Tab) spec() layout.TabSpec {
	return layout.TabSpec{HeightWeight: t.heightWeight, MinContentHeight: t.minHeight}
}

func (t *Tab) applyLayout(tabBox layout.Rect, contentBox layout.Rect) {
	t.SetTabX(tabBox.X)
	t.SetTabY(tabBox.Y)
	t.SetTabWidth(tabBox.Width)
	t.SetTabHeight(tabBox.Height)
	t.SetContentX(contentBox.X)
	t.SetContentY(contentBox.Y)
	t.SetContentWidth(contentBox.Width)
	t.SetContentHeight(contentBox.Height)
}

// Rendering

// renderer collects the first error of a sequence of AddStr calls
type renderer struct {
	screen *tui.Screen
	err    error
}

func (r *renderer) addStr(text string, p tui.Placement) (int, int) {
	cols, rows, err := r.screen.AddStr(text, p)
	if err != nil && r.err == nil {
		r.err = err
	}
	return cols, rows
}

// scrollbar returns the right border of a box of the given height with a
// bar of size cells after top cells. The bar is kept inside the track.
func scrollbar(height int, top int, size int) string {
	track := max(0, height-4)
	size = min(max(0, size), track)
	top = min(max(0, top), track-size)
	bottom := track - top - size
	return "▲" + util.Repeat("│", top) + util.Repeat("█", size) + util.Repeat("│", bottom) + "▼"
}

func (t *Tab) renderTab() error {
	r := &renderer{screen: t.screen}
	box := t.tabBox
	x, y, width, height := box.X, box.Y, box.Width, box.Height

	tabColor := t.theme.Default.Code()
	if t.selected {
		tabColor = t.theme.TabSelected.Code()
	}
	r.addStr(tabColor, tui.At(x, y))

	// Collapsed tab
	if height == 0 {
		r.addStr("╶╴", tui.At(x, y))
		used, _ := r.addStr(t.name, tui.Box(x+2, y, max(0, width-4), 1))
		r.addStr("╶"+util.Repeat("─", width-4-used)+"╴", tui.At(x+2+used, y))
		r.addStr(t.theme.Default.Code(), tui.At(x, y))
		return r.err
	}

	t.updateTabScroll()
	r.addStr("┌╴", tui.At(x, y))
	used, _ := r.addStr(t.name, tui.Box(x+2, y, max(0, width-4), 1))
	r.addStr("╶"+util.Repeat("─", width-4-used)+"┐", tui.At(x+2+used, y))

	rows := max(0, height-2)
	right := util.Repeat("│", rows)
	if n := len(t.lines); n > rows && height >= 6 {
		track := float64(height - 4)
		size := max(1, int(float64(rows)/float64(n)*track))
		top := int(math.RoundToEven(float64(t.tabScroll) / float64(n) * track))
		right = scrollbar(height, top, size)
	}
	r.addStr(right, tui.Box(x+width-1, y+1, 1, rows))
	r.addStr(util.Repeat("│", rows), tui.Box(x, y+1, 1, rows))
	r.addStr("└"+util.Repeat("─", width-2)+"┘", tui.Box(x, y+height-1, width, 1))

	end := min(len(t.lines), t.tabScroll+rows)
	for i := t.tabScroll; i < end; i++ {
		lineColor := t.theme.Line.Code()
		if i == t.selectedLine && t.selected {
			lineColor += t.theme.LineSelected.Code()
		}
		row := y + 1 + i - t.tabScroll
		inner := max(0, width-2)
		used, _ := r.addStr(lineColor+t.lines[i].header(), tui.Placement{X: x + 1, Y: row, Width: inner, Height: 1, NoWrap: true})
		r.addStr(util.Repeat(" ", inner-used), tui.Box(x+1+used, row, max(0, inner-used), 1))
	}

	r.addStr(t.theme.Default.Code(), tui.At(x, y))
	return r.err
}

func (t *Tab) renderContent() error {
	r := &renderer{screen: t.screen}
	box := t.contentBox
	x, y, width, height := box.X, box.Y, box.Width, box.Height
	rows := max(0, height-2)

	r.addStr(t.theme.Default.Code(), tui.At(x, y))
	if len(t.subtabs) == 0 {
		r.addStr("┌"+util.Repeat("─", width-2)+"┐", tui.Box(x, y, width, 1))
	} else {
		names := make([]string, len(t.subtabs))
		for i, subtab := range t.subtabs {
			names[i] = subtab
			if i == t.selectedSubtab {
				names[i] = t.theme.SubtabSelected.Code() + subtab + t.theme.Default.Code()
			}
		}
		r.addStr("┌╴", tui.At(x, y))
		used, _ := r.addStr(strings.Join(names, "╶╴"), tui.Box(x+2, y, max(0, width-4), 1))
		r.addStr("╶"+util.Repeat("─", width-4-used)+"┐", tui.At(x+2+used, y))
	}

	text := t.SelectedSubtext()
	lineCount := t.lineCount()
	scroll := t.resolveContentScroll(lineCount)
	r.addStr(text, tui.Placement{X: x + 1, Y: y + 1, Width: max(0, width-2), Height: rows, Scroll: scroll})
	r.addStr(t.theme.Default.Code(), tui.At(x, y))

	right := util.Repeat("│", rows)
	if lineCount > rows && height >= 6 {
		track := float64(height - 4)
		count := float64(lineCount)
		size := max(1, int(math.RoundToEven(float64(rows)/count*track)))
		var top int
		if last := t.maxContentScroll(lineCount); float64(scroll) > float64(last)/2 {
			bottom := int(math.Ceil(float64(lineCount-scroll-height+2) / count * track))
			top = height - 4 - size - bottom
		} else {
			top = int(math.Ceil(float64(scroll) / count * track))
		}
		right = scrollbar(height, top, size)
	}
	r.addStr(right, tui.Box(x+width-1, y+1, 1, rows))
	r.addStr(util.Repeat("│", rows), tui.Box(x, y+1, 1, rows))
	r.addStr("└"+util.Repeat("─", width-2)+"┘", tui.Box(x, y+height-1, width, 1))
	return r.err
}

// subtabAt returns the subtab drawn at column x of the strip above the
// content pane, or -1
func (t *Tab) subtabAt(x int) int {
	col := t.contentBox.X + 2
	for i, subtab := range t.subtabs {
		width := util.StringWidth(subtab)
		if x >= col && x < col+width {
			return i
		}
		col += width + 2
	}
	return -1
}
