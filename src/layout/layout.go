// Package layout distributes the rows and columns of the terminal between
// the tab list and the content pane.
package layout

import "sort"

// FooterHeight is the number of rows below the panes: the key help row and
// the shortcut menu row
const FooterHeight = 2

// Border rows above and below every expanded tab
const borderHeight = 2

// Rect is a box on the terminal
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// TabSpec is what the layout needs to know about a tab
type TabSpec struct {
	HeightWeight     float64
	MinContentHeight int
}

// Config holds the user adjustable layout constraints
type Config struct {
	TabsWidth       float64
	TabsMinWidth    int
	ContentMinWidth int
}

// DefaultConfig returns the default constraints
func DefaultConfig() Config {
	return Config{TabsWidth: 0.4, TabsMinWidth: 10, ContentMinWidth: 10}
}

// Result is the box model of one frame
type Result struct {
	TabList  Rect
	Content  Rect
	Tabs     []Rect
	Contents []Rect

	// Rows needed to show every tab expanded
	MinHeight int

	// Rows needed to show the selected tab expanded and the others as headers
	StrictMinHeight int

	Minimized  bool
	Renderable bool
}

// Compute lays out the tabs on a width x height terminal. A tab of height 0
// is collapsed and is drawn as a single header row.
func Compute(width int, height int, tabs []TabSpec, selected int, cfg Config) Result {
	width = max(0, width)
	usable := max(0, height-FooterHeight)

	fraction := min(1, max(0, cfg.TabsWidth))
	tabsWidth := int(float64(width) * fraction)
	contentWidth := width - tabsWidth

	result := Result{
		TabList:  Rect{X: 0, Y: 0, Width: tabsWidth, Height: usable},
		Content:  Rect{X: tabsWidth, Y: 0, Width: contentWidth, Height: usable},
		Tabs:     make([]Rect, len(tabs)),
		Contents: make([]Rect, len(tabs)),
	}

	n := len(tabs)
	if n > 0 {
		maxMin := 0
		for _, tab := range tabs {
			result.MinHeight += tab.MinContentHeight + borderHeight
			maxMin = max(maxMin, tab.MinContentHeight)
		}
		result.StrictMinHeight = maxMin + borderHeight + n - 1
	}
	result.Minimized = usable < result.MinHeight
	result.Renderable = tabsWidth >= cfg.TabsMinWidth &&
		contentWidth >= cfg.ContentMinWidth &&
		usable >= result.StrictMinHeight

	var heights []int
	if result.Minimized {
		heights = minimizedHeights(usable, n, min(max(0, selected), n-1))
	} else {
		heights = distributeHeights(usable, tabs)
	}

	y := 0
	for i := range tabs {
		result.Tabs[i] = Rect{X: 0, Y: y, Width: tabsWidth, Height: heights[i]}
		result.Contents[i] = result.Content
		if heights[i] > 0 {
			y += heights[i]
		} else {
			y++
		}
	}
	return result
}

// minimizedHeights collapses every tab but the selected one, which gets all
// the rows the headers leave and at least one. With fewer rows than tabs the
// result overflows and is not renderable.
func minimizedHeights(usable int, n int, selected int) []int {
	heights := make([]int, n)
	heights[selected] = max(1, usable-n+1)
	return heights
}

// distributeHeights shares the rows by weight. Tabs with the largest minimum
// go first and are raised to their minimum; the rows this takes are then
// reclaimed from the tabs with the smallest minimums that have some to spare,
// and leftover rows go to the last tab.
func distributeHeights(usable int, tabs []TabSpec) []int {
	heights := make([]int, len(tabs))
	totalWeight := 0.0
	for _, tab := range tabs {
		totalWeight += tab.HeightWeight
	}

	order := make([]int, len(tabs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return tabs[order[a]].MinContentHeight > tabs[order[b]].MinContentHeight
	})

	floor := func(i int) int {
		return tabs[i].MinContentHeight + borderHeight
	}
	remainder := usable
	for _, i := range order {
		h := 0
		if totalWeight > 0 {
			h = int(tabs[i].HeightWeight / totalWeight * float64(usable))
		}
		heights[i] = max(h, floor(i))
		remainder -= heights[i]
	}

	if remainder > 0 && len(heights) > 0 {
		heights[len(heights)-1] += remainder
	}
	for k := len(order) - 1; k >= 0 && remainder < 0; k-- {
		i := order[k]
		take := min(heights[i]-floor(i), -remainder)
		heights[i] -= take
		remainder += take
	}
	return heights
}
