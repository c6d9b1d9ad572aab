package lazydash

import "strings"

// Line is an entry of a tab list. Every subtab of the tab shows one of its
// subtexts in the content pane. The scroll position of each subtext is kept
// separately; -1 follows the end of the text.
type Line struct {
	text     string
	subtexts []string
	scrolls  []int
}

// NewLine returns a line with the given text and subtexts
func NewLine(text string, subtexts ...string) *Line {
	line := &Line{text: text}
	for i, subtext := range subtexts {
		line.SetSubtext(i, subtext)
	}
	return line
}

// Text returns the text shown in the tab list
func (l *Line) Text() string {
	return l.text
}

// SetText replaces the text shown in the tab list
func (l *Line) SetText(text string) {
	l.text = text
}

// header is the first line of the text
func (l *Line) header() string {
	header, _, _ := strings.Cut(l.text, "\n")
	return header
}

// Subtext returns the text of the given subtab, or an empty string
func (l *Line) Subtext(subtab int) string {
	if subtab < 0 || subtab >= len(l.subtexts) {
		return ""
	}
	return l.subtexts[subtab]
}

// SetSubtext replaces the text of the given subtab, adding empty subtexts
// as needed
func (l *Line) SetSubtext(subtab int, text string) {
	if subtab < 0 {
		return
	}
	for len(l.subtexts) <= subtab {
		l.subtexts = append(l.subtexts, "")
		l.scrolls = append(l.scrolls, -1)
	}
	l.subtexts[subtab] = text
}

// NumSubtexts returns the number of subtexts
func (l *Line) NumSubtexts() int {
	return len(l.subtexts)
}

// Scroll returns the scroll offset of the given subtab
func (l *Line) Scroll(subtab int) int {
	if subtab < 0 || subtab >= len(l.scrolls) {
		return -1
	}
	return l.scrolls[subtab]
}

// SetScroll sets the scroll offset of the given subtab. Negative values
// follow the end of the text.
func (l *Line) SetScroll(subtab int, scroll int) {
	if subtab < 0 || subtab >= len(l.scrolls) {
		return
	}
	l.scrolls[subtab] = max(-1, scroll)
}
