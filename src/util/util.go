package util

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rivo/uniseg"
)

// StringWidth returns the display width of s; CR and LF take no column
func StringWidth(s string) int {
	return uniseg.StringWidth(strings.NewReplacer("\n", "", "\r", "").Replace(s))
}

// Truncate cuts the string so that its display width does not exceed limit.
// It returns the truncated string and its width.
func Truncate(input string, limit int) (string, int) {
	var sb strings.Builder
	width := 0
	gr := uniseg.NewGraphemes(input)
	for gr.Next() {
		w := gr.Width()
		if width+w > limit {
			break
		}
		width += w
		sb.WriteString(gr.Str())
	}
	return sb.String(), width
}

// Constrain limits the given integer with the upper and lower bounds
func Constrain(val int, min int, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Repeat returns str repeated the given number of times, or an empty string
// when times is not positive
func Repeat(str string, times int) string {
	if times > 0 {
		return strings.Repeat(str, times)
	}
	return ""
}

// IsTty returns true if the file is a terminal
func IsTty(file *os.File) bool {
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
