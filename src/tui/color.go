package tui

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Color is an ANSI color number, or a 24-bit color with bit 24 set
type Color int32

// Attr is a set of text attributes
type Attr int32

const (
	AttrRegular Attr = 0
	Bold        Attr = 1 << iota
	Dim
	Italic
	Underline
	Blink
	Reverse
)

const colDefault Color = -1

const (
	colBlack Color = iota
	colRed
	colGreen
	colYellow
	colBlue
	colMagenta
	colCyan
	colWhite
	colGrey
	colBrightRed
	colBrightGreen
	colBrightYellow
	colBrightBlue
	colBrightMagenta
	colBrightCyan
	colBrightWhite
)

var colorNames = map[string]Color{
	"default":        colDefault,
	"black":          colBlack,
	"red":            colRed,
	"green":          colGreen,
	"yellow":         colYellow,
	"blue":           colBlue,
	"magenta":        colMagenta,
	"cyan":           colCyan,
	"white":          colWhite,
	"grey":           colGrey,
	"gray":           colGrey,
	"bright-red":     colBrightRed,
	"bright-green":   colBrightGreen,
	"bright-yellow":  colBrightYellow,
	"bright-blue":    colBrightBlue,
	"bright-magenta": colBrightMagenta,
	"bright-cyan":    colBrightCyan,
	"bright-white":   colBrightWhite,
}

var attrNames = map[string]Attr{
	"regular":   AttrRegular,
	"bold":      Bold,
	"dim":       Dim,
	"italic":    Italic,
	"underline": Underline,
	"blink":     Blink,
	"reverse":   Reverse,
}

var rrggbb = regexp.MustCompile("^#[0-9a-fA-F]{6}$")

func (c Color) is24() bool {
	return c > 0 && (c&(1<<24)) > 0
}

// HexToColor converts #rrggbb into a 24-bit color
func HexToColor(rrggbb string) Color {
	r, _ := strconv.ParseInt(rrggbb[1:3], 16, 0)
	g, _ := strconv.ParseInt(rrggbb[3:5], 16, 0)
	b, _ := strconv.ParseInt(rrggbb[5:7], 16, 0)
	return Color((1 << 24) + (r << 16) + (g << 8) + b)
}

// ColorAttr is a foreground and background color with attributes
type ColorAttr struct {
	Fg   Color
	Bg   Color
	Attr Attr
}

// NewColorAttr returns the terminal's default style
func NewColorAttr() ColorAttr {
	return ColorAttr{Fg: colDefault, Bg: colDefault, Attr: AttrRegular}
}

func attrCodes(attr Attr) []string {
	codes := []string{}
	if (attr & Bold) > 0 {
		codes = append(codes, "1")
	}
	if (attr & Dim) > 0 {
		codes = append(codes, "2")
	}
	if (attr & Italic) > 0 {
		codes = append(codes, "3")
	}
	if (attr & Underline) > 0 {
		codes = append(codes, "4")
	}
	if (attr & Blink) > 0 {
		codes = append(codes, "5")
	}
	if (attr & Reverse) > 0 {
		codes = append(codes, "7")
	}
	return codes
}

func colorCodes(fg Color, bg Color) []string {
	codes := []string{}
	appendCode := func(c Color, offset int) {
		if c == colDefault {
			return
		}
		if c.is24() {
			r := (c >> 16) & 0xff
			g := (c >> 8) & 0xff
			b := (c) & 0xff
			codes = append(codes, fmt.Sprintf("%d;2;%d;%d;%d", 38+offset, r, g, b))
		} else if c >= colBlack && c <= colWhite {
			codes = append(codes, fmt.Sprintf("%d", int(c)+30+offset))
		} else if c > colWhite && c < 16 {
			codes = append(codes, fmt.Sprintf("%d", int(c)+90+offset-8))
		} else if c >= 16 && c < 256 {
			codes = append(codes, fmt.Sprintf("%d;5;%d", 38+offset, c))
		}
	}
	appendCode(fg, 0)
	appendCode(bg, 10)
	return codes
}

// Code returns the SGR sequence selecting the style. It always starts with
// a reset so that styles do not accumulate.
func (a ColorAttr) Code() string {
	codes := append([]string{"0"}, attrCodes(a.Attr)...)
	codes = append(codes, colorCodes(a.Fg, a.Bg)...)
	return "\x1b[" + strings.Join(codes, ";") + "m"
}

func parseColor(str string) (Color, bool) {
	if color, ok := colorNames[str]; ok {
		return color, true
	}
	if rrggbb.MatchString(str) {
		return HexToColor(str), true
	}
	ansi, err := strconv.Atoi(str)
	if err != nil || ansi < -1 || ansi > 255 {
		return colDefault, false
	}
	return Color(ansi), true
}

// ParseColorAttr parses a comma-separated style specification such as
// "fg:green,bg:#202020,bold"
func ParseColorAttr(spec string) (ColorAttr, error) {
	attr := NewColorAttr()
	for _, str := range strings.Split(strings.ToLower(spec), ",") {
		str = strings.TrimSpace(str)
		if len(str) == 0 {
			continue
		}
		if a, ok := attrNames[str]; ok {
			attr.Attr |= a
			continue
		}
		pair := strings.SplitN(str, ":", 2)
		if len(pair) != 2 {
			return attr, usageError("invalid color specification: %s", str)
		}
		color, ok := parseColor(pair[1])
		if !ok {
			return attr, usageError("invalid color specification: %s", str)
		}
		switch pair[0] {
		case "fg":
			attr.Fg = color
		case "bg":
			attr.Bg = color
		default:
			return attr, usageError("invalid color specification: %s", str)
		}
	}
	return attr, nil
}

// Theme holds the styles of the dashboard elements
type Theme struct {
	Default        ColorAttr
	TabSelected    ColorAttr
	Line           ColorAttr
	LineSelected   ColorAttr
	SubtabSelected ColorAttr
}

// DefaultTheme is used unless the dashboard file overrides it
var DefaultTheme = Theme{
	Default:        NewColorAttr(),
	TabSelected:    ColorAttr{Fg: colGreen, Bg: colDefault, Attr: Bold},
	Line:           NewColorAttr(),
	LineSelected:   ColorAttr{Fg: colDefault, Bg: colDefault, Attr: Reverse},
	SubtabSelected: ColorAttr{Fg: colGreen, Bg: colDefault, Attr: Bold},
}

// Set overrides the style of the named element
func (t *Theme) Set(name string, spec string) error {
	attr, err := ParseColorAttr(spec)
	if err != nil {
		return err
	}
	switch name {
	case "default":
		t.Default = attr
	case "tab-selected":
		t.TabSelected = attr
	case "line":
		t.Line = attr
	case "line-selected":
		t.LineSelected = attr
	case "subtab-selected":
		t.SubtabSelected = attr
	default:
		return usageError("unknown theme element: %s", name)
	}
	return nil
}
