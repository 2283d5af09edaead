package simplekit

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// Color represents a terminal color
type Color int

// Standard 16 colors, in ANSI index order
const (
	ColorBlack Color = iota
	ColorDarkRed
	ColorDarkGreen
	ColorDarkYellow
	ColorDarkBlue
	ColorDarkMagenta
	ColorDarkCyan
	ColorGray
	ColorDarkGray
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
)

// Attribute represents text attributes
type Attribute int

const (
	AttrNone Attribute = 0
	AttrBold Attribute = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrReverse
)

// Style represents cell styling with foreground, background, and attributes
type Style struct {
	Foreground Color
	Background Color
	Attributes Attribute
}

// NewStyle creates a new style with default values
func NewStyle() Style {
	return Style{
		Foreground: ColorWhite,
		Background: ColorBlack,
		Attributes: AttrNone,
	}
}

// WithForeground returns a new style with the specified foreground color
func (s Style) WithForeground(color Color) Style {
	s.Foreground = color
	return s
}

// WithBackground returns a new style with the specified background color
func (s Style) WithBackground(color Color) Style {
	s.Background = color
	return s
}

// WithAttributes returns a new style with the specified attributes
func (s Style) WithAttributes(attr Attribute) Style {
	s.Attributes = attr
	return s
}

// lipgloss converts the style for rendering with r, or the default
// renderer when r is nil
func (s Style) lipgloss(r *lipgloss.Renderer) lipgloss.Style {
	st := lipgloss.NewStyle()
	if r != nil {
		st = r.NewStyle()
	}
	st = st.
		Foreground(lipgloss.Color(strconv.Itoa(int(s.Foreground)))).
		Background(lipgloss.Color(strconv.Itoa(int(s.Background))))
	if s.Attributes&AttrBold != 0 {
		st = st.Bold(true)
	}
	if s.Attributes&AttrDim != 0 {
		st = st.Faint(true)
	}
	if s.Attributes&AttrItalic != 0 {
		st = st.Italic(true)
	}
	if s.Attributes&AttrUnderline != 0 {
		st = st.Underline(true)
	}
	if s.Attributes&AttrReverse != 0 {
		st = st.Reverse(true)
	}
	return st
}
