package demo

import "github.com/stlalpha/simplekit/pkg/simplekit"

// Theme defines the demo's color scheme
type Theme struct {
	// Background and the playfield
	Base Style

	// Title bar
	Title Style

	// The box, and the box after a double click toggled it
	Box    Style
	AltBox Style

	// Counter and key log lines
	Status Style
}

// Style is a cell style
type Style = simplekit.Style

// DefaultTheme returns the blue-box-on-gray theme
func DefaultTheme() Theme {
	return Theme{
		Base: simplekit.NewStyle().
			WithForeground(simplekit.ColorGray),

		// Title bar - cyan background with black text
		Title: simplekit.NewStyle().
			WithForeground(simplekit.ColorBlack).
			WithBackground(simplekit.ColorCyan),

		Box: simplekit.NewStyle().
			WithForeground(simplekit.ColorWhite).
			WithBackground(simplekit.ColorDarkBlue),
		AltBox: simplekit.NewStyle().
			WithForeground(simplekit.ColorWhite).
			WithBackground(simplekit.ColorDarkMagenta),

		Status: simplekit.NewStyle().
			WithForeground(simplekit.ColorYellow),
	}
}

// boxStyle is the box style for the current state
func (t Theme) boxStyle(alt, flash, dragging bool) Style {
	style := t.Box
	if alt {
		style = t.AltBox
	}
	if flash {
		style = style.WithAttributes(style.Attributes | simplekit.AttrReverse)
	}
	if dragging {
		style = style.WithAttributes(style.Attributes | simplekit.AttrBold)
	}
	return style
}
