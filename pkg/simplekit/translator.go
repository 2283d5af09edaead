package simplekit

import "time"

// Translator turns fundamental events into semantic events. Update is called
// once per fundamental event (or synthetic null event) and returns at most one
// SKEvent. Implementations keep their own state between calls and must ignore
// input they do not understand rather than fail.
type Translator interface {
	Update(fe FundamentalEvent) (SKEvent, bool)
}

// TranslatorFunc adapts an ordinary function to the Translator interface
type TranslatorFunc func(fe FundamentalEvent) (SKEvent, bool)

// Update calls f(fe)
func (f TranslatorFunc) Update(fe FundamentalEvent) (SKEvent, bool) {
	return f(fe)
}

// Configurable is implemented by translators whose tolerances can be changed
// after construction. Toolkit.Configure calls it between frames.
type Configurable interface {
	Configure(opts Options)
}

// Options holds the gesture tolerances used by the built-in translators.
// Distances are in surface units (pixels, or cells for a terminal surface).
type Options struct {
	ClickTolerance       float64       `mapstructure:"click_tolerance" json:"click_tolerance"`
	ClickTimeout         time.Duration `mapstructure:"click_timeout" json:"click_timeout"`
	DoubleClickWindow    time.Duration `mapstructure:"double_click_window" json:"double_click_window"`
	DoubleClickTolerance float64       `mapstructure:"double_click_tolerance" json:"double_click_tolerance"`
	DragThreshold        float64       `mapstructure:"drag_threshold" json:"drag_threshold"`
}

// DefaultOptions returns the tolerances used when none are configured
func DefaultOptions() Options {
	return Options{
		ClickTolerance:       10,
		ClickTimeout:         500 * time.Millisecond,
		DoubleClickWindow:    300 * time.Millisecond,
		DoubleClickTolerance: 10,
		DragThreshold:        10,
	}
}

// withDefaults replaces a zero Options with DefaultOptions and fills unset
// durations. Zero distances are kept so callers can ask for exact positions.
func (o Options) withDefaults() Options {
	if o == (Options{}) {
		return DefaultOptions()
	}
	d := DefaultOptions()
	if o.ClickTimeout <= 0 {
		o.ClickTimeout = d.ClickTimeout
	}
	if o.DoubleClickWindow <= 0 {
		o.DoubleClickWindow = d.DoubleClickWindow
	}
	return o
}

// DefaultTranslators builds the five standard translators in their standard
// order: fundamental, keypress, click, dblclick, drag. The click and
// double-click translators are linked so a double click never also reports
// its two plain clicks.
func DefaultTranslators(opts Options) []Translator {
	click := NewClickTranslator(opts)
	return []Translator{
		NewFundamentalTranslator(),
		NewKeypressTranslator(),
		click,
		NewDoubleClickTranslator(click, opts),
		NewDragTranslator(opts),
	}
}
