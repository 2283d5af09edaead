package simplekit

import "time"

type clickState int

const (
	clickIdle    clickState = iota // no button down
	clickPressed                   // button down, waiting for release
)

// ClickTranslator recognises a press and release of the same button that
// stays within ClickTolerance and finishes within ClickTimeout.
//
// When a DoubleClickTranslator is linked to it, detected clicks are held back
// for one double-click window so a double click is never also reported as two
// plain clicks; the click is emitted late, with its release timestamp, once
// the window expires or a non-matching click arrives.
type ClickTranslator struct {
	opts Options

	state     clickState
	pointer   int
	button    MouseButton
	startX    float64
	startY    float64
	pressTime time.Duration

	lookahead *DoubleClickTranslator
}

// NewClickTranslator creates a click translator in the idle state
func NewClickTranslator(opts Options) *ClickTranslator {
	return &ClickTranslator{opts: opts.withDefaults()}
}

// Configure implements Configurable
func (t *ClickTranslator) Configure(opts Options) {
	t.opts = opts.withDefaults()
}

// Update implements Translator
func (t *ClickTranslator) Update(fe FundamentalEvent) (SKEvent, bool) {
	click, ok := t.detect(fe)
	if t.lookahead != nil {
		return t.lookahead.admit(fe.TimeStamp, click, ok)
	}
	return click, ok
}

// Pressed reports whether a press is waiting for its release
func (t *ClickTranslator) Pressed() bool {
	return t.state == clickPressed
}

// detect runs the press/release state machine and returns a click when one
// completes
func (t *ClickTranslator) detect(fe FundamentalEvent) (SKEvent, bool) {
	if t.state == clickPressed && fe.TimeStamp-t.pressTime > t.opts.ClickTimeout {
		// held too long; whatever happens next is not a click
		t.state = clickIdle
	}

	switch fe.Type {
	case EventMouseDown:
		t.state = clickPressed
		t.pointer = fe.PointerID
		t.button = fe.Button
		t.startX, t.startY = fe.X, fe.Y
		t.pressTime = fe.TimeStamp

	case EventMouseMove:
		if t.state == clickPressed && fe.PointerID == t.pointer &&
			distance(t.startX, t.startY, fe.X, fe.Y) > t.opts.ClickTolerance {
			t.state = clickIdle
		}

	case EventMouseUp:
		if t.state != clickPressed || fe.PointerID != t.pointer {
			return SKEvent{}, false
		}
		t.state = clickIdle
		// a release that reports no button belongs to the pressed one
		if fe.Button != ButtonNone && fe.Button != t.button {
			return SKEvent{}, false
		}
		if distance(t.startX, t.startY, fe.X, fe.Y) > t.opts.ClickTolerance {
			return SKEvent{}, false
		}
		return SKEvent{
			Type:       SKClick,
			TimeStamp:  fe.TimeStamp,
			X:          fe.X,
			Y:          fe.Y,
			Button:     t.button,
			Mods:       fe.Mods,
			ClickCount: 1,
		}, true
	}
	return SKEvent{}, false
}
