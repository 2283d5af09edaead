package demo

import (
	"math"
	"time"

	"github.com/stlalpha/simplekit/pkg/simplekit"
)

// SKLongPress is emitted when a button is held still for the hold time
const SKLongPress simplekit.SKEventType = "longpress"

// LongPressTranslator fires once per press when the pointer stays within
// Tolerance of where the button went down for at least Hold. It is checked on
// every event, so null events fire it while nothing else happens.
type LongPressTranslator struct {
	Hold      time.Duration
	Tolerance float64

	pressed bool
	fired   bool
	button  simplekit.MouseButton
	x, y    float64
	at      time.Duration
}

// NewLongPressTranslator creates a translator with the given hold time
func NewLongPressTranslator(hold time.Duration) *LongPressTranslator {
	return &LongPressTranslator{Hold: hold, Tolerance: 2}
}

// Update implements simplekit.Translator
func (t *LongPressTranslator) Update(fe simplekit.FundamentalEvent) (simplekit.SKEvent, bool) {
	switch fe.Type {
	case simplekit.EventMouseDown:
		t.pressed, t.fired = true, false
		t.button = fe.Button
		t.x, t.y = fe.X, fe.Y
		t.at = fe.TimeStamp
	case simplekit.EventMouseMove:
		if t.pressed && math.Hypot(fe.X-t.x, fe.Y-t.y) > t.Tolerance {
			t.pressed = false
		}
	case simplekit.EventMouseUp:
		t.pressed = false
	}

	if !t.pressed || t.fired || fe.TimeStamp-t.at < t.Hold {
		return simplekit.SKEvent{}, false
	}
	t.fired = true
	return simplekit.SKEvent{
		Type:      SKLongPress,
		TimeStamp: fe.TimeStamp,
		X:         t.x,
		Y:         t.y,
		Button:    t.button,
	}, true
}
