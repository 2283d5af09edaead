package simplekit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func linkedPair() []Translator {
	ct := NewClickTranslator(DefaultOptions())
	return []Translator{ct, NewDoubleClickTranslator(ct, DefaultOptions())}
}

func TestDoubleClickReplacesBothClicks(t *testing.T) {
	out := feed(linkedPair(),
		press(0, 10, 10), release(50, 10, 10),
		press(120, 11, 10), release(170, 11, 11),
	)

	require.Equal(t, []SKEventType{SKDblClick}, types(out))
	assert.Equal(t, ms(170), out[0].TimeStamp)
	assert.Equal(t, 2, out[0].ClickCount)
	assert.Equal(t, ButtonLeft, out[0].Button)
}

func TestSingleClickReleasedAfterWindow(t *testing.T) {
	ts := linkedPair()

	out := feed(ts, press(0, 10, 10), release(50, 10, 10), NullEvent(ms(200)))
	assert.Empty(t, out, "click is held while a second one may follow")

	out = feed(ts, NullEvent(ms(400)))
	require.Equal(t, []SKEventType{SKClick}, types(out))
	assert.Equal(t, ms(50), out[0].TimeStamp)

	out = feed(ts, NullEvent(ms(800)))
	assert.Empty(t, out)
}

func TestDoubleClickOutOfTolerance(t *testing.T) {
	ts := linkedPair()

	out := feed(ts,
		press(0, 0, 0), release(50, 0, 0),
		press(100, 50, 0), release(150, 50, 0),
	)
	require.Equal(t, []SKEventType{SKClick}, types(out))
	assert.Equal(t, 0.0, out[0].X)

	out = feed(ts, NullEvent(ms(500)))
	require.Equal(t, []SKEventType{SKClick}, types(out))
	assert.Equal(t, 50.0, out[0].X)
}

func TestDoubleClickSecondClickTooLate(t *testing.T) {
	ts := linkedPair()

	out := feed(ts, press(0, 10, 10), release(50, 10, 10), press(400, 10, 10))
	require.Equal(t, []SKEventType{SKClick}, types(out), "expired click released on the next event")

	out = feed(ts, release(450, 10, 10), NullEvent(ms(800)))
	assert.Equal(t, []SKEventType{SKClick}, types(out))
}

func TestDoubleClickDifferentButtons(t *testing.T) {
	ts := linkedPair()
	right := func(typ FundamentalType, at int) FundamentalEvent {
		return FundamentalEvent{Type: typ, TimeStamp: ms(at), X: 10, Y: 10, Button: ButtonRight}
	}

	out := feed(ts,
		press(0, 10, 10), release(50, 10, 10),
		right(EventMouseDown, 100), right(EventMouseUp, 150),
		NullEvent(ms(600)),
	)
	assert.Equal(t, []SKEventType{SKClick, SKClick}, types(out))
}

func TestTripleClick(t *testing.T) {
	ts := linkedPair()

	out := feed(ts,
		press(0, 10, 10), release(40, 10, 10),
		press(80, 10, 10), release(120, 10, 10),
		press(160, 10, 10), release(200, 10, 10),
		NullEvent(ms(600)),
	)
	assert.Equal(t, []SKEventType{SKDblClick, SKClick}, types(out))
}

func TestStandaloneDoubleClick(t *testing.T) {
	d := NewDoubleClickTranslator(nil, DefaultOptions())

	out := feed([]Translator{d},
		press(0, 10, 10), release(50, 10, 10),
		press(120, 10, 10), release(170, 10, 10),
	)
	assert.Equal(t, []SKEventType{SKDblClick}, types(out))

	out = feed([]Translator{d}, press(1000, 10, 10), release(1050, 10, 10), NullEvent(ms(1400)))
	assert.Equal(t, []SKEventType{SKClick}, types(out))
	assert.False(t, d.Pending())
}
