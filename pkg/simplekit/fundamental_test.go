package simplekit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFundamentalPassThrough(t *testing.T) {
	ft := NewFundamentalTranslator()

	tests := []struct {
		in   FundamentalEvent
		want SKEventType
	}{
		{press(1, 2, 3), SKMouseDown},
		{release(1, 2, 3), SKMouseUp},
		{motion(1, 2, 3), SKMouseMove},
		{FundamentalEvent{Type: EventWheel, WheelDelta: -1}, SKWheel},
		{keyDown(1, "x"), SKKeyDown},
		{keyUp(1, "x"), SKKeyUp},
		{FundamentalEvent{Type: EventResize, Width: 80, Height: 24}, SKResize},
	}

	for _, tt := range tests {
		t.Run(string(tt.in.Type), func(t *testing.T) {
			ev, ok := ft.Update(tt.in)
			assert.True(t, ok)
			assert.Equal(t, tt.want, ev.Type)
			assert.Equal(t, tt.in.TimeStamp, ev.TimeStamp)
		})
	}
}

func TestFundamentalPayload(t *testing.T) {
	ft := NewFundamentalTranslator()

	ev, _ := ft.Update(press(5, 7, 9))
	assert.Equal(t, 7.0, ev.X)
	assert.Equal(t, 9.0, ev.Y)
	assert.Equal(t, ButtonLeft, ev.Button)

	ev, _ = ft.Update(FundamentalEvent{Type: EventResize, Width: 120, Height: 40})
	assert.Equal(t, 120, ev.Width)
	assert.Equal(t, 40, ev.Height)

	ev, _ = ft.Update(FundamentalEvent{Type: EventWheel, WheelDelta: 1})
	assert.Equal(t, 1.0, ev.DY)
}

func TestFundamentalIgnoresUnknown(t *testing.T) {
	ft := NewFundamentalTranslator()

	_, ok := ft.Update(NullEvent(ms(10)))
	assert.False(t, ok)

	_, ok = ft.Update(FundamentalEvent{Type: "gamepad"})
	assert.False(t, ok)
}
