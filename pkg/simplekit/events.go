package simplekit

import (
	"math"
	"time"
)

// FundamentalType identifies a raw input event reported by a windowing system
type FundamentalType string

const (
	// EventNull is synthesized by the run loop when a frame has no input.
	// It only carries a timestamp.
	EventNull      FundamentalType = "null"
	EventMouseDown FundamentalType = "mousedown"
	EventMouseUp   FundamentalType = "mouseup"
	EventMouseMove FundamentalType = "mousemove"
	EventWheel     FundamentalType = "wheel"
	EventKeyDown   FundamentalType = "keydown"
	EventKeyUp     FundamentalType = "keyup"
	EventResize    FundamentalType = "resize"
)

// MouseButton represents mouse buttons
type MouseButton int

const (
	ButtonNone MouseButton = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

func (b MouseButton) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	default:
		return "none"
	}
}

// KeyMod represents key modifiers
type KeyMod int

const (
	ModNone KeyMod = 0
	ModAlt  KeyMod = 1 << iota
	ModCtrl
	ModShift
)

// FundamentalEvent is one raw input record from the windowing system.
// Only the payload fields that apply to Type are meaningful.
type FundamentalEvent struct {
	Type      FundamentalType `json:"type"`
	TimeStamp time.Duration   `json:"ts"`

	// pointer events
	PointerID  int         `json:"pointer,omitempty"`
	X          float64     `json:"x,omitempty"`
	Y          float64     `json:"y,omitempty"`
	Button     MouseButton `json:"button,omitempty"`
	WheelDelta float64     `json:"wheel,omitempty"`

	// keyboard events
	Key  string `json:"key,omitempty"`
	Mods KeyMod `json:"mods,omitempty"`

	// resize events
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`
}

// NullEvent returns the synthetic event delivered when a frame has no input.
func NullEvent(now time.Duration) FundamentalEvent {
	return FundamentalEvent{Type: EventNull, TimeStamp: now}
}

// SKEventType names a semantic event. Built-in translators use the constants
// below; user translators are free to define their own.
type SKEventType string

const (
	SKMouseDown SKEventType = "mousedown"
	SKMouseUp   SKEventType = "mouseup"
	SKMouseMove SKEventType = "mousemove"
	SKWheel     SKEventType = "wheel"
	SKKeyDown   SKEventType = "keydown"
	SKKeyUp     SKEventType = "keyup"
	SKResize    SKEventType = "resize"

	SKKeyPress  SKEventType = "keypress"
	SKClick     SKEventType = "click"
	SKDblClick  SKEventType = "dblclick"
	SKDragStart SKEventType = "dragstart"
	SKDrag      SKEventType = "drag"
	SKDragEnd   SKEventType = "dragend"
)

// SKEvent is a semantic event produced by a translator.
type SKEvent struct {
	Type      SKEventType
	TimeStamp time.Duration

	X, Y   float64
	Button MouseButton

	Key  string
	Mods KeyMod

	// DX, DY hold the drag delta since the previous drag event, or the
	// wheel delta in DY.
	DX, DY float64
	// StartX, StartY hold the press position of a drag gesture.
	StartX, StartY float64

	Width, Height int

	ClickCount int
}

func mouseEvent(t SKEventType, fe FundamentalEvent) SKEvent {
	return SKEvent{
		Type:      t,
		TimeStamp: fe.TimeStamp,
		X:         fe.X,
		Y:         fe.Y,
		Button:    fe.Button,
		Mods:      fe.Mods,
	}
}

func keyEvent(t SKEventType, fe FundamentalEvent) SKEvent {
	return SKEvent{
		Type:      t,
		TimeStamp: fe.TimeStamp,
		Key:       fe.Key,
		Mods:      fe.Mods,
	}
}

// distance between two points
func distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}
