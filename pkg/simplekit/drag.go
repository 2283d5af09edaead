package simplekit

type dragState int

const (
	dragIdle     dragState = iota
	dragArmed              // button down, not yet past the threshold
	dragDragging           // dragstart sent, waiting for release
)

// DragTranslator reports drag gestures: dragstart once the pointer moves more
// than DragThreshold from where the button went down, drag for every move
// after that, and dragend on release. Moves inside the threshold and releases
// before it produce nothing.
type DragTranslator struct {
	opts Options

	state   dragState
	pointer int
	button  MouseButton
	startX  float64
	startY  float64
	lastX   float64
	lastY   float64
}

// NewDragTranslator creates an idle drag translator
func NewDragTranslator(opts Options) *DragTranslator {
	return &DragTranslator{opts: opts.withDefaults()}
}

// Configure implements Configurable
func (t *DragTranslator) Configure(opts Options) {
	t.opts = opts.withDefaults()
}

// Dragging reports whether a drag gesture is in progress
func (t *DragTranslator) Dragging() bool {
	return t.state == dragDragging
}

// Update implements Translator
func (t *DragTranslator) Update(fe FundamentalEvent) (SKEvent, bool) {
	switch fe.Type {
	case EventMouseDown:
		if t.state != dragIdle {
			return SKEvent{}, false
		}
		t.state = dragArmed
		t.pointer = fe.PointerID
		t.button = fe.Button
		t.startX, t.startY = fe.X, fe.Y
		t.lastX, t.lastY = fe.X, fe.Y

	case EventMouseMove:
		if fe.PointerID != t.pointer {
			return SKEvent{}, false
		}
		switch t.state {
		case dragArmed:
			if distance(t.startX, t.startY, fe.X, fe.Y) <= t.opts.DragThreshold {
				return SKEvent{}, false
			}
			t.state = dragDragging
			return t.emit(SKDragStart, fe), true
		case dragDragging:
			return t.emit(SKDrag, fe), true
		}

	case EventMouseUp:
		if fe.PointerID != t.pointer {
			return SKEvent{}, false
		}
		switch t.state {
		case dragArmed:
			t.state = dragIdle
		case dragDragging:
			t.state = dragIdle
			return t.emit(SKDragEnd, fe), true
		}
	}
	return SKEvent{}, false
}

// emit builds a drag event at the event position with the delta from the
// previous one, then advances the last position
func (t *DragTranslator) emit(typ SKEventType, fe FundamentalEvent) SKEvent {
	ev := SKEvent{
		Type:      typ,
		TimeStamp: fe.TimeStamp,
		X:         fe.X,
		Y:         fe.Y,
		Button:    t.button,
		Mods:      fe.Mods,
		DX:        fe.X - t.lastX,
		DY:        fe.Y - t.lastY,
		StartX:    t.startX,
		StartY:    t.startY,
	}
	t.lastX, t.lastY = fe.X, fe.Y
	return ev
}
