package simplekit

// FundamentalTranslator passes raw events through as semantic events of the
// same name. It has no state and no gesture logic.
type FundamentalTranslator struct{}

// NewFundamentalTranslator creates a pass-through translator
func NewFundamentalTranslator() *FundamentalTranslator {
	return &FundamentalTranslator{}
}

// Update implements Translator
func (FundamentalTranslator) Update(fe FundamentalEvent) (SKEvent, bool) {
	switch fe.Type {
	case EventMouseDown:
		return mouseEvent(SKMouseDown, fe), true
	case EventMouseUp:
		return mouseEvent(SKMouseUp, fe), true
	case EventMouseMove:
		return mouseEvent(SKMouseMove, fe), true
	case EventWheel:
		ev := mouseEvent(SKWheel, fe)
		ev.DY = fe.WheelDelta
		return ev, true
	case EventKeyDown:
		return keyEvent(SKKeyDown, fe), true
	case EventKeyUp:
		return keyEvent(SKKeyUp, fe), true
	case EventResize:
		return SKEvent{
			Type:      SKResize,
			TimeStamp: fe.TimeStamp,
			Width:     fe.Width,
			Height:    fe.Height,
		}, true
	}
	return SKEvent{}, false
}
