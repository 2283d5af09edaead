package simplekit

// KeypressTranslator emits one keypress per physical key press. Keys are held
// in a down set so auto-repeated keydown events are swallowed until the
// matching keyup arrives.
type KeypressTranslator struct {
	down map[string]struct{}
}

// NewKeypressTranslator creates a keypress translator with no keys down
func NewKeypressTranslator() *KeypressTranslator {
	return &KeypressTranslator{down: make(map[string]struct{})}
}

// Update implements Translator
func (t *KeypressTranslator) Update(fe FundamentalEvent) (SKEvent, bool) {
	if fe.Key == "" {
		return SKEvent{}, false
	}

	switch fe.Type {
	case EventKeyDown:
		if _, held := t.down[fe.Key]; held {
			return SKEvent{}, false
		}
		t.down[fe.Key] = struct{}{}
		return keyEvent(SKKeyPress, fe), true
	case EventKeyUp:
		delete(t.down, fe.Key)
	}
	return SKEvent{}, false
}

// Held reports whether key is currently down
func (t *KeypressTranslator) Held(key string) bool {
	_, ok := t.down[key]
	return ok
}
