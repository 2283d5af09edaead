package simplekit

import "time"

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

func press(at int, x, y float64) FundamentalEvent {
	return FundamentalEvent{Type: EventMouseDown, TimeStamp: ms(at), X: x, Y: y, Button: ButtonLeft}
}

func release(at int, x, y float64) FundamentalEvent {
	return FundamentalEvent{Type: EventMouseUp, TimeStamp: ms(at), X: x, Y: y, Button: ButtonLeft}
}

func motion(at int, x, y float64) FundamentalEvent {
	return FundamentalEvent{Type: EventMouseMove, TimeStamp: ms(at), X: x, Y: y, Button: ButtonLeft}
}

func keyDown(at int, key string) FundamentalEvent {
	return FundamentalEvent{Type: EventKeyDown, TimeStamp: ms(at), Key: key}
}

func keyUp(at int, key string) FundamentalEvent {
	return FundamentalEvent{Type: EventKeyUp, TimeStamp: ms(at), Key: key}
}

// feed runs events through translators in order and collects what they emit
func feed(translators []Translator, events ...FundamentalEvent) []SKEvent {
	var out []SKEvent
	for _, fe := range events {
		for _, t := range translators {
			if ev, ok := t.Update(fe); ok {
				out = append(out, ev)
			}
		}
	}
	return out
}

func types(events []SKEvent) []SKEventType {
	out := make([]SKEventType, 0, len(events))
	for _, ev := range events {
		out = append(out, ev.Type)
	}
	return out
}
