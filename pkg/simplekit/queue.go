package simplekit

// Queue is the ordered list of fundamental events collected for one frame.
// The run loop owns it for the duration of the frame and drains it.
type Queue []FundamentalEvent

// Push appends events to the back of the queue
func (q *Queue) Push(events ...FundamentalEvent) {
	*q = append(*q, events...)
}

// Len returns the number of queued events
func (q Queue) Len() int {
	return len(q)
}

// shift removes and returns the front event
func (q *Queue) shift() (FundamentalEvent, bool) {
	if len(*q) == 0 {
		return FundamentalEvent{}, false
	}
	fe := (*q)[0]
	(*q)[0] = FundamentalEvent{}
	*q = (*q)[1:]
	return fe, true
}

// Coalesce reduces the queue in place. A run of consecutive mousemove events
// for the same pointer keeps only its last entry, and a run of consecutive
// resize events keeps only its last entry. Order is preserved and a lone
// event always survives, so coalescing twice gives the same result as once.
func (q *Queue) Coalesce() {
	events := *q
	if len(events) < 2 {
		return
	}

	out := events[:0]
	for i, fe := range events {
		if i+1 < len(events) && redundant(fe, events[i+1]) {
			continue
		}
		out = append(out, fe)
	}

	// clear the tail so dropped events are not kept alive by the backing array
	for i := len(out); i < len(events); i++ {
		events[i] = FundamentalEvent{}
	}
	*q = out
}

// redundant reports whether cur carries nothing that next does not supersede
func redundant(cur, next FundamentalEvent) bool {
	if cur.Type != next.Type {
		return false
	}
	switch cur.Type {
	case EventMouseMove:
		return cur.PointerID == next.PointerID
	case EventResize:
		return true
	}
	return false
}
