package simplekit

import "time"

// DoubleClickTranslator pairs two clicks of the same button that land within
// DoubleClickTolerance of each other and DoubleClickWindow apart, and reports
// them as a single dblclick.
//
// Linked to a ClickTranslator (the standard arrangement) it sits downstream of
// that translator: the click translator hands over every click it detects and
// this translator holds at most one of them pending. Pairing produces a
// dblclick from this translator on the same fundamental event; expiry or a
// non-matching click releases the pending click through the click translator.
// The click translator must therefore be registered before this one.
//
// Created without a click translator it detects clicks itself and reports both
// the released plain clicks and the dblclicks.
type DoubleClickTranslator struct {
	opts Options

	// internal click detection when not linked
	inner *ClickTranslator

	waiting bool
	pending SKEvent

	hasReady bool
	ready    SKEvent
}

// NewDoubleClickTranslator creates a double-click translator. If click is not
// nil the two translators are linked.
func NewDoubleClickTranslator(click *ClickTranslator, opts Options) *DoubleClickTranslator {
	d := &DoubleClickTranslator{opts: opts.withDefaults()}
	if click != nil {
		click.lookahead = d
	} else {
		d.inner = NewClickTranslator(opts)
	}
	return d
}

// Configure implements Configurable
func (d *DoubleClickTranslator) Configure(opts Options) {
	d.opts = opts.withDefaults()
	if d.inner != nil {
		d.inner.Configure(opts)
	}
}

// Update implements Translator
func (d *DoubleClickTranslator) Update(fe FundamentalEvent) (SKEvent, bool) {
	var (
		out  SKEvent
		emit bool
	)
	if d.inner != nil {
		click, ok := d.inner.detect(fe)
		out, emit = d.admit(fe.TimeStamp, click, ok)
	}

	// pairing and releasing never happen on the same event
	if d.hasReady {
		d.hasReady = false
		return d.ready, true
	}
	return out, emit
}

// Pending reports whether a click is being held back
func (d *DoubleClickTranslator) Pending() bool {
	return d.waiting
}

// admit takes the result of click detection for one event and returns the
// plain click, if any, that should be emitted for it.
func (d *DoubleClickTranslator) admit(now time.Duration, click SKEvent, ok bool) (SKEvent, bool) {
	if !d.waiting {
		if ok {
			d.pending = click
			d.waiting = true
		}
		return SKEvent{}, false
	}

	if ok {
		if d.pairs(click) {
			d.waiting = false
			dbl := click
			dbl.Type = SKDblClick
			dbl.ClickCount = 2
			d.ready = dbl
			d.hasReady = true
			return SKEvent{}, false
		}
		released := d.pending
		d.pending = click
		return released, true
	}

	if now-d.pending.TimeStamp > d.opts.DoubleClickWindow {
		d.waiting = false
		return d.pending, true
	}
	return SKEvent{}, false
}

// pairs reports whether click completes a double click with the pending one
func (d *DoubleClickTranslator) pairs(click SKEvent) bool {
	if click.Button != d.pending.Button {
		return false
	}
	if click.TimeStamp-d.pending.TimeStamp > d.opts.DoubleClickWindow {
		return false
	}
	return distance(d.pending.X, d.pending.Y, click.X, click.Y) <= d.opts.DoubleClickTolerance
}
