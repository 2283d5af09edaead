package simplekit

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	// ErrEnvironment is returned when the hosting environment is unsuitable
	ErrEnvironment = errors.New("unsuitable host environment")
	// ErrNoSurface is returned when no drawing surface could be acquired
	ErrNoSurface = errors.New("unable to get drawing surface")
	// ErrAlreadyStarted is returned when Startup is called twice
	ErrAlreadyStarted = errors.New("toolkit already started")
)

// EventListener receives every semantic event, in generation order
type EventListener func(ev SKEvent)

// AnimationCallback is called once per frame with the frame time
type AnimationCallback func(now time.Duration)

// DrawCallback is called once per frame, last, with the drawing surface
type DrawCallback func(gc Canvas)

// Toolkit is the run-loop context: the translator registry, the dispatch
// callbacks and the drawing surface. Create one with New, configure it, then
// hand it to a WindowingSystem with Start. All methods except Stats must be
// called from the goroutine that drives frames.
type Toolkit struct {
	translators []Translator

	listener EventListener
	animate  AnimationCallback
	draw     DrawCallback

	surface Canvas
	started bool
	inFrame bool

	// reused between frames
	events []SKEvent

	log   logrus.FieldLogger
	stats counters
}

// New creates a toolkit with the five standard translators
func New(opts Options) *Toolkit {
	return &Toolkit{
		translators: DefaultTranslators(opts),
		log:         logrus.StandardLogger(),
	}
}

// NewEmpty creates a toolkit with an empty translator registry
func NewEmpty() *Toolkit {
	return &Toolkit{log: logrus.StandardLogger()}
}

// SetLogger replaces the logger used for startup and registration messages
func (tk *Toolkit) SetLogger(l logrus.FieldLogger) {
	if l == nil {
		l = logrus.StandardLogger()
	}
	tk.log = l
}

// AddTranslator appends a translator to the registry. It sees events from
// the next processed fundamental event onward. There is no removal.
func (tk *Toolkit) AddTranslator(t Translator) {
	if t == nil {
		return
	}
	tk.translators = append(tk.translators, t)
	tk.log.Infof("added event translator, now %d translators", len(tk.translators))
}

// Translators returns a copy of the registry in dispatch order
func (tk *Toolkit) Translators() []Translator {
	out := make([]Translator, len(tk.translators))
	copy(out, tk.translators)
	return out
}

// Configure passes new tolerances to every registered Configurable translator
func (tk *Toolkit) Configure(opts Options) {
	n := 0
	for _, t := range tk.translators {
		if c, ok := t.(Configurable); ok {
			c.Configure(opts)
			n++
		}
	}
	tk.log.Debugf("reconfigured %d translators", n)
}

// SetEventListener sets the global semantic event listener (nil clears it)
func (tk *Toolkit) SetEventListener(l EventListener) {
	tk.listener = l
}

// SetAnimationCallback sets the per-frame animation hook (nil clears it)
func (tk *Toolkit) SetAnimationCallback(a AnimationCallback) {
	tk.animate = a
}

// SetDrawCallback sets the per-frame render hook (nil clears it)
func (tk *Toolkit) SetDrawCallback(d DrawCallback) {
	tk.draw = d
}

// Surface returns the drawing surface acquired at startup
func (tk *Toolkit) Surface() Canvas {
	return tk.surface
}

// Start validates the host, acquires its surface and attaches the run loop.
// It reports failure once through the logger and returns false; in that case
// nothing is attached.
func (tk *Toolkit) Start(ws WindowingSystem) bool {
	if err := tk.Startup(ws); err != nil {
		tk.log.WithError(err).Error("SimpleKit startup failed")
		return false
	}
	return true
}

// Startup is Start with the failure returned instead of logged
func (tk *Toolkit) Startup(ws WindowingSystem) error {
	if tk.started {
		return ErrAlreadyStarted
	}
	tk.log.Infof("SimpleKit v%s startup", Version)

	if ws == nil {
		return fmt.Errorf("%w: no windowing system", ErrEnvironment)
	}
	if err := ws.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrEnvironment, err)
	}

	gc, err := ws.Surface()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNoSurface, err)
	}
	if gc == nil {
		return ErrNoSurface
	}
	tk.surface = gc

	ws.Attach(tk.RunLoop)
	tk.started = true
	return nil
}

// RunLoop processes one frame: it coalesces q, feeds every event (or one
// null event if q is empty) to every translator in registry order, dispatches
// the resulting semantic events, then calls the animation and draw callbacks.
// q is drained. A call made from inside a running frame is ignored.
func (tk *Toolkit) RunLoop(q *Queue, now time.Duration) {
	if tk.inFrame {
		tk.log.Warn("run loop re-entered from inside a frame, call ignored")
		return
	}
	tk.inFrame = true
	defer func() { tk.inFrame = false }()

	if q == nil {
		q = &Queue{}
	}
	raw := q.Len()
	q.Coalesce()
	tk.stats.frame(raw, q.Len())

	events := tk.events[:0]
	if q.Len() == 0 {
		events = tk.translate(NullEvent(now), events)
	}
	for {
		fe, ok := q.shift()
		if !ok {
			break
		}
		events = tk.translate(fe, events)
	}
	tk.stats.emitted.Add(uint64(len(events)))

	if tk.listener != nil {
		for _, ev := range events {
			tk.listener(ev)
		}
	}
	if tk.animate != nil {
		tk.animate(now)
	}
	if tk.draw != nil {
		tk.draw(tk.surface)
	}

	clear(events)
	tk.events = events[:0]
}

// translate feeds one fundamental event to the registry as it stands now
func (tk *Toolkit) translate(fe FundamentalEvent, events []SKEvent) []SKEvent {
	registry := tk.translators
	tk.stats.calls.Add(uint64(len(registry)))
	for _, t := range registry {
		if ev, ok := t.Update(fe); ok {
			events = append(events, ev)
		}
	}
	return events
}

// Stats is a snapshot of the toolkit's frame counters
type Stats struct {
	Frames     uint64 `json:"frames"`      // run loop calls
	NullFrames uint64 `json:"null_frames"` // frames translated with a synthetic null event
	RawEvents  uint64 `json:"raw_events"`  // fundamental events received before coalescing
	Events     uint64 `json:"events"`      // fundamental events left after coalescing
	Calls      uint64 `json:"calls"`       // translator Update calls
	Emitted    uint64 `json:"emitted"`     // semantic events dispatched
}

// Coalesced returns how many raw events coalescing removed
func (s Stats) Coalesced() uint64 {
	return s.RawEvents - s.Events
}

// Stats returns the frame counters. It is safe to call from any goroutine.
func (tk *Toolkit) Stats() Stats {
	return Stats{
		Frames:     tk.stats.frames.Load(),
		NullFrames: tk.stats.nullFrames.Load(),
		RawEvents:  tk.stats.raw.Load(),
		Events:     tk.stats.kept.Load(),
		Calls:      tk.stats.calls.Load(),
		Emitted:    tk.stats.emitted.Load(),
	}
}

type counters struct {
	frames     atomic.Uint64
	nullFrames atomic.Uint64
	raw        atomic.Uint64
	kept       atomic.Uint64
	calls      atomic.Uint64
	emitted    atomic.Uint64
}

func (c *counters) frame(raw, kept int) {
	c.frames.Add(1)
	if kept == 0 {
		c.nullFrames.Add(1)
	}
	c.raw.Add(uint64(raw))
	c.kept.Add(uint64(kept))
}
