// Package demo is a small interactive toolkit application: a box that can be
// dragged, clicked, double-clicked and long-pressed, with counters and a key
// log. It runs the same way in a local terminal, over SSH and in replay.
package demo

import (
	"fmt"
	"strings"
	"time"

	"github.com/stlalpha/simplekit/pkg/simplekit"
)

const (
	keyLogSize = 8
	flashTime  = 400 * time.Millisecond
	// LongPressHold is how long the box must be held to reset it
	LongPressHold = 600 * time.Millisecond
)

// App holds the demo state. All methods run on the frame goroutine.
type App struct {
	theme    Theme
	box      simplekit.Rect
	grab     simplekit.Rect
	dragging bool
	alt      bool
	bounds   simplekit.Rect

	clicks     int
	dblclicks  int
	longpress  int
	keys       []string
	last       string
	flashUntil time.Duration
	flash      bool
	now        time.Duration
}

// New creates the demo with the box in its start position
func New() *App {
	return &App{theme: DefaultTheme(), box: simplekit.NewRect(2, 2, 18, 5)}
}

// Install registers the long-press translator and the demo callbacks on tk.
// wrap, if not nil, decorates the event listener (e.g. to count events).
func (a *App) Install(tk *simplekit.Toolkit, wrap func(simplekit.EventListener) simplekit.EventListener) {
	tk.AddTranslator(NewLongPressTranslator(LongPressHold))

	var l simplekit.EventListener = a.Handle
	if wrap != nil {
		l = wrap(l)
	}
	tk.SetEventListener(l)
	tk.SetAnimationCallback(a.Animate)
	tk.SetDrawCallback(a.Draw)
}

// Counts returns the click, double-click and long-press counters
func (a *App) Counts() (clicks, dblclicks, longpresses int) {
	return a.clicks, a.dblclicks, a.longpress
}

// Box returns the box position
func (a *App) Box() simplekit.Rect {
	return a.box
}

// Keys returns the most recent keypresses, oldest first
func (a *App) Keys() []string {
	return append([]string(nil), a.keys...)
}

// Handle is the event listener
func (a *App) Handle(ev simplekit.SKEvent) {
	switch ev.Type {
	case simplekit.SKResize:
		a.bounds = simplekit.NewRect(0, 0, ev.Width, ev.Height)
		a.box = a.box.Clamp(a.playfield())

	case simplekit.SKDragStart:
		if a.box.ContainsPoint(ev.StartX, ev.StartY) {
			a.dragging = true
			a.grab = a.box
		}
		fallthrough
	case simplekit.SKDrag:
		if a.dragging {
			a.box = a.grab.Move(int(ev.X-ev.StartX), int(ev.Y-ev.StartY)).Clamp(a.playfield())
		}

	case simplekit.SKDragEnd:
		a.dragging = false

	case simplekit.SKClick:
		if a.box.ContainsPoint(ev.X, ev.Y) {
			a.clicks++
		}

	case simplekit.SKDblClick:
		if a.box.ContainsPoint(ev.X, ev.Y) {
			a.dblclicks++
			a.alt = !a.alt
			a.flashUntil = ev.TimeStamp + flashTime
		}

	case SKLongPress:
		if a.box.ContainsPoint(ev.X, ev.Y) {
			a.longpress++
			a.box = a.playfield().Center(a.box.W, a.box.H)
		}

	case simplekit.SKKeyPress:
		if ev.Key == "r" {
			a.clicks, a.dblclicks, a.longpress = 0, 0, 0
		}
		a.keys = append(a.keys, ev.Key)
		if len(a.keys) > keyLogSize {
			a.keys = a.keys[len(a.keys)-keyLogSize:]
		}

	default:
		return
	}
	a.last = fmt.Sprintf("%s @%.0f,%.0f", ev.Type, ev.X, ev.Y)
}

// Animate is the animation callback
func (a *App) Animate(now time.Duration) {
	a.now = now
	a.flash = now < a.flashUntil
}

// playfield is the area between the title and status lines
func (a *App) playfield() simplekit.Rect {
	if a.bounds.IsEmpty() {
		return simplekit.NewRect(0, 1, 1<<16, 1<<16)
	}
	return simplekit.NewRect(0, 1, a.bounds.W, max(a.bounds.H-3, 0))
}

// Draw is the draw callback
func (a *App) Draw(gc simplekit.Canvas) {
	w, h := gc.Size()
	if a.bounds.W != w || a.bounds.H != h {
		a.bounds = simplekit.NewRect(0, 0, w, h)
		a.box = a.box.Clamp(a.playfield())
	}
	gc.Clear(a.theme.Base)

	gc.Fill(simplekit.NewRect(0, 0, w, 1), ' ', a.theme.Title)
	gc.SetString(1, 0, fmt.Sprintf("SimpleKit %s demo  drag, click, double-click or hold the box  ctrl+c quits", simplekit.Version), a.theme.Title)

	style := a.theme.boxStyle(a.alt, a.flash, a.dragging)
	gc.Fill(a.box, ' ', style)
	gc.DrawBoxWithTitle(a.box, "box", style)
	gc.SetString(a.box.X+2, a.box.Y+a.box.H/2, "drag me", style)

	gc.SetString(1, h-2, fmt.Sprintf("clicks %d  double %d  long %d  t=%.1fs",
		a.clicks, a.dblclicks, a.longpress, a.now.Seconds()), a.theme.Status)
	gc.SetString(1, h-1, fmt.Sprintf("keys [%s]  last: %s", strings.Join(a.keys, " "), a.last), a.theme.Status)
}
