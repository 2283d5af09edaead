package simplekit

import (
	"errors"
	"fmt"
	"time"
)

// FrameFunc is the run loop as seen by a windowing system. It is called once
// per frame, never concurrently, with the events collected since the previous
// frame and a non-decreasing frame time.
type FrameFunc func(q *Queue, now time.Duration)

//go:generate mockgen -destination=mock/mock.go -package=mock github.com/stlalpha/simplekit/pkg/simplekit Translator,WindowingSystem

// WindowingSystem is the host that produces frames and raw input
type WindowingSystem interface {
	// Validate reports whether the hosting environment is usable
	Validate() error

	// Surface acquires the single drawing surface
	Surface() (Canvas, error)

	// Attach registers the run loop to be called every frame
	Attach(frame FrameFunc)
}

// ErrNotAttached is returned when a frame is requested before Attach
var ErrNotAttached = errors.New("no run loop attached")

// ScriptedSystem is a headless WindowingSystem whose frames are driven
// explicitly. Events posted between frames are delivered with the next one.
type ScriptedSystem struct {
	width  int
	height int

	canvas *MemoryCanvas
	frame  FrameFunc
	queue  Queue
	now    time.Duration
}

// NewScriptedSystem creates a scripted host with a width x height surface
func NewScriptedSystem(width, height int) *ScriptedSystem {
	return &ScriptedSystem{width: width, height: height}
}

// Validate implements WindowingSystem
func (s *ScriptedSystem) Validate() error {
	if s.width <= 0 || s.height <= 0 {
		return fmt.Errorf("invalid surface size %dx%d", s.width, s.height)
	}
	return nil
}

// Surface implements WindowingSystem
func (s *ScriptedSystem) Surface() (Canvas, error) {
	if s.canvas == nil {
		s.canvas = NewMemoryCanvas(s.width, s.height)
	}
	return s.canvas, nil
}

// Attach implements WindowingSystem
func (s *ScriptedSystem) Attach(frame FrameFunc) {
	s.frame = frame
}

// Attached reports whether a run loop has been attached
func (s *ScriptedSystem) Attached() bool {
	return s.frame != nil
}

// Now returns the time of the last frame
func (s *ScriptedSystem) Now() time.Duration {
	return s.now
}

// Post queues events for the next frame. Resize events also resize the
// surface, as a real host would before delivering them.
func (s *ScriptedSystem) Post(events ...FundamentalEvent) {
	for _, fe := range events {
		if fe.Type == EventResize && s.canvas != nil && fe.Width > 0 && fe.Height > 0 {
			s.canvas.Resize(fe.Width, fe.Height)
		}
	}
	s.queue.Push(events...)
}

// Frame runs one frame at time now. Time never goes backwards: an earlier
// now is raised to the previous frame time.
func (s *ScriptedSystem) Frame(now time.Duration) error {
	if s.frame == nil {
		return ErrNotAttached
	}
	if now < s.now {
		now = s.now
	}
	s.now = now

	q := s.queue
	s.queue = nil
	s.frame(&q, now)
	return nil
}

// Advance runs one frame d after the previous one
func (s *ScriptedSystem) Advance(d time.Duration) error {
	return s.Frame(s.now + d)
}
