// Package record saves the raw input of a toolkit session as JSON lines and
// replays it into a fresh toolkit.
//
// A recording is one Header line followed by one Frame line per run-loop
// frame, empty frames included, so replay reproduces every null event.
package record

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/stlalpha/simplekit/pkg/simplekit"
)

// FormatVersion is written in every header
const FormatVersion = 1

// Header is the first line of a recording
type Header struct {
	Version int       `json:"version"`
	Session uuid.UUID `json:"session"`
	Created time.Time `json:"created"`
	Toolkit string    `json:"toolkit"`
	Width   int       `json:"width"`
	Height  int       `json:"height"`
}

// Frame is the raw queue of one frame, before coalescing
type Frame struct {
	Now    time.Duration                `json:"now"`
	Events []simplekit.FundamentalEvent `json:"events,omitempty"`
}

// Recorder is a WindowingSystem that records every frame of the system it
// wraps. Write errors stop recording but never stop the session; check Err.
type Recorder struct {
	ws      simplekit.WindowingSystem
	enc     *json.Encoder
	session uuid.UUID
	header  bool
	frames  int
	err     error
}

// NewRecorder wraps ws, writing to w. A nil session gets a new random id.
func NewRecorder(ws simplekit.WindowingSystem, w io.Writer, session uuid.UUID) *Recorder {
	if session == uuid.Nil {
		session = uuid.New()
	}
	return &Recorder{ws: ws, enc: json.NewEncoder(w), session: session}
}

// Session returns the recording id
func (r *Recorder) Session() uuid.UUID {
	return r.session
}

// Frames returns the number of frames written
func (r *Recorder) Frames() int {
	return r.frames
}

// Err returns the first write error
func (r *Recorder) Err() error {
	return r.err
}

// Validate implements simplekit.WindowingSystem
func (r *Recorder) Validate() error {
	return r.ws.Validate()
}

// Surface implements simplekit.WindowingSystem. The header is written once
// the surface size is known.
func (r *Recorder) Surface() (simplekit.Canvas, error) {
	gc, err := r.ws.Surface()
	if err != nil || gc == nil {
		return gc, err
	}
	if !r.header {
		w, h := gc.Size()
		r.write(Header{
			Version: FormatVersion,
			Session: r.session,
			Created: time.Now().UTC(),
			Toolkit: simplekit.Version,
			Width:   w,
			Height:  h,
		})
		r.header = true
	}
	return gc, nil
}

// Attach implements simplekit.WindowingSystem
func (r *Recorder) Attach(frame simplekit.FrameFunc) {
	r.ws.Attach(func(q *simplekit.Queue, now time.Duration) {
		f := Frame{Now: now}
		if q != nil && q.Len() > 0 {
			f.Events = append([]simplekit.FundamentalEvent(nil), (*q)...)
		}
		if r.write(f) {
			r.frames++
		}
		frame(q, now)
	})
}

func (r *Recorder) write(v any) bool {
	if r.err != nil {
		return false
	}
	if err := r.enc.Encode(v); err != nil {
		r.err = fmt.Errorf("failed to write recording %s: %w", r.session, err)
		return false
	}
	return true
}
