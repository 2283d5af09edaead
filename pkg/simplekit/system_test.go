package simplekit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptedSystemValidate(t *testing.T) {
	assert.NoError(t, NewScriptedSystem(80, 24).Validate())
	assert.Error(t, NewScriptedSystem(0, 24).Validate())
}

func TestScriptedSystemFrameBeforeAttach(t *testing.T) {
	sys := NewScriptedSystem(10, 10)
	assert.ErrorIs(t, sys.Advance(time.Millisecond), ErrNotAttached)
}

func TestScriptedSystemDeliversPostedEvents(t *testing.T) {
	sys := NewScriptedSystem(10, 10)

	var frames [][]FundamentalEvent
	var times []time.Duration
	sys.Attach(func(q *Queue, now time.Duration) {
		frames = append(frames, append([]FundamentalEvent(nil), (*q)...))
		times = append(times, now)
	})
	require.True(t, sys.Attached())

	sys.Post(keyDown(1, "a"), keyUp(2, "a"))
	require.NoError(t, sys.Frame(ms(16)))
	require.NoError(t, sys.Frame(ms(10)))
	require.NoError(t, sys.Advance(ms(16)))

	require.Len(t, frames, 3)
	assert.Len(t, frames[0], 2)
	assert.Empty(t, frames[1])
	assert.Equal(t, []time.Duration{ms(16), ms(16), ms(32)}, times, "frame time never goes backwards")
	assert.Equal(t, ms(32), sys.Now())
}

func TestScriptedSystemResize(t *testing.T) {
	sys := NewScriptedSystem(10, 10)
	gc, err := sys.Surface()
	require.NoError(t, err)

	sys.Post(FundamentalEvent{Type: EventResize, Width: 40, Height: 12})
	w, h := gc.Size()
	assert.Equal(t, 40, w)
	assert.Equal(t, 12, h)
}
