package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stlalpha/simplekit/internal/config"
	"github.com/stlalpha/simplekit/internal/record"
	"github.com/stlalpha/simplekit/pkg/simplekit"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeRecording records one click inside the demo box
func writeRecording(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.jsonl")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	sys := simplekit.NewScriptedSystem(80, 24)
	rec := record.NewRecorder(sys, f, uuid.Nil)
	require.NoError(t, simplekit.New(simplekit.DefaultOptions()).Startup(rec))

	sys.Post(
		simplekit.FundamentalEvent{Type: simplekit.EventMouseDown, X: 5, Y: 4, Button: simplekit.ButtonLeft},
		simplekit.FundamentalEvent{Type: simplekit.EventMouseUp, TimeStamp: 50 * time.Millisecond, X: 5, Y: 4, Button: simplekit.ButtonLeft},
	)
	require.NoError(t, sys.Frame(50*time.Millisecond))
	require.NoError(t, sys.Frame(400*time.Millisecond))
	require.NoError(t, rec.Err())
	return path
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, simplekit.Version)
}

func TestReplay(t *testing.T) {
	path := writeRecording(t)
	missing := filepath.Join(t.TempDir(), "simplekit.yaml")

	out, _, err := execute(t, "replay", path, "-q", "--show", "--config", missing)
	require.NoError(t, err)
	assert.Contains(t, out, "2 frames over 400ms")
	assert.Contains(t, out, "clicks 1  double 0  long 0")
	assert.Contains(t, out, "drag me")
}

func TestReplayProgressGoesToStderr(t *testing.T) {
	path := writeRecording(t)
	missing := filepath.Join(t.TempDir(), "simplekit.yaml")

	out, errOut, err := execute(t, "replay", path, "--config", missing)
	require.NoError(t, err)
	assert.Contains(t, errOut, "Replaying...")
	assert.NotContains(t, out, "Replaying...")
}

func TestReplayFlagOverridesConfig(t *testing.T) {
	path := writeRecording(t)
	cfg := filepath.Join(t.TempDir(), "simplekit.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("frame_rate: 30\n"), 0o644))

	_, _, err := execute(t, "replay", path, "-q", "--config", cfg, "--frame-rate", "500")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frame_rate 500 out of range")
}

func TestReplayMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "simplekit.yaml")
	_, _, err := execute(t, "replay", filepath.Join(t.TempDir(), "nope.jsonl"), "--config", missing)
	require.Error(t, err)
}

func TestReloadKeepsExplicitFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "simplekit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("frame_rate: 60\n"), 0o644))

	c := &cli{}
	root := c.command()
	root.SetErr(io.Discard)
	serve, _, err := root.Find([]string{"serve"})
	require.NoError(t, err)
	require.NoError(t, serve.ParseFlags([]string{"--config", path, "--frame-rate", "30"}))
	require.NoError(t, c.setup(serve, nil))
	require.Equal(t, 30, c.cfg.FrameRate)

	got := make(chan config.Config, 4)
	stop := c.watchConfig(func(cfg config.Config) { got <- cfg })
	defer stop()

	require.NoError(t, os.WriteFile(path, []byte("frame_rate: 60\ntranslators:\n  drag_threshold: 3\n"), 0o644))

	select {
	case cfg := <-got:
		assert.Equal(t, 30, cfg.FrameRate, "--frame-rate still wins after reload")
		assert.Equal(t, 3.0, cfg.Translators.DragThreshold)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after config write")
	}
}
