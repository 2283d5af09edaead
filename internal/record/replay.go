package record

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/stlalpha/simplekit/pkg/simplekit"
)

// ErrBadRecording is returned for input that is not a recording
var ErrBadRecording = errors.New("not a simplekit recording")

// maxLine bounds a single recorded frame
const maxLine = 4 << 20

// Recording is a loaded recording
type Recording struct {
	Header Header
	Frames []Frame
}

// Load reads a recording
func Load(r io.Reader) (*Recording, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLine)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("failed to read recording header: %w", err)
		}
		return nil, fmt.Errorf("%w: empty input", ErrBadRecording)
	}

	rec := &Recording{}
	if err := json.Unmarshal(sc.Bytes(), &rec.Header); err != nil {
		return nil, fmt.Errorf("%w: bad header: %w", ErrBadRecording, err)
	}
	if rec.Header.Version != FormatVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrBadRecording, rec.Header.Version)
	}

	for line := 2; sc.Scan(); line++ {
		var f Frame
		if err := json.Unmarshal(sc.Bytes(), &f); err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrBadRecording, line, err)
		}
		rec.Frames = append(rec.Frames, f)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read recording: %w", err)
	}
	return rec, nil
}

// LoadFile reads a recording from path
func LoadFile(path string) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open recording %s: %w", path, err)
	}
	defer f.Close()

	rec, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rec, nil
}

// ProgressFunc is told how many frames have been replayed
type ProgressFunc func(done, total int)

// Replay starts tk on a scripted system of the recorded size and feeds it
// every recorded frame in order.
func (rec *Recording) Replay(tk *simplekit.Toolkit, progress ProgressFunc) error {
	sys := simplekit.NewScriptedSystem(rec.Header.Width, rec.Header.Height)
	if err := tk.Startup(sys); err != nil {
		return fmt.Errorf("failed to start replay: %w", err)
	}

	total := len(rec.Frames)
	for i, f := range rec.Frames {
		sys.Post(f.Events...)
		if err := sys.Frame(f.Now); err != nil {
			return err
		}
		if progress != nil {
			progress(i+1, total)
		}
	}
	return nil
}

// Duration is the time of the last recorded frame
func (rec *Recording) Duration() time.Duration {
	if len(rec.Frames) == 0 {
		return 0
	}
	return rec.Frames[len(rec.Frames)-1].Now
}
