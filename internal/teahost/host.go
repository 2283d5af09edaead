// Package teahost runs a simplekit toolkit inside a bubbletea program. The
// terminal is the windowing system: bubbletea messages become fundamental
// events, a tea.Tick loop produces frames and the toolkit's MemoryCanvas is
// the rendered view.
package teahost

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/stlalpha/simplekit/internal/logging"
	"github.com/stlalpha/simplekit/pkg/simplekit"
)

// DefaultFrameRate is used when no frame rate is configured
const DefaultFrameRate = 60

// ErrNoTerminal is returned by Validate when there is no usable terminal
var ErrNoTerminal = errors.New("no terminal")

// frameMsg drives one run-loop frame
type frameMsg time.Time

// ConfigMsg changes translator tolerances and the frame rate of a running
// host. It is applied between frames.
type ConfigMsg struct {
	Options   simplekit.Options
	FrameRate int
}

// Host is a simplekit.WindowingSystem backed by a terminal. It is also the
// tea.Model of the program that drives it.
type Host struct {
	frame    simplekit.FrameFunc
	canvas   *simplekit.MemoryCanvas
	queue    simplekit.Queue
	interval time.Duration

	tty    *os.File
	width  int
	height int

	start   time.Time
	last    time.Duration
	clock   func() time.Time
	pressed simplekit.MouseButton

	keys      KeyMap
	renderer  *lipgloss.Renderer
	configure func(simplekit.Options)
	program   *tea.Program
	running   atomic.Pointer[tea.Program]
	log       logrus.FieldLogger
}

// Option configures a Host
type Option func(*Host)

// WithTerminal validates f as the terminal and sizes the surface from it
func WithTerminal(f *os.File) Option {
	return func(h *Host) { h.tty = f }
}

// WithSize sets the surface size, e.g. from an SSH pty request
func WithSize(width, height int) Option {
	return func(h *Host) { h.width, h.height = width, height }
}

// WithFrameRate sets the number of frames per second
func WithFrameRate(fps int) Option {
	return func(h *Host) {
		if fps > 0 {
			h.interval = time.Second / time.Duration(fps)
		}
	}
}

// WithConfigure sets the function that applies ConfigMsg options, normally
// Toolkit.Configure
func WithConfigure(fn func(simplekit.Options)) Option {
	return func(h *Host) { h.configure = fn }
}

// WithKeyMap replaces the host key bindings
func WithKeyMap(km KeyMap) Option {
	return func(h *Host) { h.keys = km }
}

// WithRenderer renders the surface with r instead of the default renderer
func WithRenderer(r *lipgloss.Renderer) Option {
	return func(h *Host) { h.renderer = r }
}

// WithClock replaces time.Now
func WithClock(clock func() time.Time) Option {
	return func(h *Host) { h.clock = clock }
}

// WithLogger replaces the host logger
func WithLogger(l logrus.FieldLogger) Option {
	return func(h *Host) { h.log = l }
}

// New creates a host. Event and frame times are measured from this call.
func New(opts ...Option) *Host {
	h := &Host{
		interval: time.Second / DefaultFrameRate,
		clock:    time.Now,
		keys:     DefaultKeyMap(),
		log:      logging.For("teahost"),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.start = h.clock()
	return h
}

// Validate implements simplekit.WindowingSystem
func (h *Host) Validate() error {
	if h.tty != nil {
		fd := int(h.tty.Fd())
		if !term.IsTerminal(fd) {
			return fmt.Errorf("%w: %s is not a terminal", ErrNoTerminal, h.tty.Name())
		}
		if h.width <= 0 || h.height <= 0 {
			w, ht, err := term.GetSize(fd)
			if err != nil {
				return fmt.Errorf("%w: failed to get size: %w", ErrNoTerminal, err)
			}
			h.width, h.height = w, ht
		}
	}
	if h.width <= 0 || h.height <= 0 {
		return fmt.Errorf("%w: unknown size %dx%d", ErrNoTerminal, h.width, h.height)
	}
	return nil
}

// Surface implements simplekit.WindowingSystem
func (h *Host) Surface() (simplekit.Canvas, error) {
	if h.canvas == nil {
		h.canvas = simplekit.NewMemoryCanvas(h.width, h.height)
		h.canvas.SetRenderer(h.renderer)
	}
	return h.canvas, nil
}

// Attach implements simplekit.WindowingSystem
func (h *Host) Attach(frame simplekit.FrameFunc) {
	h.frame = frame
}

// Program creates the bubbletea program that drives this host. Extra options
// (e.g. tea.WithInput and tea.WithOutput for a remote session) are appended to
// the defaults.
func (h *Host) Program(ctx context.Context, opts ...tea.ProgramOption) *tea.Program {
	base := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	}
	h.program = tea.NewProgram(h, append(base, opts...)...)
	return h.program
}

// Run runs the program until quit or ctx is done
func (h *Host) Run(ctx context.Context, opts ...tea.ProgramOption) error {
	if h.frame == nil {
		return simplekit.ErrNotAttached
	}
	_, err := h.Program(ctx, opts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// Send delivers msg to the running program from any goroutine. Messages
// sent before the program has started running are dropped.
func (h *Host) Send(msg tea.Msg) {
	if p := h.running.Load(); p != nil {
		p.Send(msg)
	}
}

// Reconfigure sends a ConfigMsg to the running program
func (h *Host) Reconfigure(opts simplekit.Options, fps int) {
	h.Send(ConfigMsg{Options: opts, FrameRate: fps})
}

// Init implements tea.Model. The program calls it from Run, which is when
// Send starts delivering.
func (h *Host) Init() tea.Cmd {
	h.running.Store(h.program)
	return h.tick()
}

// Update implements tea.Model
func (h *Host) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		h.runFrame()
		return h, h.tick()

	case tea.KeyMsg:
		if key.Matches(msg, h.keys.Quit) {
			return h, tea.Quit
		}
		h.queueKey(msg)

	case tea.MouseMsg:
		h.queueMouse(tea.MouseEvent(msg))

	case tea.WindowSizeMsg:
		h.resize(msg.Width, msg.Height)

	case ConfigMsg:
		if h.configure != nil {
			h.configure(msg.Options)
		}
		WithFrameRate(msg.FrameRate)(h)
		h.log.Debugf("reconfigured, frame interval %s", h.interval)
	}
	return h, nil
}

// View implements tea.Model
func (h *Host) View() string {
	if h.canvas == nil {
		return ""
	}
	return h.canvas.String()
}

func (h *Host) tick() tea.Cmd {
	return tea.Tick(h.interval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// since returns the host clock relative to start, never going backwards
func (h *Host) since() time.Duration {
	now := h.clock().Sub(h.start)
	if now < h.last {
		now = h.last
	}
	h.last = now
	return now
}

func (h *Host) runFrame() {
	if h.frame == nil {
		return
	}
	now := h.since()
	q := h.queue
	h.queue = nil
	h.frame(&q, now)
}

// queueKey queues a keydown and a keyup; terminals do not report releases
func (h *Host) queueKey(msg tea.KeyMsg) {
	name, mods := keyName(msg)
	now := h.since()
	h.queue.Push(
		simplekit.FundamentalEvent{Type: simplekit.EventKeyDown, TimeStamp: now, Key: name, Mods: mods},
		simplekit.FundamentalEvent{Type: simplekit.EventKeyUp, TimeStamp: now, Key: name, Mods: mods},
	)
}

func keyName(msg tea.KeyMsg) (string, simplekit.KeyMod) {
	var mods simplekit.KeyMod
	if msg.Alt {
		mods |= simplekit.ModAlt
		msg.Alt = false
	}
	name := msg.String()
	switch {
	case strings.HasPrefix(name, "ctrl+"):
		mods |= simplekit.ModCtrl
	case strings.HasPrefix(name, "shift+"):
		mods |= simplekit.ModShift
	}
	return name, mods
}

func (h *Host) queueMouse(ev tea.MouseEvent) {
	fe := simplekit.FundamentalEvent{
		TimeStamp: h.since(),
		X:         float64(ev.X),
		Y:         float64(ev.Y),
	}
	if ev.Alt {
		fe.Mods |= simplekit.ModAlt
	}
	if ev.Ctrl {
		fe.Mods |= simplekit.ModCtrl
	}
	if ev.Shift {
		fe.Mods |= simplekit.ModShift
	}

	if ev.IsWheel() {
		switch ev.Button {
		case tea.MouseButtonWheelUp:
			fe.WheelDelta = -1
		case tea.MouseButtonWheelDown:
			fe.WheelDelta = 1
		default:
			return
		}
		fe.Type = simplekit.EventWheel
		h.queue.Push(fe)
		return
	}

	switch ev.Action {
	case tea.MouseActionPress:
		fe.Type = simplekit.EventMouseDown
		fe.Button = mouseButton(ev.Button)
		h.pressed = fe.Button
	case tea.MouseActionRelease:
		fe.Type = simplekit.EventMouseUp
		fe.Button = mouseButton(ev.Button)
		// many terminals report releases without the button
		if fe.Button == simplekit.ButtonNone {
			fe.Button = h.pressed
		}
		h.pressed = simplekit.ButtonNone
	case tea.MouseActionMotion:
		fe.Type = simplekit.EventMouseMove
		fe.Button = h.pressed
	default:
		return
	}
	h.queue.Push(fe)
}

func mouseButton(b tea.MouseButton) simplekit.MouseButton {
	switch b {
	case tea.MouseButtonLeft:
		return simplekit.ButtonLeft
	case tea.MouseButtonMiddle:
		return simplekit.ButtonMiddle
	case tea.MouseButtonRight:
		return simplekit.ButtonRight
	}
	return simplekit.ButtonNone
}

func (h *Host) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	h.width, h.height = width, height
	if h.canvas != nil {
		h.canvas.Resize(width, height)
	}
	h.queue.Push(simplekit.FundamentalEvent{
		Type:      simplekit.EventResize,
		TimeStamp: h.since(),
		Width:     width,
		Height:    height,
	})
}
