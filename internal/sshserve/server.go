// Package sshserve hosts one toolkit per SSH session. Every session with a
// pty gets its own Toolkit and terminal host bound to the session's IO.
package sshserve

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gliderlabs/ssh"
	"github.com/google/uuid"
	"github.com/muesli/termenv"
	"github.com/sirupsen/logrus"
	gossh "golang.org/x/crypto/ssh"

	"github.com/stlalpha/simplekit/internal/logging"
	"github.com/stlalpha/simplekit/internal/metrics"
	"github.com/stlalpha/simplekit/internal/teahost"
	"github.com/stlalpha/simplekit/pkg/simplekit"
)

// Config holds the SSH host settings
type Config struct {
	Addr      string
	HostKey   string
	FrameRate int
	Options   simplekit.Options
}

// SetupFunc installs the application on a new session's toolkit
type SetupFunc func(tk *simplekit.Toolkit)

// Server serves toolkit sessions over SSH
type Server struct {
	cfg    Config
	setup  SetupFunc
	reg    *metrics.Registry
	server *ssh.Server
	log    *logrus.Entry

	mu    sync.Mutex
	hosts map[uuid.UUID]*teahost.Host
}

// New creates a server. reg may be nil.
func New(cfg Config, setup SetupFunc, reg *metrics.Registry) (*Server, error) {
	signer, err := LoadOrCreateHostKey(cfg.HostKey)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		reg = metrics.NewRegistry()
	}

	s := &Server{
		cfg:   cfg,
		setup: setup,
		reg:   reg,
		log:   logging.For("sshserve"),
		hosts: make(map[uuid.UUID]*teahost.Host),
	}
	s.server = &ssh.Server{
		Addr:                 cfg.Addr,
		Handler:              s.handle,
		ServerConfigCallback: serverConfig,
	}
	s.server.AddHostKey(signer)
	s.log.Infof("Host key loaded from %s (%s)", cfg.HostKey, signer.PublicKey().Type())
	return s, nil
}

// ListenAndServe listens on the configured address
func (s *Server) ListenAndServe() error {
	s.log.Infof("Starting SSH server on %s", s.cfg.Addr)
	return s.filter(s.server.ListenAndServe())
}

// Serve accepts sessions on ln
func (s *Server) Serve(ln net.Listener) error {
	s.log.Infof("Starting SSH server on %s", ln.Addr())
	return s.filter(s.server.Serve(ln))
}

// serverConfig restricts the session to modern algorithms
func serverConfig(ssh.Context) *gossh.ServerConfig {
	return &gossh.ServerConfig{
		Config: gossh.Config{
			KeyExchanges: []string{
				"curve25519-sha256",
				"curve25519-sha256@libssh.org",
				"ecdh-sha2-nistp256",
				"ecdh-sha2-nistp384",
				"ecdh-sha2-nistp521",
				"diffie-hellman-group16-sha512",
				"diffie-hellman-group14-sha256",
			},
			Ciphers: []string{
				"chacha20-poly1305@openssh.com",
				"aes256-gcm@openssh.com",
				"aes128-gcm@openssh.com",
				"aes256-ctr",
				"aes192-ctr",
				"aes128-ctr",
			},
			MACs: []string{
				"hmac-sha2-256-etm@openssh.com",
				"hmac-sha2-512-etm@openssh.com",
				"hmac-sha2-256",
				"hmac-sha2-512",
			},
		},
	}
}

func (s *Server) filter(err error) error {
	if errors.Is(err, ssh.ErrServerClosed) {
		s.log.Info("SSH server closed gracefully")
		return nil
	}
	return err
}

// Shutdown stops accepting sessions and waits for running ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Close closes the listener and every session
func (s *Server) Close() error {
	return s.server.Close()
}

// Sessions returns the number of running sessions
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.hosts)
}

// Reconfigure hands new tolerances and frame rate to every running session
func (s *Server) Reconfigure(opts simplekit.Options, fps int) {
	s.mu.Lock()
	s.cfg.Options, s.cfg.FrameRate = opts, fps
	hosts := make([]*teahost.Host, 0, len(s.hosts))
	for _, h := range s.hosts {
		hosts = append(hosts, h)
	}
	s.mu.Unlock()

	for _, h := range hosts {
		h.Reconfigure(opts, fps)
	}
	s.log.Infof("Reconfigured %d sessions", len(hosts))
}

// track must only be called once the host's program exists
func (s *Server) track(id uuid.UUID, h *teahost.Host) {
	s.mu.Lock()
	s.hosts[id] = h
	s.mu.Unlock()
}

func (s *Server) untrack(id uuid.UUID) {
	s.mu.Lock()
	delete(s.hosts, id)
	s.mu.Unlock()
	s.reg.Remove(id)
}

func (s *Server) handle(sess ssh.Session) {
	remote := sess.RemoteAddr().String()
	ptyReq, windows, ok := sess.Pty()
	if !ok {
		s.log.Warnf("%s: rejected session without pty", remote)
		fmt.Fprintln(sess.Stderr(), "simplekit needs an interactive terminal, try ssh -t")
		_ = sess.Exit(1)
		return
	}

	s.mu.Lock()
	opts, fps := s.cfg.Options, s.cfg.FrameRate
	s.mu.Unlock()

	tk := simplekit.New(opts)
	id := s.reg.Add(remote, tk)
	log := s.log.WithFields(logrus.Fields{"session": id, "remote": remote, "user": sess.User()})
	tk.SetLogger(log)

	host := teahost.New(
		teahost.WithSize(ptyReq.Window.Width, ptyReq.Window.Height),
		teahost.WithFrameRate(fps),
		teahost.WithConfigure(tk.Configure),
		teahost.WithRenderer(sessionRenderer(sess, ptyReq.Term)),
		teahost.WithLogger(log),
	)
	defer s.untrack(id)

	if s.setup != nil {
		s.setup(tk)
	}
	if !tk.Start(host) {
		fmt.Fprintln(sess.Stderr(), "simplekit failed to start")
		_ = sess.Exit(1)
		return
	}
	log.Infof("Session started (%dx%d, %s)", ptyReq.Window.Width, ptyReq.Window.Height, ptyReq.Term)

	p := host.Program(sess.Context(),
		tea.WithInput(sess),
		tea.WithOutput(sess),
		tea.WithoutSignalHandler(),
	)
	s.track(id, host)
	go func() {
		for win := range windows {
			p.Send(tea.WindowSizeMsg{Width: win.Width, Height: win.Height})
		}
	}()

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		log.WithError(err).Error("Session ended with error")
		_ = sess.Exit(1)
		return
	}
	st := tk.Stats()
	log.WithFields(logrus.Fields{"frames": st.Frames, "emitted": st.Emitted}).Info("Session closed")
	_ = sess.Exit(0)
}

// sessionRenderer renders for the client's terminal rather than the server's
func sessionRenderer(w io.Writer, term string) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	switch {
	case strings.Contains(term, "truecolor"), strings.Contains(term, "24bit"):
		r.SetColorProfile(termenv.TrueColor)
	case strings.Contains(term, "256color"):
		r.SetColorProfile(termenv.ANSI256)
	case term == "" || term == "dumb":
		r.SetColorProfile(termenv.Ascii)
	default:
		r.SetColorProfile(termenv.ANSI)
	}
	return r
}
