package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-reflex/internal/config"
	"github.com/vovakirdan/tui-reflex/internal/core"
	"github.com/vovakirdan/tui-reflex/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.reflex/host_key.
	HostKeyPath string

	// DBPath is the path to the recordings database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the countdown refresh rate for every session.
	TickRate int

	// Quiz is the config every session starts from; players pick a preset.
	Quiz config.ReflexConfig
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23235",
		DBPath:      "~/.reflex/replays.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    core.DefaultConfig().TickRate,
		Quiz:        config.DefaultReflexConfig(),
	}
}

// SSHServer wraps a Wish SSH server for the quiz.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
// A nil logger logs to stderr.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "reflex-ssh",
		})
	}
	if err := cfg.Quiz.Validate(); err != nil {
		return nil, err
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open recordings database", "error", err)
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".reflex", "host_key")
	}

	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates an independent quiz session for each SSH connection.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}
	logger := s.logger.With("user", sshSession.User())

	model := NewSessionModel(s.config.Quiz, s.store, cfg, logger)

	// Keep the recording when the client disconnects without quitting.
	go func() {
		<-sshSession.Context().Done()
		model.SaveRecording()
	}()

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	if s.store != nil {
		s.store.Close()
	}
	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// SessionModel manages one remote player: preset menu -> quiz -> menu.
type SessionModel struct {
	base   config.ReflexConfig
	store  *storage.Store
	config core.RuntimeConfig
	logger *log.Logger
	menu   MenuModel
	game   *Model
	quit   bool

	mu      sync.Mutex
	current *Model // Read by the disconnect watcher
}

// NewSessionModel creates a new session model.
func NewSessionModel(base config.ReflexConfig, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) *SessionModel {
	return &SessionModel{
		base:   base,
		store:  store,
		config: cfg,
		logger: logger,
		menu:   NewMenuModel(base, cfg.ScreenW, cfg.ScreenH),
	}
}

// Init initializes the session.
func (m *SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m *SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	if m.game != nil {
		return m.updateGame(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates while the preset menu is shown.
func (m *SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quit = true
		return m, tea.Quit
	}

	if preset := m.menu.Selected(); preset != nil {
		quiz := m.menu.Config(*preset)
		m.config.Seed = time.Now().UnixNano()

		game, err := NewModel(quiz, m.store, m.config, m.logger)
		if err != nil {
			m.logger.Error("cannot start quiz", "preset", *preset, "error", err)
			m.menu = NewMenuModel(m.base, m.config.ScreenW, m.config.ScreenH)
			return m, nil
		}
		m.logger.Info("quiz selected", "preset", *preset, "seed", m.config.Seed)
		m.game = &game
		m.setCurrent(&game)
		return m, m.game.Init()
	}

	return m, cmd
}

// updateGame handles updates while a quiz is running.
func (m *SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = &gameModel
		m.setCurrent(&gameModel)
	}

	if m.game.BackToMenu() {
		m.game = nil
		m.menu = NewMenuModel(m.base, m.config.ScreenW, m.config.ScreenH)
		return m, m.menu.Init()
	}

	if m.game.IsQuitting() {
		m.quit = true
		return m, tea.Quit
	}

	return m, cmd
}

func (m *SessionModel) setCurrent(game *Model) {
	m.mu.Lock()
	m.current = game
	m.mu.Unlock()
}

// SaveRecording stores the recording of the active quiz, if any.
func (m *SessionModel) SaveRecording() {
	m.mu.Lock()
	game := m.current
	m.mu.Unlock()

	if game != nil {
		game.SaveRecording()
	}
}

// View renders the current view.
func (m *SessionModel) View() string {
	if m.quit {
		return ""
	}
	if m.game != nil {
		return m.game.View()
	}
	return m.menu.View()
}
