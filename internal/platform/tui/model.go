package tui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-reflex/internal/board"
	"github.com/vovakirdan/tui-reflex/internal/config"
	"github.com/vovakirdan/tui-reflex/internal/core"
	"github.com/vovakirdan/tui-reflex/internal/replay"
	"github.com/vovakirdan/tui-reflex/internal/round"
	"github.com/vovakirdan/tui-reflex/internal/session"
	"github.com/vovakirdan/tui-reflex/internal/storage"
)

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model for one player's quiz session.
type Model struct {
	session *session.Session
	board   *board.Board
	screen  *core.Screen
	store   *storage.Store
	logger  *log.Logger
	config  core.RuntimeConfig
	round   round.Config
	keys    KeyMap
	help    help.Model

	saveOnce   *sync.Once
	quitting   bool
	backToMenu bool
}

// NewModel creates a model for the given quiz settings.
// A zero seed is replaced by the current time. store and logger may be nil.
func NewModel(game config.ReflexConfig, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) (Model, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	roundCfg := game.ToRound()
	keys := game.Keys
	if len(keys) > roundCfg.OptionCount {
		keys = keys[:roundCfg.OptionCount]
	}

	b := board.New(roundCfg.OptionCount, keys, logger)
	engine := round.New(round.NewSource(cfg.Seed), round.WithLogger(logger))
	sess, err := session.New(engine, roundCfg, b,
		session.WithLogger(logger),
		session.WithRecorder(replay.NewRecorder(cfg.Seed, roundCfg)),
	)
	if err != nil {
		return Model{}, fmt.Errorf("tui: %w", err)
	}

	h := help.New()
	h.ShowAll = false

	return Model{
		session:  sess,
		board:    b,
		screen:   core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:    store,
		logger:   logger,
		config:   cfg,
		round:    roundCfg,
		keys:     NewKeyMap(keys),
		help:     h,
		saveOnce: &sync.Once{},
	}, nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleInput(m.keys.MapKey(msg))

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			if id, ok := m.board.ButtonAt(msg.X, msg.Y); ok {
				return m.handleInput(core.Pick(id))
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if err := m.session.Advance(); err != nil {
			m.logger.Error("advance failed", "error", err)
		}
		return m, tickCmd(m.config.TickRate)
	}

	return m, nil
}

// handleInput applies one player input to the session and the board.
func (m Model) handleInput(in core.Input) (tea.Model, tea.Cmd) {
	panel := m.board.Panel()

	switch in.Action {
	case core.ActionQuit:
		m.SaveRecording()
		m.quitting = true
		return m, tea.Quit

	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll

	case core.ActionStart:
		if panel == board.PanelMenu {
			m.startRound()
		}

	case core.ActionPick:
		m.session.Pick(in.Option)

	case core.ActionRestart:
		if panel == board.PanelGameOver && m.restartRound() {
			m.startRound()
		}

	case core.ActionBack:
		switch panel {
		case board.PanelGameOver:
			if m.restartRound() {
				m.board.ShowMenu()
			}
		case board.PanelMenu:
			m.SaveRecording()
			m.backToMenu = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m Model) startRound() {
	m.board.ShowGame(m.round.InitialLives, m.round.TimeLimitSeconds, 0)
	if err := m.session.Start(); err != nil {
		m.logger.Error("cannot start round", "error", err)
		m.board.ShowMenu()
	}
}

func (m Model) restartRound() bool {
	if err := m.session.Restart(); err != nil {
		m.logger.Error("cannot restart round", "error", err)
		return false
	}
	return true
}

// SaveRecording stores the session's recording once. Safe to call from
// another goroutine, e.g. when an SSH connection drops.
func (m Model) SaveRecording() {
	m.saveOnce.Do(func() {
		if m.store == nil {
			return
		}
		rec, ok := m.session.Recording()
		if !ok {
			return
		}
		if err := m.store.SaveRecording(rec); err != nil {
			m.logger.Warn("could not save recording", "error", err)
			return
		}
		m.logger.Info("recording saved", "id", rec.ID, "events", len(rec.Events), "rounds", rec.Rounds())
	})
}

// View renders the board with the key help below it.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	helpView := helpStyle.Render(m.help.View(m.keys))
	height := core.Max(1, m.config.ScreenH-lipgloss.Height(helpView))
	m.screen.Resize(m.config.ScreenW, height)

	m.board.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpView
}

// State returns a snapshot of the current round.
func (m Model) State() round.State {
	return m.session.Snapshot()
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user left the quiz for the preset menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given settings.
// It returns true when the player asked to go back to the preset menu.
func Run(game config.ReflexConfig, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) (bool, error) {
	model, err := NewModel(game, store, cfg, logger)
	if err != nil {
		return false, err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	finalModel, err := p.Run()
	model.SaveRecording()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(Model)
	return ok && m.BackToMenu(), nil
}
