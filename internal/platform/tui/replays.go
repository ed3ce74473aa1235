package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-reflex/internal/core"
	"github.com/vovakirdan/tui-reflex/internal/replay"
	"github.com/vovakirdan/tui-reflex/internal/storage"
)

// ReplayBrowserKeyMap defines the key bindings for the replay browser.
type ReplayBrowserKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Replay key.Binding
	Delete key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ReplayBrowserKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Replay, k.Delete, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ReplayBrowserKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Replay, k.Delete, k.Quit},
	}
}

// DefaultReplayBrowserKeyMap returns default key bindings.
func DefaultReplayBrowserKeyMap() ReplayBrowserKeyMap {
	return ReplayBrowserKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Replay: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "replay"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ReplayBrowserModel lists stored recordings and re-simulates the selected one.
type ReplayBrowserModel struct {
	store     *storage.Store
	limit     int
	summaries []storage.Summary
	table     table.Model
	help      help.Model
	keys      ReplayBrowserKeyMap
	detail    string // Outcome of the last replay or last error
	width     int
	height    int
	quitting  bool
}

// NewReplayBrowserModel creates a browser over the newest limit recordings.
func NewReplayBrowserModel(store *storage.Store, limit, width, height int) ReplayBrowserModel {
	m := ReplayBrowserModel{
		store:  store,
		limit:  limit,
		help:   help.New(),
		keys:   DefaultReplayBrowserKeyMap(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table sized for the current window.
func (m *ReplayBrowserModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 8},
		{Title: "Date", Width: 16},
		{Title: "Rounds", Width: 6},
		{Title: "Lives", Width: 5},
		{Title: "Time", Width: 6},
		{Title: "Options", Width: 7},
		{Title: "Events", Width: 7},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(core.Max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads the recording list from the store.
func (m *ReplayBrowserModel) load() {
	m.summaries = nil
	if m.store != nil {
		summaries, err := m.store.RecentRecordings(m.limit)
		if err != nil {
			m.detail = err.Error()
		} else {
			m.summaries = summaries
		}
	}
	m.updateTableRows()
}

// updateTableRows fills the table from the loaded summaries.
func (m *ReplayBrowserModel) updateTableRows() {
	rows := make([]table.Row, len(m.summaries))
	for i, s := range m.summaries {
		rows[i] = table.Row{
			s.ID.String()[:8],
			s.CreatedAt.Local().Format("Jan 02 15:04"),
			fmt.Sprintf("%d", s.Rounds),
			fmt.Sprintf("%d", s.Config.InitialLives),
			fmt.Sprintf("%gs", s.Config.TimeLimitSeconds),
			fmt.Sprintf("%d", s.Config.OptionCount),
			fmt.Sprintf("%d", s.EventCount),
		}
	}
	m.table.SetRows(rows)
}

// selected returns the summary under the cursor.
func (m ReplayBrowserModel) selected() (storage.Summary, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.summaries) {
		return storage.Summary{}, false
	}
	return m.summaries[i], true
}

// Init initializes the browser model.
func (m ReplayBrowserModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m ReplayBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Replay):
			if sum, ok := m.selected(); ok {
				m.detail = m.replay(sum)
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if sum, ok := m.selected(); ok && m.store != nil {
				if err := m.store.DeleteRecording(sum.ID); err != nil {
					m.detail = err.Error()
				} else {
					m.detail = "Deleted " + sum.ID.String()
				}
				m.load()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// replay loads and re-simulates a recording, returning a printable summary.
func (m ReplayBrowserModel) replay(sum storage.Summary) string {
	rec, err := m.store.Recording(sum.ID)
	if err != nil {
		return err.Error()
	}
	outcomes, err := replay.Run(rec, nil)
	if err != nil {
		return err.Error()
	}
	return FormatOutcomes(outcomes)
}

// View renders the browser.
func (m ReplayBrowserModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(centerText("REPLAYS", m.width)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if len(m.summaries) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		b.WriteString(boxStyle.Render(emptyStyle.Render("No recordings yet.\nPlay a round to record one!")))
	} else {
		b.WriteString(boxStyle.Render(m.table.View()))
	}
	b.WriteString("\n")

	if m.detail != "" {
		b.WriteString(m.detail)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// FormatOutcomes renders one line per finished round.
func FormatOutcomes(outcomes []replay.Outcome) string {
	if len(outcomes) == 0 {
		return "No finished rounds."
	}

	var b strings.Builder
	for i, o := range outcomes {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Round %d: %d points, %d hits, %d misses, %.1fs, ended on %s",
			i+1, o.Points, o.Hits, o.Misses, o.Elapsed, o.Reason)
	}
	return b.String()
}

// RunReplayBrowser runs the replay browser screen.
func RunReplayBrowser(store *storage.Store, limit, width, height int) error {
	p := tea.NewProgram(
		NewReplayBrowserModel(store, limit, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
